package handler

import (
	"net/http"
	"time"

	"Vibe_Eat/internal/middleware"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

type BureauHandler struct {
	svc    *service.BureauService
	orders *service.OrderService
}

type createBureauReq struct {
	MealSetID uint64    `json:"meal_set_id" binding:"required"`
	EventTime time.Time `json:"event_time" binding:"required"`
}

func NewBureauHandler(svc *service.BureauService, orders *service.OrderService) *BureauHandler {
	return &BureauHandler{svc: svc, orders: orders}
}

// Create 发起饭局
func (h *BureauHandler) Create(c *gin.Context) {
	var req createBureauReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	b, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), req.MealSetID, req.EventTime)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": b.ID})
}

// Detail 饭局详情，包含发起人、套餐、参与者
func (h *BureauHandler) Detail(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	b, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bureau": toBureauView(b)})
}

// Recommend 按相关度排序的招募中饭局
func (h *BureauHandler) Recommend(c *gin.Context) {
	rows, err := h.svc.Recommend(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]*bureauView, 0, len(rows))
	for i := range rows {
		v := toBureauView(&rows[i].Bureau)
		v.Orders = nil
		v.Score = &rows[i].Score
		list = append(list, v)
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Hosted 我发起的饭局
func (h *BureauHandler) Hosted(c *gin.Context) {
	rows, err := h.svc.ListHosted(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]*bureauView, 0, len(rows))
	for i := range rows {
		list = append(list, toBureauView(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Join 加入饭局并按套餐价格支付
func (h *BureauHandler) Join(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	o, err := h.orders.Join(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": toOrderView(o)})
}

// Complete 发起人结束饭局并结算
func (h *BureauHandler) Complete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	settled, err := h.orders.Complete(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settled": settled})
}
