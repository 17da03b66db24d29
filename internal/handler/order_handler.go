package handler

import (
	"net/http"

	"Vibe_Eat/internal/middleware"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Cancel 取消订单，按距开局时间计算退款
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	refund, err := h.svc.Cancel(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"refund": refund})
}

// Mine 我参加的饭局订单
func (h *OrderHandler) Mine(c *gin.Context) {
	rows, err := h.svc.ListMine(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]orderView, 0, len(rows))
	for i := range rows {
		list = append(list, toOrderView(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
