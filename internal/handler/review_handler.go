package handler

import (
	"net/http"

	"Vibe_Eat/internal/middleware"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	svc *service.ReviewService
}

type submitReviewReq struct {
	TargetUserID uint64   `json:"target_user_id" binding:"required"`
	Tags         []string `json:"tags"`
	Comment      string   `json:"comment"`
}

func NewReviewHandler(svc *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// Submit 评价同一饭局的其他成员
func (h *ReviewHandler) Submit(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req submitReviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	rv, err := h.svc.Submit(c.Request.Context(), id, middleware.UserID(c), req.TargetUserID, req.Tags, req.Comment)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": toReviewView(rv)})
}
