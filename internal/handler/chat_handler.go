package handler

import (
	"net/http"
	"strconv"

	"Vibe_Eat/internal/middleware"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	svc *service.ChatService
}

type sendMessageReq struct {
	Content string `json:"content" binding:"required"`
}

func NewChatHandler(svc *service.ChatService) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func (h *ChatHandler) Send(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	m, err := h.svc.Send(c.Request.Context(), id, middleware.UserID(c), req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": toMessageView(m)})
}

// List 按 id 增量拉取，客户端传上次收到的最大 id 作为 after
func (h *ChatHandler) List(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	after, _ := strconv.ParseUint(c.Query("after"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	rows, err := h.svc.List(c.Request.Context(), id, middleware.UserID(c), after, limit)
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]messageView, 0, len(rows))
	var next uint64
	for i := range rows {
		list = append(list, toMessageView(&rows[i]))
		next = rows[i].ID
	}
	if next == 0 {
		next = after
	}
	c.JSON(http.StatusOK, gin.H{"list": list, "next_after": next})
}
