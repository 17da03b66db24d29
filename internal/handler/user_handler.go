package handler

import (
	"net/http"

	"Vibe_Eat/internal/middleware"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	svc     *service.UserService
	reviews *service.ReviewService
}

// LoginReq 手机号登录，首次登录自动注册
type LoginReq struct {
	Phone string `json:"phone" binding:"required"`
}

type RefreshReq struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type ProfileReq struct {
	Nickname  string   `json:"nickname" binding:"required"`
	School    string   `json:"school"`
	Company   string   `json:"company"`
	Bio       string   `json:"bio"`
	Photos    []string `json:"photos"`
	Interests []string `json:"interests"`
}

func NewUserHandler(svc *service.UserService, reviews *service.ReviewService) *UserHandler {
	return &UserHandler{svc: svc, reviews: reviews}
}

// Login 登录接口
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	pair, user, err := h.svc.Login(c.Request.Context(), req.Phone)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user":          toMeView(user),
	})
}

func (h *UserHandler) Logout(c *gin.Context) {
	if err := h.svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 用 refresh token 换新的 token 对
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	var req RefreshReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.svc.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toMeView(user)})
}

// UpdateProfile 修改个人资料，照片和兴趣整体替换
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req ProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), service.ProfileInput{
		Nickname:  req.Nickname,
		School:    req.School,
		Company:   req.Company,
		Bio:       req.Bio,
		Photos:    req.Photos,
		Interests: req.Interests,
	})
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toMeView(user)})
}

// Reviews 我收到的评价
func (h *UserHandler) Reviews(c *gin.Context) {
	rows, err := h.reviews.ListReceived(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]reviewView, 0, len(rows))
	for i := range rows {
		list = append(list, toReviewView(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
