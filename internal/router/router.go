package router

import (
	"log/slog"

	"Vibe_Eat/internal/handler"
	"Vibe_Eat/internal/middleware"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/redis"
	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

// Deps 路由需要的服务，由 main 组装
type Deps struct {
	Log      *slog.Logger
	Tokens   *pkg.TokenIssuer
	Sessions *redis.SessionRepository
	Users    *service.UserService
	Bureaus  *service.BureauService
	Orders   *service.OrderService
	Chat     *service.ChatService
	Reviews  *service.ReviewService
	Catalog  *service.CatalogService
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(d.Log), gin.Recovery())

	user := handler.NewUserHandler(d.Users, d.Reviews)
	bureau := handler.NewBureauHandler(d.Bureaus, d.Orders)
	order := handler.NewOrderHandler(d.Orders)
	chat := handler.NewChatHandler(d.Chat)
	review := handler.NewReviewHandler(d.Reviews)
	catalog := handler.NewCatalogHandler(d.Catalog)

	auth := middleware.AuthMiddleware(d.Tokens, d.Sessions)

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/login", user.Login)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(auth)
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.GET("/me", user.Me)
		authGroup.PUT("/profile", user.UpdateProfile)
		authGroup.GET("/orders", order.Mine)
		authGroup.GET("/hosted", bureau.Hosted)
		authGroup.GET("/reviews", user.Reviews)
	}

	// 饭局相关接口
	bureauGroup := r.Group("/api/bureau")
	bureauGroup.Use(auth)
	{
		bureauGroup.POST("/create", bureau.Create)
		bureauGroup.GET("/recommend", bureau.Recommend)
		bureauGroup.GET("/:id", bureau.Detail)
		bureauGroup.POST("/:id/join", bureau.Join)
		bureauGroup.POST("/:id/complete", bureau.Complete)
		bureauGroup.POST("/:id/messages", chat.Send)
		bureauGroup.GET("/:id/messages", chat.List)
		bureauGroup.POST("/:id/reviews", review.Submit)
	}

	orderGroup := r.Group("/api/order")
	orderGroup.Use(auth)
	{
		orderGroup.POST("/:id/cancel", order.Cancel)
	}

	r.GET("/api/mealsets", auth, catalog.ListMealSets)

	// 管理后台
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(auth, middleware.RequireAdmin())
	{
		adminGroup.POST("/restaurants", catalog.CreateRestaurant)
		adminGroup.GET("/restaurants", catalog.ListRestaurants)
		adminGroup.POST("/mealsets", catalog.CreateMealSet)
		adminGroup.PUT("/mealsets/:id", catalog.UpdateMealSet)
		adminGroup.DELETE("/mealsets/:id", catalog.DeleteMealSet)
	}

	return r
}
