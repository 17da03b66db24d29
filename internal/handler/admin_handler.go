package handler

import (
	"net/http"

	"Vibe_Eat/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler 餐厅和套餐管理，写接口只对管理员开放
type CatalogHandler struct {
	svc *service.CatalogService
}

type restaurantReq struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
	Image    string `json:"image"`
}

type mealSetReq struct {
	RestaurantID uint64 `json:"restaurant_id"`
	Title        string `json:"title" binding:"required"`
	Price        int64  `json:"price" binding:"min=0"`
	MinPeople    int    `json:"min_people" binding:"required,min=1"`
	MaxPeople    int    `json:"max_people" binding:"required,min=1"`
	MenuDetails  string `json:"menu_details"`
}

func (r mealSetReq) input() service.MealSetInput {
	return service.MealSetInput{
		RestaurantID: r.RestaurantID,
		Title:        r.Title,
		Price:        r.Price,
		MinPeople:    r.MinPeople,
		MaxPeople:    r.MaxPeople,
		MenuDetails:  r.MenuDetails,
	}
}

func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

func (h *CatalogHandler) CreateRestaurant(c *gin.Context) {
	var req restaurantReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	r, err := h.svc.CreateRestaurant(c.Request.Context(), req.Name, req.Location, req.Image)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": toRestaurantView(r)})
}

func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	rows, err := h.svc.ListRestaurants(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]restaurantView, 0, len(rows))
	for i := range rows {
		list = append(list, toRestaurantView(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CatalogHandler) CreateMealSet(c *gin.Context) {
	var req mealSetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	m, err := h.svc.CreateMealSet(c.Request.Context(), req.input())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_set": toMealSetView(m)})
}

func (h *CatalogHandler) UpdateMealSet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req mealSetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badParams(c)
		return
	}
	m, err := h.svc.UpdateMealSet(c.Request.Context(), id, req.input())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"meal_set": toMealSetView(m)})
}

// DeleteMealSet 已被饭局引用的套餐不能删除
func (h *CatalogHandler) DeleteMealSet(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteMealSet(c.Request.Context(), id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// ListMealSets 套餐列表，创建饭局前选择用
func (h *CatalogHandler) ListMealSets(c *gin.Context) {
	rows, err := h.svc.ListMealSets(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	list := make([]*mealSetView, 0, len(rows))
	for i := range rows {
		list = append(list, toMealSetView(&rows[i]))
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
