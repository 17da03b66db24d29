package service

import (
	"context"
	"strings"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
)

// CatalogService 餐厅和套餐的后台维护
type CatalogService struct {
	restaurants *mysql.RestaurantRepository
	mealSets    *mysql.MealSetRepository
}

func NewCatalogService(restaurants *mysql.RestaurantRepository, mealSets *mysql.MealSetRepository) *CatalogService {
	return &CatalogService{restaurants: restaurants, mealSets: mealSets}
}

func (s *CatalogService) CreateRestaurant(ctx context.Context, name, location, image string) (*model.Restaurant, error) {
	name = strings.TrimSpace(name)
	location = strings.TrimSpace(location)
	if name == "" || location == "" {
		return nil, pkg.ErrInvalidParams
	}
	rest := &model.Restaurant{Name: name, Location: location, Image: strings.TrimSpace(image)}
	if err := s.restaurants.Create(ctx, rest); err != nil {
		return nil, err
	}
	return rest, nil
}

func (s *CatalogService) ListRestaurants(ctx context.Context) ([]model.Restaurant, error) {
	return s.restaurants.List(ctx)
}

type MealSetInput struct {
	RestaurantID uint64
	Title        string
	Price        int64
	MinPeople    int
	MaxPeople    int
	MenuDetails  string
}

func (in MealSetInput) toModel() (*model.MealSet, error) {
	m := &model.MealSet{
		RestaurantID: in.RestaurantID,
		Title:        strings.TrimSpace(in.Title),
		Price:        in.Price,
		MinPeople:    in.MinPeople,
		MaxPeople:    in.MaxPeople,
		MenuDetails:  strings.TrimSpace(in.MenuDetails),
	}
	if m.Title == "" || m.Price < 0 || !m.ValidHeadcount() {
		return nil, pkg.ErrInvalidParams
	}
	return m, nil
}

func (s *CatalogService) CreateMealSet(ctx context.Context, in MealSetInput) (*model.MealSet, error) {
	m, err := in.toModel()
	if err != nil {
		return nil, err
	}
	if m.RestaurantID == 0 {
		return nil, pkg.ErrInvalidParams
	}
	if _, err = s.restaurants.FindByID(ctx, m.RestaurantID); err != nil {
		return nil, err
	}
	if err = s.mealSets.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// UpdateMealSet 不允许修改所属餐厅
func (s *CatalogService) UpdateMealSet(ctx context.Context, id uint64, in MealSetInput) (*model.MealSet, error) {
	m, err := in.toModel()
	if err != nil {
		return nil, err
	}
	m.ID = id
	if err = s.mealSets.Update(ctx, m); err != nil {
		return nil, err
	}
	return s.mealSets.FindByID(ctx, id)
}

func (s *CatalogService) DeleteMealSet(ctx context.Context, id uint64) error {
	return s.mealSets.Delete(ctx, id)
}

func (s *CatalogService) ListMealSets(ctx context.Context) ([]model.MealSet, error) {
	return s.mealSets.List(ctx)
}
