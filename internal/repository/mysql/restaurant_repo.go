package mysql

import (
	"context"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	DB *gorm.DB
}

type MealSetRepository struct {
	DB *gorm.DB
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *model.Restaurant) error {
	return r.DB.WithContext(ctx).Create(rest).Error
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uint64) (*model.Restaurant, error) {
	var rest model.Restaurant
	if err := r.DB.WithContext(ctx).First(&rest, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &rest, nil
}

// List 餐厅列表，附带套餐
func (r *RestaurantRepository) List(ctx context.Context) ([]model.Restaurant, error) {
	var list []model.Restaurant
	err := r.DB.WithContext(ctx).
		Preload("MealSets", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Order("id ASC").
		Find(&list).Error
	return list, err
}

func (r *RestaurantRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Restaurant{}).Count(&n).Error
	return n, err
}

func (r *MealSetRepository) Create(ctx context.Context, m *model.MealSet) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

func (r *MealSetRepository) FindByID(ctx context.Context, id uint64) (*model.MealSet, error) {
	var m model.MealSet
	if err := r.DB.WithContext(ctx).Preload("Restaurant").First(&m, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &m, nil
}

func (r *MealSetRepository) List(ctx context.Context) ([]model.MealSet, error) {
	var list []model.MealSet
	err := r.DB.WithContext(ctx).Preload("Restaurant").Order("id ASC").Find(&list).Error
	return list, err
}

// Update 只改套餐本身的字段，已存在订单的金额是快照不受影响
func (r *MealSetRepository) Update(ctx context.Context, m *model.MealSet) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.MealSet{}, m.ID).Error; err != nil {
			return notFound(err)
		}
		return tx.Model(&model.MealSet{}).Where("id = ?", m.ID).Updates(map[string]any{
			"title":        m.Title,
			"price":        m.Price,
			"min_people":   m.MinPeople,
			"max_people":   m.MaxPeople,
			"menu_details": m.MenuDetails,
		}).Error
	})
}

// Delete 被饭局引用的套餐不能删除
func (r *MealSetRepository) Delete(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var refs int64
		if err := tx.Model(&model.Bureau{}).Where("meal_set_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return pkg.ErrInvalidState
		}
		res := tx.Delete(&model.MealSet{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrNotFound
		}
		return nil
	})
}
