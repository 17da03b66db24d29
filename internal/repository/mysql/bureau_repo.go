package mysql

import (
	"context"
	"time"

	"Vibe_Eat/internal/model"

	"gorm.io/gorm"
)

type BureauRepository struct {
	DB *gorm.DB
}

// CreateWithHost 创建饭局，发起人自动以 PAID 订单加入
func (r *BureauRepository) CreateWithHost(ctx context.Context, b *model.Bureau, hostAmount int64) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.MealSet{}, b.MealSetID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Omit("Host", "MealSet", "Orders").Create(b).Error; err != nil {
			return err
		}
		hostOrder := &model.Order{
			BureauID: b.ID,
			UserID:   b.HostID,
			Amount:   hostAmount,
			Status:   model.OrderPaid,
		}
		if err := tx.Create(hostOrder).Error; err != nil {
			return err
		}
		b.Orders = []model.Order{*hostOrder}
		return nil
	})
}

func (r *BureauRepository) FindByID(ctx context.Context, id uint64) (*model.Bureau, error) {
	var b model.Bureau
	if err := r.DB.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// FindDetail 详情页：发起人、套餐、餐厅、订单及参与者
func (r *BureauRepository) FindDetail(ctx context.Context, id uint64) (*model.Bureau, error) {
	var b model.Bureau
	err := r.DB.WithContext(ctx).
		Preload("Host.Interests", byID).
		Preload("MealSet.Restaurant").
		Preload("Orders", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Orders.User").
		First(&b, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListRecruiting 招募中且未开始的饭局，按开始时间升序
func (r *BureauRepository) ListRecruiting(ctx context.Context, now time.Time) ([]model.Bureau, error) {
	var list []model.Bureau
	err := r.DB.WithContext(ctx).
		Preload("Host.Interests", byID).
		Preload("MealSet.Restaurant").
		Preload("Orders").
		Where("status = ? AND event_time > ?", model.BureauRecruiting, now).
		Order("event_time ASC, id ASC").
		Find(&list).Error
	return list, err
}

func (r *BureauRepository) ListHosted(ctx context.Context, hostID uint64) ([]model.Bureau, error) {
	var list []model.Bureau
	err := r.DB.WithContext(ctx).
		Preload("MealSet.Restaurant").
		Preload("Orders").
		Where("host_id = ?", hostID).
		Order("event_time DESC").
		Find(&list).Error
	return list, err
}
