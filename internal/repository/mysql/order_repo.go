package mysql

import (
	"context"
	"errors"
	"time"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

// lockBureau select for update，同一饭局的加入和结算在这里串行
func lockBureau(tx *gorm.DB, bureauID uint64) (*model.Bureau, error) {
	var b model.Bureau
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, bureauID).Error; err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// Join 容量检查和下单在同一事务内完成。支付默认成功，订单直接为 PAID
func (r *OrderRepository) Join(ctx context.Context, bureauID, userID uint64) (*model.Order, error) {
	var order *model.Order
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := lockBureau(tx, bureauID)
		if err != nil {
			return err
		}

		// 只看是否存在，已取消的订单同样不允许再次加入
		var existing int64
		if err = tx.Model(&model.Order{}).
			Where("bureau_id = ? AND user_id = ?", bureauID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return pkg.ErrAlreadyJoined
		}
		if b.Status != model.BureauRecruiting {
			return pkg.ErrInvalidState
		}

		var ms model.MealSet
		if err = tx.First(&ms, b.MealSetID).Error; err != nil {
			return notFound(err)
		}
		var paid int64
		if err = tx.Model(&model.Order{}).
			Where("bureau_id = ? AND status = ?", bureauID, model.OrderPaid).
			Count(&paid).Error; err != nil {
			return err
		}
		if paid >= int64(ms.MaxPeople) {
			return pkg.ErrFull
		}

		order = &model.Order{
			BureauID: bureauID,
			UserID:   userID,
			Amount:   ms.Price,
			Status:   model.OrderPaid,
		}
		if err = tx.Create(order).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkg.ErrAlreadyJoined
			}
			return err
		}
		return insertOutbox(tx, model.EventOrderJoined, bureauID, map[string]any{
			"order_id":  order.ID,
			"bureau_id": bureauID,
			"user_id":   userID,
			"amount":    order.Amount,
		})
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// FindWithBureau 取消订单时需要饭局开始时间
func (r *OrderRepository) FindWithBureau(ctx context.Context, orderID uint64) (*model.Order, error) {
	var o model.Order
	if err := r.DB.WithContext(ctx).Preload("Bureau").First(&o, orderID).Error; err != nil {
		return nil, notFound(err)
	}
	return &o, nil
}

// MarkCancelled 以 status=PAID 为条件做 CAS，并发取消只有一个能成功
func (r *OrderRepository) MarkCancelled(ctx context.Context, o *model.Order, at time.Time, refund int64, status model.RefundStatus) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Order{}).
			Where("id = ? AND status = ?", o.ID, model.OrderPaid).
			Updates(map[string]any{
				"status":        model.OrderCancelled,
				"cancelled_at":  at,
				"refund_amount": refund,
				"refund_status": status,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrInvalidState
		}
		return insertOutbox(tx, model.EventOrderCancelled, o.BureauID, map[string]any{
			"order_id":      o.ID,
			"bureau_id":     o.BureauID,
			"user_id":       o.UserID,
			"refund_amount": refund,
			"refund_status": status,
		})
	})
}

// Complete 结束饭局：只在 RECRUITING -> COMPLETED 的那一次结算当时所有 PAID 订单并加分。
// 返回本次被结算的用户；饭局已完成时返回 nil
func (r *OrderRepository) Complete(ctx context.Context, bureauID, hostID uint64, bonus int) ([]uint64, error) {
	var settled []uint64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		b, err := lockBureau(tx, bureauID)
		if err != nil {
			return err
		}
		if b.HostID != hostID {
			return pkg.ErrForbidden
		}
		if b.Status == model.BureauCompleted {
			return nil
		}

		if err = tx.Model(&model.Bureau{}).
			Where("id = ? AND status = ?", bureauID, model.BureauRecruiting).
			Update("status", model.BureauCompleted).Error; err != nil {
			return err
		}

		// 订单行也加锁，并发的取消会阻塞到本事务结束后 CAS 失败
		var paid []model.Order
		if err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id", "user_id").
			Where("bureau_id = ? AND status = ?", bureauID, model.OrderPaid).
			Order("id ASC").
			Find(&paid).Error; err != nil {
			return err
		}
		if len(paid) == 0 {
			return insertOutbox(tx, model.EventBureauCompleted, bureauID, map[string]any{
				"bureau_id": bureauID,
				"settled":   []uint64{},
			})
		}

		orderIDs := make([]uint64, 0, len(paid))
		for _, o := range paid {
			orderIDs = append(orderIDs, o.ID)
		}
		if err = tx.Model(&model.Order{}).
			Where("id IN ? AND status = ?", orderIDs, model.OrderPaid).
			Update("status", model.OrderSettled).Error; err != nil {
			return err
		}
		// 只给这次真正转为 SETTLED 的订单加分
		var done []model.Order
		if err = tx.Select("id", "user_id").
			Where("id IN ? AND status = ?", orderIDs, model.OrderSettled).
			Order("id ASC").
			Find(&done).Error; err != nil {
			return err
		}
		userIDs := make([]uint64, 0, len(done))
		for _, o := range done {
			userIDs = append(userIDs, o.UserID)
		}
		if err = addVibeScore(tx, userIDs, bonus); err != nil {
			return err
		}
		settled = userIDs
		return insertOutbox(tx, model.EventBureauCompleted, bureauID, map[string]any{
			"bureau_id": bureauID,
			"settled":   userIDs,
		})
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// HasActiveOrder PAID 或 SETTLED 的订单才算饭局成员，结束后的饭局成员仍可查看聊天记录
func (r *OrderRepository) HasActiveOrder(ctx context.Context, bureauID, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Order{}).
		Where("bureau_id = ? AND user_id = ? AND status IN ?", bureauID, userID,
			[]model.OrderStatus{model.OrderPaid, model.OrderSettled}).
		Count(&n).Error
	return n > 0, err
}

func (r *OrderRepository) CountPaid(ctx context.Context, bureauID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Order{}).
		Where("bureau_id = ? AND status = ?", bureauID, model.OrderPaid).
		Count(&n).Error
	return n, err
}

// ListByUser 我的订单，附带饭局和套餐信息
func (r *OrderRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	var list []model.Order
	err := r.DB.WithContext(ctx).
		Preload("Bureau.MealSet.Restaurant").
		Where("user_id = ?", userID).
		Order("id DESC").
		Find(&list).Error
	return list, err
}
