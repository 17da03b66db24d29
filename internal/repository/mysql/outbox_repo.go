package mysql

import (
	"context"
	"encoding/json"
	"errors"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// notFound 把 gorm 的未找到错误转换为业务错误
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkg.ErrNotFound
	}
	return err
}

// insertOutbox 在业务事务内写入事件，保证事件和业务状态一起提交
func insertOutbox(tx *gorm.DB, event string, aggregateID uint64, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return tx.Create(&model.EventOutbox{
		EventType:   event,
		AggregateID: aggregateID,
		Payload:     string(body),
		Status:      model.OutboxPending,
	}).Error
}

// List 查询待投递事件，失败的事件在重试次数内也会被重新取出
func (r *OutboxRepository) List(ctx context.Context, batchSize, maxRetry int) ([]model.EventOutbox, error) {
	var list []model.EventOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = ? OR (status = ? AND retry < ?)", model.OutboxPending, model.OutboxFailed, maxRetry).
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，记录重试次数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EventOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": model.OutboxFailed, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EventOutbox{}).Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}
