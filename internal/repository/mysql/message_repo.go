package mysql

import (
	"context"

	"Vibe_Eat/internal/model"

	"gorm.io/gorm"
)

type MessageRepository struct {
	DB *gorm.DB
}

func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// ListAfter 基于 id 游标的轮询：只返回 afterID 之后的消息，按发送顺序
func (r *MessageRepository) ListAfter(ctx context.Context, bureauID, afterID uint64, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	q := r.DB.WithContext(ctx).
		Preload("User").
		Where("bureau_id = ?", bureauID)
	if afterID > 0 {
		q = q.Where("id > ?", afterID)
	}
	var list []model.Message
	err := q.Order("id ASC").Limit(limit).Find(&list).Error
	return list, err
}
