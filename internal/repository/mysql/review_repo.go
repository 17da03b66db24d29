package mysql

import (
	"context"
	"errors"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	DB *gorm.DB
}

// Submit 写评价并给被评价人加分。先查重再插入，唯一索引兜底并发重复提交
func (r *ReviewRepository) Submit(ctx context.Context, rv *model.Review, bonus int) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.Bureau{}, rv.BureauID).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Select("id").First(&model.User{}, rv.TargetUserID).Error; err != nil {
			return notFound(err)
		}

		var existing int64
		if err := tx.Model(&model.Review{}).
			Where("bureau_id = ? AND reviewer_id = ? AND target_user_id = ?", rv.BureauID, rv.ReviewerID, rv.TargetUserID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return pkg.ErrDuplicateReview
		}

		if err := tx.Create(rv).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return pkg.ErrDuplicateReview
			}
			return err
		}
		if err := addVibeScore(tx, []uint64{rv.TargetUserID}, bonus); err != nil {
			return err
		}
		tags := make([]string, 0, len(rv.Tags))
		for _, t := range rv.Tags {
			tags = append(tags, t.Tag)
		}
		return insertOutbox(tx, model.EventReviewSubmitted, rv.BureauID, map[string]any{
			"review_id":      rv.ID,
			"bureau_id":      rv.BureauID,
			"reviewer_id":    rv.ReviewerID,
			"target_user_id": rv.TargetUserID,
			"tags":           tags,
		})
	})
}

func (r *ReviewRepository) ListForUser(ctx context.Context, targetUserID uint64) ([]model.Review, error) {
	var list []model.Review
	err := r.DB.WithContext(ctx).
		Preload("Tags", byID).
		Where("target_user_id = ?", targetUserID).
		Order("id DESC").
		Find(&list).Error
	return list, err
}
