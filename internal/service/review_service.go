package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/recommend"
	"Vibe_Eat/internal/repository/mysql"
)

// ReviewVibeBonus 每收到一条评价加分
const ReviewVibeBonus = 2

const (
	maxReviewTags   = 10
	maxCommentRunes = 500
)

type ReviewService struct {
	repo *mysql.ReviewRepository
}

func NewReviewService(repo *mysql.ReviewRepository) *ReviewService {
	return &ReviewService{repo: repo}
}

func (s *ReviewService) Submit(ctx context.Context, bureauID, reviewerID, targetUserID uint64, tags []string, comment string) (*model.Review, error) {
	if bureauID == 0 || reviewerID == 0 || targetUserID == 0 {
		return nil, pkg.ErrInvalidParams
	}
	if reviewerID == targetUserID {
		return nil, pkg.ErrInvalidState
	}
	comment = strings.TrimSpace(comment)
	if utf8.RuneCountInString(comment) > maxCommentRunes {
		return nil, pkg.ErrInvalidParams
	}

	rv := &model.Review{
		BureauID:     bureauID,
		ReviewerID:   reviewerID,
		TargetUserID: targetUserID,
		Comment:      comment,
	}
	for _, tag := range recommend.NormalizeTags(tags, maxReviewTags) {
		rv.Tags = append(rv.Tags, model.ReviewTag{Tag: tag})
	}
	if err := s.repo.Submit(ctx, rv, ReviewVibeBonus); err != nil {
		return nil, err
	}
	return rv, nil
}

func (s *ReviewService) ListReceived(ctx context.Context, userID uint64) ([]model.Review, error) {
	return s.repo.ListForUser(ctx, userID)
}
