package service

import (
	"context"
	"time"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/recommend"
	"Vibe_Eat/internal/repository/mysql"
)

type BureauService struct {
	repo  *mysql.BureauRepository
	users *mysql.UserRepository
	clock pkg.Clock
}

type RecommendedBureau struct {
	Bureau model.Bureau
	Score  int
}

func NewBureauService(repo *mysql.BureauRepository, users *mysql.UserRepository, clock pkg.Clock) *BureauService {
	return &BureauService{repo: repo, users: users, clock: clock}
}

// Create 发起饭局，发起人自动加入且不需要支付
func (s *BureauService) Create(ctx context.Context, hostID, mealSetID uint64, eventTime time.Time) (*model.Bureau, error) {
	if hostID == 0 || mealSetID == 0 || eventTime.IsZero() {
		return nil, pkg.ErrInvalidParams
	}
	if !eventTime.After(s.clock.Now()) {
		return nil, pkg.ErrInvalidParams
	}
	b := &model.Bureau{
		HostID:    hostID,
		MealSetID: mealSetID,
		EventTime: eventTime,
		Status:    model.BureauRecruiting,
	}
	if err := s.repo.CreateWithHost(ctx, b, 0); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BureauService) Get(ctx context.Context, id uint64) (*model.Bureau, error) {
	if id == 0 {
		return nil, pkg.ErrNotFound
	}
	return s.repo.FindDetail(ctx, id)
}

func (s *BureauService) ListHosted(ctx context.Context, hostID uint64) ([]model.Bureau, error) {
	return s.repo.ListHosted(ctx, hostID)
}

// Recommend 按相关度给用户推荐招募中的饭局
func (s *BureauService) Recommend(ctx context.Context, userID uint64) ([]RecommendedBureau, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	list, err := s.repo.ListRecruiting(ctx, now)
	if err != nil {
		return nil, err
	}

	byID := make(map[uint64]model.Bureau, len(list))
	candidates := make([]recommend.Candidate, 0, len(list))
	for _, b := range list {
		byID[b.ID] = b
		candidates = append(candidates, toCandidate(&b))
	}
	profile := recommend.Profile{
		UserID:    user.ID,
		School:    user.School,
		Company:   user.Company,
		Interests: user.InterestTags(),
	}

	ranked := recommend.Rank(candidates, profile, now)
	out := make([]RecommendedBureau, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, RecommendedBureau{Bureau: byID[r.Candidate.BureauID], Score: r.Score})
	}
	return out, nil
}

func toCandidate(b *model.Bureau) recommend.Candidate {
	c := recommend.Candidate{
		BureauID:   b.ID,
		EventTime:  b.EventTime,
		OrderCount: len(b.Orders),
	}
	if b.Host != nil {
		c.Host = recommend.Host{
			School:    b.Host.School,
			Company:   b.Host.Company,
			Interests: b.Host.InterestTags(),
		}
	}
	return c
}
