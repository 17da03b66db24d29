package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/recommend"
	"Vibe_Eat/internal/repository/mysql"
	"Vibe_Eat/internal/repository/redis"
)

const (
	maxInterests = 20
	maxPhotos    = 9
	avatarURL    = "https://api.dicebear.com/7.x/avataaars/svg?seed=%s"
)

type UserService struct {
	repo       *mysql.UserRepository
	sessions   *redis.SessionRepository
	tokens     *pkg.TokenIssuer
	adminPhone func(string) bool
}

func NewUserService(repo *mysql.UserRepository, sessions *redis.SessionRepository, tokens *pkg.TokenIssuer, adminPhone func(string) bool) *UserService {
	if adminPhone == nil {
		adminPhone = func(string) bool { return false }
	}
	return &UserService{repo: repo, sessions: sessions, tokens: tokens, adminPhone: adminPhone}
}

// ValidPhone 4~20 位数字
func ValidPhone(phone string) bool {
	if len(phone) < 4 || len(phone) > 20 {
		return false
	}
	for _, r := range phone {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Login 手机号登录，未注册的手机号自动创建用户
func (s *UserService) Login(ctx context.Context, phone string) (*pkg.Pair, *model.User, error) {
	phone = strings.TrimSpace(phone)
	if !ValidPhone(phone) {
		return nil, nil, pkg.ErrInvalidParams
	}

	fresh := &model.User{
		Phone:    phone,
		Nickname: "User" + phone[len(phone)-4:],
		Avatar:   fmt.Sprintf(avatarURL, phone),
	}
	if s.adminPhone(phone) {
		fresh.Role = model.RoleAdmin
	}
	user, _, err := s.repo.FindOrCreateByPhone(ctx, fresh)
	if err != nil {
		return nil, nil, err
	}
	if s.adminPhone(phone) && !user.IsAdmin() {
		if err = s.repo.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
			return nil, nil, err
		}
		user.Role = model.RoleAdmin
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return pair, user, nil
}

// issue 签发 token 并写入 redis
func (s *UserService) issue(ctx context.Context, user *model.User) (*pkg.Pair, error) {
	pair, err := s.tokens.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err = s.sessions.AddUserToken(ctx, user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) Logout(ctx context.Context, userID uint64) error {
	return s.sessions.DeleteUserToken(ctx, userID)
}

// Refresh 用 refresh token 换新的一对 token，新 access 覆盖 redis 中的旧值
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*pkg.Pair, error) {
	claims, err := s.tokens.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, pkg.ErrRefreshInvalid
		}
		return nil, err
	}
	return s.issue(ctx, user)
}

func (s *UserService) Me(ctx context.Context, userID uint64) (*model.User, error) {
	return s.repo.FindByID(ctx, userID)
}

type ProfileInput struct {
	Nickname  string
	School    string
	Company   string
	Bio       string
	Photos    []string
	Interests []string
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, in ProfileInput) (*model.User, error) {
	nickname := strings.TrimSpace(in.Nickname)
	if nickname == "" || utf8.RuneCountInString(nickname) > 32 {
		return nil, pkg.ErrInvalidParams
	}
	if len(in.Photos) > maxPhotos {
		return nil, pkg.ErrInvalidParams
	}
	photos := recommend.NormalizeTags(in.Photos, maxPhotos)

	err := s.repo.UpdateProfile(ctx, userID, mysql.ProfileUpdate{
		Nickname:  nickname,
		School:    strings.TrimSpace(in.School),
		Company:   strings.TrimSpace(in.Company),
		Bio:       strings.TrimSpace(in.Bio),
		Interests: recommend.NormalizeTags(in.Interests, maxInterests),
		Photos:    photos,
	})
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, userID)
}
