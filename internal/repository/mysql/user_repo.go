package mysql

import (
	"context"
	"errors"

	"Vibe_Eat/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

// ProfileUpdate 资料修改字段，标签和照片整体替换
type ProfileUpdate struct {
	Nickname  string
	School    string
	Company   string
	Bio       string
	Interests []string
	Photos    []string
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).
		Preload("Interests", byID).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&user, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByPhone(ctx context.Context, phone string) (*model.User, error) {
	var user model.User
	if err := r.DB.WithContext(ctx).Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindOrCreateByPhone 手机号首次登录自动注册。并发注册撞唯一键时回读已存在的用户
func (r *UserRepository) FindOrCreateByPhone(ctx context.Context, fresh *model.User) (*model.User, bool, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("phone = ?", fresh.Phone).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if err = r.DB.WithContext(ctx).Create(fresh).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err = r.DB.WithContext(ctx).Where("phone = ?", fresh.Phone).First(&user).Error; err != nil {
				return nil, false, err
			}
			return &user, false, nil
		}
		return nil, false, err
	}
	return fresh, true, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id uint64, role int) error {
	return r.DB.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
}

// UpdateProfile 资料与兴趣、照片在同一事务内替换
func (r *UserRepository) UpdateProfile(ctx context.Context, id uint64, p ProfileUpdate) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&model.User{}, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
			"nickname": p.Nickname,
			"school":   p.School,
			"company":  p.Company,
			"bio":      p.Bio,
		}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.UserInterest{}).Error; err != nil {
			return err
		}
		if len(p.Interests) > 0 {
			rows := make([]model.UserInterest, 0, len(p.Interests))
			for _, tag := range p.Interests {
				rows = append(rows, model.UserInterest{UserID: id, Tag: tag})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&model.UserPhoto{}).Error; err != nil {
			return err
		}
		if len(p.Photos) > 0 {
			rows := make([]model.UserPhoto, 0, len(p.Photos))
			for i, url := range p.Photos {
				rows = append(rows, model.UserPhoto{UserID: id, URL: url, Position: i})
			}
			if err := tx.Create(&rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// addVibeScore 在事务内给一批用户加分
func addVibeScore(tx *gorm.DB, userIDs []uint64, delta int) error {
	if len(userIDs) == 0 {
		return nil
	}
	return tx.Model(&model.User{}).
		Where("id IN ?", userIDs).
		UpdateColumn("vibe_score", gorm.Expr("vibe_score + ?", delta)).Error
}
