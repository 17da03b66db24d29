package mysql

import (
	"fmt"
	"time"

	"Vibe_Eat/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Options struct {
	MaxOpenConns int
	MaxIdleConns int
}

// InitDB 连接 MySQL。TranslateError 打开后唯一键冲突会返回 gorm.ErrDuplicatedKey
func InitDB(dsn string, opts Options) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("mysql: open: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql: pool: %w", err)
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// Migrate 自动建表（开发阶段 OK）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.UserInterest{},
		&model.UserPhoto{},
		&model.Restaurant{},
		&model.MealSet{},
		&model.Bureau{},
		&model.Order{},
		&model.Message{},
		&model.Review{},
		&model.ReviewTag{},
		&model.EventOutbox{},
	)
}

// byID 关联预加载按插入顺序返回
func byID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
