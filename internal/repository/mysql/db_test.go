package mysql

import (
	"context"
	"testing"
	"time"

	"Vibe_Eat/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 内存 sqlite，单连接保证事务串行
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err = Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func mustUser(t *testing.T, db *gorm.DB, phone string) *model.User {
	t.Helper()
	u := &model.User{Phone: phone, Nickname: "u" + phone}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func mustMealSet(t *testing.T, db *gorm.DB, price int64, maxPeople int) *model.MealSet {
	t.Helper()
	r := &model.Restaurant{Name: "Vibe Bistro", Location: "Downtown"}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	m := &model.MealSet{RestaurantID: r.ID, Title: "Set", Price: price, MinPeople: 1, MaxPeople: maxPeople}
	if err := db.Create(m).Error; err != nil {
		t.Fatalf("create meal set: %v", err)
	}
	return m
}

// mustBureau 创建饭局，发起人占一个 PAID 名额
func mustBureau(t *testing.T, db *gorm.DB, host *model.User, ms *model.MealSet, eventTime time.Time) *model.Bureau {
	t.Helper()
	b := &model.Bureau{HostID: host.ID, MealSetID: ms.ID, EventTime: eventTime, Status: model.BureauRecruiting}
	if err := (&BureauRepository{DB: db}).CreateWithHost(context.Background(), b, 0); err != nil {
		t.Fatalf("create bureau: %v", err)
	}
	return b
}

func countOutbox(t *testing.T, db *gorm.DB, event string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&model.EventOutbox{}).Where("event_type = ?", event).Count(&n).Error; err != nil {
		t.Fatalf("count outbox: %v", err)
	}
	return n
}
