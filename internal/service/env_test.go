package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
	"Vibe_Eat/internal/repository/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// testEnv 内存 sqlite + miniredis，时钟固定在 testNow
type testEnv struct {
	db    *gorm.DB
	mr    *miniredis.Miniredis
	rdb   *goredis.Client
	clock pkg.Clock
	log   *slog.Logger

	users       *mysql.UserRepository
	restaurants *mysql.RestaurantRepository
	mealSets    *mysql.MealSetRepository
	bureaus     *mysql.BureauRepository
	orders      *mysql.OrderRepository
	messages    *mysql.MessageRepository
	reviews     *mysql.ReviewRepository
	outbox      *mysql.OutboxRepository
	sessions    *redis.SessionRepository
	lock        *redis.DistLock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return openTestEnv(t, ":memory:", 1)
}

// newFileTestEnv 文件 sqlite，多连接，数据库层不再串行，同一饭局的写入只靠分布式锁互斥
func newFileTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "vibe.db") + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	env := openTestEnv(t, dsn, 8)
	env.lock.Wait = 10 * time.Second
	return env
}

func openTestEnv(t *testing.T, dsn string, conns int) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
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
	sqlDB.SetMaxOpenConns(conns)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err = mysql.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return &testEnv{
		db:          db,
		mr:          mr,
		rdb:         rdb,
		clock:       pkg.FixedClock{T: testNow},
		log:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		users:       &mysql.UserRepository{DB: db},
		restaurants: &mysql.RestaurantRepository{DB: db},
		mealSets:    &mysql.MealSetRepository{DB: db},
		bureaus:     &mysql.BureauRepository{DB: db},
		orders:      &mysql.OrderRepository{DB: db},
		messages:    &mysql.MessageRepository{DB: db},
		reviews:     &mysql.ReviewRepository{DB: db},
		outbox:      &mysql.OutboxRepository{DB: db},
		sessions:    &redis.SessionRepository{RDB: rdb, TTL: time.Hour},
		lock:        &redis.DistLock{RDB: rdb, TTL: 5 * time.Second, Wait: 50 * time.Millisecond},
	}
}

func (e *testEnv) orderService() *OrderService {
	return NewOrderService(e.orders, e.lock, e.clock, e.log)
}

func (e *testEnv) bureauService() *BureauService {
	return NewBureauService(e.bureaus, e.users, e.clock)
}

func (e *testEnv) user(t *testing.T, phone string) *model.User {
	t.Helper()
	u := &model.User{Phone: phone, Nickname: "u" + phone}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u
}

func (e *testEnv) mealSet(t *testing.T, price int64, maxPeople int) *model.MealSet {
	t.Helper()
	r := &model.Restaurant{Name: "Sakura Sushi", Location: "Tech Park"}
	if err := e.restaurants.Create(context.Background(), r); err != nil {
		t.Fatalf("create restaurant: %v", err)
	}
	m := &model.MealSet{RestaurantID: r.ID, Title: "Omakase", Price: price, MinPeople: 1, MaxPeople: maxPeople}
	if err := e.mealSets.Create(context.Background(), m); err != nil {
		t.Fatalf("create meal set: %v", err)
	}
	return m
}

// bureau 以 host 身份创建，开始时间为 testNow + until
func (e *testEnv) bureau(t *testing.T, host *model.User, ms *model.MealSet, until time.Duration) *model.Bureau {
	t.Helper()
	b, err := e.bureauService().Create(context.Background(), host.ID, ms.ID, testNow.Add(until))
	if err != nil {
		t.Fatalf("create bureau: %v", err)
	}
	return b
}

// countingLocker 记录同时持有锁的最大数量
type countingLocker struct {
	BureauLocker

	mu      sync.Mutex
	holding int
	max     int
}

func (l *countingLocker) Acquire(ctx context.Context, bureauID uint64) (string, bool, error) {
	token, ok, err := l.BureauLocker.Acquire(ctx, bureauID)
	if ok {
		l.mu.Lock()
		l.holding++
		l.max = max(l.max, l.holding)
		l.mu.Unlock()
	}
	return token, ok, err
}

func (l *countingLocker) Release(ctx context.Context, bureauID uint64, token string) error {
	l.mu.Lock()
	l.holding--
	l.mu.Unlock()
	return l.BureauLocker.Release(ctx, bureauID, token)
}
