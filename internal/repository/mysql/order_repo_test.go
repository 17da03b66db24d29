package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"

	"gorm.io/gorm"
)

var eventTime = time.Date(2030, 1, 1, 19, 0, 0, 0, time.UTC)

func TestJoin(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &OrderRepository{DB: db}

	host := mustUser(t, db, "1000")
	guest := mustUser(t, db, "1001")
	b := mustBureau(t, db, host, mustMealSet(t, db, 12800, 4), eventTime)

	o, err := repo.Join(ctx, b.ID, guest.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if o.Status != model.OrderPaid || o.Amount != 12800 {
		t.Fatalf("order = %+v, want PAID 12800", o)
	}
	if n, _ := repo.CountPaid(ctx, b.ID); n != 2 {
		t.Fatalf("paid = %d, want 2 (host + guest)", n)
	}
	if n := countOutbox(t, db, model.EventOrderJoined); n != 1 {
		t.Fatalf("order.joined events = %d, want 1", n)
	}

	if _, err = repo.Join(ctx, b.ID, guest.ID); !errors.Is(err, pkg.ErrAlreadyJoined) {
		t.Fatalf("second join err = %v, want ErrAlreadyJoined", err)
	}
	if _, err = repo.Join(ctx, b.ID, host.ID); !errors.Is(err, pkg.ErrAlreadyJoined) {
		t.Fatalf("host join err = %v, want ErrAlreadyJoined", err)
	}
	if _, err = repo.Join(ctx, 999, guest.ID); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("missing bureau err = %v, want ErrNotFound", err)
	}
}

func TestJoinFull(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &OrderRepository{DB: db}

	host := mustUser(t, db, "2000")
	b := mustBureau(t, db, host, mustMealSet(t, db, 5000, 2), eventTime)

	if _, err := repo.Join(ctx, b.ID, mustUser(t, db, "2001").ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	late := mustUser(t, db, "2002")
	if _, err := repo.Join(ctx, b.ID, late.ID); !errors.Is(err, pkg.ErrFull) {
		t.Fatalf("err = %v, want ErrFull", err)
	}
}

func TestCancelledSeatIsReleasedButNotRejoinable(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &OrderRepository{DB: db}

	host := mustUser(t, db, "3000")
	first := mustUser(t, db, "3001")
	b := mustBureau(t, db, host, mustMealSet(t, db, 5000, 2), eventTime)

	o, err := repo.Join(ctx, b.ID, first.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	at := eventTime.Add(-48 * time.Hour)
	if err = repo.MarkCancelled(ctx, o, at, 5000, model.RefundCompleted); err != nil {
		t.Fatalf("MarkCancelled: %v", err)
	}
	if err = repo.MarkCancelled(ctx, o, at, 5000, model.RefundCompleted); !errors.Is(err, pkg.ErrInvalidState) {
		t.Fatalf("second cancel err = %v, want ErrInvalidState", err)
	}

	got, err := repo.FindWithBureau(ctx, o.ID)
	if err != nil {
		t.Fatalf("FindWithBureau: %v", err)
	}
	if got.Status != model.OrderCancelled || got.RefundAmount != 5000 ||
		got.RefundStatus != model.RefundCompleted || got.CancelledAt == nil {
		t.Fatalf("cancelled order = %+v", got)
	}
	if got.Bureau == nil || !got.Bureau.EventTime.Equal(eventTime) {
		t.Fatalf("bureau not preloaded: %+v", got.Bureau)
	}

	if _, err = repo.Join(ctx, b.ID, first.ID); !errors.Is(err, pkg.ErrAlreadyJoined) {
		t.Fatalf("rejoin err = %v, want ErrAlreadyJoined", err)
	}
	if _, err = repo.Join(ctx, b.ID, mustUser(t, db, "3002").ID); err != nil {
		t.Fatalf("seat not released: %v", err)
	}
	if n := countOutbox(t, db, model.EventOrderCancelled); n != 1 {
		t.Fatalf("order.cancelled events = %d, want 1", n)
	}
}

func TestComplete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &OrderRepository{DB: db}
	users := &UserRepository{DB: db}

	host := mustUser(t, db, "4000")
	stay := mustUser(t, db, "4001")
	leave := mustUser(t, db, "4002")
	b := mustBureau(t, db, host, mustMealSet(t, db, 8000, 6), eventTime)

	if _, err := repo.Join(ctx, b.ID, stay.ID); err != nil {
		t.Fatalf("Join: %v", err)
	}
	o, err := repo.Join(ctx, b.ID, leave.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if err = repo.MarkCancelled(ctx, o, eventTime.Add(-time.Hour), 0, model.RefundDenied); err != nil {
		t.Fatalf("MarkCancelled: %v", err)
	}

	if _, err = repo.Complete(ctx, b.ID, stay.ID, 5); !errors.Is(err, pkg.ErrForbidden) {
		t.Fatalf("non-host complete err = %v, want ErrForbidden", err)
	}

	settled, err := repo.Complete(ctx, b.ID, host.ID, 5)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if len(settled) != 2 {
		t.Fatalf("settled = %v, want host and stay", settled)
	}

	wantScore := map[uint64]int{host.ID: 5, stay.ID: 5, leave.ID: 0}
	for id, want := range wantScore {
		u, err := users.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if u.VibeScore != want {
			t.Fatalf("user %d vibe = %d, want %d", id, u.VibeScore, want)
		}
	}

	var statuses []model.OrderStatus
	db.Model(&model.Order{}).Where("bureau_id = ?", b.ID).Order("id ASC").Pluck("status", &statuses)
	want := []model.OrderStatus{model.OrderSettled, model.OrderSettled, model.OrderCancelled}
	if fmt.Sprint(statuses) != fmt.Sprint(want) {
		t.Fatalf("statuses = %v, want %v", statuses, want)
	}

	// 再次结束不重复加分
	again, err := repo.Complete(ctx, b.ID, host.ID, 5)
	if err != nil || len(again) != 0 {
		t.Fatalf("second complete = %v, %v", again, err)
	}
	u, _ := users.FindByID(ctx, stay.ID)
	if u.VibeScore != 5 {
		t.Fatalf("vibe after second complete = %d, want 5", u.VibeScore)
	}
	if n := countOutbox(t, db, model.EventBureauCompleted); n != 1 {
		t.Fatalf("bureau.completed events = %d, want 1", n)
	}

	if _, err = repo.Join(ctx, b.ID, mustUser(t, db, "4003").ID); !errors.Is(err, pkg.ErrInvalidState) {
		t.Fatalf("join completed err = %v, want ErrInvalidState", err)
	}
	var settledOrder model.Order
	if err = db.Where("bureau_id = ? AND user_id = ?", b.ID, stay.ID).First(&settledOrder).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if err = repo.MarkCancelled(ctx, &settledOrder, eventTime, 0, model.RefundDenied); !errors.Is(err, pkg.ErrInvalidState) {
		t.Fatalf("cancel settled err = %v, want ErrInvalidState", err)
	}
}

func TestCompleteSkipsOrderCancelledBeforeSettle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &OrderRepository{DB: db}

	host := mustUser(t, db, "5000")
	stay := mustUser(t, db, "5001")
	leave := mustUser(t, db, "5002")
	b := mustBureau(t, db, host, mustMealSet(t, db, 1000, 4), eventTime)
	if _, err := repo.Join(ctx, b.ID, stay.ID); err != nil {
		t.Fatalf("join stay: %v", err)
	}
	left, err := repo.Join(ctx, b.ID, leave.ID)
	if err != nil {
		t.Fatalf("join leave: %v", err)
	}

	// 在读出 PAID 列表之后、更新订单状态之前取消 leave 的订单
	fired := false
	err = db.Callback().Update().Before("gorm:update").Register("test:cancel_before_settle", func(tx *gorm.DB) {
		if fired || tx.Statement.Table != "orders" {
			return
		}
		fired = true
		if err := tx.Session(&gorm.Session{NewDB: true}).
			Exec("UPDATE orders SET status = ? WHERE id = ?", model.OrderCancelled, left.ID).Error; err != nil {
			t.Errorf("cancel in settle: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	settled, err := repo.Complete(ctx, b.ID, host.ID, 5)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !fired {
		t.Fatal("cancel callback did not run")
	}
	if len(settled) != 2 || settled[0] != host.ID || settled[1] != stay.ID {
		t.Fatalf("settled = %v, want [%d %d]", settled, host.ID, stay.ID)
	}

	for _, tc := range []struct {
		id   uint64
		want int
	}{{host.ID, 5}, {stay.ID, 5}, {leave.ID, 0}} {
		var u model.User
		if err = db.First(&u, tc.id).Error; err != nil {
			t.Fatalf("load user %d: %v", tc.id, err)
		}
		if u.VibeScore != tc.want {
			t.Fatalf("user %d vibe = %d, want %d", tc.id, u.VibeScore, tc.want)
		}
	}
	var o model.Order
	if err = db.First(&o, left.ID).Error; err != nil {
		t.Fatalf("load order: %v", err)
	}
	if o.Status != model.OrderCancelled {
		t.Fatalf("cancelled order status = %s, want CANCELLED", o.Status)
	}
}

func TestHasActiveOrderAndListByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := &OrderRepository{DB: db}

	host := mustUser(t, db, "6000")
	guest := mustUser(t, db, "6001")
	b := mustBureau(t, db, host, mustMealSet(t, db, 1000, 4), eventTime)

	if ok, _ := repo.HasActiveOrder(ctx, b.ID, guest.ID); ok {
		t.Fatal("guest active before joining")
	}
	o, err := repo.Join(ctx, b.ID, guest.ID)
	if err != nil {
		t.Fatalf("Join: %v", err)
	}
	if ok, _ := repo.HasActiveOrder(ctx, b.ID, guest.ID); !ok {
		t.Fatal("paid guest not active")
	}
	if err = repo.MarkCancelled(ctx, o, eventTime.Add(-time.Hour), 0, model.RefundDenied); err != nil {
		t.Fatalf("MarkCancelled: %v", err)
	}
	if ok, _ := repo.HasActiveOrder(ctx, b.ID, guest.ID); ok {
		t.Fatal("cancelled guest still active")
	}

	list, err := repo.ListByUser(ctx, guest.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 1 || list[0].Bureau == nil || list[0].Bureau.MealSet == nil || list[0].Bureau.MealSet.Restaurant == nil {
		t.Fatalf("ListByUser = %+v, want one order with bureau, meal set and restaurant", list)
	}
}
