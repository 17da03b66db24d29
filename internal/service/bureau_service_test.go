package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
)

func TestCreateBureau(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.bureauService()
	host := env.user(t, "1000")
	ms := env.mealSet(t, 5000, 4)

	b, err := svc.Create(ctx, host.ID, ms.ID, testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	detail, err := svc.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if detail.PaidCount() != 1 || detail.Orders[0].UserID != host.ID || detail.Orders[0].Amount != 0 {
		t.Fatalf("host order = %+v", detail.Orders)
	}

	if _, err = svc.Create(ctx, host.ID, ms.ID, testNow); !errors.Is(err, pkg.ErrInvalidParams) {
		t.Fatalf("past event err = %v, want ErrInvalidParams", err)
	}
	if _, err = svc.Create(ctx, host.ID, 999, testNow.Add(time.Hour)); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("missing meal set err = %v, want ErrNotFound", err)
	}
	if _, err = svc.Get(ctx, 999); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("Get missing err = %v, want ErrNotFound", err)
	}

	hosted, err := svc.ListHosted(ctx, host.ID)
	if err != nil || len(hosted) != 1 {
		t.Fatalf("ListHosted = %+v, %v", hosted, err)
	}
}

func TestRecommend(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := env.bureauService()
	orders := env.orderService()
	ms := env.mealSet(t, 5000, 6)

	viewer := env.user(t, "1000")
	if err := env.users.UpdateProfile(ctx, viewer.ID, mysql.ProfileUpdate{
		Nickname: "viewer", School: "Tsinghua", Interests: []string{"Foodie", "Tech"},
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	classmate := env.user(t, "1001")
	if err := env.users.UpdateProfile(ctx, classmate.ID, mysql.ProfileUpdate{
		Nickname: "classmate", School: "Tsinghua", Interests: []string{"Tech"},
	}); err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	stranger := env.user(t, "1002")

	plain := env.bureau(t, stranger, ms, 2*time.Hour)
	match := env.bureau(t, classmate, ms, 3*time.Hour)
	busy := env.bureau(t, stranger, ms, time.Hour)
	for _, phone := range []string{"2001", "2002"} {
		if _, err := orders.Join(ctx, busy.ID, env.user(t, phone).ID); err != nil {
			t.Fatalf("Join: %v", err)
		}
	}

	got, err := svc.Recommend(ctx, viewer.ID)
	if err != nil {
		t.Fatalf("Recommend: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// classmate: 30 + 10 + 5; busy: 3 orders * 5; plain: host order only
	want := []struct {
		id    uint64
		score int
	}{{match.ID, 45}, {busy.ID, 15}, {plain.ID, 5}}
	for i, w := range want {
		if got[i].Bureau.ID != w.id || got[i].Score != w.score {
			t.Fatalf("rank %d = bureau %d score %d, want bureau %d score %d",
				i, got[i].Bureau.ID, got[i].Score, w.id, w.score)
		}
	}

	if _, err = svc.Recommend(ctx, 999); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("unknown viewer err = %v, want ErrNotFound", err)
	}
}
