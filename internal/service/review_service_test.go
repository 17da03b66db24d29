package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"Vibe_Eat/internal/pkg"
)

func TestReviewSubmit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewReviewService(env.reviews)

	host := env.user(t, "1000")
	guest := env.user(t, "1001")
	b := env.bureau(t, host, env.mealSet(t, 5000, 4), 48*time.Hour)

	rv, err := svc.Submit(ctx, b.ID, guest.ID, host.ID, []string{"Funny", "Funny", " Kind "}, " lovely dinner ")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rv.Comment != "lovely dinner" || len(rv.Tags) != 2 {
		t.Fatalf("review = %+v", rv)
	}
	if _, err = svc.Submit(ctx, b.ID, guest.ID, host.ID, nil, ""); !errors.Is(err, pkg.ErrDuplicateReview) {
		t.Fatalf("duplicate err = %v, want ErrDuplicateReview", err)
	}
	if _, err = svc.Submit(ctx, b.ID, host.ID, guest.ID, nil, ""); err != nil {
		t.Fatalf("reverse direction: %v", err)
	}

	u, _ := env.users.FindByID(ctx, host.ID)
	if u.VibeScore != ReviewVibeBonus {
		t.Fatalf("host vibe = %d, want %d", u.VibeScore, ReviewVibeBonus)
	}
	received, err := svc.ListReceived(ctx, host.ID)
	if err != nil || len(received) != 1 {
		t.Fatalf("ListReceived = %+v, %v", received, err)
	}
}

func TestReviewRejects(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewReviewService(env.reviews)
	host := env.user(t, "2000")
	b := env.bureau(t, host, env.mealSet(t, 5000, 4), 48*time.Hour)

	if _, err := svc.Submit(ctx, b.ID, host.ID, host.ID, nil, ""); !errors.Is(err, pkg.ErrInvalidState) {
		t.Fatalf("self review err = %v, want ErrInvalidState", err)
	}
	long := strings.Repeat("a", maxCommentRunes+1)
	if _, err := svc.Submit(ctx, b.ID, host.ID, 99, nil, long); !errors.Is(err, pkg.ErrInvalidParams) {
		t.Fatalf("long comment err = %v, want ErrInvalidParams", err)
	}
	if _, err := svc.Submit(ctx, b.ID, host.ID, 99, nil, ""); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("unknown target err = %v, want ErrNotFound", err)
	}
}
