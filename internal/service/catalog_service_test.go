package service

import (
	"context"
	"errors"
	"testing"

	"Vibe_Eat/internal/pkg"
)

func TestCatalog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := NewCatalogService(env.restaurants, env.mealSets)

	if _, err := svc.CreateRestaurant(ctx, " ", "Downtown", ""); !errors.Is(err, pkg.ErrInvalidParams) {
		t.Fatalf("blank name err = %v", err)
	}
	r, err := svc.CreateRestaurant(ctx, "Vibe Bistro", "Downtown", "")
	if err != nil {
		t.Fatalf("CreateRestaurant: %v", err)
	}

	bad := []MealSetInput{
		{RestaurantID: r.ID, Title: "", Price: 100, MinPeople: 1, MaxPeople: 2},
		{RestaurantID: r.ID, Title: "Set", Price: -1, MinPeople: 1, MaxPeople: 2},
		{RestaurantID: r.ID, Title: "Set", Price: 100, MinPeople: 0, MaxPeople: 2},
		{RestaurantID: r.ID, Title: "Set", Price: 100, MinPeople: 3, MaxPeople: 2},
		{RestaurantID: 0, Title: "Set", Price: 100, MinPeople: 1, MaxPeople: 2},
	}
	for i, in := range bad {
		if _, err = svc.CreateMealSet(ctx, in); !errors.Is(err, pkg.ErrInvalidParams) {
			t.Fatalf("bad[%d] err = %v, want ErrInvalidParams", i, err)
		}
	}
	if _, err = svc.CreateMealSet(ctx, MealSetInput{RestaurantID: 999, Title: "Set", Price: 100, MinPeople: 1, MaxPeople: 2}); !errors.Is(err, pkg.ErrNotFound) {
		t.Fatalf("unknown restaurant err = %v, want ErrNotFound", err)
	}

	m, err := svc.CreateMealSet(ctx, MealSetInput{RestaurantID: r.ID, Title: "Brunch", Price: 12800, MinPeople: 2, MaxPeople: 4})
	if err != nil {
		t.Fatalf("CreateMealSet: %v", err)
	}
	updated, err := svc.UpdateMealSet(ctx, m.ID, MealSetInput{Title: "Brunch+", Price: 13800, MinPeople: 2, MaxPeople: 6})
	if err != nil {
		t.Fatalf("UpdateMealSet: %v", err)
	}
	if updated.Title != "Brunch+" || updated.MaxPeople != 6 || updated.RestaurantID != r.ID {
		t.Fatalf("updated = %+v", updated)
	}

	list, err := svc.ListRestaurants(ctx)
	if err != nil || len(list) != 1 || len(list[0].MealSets) != 1 {
		t.Fatalf("ListRestaurants = %+v, %v", list, err)
	}
	if err = svc.DeleteMealSet(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMealSet: %v", err)
	}
	sets, _ := svc.ListMealSets(ctx)
	if len(sets) != 0 {
		t.Fatalf("meal sets after delete = %d", len(sets))
	}
}
