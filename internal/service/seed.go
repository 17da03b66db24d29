package service

import (
	"context"
	"fmt"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/repository/mysql"
)

// Seed 演示数据，餐厅表非空时跳过
func Seed(ctx context.Context, restaurants *mysql.RestaurantRepository, users *mysql.UserRepository) error {
	n, err := restaurants.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	demo := []model.Restaurant{
		{
			Name:     "Vibe Bistro",
			Location: "Downtown Art District",
			Image:    "https://images.unsplash.com/photo-1517248135467-4c7edcad34c4?w=800&q=80",
			MealSets: []model.MealSet{
				{Title: "Weekend Brunch Set", Price: 12800, MinPeople: 4, MaxPeople: 6, MenuDetails: "Avocado Toast, Eggs Benedict, Pancakes, Coffee"},
				{Title: "Dinner Party Platter", Price: 29900, MinPeople: 6, MaxPeople: 8, MenuDetails: "Steak, Pasta, Salad, Wine"},
			},
		},
		{
			Name:     "Sakura Sushi",
			Location: "Tech Park",
			Image:    "https://images.unsplash.com/photo-1579871494447-9811cf80d66c?w=800&q=80",
			MealSets: []model.MealSet{
				{Title: "Omakase Experience", Price: 58800, MinPeople: 2, MaxPeople: 4, MenuDetails: "Chef Choice Sushi, Sashimi, Miso Soup, Dessert"},
			},
		},
	}
	for i := range demo {
		if err = restaurants.Create(ctx, &demo[i]); err != nil {
			return fmt.Errorf("seed restaurant %s: %w", demo[i].Name, err)
		}
	}

	host, _, err := users.FindOrCreateByPhone(ctx, &model.User{
		Phone:     "13800138000",
		Nickname:  "Alex",
		Avatar:    fmt.Sprintf(avatarURL, "Alex"),
		School:    "Tech University",
		Bio:       "Foodie & Developer",
		VibeScore: 100,
	})
	if err != nil {
		return fmt.Errorf("seed host: %w", err)
	}
	return users.UpdateProfile(ctx, host.ID, mysql.ProfileUpdate{
		Nickname:  host.Nickname,
		School:    host.School,
		Company:   host.Company,
		Bio:       host.Bio,
		Interests: []string{"Foodie", "Tech", "Travel"},
		Photos: []string{
			"https://images.unsplash.com/photo-1542596594-649edbc13630?w=800&q=80",
			"https://images.unsplash.com/photo-1552374196-c4e7ffc6e194?w=800&q=80",
		},
	})
}
