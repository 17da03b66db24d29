package handler

import (
	"time"

	"Vibe_Eat/internal/model"
)

// 对外展示的结构，不暴露手机号等字段

type userView struct {
	ID        uint64   `json:"id"`
	Nickname  string   `json:"nickname"`
	Avatar    string   `json:"avatar"`
	School    string   `json:"school,omitempty"`
	Company   string   `json:"company,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	VibeScore int      `json:"vibe_score"`
	Interests []string `json:"interests"`
	Photos    []string `json:"photos,omitempty"`
}

type meView struct {
	userView
	Phone string `json:"phone"`
	Role  int    `json:"role"`
}

type mealSetView struct {
	ID           uint64 `json:"id"`
	RestaurantID uint64 `json:"restaurant_id"`
	Restaurant   string `json:"restaurant,omitempty"`
	Title        string `json:"title"`
	Price        int64  `json:"price"`
	MinPeople    int    `json:"min_people"`
	MaxPeople    int    `json:"max_people"`
	MenuDetails  string `json:"menu_details,omitempty"`
}

type restaurantView struct {
	ID       uint64        `json:"id"`
	Name     string        `json:"name"`
	Location string        `json:"location"`
	Image    string        `json:"image,omitempty"`
	MealSets []mealSetView `json:"meal_sets"`
}

type orderView struct {
	ID           uint64      `json:"id"`
	BureauID     uint64      `json:"bureau_id"`
	UserID       uint64      `json:"user_id"`
	Amount       int64       `json:"amount"`
	Status       string      `json:"status"`
	CancelledAt  *time.Time  `json:"cancelled_at,omitempty"`
	RefundAmount int64       `json:"refund_amount"`
	RefundStatus string      `json:"refund_status,omitempty"`
	User         *userView   `json:"user,omitempty"`
	Bureau       *bureauView `json:"bureau,omitempty"`
}

type bureauView struct {
	ID        uint64       `json:"id"`
	HostID    uint64       `json:"host_id"`
	EventTime time.Time    `json:"event_time"`
	Status    string       `json:"status"`
	PaidCount int          `json:"paid_count"`
	Host      *userView    `json:"host,omitempty"`
	MealSet   *mealSetView `json:"meal_set,omitempty"`
	Orders    []orderView  `json:"orders,omitempty"`
	Score     *int         `json:"score,omitempty"`
}

type messageView struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Nickname  string    `json:"nickname,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserView(u *model.User) *userView {
	if u == nil {
		return nil
	}
	return &userView{
		ID:        u.ID,
		Nickname:  u.Nickname,
		Avatar:    u.Avatar,
		School:    u.School,
		Company:   u.Company,
		Bio:       u.Bio,
		VibeScore: u.VibeScore,
		Interests: u.InterestTags(),
		Photos:    u.PhotoURLs(),
	}
}

func toMeView(u *model.User) meView {
	return meView{userView: *toUserView(u), Phone: u.Phone, Role: u.Role}
}

func toMealSetView(m *model.MealSet) *mealSetView {
	if m == nil {
		return nil
	}
	v := &mealSetView{
		ID:           m.ID,
		RestaurantID: m.RestaurantID,
		Title:        m.Title,
		Price:        m.Price,
		MinPeople:    m.MinPeople,
		MaxPeople:    m.MaxPeople,
		MenuDetails:  m.MenuDetails,
	}
	if m.Restaurant != nil {
		v.Restaurant = m.Restaurant.Name
	}
	return v
}

func toRestaurantView(r *model.Restaurant) restaurantView {
	v := restaurantView{
		ID:       r.ID,
		Name:     r.Name,
		Location: r.Location,
		Image:    r.Image,
		MealSets: make([]mealSetView, 0, len(r.MealSets)),
	}
	for i := range r.MealSets {
		v.MealSets = append(v.MealSets, *toMealSetView(&r.MealSets[i]))
	}
	return v
}

func toOrderView(o *model.Order) orderView {
	v := orderView{
		ID:           o.ID,
		BureauID:     o.BureauID,
		UserID:       o.UserID,
		Amount:       o.Amount,
		Status:       string(o.Status),
		CancelledAt:  o.CancelledAt,
		RefundAmount: o.RefundAmount,
		RefundStatus: string(o.RefundStatus),
		User:         toUserView(o.User),
	}
	if o.Bureau != nil {
		v.Bureau = toBureauView(o.Bureau)
	}
	return v
}

func toBureauView(b *model.Bureau) *bureauView {
	v := &bureauView{
		ID:        b.ID,
		HostID:    b.HostID,
		EventTime: b.EventTime,
		Status:    string(b.Status),
		PaidCount: b.PaidCount(),
		Host:      toUserView(b.Host),
		MealSet:   toMealSetView(b.MealSet),
	}
	for i := range b.Orders {
		v.Orders = append(v.Orders, toOrderView(&b.Orders[i]))
	}
	return v
}

func toMessageView(m *model.Message) messageView {
	v := messageView{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
	if m.User != nil {
		v.Nickname = m.User.Nickname
		v.Avatar = m.User.Avatar
	}
	return v
}

type reviewView struct {
	ID           uint64    `json:"id"`
	BureauID     uint64    `json:"bureau_id"`
	ReviewerID   uint64    `json:"reviewer_id"`
	TargetUserID uint64    `json:"target_user_id"`
	Comment      string    `json:"comment"`
	Tags         []string  `json:"tags"`
	CreatedAt    time.Time `json:"created_at"`
}

func toReviewView(r *model.Review) reviewView {
	v := reviewView{
		ID:           r.ID,
		BureauID:     r.BureauID,
		ReviewerID:   r.ReviewerID,
		TargetUserID: r.TargetUserID,
		Comment:      r.Comment,
		Tags:         make([]string, 0, len(r.Tags)),
		CreatedAt:    r.CreatedAt,
	}
	for _, t := range r.Tags {
		v.Tags = append(v.Tags, t.Tag)
	}
	return v
}
