package model

import "time"

type Restaurant struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:128;not null"`
	Location  string `gorm:"size:255;not null"`
	Image     string `gorm:"size:512"`
	CreatedAt time.Time
	UpdatedAt time.Time

	MealSets []MealSet `gorm:"foreignKey:RestaurantID"`
}

// MealSet 餐厅套餐，价格以分为单位
type MealSet struct {
	ID           uint64 `gorm:"primaryKey"`
	RestaurantID uint64 `gorm:"not null;index"`
	Title        string `gorm:"size:128;not null"`
	Price        int64  `gorm:"not null"`
	MinPeople    int    `gorm:"not null"`
	MaxPeople    int    `gorm:"not null"`
	MenuDetails  string `gorm:"type:text"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantID"`
}

// ValidHeadcount 1 <= min <= max
func (m *MealSet) ValidHeadcount() bool {
	return m.MinPeople >= 1 && m.MinPeople <= m.MaxPeople
}
