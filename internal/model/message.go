package model

import "time"

type Message struct {
	ID        uint64 `gorm:"primaryKey"`
	BureauID  uint64 `gorm:"not null;index:idx_bureau_id,priority:1"`
	UserID    uint64 `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time

	User *User `gorm:"foreignKey:UserID"`
}
