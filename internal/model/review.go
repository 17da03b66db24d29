package model

import "time"

// Review 饭局结束后的互评，同一饭局内 reviewer -> target 只能评价一次
type Review struct {
	ID           uint64 `gorm:"primaryKey"`
	BureauID     uint64 `gorm:"not null;uniqueIndex:uk_review_triple,priority:1"`
	ReviewerID   uint64 `gorm:"not null;uniqueIndex:uk_review_triple,priority:2"`
	TargetUserID uint64 `gorm:"not null;uniqueIndex:uk_review_triple,priority:3;index"`
	Comment      string `gorm:"type:text"`
	CreatedAt    time.Time

	Tags []ReviewTag `gorm:"foreignKey:ReviewID"`
}

type ReviewTag struct {
	ID       uint64 `gorm:"primaryKey"`
	ReviewID uint64 `gorm:"not null;index"`
	Tag      string `gorm:"size:32;not null"`
}
