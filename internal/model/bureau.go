package model

import "time"

type BureauStatus string

const (
	BureauRecruiting BureauStatus = "RECRUITING"
	BureauCompleted  BureauStatus = "COMPLETED"
)

// Bureau 饭局：由发起人基于某个套餐创建，状态只能 RECRUITING -> COMPLETED
type Bureau struct {
	ID        uint64       `gorm:"primaryKey"`
	HostID    uint64       `gorm:"not null;index"`
	MealSetID uint64       `gorm:"not null;index"`
	EventTime time.Time    `gorm:"not null;index:idx_status_time,priority:2"`
	Status    BureauStatus `gorm:"size:16;not null;default:'RECRUITING';index:idx_status_time,priority:1"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Host    *User    `gorm:"foreignKey:HostID"`
	MealSet *MealSet `gorm:"foreignKey:MealSetID"`
	Orders  []Order  `gorm:"foreignKey:BureauID"`
}

// PaidCount 当前已支付人数
func (b *Bureau) PaidCount() int {
	n := 0
	for _, o := range b.Orders {
		if o.Status == OrderPaid {
			n++
		}
	}
	return n
}
