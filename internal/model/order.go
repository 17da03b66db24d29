package model

import "time"

type OrderStatus string

const (
	OrderPaid      OrderStatus = "PAID"
	OrderCancelled OrderStatus = "CANCELLED"
	OrderSettled   OrderStatus = "SETTLED"
)

type RefundStatus string

const (
	RefundNone      RefundStatus = ""
	RefundCompleted RefundStatus = "COMPLETED"
	RefundDenied    RefundStatus = "DENIED"
)

// Order 参团订单。(bureau_id, user_id) 唯一，取消后也不能再次加入
type Order struct {
	ID          uint64      `gorm:"primaryKey"`
	BureauID    uint64      `gorm:"not null;uniqueIndex:uk_bureau_user;index:idx_bureau_status,priority:1"`
	UserID      uint64      `gorm:"not null;uniqueIndex:uk_bureau_user;index"`
	Amount      int64       `gorm:"not null"` // 加入时的套餐价格快照
	Status      OrderStatus `gorm:"size:16;not null;index:idx_bureau_status,priority:2"`
	CancelledAt *time.Time

	RefundAmount int64        `gorm:"not null;default:0"`
	RefundStatus RefundStatus `gorm:"size:16;not null;default:''"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Bureau *Bureau `gorm:"foreignKey:BureauID"`
	User   *User   `gorm:"foreignKey:UserID"`
}

// Terminal CANCELLED 和 SETTLED 之后不再变化
func (o *Order) Terminal() bool {
	return o.Status == OrderCancelled || o.Status == OrderSettled
}

// Active PAID 或 SETTLED 的订单视为饭局成员
func (o *Order) Active() bool {
	return o.Status == OrderPaid || o.Status == OrderSettled
}
