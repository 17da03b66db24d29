package model

import "time"

const (
	EventOrderJoined     = "order.joined"
	EventOrderCancelled  = "order.cancelled"
	EventBureauCompleted = "bureau.completed"
	EventReviewSubmitted = "review.submitted"
)

const (
	OutboxPending = 0
	OutboxSent    = 1
	OutboxFailed  = 2
)

// EventOutbox 业务事件表，与业务写入同一事务，由 relayer 异步投递到 kafka
type EventOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:32;not null"`
	AggregateID uint64 `gorm:"not null"`
	Payload     string `gorm:"type:text;not null"`
	Status      int8   `gorm:"not null;default:0;index;comment:'0=pending,1=sent,2=failed'"`
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (EventOutbox) TableName() string { return "event_outbox" }
