package service

import (
	"time"

	"Vibe_Eat/internal/model"
)

const (
	fullRefundWindow = 24 * time.Hour
	halfRefundWindow = 3 * time.Hour
)

type Refund struct {
	Amount int64              `json:"refund_amount"`
	Status model.RefundStatus `json:"refund_status"`
}

// ComputeRefund 距开始 >=24h 全额，[3h,24h) 退一半（分，向下取整），<3h 不退。边界归入更高档
func ComputeRefund(amount int64, eventTime, now time.Time) Refund {
	until := eventTime.Sub(now)
	switch {
	case until >= fullRefundWindow:
		return Refund{Amount: amount, Status: model.RefundCompleted}
	case until >= halfRefundWindow:
		return Refund{Amount: amount / 2, Status: model.RefundCompleted}
	default:
		return Refund{Amount: 0, Status: model.RefundDenied}
	}
}
