package pkg

import "errors"

// 业务错误，均为可预期结果，由 handler 映射为对应的 HTTP 状态码
var (
	ErrNotFound        = errors.New("not found")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid state")
	ErrAlreadyJoined   = errors.New("already joined")
	ErrFull            = errors.New("party is full")
	ErrDuplicateReview = errors.New("already reviewed this user for this bureau")
	ErrInvalidParams   = errors.New("invalid params")
	ErrBureauBusy      = errors.New("bureau is busy, try again")
)
