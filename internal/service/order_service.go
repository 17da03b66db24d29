package service

import (
	"context"
	"fmt"
	"log/slog"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
)

// SettleVibeBonus 饭局正常结束，每位参与者加分
const SettleVibeBonus = 5

// BureauLocker 饭局维度互斥，redis.DistLock 实现
type BureauLocker interface {
	Acquire(ctx context.Context, bureauID uint64) (string, bool, error)
	Release(ctx context.Context, bureauID uint64, token string) error
}

type OrderService struct {
	repo  *mysql.OrderRepository
	lock  BureauLocker
	clock pkg.Clock
	log   *slog.Logger
}

func NewOrderService(repo *mysql.OrderRepository, lock BureauLocker, clock pkg.Clock, log *slog.Logger) *OrderService {
	return &OrderService{repo: repo, lock: lock, clock: clock, log: log}
}

// withBureauLock 在锁的 Wait 时间内轮询，超时仍拿不到锁返回 ErrBureauBusy
func (s *OrderService) withBureauLock(ctx context.Context, bureauID uint64, fn func() error) error {
	token, ok, err := s.lock.Acquire(ctx, bureauID)
	if err != nil {
		return fmt.Errorf("acquire bureau lock: %w", err)
	}
	if !ok {
		return pkg.ErrBureauBusy
	}
	defer func() {
		if err := s.lock.Release(context.WithoutCancel(ctx), bureauID, token); err != nil {
			s.log.Warn("release bureau lock", "bureau_id", bureauID, "err", err)
		}
	}()
	return fn()
}

// Join 加入饭局，支付模拟为立即成功
func (s *OrderService) Join(ctx context.Context, bureauID, userID uint64) (*model.Order, error) {
	if bureauID == 0 || userID == 0 {
		return nil, pkg.ErrInvalidParams
	}
	var order *model.Order
	err := s.withBureauLock(ctx, bureauID, func() error {
		var err error
		order, err = s.repo.Join(ctx, bureauID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("order joined", "order_id", order.ID, "bureau_id", bureauID, "user_id", userID, "amount", order.Amount)
	return order, nil
}

// Cancel 取消订单并按距开始时间计算退款，只记账不调用支付渠道
func (s *OrderService) Cancel(ctx context.Context, orderID, userID uint64) (*Refund, error) {
	if orderID == 0 || userID == 0 {
		return nil, pkg.ErrInvalidParams
	}
	order, err := s.repo.FindWithBureau(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, pkg.ErrForbidden
	}
	if order.Status != model.OrderPaid {
		return nil, pkg.ErrInvalidState
	}
	if order.Bureau == nil {
		return nil, fmt.Errorf("order %d: %w", orderID, pkg.ErrNotFound)
	}

	now := s.clock.Now()
	refund := ComputeRefund(order.Amount, order.Bureau.EventTime, now)
	if err = s.repo.MarkCancelled(ctx, order, now, refund.Amount, refund.Status); err != nil {
		return nil, err
	}
	s.log.Info("order cancelled", "order_id", orderID, "user_id", userID,
		"refund_amount", refund.Amount, "refund_status", refund.Status)
	return &refund, nil
}

// Complete 发起人结束饭局，返回本次结算的人数。重复调用不会重复加分
func (s *OrderService) Complete(ctx context.Context, bureauID, userID uint64) (int, error) {
	if bureauID == 0 || userID == 0 {
		return 0, pkg.ErrInvalidParams
	}
	var settled []uint64
	err := s.withBureauLock(ctx, bureauID, func() error {
		var err error
		settled, err = s.repo.Complete(ctx, bureauID, userID, SettleVibeBonus)
		return err
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("bureau completed", "bureau_id", bureauID, "settled", len(settled))
	return len(settled), nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uint64) ([]model.Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
