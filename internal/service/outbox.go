package service

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"Vibe_Eat/internal/model"
	"Vibe_Eat/internal/pkg"
	"Vibe_Eat/internal/repository/mysql"
)

const outboxMaxRetry = 10

type Sender func(ctx context.Context, ob *model.EventOutbox) error

// OutboxRelayer 从 event_outbox 表读取事件异步投递
type OutboxRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
	log       *slog.Logger
}

func NewOutboxRelayer(repo *mysql.OutboxRepository, sender Sender, batchSize int, interval time.Duration, log *slog.Logger) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		batchSize: batchSize,
		interval:  interval,
		sender:    sender,
		log:       log,
	}
}

// Run outbox启动器，ctx 取消后退出
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.DrainOnce(ctx)
		}
	}
}

// DrainOnce 投递一批，返回成功条数
func (r *OutboxRelayer) DrainOnce(ctx context.Context) int {
	rows, err := r.repo.List(ctx, r.batchSize, outboxMaxRetry)
	if err != nil {
		r.log.Error("outbox query", "err", err)
		return 0
	}
	sent := 0
	// 同一饭局的事件有一条投递失败，本批次该饭局后续的事件都留到下一轮
	blocked := make(map[uint64]bool)
	for i := range rows {
		ob := rows[i]
		if blocked[ob.AggregateID] {
			continue
		}
		if err = r.sender(ctx, &ob); err != nil {
			blocked[ob.AggregateID] = true
			r.log.Warn("outbox send", "id", ob.ID, "type", ob.EventType, "retry", ob.Retry, "err", err)
			if err = r.repo.RetryUpdate(ctx, ob.ID); err != nil {
				r.log.Error("outbox retry update", "id", ob.ID, "err", err)
			}
			continue
		}
		if err = r.repo.SuccessUpdate(ctx, ob.ID); err != nil {
			blocked[ob.AggregateID] = true
			r.log.Error("outbox success update", "id", ob.ID, "err", err)
			continue
		}
		sent++
	}
	return sent
}

// KafkaSender 以饭局 id 作为 key，同一饭局的事件进入同一分区
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.EventOutbox) error {
		return p.Send(ctx, pkg.MakeKeyFromID(ob.AggregateID), []byte(ob.Payload), map[string]string{
			"event_type": ob.EventType,
			"event_id":   strconv.FormatUint(ob.ID, 10),
		})
	}
}

// LogSender 未配置 kafka 时只打日志
func LogSender(log *slog.Logger) Sender {
	return func(ctx context.Context, ob *model.EventOutbox) error {
		log.Info("outbox event", "id", ob.ID, "type", ob.EventType, "aggregate_id", ob.AggregateID, "payload", ob.Payload)
		return nil
	}
}
