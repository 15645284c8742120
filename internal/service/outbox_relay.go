package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"llmboard/internal/model"
	"llmboard/internal/pkg"
	"llmboard/internal/repository/mysql"
)

type Sender func(ctx context.Context, ob *model.ReputationOutbox) error

// OutboxRelayer 积分事件外发：轮询 outbox 表，逐条投递
type OutboxRelayer struct {
	repo      *mysql.ReputationOutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewOutboxRelayer(db *gorm.DB, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      &mysql.ReputationOutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

// Run outbox启动器
func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Printf("outbox query err: %v", err)
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// LogSender 默认 sender：没配 Kafka 时只打日志
func LogSender(ctx context.Context, ob *model.ReputationOutbox) error {
	log.Printf("OUTBOX SEND type=%s user=%s points=%d payload=%s", ob.EventType, ob.UserID, ob.Points, ob.Payload)
	return nil
}

// KafkaSender 投递到 Kafka，按 outbox id 做分区键
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ReputationOutbox) error {
		return producer.Send(ctx, pkg.MakeKeyFromID(ob.ID), []byte(ob.Payload))
	}
}
