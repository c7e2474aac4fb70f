package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Content_Service/internal/model"
	"Content_Service/internal/pkg"
	"Content_Service/internal/repository/database"
)

// Sender delivers one outbox row downstream.
type Sender func(ctx context.Context, ob *model.ContentOutbox) error

// OutboxRelayer drains pending outbox rows to a Sender on a fixed interval.
type OutboxRelayer struct {
	repo      *database.OutboxRepository
	batchSize int
	interval  time.Duration
	maxRetry  int
	sender    Sender
	log       *zap.Logger
}

func NewOutboxRelayer(repo *database.OutboxRepository, sender Sender, log *zap.Logger) *OutboxRelayer {
	if log == nil {
		log = zap.NewNop()
	}
	return &OutboxRelayer{
		repo:      repo,
		batchSize: 200,
		interval:  time.Second,
		maxRetry:  5,
		sender:    sender,
		log:       log,
	}
}

// Run blocks until ctx is cancelled.
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

// DrainOnce sends one batch and returns how many rows were delivered.
func (r *OutboxRelayer) DrainOnce(ctx context.Context) int {
	if n, err := r.repo.Requeue(ctx, r.maxRetry); err != nil {
		r.log.Warn("outbox requeue failed", zap.Error(err))
	} else if n > 0 {
		r.log.Debug("outbox requeued", zap.Int64("rows", n))
	}

	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		r.log.Error("outbox query failed", zap.Error(err))
		return 0
	}
	sent := 0
	for i := range rows {
		ob := rows[i]
		if err := r.sender(ctx, &ob); err != nil {
			r.log.Warn("outbox send failed", zap.String("id", ob.ID), zap.String("type", ob.EventType), zap.Error(err))
			if err := r.repo.MarkFailed(ctx, ob.ID); err != nil {
				r.log.Error("outbox mark failed", zap.String("id", ob.ID), zap.Error(err))
			}
			continue
		}
		if err := r.repo.MarkSent(ctx, ob.ID); err != nil {
			r.log.Error("outbox mark sent failed", zap.String("id", ob.ID), zap.Error(err))
			continue
		}
		sent++
	}
	return sent
}

// LogSender only logs the event; used when no broker is configured.
func LogSender(log *zap.Logger) Sender {
	return func(ctx context.Context, ob *model.ContentOutbox) error {
		log.Info("outbox event",
			zap.String("type", ob.EventType),
			zap.String("subject_id", ob.SubjectID),
			zap.String("payload", ob.Payload))
		return nil
	}
}

// KafkaSender publishes the payload keyed by subject id.
func KafkaSender(p *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, ob *model.ContentOutbox) error {
		return p.Send(ctx, ob.SubjectID, []byte(ob.Payload), map[string]string{"event_type": ob.EventType})
	}
}
