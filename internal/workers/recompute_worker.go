package workers

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/campushire/campushire/internal/services"
)

const RecomputeStream = "consolidation:recompute"

// RecomputePublisher pushes recompute triggers onto the Redis stream when an
// interview reaches a terminal state or its verdict changes.
type RecomputePublisher struct {
	Redis *redis.Client
}

func (p *RecomputePublisher) NotifyRecompute(ctx context.Context, studentID, sessionID uint) error {
	return p.Redis.XAdd(ctx, &redis.XAddArgs{
		Stream: RecomputeStream,
		Values: map[string]any{
			"student_id": strconv.FormatUint(uint64(studentID), 10),
			"session_id": strconv.FormatUint(uint64(sessionID), 10),
		},
	}).Err()
}

// RecomputeWorkerPool consumes recompute triggers and refreshes the
// consolidation table. The aggregator is a full recompute, so any trigger
// refreshes everything; concurrent runs are safe (last writer wins per
// group).
type RecomputeWorkerPool struct {
	Redis         *redis.Client
	Consolidation services.ConsolidationService
	NumWorkers    int

	Logger *logrus.Logger

	Stream         string
	Group          string
	ConsumerPrefix string
}

func (p *RecomputeWorkerPool) Start(ctx context.Context) error {
	if p.Redis == nil || p.Consolidation == nil {
		return errors.New("RecomputeWorkerPool missing dependency: Redis/Consolidation must be set")
	}
	if p.Stream == "" {
		p.Stream = RecomputeStream
	}
	if p.Group == "" {
		p.Group = "consolidation-workers"
	}
	if p.ConsumerPrefix == "" {
		p.ConsumerPrefix = "c"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 2
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	_ = p.Redis.XGroupCreateMkStream(ctx, p.Stream, p.Group, "0").Err() // ignore BUSYGROUP

	for i := 0; i < p.NumWorkers; i++ {
		consumer := p.ConsumerPrefix + "-" + strconv.Itoa(i+1)
		go p.runConsumer(ctx, consumer)
	}
	return nil
}

func (p *RecomputeWorkerPool) runConsumer(ctx context.Context, consumer string) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := p.Redis.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    p.Group,
			Consumer: consumer,
			Streams:  []string{p.Stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, stream := range res {
			for _, msg := range stream.Messages {
				p.handleMsg(ctx, consumer, msg)
				_ = p.Redis.XAck(ctx, p.Stream, p.Group, msg.ID).Err()
			}
		}
	}
}

func (p *RecomputeWorkerPool) handleMsg(ctx context.Context, consumer string, msg redis.XMessage) {
	entry := p.Logger.WithFields(logrus.Fields{
		"consumer":   consumer,
		"message_id": msg.ID,
		"student_id": msg.Values["student_id"],
		"session_id": msg.Values["session_id"],
	})

	count, err := p.Consolidation.Recompute(ctx)
	if err != nil {
		entry.WithError(err).Error("consolidation recompute failed")
		return
	}
	entry.WithField("upserted", count).Info("consolidation recomputed")
}
