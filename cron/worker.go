package cron

import (
	"context"
	"fmt"
	"time"

	"homeserve/config"
	"homeserve/models"
	"homeserve/services/actor"
	"homeserve/services/marketplace"
	"homeserve/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// GatewayIdentity yields the identity phone bookings are submitted under.
type GatewayIdentity func() (actor.Caller, error)

// IVRBookingHandler submits a phone booking to the backend as the IVR
// gateway identity.
func IVRBookingHandler(svc marketplace.Service, gateway GatewayIdentity, logger *zap.Logger) func(context.Context, models.IVRBookingRequest) error {
	return func(ctx context.Context, req models.IVRBookingRequest) error {
		if err := req.Validate(); err != nil {
			logger.Warn("Rejected IVR booking", zap.Error(err))
			return err
		}

		caller, err := gateway()
		if err != nil {
			return fmt.Errorf("ivr gateway identity: %w", err)
		}
		ctx = actor.WithCaller(ctx, caller)
		if err := svc.CreateIvrVerification(ctx, req); err != nil {
			logger.Error("IVR booking failed",
				zap.String("mobile", req.Mobile),
				zap.Uint64("category", uint64(req.ServiceCategory)),
				zap.Error(err))
			return err
		}

		logger.Info("IVR booking created", zap.String("mobile", req.Mobile), zap.String("slot", req.TimeSlot))
		return nil
	}
}

func RedisQueueOpt(cfg config.Config) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisQueueDB,
	}
}

// InitIVRWorker starts the IVR booking worker in the background. The returned
// server must be shut down by the caller.
func InitIVRWorker(cfg config.Config, handle func(context.Context, models.IVRBookingRequest) error, logger *zap.Logger) *asynq.Server {
	srv := asynq.NewServer(
		RedisQueueOpt(cfg),
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				tasks.QueueIVR: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeIVRBooking, handleIVRTask(handle))

	go func() {
		logger.Info("Starting IVR worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Start(mux)
			if err == nil {
				return
			}
			logger.Warn("IVR worker failed to start", zap.Int("attempt", attempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Error("IVR worker gave up after max attempts")
				return
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()

	return srv
}

func handleIVRTask(handle func(context.Context, models.IVRBookingRequest) error) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		req, err := tasks.ParseIVRBookingTask(task)
		if err != nil {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return handle(ctx, req)
	}
}
