package tasks

import (
	"context"
	"encoding/json"
	"fmt"

	"homeserve/models"

	"github.com/hibiken/asynq"
)

const (
	TypeIVRBooking = "ivr:booking"
	QueueIVR       = "ivr"
)

// NewIVRBookingTask wraps a phone booking for the worker. Tasks are not
// retried: a failed booking is archived for an operator to look at.
func NewIVRBookingTask(req models.IVRBookingRequest) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(req)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeIVRBooking, b)
	opts := []asynq.Option{asynq.Queue(QueueIVR), asynq.MaxRetry(0)}

	return task, opts, nil
}

// ParseIVRBookingTask decodes a task built by NewIVRBookingTask.
func ParseIVRBookingTask(task *asynq.Task) (models.IVRBookingRequest, error) {
	var req models.IVRBookingRequest
	if err := json.Unmarshal(task.Payload(), &req); err != nil {
		return req, fmt.Errorf("invalid %s payload: %w", TypeIVRBooking, err)
	}
	return req, nil
}

// IVRBookingQueue accepts phone bookings received from the telephony webhook.
type IVRBookingQueue interface {
	Enqueue(ctx context.Context, req models.IVRBookingRequest) error
}

// AsynqIVRQueue hands bookings to the background worker.
type AsynqIVRQueue struct {
	Client *asynq.Client
}

func NewAsynqIVRQueue(client *asynq.Client) *AsynqIVRQueue {
	return &AsynqIVRQueue{Client: client}
}

func (q *AsynqIVRQueue) Enqueue(ctx context.Context, req models.IVRBookingRequest) error {
	task, opts, err := NewIVRBookingTask(req)
	if err != nil {
		return err
	}
	_, err = q.Client.EnqueueContext(ctx, task, opts...)
	return err
}

// DirectIVRQueue processes bookings inline when no queue is configured.
type DirectIVRQueue struct {
	Handle func(ctx context.Context, req models.IVRBookingRequest) error
}

func (q DirectIVRQueue) Enqueue(ctx context.Context, req models.IVRBookingRequest) error {
	return q.Handle(ctx, req)
}
