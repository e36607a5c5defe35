package myqueue

import (
	"context"
	"fmt"
)

const (
	BackendNone   = "none"
	BackendGcloud = "gcloud"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
}

type Options struct {
	Backend   string
	ProjectID string
	Location  string
	QueueName string
	// BaseURL is where the queue delivers the webhook of a task
	BaseURL string
}

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}

func New(c context.Context, opts Options) (TaskQueuer, func(), error) {
	switch opts.Backend {
	case BackendGcloud:
		return newGcloudQueue(c, opts)
	case BackendNone, "":
		return NewFakeTaskQueue(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown queue backend %q", opts.Backend)
	}
}
