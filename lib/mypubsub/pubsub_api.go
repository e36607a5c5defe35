package mypubsub

import (
	"context"
	"fmt"
)

const (
	BackendNone   = "none"
	BackendGcloud = "gcloud"
	BackendAMQP   = "amqp"
)

type Options struct {
	Backend   string
	ProjectID string
	AMQPURL   string
}

type PubSub interface {
	Publish(c context.Context, topic string, data string) error
	CreateTopic(c context.Context, topic string) error
}

func New(c context.Context, opts Options) (PubSub, func(), error) {
	switch opts.Backend {
	case BackendGcloud:
		return newGcloudPubSub(c, opts.ProjectID)
	case BackendAMQP:
		return newAMQPPubSub(c, opts.AMQPURL)
	case BackendNone, "":
		return NewFakePubSub(), func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown broker backend %q", opts.Backend)
	}
}
