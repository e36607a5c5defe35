package mypubsub

import (
	"context"
	"fmt"
	"sync"

	"cloud.google.com/go/pubsub"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

type gcloudPubSub struct {
	sync.Mutex
	client *pubsub.Client
	topics map[string]*pubsub.Topic
	logger mylog.Logger
}

func newGcloudPubSub(c context.Context, projectID string) (PubSub, func(), error) {
	client, err := pubsub.NewClient(c, projectID)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating pubsub client: %s", err)
	}

	ps := &gcloudPubSub{
		client: client,
		topics: map[string]*pubsub.Topic{},
		logger: mylog.New("mypubsub"),
	}
	return ps, func() {
		ps.Lock()
		for _, topic := range ps.topics {
			topic.Stop()
		}
		ps.Unlock()
		client.Close()
	}, nil
}

func (ps *gcloudPubSub) CreateTopic(c context.Context, topicName string) error {
	_, err := ps.client.CreateTopic(c, topicName)
	if err != nil && status.Code(err) != codes.AlreadyExists {
		return fmt.Errorf("error creating topic %s: %s", topicName, err)
	}

	ps.logger.Log(c, topicName, mylog.SeverityInfo, "Topic %s ready", topicName)

	return nil
}

func (ps *gcloudPubSub) topic(topicName string) *pubsub.Topic {
	ps.Lock()
	defer ps.Unlock()

	topic, found := ps.topics[topicName]
	if !found {
		topic = ps.client.Topic(topicName)
		ps.topics[topicName] = topic
	}
	return topic
}

func (ps *gcloudPubSub) Publish(c context.Context, topicName string, data string) error {
	_, err := ps.topic(topicName).Publish(c, &pubsub.Message{Data: []byte(data)}).Get(c)
	if err != nil {
		return fmt.Errorf("error publishing event on topic %s: %s", topicName, err)
	}

	return nil
}
