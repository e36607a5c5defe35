package mypubsub

import (
	"context"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

// amqpPubSub maps every topic onto a durable fanout exchange.
type amqpPubSub struct {
	sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  mylog.Logger
}

func newAMQPPubSub(c context.Context, url string) (PubSub, func(), error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error connecting to amqp broker: %s", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, func() {}, fmt.Errorf("error opening amqp channel: %s", err)
	}

	return &amqpPubSub{
			conn:    conn,
			channel: channel,
			logger:  mylog.New("mypubsub"),
		}, func() {
			channel.Close()
			conn.Close()
		}, nil
}

func (ps *amqpPubSub) CreateTopic(c context.Context, topicName string) error {
	ps.Lock()
	defer ps.Unlock()

	err := ps.channel.ExchangeDeclare(topicName, amqp.ExchangeFanout, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("error declaring exchange %s: %s", topicName, err)
	}

	ps.logger.Log(c, topicName, mylog.SeverityInfo, "Exchange %s ready", topicName)

	return nil
}

func (ps *amqpPubSub) Publish(c context.Context, topicName string, data string) error {
	ps.Lock()
	defer ps.Unlock()

	err := ps.channel.PublishWithContext(c, topicName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         []byte(data),
	})
	if err != nil {
		return fmt.Errorf("error publishing event on exchange %s: %s", topicName, err)
	}

	return nil
}
