package mypublisher

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/MarcGrol/selfcheckout/lib/mycontext"
	"github.com/MarcGrol/selfcheckout/lib/myevents"
	"github.com/MarcGrol/selfcheckout/lib/myhttp"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
	"github.com/MarcGrol/selfcheckout/lib/mypubsub"
	"github.com/MarcGrol/selfcheckout/lib/myqueue"
	"github.com/MarcGrol/selfcheckout/lib/mystore"
	"github.com/MarcGrol/selfcheckout/lib/mytime"
)

// OutboxPublisher stores events first and delivers them to the broker afterwards,
// so events written inside a store transaction are only delivered once committed.
// Without a task queue, delivery is triggered in-process by Run.
type OutboxPublisher struct {
	sync.Mutex
	outbox    mystore.Store[myevents.EventEnvelope]
	pubsub    mypubsub.PubSub
	queue     myqueue.TaskQueuer
	enveloper enveloper
	nower     mytime.Nower
	logger    mylog.Logger
	trigger   chan struct{}
}

func New(outbox mystore.Store[myevents.EventEnvelope], pubsub mypubsub.PubSub, queue myqueue.TaskQueuer, nower mytime.Nower) *OutboxPublisher {
	return &OutboxPublisher{
		outbox:    outbox,
		pubsub:    pubsub,
		queue:     queue,
		enveloper: newEnveloper(nower),
		nower:     nower,
		logger:    mylog.New("mypublisher"),
		trigger:   make(chan struct{}, 1),
	}
}

func (p *OutboxPublisher) RegisterEndpoints(c context.Context, router *mux.Router) error {
	router.HandleFunc("/pubsub/{topic}/{uid}", p.triggerPage()).Methods("PUT")

	return nil
}

func (p *OutboxPublisher) CreateTopic(c context.Context, topicName string) error {
	return p.pubsub.CreateTopic(c, topicName)
}

func (p *OutboxPublisher) Publish(c context.Context, topic string, event myevents.Event) error {
	envelope, err := p.enveloper.do(topic, event)
	if err != nil {
		return fmt.Errorf("error creating envelope: %s", err)
	}

	_, exists, err := p.outbox.Get(c, envelope.UID)
	if err != nil {
		return fmt.Errorf("error fetching envelope: %s", err)
	}
	if exists {
		p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Event %s already in outbox", envelope)
		return nil
	}

	err = p.outbox.Put(c, envelope.UID, envelope)
	if err != nil {
		return fmt.Errorf("error storing envelope: %s", err)
	}

	p.logger.Log(c, envelope.AggregateUID, mylog.SeverityInfo, "Stored event %s in outbox", envelope)

	if p.queue != nil {
		err = p.queue.Enqueue(c, myqueue.Task{
			UID:            envelope.UID,
			WebhookURLPath: fmt.Sprintf("/pubsub/%s/%s", envelope.Topic, envelope.UID),
		})
		if err != nil {
			return fmt.Errorf("error enqueuing trigger for envelope %s: %s", envelope, err)
		}
		return nil
	}

	select {
	case p.trigger <- struct{}{}:
	default:
		// a flush is already pending
	}

	return nil
}

// Run delivers pending envelopes whenever an event was published and at least every interval.
// With a task queue, only the interval sweep remains.
func (p *OutboxPublisher) Run(c context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done():
			return
		case <-ticker.C:
		case <-p.trigger:
		}

		_, err := p.Flush(c)
		if err != nil {
			p.logger.Log(c, "", mylog.SeverityWarn, "Error flushing outbox: %s", err)
		}
	}
}

// Flush publishes all undelivered envelopes in creation order and returns how many were delivered.
func (p *OutboxPublisher) Flush(c context.Context) (int, error) {
	p.Lock()
	defer p.Unlock()

	envelopes, err := p.outbox.List(c)
	if err != nil {
		return 0, fmt.Errorf("error fetching envelopes: %s", err)
	}

	pending := []myevents.EventEnvelope{}
	for _, envelope := range envelopes {
		if !envelope.Published {
			pending = append(pending, envelope)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})

	delivered := 0
	for _, envelope := range pending {
		jsonBytes, err := json.Marshal(envelope)
		if err != nil {
			return delivered, fmt.Errorf("error serializing envelope %s: %s", envelope, err)
		}

		err = p.pubsub.Publish(c, envelope.Topic, string(jsonBytes))
		if err != nil {
			return delivered, fmt.Errorf("error publishing envelope %s: %s", envelope, err)
		}

		envelope.Published = true
		envelope.PublishedAt = p.nower.Now()
		err = p.outbox.Put(c, envelope.UID, envelope)
		if err != nil {
			return delivered, fmt.Errorf("error marking envelope %s as published: %s", envelope, err)
		}
		delivered++
	}

	return delivered, nil
}

func (p *OutboxPublisher) triggerPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := mycontext.ContextFromHTTPRequest(r)
		writer := myhttp.NewWriter(p.logger)

		uid := mux.Vars(r)["uid"]
		delivered, err := p.Flush(c)
		if err != nil {
			writer.WriteError(c, w, 1, err)
			return
		}

		p.logger.Log(c, uid, mylog.SeverityInfo, "Trigger %s delivered %d events", uid, delivered)

		writer.Write(c, w, http.StatusOK, myhttp.SuccessResponse{
			Message: fmt.Sprintf("Delivered %d events", delivered),
		})
	}
}
