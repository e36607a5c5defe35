package mystore

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/datastore"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

const (
	maxTransactionAttempts = 3
	listLimit              = 500
)

type gcloudStore[T any] struct {
	client *datastore.Client
	kind   string
	logger mylog.Logger
}

func newGcloudStore[T any](c context.Context, projectID string) (*gcloudStore[T], func(), error) {
	client, err := datastore.NewClient(c, projectID)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating datastore-client: %s", err)
	}

	return &gcloudStore[T]{
			client: client,
			kind:   kindOf[T](),
			logger: mylog.New("mystore"),
		}, func() {
			client.Close()
		}, nil
}

func transactionFrom(c context.Context) *datastore.Transaction {
	tx, _ := c.Value(ctxTransactionKey{}).(*datastore.Transaction)
	return tx
}

func (s *gcloudStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if transactionFrom(c) != nil {
		// join the ongoing transaction, possibly started by a store of another kind
		return f(c)
	}

	var err error
	for attempt := 1; attempt <= maxTransactionAttempts; attempt++ {
		err = s.runInTransaction(c, f)
		if errors.Is(err, datastore.ErrConcurrentTransaction) {
			// retrying requires the business logic to be idempotent
			s.logger.Log(c, s.kind, mylog.SeverityWarn, "Concurrent transaction, retrying (%d of %d): %s", attempt, maxTransactionAttempts, err)
			continue
		}
		return err
	}
	return err
}

func (s *gcloudStore[T]) runInTransaction(c context.Context, f func(c context.Context) error) error {
	tx, err := s.client.NewTransaction(c)
	if err != nil {
		return fmt.Errorf("error creating transaction: %w", err)
	}

	err = f(context.WithValue(c, ctxTransactionKey{}, tx))
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			s.logger.Log(c, s.kind, mylog.SeverityError, "Error rolling back transaction: %s", rollbackErr)
		}
		return err
	}

	_, err = tx.Commit()
	if err != nil {
		return fmt.Errorf("error committing transaction: %w", err)
	}

	return nil
}

func (s *gcloudStore[T]) Put(c context.Context, uid string, value T) error {
	key := datastore.NameKey(s.kind, uid, nil)

	var err error
	if tx := transactionFrom(c); tx != nil {
		_, err = tx.Put(key, &value)
	} else {
		_, err = s.client.Put(c, key, &value)
	}
	if err != nil {
		return fmt.Errorf("error storing entity %s with uid %s: %w", s.kind, uid, err)
	}

	return nil
}

func (s *gcloudStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	key := datastore.NameKey(s.kind, uid, nil)
	value := new(T)

	var err error
	if tx := transactionFrom(c); tx != nil {
		err = tx.Get(key, value)
	} else {
		err = s.client.Get(c, key, value)
	}
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return *value, false, nil
	}
	if err != nil {
		return *value, false, fmt.Errorf("error fetching entity %s with uid %s: %w", s.kind, uid, err)
	}

	return *value, true, nil
}

func (s *gcloudStore[T]) Delete(c context.Context, uid string) error {
	key := datastore.NameKey(s.kind, uid, nil)

	var err error
	if tx := transactionFrom(c); tx != nil {
		err = tx.Delete(key)
	} else {
		err = s.client.Delete(c, key)
	}
	if err != nil {
		return fmt.Errorf("error deleting entity %s with uid %s: %w", s.kind, uid, err)
	}

	return nil
}

func (s *gcloudStore[T]) List(c context.Context) ([]T, error) {
	objectsToFetch := []T{}

	q := datastore.NewQuery(s.kind).Limit(listLimit)
	if tx := transactionFrom(c); tx != nil {
		q = q.Transaction(tx)
	}

	_, err := s.client.GetAll(c, q, &objectsToFetch)
	if err != nil {
		return nil, fmt.Errorf("error fetching all entities %s: %w", s.kind, err)
	}

	return objectsToFetch, nil
}
