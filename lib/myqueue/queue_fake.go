package myqueue

import (
	"context"
	"sync"
)

// FakeTaskQueue keeps enqueued tasks in memory and never delivers them.
type FakeTaskQueue struct {
	sync.Mutex
	tasks []Task
}

func NewFakeTaskQueue() *FakeTaskQueue {
	return &FakeTaskQueue{
		tasks: []Task{},
	}
}

func (q *FakeTaskQueue) Enqueue(c context.Context, task Task) error {
	q.Lock()
	defer q.Unlock()

	for _, t := range q.tasks {
		if t.UID == task.UID {
			return nil
		}
	}
	q.tasks = append(q.tasks, task)
	return nil
}

func (q *FakeTaskQueue) Tasks() []Task {
	q.Lock()
	defer q.Unlock()

	return append([]Task{}, q.tasks...)
}
