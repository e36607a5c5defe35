package myqueue

import (
	"context"
	"fmt"
	"strings"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

type gcloudTaskQueue struct {
	client    *cloudtasks.Client
	queueName string
	baseURL   string
	logger    mylog.Logger
}

func newGcloudQueue(c context.Context, opts Options) (TaskQueuer, func(), error) {
	client, err := cloudtasks.NewClient(c)
	if err != nil {
		return nil, func() {}, fmt.Errorf("error creating cloudtask-client: %s", err)
	}

	return &gcloudTaskQueue{
			client:    client,
			queueName: composeQueueName(opts),
			baseURL:   strings.TrimSuffix(opts.BaseURL, "/"),
			logger:    mylog.New("myqueue"),
		}, func() {
			client.Close()
		}, nil
}

func (q *gcloudTaskQueue) Enqueue(c context.Context, task Task) error {
	taskName := fmt.Sprintf("%s/tasks/%s", q.queueName, task.UID)
	_, err := q.client.CreateTask(c, &taskspb.CreateTaskRequest{
		Parent: q.queueName,
		Task: &taskspb.Task{
			Name: taskName, // de-duplicate
			MessageType: &taskspb.Task_HttpRequest{
				HttpRequest: &taskspb.HttpRequest{
					Url:        q.baseURL + task.WebhookURLPath,
					HttpMethod: taskspb.HttpMethod_PUT,
					Body:       task.Payload,
				},
			},
		},
	})
	if err != nil {
		rsp, ok := status.FromError(err)
		if ok && rsp.Code() == codes.AlreadyExists {
			q.logger.Log(c, task.UID, mylog.SeverityInfo, "Task %s already exists -> ignore", task.UID)
			return nil
		}
		return fmt.Errorf("error submitting task to queue: %s", err)
	}
	return nil
}

func composeQueueName(opts Options) string {
	queueName := opts.QueueName
	if queueName == "" {
		queueName = "default"
	}
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", opts.ProjectID, opts.Location, queueName)
}
