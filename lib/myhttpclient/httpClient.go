package myhttpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

const (
	DefaultTimeout = 5 * time.Second

	consecutiveFailuresToTrip = 5
	openStateDuration         = 10 * time.Second
)

var ErrUnavailable = errors.New("remote service unavailable")

type response struct {
	status int
	body   []byte
}

// serverError lets 5xx responses count as breaker failures while still reaching the caller.
type serverError struct {
	response
}

func (e serverError) Error() string {
	return fmt.Sprintf("server error: %d", e.status)
}

type jsonHTTPClient struct {
	logger     mylog.Logger
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[response]
}

func New(name string, timeout time.Duration) HTTPSender {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	logger := mylog.New("myhttpclient")

	return &jsonHTTPClient{
		logger: logger,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		breaker: gobreaker.NewCircuitBreaker[response](gobreaker.Settings{
			Name:    name,
			Timeout: openStateDuration,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= consecutiveFailuresToTrip
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Log(context.Background(), name, mylog.SeverityWarn, "Circuit breaker %s: %s -> %s", name, from, to)
			},
		}),
	}
}

func (c *jsonHTTPClient) Send(ctx context.Context, method string, url string, headers map[string]string, body []byte) (int, []byte, error) {
	resp, err := c.breaker.Execute(func() (response, error) {
		return c.send(ctx, method, url, headers, body)
	})
	if err != nil {
		var srvErr serverError
		if errors.As(err, &srvErr) {
			return srvErr.status, srvErr.body, nil
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return 0, nil, fmt.Errorf("%w: %s", ErrUnavailable, err)
		}
		return 0, nil, err
	}

	return resp.status, resp.body, nil
}

func (c *jsonHTTPClient) send(ctx context.Context, method string, url string, headers map[string]string, body []byte) (response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return response{}, fmt.Errorf("error creating http request for %s %s: %w", method, url, err)
	}

	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	c.logger.Log(ctx, "", mylog.SeverityDebug, "HTTP request: %s %s", method, url)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return response{}, fmt.Errorf("error sending %s %s: %w", method, url, err)
	}
	defer httpResp.Body.Close()

	respPayload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, fmt.Errorf("error reading response %s %s: %w", method, url, err)
	}

	c.logger.Log(ctx, "", mylog.SeverityDebug, "HTTP response: %s %s -> %d", method, url, httpResp.StatusCode)

	resp := response{status: httpResp.StatusCode, body: respPayload}
	if httpResp.StatusCode >= http.StatusInternalServerError {
		return response{}, serverError{resp}
	}

	return resp, nil
}
