package backendclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/MarcGrol/selfcheckout/lib/myhttpclient"
	"github.com/MarcGrol/selfcheckout/lib/mylog"
)

const (
	SessionHeader = "X-Session-ID"

	networkErrorMessage = "Network error"
)

var ErrSessionRequired = errors.New("session not found")

// SessionReader provides the session that scopes cart and transaction calls.
type SessionReader interface {
	Current(c context.Context) (string, bool, error)
}

// RemoteError is a failed call to the backend with a message fit for the shopper.
type RemoteError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	return e.Message
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// GetHTTPErrorCode lets myerrors map remote failures onto the local API.
func (e *RemoteError) GetHTTPErrorCode() int {
	if e.StatusCode >= 400 && e.StatusCode < 500 {
		return e.StatusCode
	}
	return http.StatusBadGateway
}

func IsNotFound(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound
}

// ErrorMessage gives the text to show for a failed operation.
func ErrorMessage(err error) string {
	if err == nil {
		return "Something went wrong"
	}
	var remoteErr *RemoteError
	if errors.As(err, &remoteErr) {
		return remoteErr.Message
	}
	return err.Error()
}

type scope int

const (
	public scope = iota
	sessionScoped
)

type responseEnvelope struct {
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

func (e responseEnvelope) hasData() bool {
	return isPresent(e.Data)
}

// message prefers the error field, then the message field.
func (e responseEnvelope) message(status int) string {
	if isPresent(e.Error) {
		var text string
		if json.Unmarshal(e.Error, &text) == nil {
			if text != "" {
				return text
			}
		} else {
			return string(e.Error)
		}
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("Request failed with status %d", status)
}

func isPresent(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed != "" && trimmed != "null"
}

type client struct {
	baseURL  string
	sender   myhttpclient.HTTPSender
	sessions SessionReader
	logger   mylog.Logger
}

func newClient(baseURL string, sender myhttpclient.HTTPSender, sessions SessionReader, logger mylog.Logger) client {
	return client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		sender:   sender,
		sessions: sessions,
		logger:   logger,
	}
}

// do performs one call; out is only written when the response carries data.
func (c client) do(ctx context.Context, method string, path string, sc scope, in any, out any) (bool, error) {
	headers := map[string]string{}
	if sc == sessionScoped {
		sessionID, found, err := c.sessions.Current(ctx)
		if err != nil {
			return false, fmt.Errorf("error reading session: %w", err)
		}
		if !found || sessionID == "" {
			return false, ErrSessionRequired
		}
		headers[SessionHeader] = sessionID
	}

	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return false, fmt.Errorf("error marshalling request for %s %s: %w", method, path, err)
		}
	}

	status, respBody, err := c.sender.Send(ctx, method, c.baseURL+path, headers, body)
	if err != nil {
		c.logger.Log(ctx, path, mylog.SeverityWarn, "%s %s failed: %s", method, path, err)
		return false, &RemoteError{Message: networkErrorMessage, Err: err}
	}

	envelope := responseEnvelope{}
	if len(respBody) > 0 {
		err = json.Unmarshal(respBody, &envelope)
		if err != nil && status < 400 {
			return false, &RemoteError{StatusCode: status, Message: "Invalid response from server", Err: err}
		}
	}

	if status >= 400 {
		// the backend answers some POSTs with an error status while still returning the resource
		if method == http.MethodPost && envelope.hasData() {
			return c.decode(envelope, out)
		}
		c.logger.Log(ctx, path, mylog.SeverityWarn, "%s %s -> %d", method, path, status)
		return false, &RemoteError{StatusCode: status, Message: envelope.message(status)}
	}

	return c.decode(envelope, out)
}

func (c client) decode(envelope responseEnvelope, out any) (bool, error) {
	if !envelope.hasData() || out == nil {
		return false, nil
	}
	err := json.Unmarshal(envelope.Data, out)
	if err != nil {
		return false, &RemoteError{Message: "Invalid response from server", Err: err}
	}
	return true, nil
}
