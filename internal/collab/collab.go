// Package collab holds the thin HTTP clients for the third-party services
// the page leans on: weather, exchange rates and translation. Every client
// caches successful answers for a fixed time and reports any failure as
// ErrUnavailable.
package collab

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	appLog "tripboard/internal/log"
)

// ErrUnavailable is matched by every collaborator failure.
var ErrUnavailable = errors.New("collaborator unavailable")

// HTTPClient is the subset of *http.Client the collaborators use.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	initialRetryBackoff = 250 * time.Millisecond
	maxRetryBackoff     = 2 * time.Second
	maxBodyBytes        = 4 << 20
)

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: 10 * time.Second}
}

func unavailable(service string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, service, err)
}

// statusError is a non-2xx response.
type statusError struct {
	Code   int
	Status string
}

func (e *statusError) Error() string { return "unexpected status " + e.Status }

// doJSON sends one request per attempt until a 2xx answer decodes into out.
// Client errors (4xx) are not retried.
func doJSON(ctx context.Context, client HTTPClient, service string, retries int, build func(context.Context) (*http.Request, error), out any) error {
	attempts := retries + 1
	backoff := initialRetryBackoff
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = doOnce(ctx, client, build, out)
		if lastErr == nil {
			return nil
		}
		var se *statusError
		if errors.As(lastErr, &se) && se.Code >= 400 && se.Code < 500 {
			break
		}
		if attempt == attempts {
			break
		}

		appLog.Debug("collaborator request failed; retrying", "service", service, "attempt", attempt, "error", lastErr.Error())
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return unavailable(service, ctx.Err())
		}
		backoff *= 2
		if backoff > maxRetryBackoff {
			backoff = maxRetryBackoff
		}
	}

	appLog.Warn("collaborator unavailable", "service", service, "error", lastErr.Error())
	return unavailable(service, lastErr)
}

func doOnce(ctx context.Context, client HTTPClient, build func(context.Context) (*http.Request, error), out any) error {
	req, err := build(ctx)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &statusError{Code: resp.StatusCode, Status: resp.Status}
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func getRequest(url string) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	}
}

func postJSONRequest(url string, body any) func(context.Context) (*http.Request, error) {
	return func(ctx context.Context) (*http.Request, error) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	}
}
