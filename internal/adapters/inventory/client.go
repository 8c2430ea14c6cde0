// Package inventory talks to the remote hotel content API that owns room
// inventory. Only reads are supported.
package inventory

import (
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"hotel_booking/internal/adapters/observability"
	"hotel_booking/internal/domain"
)

const (
	maxAttempts = 4
	userAgent   = "hotel-booking/1.0"
)

var (
	ErrNotFound     = fmt.Errorf("inventory: %w", domain.ErrNotFound)
	ErrUnauthorized = fmt.Errorf("inventory: unauthorized: %w", domain.ErrForbidden)
	ErrForbidden    = fmt.Errorf("inventory: %w", domain.ErrForbidden)
)

// StatusError is a non-retryable reply the client has no sentinel for.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string { return fmt.Sprintf("inventory: status %d: %s", e.Status, e.Body) }

type Client struct {
	base string
	hc   *http.Client
	key  string
	rl   *rate.Limiter
}

var _ domain.InventoryClient = (*Client)(nil)

// New builds a client limited to rps requests per second (5 when rps <= 0).
func New(base, key string, rps int) (*Client, error) {
	if key == "" {
		return nil, errors.New("inventory: API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		key:  key,
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}, nil
}

// GetHotel fetches one hotel with its rooms. The current path is tried first;
// a 404 there falls back to the legacy rooms listing.
func (c *Client) GetHotel(ctx context.Context, id int64) (domain.InventoryHotel, error) {
	paths := []string{
		fmt.Sprintf("/hotels/%d", id),
		fmt.Sprintf("/properties/%d/rooms", id),
	}
	var (
		out domain.InventoryHotel
		err error
	)
	for _, p := range paths {
		if err = c.get(ctx, c.base+p, &out); !errors.Is(err, ErrNotFound) {
			break
		}
	}
	if err != nil {
		return domain.InventoryHotel{}, err
	}
	if out.SourceID == 0 {
		out.SourceID = id
	}
	return out, nil
}

// attempt is the outcome of one round trip: done with err, or retry after wait.
type attempt struct {
	err   error
	retry bool
	wait  time.Duration
}

// get performs a GET and decodes JSON into out, retrying 429, transient 5xx
// and transport errors. Every attempt, retries included, takes a limiter token.
func (c *Client) get(ctx context.Context, url string, out any) error {
	var last error
	for i := 0; i < maxAttempts; i++ {
		if err := c.rl.Wait(ctx); err != nil {
			return err
		}
		a := c.once(ctx, url, out)
		if !a.retry {
			return a.err
		}
		last = a.err
		wait := a.wait
		if wait == 0 {
			wait = backoff(i)
		}
		if i == maxAttempts-1 || !sleepCtx(ctx, wait) {
			break
		}
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return last
}

func (c *Client) once(ctx context.Context, url string, out any) attempt {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return attempt{err: err}
	}
	req.Header.Set("X-API-Key", c.key)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("inventory", "get_hotel", 0, time.Since(start))
		if ctx.Err() != nil {
			return attempt{err: ctx.Err()}
		}
		return attempt{err: err, retry: true}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("inventory", "get_hotel", resp.StatusCode, time.Since(start))

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return attempt{err: fmt.Errorf("decode %s: %w", url, err)}
		}
		return attempt{}
	case http.StatusNotFound:
		return attempt{err: ErrNotFound}
	case http.StatusUnauthorized:
		return attempt{err: ErrUnauthorized}
	case http.StatusForbidden:
		return attempt{err: ErrForbidden}
	case http.StatusTooManyRequests, http.StatusInternalServerError,
		http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return attempt{err: fmt.Errorf("inventory: remote %d", resp.StatusCode), retry: true, wait: retryAfter(resp)}
	default:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return attempt{err: &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}}
	}
}

// sleepCtx waits for d or returns false early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After (seconds or HTTP-date). 0 if absent or invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := strings.TrimSpace(resp.Header.Get("Retry-After"))
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(h); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff doubles from 200ms per attempt with up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	return base + time.Duration(float64(b[0])/255.0*0.5*float64(base))
}
