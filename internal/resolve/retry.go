package resolve

import (
	"context"
	"database/sql/driver"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
)

const defaultRetryMaxElapsed = 10 * time.Second

// transientMarkers are lowercase fragments of driver errors that clear up on
// their own: dropped connections, a restarting server, a busy sqlite file.
var transientMarkers = []string{
	"bad connection",
	"invalid connection",
	"broken pipe",
	"connection reset",
	"connection refused",
	"lost connection",
	"i/o timeout",
	"database is locked",
	"sqlite_busy",
}

// isRetryable reports whether err is a transient failure worth another
// attempt. Anything else (a missing table, a malformed query) fails at once.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || pgconn.SafeToRetry(err) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range transientMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// Retrying wraps a KeyLookup and retries transient lookup failures with
// exponential backoff. Misses are returned at once and so are errors that
// isRetryable rejects.
type Retrying struct {
	next       KeyLookup
	newBackOff func() backoff.BackOff
}

// RetryOption configures a Retrying lookup.
type RetryOption func(*Retrying)

// WithBackOff sets the backoff factory. BackOff values are stateful, so the
// factory is called once per lookup.
func WithBackOff(f func() backoff.BackOff) RetryOption {
	return func(r *Retrying) {
		r.newBackOff = f
	}
}

// NewRetrying wraps next.
func NewRetrying(next KeyLookup, opts ...RetryOption) *Retrying {
	r := &Retrying{
		next: next,
		newBackOff: func() backoff.BackOff {
			bo := backoff.NewExponentialBackOff()
			bo.MaxElapsedTime = defaultRetryMaxElapsed

			return bo
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// IssueIDByKey implements KeyLookup.
func (r *Retrying) IssueIDByKey(ctx context.Context, key string) (string, bool, error) {
	var (
		id string
		ok bool
	)

	err := backoff.Retry(func() error {
		var err error

		id, ok, err = r.next.IssueIDByKey(ctx, key)
		if err != nil && !isRetryable(err) {
			return backoff.Permanent(err)
		}

		return err
	}, backoff.WithContext(r.newBackOff(), ctx))
	if err != nil {
		return "", false, err
	}

	return id, ok, nil
}
