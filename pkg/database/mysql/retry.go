package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	mysqldrv "github.com/go-sql-driver/mysql"
)

const (
	maxAttempts     = 3
	initialInterval = 1 * time.Second
	maxInterval     = 10 * time.Second
)

// Do runs op, retrying with exponential backoff while the failure looks like a
// transient connection problem (reset, refused, timeout, DNS, dropped conn).
// Anything else propagates immediately. At most maxAttempts runs.
func Do(ctx context.Context, op func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initialInterval
	b.MaxInterval = maxInterval
	b.MaxElapsedTime = 0 // bounded by attempt count, not wall clock

	wrapped := func() error {
		err := op()
		if err == nil {
			return nil
		}
		if IsTransient(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(b, maxAttempts-1), ctx))
}

// IsTransient reports whether err is a connection-level failure worth retrying.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysqldrv.ErrInvalidConn) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}
