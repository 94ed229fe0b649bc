package transport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/wagiedev/mpv-ipc-go/internal/config"
	"github.com/wagiedev/mpv-ipc-go/internal/errors"
)

// Dial opens the endpoint once.
func Dial(ctx context.Context, endpoint string) (config.Conn, error) {
	return dial(ctx, endpoint)
}

// DialRetry opens the endpoint, retrying up to attempts times with a fixed
// delay between tries. An attempts value below one means a single try.
//
// Returns *errors.ConnectionError wrapping the last dial error when every
// attempt failed, or the context error when ctx ends first.
func DialRetry(
	ctx context.Context,
	log *slog.Logger,
	endpoint string,
	attempts int,
	delay time.Duration,
) (config.Conn, error) {
	log = log.With("component", "transport")

	if attempts < 1 {
		attempts = 1
	}

	var (
		conn  config.Conn
		tries int
	)

	operation := func() error {
		tries++

		c, err := dial(ctx, endpoint)
		if err != nil {
			return err
		}

		conn = c

		return nil
	}

	notify := func(err error, next time.Duration) {
		log.Info("Failed to connect to mpv, retrying",
			"endpoint", endpoint,
			"attempt", tries,
			"retry_in", next,
			"error", err,
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(delay), uint64(attempts-1)),
		ctx,
	)

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Debug("Dial cancelled", "endpoint", endpoint, "attempts", tries)

			return nil, ctxErr
		}

		log.Error("Failed to connect to mpv", "endpoint", endpoint, "attempts", tries, "error", err)

		return nil, &errors.ConnectionError{Endpoint: endpoint, Attempts: tries, Err: err}
	}

	log.Info("Connected to mpv", "endpoint", endpoint, "attempts", tries)

	return conn, nil
}
