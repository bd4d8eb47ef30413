// Package netx holds network bring-up helpers.
package netx

import (
	"context"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// RetryDelay is the pause between two bind attempts.
const RetryDelay = time.Second

// ListenWithRetry keeps calling net.Listen every delay until it succeeds or
// ctx is done. A device that boots before its network is up blocks here
// instead of exiting.
func ListenWithRetry(ctx context.Context, network, addr string, delay time.Duration) (net.Listener, error) {
	var lc net.ListenConfig
	for attempt := 1; ; attempt++ {
		lis, err := lc.Listen(ctx, network, addr)
		if err == nil {
			if attempt > 1 {
				log.Info().Str("addr", addr).Int("attempts", attempt).Msg("network ready")
			}
			return lis, nil
		}

		log.Warn().Err(err).Str("addr", addr).Int("attempt", attempt).Msg("waiting for network")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}
