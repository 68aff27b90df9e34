package db

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Watch pings the database every interval and reports the outcome to the
// observer until ctx is done. This is what brings the service back to
// durable mode after an outage.
func Watch(ctx context.Context, pinger Pinger, observer ConnectionObserver, interval time.Duration, logger logrus.FieldLogger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout(interval))
		err := pinger.Ping(pingCtx)
		cancel()

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.WithError(err).Debug("database health check failed")
			observer.MarkDisconnected(err)
			continue
		}

		observer.MarkConnected()
	}
}

func pingTimeout(interval time.Duration) time.Duration {
	if interval < 5*time.Second {
		return interval
	}
	return 5 * time.Second
}
