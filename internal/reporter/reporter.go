// Package reporter periodically refreshes gauge metrics that are
// derived from storage, so dashboards see them without a request
// having to pay for the count.
package reporter

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/wpdmadhuranga/auth-service/internal/metrics"
)

// UserCounter is the subset of the user repository the reporter needs.
type UserCounter interface {
	CountActive(ctx context.Context) (int64, error)
}

type Reporter struct {
	users  UserCounter
	logger *slog.Logger
	cron   *cron.Cron
}

func New(users UserCounter, logger *slog.Logger) *Reporter {
	return &Reporter{
		users:  users,
		logger: logger.With("component", "reporter"),
		cron:   cron.New(),
	}
}

// Start refreshes once immediately, then every minute until Stop.
func (r *Reporter) Start() error {
	r.refresh()
	if _, err := r.cron.AddFunc("@every 1m", r.refresh); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits for an in-flight refresh to finish.
func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reporter) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	n, err := r.users.CountActive(ctx)
	if err != nil {
		r.logger.Warn("refresh active user count", "error", err)
		return
	}
	metrics.ActiveUsers.Set(float64(n))
}
