// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-manager/internal/logger"
)

// SessionPruner deletes sessions whose tokens have expired.
type SessionPruner interface {
	PruneExpiredSessions(ctx context.Context) (int64, error)
}

type sessionPruneWorker struct {
	pruner   SessionPruner
	interval time.Duration
	logger   *logger.Logger
}

// NewSessionPruneWorker returns a [Worker] that calls
// pruner.PruneExpiredSessions every interval.
func NewSessionPruneWorker(pruner SessionPruner, interval time.Duration, logger *logger.Logger) Worker {
	return &sessionPruneWorker{pruner: pruner, interval: interval, logger: logger}
}

func (w *sessionPruneWorker) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			pruned, err := w.pruner.PruneExpiredSessions(ctx)
			if err != nil {
				w.logger.Err(err).Msg("error pruning expired sessions")
				continue
			}
			if pruned > 0 {
				w.logger.Info().Int64("pruned", pruned).Msg("expired sessions pruned")
			}
		}
	}
}
