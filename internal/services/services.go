// Package services implements the domain service interfaces on top of the repositories.
package services

import (
	"context"
	"time"

	"efgportal/internal/domain"
)

// Recorder receives workflow counters. A nil Recorder is replaced by a no-op.
type Recorder interface {
	RegistrationCreated()
	StatusChanged(from, to domain.RegistrationStatus)
}

type noopRecorder struct{}

func (noopRecorder) RegistrationCreated() {}
func (noopRecorder) StatusChanged(_, _ domain.RegistrationStatus) {}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
