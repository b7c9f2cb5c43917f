package mailer

import (
	"context"
	"errors"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/pkg/circuitbreaker"
)

// Subscriber is the subset of Client used by BestEffortSync.
type Subscriber interface {
	SubscribeToForm(ctx context.Context, email, firstName string) (string, error)
	SubscribeToSequence(ctx context.Context, email, firstName string) error
	HasSequence() bool
}

type SyncResult struct {
	// SubscriberID is the ConvertKit id; empty when nothing was synced.
	SubscriberID     string
	SequenceEnrolled bool
	// Attempted is false when sync is disabled or the breaker is open.
	Attempted bool
}

func (r SyncResult) Synced() bool {
	return r.SubscriberID != ""
}

// BestEffortSync enrolls a signup into the mailing list.
//
// Contract: at most once, no retry. Each call makes at most one form request and at most
// one sequence request. Every failure is logged and dropped, so Sync never returns an error
// and callers must not roll anything back based on its result.
type BestEffortSync struct {
	subscriber Subscriber
	breaker    circuitbreaker.CircuitBreaker
	logger     *log.Logger
}

// NewBestEffortSync returns a sync step. A nil subscriber disables it.
func NewBestEffortSync(subscriber Subscriber, breaker circuitbreaker.CircuitBreaker, logger *log.Logger) *BestEffortSync {
	return &BestEffortSync{
		subscriber: subscriber,
		breaker:    breaker,
		logger:     logger,
	}
}

// NewDisabledSync never contacts the mailer.
func NewDisabledSync() *BestEffortSync {
	return &BestEffortSync{}
}

func (s *BestEffortSync) Enabled() bool {
	return s != nil && s.subscriber != nil
}

func (s *BestEffortSync) Sync(ctx context.Context, email, firstName string) SyncResult {
	if !s.Enabled() {
		return SyncResult{}
	}

	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	var subscriberID string
	call := func() error {
		id, err := s.subscriber.SubscribeToForm(ctx, email, firstName)
		subscriberID = id
		return err
	}

	var err error
	if s.breaker != nil {
		err = s.breaker.Call(call)
	} else {
		err = call()
	}

	if errors.Is(err, circuitbreaker.ErrOpen) {
		logger.Warn("Mailer circuit open; skipping form subscription", "breaker", s.breaker.Name(), "email", email)
		return SyncResult{}
	}

	result := SyncResult{Attempted: true}
	if err != nil {
		logger.Error("Mailer form subscription failed", "email", email, "error", err)
		return result
	}

	result.SubscriberID = subscriberID

	if !s.subscriber.HasSequence() {
		return result
	}

	if err := s.subscriber.SubscribeToSequence(ctx, email, firstName); err != nil {
		logger.Error("Mailer sequence enrollment failed", "email", email, "error", err)
		return result
	}

	result.SequenceEnrolled = true
	logger.Info("Subscribed to welcome sequence", "email", email)

	return result
}
