package waitlist

import (
	"context"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/mailer"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/validation"
)

// Syncer is the best-effort mailing list step run after a successful insert.
type Syncer interface {
	Sync(ctx context.Context, email, firstName string) mailer.SyncResult
}

type WaitlistService interface {
	// Signup stores a new entry, then syncs it to the mailing list without
	// letting sync failures affect the result.
	Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error)

	// CountSignups reports the total; an unconfigured database yields zero.
	CountSignups(ctx context.Context) (*CountResponse, error)
}

type waitlistService struct {
	logger     *log.Logger
	repository WaitlistRepository
	syncer     Syncer
	metrics    *Metrics
}

func NewWaitlistService(logger *log.Logger, repository WaitlistRepository, syncer Syncer, metrics *Metrics) WaitlistService {
	if syncer == nil {
		syncer = mailer.NewDisabledSync()
	}

	return &waitlistService{
		logger:     logger,
		repository: repository,
		syncer:     syncer,
		metrics:    metrics,
	}
}

func (s *waitlistService) Signup(ctx context.Context, req *SignupRequest) (*SignupResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		logger.Error("Signup received empty request")
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewInvalidRequestError("Invalid email format", nil)
	}

	email := validation.NormalizeEmail(req.Email)

	entry, err := s.repository.CreateEntry(ctx, ToWaitlistEntryModel(email, req.FirstName))
	if err != nil {
		switch {
		case apperrors.IsServiceUnavailable(err):
			s.metrics.observeSignup("unavailable")
			logger.Warn("Database not configured; email collection disabled")
			return nil, apperrors.NewServiceUnavailableError(signupUnavailableMessage, err)
		case apperrors.GetErrorType(err) == apperrors.ErrorTypeConflict:
			s.metrics.observeSignup("duplicate")
			logger.Info("Duplicate waitlist signup", "email", email)
		default:
			s.metrics.observeSignup("error")
			logger.Error("Failed to create waitlist entry", "email", email, "error", err)
		}
		return nil, err
	}

	s.metrics.observeSignup("created")

	result := s.syncer.Sync(ctx, email, req.FirstName)
	s.metrics.observeSync(result)

	if result.Synced() {
		if err := s.repository.SetSubscriberID(ctx, entry.ID, result.SubscriberID); err != nil {
			logger.Error("Failed to store ConvertKit subscriber id", "id", entry.ID, "error", err)
		}
	}

	total, err := s.repository.CountEntries(ctx)
	if err != nil {
		logger.Error("Failed to count waitlist entries after signup", "error", err)
		total = 0
	}

	logger.Info("New waitlist signup", "email", email, "total_signups", total, "convertkit_synced", result.Synced())

	return &SignupResponse{
		Message:          SignupSuccessMessage,
		TotalSignups:     total,
		ConvertKitSynced: result.Synced(),
	}, nil
}

func (s *waitlistService) CountSignups(ctx context.Context) (*CountResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	total, err := s.repository.CountEntries(ctx)
	if err != nil {
		if apperrors.IsServiceUnavailable(err) {
			return &CountResponse{TotalSignups: 0, Message: RunningWithoutDBMessage}, nil
		}
		logger.Error("Failed to fetch waitlist stats", "error", err)
		return nil, apperrors.NewDatabaseError("Database error", err)
	}

	return &CountResponse{TotalSignups: total, Message: RunningMessage}, nil
}
