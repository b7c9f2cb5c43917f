package featurerequest

import (
	"context"
	"unicode/utf8"

	"github.com/akeren/waitlist-api/internal/log"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"github.com/akeren/waitlist-api/pkg/validation"
)

type FeatureRequestService interface {
	Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error)
	CountRequests(ctx context.Context) (*CountResponse, error)
}

type featureRequestService struct {
	logger     *log.Logger
	repository FeatureRequestRepository
}

func NewFeatureRequestService(logger *log.Logger, repository FeatureRequestRepository) FeatureRequestService {
	return &featureRequestService{logger: logger, repository: repository}
}

func (s *featureRequestService) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	if req == nil {
		return nil, apperrors.NewInvalidRequestError("request cannot be nil", nil)
	}

	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewInvalidRequestError("Invalid email format", nil)
	}

	text, err := validation.TrimmedText(fieldName, req.FeatureRequestText,
		validation.FeatureRequestMinLength, validation.FeatureRequestMaxLength)
	if err != nil {
		return nil, apperrors.NewInvalidRequestError(err.Error(), err)
	}

	email := validation.NormalizeEmail(req.Email)

	stored, err := s.repository.Create(ctx, &models.FeatureRequest{
		Email:          email,
		FeatureRequest: text,
	})
	if err != nil {
		if apperrors.IsServiceUnavailable(err) {
			logger.Warn("Database not configured; feature request collection disabled")
			return nil, apperrors.NewServiceUnavailableError(unavailableMessage, err)
		}
		logger.Error("Failed to save feature request", "email", email, "error", err)
		return nil, err
	}

	logger.Info("New feature request", "email", email, "preview", preview(text, 100))

	return &SubmitResponse{Message: SubmittedMessage, ID: stored.ID}, nil
}

func (s *featureRequestService) CountRequests(ctx context.Context) (*CountResponse, error) {
	logger := log.GetLoggerInstanceFromContext(ctx, s.logger)

	total, err := s.repository.Count(ctx)
	if err != nil {
		if apperrors.IsServiceUnavailable(err) {
			return &CountResponse{TotalRequests: 0, Message: RunningWithoutDBMessage}, nil
		}
		logger.Error("Failed to fetch feature request stats", "error", err)
		return nil, apperrors.NewDatabaseError("Database error", err)
	}

	return &CountResponse{TotalRequests: total, Message: RunningMessage}, nil
}

// preview cuts s to at most n runes for log lines.
func preview(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
