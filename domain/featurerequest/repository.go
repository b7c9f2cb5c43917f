package featurerequest

import (
	"context"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
)

type FeatureRequestRepository interface {
	Create(ctx context.Context, request *models.FeatureRequest) (*models.FeatureRequest, error)
	Count(ctx context.Context) (int64, error)
}

type featureRequestRepository struct {
	db database.Handle
}

func NewFeatureRequestRepository(db database.Handle) FeatureRequestRepository {
	return &featureRequestRepository{db: db}
}

func (r *featureRequestRepository) Create(ctx context.Context, request *models.FeatureRequest) (*models.FeatureRequest, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	if err := conn.Create(request).Error; err != nil {
		return nil, apperrors.NewDatabaseError(saveFailedMessage, err)
	}

	return request, nil
}

func (r *featureRequestRepository) Count(ctx context.Context) (int64, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := conn.Model(&models.FeatureRequest{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count feature requests", err)
	}

	return count, nil
}
