package waitlist

import (
	"context"
	"errors"

	"github.com/akeren/waitlist-api/internal/database"
	"github.com/akeren/waitlist-api/internal/models"
	apperrors "github.com/akeren/waitlist-api/pkg/errors"
	"gorm.io/gorm"
)

type WaitlistRepository interface {
	// CreateEntry inserts the row. The UNIQUE(email) constraint is the only duplicate check.
	CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error)
	// SetSubscriberID stores the mailing-list id on an existing row.
	SetSubscriberID(ctx context.Context, id, subscriberID string) error
	CountEntries(ctx context.Context) (int64, error)
}

type waitlistRepository struct {
	db database.Handle
}

func NewWaitlistRepository(db database.Handle) WaitlistRepository {
	return &waitlistRepository{db: db}
}

func (wr *waitlistRepository) CreateEntry(ctx context.Context, entry *models.WaitlistEntry) (*models.WaitlistEntry, error) {
	conn, err := wr.db.Conn(ctx)
	if err != nil {
		return nil, err
	}

	if err := conn.Create(entry).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, apperrors.NewConflictError(signupConflictMessage, err)
		}
		return nil, apperrors.NewDatabaseError(signupDatabaseFailMessage, err)
	}

	return entry, nil
}

func (wr *waitlistRepository) SetSubscriberID(ctx context.Context, id, subscriberID string) error {
	conn, err := wr.db.Conn(ctx)
	if err != nil {
		return err
	}

	result := conn.Model(&models.WaitlistEntry{}).
		Where("id = ?", id).
		Update("convertkit_subscriber_id", subscriberID)

	if result.Error != nil {
		return apperrors.NewDatabaseError("unable to store subscriber id", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("waitlist entry not found", nil)
	}

	return nil
}

func (wr *waitlistRepository) CountEntries(ctx context.Context) (int64, error) {
	conn, err := wr.db.Conn(ctx)
	if err != nil {
		return 0, err
	}

	var count int64
	if err := conn.Model(&models.WaitlistEntry{}).Count(&count).Error; err != nil {
		return 0, apperrors.NewDatabaseError("unable to count waitlist entries", err)
	}

	return count, nil
}

func isDuplicateKey(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || apperrors.IsDuplicateKeyError(err)
}
