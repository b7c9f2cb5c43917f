package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SourceWaitlist tags rows created by the public signup form.
const SourceWaitlist = "waitlist"

type WaitlistEntry struct {
	ID                     string    `gorm:"type:text;primaryKey" json:"id"`
	Email                  string    `gorm:"not null;uniqueIndex" json:"email"`
	FirstName              *string   `json:"first_name"`
	SubscribedAt           time.Time `gorm:"not null;index" json:"subscribed_at"`
	ConvertKitSubscriberID *string   `gorm:"column:convertkit_subscriber_id" json:"convertkit_subscriber_id"`
	Source                 string    `gorm:"not null;default:waitlist" json:"source"`
	CreatedAt              time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt              time.Time `gorm:"not null" json:"updated_at"`
}

func (WaitlistEntry) TableName() string {
	return "waitlist"
}

func (e *WaitlistEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.SubscribedAt.IsZero() {
		e.SubscribedAt = time.Now().UTC()
	}
	if e.Source == "" {
		e.Source = SourceWaitlist
	}
	return nil
}

// IsSynced reports whether the entry has been enrolled in the mailing list.
func (e *WaitlistEntry) IsSynced() bool {
	return e.ConvertKitSubscriberID != nil && *e.ConvertKitSubscriberID != ""
}
