package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FeatureRequest struct {
	ID             string    `gorm:"type:text;primaryKey" json:"id"`
	Email          string    `gorm:"not null;index" json:"email"`
	FeatureRequest string    `gorm:"column:feature_request;type:text;not null" json:"feature_request"`
	CreatedAt      time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time `gorm:"not null" json:"updated_at"`
}

func (FeatureRequest) TableName() string {
	return "feature_requests"
}

func (f *FeatureRequest) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	return nil
}
