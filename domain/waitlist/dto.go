package waitlist

import (
	"strings"

	"github.com/akeren/waitlist-api/internal/models"
)

const (
	SignupSuccessMessage      = "Successfully added to waitlist"
	RunningMessage            = "Waitlist API is running"
	RunningWithoutDBMessage   = "Waitlist API is running (database not configured)"
	signupUnavailableMessage  = "Email collection not available"
	signupConflictMessage     = "Email already registered"
	signupDatabaseFailMessage = "Failed to save to database"
)

type SignupRequest struct {
	Email     string `json:"email" binding:"required,waitlistemail"`
	FirstName string `json:"firstName" binding:"omitempty,max=255"`
}

type SignupResponse struct {
	Message          string `json:"message"`
	TotalSignups     int64  `json:"totalSignups"`
	ConvertKitSynced bool   `json:"convertKitSynced"`
}

type CountResponse struct {
	TotalSignups int64  `json:"totalSignups"`
	Message      string `json:"message"`
}

// ToWaitlistEntryModel expects an already normalised email.
func ToWaitlistEntryModel(email, firstName string) *models.WaitlistEntry {
	entry := &models.WaitlistEntry{
		Email:  email,
		Source: models.SourceWaitlist,
	}

	if name := strings.TrimSpace(firstName); name != "" {
		entry.FirstName = &name
	}

	return entry
}
