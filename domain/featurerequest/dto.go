package featurerequest

const (
	SubmittedMessage        = "Feature request submitted successfully"
	RunningMessage          = "Feature requests API is running"
	RunningWithoutDBMessage = "Feature requests API is running (database not configured)"
	unavailableMessage      = "Feature request collection not available"
	saveFailedMessage       = "Failed to save feature request"
	fieldName               = "Feature request"
)

// FeatureRequestText is validated after trimming, so binding only checks presence.
type SubmitRequest struct {
	Email              string `json:"email" binding:"required,waitlistemail"`
	FeatureRequestText string `json:"featureRequest" binding:"required"`
}

type SubmitResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type CountResponse struct {
	TotalRequests int64  `json:"totalRequests"`
	Message       string `json:"message"`
}
