package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type UpdateRequest struct {
	// Silent suppresses the push notification for this cycle.
	Silent bool `query:"silent" json:"silent"`
}

type HistoryRequest struct {
	Limit int `query:"limit" json:"limit" default:"30" validate:"gte=1,lte=365"`
}

type HistoricalSeriesRequest struct {
	Days int `query:"days" json:"days" default:"365" validate:"gte=30,lte=1825"`
}

type TestNotificationRequest struct {
	Message string `query:"message" json:"message" validate:"omitempty,max=512"`
}
