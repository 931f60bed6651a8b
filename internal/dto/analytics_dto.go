package dto

import (
	"stayops-be/pkg/pipeline"
)

// AnalyticsQuery bounds the reporting window; dates are interpreted in the
// property's timezone. Defaults to the trailing 30 days.
type AnalyticsQuery struct {
	Start string `query:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `query:"end" validate:"omitempty,datetime=2006-01-02"`
}

type AnalyticsResponse struct {
	PropertyId string           `json:"property_id"`
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Timezone   string           `json:"timezone"`
	Metrics    pipeline.Metrics `json:"metrics"`
}
