package fiber

// Legacy flat metrics shape kept for existing dashboard consumers; the
// adapter's native shape rides along under new_format.
type ChatbotMetricsResponse struct {
	Success   bool              `json:"success"`
	Data      LegacyMetrics     `json:"data"`
	NewFormat ChatbotSeriesData `json:"newFormat"`
}

type LegacyMetrics struct {
	TotalConversations int     `json:"totalConversations"`
	PropertyInquiries  int     `json:"propertyInquiries"`
	AssessmentRequests int     `json:"assessmentRequests"`
	LeadConversion     float64 `json:"leadConversion"`
	CompletionRate     float64 `json:"completionRate"`
	MessageDepthP50    int     `json:"messageDepthP50"`
}

type ChatbotSeriesData struct {
	Totals   ChatbotTotals        `json:"totals"`
	Series   []ChatbotSeriesPoint `json:"series"`
	Degraded bool                 `json:"degraded"`
}

type ChatbotTotals struct {
	TotalConversations int     `json:"totalConversations"`
	PropertyInquiries  int     `json:"propertyInquiries"`
	AssessmentRequests int     `json:"assessmentRequests"`
	LeadConversion     float64 `json:"leadConversion"`
	CompletionRate     float64 `json:"completionRate"`
	MessageDepthP50    int     `json:"messageDepthP50"`
}

type ChatbotSeriesPoint struct {
	Ts                 string  `json:"ts"`
	Conversations      int     `json:"conversations"`
	PropertyInquiries  int     `json:"propertyInquiries"`
	AssessmentRequests int     `json:"assessmentRequests"`
	CompletionRate     float64 `json:"completionRate"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error" example:"Invalid date format"`
	Details string `json:"details,omitempty"`
}
