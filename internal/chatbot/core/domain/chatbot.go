package domain

import "time"

// Message is one chatbot conversation row. Messages sharing a SessionID
// form a session.
type Message struct {
	SessionID string
	CreatedAt time.Time
}

// FormSubmission is one property-inquiry form row.
type FormSubmission struct {
	CreatedAt time.Time
}

// PropertyRequest is one assessment-request row.
type PropertyRequest struct {
	CreatedAt time.Time
	Status    string
}

type Totals struct {
	TotalConversations int
	PropertyInquiries  int
	AssessmentRequests int
	LeadConversion     float64
	CompletionRate     float64
	MessageDepthP50    int
}

// SeriesPoint carries per-bucket chatbot metrics, recomputed from the
// bucket's own rows rather than as a running total.
type SeriesPoint struct {
	Ts                 time.Time
	Conversations      int
	PropertyInquiries  int
	AssessmentRequests int
	CompletionRate     float64
}

// Series is the chatbot adapter result. Degraded marks the
// swallow-to-zero path taken when any of the three row fetches failed:
// totals are all zero and the series is empty, never partial.
type Series struct {
	Totals   Totals
	Series   []SeriesPoint
	Degraded bool
}

type FunnelStages struct {
	Sessions          int
	Forms             int
	Requests          int
	CompletedRequests int
}

type FunnelPoint struct {
	Ts     time.Time
	Stages FunnelStages
}

// Funnel holds the four ordered conversion counts for the period plus
// one point per calendar day.
type Funnel struct {
	ByStage  FunnelStages
	Series   []FunnelPoint
	Degraded bool
}
