package reports

import (
	"time"

	"aerogap-backend/internal/assessment"
)

// Report records a delivered PDF report.
type Report struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CompanyName  string    `json:"companyName"`
	OverallScore int       `json:"overallScore"`
	FileName     string    `json:"fileName"`
	StorageKey   string    `json:"-"`
	EmailSent    bool      `json:"emailSent"`
	CreatedAt    time.Time `json:"createdAt"`
}

// DeliverRequest is the input to Deliver and the payload of a queued
// report.deliver job.
type DeliverRequest struct {
	ReportID    string            `json:"reportId,omitempty"`
	UserID      string            `json:"userId"`
	SubmittedBy string            `json:"submittedBy,omitempty"`
	Result      assessment.Result `json:"analysisResult"`
}
