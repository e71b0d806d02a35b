package assessments

import (
	"time"

	"aerogap-backend/internal/assessment"
)

// Session is a user's in-progress assessment. Each user has at most one.
type Session struct {
	UserID      string             `json:"userId"`
	Data        assessment.Data    `json:"assessmentData"`
	CurrentStep int                `json:"currentStep"`
	Result      *assessment.Result `json:"analysisResult,omitempty"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}
