package quiz

import "time"

// Lead is the contact information captured with a quiz.
type Lead struct {
	Email            string `json:"email"`
	CompanyName      string `json:"companyName"`
	ContactName      string `json:"contactName"`
	Phone            string `json:"phone"`
	ConsentToContact bool   `json:"consentToContact"`
}

// Submission is a stored quiz result.
type Submission struct {
	ID                  string    `json:"id"`
	Email               string    `json:"email"`
	CompanyName         string    `json:"companyName"`
	ContactName         string    `json:"contactName"`
	Phone               string    `json:"phone,omitempty"`
	ConsentToContact    bool      `json:"consentToContact"`
	QuizAnswers         Answers   `json:"quizAnswers"`
	FlaggedAreas        []string  `json:"flaggedAreas"`
	RequestedFullReview bool      `json:"requestedFullReview"`
	CreatedAt           time.Time `json:"createdAt"`
}
