package quiz

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/telemetry"
)

// LeadSink receives quiz submissions for follow-up outside the service.
type LeadSink interface {
	PushLead(ctx context.Context, sub Submission, flags []FlaggedArea) error
}

// Service stores quiz submissions.
type Service struct {
	Repo  Repo
	Leads LeadSink
	Now   func() time.Time
}

// Result is a stored submission with the computed flags.
type Result struct {
	Submission   Submission    `json:"submission"`
	FlaggedAreas []FlaggedArea `json:"flaggedAreas"`
}

// Submit validates the lead, computes flags from the answers and stores the
// submission. Lead sink failures are logged and do not fail the submission.
func (s *Service) Submit(ctx context.Context, lead Lead, answers Answers) (Result, error) {
	lead = normalizeLead(lead)
	if err := validateLead(lead); err != nil {
		return Result{}, err
	}

	kept := knownAnswers(answers)
	flags := ComputeFlaggedAreas(kept)
	sub := Submission{
		ID:               uuid.NewString(),
		Email:            lead.Email,
		CompanyName:      lead.CompanyName,
		ContactName:      lead.ContactName,
		Phone:            lead.Phone,
		ConsentToContact: lead.ConsentToContact,
		QuizAnswers:      kept,
		FlaggedAreas:     AreaIDs(flags),
		CreatedAt:        s.now(),
	}
	if err := s.Repo.Create(ctx, sub); err != nil {
		return Result{}, err
	}
	metrics.IncQuizSubmitted()

	if s.Leads != nil {
		if err := s.Leads.PushLead(ctx, sub, flags); err != nil {
			metrics.IncLeadSyncFailed()
			telemetry.Warn("quiz.lead_sync_failed", map[string]any{
				"submission_id": sub.ID,
				"error":         err.Error(),
			})
		}
	}

	return Result{Submission: sub, FlaggedAreas: flags}, nil
}

// RequestFullReview records that the lead asked for the full assessment.
func (s *Service) RequestFullReview(ctx context.Context, id string) (Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Submission{}, fmt.Errorf("%w: submission id is required", ErrInvalidInput)
	}
	if err := s.Repo.MarkFullReview(ctx, id); err != nil {
		return Submission{}, err
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns submissions newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]Submission, error) {
	return s.Repo.List(ctx, limit, offset)
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func normalizeLead(l Lead) Lead {
	l.Email = strings.ToLower(strings.TrimSpace(l.Email))
	l.CompanyName = strings.TrimSpace(l.CompanyName)
	l.ContactName = strings.TrimSpace(l.ContactName)
	l.Phone = strings.TrimSpace(l.Phone)
	return l
}

func validateLead(l Lead) error {
	if l.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	addr, err := mail.ParseAddress(l.Email)
	if err != nil || addr.Address != l.Email || !strings.Contains(l.Email[strings.LastIndex(l.Email, "@")+1:], ".") {
		return fmt.Errorf("%w: email is invalid", ErrInvalidInput)
	}
	if l.CompanyName == "" {
		return fmt.Errorf("%w: companyName is required", ErrInvalidInput)
	}
	if l.ContactName == "" {
		return fmt.Errorf("%w: contactName is required", ErrInvalidInput)
	}
	return nil
}

// knownAnswers keeps answers to known questions with known option values.
func knownAnswers(in Answers) Answers {
	out := Answers{}
	for field, value := range in {
		q, ok := QuestionByField(field)
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if _, ok := q.Option(value); ok {
			out[field] = value
		}
	}
	return out
}
