package assessments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/progress"
)

// Analyzer produces a gap analysis for assessment data.
type Analyzer interface {
	Analyze(ctx context.Context, data assessment.Data) (assessment.Result, error)
}

// Service manages assessment sessions.
type Service struct {
	Repo      Repo
	Analyzer  Analyzer
	Evaluator *progress.Evaluator
	Now       func() time.Time
}

// ProgressReport is the completion of a saved session.
type ProgressReport struct {
	progress.Summary
	CurrentStep    int                `json:"currentStep"`
	CurrentSection progress.SectionID `json:"currentSection,omitempty"`
}

// Load returns the user's session.
func (s *Service) Load(ctx context.Context, userID string) (Session, error) {
	if err := requireUser(userID); err != nil {
		return Session{}, err
	}
	return s.Repo.Get(ctx, userID)
}

// Save replaces the saved answers and step. Any cached analysis is dropped
// because it no longer matches the answers.
func (s *Service) Save(ctx context.Context, userID string, data assessment.Data, step int) (Session, error) {
	if err := requireUser(userID); err != nil {
		return Session{}, err
	}
	if err := s.validateStep(step); err != nil {
		return Session{}, err
	}
	sess := Session{
		UserID:      userID,
		Data:        data,
		CurrentStep: step,
		UpdatedAt:   s.now(),
	}
	if err := s.Repo.Upsert(ctx, sess); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Update merges patch into the saved answers, creating the session if needed.
// A nil step keeps the saved step.
func (s *Service) Update(ctx context.Context, userID string, patch assessment.Data, step *int) (Session, error) {
	if err := requireUser(userID); err != nil {
		return Session{}, err
	}
	current, err := s.Repo.Get(ctx, userID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Session{}, err
	}
	merged, err := current.Data.Merge(patch)
	if err != nil {
		return Session{}, err
	}
	next := current.CurrentStep
	if step != nil {
		next = *step
	}
	return s.Save(ctx, userID, merged, next)
}

// Delete removes the user's session. Deleting a missing session succeeds.
func (s *Service) Delete(ctx context.Context, userID string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, userID)
}

// Analyze runs the gap analysis on the saved answers and caches the result.
func (s *Service) Analyze(ctx context.Context, userID string) (assessment.Result, error) {
	sess, err := s.Load(ctx, userID)
	if err != nil {
		return assessment.Result{}, err
	}
	result, err := s.Analyzer.Analyze(ctx, sess.Data)
	if err != nil {
		return assessment.Result{}, err
	}
	if err := s.Repo.SaveResult(ctx, userID, result, s.now()); err != nil {
		return assessment.Result{}, err
	}
	return result, nil
}

// Progress reports completion of the saved answers.
func (s *Service) Progress(ctx context.Context, userID string) (ProgressReport, error) {
	sess, err := s.Load(ctx, userID)
	if err != nil {
		return ProgressReport{}, err
	}
	ev := s.evaluator()
	report := ProgressReport{
		Summary:     ev.Summarize(sess.Data),
		CurrentStep: sess.CurrentStep,
	}
	if section, ok := ev.SectionAt(sess.CurrentStep); ok {
		report.CurrentSection = section.ID
	}
	return report, nil
}

func (s *Service) validateStep(step int) error {
	if n := len(s.evaluator().Layout()); step < 0 || step >= n {
		return fmt.Errorf("%w: currentStep must be between 0 and %d", ErrInvalidInput, n-1)
	}
	return nil
}

func (s *Service) evaluator() *progress.Evaluator {
	if s.Evaluator != nil {
		return s.Evaluator
	}
	return progress.Default()
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func requireUser(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	return nil
}
