// Package reports renders gap analysis reports, stores them and notifies
// the administrators who review them.
package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/assessment"
	"aerogap-backend/internal/notify"
	"aerogap-backend/internal/queue"
	"aerogap-backend/internal/reports/render"
	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/storage/object"
	"aerogap-backend/internal/shared/telemetry"
)

const (
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"

	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var emailTemplate = template.Must(template.New("report").Parse(`<h2>New Assessment Completed</h2>
<p><strong>Company:</strong> {{.Company}}</p>
<p><strong>Overall Score:</strong> {{.Score}}%</p>
<p><strong>Submitted by:</strong> {{.SubmittedBy}}</p>
<p><strong>Date:</strong> {{.Date}}</p>
<p>The PDF report is attached below.</p>
`))

// Service contains business logic for reports.
type Service struct {
	Repo       Repo
	Store      object.ObjectStore
	Mailer     notify.Mailer
	Recipients []string
	// Queue is optional; without it Request delivers inline.
	Queue queue.Client
	Now   func() time.Time
}

// Request delivers a report, or enqueues a report.deliver job when a queue
// is configured. The returned bool reports whether the job was queued.
func (s *Service) Request(ctx context.Context, req DeliverRequest, requestID string) (Report, bool, error) {
	if err := validate(req); err != nil {
		return Report{}, false, err
	}
	if req.ReportID == "" {
		req.ReportID = uuid.NewString()
	}
	if s.Queue == nil {
		rep, err := s.Deliver(ctx, req)
		return rep, false, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return Report{}, false, eris.Wrap(err, "encode report job")
	}
	msg := queue.Message{
		Type:       queue.TypeReportDeliver,
		JobID:      req.ReportID,
		RequestID:  requestID,
		EnqueuedAt: s.now().Format(time.RFC3339),
		Version:    queue.CurrentVersion,
		Payload:    payload,
	}
	if err := s.Queue.Send(ctx, msg); err != nil {
		return Report{}, false, err
	}
	pending := Report{
		ID:           req.ReportID,
		UserID:       req.UserID,
		CompanyName:  req.Result.CompanyName,
		OverallScore: req.Result.OverallScore,
		FileName:     render.FileName(req.Result.CompanyName),
	}
	return pending, true, nil
}

// Deliver renders the PDF, stores it, records the report and emails the
// recipients. The record is written before the email so a redelivered job
// with the same ReportID returns the existing report without mailing again.
// Email failure leaves EmailSent false but does not fail delivery.
func (s *Service) Deliver(ctx context.Context, req DeliverRequest) (Report, error) {
	if err := validate(req); err != nil {
		return Report{}, err
	}
	if req.ReportID != "" {
		existing, err := s.Repo.GetByID(ctx, req.ReportID)
		if err == nil {
			return s.alreadyDelivered(existing), nil
		}
		if !errors.Is(err, ErrNotFound) {
			return Report{}, err
		}
	}

	start := time.Now()
	result := req.Result
	data, err := render.PDF(result)
	if err != nil {
		return Report{}, err
	}
	metrics.IncReportsGenerated()
	metrics.ObserveReportDurationMs(metrics.SinceMillis(start))

	id := req.ReportID
	if id == "" {
		id = uuid.NewString()
	}
	fileName := render.FileName(result.CompanyName)
	key := fmt.Sprintf("reports/%s/%s/%s", object.OwnerPrefix(req.UserID), id, fileName)
	if _, err := s.Store.SaveWithKey(ctx, key, ContentTypePDF, bytes.NewReader(data)); err != nil {
		return Report{}, eris.Wrap(err, "store report")
	}

	rep := Report{
		ID:           id,
		UserID:       req.UserID,
		CompanyName:  result.CompanyName,
		OverallScore: result.OverallScore,
		FileName:     fileName,
		StorageKey:   key,
		CreatedAt:    s.now(),
	}
	if err := s.Repo.Create(ctx, rep); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			existing, getErr := s.Repo.GetByID(ctx, id)
			if getErr != nil {
				return Report{}, getErr
			}
			return s.alreadyDelivered(existing), nil
		}
		return Report{}, err
	}

	if s.email(ctx, rep, req.SubmittedBy, data) {
		rep.EmailSent = true
		if err := s.Repo.MarkEmailSent(ctx, rep.ID); err != nil {
			telemetry.Warn("reports.mark_emailed_failed", map[string]any{
				"report_id": rep.ID,
				"error":     err.Error(),
			})
		}
	}
	telemetry.Info("reports.delivered", map[string]any{
		"report_id":  rep.ID,
		"user_id":    rep.UserID,
		"score":      rep.OverallScore,
		"email_sent": rep.EmailSent,
	})
	return rep, nil
}

func (s *Service) alreadyDelivered(rep Report) Report {
	telemetry.Info("reports.duplicate_delivery", map[string]any{
		"report_id": rep.ID,
		"user_id":   rep.UserID,
	})
	return rep
}

// Subject is the notification subject line for a report.
func Subject(company string, score int) string {
	return fmt.Sprintf("New Gap Analysis Report: %s (Score: %d%%)", company, score)
}

func (s *Service) email(ctx context.Context, rep Report, submittedBy string, pdf []byte) bool {
	if s.Mailer == nil || len(s.Recipients) == 0 {
		return false
	}
	if submittedBy == "" {
		submittedBy = "Unknown"
	}
	var body bytes.Buffer
	err := emailTemplate.Execute(&body, map[string]any{
		"Company":     rep.CompanyName,
		"Score":       rep.OverallScore,
		"SubmittedBy": submittedBy,
		"Date":        rep.CreatedAt.Format("January 2, 2006"),
	})
	if err == nil {
		err = s.Mailer.Send(ctx, notify.Message{
			To:      s.Recipients,
			Subject: Subject(rep.CompanyName, rep.OverallScore),
			HTML:    body.String(),
			Attachments: []notify.Attachment{{
				FileName:    rep.FileName,
				ContentType: ContentTypePDF,
				Data:        pdf,
			}},
		})
	}
	if err != nil {
		metrics.IncReportEmailFailed()
		telemetry.Warn("reports.email_failed", map[string]any{
			"report_id": rep.ID,
			"error":     err.Error(),
		})
		return false
	}
	return true
}

// Render returns a rendering of result without storing it.
func (s *Service) Render(result assessment.Result, format string) (data []byte, contentType, fileName string, err error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatPDF:
		data, err = render.PDF(result)
		return data, ContentTypePDF, render.FileName(result.CompanyName), err
	case FormatXLSX:
		data, err = render.XLSX(result)
		return data, ContentTypeXLSX, render.WorkbookName(result.CompanyName), err
	default:
		return nil, "", "", ErrUnsupportedFormat
	}
}

// ListAll returns every report newest first.
func (s *Service) ListAll(ctx context.Context, limit, offset int) ([]Report, error) {
	return s.Repo.ListAll(ctx, limit, offset)
}

// ListByUser returns the user's reports newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Report, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}
	return s.Repo.ListByUser(ctx, userID)
}

// Open returns the stored PDF. Unless admin is set, only the owner may open
// a report; other users see ErrNotFound.
func (s *Service) Open(ctx context.Context, id, userID string, admin bool) (Report, io.ReadCloser, error) {
	rep, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Report{}, nil, err
	}
	if !admin && rep.UserID != userID {
		return Report{}, nil, ErrNotFound
	}
	rc, err := s.Store.Open(ctx, rep.StorageKey)
	if err != nil {
		return Report{}, nil, eris.Wrapf(err, "open report %s", id)
	}
	return rep, rc, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func validate(req DeliverRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return fmt.Errorf("%w: user id required", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Result.CompanyName) == "" {
		return fmt.Errorf("%w: analysis result required", ErrInvalidInput)
	}
	return nil
}
