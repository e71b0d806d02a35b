// Package workerproc consumes report.deliver jobs from SQS.
package workerproc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"

	"aerogap-backend/internal/queue"
	"aerogap-backend/internal/reports"
	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/telemetry"
)

// MessageMeta captures details useful for logging and diagnostics.
type MessageMeta struct {
	BodyLen int
	BodySHA string
}

// ComputeMeta returns the body length and SHA-256 hash.
func ComputeMeta(body string) MessageMeta {
	if body == "" {
		return MessageMeta{BodyLen: 0, BodySHA: ""}
	}
	sum := sha256.Sum256([]byte(body))
	return MessageMeta{BodyLen: len(body), BodySHA: hex.EncodeToString(sum[:])}
}

// ErrEmptyBody indicates an empty queue payload.
type ErrEmptyBody struct {
	Meta MessageMeta
}

func (e ErrEmptyBody) Error() string { return "empty message body" }

// ErrDecode indicates a JSON decode failure of the envelope or payload.
type ErrDecode struct {
	Meta MessageMeta
	Err  error
}

func (e ErrDecode) Error() string {
	if e.Err == nil {
		return "decode message"
	}
	return "decode message: " + e.Err.Error()
}

func (e ErrDecode) Unwrap() error { return e.Err }

// ErrUnknownType indicates a message this worker does not handle.
type ErrUnknownType struct {
	Meta MessageMeta
	Type string
}

func (e ErrUnknownType) Error() string { return "unknown message type: " + e.Type }

// ErrProcess indicates delivery failed after successful parsing.
type ErrProcess struct {
	JobID     string
	RequestID string
	Err       error
}

func (e ErrProcess) Error() string {
	if e.Err == nil {
		return "process report job"
	}
	return "process report job: " + e.Err.Error()
}

func (e ErrProcess) Unwrap() error { return e.Err }

// Job is a parsed report.deliver message.
type Job struct {
	Message queue.Message
	Request reports.DeliverRequest
}

// Deliverer performs report delivery.
type Deliverer interface {
	Deliver(ctx context.Context, req reports.DeliverRequest) (reports.Report, error)
}

// ParseMessage validates and decodes the queue payload.
func ParseMessage(body string) (Job, MessageMeta, error) {
	meta := ComputeMeta(body)
	if strings.TrimSpace(body) == "" {
		return Job{}, meta, ErrEmptyBody{Meta: meta}
	}

	msg, err := queue.DecodeMessage([]byte(body))
	if err != nil {
		return Job{}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if msg.Type != queue.TypeReportDeliver {
		return Job{Message: msg}, meta, ErrUnknownType{Meta: meta, Type: msg.Type}
	}

	var req reports.DeliverRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		return Job{Message: msg}, meta, ErrDecode{Meta: meta, Err: err}
	}
	if req.ReportID == "" {
		req.ReportID = msg.JobID
	}
	return Job{Message: msg, Request: req}, meta, nil
}

// Unrecoverable reports whether retrying the message can never succeed.
func Unrecoverable(err error) bool {
	var (
		empty   ErrEmptyBody
		decode  ErrDecode
		unknown ErrUnknownType
	)
	if errors.As(err, &empty) || errors.As(err, &decode) || errors.As(err, &unknown) {
		return true
	}
	return errors.Is(err, reports.ErrInvalidInput)
}

// HandleJob delivers a parsed job.
func HandleJob(ctx context.Context, d Deliverer, job Job) error {
	if d == nil {
		return errors.New("report service not configured")
	}
	if _, err := d.Deliver(ctx, job.Request); err != nil {
		return ErrProcess{JobID: job.Message.JobID, RequestID: job.Message.RequestID, Err: err}
	}
	return nil
}

// Process parses and delivers one message body. It returns an error only when
// the message should be retried. Unrecoverable messages are logged and
// dropped.
func Process(ctx context.Context, d Deliverer, body string) error {
	job, meta, err := ParseMessage(body)
	if err != nil {
		telemetry.Error("worker.report.parse_failed", map[string]any{
			"job_id":      job.Message.JobID,
			"body_len":    meta.BodyLen,
			"body_sha256": meta.BodySHA,
			"error":       err.Error(),
		})
		metrics.IncReportJobsUnrecoverable()
		return nil
	}

	fields := map[string]any{"job_id": job.Message.JobID}
	if job.Message.RequestID != "" {
		fields["request_id"] = job.Message.RequestID
	}
	if err := HandleJob(ctx, d, job); err != nil {
		fields["error"] = err.Error()
		if Unrecoverable(err) {
			telemetry.Error("worker.report.rejected", fields)
			metrics.IncReportJobsUnrecoverable()
			return nil
		}
		telemetry.Error("worker.report.failed", fields)
		metrics.IncReportJobsFailed()
		return err
	}
	telemetry.Info("worker.report.completed", fields)
	metrics.IncReportJobsCompleted()
	return nil
}
