package workerproc

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"golang.org/x/sync/errgroup"

	"aerogap-backend/internal/shared/metrics"
	"aerogap-backend/internal/shared/telemetry"
)

const (
	defaultVisibilitySeconds = 300
	defaultConcurrency       = 4
	defaultWaitSeconds       = 20
	receiveBackoff           = 2 * time.Second
)

// SQSAPI is the subset of the SQS client the consumer needs.
type SQSAPI interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// Consumer long-polls a queue and delivers report jobs.
type Consumer struct {
	Client            SQSAPI
	QueueURL          string
	Deliverer         Deliverer
	Concurrency       int
	VisibilitySeconds int
	WaitSeconds       int
}

// Run polls until ctx is canceled, then waits for in-flight jobs.
func (c *Consumer) Run(ctx context.Context) error {
	concurrency := c.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	visibility := c.VisibilitySeconds
	if visibility <= 0 {
		visibility = defaultVisibilitySeconds
	}
	wait := c.WaitSeconds
	if wait <= 0 {
		wait = defaultWaitSeconds
	}

	// In-flight jobs finish on a context that outlives the poll loop.
	jobCtx := context.WithoutCancel(ctx)
	var g errgroup.Group
	g.SetLimit(concurrency)

	telemetry.Info("worker.started", map[string]any{
		"queue_url":   c.QueueURL,
		"concurrency": concurrency,
		"visibility":  visibility,
	})

	for ctx.Err() == nil {
		resp, err := c.Client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            aws.String(c.QueueURL),
			MaxNumberOfMessages: 10,
			WaitTimeSeconds:     int32(wait),
			VisibilityTimeout:   int32(visibility),
			MessageSystemAttributeNames: []sqstypes.MessageSystemAttributeName{
				sqstypes.MessageSystemAttributeNameApproximateReceiveCount,
			},
		})
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
				break
			}
			telemetry.Error("worker.receive_failed", map[string]any{"error": err.Error()})
			select {
			case <-ctx.Done():
			case <-time.After(receiveBackoff):
			}
			continue
		}

		for _, msg := range resp.Messages {
			metrics.IncReportJobsReceived()
			m := msg
			g.Go(func() error {
				c.Handle(jobCtx, m)
				return nil
			})
		}
	}

	telemetry.Info("worker.draining", nil)
	return g.Wait()
}

// Handle processes a single message and deletes it unless it should be retried.
func (c *Consumer) Handle(ctx context.Context, msg sqstypes.Message) {
	body := aws.ToString(msg.Body)
	job, meta, err := ParseMessage(body)
	if err != nil {
		fields := baseFields(msg, job.Message.JobID, job.Message.RequestID)
		fields["body_len"] = meta.BodyLen
		if meta.BodySHA != "" {
			fields["body_sha256"] = meta.BodySHA
		}
		fields["error"] = err.Error()
		telemetry.Error("worker.report.parse_failed", fields)
		if c.delete(ctx, msg, job.Message.JobID, job.Message.RequestID) {
			metrics.IncReportJobsUnrecoverable()
		}
		return
	}

	telemetry.Info("worker.report.received", baseFields(msg, job.Message.JobID, job.Message.RequestID))

	if err := HandleJob(ctx, c.Deliverer, job); err != nil {
		fields := baseFields(msg, job.Message.JobID, job.Message.RequestID)
		fields["error"] = err.Error()
		if Unrecoverable(err) {
			telemetry.Error("worker.report.rejected", fields)
			if c.delete(ctx, msg, job.Message.JobID, job.Message.RequestID) {
				metrics.IncReportJobsUnrecoverable()
			}
			return
		}
		telemetry.Error("worker.report.failed", fields)
		metrics.IncReportJobsFailed()
		return
	}

	if c.delete(ctx, msg, job.Message.JobID, job.Message.RequestID) {
		telemetry.Info("worker.report.completed", baseFields(msg, job.Message.JobID, job.Message.RequestID))
		metrics.IncReportJobsCompleted()
	}
}

func (c *Consumer) delete(ctx context.Context, msg sqstypes.Message, jobID, requestID string) bool {
	receipt := aws.ToString(msg.ReceiptHandle)
	if receipt == "" {
		fields := baseFields(msg, jobID, requestID)
		fields["error"] = "missing receipt handle"
		telemetry.Error("worker.report.delete_failed", fields)
		return false
	}
	if _, err := c.Client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(c.QueueURL),
		ReceiptHandle: aws.String(receipt),
	}); err != nil {
		fields := baseFields(msg, jobID, requestID)
		fields["error"] = err.Error()
		telemetry.Error("worker.report.delete_failed", fields)
		return false
	}
	return true
}

func baseFields(msg sqstypes.Message, jobID, requestID string) map[string]any {
	fields := map[string]any{
		"job_id":         jobID,
		"sqs_message_id": aws.ToString(msg.MessageId),
		"receive_count":  receiveCount(msg),
	}
	if strings.TrimSpace(requestID) != "" {
		fields["request_id"] = requestID
	}
	return fields
}

func receiveCount(msg sqstypes.Message) int {
	raw := msg.Attributes[string(sqstypes.MessageSystemAttributeNameApproximateReceiveCount)]
	if raw == "" {
		return 0
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return parsed
}
