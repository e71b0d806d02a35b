// Command lambda-worker delivers report.deliver jobs from an SQS event
// source mapping with partial batch responses enabled.
//
//	GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-worker
package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/bootstrap"
	"aerogap-backend/internal/shared/config"
	"aerogap-backend/internal/shared/telemetry"
	"aerogap-backend/internal/workerproc"
)

var (
	initOnce  sync.Once
	initErr   error
	deliverer workerproc.Deliverer
)

func initApp() {
	cfg, err := config.Load()
	if err != nil {
		initErr = eris.Wrap(err, "load config")
		return
	}
	if err := telemetry.Init(cfg.LogFormat, cfg.LogLevel); err != nil {
		initErr = eris.Wrap(err, "init telemetry")
		return
	}
	app, err := bootstrap.Build(context.Background(), cfg, bootstrap.Options{SkipQueue: true})
	if err != nil {
		initErr = eris.Wrap(err, "bootstrap")
		return
	}
	deliverer = app.ReportsService
}

func handler(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.worker.bootstrap_failed", map[string]any{
			"error":   initErr.Error(),
			"records": len(event.Records),
		})
		return failAll(event.Records), initErr
	}
	return processBatch(ctx, deliverer, event.Records), nil
}

// processBatch reports only the records that should be redelivered.
func processBatch(ctx context.Context, d workerproc.Deliverer, records []events.SQSMessage) events.SQSEventResponse {
	resp := events.SQSEventResponse{BatchItemFailures: []events.SQSBatchItemFailure{}}
	for _, record := range records {
		if ctx.Err() != nil {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
			continue
		}
		if err := workerproc.Process(ctx, d, record.Body); err != nil {
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
		}
	}
	return resp
}

func failAll(records []events.SQSMessage) events.SQSEventResponse {
	failures := make([]events.SQSBatchItemFailure, 0, len(records))
	for _, record := range records {
		failures = append(failures, events.SQSBatchItemFailure{ItemIdentifier: record.MessageId})
	}
	return events.SQSEventResponse{BatchItemFailures: failures}
}

func main() {
	lambda.Start(handler)
}
