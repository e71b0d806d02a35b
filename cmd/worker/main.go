package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"aerogap-backend/internal/bootstrap"
	"aerogap-backend/internal/shared/config"
	"aerogap-backend/internal/shared/telemetry"
	"aerogap-backend/internal/workerproc"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := telemetry.Init(cfg.LogFormat, cfg.LogLevel); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer telemetry.Sync()

	if cfg.SQSQueueURL == "" {
		log.Fatal("SQS_QUEUE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		log.Fatalf("load aws config: %v", err)
	}

	app, err := bootstrap.Build(ctx, cfg, bootstrap.Options{SkipQueue: true})
	if err != nil {
		log.Fatalf("bootstrap build: %v", err)
	}

	consumer := &workerproc.Consumer{
		Client:            sqs.NewFromConfig(awsCfg),
		QueueURL:          cfg.SQSQueueURL,
		Deliverer:         app.ReportsService,
		Concurrency:       cfg.WorkerConcurrency,
		VisibilitySeconds: cfg.SQSVisibilitySeconds,
	}
	if err := consumer.Run(ctx); err != nil {
		log.Fatalf("worker: %v", err)
	}
	telemetry.Info("worker.stopped", nil)
}
