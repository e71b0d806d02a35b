package bootstrap

import (
	"context"
	"database/sql"
	"strings"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/gin-gonic/gin"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/assessments"
	"aerogap-backend/internal/documents"
	"aerogap-backend/internal/gapanalysis"
	"aerogap-backend/internal/leads"
	"aerogap-backend/internal/llm"
	"aerogap-backend/internal/llm/anthropic"
	"aerogap-backend/internal/llm/openai"
	"aerogap-backend/internal/notify"
	"aerogap-backend/internal/progress"
	"aerogap-backend/internal/queue"
	"aerogap-backend/internal/quiz"
	"aerogap-backend/internal/reports"
	"aerogap-backend/internal/shared/config"
	"aerogap-backend/internal/shared/server"
	"aerogap-backend/internal/shared/storage/db"
	"aerogap-backend/internal/shared/storage/object"
	localstore "aerogap-backend/internal/shared/storage/object/local"
	s3store "aerogap-backend/internal/shared/storage/object/s3"
	"aerogap-backend/internal/shared/telemetry"
)

// App holds shared dependencies.
type App struct {
	Config             config.Config
	Router             *gin.Engine
	DB                 *sql.DB
	Store              object.ObjectStore
	Queue              queue.Client
	Mailer             notify.Mailer
	Analyzer           *gapanalysis.Analyzer
	AssessmentsService *assessments.Service
	DocumentsService   *documents.Service
	ReportsService     *reports.Service
	QuizService        *quiz.Service
}

// Options adjusts Build for callers that do not serve HTTP.
type Options struct {
	// SkipQueue delivers reports inline even when a queue is configured.
	// The worker uses it so it never re-enqueues its own jobs.
	SkipQueue bool
}

// Build wires repositories, services and the router from cfg.
func Build(ctx context.Context, cfg config.Config, opts ...Options) (*App, error) {
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Mailer: buildMailer(cfg),
	}
	if !o.SkipQueue {
		if app.Queue, err = buildQueue(ctx, cfg); err != nil {
			return nil, err
		}
	}
	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            cfg,
		DB:                app.DB,
		AssessmentHandler: assessments.NewHandler(app.AssessmentsService),
		DocumentHandler:   documents.NewHandler(app.DocumentsService),
		ReportHandler:     reports.NewHandler(app.ReportsService, app.AssessmentsService),
		QuizHandler:       quiz.NewHandler(app.QuizService),
	})
	return app, nil
}

func buildServices(app *App) error {
	cfg := app.Config

	var (
		assessmentRepo assessments.Repo
		documentRepo   documents.Repo
		reportRepo     reports.Repo
		quizRepo       quiz.Repo
	)
	if app.DB != nil {
		assessmentRepo = &assessments.PGRepo{DB: app.DB}
		documentRepo = &documents.PGRepo{DB: app.DB}
		reportRepo = &reports.PGRepo{DB: app.DB}
		quizRepo = &quiz.PGRepo{DB: app.DB}
	} else {
		assessmentRepo = assessments.NewMemoryRepo()
		documentRepo = documents.NewMemoryRepo()
		reportRepo = reports.NewMemoryRepo()
		quizRepo = quiz.NewMemoryRepo()
	}

	app.DocumentsService = &documents.Service{Store: app.Store, Repo: documentRepo}

	analyzer := &gapanalysis.Analyzer{SummaryTimeout: cfg.SummaryTimeout}
	client, err := buildLLM(cfg)
	if err != nil {
		return err
	}
	if client != nil {
		analyzer.Summarizer = gapanalysis.LLMSummarizer{
			Client:    client,
			Documents: app.DocumentsService,
			MaxTokens: cfg.SummaryMaxTokens,
		}
	}
	app.Analyzer = analyzer

	app.AssessmentsService = &assessments.Service{
		Repo:      assessmentRepo,
		Analyzer:  analyzer,
		Evaluator: progress.Default(),
	}

	app.ReportsService = &reports.Service{
		Repo:       reportRepo,
		Store:      app.Store,
		Mailer:     app.Mailer,
		Recipients: cfg.ReportRecipients,
		Queue:      app.Queue,
	}

	app.QuizService = &quiz.Service{Repo: quizRepo}
	if cfg.NotionToken != "" && cfg.NotionLeadDB != "" {
		app.QuizService.Leads = &leads.NotionSink{
			Client:     leads.NewNotionClient(cfg.NotionToken, cfg.NotionRPS),
			DatabaseID: cfg.NotionLeadDB,
		}
	}
	return nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "anthropic":
		var opts []option.RequestOption
		if cfg.LLMBaseURL != "" {
			opts = append(opts, option.WithBaseURL(cfg.LLMBaseURL))
		}
		c, err := anthropic.NewClient(cfg.LLMAPIKey, cfg.LLMModel, opts...)
		if err != nil {
			return nil, err
		}
		return llm.WithRetry(c, "anthropic"), nil
	case "openai":
		c, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.SummaryTimeout)
		if err != nil {
			return nil, err
		}
		c.Endpoint = cfg.LLMBaseURL
		return llm.WithRetry(c, "openai"), nil
	default:
		return nil, nil
	}
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, eris.New("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database unavailable", "error": err.Error()})
			if sqlDB != nil {
				_ = sqlDB.Close()
			}
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.AWSRegion, cfg.SQSQueueURL)
}

func buildMailer(cfg config.Config) notify.Mailer {
	if cfg.SMTPHost == "" {
		return notify.Noop{}
	}
	return notify.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}
