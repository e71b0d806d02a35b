package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"aerogap-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	DatabaseURL string
	SQSQueueURL string

	JWTSecret   string
	AllowGuests bool
	AdminEmails []string

	LLMProvider      string
	LLMModel         string
	LLMAPIKey        string
	LLMBaseURL       string
	SummaryTimeout   time.Duration
	SummaryMaxTokens int64

	SMTPHost         string
	SMTPPort         int
	SMTPUsername     string
	SMTPPassword     string
	SMTPFrom         string
	ReportRecipients []string

	NotionToken  string
	NotionLeadDB string
	NotionRPS    float64

	RateLimitRPS         float64
	RateLimitBurst       int
	SubmitRateLimitRPS   float64
	SubmitRateLimitBurst int

	WorkerConcurrency    int
	SQSVisibilitySeconds int

	LogLevel  string
	LogFormat string
}

// IsProduction reports whether the service runs in production.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// SMTPAddr is host:port for the mail relay, or empty when SMTP is not configured.
func (c Config) SMTPAddr() string {
	if c.SMTPHost == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.SMTPHost, c.SMTPPort)
}

const devJWTSecret = "dev-secret"

// Load reads configuration from an optional config.yaml and environment
// variables. Keys map to upper-case env names (cors_allow_origins ->
// CORS_ALLOW_ORIGINS).
func Load() (Config, error) {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, eris.Wrap(err, "config: read file")
		}
	}

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("env", "dev")
	v.SetDefault("cors_allow_origins", "http://localhost:5173")
	v.SetDefault("object_store", "local")
	v.SetDefault("local_store_dir", "./data")
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("allow_guests", true)
	v.SetDefault("llm_provider", "none")
	v.SetDefault("summary_timeout", "20s")
	v.SetDefault("summary_max_tokens", 1024)
	v.SetDefault("smtp_port", 587)
	v.SetDefault("notion_rps", 3)
	v.SetDefault("rate_limit_rps", 5)
	v.SetDefault("rate_limit_burst", 20)
	v.SetDefault("submit_rate_limit_rps", 0.2)
	v.SetDefault("submit_rate_limit_burst", 5)
	v.SetDefault("worker_concurrency", 4)
	v.SetDefault("sqs_visibility_timeout_seconds", 300)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

func fromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		Port:            v.GetString("port"),
		Env:             normalizeEnv(v.GetString("env")),
		CORSAllowOrigin: stringList(v, "cors_allow_origins"),

		ObjectStoreType: normalizeStoreType(v.GetString("object_store")),
		LocalStoreDir:   v.GetString("local_store_dir"),
		AWSRegion:       v.GetString("aws_region"),
		S3Bucket:        v.GetString("s3_bucket"),
		S3Prefix:        v.GetString("s3_prefix"),
		SSEKMSKeyID:     v.GetString("sse_kms_key_id"),

		DatabaseURL: v.GetString("database_url"),
		SQSQueueURL: v.GetString("sqs_queue_url"),

		JWTSecret:   v.GetString("jwt_secret"),
		AllowGuests: v.GetBool("allow_guests"),
		AdminEmails: lowerAll(stringList(v, "admin_emails")),

		LLMProvider:      normalizeProvider(v.GetString("llm_provider")),
		LLMModel:         v.GetString("llm_model"),
		LLMAPIKey:        v.GetString("llm_api_key"),
		LLMBaseURL:       v.GetString("llm_base_url"),
		SummaryTimeout:   v.GetDuration("summary_timeout"),
		SummaryMaxTokens: v.GetInt64("summary_max_tokens"),

		SMTPHost:         v.GetString("smtp_host"),
		SMTPPort:         v.GetInt("smtp_port"),
		SMTPUsername:     v.GetString("smtp_username"),
		SMTPPassword:     v.GetString("smtp_password"),
		SMTPFrom:         v.GetString("smtp_from"),
		ReportRecipients: stringList(v, "report_recipients"),

		NotionToken:  v.GetString("notion_token"),
		NotionLeadDB: v.GetString("notion_lead_db"),
		NotionRPS:    v.GetFloat64("notion_rps"),

		RateLimitRPS:         v.GetFloat64("rate_limit_rps"),
		RateLimitBurst:       v.GetInt("rate_limit_burst"),
		SubmitRateLimitRPS:   v.GetFloat64("submit_rate_limit_rps"),
		SubmitRateLimitBurst: v.GetInt("submit_rate_limit_burst"),

		WorkerConcurrency:    v.GetInt("worker_concurrency"),
		SQSVisibilitySeconds: v.GetInt("sqs_visibility_timeout_seconds"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return Config{}, eris.New("config: JWT_SECRET is required in production")
		}
		cfg.JWTSecret = devJWTSecret
	}
	if cfg.IsProduction() && cfg.DatabaseURL == "" {
		telemetry.Warn("config.database_url_missing", map[string]any{"env": cfg.Env})
	}
	if cfg.ObjectStoreType == "s3" && cfg.S3Bucket == "" {
		return Config{}, eris.New("config: S3_BUCKET is required when OBJECT_STORE=s3")
	}
	if cfg.LLMProvider != "none" && cfg.LLMAPIKey == "" {
		return Config{}, eris.Errorf("config: LLM_API_KEY is required for provider %s", cfg.LLMProvider)
	}
	if cfg.SummaryTimeout <= 0 {
		cfg.SummaryTimeout = 20 * time.Second
	}
	if cfg.WorkerConcurrency <= 0 {
		cfg.WorkerConcurrency = 1
	}
	return cfg, nil
}

// stringList accepts either a YAML list or a comma separated string.
func stringList(v *viper.Viper, key string) []string {
	switch raw := v.Get(key).(type) {
	case []string:
		return trimAll(raw)
	case []any:
		out := make([]string, 0, len(raw))
		for _, item := range raw {
			out = append(out, fmt.Sprint(item))
		}
		return trimAll(out)
	default:
		return splitAndTrim(v.GetString(key))
	}
}

func splitAndTrim(raw string) []string {
	return trimAll(strings.Split(raw, ","))
}

func trimAll(in []string) []string {
	var out []string
	for _, p := range in {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func lowerAll(in []string) []string {
	for i := range in {
		in[i] = strings.ToLower(in[i])
	}
	return in
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "anthropic", "claude":
		return "anthropic"
	default:
		return "none"
	}
}
