// Command lambda-http serves the API behind an API Gateway HTTP API
// (payload format 2.0).
//
//	GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -o bootstrap ./cmd/lambda-http
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/rotisserie/eris"

	"aerogap-backend/internal/bootstrap"
	"aerogap-backend/internal/shared/config"
	"aerogap-backend/internal/shared/server/respond"
	"aerogap-backend/internal/shared/telemetry"
)

var (
	initOnce sync.Once
	initErr  error
	adapter  *ginadapter.GinLambdaV2
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
	app, err := bootstrap.Build(context.Background(), cfg)
	if err != nil {
		initErr = eris.Wrap(err, "bootstrap")
		return
	}
	adapter = ginadapter.NewV2(app.Router)
}

func handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	initOnce.Do(initApp)
	if initErr != nil {
		telemetry.Error("lambda.http.bootstrap_failed", map[string]any{
			"error": initErr.Error(),
			"path":  req.RawPath,
		})
		return unavailable(), nil
	}
	return adapter.ProxyWithContext(ctx, req)
}

// unavailable is returned while the function cannot build its dependencies.
func unavailable() events.APIGatewayV2HTTPResponse {
	body, _ := json.Marshal(respond.ErrorResponse{Error: respond.ErrorBody{
		Code:    "service_unavailable",
		Message: "service is starting or misconfigured",
	}})
	return events.APIGatewayV2HTTPResponse{
		StatusCode: http.StatusServiceUnavailable,
		Body:       string(body),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Retry-After":  "5",
		},
	}
}

func main() {
	lambda.Start(handler)
}
