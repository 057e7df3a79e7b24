package dice

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/telemetry"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/dice")

type Config struct {
	ApiToken string `json:"api_token"`
	// Endpoint exists so tests can point the client at a local server
	Endpoint string `json:"endpoint"`
}

type Client struct {
	http     *resty.Client
	endpoint string
	runID    string
}

func NewClient(cfg Config, runID string) *Client {
	client := resty.New()
	client.SetTimeout(time.Second * 15)
	client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", cfg.ApiToken))
	client.SetHeader("Content-Type", "application/json")

	telemetry.InstrumentResty(client, "services/dice/http")

	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = "https://partners-endpoint.dice.fm/graphql"
	}
	return &Client{http: client, endpoint: endpoint, runID: runID}
}

type graphqlError struct {
	Message string `json:"message"`
}

// query posts one GraphQL request and decodes the data payload into out.
func (c *Client) query(ctx context.Context, name, query string, variables any, out any) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("graphql:%s", name))
	defer span.End()

	serialized, err := json.Marshal(variables)
	if err == nil {
		span.SetAttributes(attribute.String("variables", string(serialized)))
	}

	body, err := json.Marshal(map[string]any{
		"operationName": name,
		"query":         query,
		"variables":     variables,
	})
	if err != nil {
		return err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		Post(c.endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return fmt.Errorf("dice graphql returned %s", res.Status())
	}

	var result struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(res.Body(), &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse json response")
		return err
	}
	if len(result.Errors) > 0 {
		err := fmt.Errorf("dice graphql errors: %s", result.Errors[0].Message)
		span.RecordError(err)
		span.SetStatus(codes.Error, "graphql level error")
		return err
	}
	return json.Unmarshal(result.Data, out)
}

// RetryNotify-compatible wrapper so each page fetch backs off on its own.
func (c *Client) queryWithBackoff(ctx context.Context, name, query string, variables any, out any) error {
	operation := func() error {
		return c.query(ctx, name, query, variables, out)
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	return backoff.Retry(operation, policy)
}
