package shotgun

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"time"

	"github.com/Olympedpnt/concerts-etl-sa/lib/chrono"
	"github.com/Olympedpnt/concerts-etl-sa/lib/telemetry"
	"github.com/Olympedpnt/concerts-etl-sa/services/consolidate"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/shotgun")

var LoginFailed = fmt.Errorf("shotgun rejected the organizer credentials")

type Config struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	// BaseUrl exists so tests can point the client at a local server
	BaseUrl string `json:"base_url"`
}

type Client struct {
	http  *resty.Client
	runID string
}

func NewClient(cfg Config, runID string) *Client {
	client := resty.New()
	baseUrl := cfg.BaseUrl
	if baseUrl == "" {
		baseUrl = "https://shotgun.live"
	}
	client.SetBaseURL(baseUrl)
	jar, err := cookiejar.New(nil)
	if err == nil {
		client.SetCookieJar(jar)
	}
	// the organizer dashboard sits behind cloudflare
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetTimeout(time.Second * 30)

	telemetry.InstrumentResty(client, "services/shotgun/http")

	return &Client{http: client, runID: runID}
}

func (c *Client) Login(ctx context.Context, cfg Config) error {
	ctx, span := tracer.Start(ctx, "Login")
	defer span.End()

	res, err := c.http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"email":    cfg.Email,
			"password": cfg.Password,
		}).
		Post("/account/sign-in")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "login request failed")
		return err
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return LoginFailed
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
	if err == nil && doc.Find(`[data-testid="signin-error"]`).Length() > 0 {
		return LoginFailed
	}
	return nil
}

// FetchEvents scrapes the organizer events dashboard and returns one
// record per event card. The page fetch is retried with exponential
// backoff; parsing never fails a record, it just leaves fields empty.
func (c *Client) FetchEvents(ctx context.Context) ([]consolidate.Event, error) {
	ctx, span := tracer.Start(ctx, "FetchEvents")
	defer span.End()

	var doc *goquery.Document
	fetch := func() error {
		res, err := c.http.R().
			SetContext(ctx).
			Get("/organizer/events?filter=all")
		if err != nil {
			return err
		}
		if res.IsError() {
			return fmt.Errorf("events dashboard returned %s", res.Status())
		}
		doc, err = goquery.NewDocumentFromReader(bytes.NewReader(res.Body()))
		return err
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(fetch, policy); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch events dashboard")
		return nil, err
	}

	events := parseCards(doc, chrono.Now().UTC(), c.runID)
	span.SetAttributes(attribute.Int("events", len(events)))
	return events, nil
}
