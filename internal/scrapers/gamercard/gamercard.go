// Package gamercard reads the current gamerscore of a player off their
// public gamercard.
package gamercard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"achrip/internal/components/assert"
	"achrip/internal/components/telemetry"
	"achrip/pkg/htmlutil"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	report_client_score = "client.score"
)

// Unknown is the score reported when the gamercard could not be read.
const Unknown int64 = -1

const DefaultBaseUrl = "http://gamercard.xbox.com"

var ErrNoScore = errors.New("gamercard has no score")

var tracer = telemetry.Tracer("achrip.gamercard")

type Options struct {
	BaseUrl        string `json:"base_url"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	// CloudflareBypass wraps the transport in a browser-like TLS fingerprint.
	CloudflareBypass bool `json:"cloudflare_bypass"`
}

type Client struct {
	http *resty.Client
	tel  telemetry.API
}

func NewClient(options Options, tel telemetry.API) Client {
	assert.NotNil(tel)
	assert.NotNegative("timeout_seconds", options.TimeoutSeconds)

	tel = telemetry.NewScopedAPI("gamercard", tel)

	if options.BaseUrl == "" {
		options.BaseUrl = DefaultBaseUrl
	}
	timeout := time.Second * 30
	if options.TimeoutSeconds > 0 {
		timeout = time.Second * time.Duration(options.TimeoutSeconds)
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(options.BaseUrl)
	httpClient.SetTimeout(timeout)
	if options.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	telemetry.InstrumentResty(httpClient, tel)

	return Client{
		http: httpClient,
		tel:  tel,
	}
}

// CardPath is the path of the gamercard of a gamertag, spaces become '+'.
func CardPath(gamertag string) string {
	return "/" + strings.ReplaceAll(gamertag, " ", "+") + ".card"
}

var digitsRegex = regexp.MustCompile(`^\d+$`)

func parseScore(body []byte) (int64, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return 0, err
	}

	for _, node := range doc.Find("span.XbcFRAR").Nodes {
		text := strings.TrimSpace(htmlutil.GetText(node))
		if !digitsRegex.MatchString(text) {
			continue
		}
		return strconv.ParseInt(text, 10, 64)
	}
	return 0, ErrNoScore
}

// Fetch returns the gamerscore shown on the gamercard of gamertag.
func (c Client) Fetch(ctx context.Context, gamertag string) (int64, error) {
	ctx, span := tracer.Start(ctx, "Fetch")
	defer span.End()
	span.SetAttributes(attribute.String("gamertag", gamertag))

	res, err := c.http.R().
		SetContext(ctx).
		Get(CardPath(gamertag))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("get gamercard: %w", err)
	}
	if res.IsError() {
		span.SetStatus(codes.Error, res.Status())
		return 0, fmt.Errorf("get gamercard: unexpected status %s", res.Status())
	}

	score, err := parseScore(res.Body())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("parse gamercard: %w", err)
	}
	span.SetAttributes(attribute.Int64("score", score))
	return score, nil
}

// Score is like Fetch but reports failures and returns Unknown instead.
func (c Client) Score(ctx context.Context, gamertag string) int64 {
	score, err := c.Fetch(ctx, gamertag)
	if err != nil {
		c.tel.ReportWarning(report_client_score, err, gamertag)
		return Unknown
	}
	return score
}
