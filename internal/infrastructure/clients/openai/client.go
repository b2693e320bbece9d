package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/healthflow/backend/internal/domain/providers"
	"github.com/healthflow/backend/pkg/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the advisory provider against the OpenAI responses API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OpenAI advisory client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
}

// Answer asks the advisory model the patient's question, constrained to the
// serialized pathway context. The caller owns the fallback on any error.
func (c *Client) Answer(ctx context.Context, groundingContext, question string) (string, error) {
	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]string{
			{"role": "system", "content": advisorySystemPrompt},
			{"role": "user", "content": buildAdvisoryUserPrompt(groundingContext, question)},
		},
		"temperature":       0.2,
		"max_output_tokens": 300,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordAdvisoryMetric(ctx, c.model, 0, time.Since(start), err)
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		recordAdvisoryMetric(ctx, c.model, resp.StatusCode, time.Since(start), fmt.Errorf("status %d", resp.StatusCode))
		return "", fmt.Errorf("openai request failed with status %d", resp.StatusCode)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordAdvisoryMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var text string
	for _, out := range envelope.Output {
		for _, content := range out.Content {
			if content.Type == "output_text" && content.Text != "" {
				text = content.Text
				break
			}
		}
		if text != "" {
			break
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		recordAdvisoryMetric(ctx, c.model, resp.StatusCode, time.Since(start), providers.ErrAdvisoryEmptyAnswer)
		return "", providers.ErrAdvisoryEmptyAnswer
	}

	recordAdvisoryMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return text, nil
}

type advisoryMetrics struct {
	requestCount    metric.Int64Counter
	requestDuration metric.Float64Histogram
	requestErrors   metric.Int64Counter
}

var (
	advisoryMetricsOnce  sync.Once
	advisoryMetricsReady bool
	advisoryMetricsSet   advisoryMetrics
)

// ensureAdvisoryMetrics initializes the instruments exactly once; Answer can
// be called from concurrent requests.
func ensureAdvisoryMetrics() bool {
	advisoryMetricsOnce.Do(initAdvisoryMetrics)
	return advisoryMetricsReady
}

func initAdvisoryMetrics() {
	meter := otel.Meter("github.com/healthflow/backend/openai")

	requestCount, err := meter.Int64Counter(
		"ai.advisory.request.count",
		metric.WithDescription("Number of advisory model requests"),
	)
	if err != nil {
		return
	}
	requestDuration, err := meter.Float64Histogram(
		"ai.advisory.request.duration",
		metric.WithDescription("Advisory model request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return
	}
	requestErrors, err := meter.Int64Counter(
		"ai.advisory.request.errors",
		metric.WithDescription("Number of advisory model request errors"),
	)
	if err != nil {
		return
	}

	advisoryMetricsSet = advisoryMetrics{
		requestCount:    requestCount,
		requestDuration: requestDuration,
		requestErrors:   requestErrors,
	}
	advisoryMetricsReady = true
}

func recordAdvisoryMetric(ctx context.Context, model string, statusCode int, duration time.Duration, err error) {
	if !ensureAdvisoryMetrics() {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("ai.provider", "openai"),
		attribute.String("ai.model", model),
	}
	if statusCode > 0 {
		attrs = append(attrs, attribute.Int("http.status_code", statusCode))
	}

	advisoryMetricsSet.requestCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	advisoryMetricsSet.requestDuration.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
	if err != nil {
		advisoryMetricsSet.requestErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
