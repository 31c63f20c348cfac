// Package llm generates prediction explanations, personalized care steps,
// and score adjustments via a chat-completion API, with deterministic
// fallbacks when no key is configured or the call fails.
package llm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/msituguard/msituguard/internal/httputil"
	"github.com/msituguard/msituguard/internal/metrics"
)

const (
	defaultModel = "mistral-small"

	explainMaxTokens = 150
	careMaxTokens    = 200
	adjustMaxTokens  = 20

	// Adjustments outside this band are clamped; the advisory signal must
	// never dominate the playbook and classifier.
	AdjustmentMin = -15
	AdjustmentMax = 12
)

// PredictionContext is what the adviser knows about a scored prediction.
type PredictionContext struct {
	Species       string
	County        string
	Season        string
	SurvivalRate  float64
	RiskLevel     string
	Reason        string
	SeasonalBonus float64
	BaseCare      []string
}

type Adviser struct {
	client openai.Client
	model  string
}

// NewAdviser builds the chat client from LLM_API_KEY, LLM_BASE_URL,
// LLM_MODEL, and LLM_TIMEOUT_MS. A missing key is an error; callers run
// with fallbacks only.
func NewAdviser() (*Adviser, error) {
	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		return nil, errors.New("LLM_API_KEY environment variable not set")
	}

	timeout := httputil.DefaultTimeout
	if ms := os.Getenv("LLM_TIMEOUT_MS"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 {
			timeout = time.Duration(v) * time.Millisecond
		}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httputil.NewClientWithTimeout(timeout)),
	}
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = defaultModel
	}

	return &Adviser{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Explain returns a single-paragraph plain-text explanation of the
// prediction, at most 80 words.
func (a *Adviser) Explain(ctx context.Context, pc PredictionContext) (string, error) {
	prompt := fmt.Sprintf(`You are an expert Kenyan forestry advisor. Generate a clear, simple explanation for this tree planting prediction:

Species: %s
Location: %s County, Kenya
Planting Season: %s
Survival Rate: %.1f%%
Risk Level: %s

Base reason: %s

Instructions:
- Explain WHY this species works well (or doesn't) in this location and season
- Use simple, practical language that farmers understand
- Focus on environmental factors (rainfall, soil, temperature)
- Keep it under 80 words
- Don't mention percentages, technical terms, or word counts
- Be encouraging but honest
- Don't use markdown formatting or quotes
- Write in plain text only`,
		pc.Species, pc.County, pc.Season, pc.SurvivalRate, pc.RiskLevel, pc.Reason)

	raw, err := a.complete(ctx, "explain", prompt, explainMaxTokens)
	if err != nil {
		return "", err
	}

	text := SanitizeText(raw)
	if text == "" {
		return "", errors.New("empty explanation after sanitizing")
	}
	return text, nil
}

// CareSteps returns 4-6 sanitized care steps adapted to the risk level, or
// an error when the response cannot yield that many complete steps.
func (a *Adviser) CareSteps(ctx context.Context, pc PredictionContext) ([]string, error) {
	baseCare := "Standard tree care"
	if len(pc.BaseCare) > 0 {
		baseCare = strings.Join(pc.BaseCare, "; ")
	}

	prompt := fmt.Sprintf(`You are an expert Kenyan forestry advisor. Generate personalized care instructions for this tree planting:

Species: %s
Location: %s County, Kenya
Planting Season: %s
Survival Rate: %.1f%%
Risk Level: %s

Base care instructions: %s

Instructions:
- Adapt the care instructions for the specific survival rate and risk level
- For high risk emphasize critical care steps, for medium risk add extra precautions
- Use practical, actionable language for Kenyan farming conditions
- Return as a list of 4-6 specific care steps, one per line
- Each step should be one clear, complete sentence under 100 characters
- Don't use markdown formatting, quotes, or numbering
- Write in plain text only`,
		pc.Species, pc.County, pc.Season, pc.SurvivalRate, pc.RiskLevel, baseCare)

	raw, err := a.complete(ctx, "care_steps", prompt, careMaxTokens)
	if err != nil {
		return nil, err
	}

	steps := SanitizeCareSteps(raw)
	if len(steps) < 4 {
		return nil, fmt.Errorf("only %d usable care steps in response", len(steps))
	}
	return steps, nil
}

// ScoreAdjustment asks for a numeric tweak to the fused score, clamped to
// [AdjustmentMin, AdjustmentMax].
func (a *Adviser) ScoreAdjustment(ctx context.Context, pc PredictionContext) (float64, error) {
	prompt := fmt.Sprintf(`You are an expert Kenyan forestry advisor. A survival prediction was computed for planting %s in %s County during %s, currently scored %.1f%% with seasonal effect %+.0f.

Reply with a single number between %d and %d: the adjustment you would apply to the score based on how well this species suits this county and season. Reply with the number only, no words.`,
		pc.Species, pc.County, pc.Season, pc.SurvivalRate, pc.SeasonalBonus, AdjustmentMin, AdjustmentMax)

	raw, err := a.complete(ctx, "score_adjustment", prompt, adjustMaxTokens)
	if err != nil {
		return 0, err
	}

	adj, err := strconv.ParseFloat(strings.TrimSpace(SanitizeText(raw)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse adjustment %q: %w", raw, err)
	}
	return ClampAdjustment(adj), nil
}

func ClampAdjustment(adj float64) float64 {
	if adj < AdjustmentMin {
		return AdjustmentMin
	}
	if adj > AdjustmentMax {
		return AdjustmentMax
	}
	return adj
}

// complete runs one chat completion, retrying once on rate limiting.
func (a *Adviser) complete(ctx context.Context, op, prompt string, maxTokens int64) (string, error) {
	var content string
	operation := func() error {
		resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model:       openai.ChatModel(a.model),
			MaxTokens:   openai.Int(maxTokens),
			Temperature: openai.Float(0.3),
		})
		if err != nil {
			var apierr *openai.Error
			if errors.As(err, &apierr) && apierr.StatusCode == 429 {
				return fmt.Errorf("rate limited: %w", err)
			}
			return backoff.Permanent(fmt.Errorf("chat completion: %w", err))
		}
		if len(resp.Choices) == 0 {
			return backoff.Permanent(errors.New("no choices returned"))
		}
		content = resp.Choices[0].Message.Content
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = 500 * time.Millisecond
	if err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, 1), ctx)); err != nil {
		metrics.LLMCallsTotal.WithLabelValues(op, "error").Inc()
		return "", err
	}
	metrics.LLMCallsTotal.WithLabelValues(op, "success").Inc()
	return content, nil
}
