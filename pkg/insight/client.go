package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const systemPrompt = "You are a financial market analyst. Generate a JSON " +
	"object with a \"drivers\" array of market drivers based on recent news. " +
	"Each driver should have: title, description, impact (high/medium/low), " +
	"direction (bullish/bearish/neutral), affectedAssets (array of symbols), " +
	"confidence (0-1), and sources. Do NOT provide financial advice."

// ErrNoAPIKey is returned when neither a per-user nor a configured key is
// available.
var ErrNoAPIKey = errors.New("insight: OpenAI API key not configured")

// Generator produces market drivers from a news context blob.
type Generator struct {
	cfg        *Config
	newClient  func(apiKey string) completionsAPI
	baseClient completionsAPI
}

// completionsAPI is the slice of the OpenAI SDK the generator exercises,
// narrowed so tests can stub completions.
type completionsAPI interface {
	New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error)
}

type sdkCompletions struct {
	client openai.Client
}

func (s sdkCompletions) New(ctx context.Context, params openai.ChatCompletionNewParams) (*openai.ChatCompletion, error) {
	return s.client.Chat.Completions.New(ctx, params)
}

// GeneratorOption configures optional generator behaviour.
type GeneratorOption func(*Generator)

// WithCompletions injects a stub completions backend (primarily for tests).
func WithCompletions(api completionsAPI) GeneratorOption {
	return func(g *Generator) {
		g.baseClient = api
		g.newClient = func(string) completionsAPI { return api }
	}
}

// NewGenerator constructs a Generator around cfg. A nil cfg uses defaults.
func NewGenerator(cfg *Config, opts ...GeneratorOption) *Generator {
	if cfg == nil {
		cfg = Default()
	}
	g := &Generator{cfg: cfg}
	g.newClient = func(apiKey string) completionsAPI {
		clientOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
		if cfg.BaseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Timeout > 0 {
			clientOpts = append(clientOpts, option.WithRequestTimeout(cfg.Timeout))
		}
		return sdkCompletions{client: openai.NewClient(clientOpts...)}
	}
	if cfg.APIKey != "" {
		g.baseClient = g.newClient(cfg.APIKey)
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// GenerateDrivers asks the model for market drivers scoped to timeframe. A
// non-empty userKey takes precedence over the configured key and never
// reuses the shared client.
func (g *Generator) GenerateDrivers(ctx context.Context, newsContext, timeframe, userKey string) ([]MarketDriver, error) {
	client := g.baseClient
	if userKey != "" {
		client = g.newClient(userKey)
	}
	if client == nil {
		return nil, ErrNoAPIKey
	}
	if timeframe == "" {
		timeframe = "week"
	}

	jsonObject := shared.NewResponseFormatJSONObjectParam()
	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Generate market drivers for %s based on this news:\n\n%s", timeframe, newsContext)),
		},
		MaxTokens:   openai.Int(int64(g.cfg.MaxTokens)),
		Temperature: openai.Float(g.cfg.Temperature),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &jsonObject,
		},
	}

	completion, err := client.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("insight: completion: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, errors.New("insight: empty completion")
	}
	return parseDrivers(completion.Choices[0].Message.Content, timeframe)
}

func parseDrivers(content, timeframe string) ([]MarketDriver, error) {
	var payload struct {
		Drivers []MarketDriver `json:"drivers"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("insight: parse response: %w", err)
	}

	now := time.Now().UTC()
	drivers := make([]MarketDriver, 0, len(payload.Drivers))
	for _, driver := range payload.Drivers {
		if strings.TrimSpace(driver.Title) == "" {
			continue
		}
		driver.ID = "driver-" + uuid.NewString()
		if driver.Timeframe == "" {
			driver.Timeframe = timeframe
		}
		driver.CreatedAt = now
		drivers = append(drivers, driver)
	}
	return drivers, nil
}
