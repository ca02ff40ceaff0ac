package suggest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel   = "gemini-2.5-flash"
	defaultCount   = 3
	defaultTimeout = 20 * time.Second
)

// contentGenerator is the part of *genai.Models the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiConfig configures GeminiGenerator.
type GeminiConfig struct {
	APIKey  string
	Model   string
	Count   int
	Timeout time.Duration
}

// GeminiGenerator asks a Gemini model for topics using a JSON response schema.
type GeminiGenerator struct {
	models  contentGenerator
	model   string
	count   int
	timeout time.Duration
	logger  *zap.Logger
}

// NewGemini creates a generator backed by the Gemini API.
func NewGemini(ctx context.Context, cfg GeminiConfig, logger *zap.Logger) (*GeminiGenerator, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return newGemini(client.Models, cfg, logger), nil
}

func newGemini(models contentGenerator, cfg GeminiConfig, logger *zap.Logger) *GeminiGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	g := &GeminiGenerator{
		models:  models,
		model:   cfg.Model,
		count:   cfg.Count,
		timeout: cfg.Timeout,
		logger:  logger,
	}
	if g.model == "" {
		g.model = defaultModel
	}
	if g.count <= 0 {
		g.count = defaultCount
	}
	if g.timeout <= 0 {
		g.timeout = defaultTimeout
	}
	return g
}

// Suggest implements Generator. Every failure is logged and yields nil.
func (g *GeminiGenerator) Suggest(ctx context.Context, category string) []Suggestion {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(Prompt(category, g.count)), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	})
	if err != nil {
		g.logger.Warn("suggestion request failed",
			zap.String("model", g.model),
			zap.String("category", category),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return nil
	}
	if resp == nil {
		g.logger.Warn("suggestion response empty", zap.String("model", g.model))
		return nil
	}

	text := resp.Text()
	out := Validate([]byte(text))
	if len(out) == 0 {
		g.logger.Warn("suggestion response had no usable topics",
			zap.String("model", g.model),
			zap.Int("bytes", len(text)))
		return nil
	}
	g.logger.Info("suggestions received",
		zap.String("category", category),
		zap.Int("count", len(out)),
		zap.Duration("elapsed", time.Since(start)))
	return out
}

// Prompt is the instruction sent for a category.
func Prompt(category string, count int) string {
	return fmt.Sprintf("Give me %d interesting debate topics about %s. Each should have two opposing views.", count, category)
}

func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"title": {Type: genai.TypeString},
				"sideA": {Type: genai.TypeString},
				"sideB": {Type: genai.TypeString},
			},
			Required: []string{"title", "sideA", "sideB"},
		},
	}
}
