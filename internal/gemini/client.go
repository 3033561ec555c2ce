package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/mynameisDevendra/KURSnTbOT2/internal/models"
)

var (
	// ErrEmptyResponse means the model returned nothing usable.
	ErrEmptyResponse = errors.New("empty response from gemini")
	// ErrBlocked means the prompt or the answer hit a safety filter.
	ErrBlocked = errors.New("gemini response blocked")
)

// Client wraps the Gemini API client
type Client struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	logger    *zap.Logger
	modelName string
}

// Config for Gemini client
type Config struct {
	APIKey      string
	ModelName   string // Default: "gemini-2.0-flash"
	RelaxSafety bool
}

// NewClient creates a new Gemini client
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	if cfg.ModelName == "" {
		cfg.ModelName = "gemini-2.0-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.ModelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction)},
	}
	model.Tools = []*genai.Tool{ExtractionTool}
	model.ToolConfig = &genai.ToolConfig{
		FunctionCallingConfig: &genai.FunctionCallingConfig{Mode: genai.FunctionCallingAuto},
	}
	if cfg.RelaxSafety {
		model.SafetySettings = relaxedSafety()
	}

	logger.Info("Gemini client initialized",
		zap.String("model", cfg.ModelName),
		zap.Bool("relax_safety", cfg.RelaxSafety))

	return &Client{
		client:    client,
		model:     model,
		logger:    logger,
		modelName: cfg.ModelName,
	}, nil
}

// Close closes the Gemini client
func (c *Client) Close() error {
	return c.client.Close()
}

// Generate sends one prompt in a fresh chat session. The returned call is
// never executed by the SDK; the caller decides what to do with it.
func (c *Client) Generate(ctx context.Context, prompt string) (*models.ModelResponse, error) {
	session := c.model.StartChat()

	resp, err := session.SendMessage(ctx, genai.Text(prompt))
	if err != nil {
		var blocked *genai.BlockedError
		if errors.As(err, &blocked) {
			return nil, fmt.Errorf("%w: %v", ErrBlocked, err)
		}
		return nil, fmt.Errorf("gemini API error: %w", err)
	}

	result, err := ParseResponse(resp)
	if err != nil {
		c.logger.Warn("Unusable Gemini response", zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Gemini responded", zap.Bool("structured_call", result.IsCall()))
	return result, nil
}

// ParseResponse classifies a raw response. A function call anywhere in the
// first candidate wins over text; otherwise all text parts are joined.
func ParseResponse(resp *genai.GenerateContentResponse) (*models.ModelResponse, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, ErrEmptyResponse
	}

	cand := resp.Candidates[0]
	if cand.FinishReason == genai.FinishReasonSafety {
		return nil, ErrBlocked
	}
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return nil, ErrEmptyResponse
	}

	var text strings.Builder
	for _, part := range cand.Content.Parts {
		switch p := part.(type) {
		case genai.FunctionCall:
			if p.Name != models.ExtractionFunctionName {
				return nil, fmt.Errorf("%w: unknown function %q", ErrEmptyResponse, p.Name)
			}
			return &models.ModelResponse{Call: models.ParseExtractionArgs(p.Args)}, nil
		case genai.Text:
			text.WriteString(string(p))
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return nil, ErrEmptyResponse
	}
	return &models.ModelResponse{Text: text.String()}, nil
}

// GetModelInfo returns model information
func (c *Client) GetModelInfo() map[string]interface{} {
	return map[string]interface{}{
		"provider": "gemini",
		"model":    c.modelName,
	}
}
