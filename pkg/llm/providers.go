package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/genai"
)

// langchainCompleter drives any langchaingo model (OpenAI, Ollama).
type langchainCompleter struct {
	llm         llms.Model
	maxTokens   int
	temperature float64
}

func newOpenAICompleter(config ChatConfig) (*langchainCompleter, error) {
	if config.APIKey == "" {
		return nil, errors.New("openai provider requires an API key")
	}

	opts := []openai.Option{
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	}
	if config.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(config.BaseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, err
	}

	return &langchainCompleter{
		llm:         llm,
		maxTokens:   config.MaxTokens,
		temperature: *config.Temperature,
	}, nil
}

func newOllamaCompleter(config ChatConfig) (*langchainCompleter, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = "http://localhost:11434" // Default Ollama URL
	}

	llm, err := ollama.New(ollama.WithModel(config.Model),
		ollama.WithServerURL(baseURL))
	if err != nil {
		return nil, err
	}

	return &langchainCompleter{
		llm:         llm,
		maxTokens:   config.MaxTokens,
		temperature: *config.Temperature,
	}, nil
}

func (c *langchainCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := c.llm.GenerateContent(ctx, content,
		llms.WithMaxTokens(c.maxTokens),
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("chat error: %w", err)
	}

	if response == nil || len(response.Choices) == 0 || response.Choices[0] == nil {
		return "", errors.New("no choices returned from model")
	}

	return response.Choices[0].Content, nil
}

type geminiCompleter struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
}

func newGeminiCompleter(ctx context.Context, config ChatConfig) (*geminiCompleter, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini provider requires an API key")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &geminiCompleter{
		client:      client,
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: *config.Temperature,
	}, nil
}

func (c *geminiCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(float32(c.temperature)),
		MaxOutputTokens:   int32(c.maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini api call failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from Gemini API")
	}

	return resp.Text(), nil
}

type anthropicCompleter struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
}

func newAnthropicCompleter(config ChatConfig) (*anthropicCompleter, error) {
	if config.APIKey == "" {
		return nil, errors.New("anthropic provider requires an API key")
	}

	return &anthropicCompleter{
		client:      anthropic.NewClient(option.WithAPIKey(config.APIKey)),
		model:       config.Model,
		maxTokens:   config.MaxTokens,
		temperature: *config.Temperature,
	}, nil
}

func (c *anthropicCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   int64(c.maxTokens),
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: system},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("claude api call failed: %w", err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	return text.String(), nil
}
