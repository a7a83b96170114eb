// Package aiprovider — клиент генеративной модели Gemini.
package aiprovider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// ErrEmptyResponse — модель вернула ответ без текста.
var ErrEmptyResponse = errors.New("empty model response")

// Config параметры подключения к Gemini API.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // пустой — адрес по умолчанию
}

// Client выполняет одиночные запросы GenerateContent.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient создаёт клиент Gemini API.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	const op = "aiprovider.NewClient"

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is not set", op)
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Client{
		client: client,
		model:  cfg.Model,
	}, nil
}

// GenerateText отправляет prompt модели и возвращает текст ответа.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	const op = "aiprovider.GenerateText"

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyResponse)
	}
	return text, nil
}
