package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	baseURL      = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel = "gemini-2.5-flash-preview-04-17"
)

// Client defines the generative text operations used by the application.
type Client interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateFromDocument(ctx context.Context, prompt string, mimeType string, data []byte) (string, error)
}

type geminiClient struct {
	httpClient *resty.Client
	apiKey     string
	model      string
}

// NewClient creates a configured Gemini client.
func NewClient(apiKey, model string) Client {
	if model == "" {
		model = DefaultModel
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second)

	return &geminiClient{httpClient: client, apiKey: apiKey, model: model}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// apiError mirrors the Google API error payload.
type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateText sends a single text prompt and returns the model's reply.
func (c *geminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	return c.generate(ctx, req)
}

// GenerateFromDocument sends a text prompt alongside an inline binary
// document and asks for a JSON reply.
func (c *geminiClient) GenerateFromDocument(ctx context.Context, prompt string, mimeType string, data []byte) (string, error) {
	req := generateRequest{
		Contents: []content{{Parts: []part{
			{Text: prompt},
			{InlineData: &inlineData{
				MimeType: mimeType,
				Data:     base64.StdEncoding.EncodeToString(data),
			}},
		}}},
		GenerationConfig: &generationConfig{ResponseMimeType: "application/json"},
	}
	return c.generate(ctx, req)
}

func (c *geminiClient) generate(ctx context.Context, body generateRequest) (string, error) {
	result := new(generateResponse)
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(body).
		SetResult(result).
		SetError(apiErr).
		Post(fmt.Sprintf("/models/%s:generateContent", c.model))
	if err != nil {
		return "", fmt.Errorf("gemini api call: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error.Message
		code := resp.StatusCode()
		if apiErr.Error.Code != 0 {
			code = apiErr.Error.Code
		}
		return "", fmt.Errorf("gemini api error: code=%d, message=%s", code, message)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	text := ""
	for _, p := range result.Candidates[0].Content.Parts {
		text += p.Text
	}
	return text, nil
}
