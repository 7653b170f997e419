// Package genai is a thin HTTP client for the hosted generative-language
// API. It covers the two calls the assistant needs: multi-turn text
// generation and image generation returning inline data. Responses are
// persisted by the caller, never interpreted here.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"

const maxOutputTokens = 8192

// Message is one prior conversation turn. Role is "user" or "model".
type Message struct {
	Role string
	Text string
}

// ImageData is a generated image as returned inline by image models.
type ImageData struct {
	MIMEType string
	Data     []byte
}

// Client calls the generative-language REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func New(apiKey string) *Client {
	return NewWithBaseURL(apiKey, defaultBaseURL)
}

func NewWithBaseURL(apiKey, baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	MaxOutputTokens    int      `json:"maxOutputTokens,omitempty"`
	ResponseModalities []string `json:"responseModalities,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, modelID string, reqBody generateRequest) (*generateResponse, error) {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, modelID, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting generation: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var out generateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != nil {
			return nil, fmt.Errorf("model %s: %s (status %d)", modelID, out.Error.Message, resp.StatusCode)
		}
		return nil, fmt.Errorf("model %s: unexpected status %d", modelID, resp.StatusCode)
	}
	return &out, nil
}

// SendMessage sends prompt preceded by the prior turn history and returns
// the model's text reply.
func (c *Client) SendMessage(ctx context.Context, modelID, prompt string, history []Message) (string, error) {
	contents := make([]content, 0, len(history)+1)
	for _, m := range history {
		contents = append(contents, content{Role: m.Role, Parts: []part{{Text: m.Text}}})
	}
	contents = append(contents, content{Role: "user", Parts: []part{{Text: prompt}}})

	resp, err := c.generate(ctx, modelID, generateRequest{
		Contents:         contents,
		GenerationConfig: &generationConfig{MaxOutputTokens: maxOutputTokens},
	})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		break
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("model %s: empty response", modelID)
	}
	return sb.String(), nil
}

// GenerateImage asks an image-capable model for a picture. Returns the
// inline image plus any accompanying text; image may be nil when the model
// answered with text only.
func (c *Client) GenerateImage(ctx context.Context, modelID, prompt string) (*ImageData, string, error) {
	resp, err := c.generate(ctx, modelID, generateRequest{
		Contents:         []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: &generationConfig{ResponseModalities: []string{"image", "text"}},
	})
	if err != nil {
		return nil, "", err
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			if p.InlineData != nil {
				raw, err := base64.StdEncoding.DecodeString(p.InlineData.Data)
				if err != nil {
					return nil, "", fmt.Errorf("decoding image data: %w", err)
				}
				return &ImageData{MIMEType: p.InlineData.MIMEType, Data: raw}, text.String(), nil
			}
			text.WriteString(p.Text)
		}
		break
	}
	return nil, text.String(), nil
}
