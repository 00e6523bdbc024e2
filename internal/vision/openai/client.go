package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"hydration-backend/internal/vision"
)

var apiBaseURL = "https://api.openai.com/v1"

// Client implements vision.Client against the OpenAI files and responses APIs.
type Client struct {
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("OPENAI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type fileResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// UploadImage uploads the image for vision use and returns its opaque reference.
func (c *Client) UploadImage(ctx context.Context, fileName string, r io.Reader) (vision.FileRef, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("purpose", "vision"); err != nil {
		return vision.FileRef{}, err
	}
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return vision.FileRef{}, err
	}
	if _, err := io.Copy(part, r); err != nil {
		return vision.FileRef{}, fmt.Errorf("read image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return vision.FileRef{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBaseURL+"/files", &buf)
	if err != nil {
		return vision.FileRef{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return vision.FileRef{}, fmt.Errorf("openai request timeout: %w", err)
		}
		return vision.FileRef{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return vision.FileRef{}, err
	}

	var parsed fileResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return vision.FileRef{}, fmt.Errorf("openai http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return vision.FileRef{}, fmt.Errorf("openai file response parse: %w", err)
	}
	if parsed.Error != nil {
		return vision.FileRef{}, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= 400 {
		return vision.FileRef{}, fmt.Errorf("openai http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if parsed.ID == "" {
		return vision.FileRef{}, fmt.Errorf("openai file response missing id")
	}
	return vision.FileRef{ID: parsed.ID}, nil
}

type responsesRequest struct {
	Model string          `json:"model"`
	Input []responseInput `json:"input"`
}

type responseInput struct {
	Role    string                `json:"role"`
	Content []responseInputPart   `json:"content"`
}

type responseInputPart struct {
	Type   string `json:"type"`
	Text   string `json:"text,omitempty"`
	FileID string `json:"file_id,omitempty"`
}

type completionEnvelope struct {
	vision.Response
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Complete runs a single-turn completion over a previously uploaded image.
func (c *Client) Complete(ctx context.Context, in vision.Request) (vision.Response, error) {
	reqBody := responsesRequest{
		Model: in.Model,
		Input: []responseInput{
			{
				Role: "user",
				Content: []responseInputPart{
					{Type: "input_text", Text: in.Instruction},
					{Type: "input_image", FileID: in.FileID},
				},
			},
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return vision.Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiBaseURL+"/responses", bytes.NewReader(payload))
	if err != nil {
		return vision.Response{}, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return vision.Response{}, fmt.Errorf("openai request timeout: %w", err)
		}
		return vision.Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return vision.Response{}, err
	}

	var parsed completionEnvelope
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return vision.Response{}, fmt.Errorf("openai http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return vision.Response{}, fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return vision.Response{}, fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if resp.StatusCode >= 400 {
		return vision.Response{}, fmt.Errorf("openai http status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return parsed.Response, nil
}

var _ vision.Client = (*Client)(nil)
