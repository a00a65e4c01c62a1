package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

const systemInstruction = "Voce e a Persona Digital de Luan de Paz, um Engenheiro de Software e RPA. " +
	"Sua stack principal e Go, Python e React. " +
	"Responda sempre em Portugues do Brasil. " +
	"Seja tecnico, porem amigavel e conciso."

const (
	replyNotConfigured = "O assistente ainda nao foi configurado neste servidor."
	replyRateLimited   = "Muitas requisicoes agora. Tente novamente em alguns segundos."
)

type ChatTurn struct {
	Role string // "user" или "model"
	Text string
}

type GeminiClient interface {
	// Generate строит запрос из текущей реплики и истории.
	// Rate-limit обрабатывается внутри: одна повторная попытка после
	// паузы, затем дружелюбный текст вместо ошибки.
	Generate(ctx context.Context, message string, history []ChatTurn) (string, error)
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	retryDelay time.Duration
	httpClient *http.Client
}

func NewGeminiClient(config GeminiConfig) GeminiClient {
	return &geminiClient{
		apiKey:     config.APIKey,
		model:      config.Model,
		baseURL:    config.BaseURL,
		retryDelay: 2 * time.Second,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

func (c *geminiClient) Generate(ctx context.Context, message string, history []ChatTurn) (string, error) {
	if c.apiKey == "" {
		return replyNotConfigured, nil
	}

	payload := c.buildRequest(message, history)

	text, status, err := c.call(ctx, payload)
	if err == nil {
		return text, nil
	}

	// Одна повторная попытка на rate-limit/перегрузку
	if status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable {
		log.Printf("Gemini rate limited (status %d), retrying in %v", status, c.retryDelay)

		select {
		case <-time.After(c.retryDelay):
		case <-ctx.Done():
			return "", ctx.Err()
		}

		text, status, err = c.call(ctx, payload)
		if err == nil {
			return text, nil
		}
		if status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable {
			log.Printf("Gemini retry failed: %v", err)
			return replyRateLimited, nil
		}
	}

	return "", err
}

func (c *geminiClient) buildRequest(message string, history []ChatTurn) *generateRequest {
	req := &generateRequest{
		SystemInstruction: &geminiContent{
			Parts: []geminiPart{{Text: systemInstruction}},
		},
	}
	req.GenerationConfig.Temperature = 0.4
	req.GenerationConfig.MaxOutputTokens = 500

	for _, turn := range history {
		if turn.Text == "" {
			continue
		}
		req.Contents = append(req.Contents, geminiContent{
			Role:  turn.Role,
			Parts: []geminiPart{{Text: turn.Text}},
		})
	}

	req.Contents = append(req.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	return req
}

func (c *geminiClient) call(ctx context.Context, payload *generateRequest) (string, int, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", 0, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return "", resp.StatusCode, fmt.Errorf("Gemini API returned status %d: %s", resp.StatusCode, string(data))
	}

	var result struct {
		Candidates []struct {
			Content struct {
				Parts []geminiPart `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", resp.StatusCode, fmt.Errorf("empty candidates in Gemini response")
	}

	return result.Candidates[0].Content.Parts[0].Text, resp.StatusCode, nil
}
