package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"time"
)

const googleEndpoint = "https://translation.googleapis.com/language/translate/v2"

// GoogleProvider speaks the Google Translate v2 REST API
type GoogleProvider struct {
	apiKey string
	client *http.Client
}

// NewGoogleProvider creates a provider with the given API key
func NewGoogleProvider(apiKey string) *GoogleProvider {
	return &GoogleProvider{
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type googleRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type googleResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

// Translate returns the translated string, HTML entities unescaped
func (p *GoogleProvider) Translate(ctx context.Context, text, sourceCode, targetCode string) (string, error) {
	body, err := json.Marshal(googleRequest{
		Q:      text,
		Source: sourceCode,
		Target: targetCode,
		Format: "text",
	})
	if err != nil {
		return "", fmt.Errorf("google: encode request: %w", err)
	}

	url := googleEndpoint + "?key=" + p.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("google: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("google: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("google: unexpected status %d", resp.StatusCode)
	}

	var parsed googleResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("google: decode response: %w", err)
	}

	if len(parsed.Data.Translations) == 0 {
		return "", ErrNoTranslation
	}

	return html.UnescapeString(parsed.Data.Translations[0].TranslatedText), nil
}
