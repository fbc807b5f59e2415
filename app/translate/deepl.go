package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	DeepLFreeURL = "https://api-free.deepl.com/v2/translate"
	DeepLProURL  = "https://api.deepl.com/v2/translate"
)

// DeepL calls the DeepL v2 REST API.
type DeepL struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

// NewDeepL picks the free or pro endpoint from the key suffix unless endpoint is set.
func NewDeepL(apiKey, endpoint string, client *http.Client) *DeepL {
	if endpoint == "" {
		endpoint = DeepLProURL
		if strings.HasSuffix(apiKey, ":fx") {
			endpoint = DeepLFreeURL
		}
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &DeepL{apiKey: apiKey, endpoint: endpoint, client: client}
}

type deeplResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
	Message string `json:"message"`
}

func (d *DeepL) Translate(ctx context.Context, text, target, source string) (string, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("target_lang", target)
	if source != "" {
		form.Set("source_lang", source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("deepl: build request: %w", err)
	}
	req.Header.Set("Authorization", "DeepL-Auth-Key "+d.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("deepl: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("deepl: read response: %w", err)
	}

	var parsed deeplResponse
	if err := json.Unmarshal(body, &parsed); err != nil && resp.StatusCode == http.StatusOK {
		return "", fmt.Errorf("deepl: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("deepl: status %d: %s", resp.StatusCode, parsed.Message)
	}
	if len(parsed.Translations) == 0 {
		return "", fmt.Errorf("deepl: empty response")
	}
	if strings.TrimSpace(parsed.Translations[0].Text) == "" {
		return "", fmt.Errorf("deepl: empty translation")
	}
	return parsed.Translations[0].Text, nil
}
