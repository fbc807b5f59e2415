package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiModel = "gemini-1.5-flash"

var languageNames = map[string]string{
	"DE": "German",
	"AR": "Arabic",
}

// Gemini asks a Gemini model for a plain translation.
type Gemini struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}
	m := client.GenerativeModel(model)
	m.SetTemperature(0)
	m.SystemInstruction = genai.NewUserContent(genai.Text(
		"You translate e-commerce catalog text. Reply with the translation only, " +
			"keep HTML markup unchanged, add no quotes or commentary."))
	return &Gemini{client: client, model: m}, nil
}

func (g *Gemini) Translate(ctx context.Context, text, target, source string) (string, error) {
	prompt := fmt.Sprintf("Translate into %s:\n\n%s", languageName(target), text)
	if source != "" {
		prompt = fmt.Sprintf("Translate from %s into %s:\n\n%s", languageName(source), languageName(target), text)
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}

	var b strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				b.WriteString(string(t))
			}
		}
		break
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return out, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func languageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return code
}
