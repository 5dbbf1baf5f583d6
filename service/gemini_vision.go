package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiDescriber describes images through the Gemini API. Selected by the
// vision_provider config when an OpenAI-compatible endpoint is unavailable.
type GeminiDescriber struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiDescriber(ctx context.Context, apiKey, modelName string) (*GeminiDescriber, error) {
	if apiKey == "" {
		return nil, errors.New("no Gemini API key provided")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	model := client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(describeMaxTokens)
	model.SetTemperature(describeTemperature)
	return &GeminiDescriber{
		client: client,
		model:  model,
	}, nil
}

func (d *GeminiDescriber) Describe(ctx context.Context, filename string, data []byte) (string, error) {
	format := strings.TrimPrefix(filepath.Ext(filename), ".")
	if format == "" {
		format = "png"
	}
	resp, err := d.model.GenerateContent(ctx,
		genai.ImageData(format, data),
		genai.Text(describeInstruction),
	)
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("no description generated")
	}
	content := ""
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			content += string(text)
		}
	}
	return content, nil
}

func (d *GeminiDescriber) Close() error {
	return d.client.Close()
}
