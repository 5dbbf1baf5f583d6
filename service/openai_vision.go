package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"path/filepath"

	"github.com/sashabaranov/go-openai"
)

// OpenAIDescriber describes images through an OpenAI-compatible multimodal
// chat endpoint.
type OpenAIDescriber struct {
	client *openai.Client
	model  string
}

func NewOpenAIDescriber(baseURL, apiKey, model string) *OpenAIDescriber {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIDescriber{
		client: client,
		model:  model,
	}
}

func (d *OpenAIDescriber) Describe(ctx context.Context, filename string, data []byte) (string, error) {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "image/png"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(data))

	resp, err := d.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: d.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role: openai.ChatMessageRoleUser,
					MultiContent: []openai.ChatMessagePart{
						{
							Type: openai.ChatMessagePartTypeImageURL,
							ImageURL: &openai.ChatMessageImageURL{
								URL: dataURL,
							},
						},
						{
							Type: openai.ChatMessagePartTypeText,
							Text: describeInstruction,
						},
					},
				},
			},
			MaxTokens:   describeMaxTokens,
			Temperature: describeTemperature,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no description generated")
	}
	return resp.Choices[0].Message.Content, nil
}
