package ocr

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/otiai10/gosseract/v2"
	openai "github.com/sashabaranov/go-openai"
)

// ---------------------------------------------------------------------------
// Tesseract
// ---------------------------------------------------------------------------

type TesseractOCR struct {
	languages []string
}

func NewTesseractOCR(languages ...string) *TesseractOCR {
	return &TesseractOCR{languages: languages}
}

func (t *TesseractOCR) Name() string { return "tesseract" }

// ExtractText opens a client per call; gosseract clients are not safe for
// concurrent use.
func (t *TesseractOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if len(t.languages) > 0 {
		if err := client.SetLanguage(t.languages...); err != nil {
			return "", fmt.Errorf("set language: %w", err)
		}
	}
	if err := client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	return client.Text()
}

// ---------------------------------------------------------------------------
// OpenAI vision
// ---------------------------------------------------------------------------

const visionPrompt = "Transcribe all text visible in this page image. Return only the text, preserving line breaks."

type OpenAIVisionOCR struct {
	client *openai.Client
	model  string
}

func NewOpenAIVisionOCR(apiKey, model, baseURL string) *OpenAIVisionOCR {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIVisionOCR{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

func (o *OpenAIVisionOCR) Name() string { return "openai" }

func (o *OpenAIVisionOCR) ExtractText(ctx context.Context, image []byte) (string, error) {
	dataURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: visionPrompt},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL:    dataURL,
							Detail: openai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
	})
	if err != nil {
		log.Printf("[ocr.openai] completion error: %v", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
