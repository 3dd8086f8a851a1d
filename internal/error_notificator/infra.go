package error_notificator

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type alert struct {
	Operation string    `json:"operation"`
	Error     string    `json:"error"`
	Details   string    `json:"details"`
	At        time.Time `json:"at"`
}

// Infra logs every failure and, when a webhook is configured, posts it as JSON.
type Infra struct {
	logger     *zap.Logger
	webhookURL string
	client     *http.Client
}

func NewInfra(logger *zap.Logger, webhookURL string) *Infra {
	return &Infra{
		logger:     logger,
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (i *Infra) Notify(ctx context.Context, operation string, err error, details string) error {
	i.logger.Error("conversion failed",
		zap.String("operation", operation),
		zap.String("details", details),
		zap.Error(err),
	)
	if i.webhookURL == "" {
		return nil
	}

	body, mErr := json.Marshal(alert{
		Operation: operation,
		Error:     fmt.Sprint(err),
		Details:   details,
		At:        time.Now().UTC(),
	})
	if mErr != nil {
		return mErr
	}

	req, rErr := http.NewRequestWithContext(ctx, http.MethodPost, i.webhookURL, bytes.NewReader(body))
	if rErr != nil {
		return rErr
	}
	req.Header.Set("Content-Type", "application/json")

	resp, sendErr := i.client.Do(req)
	if sendErr != nil {
		log.Printf("[error_notificator] send fail: %v", sendErr)
		return sendErr
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("[error_notificator] webhook status=%d", resp.StatusCode)
		return fmt.Errorf("webhook status %d", resp.StatusCode)
	}
	return nil
}
