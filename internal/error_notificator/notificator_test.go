package error_notificator

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInfra_LogsWithoutWebhook(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	infra := NewInfra(zap.New(core), "")

	require.NoError(t, infra.Notify(context.Background(), "word", errors.New("soffice exit 1"), "report.pdf"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "conversion failed", entry.Message)
	assert.Equal(t, "word", entry.ContextMap()["operation"])
}

func TestInfra_PostsWebhook(t *testing.T) {
	var got alert
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	infra := NewInfra(zap.NewNop(), srv.URL)
	require.NoError(t, infra.Notify(context.Background(), "merge", errors.New("bad xref"), "2 inputs"))

	assert.Equal(t, "merge", got.Operation)
	assert.Equal(t, "bad xref", got.Error)
	assert.Equal(t, "2 inputs", got.Details)
}

func TestInfra_WebhookFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewInfra(zap.NewNop(), srv.URL).Notify(context.Background(), "images", errors.New("x"), "")
	assert.ErrorContains(t, err, "502")
}

type recorder struct {
	calls   int
	details string
}

func (r *recorder) Notify(_ context.Context, _ string, _ error, details string) error {
	r.calls++
	r.details = details
	return nil
}

func TestService_Notify(t *testing.T) {
	rec := &recorder{}
	svc := NewService(rec)

	require.NoError(t, svc.Notify(context.Background(), "word", nil, "ignored"))
	assert.Zero(t, rec.calls)

	require.NoError(t, svc.Notify(context.Background(), "word", errors.New("x"), strings.Repeat("a", 600)))
	assert.Equal(t, 1, rec.calls)
	assert.Len(t, rec.details, maxDetails+3)
}
