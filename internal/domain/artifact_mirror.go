package domain

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Vovarama1992/pdf_convert/internal/ports"
)

type artifactMirror struct {
	client ports.S3Client
	now    func() time.Time
}

func NewArtifactMirror(client ports.S3Client) ports.ArtifactMirror {
	return &artifactMirror{client: client, now: time.Now}
}

// ObjectKey возвращает путь в бакете
func (m *artifactMirror) ObjectKey(workspaceID, name string) string {
	date := m.now().UTC().Format("2006-01-02")
	return fmt.Sprintf("converted/%s/%s/%s", date, workspaceID, filepath.Base(name))
}

func (m *artifactMirror) Publish(ctx context.Context, a *ports.Artifact) (string, error) {
	if a == nil {
		return "", fmt.Errorf("artifact required")
	}

	var (
		body io.Reader
		size int64
	)
	if a.Body != nil {
		body, size = bytes.NewReader(a.Body), int64(len(a.Body))
	} else {
		f, err := os.Open(a.Path)
		if err != nil {
			return "", fmt.Errorf("open artifact: %w", err)
		}
		defer f.Close()
		body, size = f, a.Size
	}

	return m.client.PutObject(ctx, m.ObjectKey(a.WorkspaceID, a.Name), body, size, a.ContentType)
}
