package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPublicURL(t *testing.T) {
	got := buildPublicURL("https://s3.local", "artifacts", "converted/2026-10-18/abc/my report.docx")
	assert.Equal(t, "https://s3.local/artifacts/converted/2026-10-18/abc/my%20report.docx", got)
}
