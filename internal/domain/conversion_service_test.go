package domain

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap/zaptest"

	"github.com/Vovarama1992/pdf_convert/internal/pdf"
	"github.com/Vovarama1992/pdf_convert/internal/ports"
	"github.com/Vovarama1992/pdf_convert/internal/staging"
	"github.com/Vovarama1992/pdf_convert/internal/tables"
)

type fakeRenderer struct {
	pages []pdf.PDFPage
	err   error
}

func (f fakeRenderer) Convert(context.Context, string) ([]pdf.PDFPage, error) {
	return f.pages, f.err
}

func renderedPages(n int) []pdf.PDFPage {
	pages := make([]pdf.PDFPage, n)
	for i := range pages {
		pages[i] = pdf.PDFPage{
			Number:   i + 1,
			Bytes:    []byte(fmt.Sprintf("jpeg-%d", i+1)),
			FileName: fmt.Sprintf("page_%d.jpg", i+1),
			MimeType: "image/jpeg",
		}
	}
	return pages
}

type fakeMerger struct {
	inputs []string
}

func (f *fakeMerger) Merge(_ context.Context, inputs []string, output string) error {
	f.inputs = inputs
	return os.WriteFile(output, []byte("%PDF-1.7 merged"), 0o644)
}

type fakeWord struct {
	err error
}

func (f fakeWord) Convert(_ context.Context, _, output string) error {
	if f.err != nil {
		return f.err
	}
	return os.WriteFile(output, []byte("PK docx"), 0o644)
}

type fakeOCR struct{}

func (fakeOCR) ExtractPages(_ context.Context, images [][]byte) ([]string, error) {
	out := make([]string, len(images))
	for i, img := range images {
		out[i] = "text of " + string(img)
	}
	return out, nil
}

type fakeTables struct {
	records [][]string
	err     error
}

func (f fakeTables) ToCSV(_ context.Context, _, csvPath string) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	file, err := os.Create(csvPath)
	if err != nil {
		return 0, err
	}
	defer file.Close()
	w := csv.NewWriter(file)
	if err := w.WriteAll(f.records); err != nil {
		return 0, err
	}
	return len(f.records), nil
}

type recordingNotifier struct {
	ops []string
}

func (r *recordingNotifier) Notify(_ context.Context, op string, _ error, _ string) error {
	r.ops = append(r.ops, op)
	return nil
}

type recordingMirror struct {
	published []string
	err       error
}

func (m *recordingMirror) ObjectKey(id, name string) string { return id + "/" + name }
func (m *recordingMirror) Publish(_ context.Context, a *ports.Artifact) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.published = append(m.published, a.Name)
	return "https://s3.local/" + a.Name, nil
}

func newJob(t *testing.T, original string) ports.Job {
	t.Helper()
	store, err := staging.NewFSStore(t.TempDir())
	require.NoError(t, err)
	ws, err := store.Create()
	require.NoError(t, err)

	input := ws.Path("input-1.pdf")
	require.NoError(t, os.WriteFile(input, []byte("%PDF-1.4"), 0o644))
	return ports.Job{Workspace: ws, Inputs: []string{input}, OriginalName: original}
}

func newService(t *testing.T, deps ConversionDeps) ports.ConversionService {
	deps.Logger = zaptest.NewLogger(t)
	return NewConversionService(deps)
}

func TestToWord(t *testing.T) {
	mirror := &recordingMirror{}
	svc := newService(t, ConversionDeps{Word: fakeWord{}, Mirror: mirror})
	job := newJob(t, "Annual Report.pdf")

	a, err := svc.ToWord(context.Background(), job)
	require.NoError(t, err)

	assert.Equal(t, "Annual_Report.docx", a.Name)
	assert.Equal(t, job.Workspace.ID, a.WorkspaceID)
	assert.Equal(t, ctDocx, a.ContentType)
	assert.Positive(t, a.Size)
	assert.Nil(t, a.Body)
	assert.FileExists(t, a.Path)
	assert.Equal(t, []string{"Annual_Report.docx"}, mirror.published)
}

func TestToWord_FailureNotifies(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := newService(t, ConversionDeps{Word: fakeWord{err: errors.New("soffice exit 77")}, Notifier: notifier})

	_, err := svc.ToWord(context.Background(), newJob(t, "a.pdf"))
	assert.ErrorContains(t, err, "soffice exit 77")
	assert.Equal(t, []string{"docx"}, notifier.ops)
}

func TestToImages_ZipHasOneEntryPerPage(t *testing.T) {
	svc := newService(t, ConversionDeps{Pages: fakeRenderer{pages: renderedPages(3)}})
	job := newJob(t, "scan.pdf")

	a, err := svc.ToImages(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, ArchiveName, a.Name)
	assert.Equal(t, ctZip, a.ContentType)

	onDisk, err := os.ReadFile(job.Workspace.Path(ArchiveName))
	require.NoError(t, err)
	assert.Equal(t, a.Body, onDisk)

	zr, err := zip.NewReader(bytes.NewReader(a.Body), int64(len(a.Body)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	for i, f := range zr.File {
		assert.Equal(t, fmt.Sprintf("page_%d.jpg", i+1), f.Name)
		assert.Equal(t, zip.Store, f.Method)
		rc, err := f.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("jpeg-%d", i+1), string(body))
	}
}

func TestToImages_RenderError(t *testing.T) {
	svc := newService(t, ConversionDeps{Pages: fakeRenderer{err: errors.New("no pages generated")}})
	_, err := svc.ToImages(context.Background(), newJob(t, "scan.pdf"))
	assert.ErrorContains(t, err, "jpg conversion")
}

func TestToPowerPoint_SlidePerPage(t *testing.T) {
	svc := newService(t, ConversionDeps{Pages: fakeRenderer{pages: renderedPages(2)}, OCR: fakeOCR{}})

	a, err := svc.ToPowerPoint(context.Background(), newJob(t, "deck.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "deck.pptx", a.Name)

	zr, err := zip.OpenReader(a.Path)
	require.NoError(t, err)
	defer zr.Close()

	var slidesFound []string
	for _, f := range zr.File {
		if f.Name == "ppt/slides/slide1.xml" || f.Name == "ppt/slides/slide2.xml" {
			rc, err := f.Open()
			require.NoError(t, err)
			body, _ := io.ReadAll(rc)
			rc.Close()
			slidesFound = append(slidesFound, string(body))
		}
	}
	require.Len(t, slidesFound, 2)
	joined := slidesFound[0] + slidesFound[1]
	assert.Contains(t, joined, "text of jpeg-1")
	assert.Contains(t, joined, "text of jpeg-2")
}

func TestToExcel(t *testing.T) {
	svc := newService(t, ConversionDeps{Tables: fakeTables{records: [][]string{
		{"Item", "Qty"},
		{"Bolt", "10"},
	}}})
	job := newJob(t, "invoice.pdf")

	a, err := svc.ToExcel(context.Background(), job)
	require.NoError(t, err)
	assert.Equal(t, "invoice.xlsx", a.Name)
	assert.FileExists(t, job.Workspace.Path("invoice.csv"))

	f, err := excelize.OpenFile(a.Path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Data")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Item", "Qty"}, {"Bolt", "10"}}, rows)
}

func TestToExcel_TableErrors(t *testing.T) {
	notifier := &recordingNotifier{}

	svc := newService(t, ConversionDeps{Tables: fakeTables{err: tables.ErrNoTables}, Notifier: notifier})
	_, err := svc.ToExcel(context.Background(), newJob(t, "memo.pdf"))

	var tableErr *ports.TableExtractionError
	require.ErrorAs(t, err, &tableErr)
	assert.ErrorIs(t, err, tables.ErrNoTables)
	assert.Empty(t, notifier.ops)

	svc = newService(t, ConversionDeps{Tables: fakeTables{err: errors.New("xref broken")}, Notifier: notifier})
	_, err = svc.ToExcel(context.Background(), newJob(t, "memo.pdf"))
	require.ErrorAs(t, err, &tableErr)
	assert.Equal(t, []string{"xlsx"}, notifier.ops)
}

func TestMerge(t *testing.T) {
	merger := &fakeMerger{}
	mirror := &recordingMirror{err: errors.New("bucket gone")}
	svc := newService(t, ConversionDeps{Merger: merger, Mirror: mirror})

	job := newJob(t, "")
	second := job.Workspace.Path("input-2.pdf")
	require.NoError(t, os.WriteFile(second, []byte("%PDF-1.4"), 0o644))
	job.Inputs = append(job.Inputs, second)

	a, err := svc.Merge(context.Background(), job)
	require.NoError(t, err, "mirror failures do not fail the conversion")
	assert.Equal(t, MergedName, a.Name)
	assert.Equal(t, ctPDF, a.ContentType)
	assert.Equal(t, job.Inputs, merger.inputs)
}

func TestEmptyJob(t *testing.T) {
	svc := newService(t, ConversionDeps{})
	_, err := svc.Merge(context.Background(), ports.Job{})
	assert.ErrorIs(t, err, ErrEmptyJob)
}

type fakeS3 struct {
	key         string
	body        []byte
	size        int64
	contentType string
}

func (f *fakeS3) PutObject(_ context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	f.key, f.body, f.size, f.contentType = key, b, size, contentType
	return "https://s3.local/artifacts/" + key, nil
}

func TestArtifactMirror(t *testing.T) {
	client := &fakeS3{}
	m := &artifactMirror{client: client, now: func() time.Time {
		return time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC)
	}}

	assert.Equal(t, "converted/2026-03-09/abc/report.docx", m.ObjectKey("abc", "../report.docx"))

	path := t.TempDir() + "/report.docx"
	require.NoError(t, os.WriteFile(path, []byte("docx"), 0o644))

	url, err := m.Publish(context.Background(), &ports.Artifact{
		WorkspaceID: "abc", Name: "report.docx", ContentType: ctDocx, Path: path, Size: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "https://s3.local/artifacts/converted/2026-03-09/abc/report.docx", url)
	assert.Equal(t, "docx", string(client.body))
	assert.EqualValues(t, 4, client.size)

	_, err = m.Publish(context.Background(), &ports.Artifact{WorkspaceID: "abc", Name: ArchiveName, Body: []byte("zip")})
	require.NoError(t, err)
	assert.Equal(t, "zip", string(client.body))
	assert.EqualValues(t, 3, client.size)
}
