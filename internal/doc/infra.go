package doc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// LibreOffice (headless)
// ---------------------------------------------------------------------------

type LibreOfficeConverter struct {
	bin string
}

var sofficeCandidates = []string{
	"/usr/bin/soffice",
	"/usr/bin/libreoffice",
	"/opt/homebrew/bin/soffice",
	"/Applications/LibreOffice.app/Contents/MacOS/soffice",
}

func NewLibreOfficeConverter(bin string) *LibreOfficeConverter {
	if bin == "" {
		bin = "soffice"
		for _, c := range sofficeCandidates {
			if _, err := os.Stat(c); err == nil {
				bin = c
				break
			}
		}
	}
	return &LibreOfficeConverter{bin: bin}
}

func (c *LibreOfficeConverter) Name() string { return "libreoffice" }

func (c *LibreOfficeConverter) ConvertToWord(ctx context.Context, input, output string) error {
	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	outDir, err := filepath.Abs(filepath.Dir(output))
	if err != nil {
		return err
	}

	// private profile dir so parallel soffice processes do not fight over the lock
	profile, err := os.MkdirTemp(outDir, "soffice-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(profile)

	args := []string{
		"-env:UserInstallation=file://" + filepath.ToSlash(profile),
		"--headless",
		"--infilter=writer_pdf_import",
		"--convert-to", "docx:MS Word 2007 XML",
		"--outdir", outDir,
		absIn,
	}

	cmd := exec.CommandContext(ctx, c.bin, args...)
	log.Printf("[doc.soffice] converting %s", filepath.Base(absIn))
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("soffice: %w, output: %s", err, string(out))
	}

	// soffice names the result after the input file
	produced := filepath.Join(outDir, strings.TrimSuffix(filepath.Base(absIn), filepath.Ext(absIn))+".docx")
	if produced == output {
		return nil
	}
	if err := os.Rename(produced, output); err != nil {
		return fmt.Errorf("soffice output: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Remote pdf2docx service
// ---------------------------------------------------------------------------

type RemoteDocConverter struct {
	URL    string
	client *http.Client
}

func NewRemoteDocConverter(url string) *RemoteDocConverter {
	return &RemoteDocConverter{
		URL:    url,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (c *RemoteDocConverter) Name() string { return "remote" }

func (c *RemoteDocConverter) ConvertToWord(ctx context.Context, input, output string) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}

	log.Printf("[doc.remote] sending %d bytes to %s", len(data), c.URL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/pdf")
	req.Header.Set("Accept", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("doc service error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		log.Printf("[doc.remote] bad status %d: %s", resp.StatusCode, string(body))
		return fmt.Errorf("doc service bad status %d", resp.StatusCode)
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	n, err := io.Copy(f, resp.Body)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("write docx: %w", err)
	}

	log.Printf("[doc.remote] received %d bytes", n)
	return nil
}
