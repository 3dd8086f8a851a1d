package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Vovarama1992/pdf_convert/internal/app"
	"github.com/Vovarama1992/pdf_convert/internal/intake"
	"github.com/Vovarama1992/pdf_convert/internal/ports"
	"github.com/Vovarama1992/pdf_convert/internal/staging"
)

type convertFunc func(ctx context.Context, job ports.Job) (*ports.Artifact, error)

// conversion is a ConversionService method expression, e.g. ports.ConversionService.ToWord.
type conversion func(svc ports.ConversionService, ctx context.Context, job ports.Job) (*ports.Artifact, error)

func conversionCmd(use, short string, args cobra.PositionalArgs, method conversion) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  args,
		RunE: func(cmd *cobra.Command, files []string) error {
			outDir, _ := cmd.Flags().GetString("output")
			logger := newLogger(cmd)
			defer logger.Sync()

			engines, err := app.Build(cmd.Context(), loadConfig(), logger)
			if err != nil {
				return err
			}

			convert := func(ctx context.Context, job ports.Job) (*ports.Artifact, error) {
				return method(engines.Service, ctx, job)
			}
			out, err := run(cmd.Context(), convert, files, outDir)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(
		conversionCmd("word <in.pdf>", "Convert a PDF to .docx", cobra.ExactArgs(1), ports.ConversionService.ToWord),
		conversionCmd("images <in.pdf>", "Render every page to JPEG, zipped", cobra.ExactArgs(1), ports.ConversionService.ToImages),
		conversionCmd("slides <in.pdf>", "Build a .pptx with one OCR'd slide per page", cobra.ExactArgs(1), ports.ConversionService.ToPowerPoint),
		conversionCmd("excel <in.pdf>", "Extract tables into a styled .xlsx", cobra.ExactArgs(1), ports.ConversionService.ToExcel),
		conversionCmd("merge <a.pdf> <b.pdf>...", "Merge PDFs in argument order", cobra.MinimumNArgs(2), ports.ConversionService.Merge),
	)
}

// run stages files in a throwaway workspace, converts them and copies the
// artifact into outDir. It returns the written path.
func run(ctx context.Context, convert convertFunc, files []string, outDir string) (string, error) {
	tmp, err := os.MkdirTemp("", "pdfconv-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmp)

	store, err := staging.NewFSStore(tmp)
	if err != nil {
		return "", err
	}
	ws, err := store.Create()
	if err != nil {
		return "", err
	}

	job := ports.Job{Workspace: ws, OriginalName: filepath.Base(files[0])}
	for i, f := range files {
		if !intake.AllowedFile(f) {
			return "", fmt.Errorf("%s: only PDF files are allowed", f)
		}
		dst := ws.Path(fmt.Sprintf("input-%d.pdf", i+1))
		if err := copyFile(f, dst); err != nil {
			return "", err
		}
		job.Inputs = append(job.Inputs, dst)
	}

	artifact, err := convert(ctx, job)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	out := filepath.Join(outDir, artifact.Name)
	if err := copyFile(artifact.Path, out); err != nil {
		return "", err
	}
	return out, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}
