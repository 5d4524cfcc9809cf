package validation

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
)

// Mode selects what WriteOutput leaves in the output directory
type Mode string

const (
	// ModeTex writes only the LaTeX source
	ModeTex Mode = "tex"
	// ModePDF compiles in the proxy directory and keeps only the PDF
	ModePDF Mode = "pdf"
	// ModeAll compiles in the output directory and keeps every file
	ModeAll Mode = "all"
)

// OutNameLayout formats the timestamp of default output names
const OutNameLayout = "2006-01-02_15-04-05"

// ParseMode validates an output mode string
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTex, ModePDF, ModeAll:
		return m, nil
	default:
		return "", &Error{Message: fmt.Sprintf("unknown output mode %q (want pdf, tex or all)", s)}
	}
}

// DefaultOutName returns "<template>_<YYYY-MM-DD_HH-MM-SS>"
func DefaultOutName(template string, now time.Time) string {
	return fmt.Sprintf("%s_%s", template, now.Format(OutNameLayout))
}

// OutputRequest describes one resume to write
type OutputRequest struct {
	Body      string
	OutputDir string
	// ProxyDir is the scratch directory for ModePDF. It must be empty; it is
	// removed afterwards only if WriteOutput created it.
	ProxyDir string
	OutName  string
	Mode     Mode
	Compiler string
	Logger   *zap.Logger
}

// OutputResult lists the files WriteOutput produced
type OutputResult struct {
	TexPath string
	PDFPath string
	// Pages is zero when no page counter is installed
	Pages     int
	LogOutput string
}

// WriteOutput writes the filled template and, unless Mode is ModeTex,
// compiles it and places the PDF in OutputDir.
func WriteOutput(ctx context.Context, req OutputRequest) (*OutputResult, error) {
	logger := req.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if req.Mode == "" {
		req.Mode = ModePDF
	}
	if req.OutName == "" {
		return nil, &Error{Message: "output name is required"}
	}
	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to create output directory %s", req.OutputDir), Cause: err}
	}

	buildDir := req.OutputDir
	if req.Mode == ModePDF {
		created, err := prepareProxyDir(req.ProxyDir)
		if err != nil {
			return nil, err
		}
		buildDir = req.ProxyDir
		if created {
			defer func() {
				if err := os.RemoveAll(req.ProxyDir); err != nil {
					logger.Warn("failed to remove proxy directory", zap.String("dir", req.ProxyDir), zap.Error(err))
				}
			}()
		}
	}

	texPath := filepath.Join(buildDir, req.OutName+".tex")
	if err := os.WriteFile(texPath, []byte(req.Body), 0644); err != nil {
		return nil, &Error{Message: fmt.Sprintf("failed to write %s", texPath), Cause: err}
	}
	logger.Debug("wrote LaTeX source", zap.String("path", texPath))

	result := &OutputResult{}
	if req.Mode == ModeTex {
		result.TexPath = texPath
		return result, nil
	}

	pdfPath, logOutput, err := CompileLaTeX(ctx, req.Compiler, texPath)
	result.LogOutput = logOutput
	if err != nil {
		return result, err
	}

	if req.Mode == ModePDF {
		dest := filepath.Join(req.OutputDir, req.OutName+".pdf")
		if err := copyFile(pdfPath, dest); err != nil {
			return result, &Error{Message: "failed to copy PDF to output directory", Cause: err}
		}
		pdfPath = dest
	} else {
		result.TexPath = texPath
	}
	result.PDFPath = pdfPath

	if pages, err := CountPDFPages(ctx, pdfPath); err != nil {
		logger.Debug("page count unavailable", zap.Error(err))
	} else {
		result.Pages = pages
	}

	logger.Info("PDF generated", zap.String("path", pdfPath), zap.Int("pages", result.Pages))
	return result, nil
}

// prepareProxyDir makes sure dir exists and is empty, reporting whether it
// had to be created.
func prepareProxyDir(dir string) (bool, error) {
	if dir == "" {
		return false, &Error{Message: "a proxy directory is required for pdf output"}
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return false, &Error{Message: fmt.Sprintf("failed to create proxy directory %s", dir), Cause: err}
		}
		return true, nil
	}
	if err != nil {
		return false, &Error{Message: fmt.Sprintf("failed to read proxy directory %s", dir), Cause: err}
	}
	if len(entries) != 0 {
		return false, &Error{Message: fmt.Sprintf("proxy directory %s is not empty; files would not be cleaned up", dir)}
	}
	return false, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
