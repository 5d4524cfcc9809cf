package validation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultCompiler is the LaTeX compiler invoked when none is configured
	DefaultCompiler = "pdflatex"
	// CompilationTimeout is the maximum time to wait for LaTeX compilation
	CompilationTimeout = 60 * time.Second
)

// CompileLaTeX compiles texPath inside its own directory and returns the path
// of the produced PDF. A non-zero exit or a missing PDF is a *RenderFailure.
func CompileLaTeX(ctx context.Context, compiler, texPath string) (pdfPath string, logOutput string, err error) {
	if compiler == "" {
		compiler = DefaultCompiler
	}
	if _, err := exec.LookPath(compiler); err != nil {
		return "", "", &RenderFailure{
			Message: fmt.Sprintf("%s not found in PATH. Please install a LaTeX distribution (e.g., TeX Live, MiKTeX)", compiler),
			Cause:   err,
		}
	}
	if _, err := os.Stat(texPath); err != nil {
		return "", "", &Error{Message: fmt.Sprintf("LaTeX source not found: %s", texPath), Cause: err}
	}

	ctx, cancel := context.WithTimeout(ctx, CompilationTimeout)
	defer cancel()

	workDir := filepath.Dir(texPath)
	texName := filepath.Base(texPath)
	cmd := exec.CommandContext(ctx, compiler,
		"-interaction=nonstopmode", "-synctex=1", "-output-directory", workDir, texName)
	cmd.Dir = workDir

	var output strings.Builder
	cmd.Stdout = &output
	cmd.Stderr = &output
	runErr := cmd.Run()
	logOutput = output.String()

	if runErr != nil {
		message := "compiler exited with an error"
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			message = fmt.Sprintf("compiler exited with status %d", exitErr.ExitCode())
		}
		return "", logOutput, &RenderFailure{Message: message, LogOutput: logOutput, Cause: runErr}
	}

	pdfPath = filepath.Join(workDir, strings.TrimSuffix(texName, ".tex")+".pdf")
	if _, err := os.Stat(pdfPath); err != nil {
		return "", logOutput, &RenderFailure{Message: "PDF was not generated", LogOutput: logOutput, Cause: err}
	}

	return pdfPath, logOutput, nil
}

// LastErrorLine returns the first "!" error line of a LaTeX log, which is
// usually the one worth showing.
func LastErrorLine(logOutput string) string {
	for _, line := range strings.Split(logOutput, "\n") {
		if strings.HasPrefix(line, "!") {
			return strings.TrimSpace(line)
		}
	}
	return ""
}
