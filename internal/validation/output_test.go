package validation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, s := range []string{"pdf", "tex", "all"} {
		mode, err := ParseMode(s)
		require.NoError(t, err)
		assert.Equal(t, Mode(s), mode)
	}

	_, err := ParseMode("docx")
	assert.ErrorContains(t, err, "unknown output mode")
}

func TestDefaultOutName(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "classic_2024-03-09_14-05-07", DefaultOutName("classic", now))
}

func TestWriteOutput_Tex(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")

	result, err := WriteOutput(context.Background(), OutputRequest{
		Body:      `\begin{document}x\end{document}`,
		OutputDir: outDir,
		OutName:   "resume",
		Mode:      ModeTex,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "resume.tex"), result.TexPath)
	assert.Empty(t, result.PDFPath)

	data, err := os.ReadFile(result.TexPath)
	require.NoError(t, err)
	assert.Equal(t, `\begin{document}x\end{document}`, string(data))
}

func TestWriteOutput_PDFUsesCreatedProxyDir(t *testing.T) {
	compiler := writeCompiler(t, fakeCompilerScript)
	root := t.TempDir()
	outDir := filepath.Join(root, "out")
	proxyDir := filepath.Join(root, "proxy")

	result, err := WriteOutput(context.Background(), OutputRequest{
		Body:      "body",
		OutputDir: outDir,
		ProxyDir:  proxyDir,
		OutName:   "resume",
		Mode:      ModePDF,
		Compiler:  compiler,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "resume.pdf"), result.PDFPath)
	assert.FileExists(t, result.PDFPath)
	assert.Empty(t, result.TexPath)

	entries, err := os.ReadDir(outDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the PDF lands in the output directory")
	assert.NoDirExists(t, proxyDir)
}

func TestWriteOutput_PDFKeepsExistingProxyDir(t *testing.T) {
	compiler := writeCompiler(t, fakeCompilerScript)
	root := t.TempDir()
	proxyDir := filepath.Join(root, "proxy")
	require.NoError(t, os.Mkdir(proxyDir, 0755))

	_, err := WriteOutput(context.Background(), OutputRequest{
		Body:      "body",
		OutputDir: filepath.Join(root, "out"),
		ProxyDir:  proxyDir,
		OutName:   "resume",
		Mode:      ModePDF,
		Compiler:  compiler,
	})
	require.NoError(t, err)
	assert.DirExists(t, proxyDir)
}

func TestWriteOutput_NonEmptyProxyDir(t *testing.T) {
	root := t.TempDir()
	proxyDir := filepath.Join(root, "proxy")
	require.NoError(t, os.Mkdir(proxyDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(proxyDir, "leftover.aux"), nil, 0644))

	_, err := WriteOutput(context.Background(), OutputRequest{
		Body:      "body",
		OutputDir: filepath.Join(root, "out"),
		ProxyDir:  proxyDir,
		OutName:   "resume",
		Mode:      ModePDF,
	})
	assert.ErrorContains(t, err, "not empty")
}

func TestWriteOutput_All(t *testing.T) {
	compiler := writeCompiler(t, fakeCompilerScript)
	outDir := filepath.Join(t.TempDir(), "out")

	result, err := WriteOutput(context.Background(), OutputRequest{
		Body:      "body",
		OutputDir: outDir,
		OutName:   "resume",
		Mode:      ModeAll,
		Compiler:  compiler,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "resume.tex"), result.TexPath)
	assert.Equal(t, filepath.Join(outDir, "resume.pdf"), result.PDFPath)
	assert.FileExists(t, result.TexPath)
	assert.FileExists(t, result.PDFPath)
}

func TestWriteOutput_RenderFailure(t *testing.T) {
	compiler := writeCompiler(t, failingCompilerScript)
	root := t.TempDir()
	outDir := filepath.Join(root, "out")
	proxyDir := filepath.Join(root, "proxy")

	result, err := WriteOutput(context.Background(), OutputRequest{
		Body:      "body",
		OutputDir: outDir,
		ProxyDir:  proxyDir,
		OutName:   "resume",
		Mode:      ModePDF,
		Compiler:  compiler,
	})
	var failure *RenderFailure
	require.ErrorAs(t, err, &failure)
	assert.Contains(t, result.LogOutput, "Undefined control sequence")
	assert.NoFileExists(t, filepath.Join(outDir, "resume.pdf"))
	assert.NoDirExists(t, proxyDir)
}

func TestWriteOutput_RequiresOutName(t *testing.T) {
	_, err := WriteOutput(context.Background(), OutputRequest{OutputDir: t.TempDir(), Mode: ModeTex})
	assert.ErrorContains(t, err, "output name")
}
