package validation

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

const fakeCompilerScript = `#!/bin/sh
out="."
for arg; do tex="$arg"; done
while [ $# -gt 0 ]; do
  case "$1" in
    -output-directory) out="$2"; shift 2 ;;
    *) shift ;;
  esac
done
echo "This is fakeTeX"
printf '%%PDF-1.4 fake' > "$out/$(basename "$tex" .tex).pdf"
`

const failingCompilerScript = `#!/bin/sh
echo "! Undefined control sequence."
exit 1
`

const silentCompilerScript = `#!/bin/sh
exit 0
`

// writeCompiler installs a shell script standing in for pdflatex.
func writeCompiler(t *testing.T, script string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell compiler stubs need a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "fakelatex")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}
