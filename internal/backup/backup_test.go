package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_CompressesExistingFiles(t *testing.T) {
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "backups")

	customers := filepath.Join(src, "clientes.json")
	sales := filepath.Join(src, "ventas.json")
	require.NoError(t, os.WriteFile(customers, []byte(`[{"nombre": "Ana"}]`), 0o644))
	require.NoError(t, os.WriteFile(sales, []byte(`[]`), 0o644))
	missing := filepath.Join(src, "pagos.json")

	written, err := Run(context.Background(), []string{customers, sales, missing}, dest)
	require.NoError(t, err)
	require.Len(t, written, 2)
	assert.Equal(t, filepath.Join(dest, "clientes.json.gz"), written[0])
	assert.Equal(t, filepath.Join(dest, "ventas.json.gz"), written[1])

	// The archive must decompress back to the original bytes.
	f, err := os.Open(written[0])
	require.NoError(t, err)
	defer f.Close()
	zr, err := pgzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.Equal(t, `[{"nombre": "Ana"}]`, string(data))
}

func TestRun_AllSourcesMissing(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "backups")

	written, err := Run(context.Background(), []string{"/nonexistent/a.json"}, dest)
	require.NoError(t, err)
	assert.Empty(t, written)

	// The destination directory is still created.
	info, err := os.Stat(dest)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
