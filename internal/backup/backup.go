// Package backup archives the JSON data files as gzip copies. It operates on
// closed files only and never touches an open ledger; compressing the
// independent files in parallel therefore does not violate the single-writer
// discipline of the stores.
package backup

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Run compresses every existing source file into destDir as <name>.gz and
// returns the archives written. Missing sources are skipped with a log line;
// any write failure aborts the whole run.
func Run(ctx context.Context, sources []string, destDir string) ([]string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create %s", destDir)
	}

	lg := zctx.From(ctx)
	written := make([]string, len(sources))

	g, ctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			dst := filepath.Join(destDir, filepath.Base(src)+".gz")
			ok, err := compress(src, dst)
			if err != nil {
				return err
			}
			if !ok {
				lg.Info("Skipping absent data file", zap.String("file", src))
				return nil
			}
			written[i] = dst
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := written[:0]
	for _, w := range written {
		if w != "" {
			out = append(out, w)
		}
	}
	return out, nil
}

// compress gzips src into dst. ok=false means src did not exist.
func compress(src, dst string) (bool, error) {
	in, err := os.Open(src)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return false, errors.Wrapf(err, "create %s", dst)
	}

	zw := pgzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		zw.Close()
		out.Close()
		return false, errors.Wrapf(err, "compress %s", src)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return false, errors.Wrapf(err, "finish %s", dst)
	}
	if err := out.Close(); err != nil {
		return false, errors.Wrapf(err, "close %s", dst)
	}
	return true, nil
}
