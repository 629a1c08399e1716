package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/compress"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/param"
	"github.com/arloliu/agx/render"
)

func (a *App) runJSON(ctx context.Context, args []string) int {
	fs := a.newFlagSet("json")
	cf := a.bindCommon(fs)
	out := fs.String("o", "-", "output path, - for stdout")

	location, ok := a.parse(fs, cf, args)
	if !ok {
		return ExitUsage
	}

	return a.convert(ctx, cf, location, *out, func(w io.Writer, r *render.Renderer, store *param.Store) error {
		return r.WriteJSON(w, store)
	})
}

func (a *App) runExport(ctx context.Context, args []string) int {
	fs := a.newFlagSet("export")
	cf := a.bindCommon(fs)
	out := fs.String("o", "-", "output path, - for stdout")
	outFormat := fs.String("format", "msgpack", "output format: msgpack or parquet")

	location, ok := a.parse(fs, cf, args)
	if !ok {
		return ExitUsage
	}

	var write func(io.Writer, *render.Renderer, *param.Store) error
	switch *outFormat {
	case "msgpack":
		write = func(w io.Writer, r *render.Renderer, store *param.Store) error {
			return r.WriteMsgpack(w, store)
		}
	case "parquet":
		write = func(w io.Writer, r *render.Renderer, store *param.Store) error {
			return r.WriteParquet(w, store)
		}
	default:
		return a.fail(ExitUsage, "unknown export format %q", *outFormat)
	}

	return a.convert(ctx, cf, location, *out, write)
}

// convert reads location into a store and writes it to out with write.
func (a *App) convert(ctx context.Context, cf *commonFlags, location, out string,
	write func(io.Writer, *render.Renderer, *param.Store) error,
) int {
	src, d, err := a.open(ctx, cf, location)
	if err != nil {
		return a.fail(ExitOpen, "failed to open %s: %v", location, err)
	}
	defer func() {
		_ = d.Close()
		_ = src.Close()
	}()

	store, err := blob.ReadStore(d)
	if err != nil {
		return a.fail(ExitDecode, "failed to read %s: %v", location, err)
	}

	r := render.NewRenderer(
		render.WithEngine(d.Header().FileEngine()),
		render.WithRegistry(store.Registry()),
	)

	if out == "-" {
		if err := write(a.stdout, r, store); err != nil {
			return a.fail(ExitDecode, "%v", err)
		}

		return ExitOK
	}

	if err := writeFile(out, compressed(out, func(w io.Writer) error { return write(w, r, store) })); err != nil {
		return a.fail(ExitDecode, "%v", err)
	}
	a.logger.Info().Str("output", out).Msg("conversion written")

	return ExitOK
}

// compressed wraps write in the container implied by the extension of path, so that
// "-o anim.json.zst" streams zstd.
func compressed(path string, write func(io.Writer) error) func(io.Writer) error {
	typ := compress.ByExtension(path)
	if typ == format.CompressionNone {
		return write
	}

	return func(w io.Writer) error {
		codec, err := compress.GetCodec(typ)
		if err != nil {
			return err
		}

		cw, err := codec.NewWriter(w)
		if err != nil {
			return err
		}
		if err := write(cw); err != nil {
			_ = cw.Close()
			return err
		}

		return cw.Close()
	}
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		return err
	}

	return bw.Flush()
}
