package cli

import (
	"context"
	"fmt"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/internal/hash"
	"github.com/arloliu/agx/render"
)

type dumper struct {
	app      *App
	renderer *render.Renderer
	values   bool
	digest   *hash.Digester
}

func (a *App) runDump(ctx context.Context, args []string) int {
	fs := a.newFlagSet("dump")
	cf := a.bindCommon(fs)
	values := fs.Bool("values", false, "print the rendered values of every parameter")

	location, ok := a.parse(fs, cf, args)
	if !ok {
		return ExitUsage
	}

	src, d, err := a.open(ctx, cf, location)
	if err != nil {
		return a.fail(ExitOpen, "failed to open %s: %v", location, err)
	}
	defer func() {
		_ = d.Close()
		_ = src.Close()
	}()

	h := d.Header()
	dp := &dumper{
		app:      a,
		renderer: render.NewRenderer(render.WithEngine(h.FileEngine())),
		values:   *values,
		digest:   hash.NewDigester(),
	}

	fmt.Fprintf(a.stdout, "AGXB v%d: timeSteps=%d constants=%d (swap=%d)\n",
		h.Version, h.TimeStepCount, h.ConstantParamCount, boolInt(h.NeedByteSwap))
	fmt.Fprintf(a.stdout, "   Type: '%s'\n", dp.renderer.TypeName(h.ObjectType))
	fmt.Fprintf(a.stdout, "Subtype: '%s'\n", h.Subtype)

	if err := d.ResetConstants(); err != nil {
		return a.fail(ExitDecode, "failed to reset constants: %v", err)
	}

	var view blob.ParamView
	for {
		ok, err := d.NextConstant(&view)
		if err != nil {
			return a.fail(ExitDecode, "error reading constants: %v", err)
		}
		if !ok {
			break
		}
		dp.param("CONST:", &view)
	}

	for {
		step, ok, err := d.BeginNextTimeStep()
		if err != nil {
			return a.fail(ExitDecode, "error reading time step: %v", err)
		}
		if !ok {
			break
		}

		fmt.Fprintf(a.stdout, "Time step %d: %d params\n", step.Index, step.ParamCount)
		for {
			ok, err := d.NextTimeStepParam(&view)
			if err != nil {
				return a.fail(ExitDecode, "error reading time step %d: %v", step.Index, err)
			}
			if !ok {
				break
			}
			dp.param("STEP :", &view)
		}
	}

	a.label.Fprint(a.stdout, "payload xxh64:")
	fmt.Fprintf(a.stdout, " %016x\n", dp.digest.Sum64())

	return ExitOK
}

func (dp *dumper) param(prefix string, v *blob.ParamView) {
	out := dp.app.stdout
	_, _ = dp.digest.Write(v.Data)

	fmt.Fprintf(out, "%s name='%s' isArray=%d ", prefix, v.Name, boolInt(v.IsArray))
	if v.IsArray {
		fmt.Fprintf(out, "elemType=%s elemCount=%d bytes=%d", dp.renderer.TypeName(v.Type), v.ElementCount, len(v.Data))
	} else {
		fmt.Fprintf(out, "type=%s bytes=%d", dp.renderer.TypeName(v.Type), len(v.Data))
	}
	fmt.Fprintf(out, " xxh64=%016x\n", v.Digest())

	if dp.values {
		dp.app.value.Fprintf(out, "       %s\n", dp.renderer.Format(v.Type, v.IsArray, v.ElementCount, v.Data))
	}
}
