package cli

import (
	"fmt"
	"io"
	"math"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/compress"
	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/param"
)

// demoTimeSteps is the number of frames of the demo animation.
const demoTimeSteps = 4

func (a *App) runDemo(args []string) int {
	fs := a.newFlagSet("demo")
	cf := a.bindCommon(fs)
	container := fs.String("compress", "auto", "container: auto (from the file extension), none, zstd, s2 or lz4")
	bigEndian := fs.Bool("big-endian", false, "write big-endian integers and payloads")
	littleEndian := fs.Bool("little-endian", false, "write little-endian integers and payloads")

	out, ok := a.parse(fs, cf, args)
	if !ok {
		return ExitUsage
	}
	if *bigEndian && *littleEndian {
		return a.fail(ExitUsage, "--big-endian and --little-endian are exclusive")
	}

	engine := endian.NativeEngine()
	switch {
	case *bigEndian:
		engine = endian.GetBigEndianEngine()
	case *littleEndian:
		engine = endian.GetLittleEndianEngine()
	}

	typ := compress.ByExtension(out)
	if *container != "auto" {
		parsed, ok := format.ParseCompressionType(*container)
		if !ok {
			return a.fail(ExitUsage, "unknown container %q", *container)
		}
		typ = parsed
	}

	store, err := demoStore(engine)
	if err != nil {
		return a.fail(ExitDecode, "%v", err)
	}

	enc, err := blob.NewEncoder(store, blob.WithByteOrder(engine), blob.WithEncoderLogger(a.logger))
	if err != nil {
		return a.fail(ExitDecode, "%v", err)
	}

	codec, err := compress.GetCodec(typ)
	if err != nil {
		return a.fail(ExitUsage, "%v", err)
	}

	packed, err := codec.Compress(enc.Bytes())
	if err != nil {
		return a.fail(ExitDecode, "%v", err)
	}

	err = writeFile(out, func(w io.Writer) error {
		_, err := w.Write(packed)
		return err
	})
	if err != nil {
		return a.fail(ExitDecode, "failed to write %s: %v", out, err)
	}

	fmt.Fprintf(a.stdout, "wrote %s (%d bytes, %d stored, container %s)\n", out, enc.Size(), len(packed), typ)

	return ExitOK
}

// demoStore builds an animated quad: a constant bounding box and index buffer, and
// per time step vertex positions and a normalized time value. Payloads are packed
// with engine.
func demoStore(engine endian.EndianEngine) (*param.Store, error) {
	store, err := param.NewStore(param.WithStrictTimeSteps())
	if err != nil {
		return nil, err
	}

	store.SetObjectType(format.TypeGeometry)
	store.SetObjectSubtype("triangle")

	store.SetParameter("bbox.min", format.TypeFloat32Vec3, packFloat32(engine, 0, 0, 0))
	store.SetParameter("bbox.max", format.TypeFloat32Vec3, packFloat32(engine, 1, 1, 1))

	index := []uint32{0, 1, 2, 2, 3, 0}
	store.SetParameterArray("indices", format.TypeUint32, packUint32(engine, index...), uint64(len(index)))

	store.SetTimeStepCount(demoTimeSteps)
	for t := range uint32(demoTimeSteps) {
		store.BeginTimeStep(t)

		phase := 0.5 * float64(t)
		positions := packFloat32(engine,
			0, 0, float32(math.Sin(phase)),
			1, 0, float32(math.Cos(phase)),
			1, 1, float32(math.Sin(phase+0.3)),
			0, 1, float32(math.Cos(phase+0.3)),
		)
		if err := store.TrySetTimeStepParameterArray(t, "positions", format.TypeFloat32Vec3, positions, 4); err != nil {
			return nil, err
		}

		timeValue := float32(t) / float32(demoTimeSteps-1)
		if err := store.TrySetTimeStepParameter(t, "time", format.TypeFloat32, packFloat32(engine, timeValue)); err != nil {
			return nil, err
		}

		store.EndTimeStep(t)
	}

	return store, nil
}

func packFloat32(engine endian.EndianEngine, vals ...float32) []byte {
	buf := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		buf = engine.AppendUint32(buf, math.Float32bits(v))
	}

	return buf
}

func packUint32(engine endian.EndianEngine, vals ...uint32) []byte {
	buf := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		buf = engine.AppendUint32(buf, v)
	}

	return buf
}
