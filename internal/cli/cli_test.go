package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/compress"
	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/internal/config"
	"github.com/arloliu/agx/render"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func run(t *testing.T, args ...string) result {
	t.Helper()

	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	var stdout, stderr bytes.Buffer
	code := NewApp(cfg, &stdout, &stderr).Run(context.Background(), args)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func writeDemo(t *testing.T, name string, flags ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	args := append([]string{"demo", "--no-color"}, flags...)
	res := run(t, append(args, path)...)
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Contains(t, res.stdout, "wrote "+path)

	return path
}

func TestRunUsage(t *testing.T) {
	res := run(t)
	require.Equal(t, ExitUsage, res.code)
	require.Contains(t, res.stderr, "usage")

	res = run(t, "help")
	require.Equal(t, ExitOK, res.code)
	require.Contains(t, res.stdout, "commands:")

	res = run(t, "frobnicate")
	require.Equal(t, ExitUsage, res.code)
	require.Contains(t, res.stderr, "unknown command")

	res = run(t, "info")
	require.Equal(t, ExitUsage, res.code)
	require.Contains(t, res.stderr, "exactly one file")

	res = run(t, "info", "--log-level", "loud", "x.agxb")
	require.Equal(t, ExitUsage, res.code)
}

func TestDemoFile(t *testing.T) {
	path := writeDemo(t, "anim.agxb")

	d, err := blob.OpenFile(path)
	require.NoError(t, err)
	defer d.Close()

	h := d.Header()
	require.Equal(t, uint32(4), h.TimeStepCount)
	require.Equal(t, uint32(3), h.ConstantParamCount)
	require.Equal(t, "triangle", h.Subtype)
	require.False(t, h.NeedByteSwap)

	store, err := blob.ReadStore(d)
	require.NoError(t, err)
	require.Equal(t, []string{"bbox.min", "bbox.max", "indices"}, store.Constants().Names())
	for _, scope := range store.TimeSteps() {
		require.Equal(t, []string{"positions", "time"}, scope.Names())
	}
}

func TestInfo(t *testing.T) {
	path := writeDemo(t, "anim.agxb")

	res := run(t, "info", "--no-color", path)
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Contains(t, res.stdout, "AGXB header information")
	require.Contains(t, res.stdout, "0x01020304")
	require.Contains(t, res.stdout, "ANARI_GEOMETRY (507)")
	require.Contains(t, res.stdout, "'triangle'")
	require.Regexp(t, `byte swap needed:\s+no`, res.stdout)
	require.Regexp(t, `timeSteps:\s+4`, res.stdout)
	require.Regexp(t, `constantParamCount:\s+3`, res.stdout)
	require.Regexp(t, `seekable:\s+yes`, res.stdout)
}

func TestInfoOppositeByteOrder(t *testing.T) {
	flag := "--big-endian"
	if !endian.IsNativeLittleEndian() {
		flag = "--little-endian"
	}
	path := writeDemo(t, "foreign.agxb", flag)

	res := run(t, "info", "--no-color", path)
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Regexp(t, `byte swap needed:\s+yes`, res.stdout)
	require.Contains(t, res.stdout, "0x04030201")
	require.Regexp(t, `timeSteps:\s+4`, res.stdout)

	// payloads were packed in the file order, so values render unchanged
	res = run(t, "dump", "--values", "--no-color", path)
	require.Equal(t, ExitOK, res.code, res.stderr)
	require.Contains(t, res.stdout, "(swap=1)")
	require.Contains(t, res.stdout, "[[0], [1], [2], [2], [3], [0]]")
}

func TestDump(t *testing.T) {
	path := writeDemo(t, "anim.agxb")

	res := run(t, "dump", "--values", "--no-color", path)
	require.Equal(t, ExitOK, res.code, res.stderr)

	out := res.stdout
	require.Contains(t, out, "AGXB v1: timeSteps=4 constants=3 (swap=0)")
	require.Contains(t, out, "   Type: 'ANARI_GEOMETRY'")
	require.Contains(t, out, "Subtype: 'triangle'")
	require.Contains(t, out, "CONST: name='bbox.max' isArray=0 type=ANARI_FLOAT32_VEC3 bytes=12")
	require.Contains(t, out, "CONST: name='indices' isArray=1 elemType=ANARI_UINT32 elemCount=6 bytes=24")
	require.Contains(t, out, "[1, 1, 1]")
	require.Contains(t, out, "[[0], [1], [2], [2], [3], [0]]")
	require.Contains(t, out, "Time step 3: 2 params")
	require.Contains(t, out, "STEP : name='positions' isArray=1 elemType=ANARI_FLOAT32_VEC3 elemCount=4 bytes=48")
	require.Contains(t, out, "STEP : name='time' isArray=0 type=ANARI_FLOAT32 bytes=4")
	require.Contains(t, out, "[0.3333333]")
	require.Contains(t, out, "payload xxh64:")
	require.Equal(t, 4, strings.Count(out, "Time step "))
}

func TestDumpCompressedContainers(t *testing.T) {
	plain := run(t, "dump", "--no-color", writeDemo(t, "anim.agxb"))
	require.Equal(t, ExitOK, plain.code, plain.stderr)

	for _, name := range []string{"anim.agxb.zst", "anim.agxb.s2", "anim.agxb.lz4"} {
		t.Run(name, func(t *testing.T) {
			path := writeDemo(t, name)

			res := run(t, "dump", "--no-color", path)
			require.Equal(t, ExitOK, res.code, res.stderr)
			require.Equal(t, plain.stdout, res.stdout)

			res = run(t, "info", "--no-color", path)
			require.Equal(t, ExitOK, res.code, res.stderr)
			require.Regexp(t, `seekable:\s+no`, res.stdout)
		})
	}
}

func TestDumpReadBuffer(t *testing.T) {
	path := writeDemo(t, "anim.agxb")

	plain := run(t, "dump", "--values", "--no-color", path)
	require.Equal(t, ExitOK, plain.code, plain.stderr)

	for _, size := range []string{"1", "64", "1048576"} {
		res := run(t, "dump", "--values", "--no-color", "--read-buffer", size, path)
		require.Equal(t, ExitOK, res.code, res.stderr)
		require.Equal(t, plain.stdout, res.stdout)
	}
}

func TestDumpTruncated(t *testing.T) {
	path := writeDemo(t, "anim.agxb")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)-3], 0o600))

	res := run(t, "dump", "--no-color", path)
	require.Equal(t, ExitDecode, res.code)
	require.Contains(t, res.stderr, "error reading time step 3")
}

func TestOpenFailures(t *testing.T) {
	res := run(t, "info", filepath.Join(t.TempDir(), "missing.agxb"))
	require.Equal(t, ExitOpen, res.code)
	require.Contains(t, res.stderr, "failed to open")

	path := filepath.Join(t.TempDir(), "bad.agxb")
	require.NoError(t, os.WriteFile(path, []byte("NOPE and some more header bytes"), 0o600))
	res = run(t, "info", path)
	require.Equal(t, ExitOpen, res.code)

	res = run(t, "info", "--compression", "rar", path)
	require.Equal(t, ExitOpen, res.code)
}

func TestJSON(t *testing.T) {
	path := writeDemo(t, "anim.agxb")

	res := run(t, "json", path)
	require.Equal(t, ExitOK, res.code, res.stderr)

	var doc struct {
		TimeSteps uint32 `json:"timeSteps"`
		Constants map[string]struct {
			Type  string    `json:"type"`
			Value []float64 `json:"value"`
		} `json:"constants"`
		TimeStepData []struct {
			Index  uint32                    `json:"index"`
			Params map[string]map[string]any `json:"params"`
		} `json:"timeStepData"`
	}
	require.NoError(t, jsoniter.Unmarshal([]byte(res.stdout), &doc))
	require.Equal(t, uint32(4), doc.TimeSteps)
	require.Equal(t, "ANARI_FLOAT32_VEC3", doc.Constants["bbox.max"].Type)
	require.Equal(t, []float64{1, 1, 1}, doc.Constants["bbox.max"].Value)
	require.Len(t, doc.TimeStepData, 4)
	require.Equal(t, uint32(2), doc.TimeStepData[2].Index)
	require.Equal(t, "ANARI_FLOAT32_VEC3", doc.TimeStepData[2].Params["positions"]["arrayElementType"])

	out := filepath.Join(t.TempDir(), "anim.json")
	res = run(t, "json", "-o", out, path)
	require.Equal(t, ExitOK, res.code, res.stderr)
	written, err := os.ReadFile(out)
	require.NoError(t, err)
	require.JSONEq(t, string(written), run(t, "json", path).stdout)
}

func TestJSONCompressedOutput(t *testing.T) {
	path := writeDemo(t, "anim.agxb")
	plain := run(t, "json", path)
	require.Equal(t, ExitOK, plain.code, plain.stderr)

	for _, name := range []string{"anim.json.zst", "anim.json.s2", "anim.json.lz4"} {
		t.Run(name, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), name)
			res := run(t, "json", "-o", out, path)
			require.Equal(t, ExitOK, res.code, res.stderr)

			packed, err := os.ReadFile(out)
			require.NoError(t, err)
			typ := compress.Detect(packed)
			require.Equal(t, compress.ByExtension(name), typ)

			codec, err := compress.GetCodec(typ)
			require.NoError(t, err)
			data, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.JSONEq(t, plain.stdout, string(data))
		})
	}
}

func TestExport(t *testing.T) {
	path := writeDemo(t, "anim.agxb.zst")
	dir := t.TempDir()

	mp := filepath.Join(dir, "anim.msgpack")
	res := run(t, "export", "--format", "msgpack", "-o", mp, path)
	require.Equal(t, ExitOK, res.code, res.stderr)

	data, err := os.ReadFile(mp)
	require.NoError(t, err)
	doc, err := render.ReadMsgpack(data)
	require.NoError(t, err)
	require.Equal(t, "triangle", doc.ObjectSubtype)
	require.Len(t, doc.Params, 3+4*2)

	pq := filepath.Join(dir, "anim.parquet")
	res = run(t, "export", "--format", "parquet", "-o", pq, path)
	require.Equal(t, ExitOK, res.code, res.stderr)

	rows, err := parquet.ReadFile[render.ParamRow](pq)
	require.NoError(t, err)
	require.Len(t, rows, len(doc.Params))
	for i, row := range rows {
		require.Equal(t, doc.Params[i].Name, row.Name)
		require.Equal(t, doc.Params[i].TimeStep, row.TimeStep)
		require.Equal(t, doc.Params[i].Digest, row.Digest)
		require.Equal(t, doc.Params[i].Rendered, row.Rendered)
	}

	res = run(t, "export", "--format", "csv", path)
	require.Equal(t, ExitUsage, res.code)
	require.Contains(t, res.stderr, "unknown export format")
}

func TestDemoErrors(t *testing.T) {
	dir := t.TempDir()

	res := run(t, "demo", "--big-endian", "--little-endian", filepath.Join(dir, "a.agxb"))
	require.Equal(t, ExitUsage, res.code)

	res = run(t, "demo", "--compress", "rar", filepath.Join(dir, "a.agxb"))
	require.Equal(t, ExitUsage, res.code)
	require.Contains(t, res.stderr, "unknown container")

	res = run(t, "demo", filepath.Join(dir, "missing", "a.agxb"))
	require.Equal(t, ExitDecode, res.code)
}

func TestDemoStore(t *testing.T) {
	store, err := demoStore(endian.GetLittleEndianEngine())
	require.NoError(t, err)
	require.True(t, store.IsStrict())

	r := render.NewRenderer(render.WithEngine(endian.GetLittleEndianEngine()))
	v, ok := store.TimeStep(0).Get("positions")
	require.True(t, ok)
	require.Equal(t, "[[0, 0, 0], [1, 0, 1], [1, 1, 0.2955202], [0, 1, 0.9553365]]", r.FormatValue(v))

	v, ok = store.TimeStep(3).Get("time")
	require.True(t, ok)
	require.Equal(t, "[1]", r.FormatValue(v))
}
