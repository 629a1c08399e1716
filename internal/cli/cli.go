// Package cli implements the agxb command: inspecting, dumping, converting and
// generating AGXB files.
package cli

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/rs/zerolog"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/config"
	"github.com/arloliu/agx/internal/logging"
	"github.com/arloliu/agx/internal/source"
)

// Exit codes.
const (
	ExitOK     = 0
	ExitUsage  = 1
	ExitOpen   = 2
	ExitDecode = 3
)

const usage = `usage: agxb <command> [flags] <file>

commands:
  info     print the file header
  dump     list every constant and time step parameter
  json     print the parameters as JSON
  export   write the parameters as msgpack or parquet
  demo     write a sample animated geometry file

Files may be local paths or s3://bucket/key URLs, optionally stored in a
zstd, s2 or lz4 container.
`

// App runs agxb commands.
type App struct {
	stdout io.Writer
	stderr io.Writer
	cfg    *config.Config
	logger zerolog.Logger
	label  *color.Color
	value  *color.Color
	alert  *color.Color
}

// commonFlags are shared by every command that reads a file.
type commonFlags struct {
	mmap        bool
	compression string
	readBuffer  int
	logLevel    string
	s3Region    string
	s3Endpoint  string
	noColor     bool
}

// Run executes the command in args (without the program name) and returns the exit
// code. Configuration comes from AGXB_* variables, overridden by flags.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, "agxb:", err)
		return ExitUsage
	}

	return NewApp(cfg, stdout, stderr).Run(ctx, args)
}

// NewApp creates an App using cfg.
func NewApp(cfg *config.Config, stdout, stderr io.Writer) *App {
	return &App{
		stdout: stdout,
		stderr: stderr,
		cfg:    cfg,
		logger: zerolog.Nop(),
		label:  color.New(color.FgCyan),
		value:  color.New(color.FgWhite, color.Bold),
		alert:  color.New(color.FgYellow, color.Bold),
	}
}

// Run executes the command in args.
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprint(a.stderr, usage)
		return ExitUsage
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "info":
		return a.runInfo(ctx, rest)
	case "dump":
		return a.runDump(ctx, rest)
	case "json":
		return a.runJSON(ctx, rest)
	case "export":
		return a.runExport(ctx, rest)
	case "demo":
		return a.runDemo(rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.stdout, usage)
		return ExitOK
	default:
		fmt.Fprintf(a.stderr, "agxb: unknown command %q\n\n%s", cmd, usage)
		return ExitUsage
	}
}

func (a *App) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("agxb "+name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)

	return fs
}

func (a *App) bindCommon(fs *flag.FlagSet) *commonFlags {
	cf := &commonFlags{}
	fs.BoolVar(&cf.mmap, "mmap", a.cfg.UseMmap, "memory map local files")
	fs.StringVar(&cf.compression, "compression", a.cfg.Compression, "container: auto, none, zstd, s2 or lz4")
	fs.IntVar(&cf.readBuffer, "read-buffer", a.cfg.ReadBufferSize, "decoder read buffer size in bytes")
	fs.StringVar(&cf.logLevel, "log-level", a.cfg.Logger.Level, "log level")
	fs.StringVar(&cf.s3Region, "s3-region", a.cfg.S3.Region, "AWS region for s3:// files")
	fs.StringVar(&cf.s3Endpoint, "s3-endpoint", a.cfg.S3.Endpoint, "custom S3 endpoint")
	fs.BoolVar(&cf.noColor, "no-color", false, "disable colored output")

	return cf
}

// parse parses args and returns the single positional argument.
func (a *App) parse(fs *flag.FlagSet, cf *commonFlags, args []string) (string, bool) {
	if err := fs.Parse(args); err != nil {
		return "", false
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(a.stderr, "%s: expected exactly one file argument\n", fs.Name())
		return "", false
	}

	if cf != nil {
		if err := a.setup(cf, fs.Name()); err != nil {
			fmt.Fprintf(a.stderr, "%s: %v\n", fs.Name(), err)
			return "", false
		}
	}

	return fs.Arg(0), true
}

func (a *App) setup(cf *commonFlags, command string) error {
	logger, err := logging.New(cf.logLevel, a.cfg.Logger.Human, a.stderr)
	if err != nil {
		return err
	}
	a.logger = logging.WithCommand(logger, command)

	if cf.noColor {
		a.label.DisableColor()
		a.value.DisableColor()
		a.alert.DisableColor()
	}

	return nil
}

func (a *App) compressionType(name string) (format.CompressionType, error) {
	c := config.Config{Compression: name}
	return c.CompressionType()
}

// open opens location and reads its header.
func (a *App) open(ctx context.Context, cf *commonFlags, location string) (*source.Source, *blob.Decoder, error) {
	typ, err := a.compressionType(cf.compression)
	if err != nil {
		return nil, nil, err
	}

	src, err := source.Open(ctx, location,
		source.WithMmap(cf.mmap),
		source.WithCompression(typ),
		source.WithS3(cf.s3Region, cf.s3Endpoint),
		source.WithLogger(a.logger),
	)
	if err != nil {
		return nil, nil, err
	}

	d, err := blob.NewDecoder(src.Reader(),
		blob.WithReadBufferSize(cf.readBuffer),
		blob.WithDecoderLogger(a.logger),
	)
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}

	return src, d, nil
}

func (a *App) fail(code int, format string, args ...any) int {
	fmt.Fprintf(a.stderr, "agxb: "+format+"\n", args...)
	return code
}
