package cli

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/arloliu/agx/blob"
	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/section"
)

func (a *App) runInfo(ctx context.Context, args []string) int {
	fs := a.newFlagSet("info")
	cf := a.bindCommon(fs)

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
	marker := endian.Marker
	if h.NeedByteSwap {
		// the value as the host reads the raw bytes
		marker = bits.ReverseBytes32(marker)
	}

	fmt.Fprintln(a.stdout, "AGXB header information")
	a.field("magic", section.Magic)
	a.field("version", fmt.Sprintf("%d", h.Version))
	a.field("endian marker", fmt.Sprintf("0x%08x", marker))
	a.field("host endianness", endianName(h.HostLittleEndian))
	a.field("file endianness", endianName(h.FileLittleEndian))
	a.field("byte swap needed", yesNo(h.NeedByteSwap))
	a.field("object type", fmt.Sprintf("%s (%d)", h.ObjectType, uint32(h.ObjectType)))
	a.field("subtype", fmt.Sprintf("'%s'", h.Subtype))
	a.field("timeSteps", fmt.Sprintf("%d", h.TimeStepCount))
	a.field("constantParamCount", fmt.Sprintf("%d", h.ConstantParamCount))
	a.field("container", src.Compression.String())
	a.field("seekable", yesNo(d.Seekable()))

	if d.State() == blob.StateError {
		return a.fail(ExitDecode, "%v", d.Err())
	}

	return ExitOK
}

func (a *App) field(name, value string) {
	a.label.Fprintf(a.stdout, "  %-20s", name+":")
	fmt.Fprintf(a.stdout, " %s\n", value)
}

func endianName(little bool) string {
	if little {
		return "little"
	}

	return "big"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}

	return "no"
}

func boolInt(b bool) int {
	if b {
		return 1
	}

	return 0
}
