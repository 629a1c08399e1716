package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/arloliu/agx/endian"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/options"
	"github.com/arloliu/agx/param"
)

// Renderer formats payloads. The zero value is not usable; use NewRenderer.
type Renderer struct {
	engine   endian.EndianEngine
	registry format.Registry
}

// RendererOption configures a Renderer.
type RendererOption = options.Option[*Renderer]

// WithEngine decodes payload numbers with engine instead of host byte order.
func WithEngine(engine endian.EndianEngine) RendererOption {
	return options.NoError(func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	})
}

// WithRegistry sets the registry used for type names and element sizes.
func WithRegistry(registry format.Registry) RendererOption {
	return options.NoError(func(r *Renderer) {
		if registry != nil {
			r.registry = registry
		}
	})
}

// NewRenderer creates a renderer decoding host byte order with the default registry.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		engine:   endian.NativeEngine(),
		registry: format.DefaultRegistry(),
	}
	_ = options.Apply(r, opts...)

	return r
}

// layoutRegistry is a Registry that also describes how its types render.
// format.TableRegistry implements it.
type layoutRegistry interface {
	Lookup(t format.TypeID) (format.TypeInfo, bool)
}

// layout returns the render layout of t from the renderer's registry, falling back
// to the default table for registries without layout information.
func (r *Renderer) layout(t format.TypeID) (format.ScalarKind, int) {
	lr, ok := r.registry.(layoutRegistry)
	if !ok {
		return format.Layout(t)
	}

	info, ok := lr.Lookup(t)
	if !ok || info.Kind == format.KindUnknown || info.Components <= 0 {
		return format.KindUnknown, 0
	}

	return info.Kind, info.Components
}

// Token is one rendered scalar. Number reports whether Text is a JSON number.
type Token struct {
	Text   string
	Number bool
}

// TypeName returns the display name of t.
func (r *Renderer) TypeName(t format.TypeID) string {
	return r.registry.Name(t)
}

// Scalars decodes a single value of typ.
//
// Types without a numeric layout, empty payloads and payloads shorter than the
// layout render as raw bytes.
func (r *Renderer) Scalars(typ format.TypeID, data []byte) []Token {
	kind, components := r.layout(typ)
	if components == 0 || len(data) == 0 || len(data) < kind.Size()*components {
		return rawBytes(data)
	}

	tokens := make([]Token, components)
	size := kind.Size()
	for i := range components {
		tokens[i] = r.scalar(kind, data[i*size:(i+1)*size])
	}

	return tokens
}

// Elements decodes an array of count elements of elemType, one token group per
// element. Zero-size element types render no groups.
func (r *Renderer) Elements(elemType format.TypeID, count uint64, data []byte) [][]Token {
	size := r.registry.Size(elemType)
	if size <= 0 || count == 0 {
		return nil
	}

	n := min(count, uint64(len(data)/size)) //nolint:gosec
	groups := make([][]Token, 0, n)
	for e := range n {
		start := int(e) * size //nolint:gosec
		groups = append(groups, r.Scalars(elemType, data[start:start+size]))
	}

	return groups
}

func (r *Renderer) scalar(kind format.ScalarKind, b []byte) Token {
	var text string

	switch kind {
	case format.KindUint8:
		text = strconv.FormatUint(uint64(b[0]), 10)
	case format.KindInt16:
		text = strconv.FormatInt(int64(int16(r.engine.Uint16(b))), 10) //nolint:gosec
	case format.KindUint16:
		text = strconv.FormatUint(uint64(r.engine.Uint16(b)), 10)
	case format.KindInt32:
		text = strconv.FormatInt(int64(int32(r.engine.Uint32(b))), 10) //nolint:gosec
	case format.KindUint32:
		text = strconv.FormatUint(uint64(r.engine.Uint32(b)), 10)
	case format.KindInt64:
		text = strconv.FormatInt(int64(r.engine.Uint64(b)), 10) //nolint:gosec
	case format.KindUint64:
		text = strconv.FormatUint(r.engine.Uint64(b), 10)
	case format.KindFloat32:
		return floatToken(float64(math.Float32frombits(r.engine.Uint32(b))), 32)
	case format.KindFloat64:
		return floatToken(math.Float64frombits(r.engine.Uint64(b)), 64)
	default:
		text = strconv.FormatUint(uint64(b[0]), 10)
	}

	return Token{Text: text, Number: true}
}

// floatToken formats f with 7 significant digits. NaN and infinities are not
// JSON numbers.
func floatToken(f float64, bitSize int) Token {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Token{Text: strconv.FormatFloat(f, 'g', 7, bitSize)}
	}

	return Token{Text: strconv.FormatFloat(f, 'g', 7, bitSize), Number: true}
}

func rawBytes(data []byte) []Token {
	tokens := make([]Token, len(data))
	for i, b := range data {
		tokens[i] = Token{Text: strconv.FormatUint(uint64(b), 10), Number: true}
	}

	return tokens
}

// Format renders a value as text: "[1, 2, 3]" for single values and
// "[[1, 2], [3, 4]]" for arrays.
func (r *Renderer) Format(typ format.TypeID, isArray bool, count uint64, data []byte) string {
	var sb strings.Builder

	if !isArray {
		writeGroup(&sb, r.Scalars(typ, data))
		return sb.String()
	}

	sb.WriteByte('[')
	for i, group := range r.Elements(typ, count, data) {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeGroup(&sb, group)
	}
	sb.WriteByte(']')

	return sb.String()
}

// FormatValue renders v, see Format.
func (r *Renderer) FormatValue(v param.Value) string {
	return r.Format(v.Type(), v.IsArray(), v.ElementCount(), v.Bytes())
}

func writeGroup(sb *strings.Builder, tokens []Token) {
	sb.WriteByte('[')
	for i, tok := range tokens {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(tok.Text)
	}
	sb.WriteByte(']')
}
