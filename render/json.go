package render

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/param"
)

var jsonConfig = jsoniter.Config{
	IndentionStep: 2,
	EscapeHTML:    false,
}.Froze()

// WriteJSON writes store as a JSON document:
//
//	{
//	  "timeSteps": 2,
//	  "constants": {"name": {"type": "ANARI_FLOAT32", "value": [1]}},
//	  "timeStepData": [
//	    {"index": 0, "params": {"p": {"arrayElementType": "ANARI_UINT8", "elementCount": 2, "data": [[1], [2]]}}}
//	  ]
//	}
//
// Parameters keep their insertion order. Non-finite floats are written as strings.
func (r *Renderer) WriteJSON(w io.Writer, store *param.Store) error {
	stream := jsoniter.NewStream(jsonConfig, w, 4096)

	stream.WriteObjectStart()
	stream.WriteObjectField("timeSteps")
	stream.WriteUint32(store.TimeStepCount())
	stream.WriteMore()

	stream.WriteObjectField("constants")
	r.writeScope(stream, store.Constants())
	stream.WriteMore()

	stream.WriteObjectField("timeStepData")
	stream.WriteArrayStart()
	for i, scope := range store.TimeSteps() {
		if i > 0 {
			stream.WriteMore()
		}
		stream.WriteObjectStart()
		stream.WriteObjectField("index")
		stream.WriteUint32(i)
		stream.WriteMore()
		stream.WriteObjectField("params")
		r.writeScope(stream, scope)
		stream.WriteObjectEnd()
	}
	stream.WriteArrayEnd()
	stream.WriteObjectEnd()
	stream.WriteRaw("\n")

	if err := stream.Flush(); err != nil {
		return fmt.Errorf("%w: write json: %w", errs.ErrIO, err)
	}
	if stream.Error != nil {
		return fmt.Errorf("%w: write json: %w", errs.ErrIO, stream.Error)
	}

	return nil
}

func (r *Renderer) writeScope(stream *jsoniter.Stream, scope *param.Scope) {
	if scope.Len() == 0 {
		stream.WriteEmptyObject()
		return
	}

	stream.WriteObjectStart()
	first := true
	for name, v := range scope.All() {
		if !first {
			stream.WriteMore()
		}
		first = false

		stream.WriteObjectField(name)
		r.writeParam(stream, v)
	}
	stream.WriteObjectEnd()
}

func (r *Renderer) writeParam(stream *jsoniter.Stream, v param.Value) {
	stream.WriteObjectStart()

	if !v.IsArray() {
		stream.WriteObjectField("type")
		stream.WriteString(r.TypeName(v.Type()))
		stream.WriteMore()
		stream.WriteObjectField("value")
		writeTokens(stream, r.Scalars(v.Type(), v.Bytes()))
		stream.WriteObjectEnd()

		return
	}

	stream.WriteObjectField("arrayElementType")
	stream.WriteString(r.TypeName(v.Type()))
	stream.WriteMore()
	stream.WriteObjectField("elementCount")
	stream.WriteUint64(v.ElementCount())
	stream.WriteMore()
	stream.WriteObjectField("data")
	groups := r.Elements(v.Type(), v.ElementCount(), v.Bytes())
	if len(groups) == 0 {
		stream.WriteEmptyArray()
	} else {
		stream.WriteArrayStart()
		for i, group := range groups {
			if i > 0 {
				stream.WriteMore()
			}
			writeTokens(stream, group)
		}
		stream.WriteArrayEnd()
	}
	stream.WriteObjectEnd()
}

// writeTokens writes a flat array on one line.
func writeTokens(stream *jsoniter.Stream, tokens []Token) {
	stream.WriteRaw("[")
	for i, tok := range tokens {
		if i > 0 {
			stream.WriteRaw(", ")
		}
		if tok.Number {
			stream.WriteRaw(tok.Text)
		} else {
			stream.WriteString(tok.Text)
		}
	}
	stream.WriteRaw("]")
}
