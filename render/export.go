package render

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/param"
)

// ConstantStep is the TimeStep of rows that hold constants.
const ConstantStep int64 = -1

// ParamRow is one parameter flattened for tabular export.
type ParamRow struct {
	TimeStep     int64  `parquet:"time_step" msgpack:"timeStep"`
	Name         string `parquet:"name,dict" msgpack:"name"`
	IsArray      bool   `parquet:"is_array" msgpack:"isArray"`
	TypeID       uint32 `parquet:"type_id" msgpack:"typeId"`
	TypeName     string `parquet:"type_name,dict" msgpack:"typeName"`
	ElementCount uint64 `parquet:"element_count" msgpack:"elementCount"`
	ByteLength   uint64 `parquet:"byte_length" msgpack:"byteLength"`
	Digest       uint64 `parquet:"digest" msgpack:"digest"`
	Rendered     string `parquet:"rendered" msgpack:"rendered"`
	Data         []byte `parquet:"data" msgpack:"data"`
}

// Document is the MessagePack export of a store.
type Document struct {
	ObjectType    uint32     `msgpack:"objectType"`
	ObjectSubtype string     `msgpack:"objectSubtype"`
	TimeSteps     uint32     `msgpack:"timeSteps"`
	Params        []ParamRow `msgpack:"params"`
}

// Rows flattens store into rows: constants first, then every time step in order.
func (r *Renderer) Rows(store *param.Store) []ParamRow {
	rows := make([]ParamRow, 0, store.Constants().Len())
	rows = r.appendRows(rows, ConstantStep, store.Constants())
	for i, scope := range store.TimeSteps() {
		rows = r.appendRows(rows, int64(i), scope)
	}

	return rows
}

func (r *Renderer) appendRows(rows []ParamRow, step int64, scope *param.Scope) []ParamRow {
	for name, v := range scope.All() {
		rows = append(rows, ParamRow{
			TimeStep:     step,
			Name:         name,
			IsArray:      v.IsArray(),
			TypeID:       uint32(v.Type()),
			TypeName:     r.TypeName(v.Type()),
			ElementCount: v.ElementCount(),
			ByteLength:   uint64(v.Len()), //nolint:gosec
			Digest:       v.Digest(),
			Rendered:     r.FormatValue(v),
			Data:         v.Bytes(),
		})
	}

	return rows
}

// WriteMsgpack writes store as a MessagePack encoded Document.
func (r *Renderer) WriteMsgpack(w io.Writer, store *param.Store) error {
	doc := Document{
		ObjectType:    uint32(store.ObjectType()),
		ObjectSubtype: store.ObjectSubtype(),
		TimeSteps:     store.TimeStepCount(),
		Params:        r.Rows(store),
	}

	data, err := msgpack.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("msgpack serialization failed: %w", err)
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: write msgpack: %w", errs.ErrIO, err)
	}

	return nil
}

// ReadMsgpack decodes a Document written by WriteMsgpack.
func ReadMsgpack(data []byte) (Document, error) {
	var doc Document
	if err := msgpack.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("msgpack deserialization failed: %w", err)
	}

	return doc, nil
}

// WriteParquet writes the rows of store as a Parquet file.
func (r *Renderer) WriteParquet(w io.Writer, store *param.Store) error {
	if err := parquet.Write(w, r.Rows(store)); err != nil {
		return fmt.Errorf("%w: write parquet: %w", errs.ErrIO, err)
	}

	return nil
}
