package blob

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/param"
)

// sampleStore builds the animated triangle used across the tests: one constant and
// four time steps, each with a vertex array and a time value.
func sampleStore(t *testing.T) *param.Store {
	t.Helper()

	store, err := param.NewStore()
	require.NoError(t, err)

	store.SetObjectType(format.TypeGeometry)
	store.SetParameter("bbox.min", format.TypeFloat32Vec3, param.PackFloat32(0, 0, 0))
	store.SetTimeStepCount(4)

	for i := range uint32(4) {
		f := float32(i)
		positions := param.PackFloat32(
			0, 0, f,
			1, 0, f,
			0, 1, f,
			1, 1, f,
		)
		store.SetTimeStepParameterArray(i, "vertex.position", format.TypeFloat32Vec3, positions, 4)
		store.SetTimeStepParameter(i, "time", format.TypeFloat32, param.PackFloat32(f*0.25))
	}

	return store
}

func encodeStore(t *testing.T, store *param.Store, opts ...EncoderOption) []byte {
	t.Helper()

	enc, err := NewEncoder(store, opts...)
	require.NoError(t, err)

	return enc.Bytes()
}

func newDecoder(t *testing.T, data []byte, opts ...DecoderOption) *Decoder {
	t.Helper()

	d, err := NewDecoder(bytes.NewReader(data), opts...)
	require.NoError(t, err)

	return d
}

// forwardOnly hides the io.Seeker of the wrapped reader.
type forwardOnly struct {
	r io.Reader
}

func (f forwardOnly) Read(p []byte) (int, error) {
	return f.r.Read(p)
}

// walkAll decodes every record and returns the first error.
func walkAll(d *Decoder) error {
	var view ParamView
	for {
		ok, err := d.NextConstant(&view)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}

	for {
		_, ok, err := d.BeginNextTimeStep()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		for {
			ok, err := d.NextTimeStepParam(&view)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
}
