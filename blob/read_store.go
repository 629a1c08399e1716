package blob

import (
	"fmt"

	"github.com/arloliu/agx/param"
)

// ReadStore decodes the whole stream into a new param.Store.
//
// Values are copied out of the decoder, so the store stays valid after further
// decoding or Close. The store uses the decoder's registry and has the header's
// object type, subtype and time step count. The decoder must be able to return to
// the first constant: a fresh decoder or a seekable source. Records with an empty
// name are dropped.
func ReadStore(d *Decoder) (*param.Store, error) {
	if err := d.ResetConstants(); err != nil {
		return nil, err
	}

	store, err := param.NewStore(param.WithRegistry(d.registry))
	if err != nil {
		return nil, err
	}

	header := d.Header()
	store.SetObjectType(header.ObjectType)
	store.SetObjectSubtype(header.Subtype)
	store.SetTimeStepCount(header.TimeStepCount)

	for view, err := range d.Constants() {
		if err != nil {
			return nil, err
		}
		store.SetValue(view.NameString(), view.Value())
	}

	for step, err := range d.TimeSteps() {
		if err != nil {
			return nil, err
		}

		for view, err := range d.TimeStepParams() {
			if err != nil {
				return nil, err
			}
			if len(view.Name) == 0 {
				continue // stores cannot hold unnamed records
			}
			if err := store.SetTimeStepValue(step.Index, view.NameString(), view.Value()); err != nil {
				return nil, fmt.Errorf("time step %d: %w", step.Index, err)
			}
		}
	}

	return store, nil
}
