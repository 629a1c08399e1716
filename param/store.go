// Package param holds the in-memory parameter model written by the encoder.
//
// A Store has one constants Scope plus an ordered list of time step Scopes. Callers
// fill it through the Set* mutators, then hand it to blob.NewEncoder, which reads it
// once. Mutators copy the caller's bytes; the store never aliases caller memory.
//
// Mutators are permissive by default: an empty name or a nil store makes them a
// no-op, and a time step index outside [0, TimeStepCount()) is clamped to the last
// valid index. A store created WithStrictTimeSteps rejects such writes instead; the
// Try* variants report the rejection as errs.ErrTimeStepOutOfRange.
//
// A Store is not safe for concurrent use.
package param

import (
	"fmt"
	"iter"

	"github.com/arloliu/agx/errs"
	"github.com/arloliu/agx/format"
	"github.com/arloliu/agx/internal/options"
)

// Store is the writer-side collection of constant and per-time-step parameters.
type Store struct {
	registry   format.Registry
	strict     bool
	objectType format.TypeID
	subtype    string
	constants  *Scope
	steps      []*Scope
}

// StoreOption configures a Store.
type StoreOption = options.Option[*Store]

// WithRegistry sets the registry used to size values. The default is
// format.DefaultRegistry().
func WithRegistry(registry format.Registry) StoreOption {
	return options.New(func(s *Store) error {
		if registry == nil {
			return errs.ErrNilRegistry
		}
		s.registry = registry

		return nil
	})
}

// WithStrictTimeSteps makes out-of-range time step writes fail instead of being
// clamped to the last valid index.
func WithStrictTimeSteps() StoreOption {
	return options.NoError(func(s *Store) {
		s.strict = true
	})
}

// NewStore creates an empty store with zero time steps.
func NewStore(opts ...StoreOption) (*Store, error) {
	s := &Store{
		registry:   format.DefaultRegistry(),
		objectType: format.TypeUnknown,
		constants:  NewScope(),
	}

	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

// Registry returns the registry used to size values.
func (s *Store) Registry() format.Registry {
	if s == nil {
		return format.DefaultRegistry()
	}

	return s.registry
}

// IsStrict reports whether out-of-range time step writes are rejected.
func (s *Store) IsStrict() bool {
	return s != nil && s.strict
}

// SetObjectType sets the object type recorded in the file header.
func (s *Store) SetObjectType(t format.TypeID) {
	if s == nil {
		return
	}
	s.objectType = t
}

// ObjectType returns the object type recorded in the file header.
func (s *Store) ObjectType() format.TypeID {
	if s == nil {
		return format.TypeUnknown
	}

	return s.objectType
}

// SetObjectSubtype sets the optional subtype string. Empty means unset.
func (s *Store) SetObjectSubtype(subtype string) {
	if s == nil {
		return
	}
	s.subtype = subtype
}

// ObjectSubtype returns the subtype string, or "" when unset.
func (s *Store) ObjectSubtype() string {
	if s == nil {
		return ""
	}

	return s.subtype
}

// SetTimeStepCount resizes the list of time step scopes.
//
// Shrinking drops the scopes above the new bound along with their values. Growing
// appends empty scopes.
func (s *Store) SetTimeStepCount(n uint32) {
	if s == nil {
		return
	}

	count := int(n)
	if count <= len(s.steps) {
		clear(s.steps[count:])
		s.steps = s.steps[:count]

		return
	}

	for len(s.steps) < count {
		s.steps = append(s.steps, NewScope())
	}
}

// TimeStepCount returns the number of time step scopes.
func (s *Store) TimeStepCount() uint32 {
	if s == nil {
		return 0
	}

	return uint32(len(s.steps)) //nolint:gosec
}

// BeginTimeStep marks the start of edits for a time step. It has no effect on the
// stored data.
func (s *Store) BeginTimeStep(uint32) {}

// EndTimeStep marks the end of edits for a time step. It has no effect on the
// stored data.
func (s *Store) EndTimeStep(uint32) {}

// Constants returns the constants scope.
func (s *Store) Constants() *Scope {
	if s == nil {
		return nil
	}

	return s.constants
}

// TimeStep returns the scope of time step i, or nil if i is out of range.
func (s *Store) TimeStep(i uint32) *Scope {
	if s == nil || int(i) >= len(s.steps) {
		return nil
	}

	return s.steps[i]
}

// TimeSteps iterates over the time step scopes in index order.
func (s *Store) TimeSteps() iter.Seq2[uint32, *Scope] {
	return func(yield func(uint32, *Scope) bool) {
		if s == nil {
			return
		}
		for i, scope := range s.steps {
			if !yield(uint32(i), scope) { //nolint:gosec
				return
			}
		}
	}
}

// SetParameter stores a single constant value of typ. value must hold at least
// Registry().Size(typ) bytes; only that many are copied.
func (s *Store) SetParameter(name string, typ format.TypeID, value []byte) {
	if s == nil || name == "" {
		return
	}
	s.constants.Set(name, NewScalar(typ, value, s.registry.Size(typ)))
}

// SetParameterArray stores a constant array of count elements of elemType.
func (s *Store) SetParameterArray(name string, elemType format.TypeID, data []byte, count uint64) {
	if s == nil || name == "" {
		return
	}
	s.constants.Set(name, NewArray(elemType, data, count, s.registry.Size(elemType)))
}

// SetValue stores an already built value as a constant.
func (s *Store) SetValue(name string, v Value) {
	if s == nil || name == "" {
		return
	}
	s.constants.Set(name, v)
}

// SetTimeStepValue stores an already built value in time step i, following the
// same index rules as SetTimeStepParameter.
func (s *Store) SetTimeStepValue(i uint32, name string, v Value) error {
	scope, err := s.stepFor(i, name)
	if err != nil {
		return err
	}
	scope.Set(name, v)

	return nil
}

// SetTimeStepParameter stores a single value in time step i.
func (s *Store) SetTimeStepParameter(i uint32, name string, typ format.TypeID, value []byte) {
	_ = s.TrySetTimeStepParameter(i, name, typ, value)
}

// SetTimeStepParameterArray stores an array in time step i.
func (s *Store) SetTimeStepParameterArray(i uint32, name string, elemType format.TypeID, data []byte, count uint64) {
	_ = s.TrySetTimeStepParameterArray(i, name, elemType, data, count)
}

// TrySetTimeStepParameter is SetTimeStepParameter reporting why a write was dropped.
//
// Returns:
//   - errs.ErrInvalidName for an empty name or nil store
//   - errs.ErrTimeStepOutOfRange when no time step exists, or i is out of range on a
//     strict store
func (s *Store) TrySetTimeStepParameter(i uint32, name string, typ format.TypeID, value []byte) error {
	scope, err := s.stepFor(i, name)
	if err != nil {
		return err
	}
	scope.Set(name, NewScalar(typ, value, s.registry.Size(typ)))

	return nil
}

// TrySetTimeStepParameterArray is SetTimeStepParameterArray reporting why a write
// was dropped. See TrySetTimeStepParameter.
func (s *Store) TrySetTimeStepParameterArray(i uint32, name string, elemType format.TypeID, data []byte, count uint64) error {
	scope, err := s.stepFor(i, name)
	if err != nil {
		return err
	}
	scope.Set(name, NewArray(elemType, data, count, s.registry.Size(elemType)))

	return nil
}

// stepFor resolves the scope a time step write goes to, clamping i unless strict.
func (s *Store) stepFor(i uint32, name string) (*Scope, error) {
	if s == nil || name == "" {
		return nil, errs.ErrInvalidName
	}

	count := len(s.steps)
	if count == 0 {
		return nil, fmt.Errorf("%w: index %d, store has no time steps", errs.ErrTimeStepOutOfRange, i)
	}

	if int(i) >= count {
		if s.strict {
			return nil, fmt.Errorf("%w: index %d, count %d", errs.ErrTimeStepOutOfRange, i, count)
		}
		i = uint32(count - 1) //nolint:gosec
	}

	return s.steps[i], nil
}
