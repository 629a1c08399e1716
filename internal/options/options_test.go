package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type testTarget struct {
	level   int
	name    string
	applied []string
}

func withLevel(level int) Option[*testTarget] {
	return New(func(t *testTarget) error {
		if level < 0 {
			return errors.New("level cannot be negative")
		}
		t.level = level
		t.applied = append(t.applied, "level")

		return nil
	})
}

func withName(name string) Option[*testTarget] {
	return NoError(func(t *testTarget) {
		t.name = name
		t.applied = append(t.applied, "name")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		target := &testTarget{}
		err := Apply(target, withName("a"), withLevel(3), withName("b"))

		require.NoError(t, err)
		require.Equal(t, 3, target.level)
		require.Equal(t, "b", target.name)
		require.Equal(t, []string{"name", "level", "name"}, target.applied)
	})

	t.Run("stops at first error", func(t *testing.T) {
		target := &testTarget{}
		err := Apply(target, withLevel(-1), withName("never"))

		require.EqualError(t, err, "level cannot be negative")
		require.Empty(t, target.name)
	})

	t.Run("skips nil options", func(t *testing.T) {
		target := &testTarget{}
		err := Apply(target, nil, withName("x"))

		require.NoError(t, err)
		require.Equal(t, "x", target.name)
	})

	t.Run("no options", func(t *testing.T) {
		require.NoError(t, Apply(&testTarget{}))
	})
}
