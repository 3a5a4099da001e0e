package errorutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMulti(t *testing.T) {
	var m Multi
	require.False(t, m.HasError())
	require.Nil(t, m.NonNilError())

	m = append(m, nil, nil)
	require.False(t, m.HasError())
	require.Nil(t, m.NonNilError())

	e1 := errors.New("one")
	e2 := errors.New("two")
	m = append(m, e1, nil, e2)
	require.True(t, m.HasError())

	// First is positional: the head here is one of the leading nils
	require.Nil(t, m.First())

	nn := m.NonNil()
	require.Len(t, nn, 2)
	require.Equal(t, e1, nn.First())

	err := m.NonNilError()
	require.Error(t, err)
	require.Contains(t, err.Error(), "one")
	require.Contains(t, err.Error(), "two")

	// a single non-nil entry comes back as itself
	require.Equal(t, e1, Multi{nil, e1}.NonNilError())
}

func TestString(t *testing.T) {
	const e = String("boom")
	require.EqualError(t, e, "boom")
}
