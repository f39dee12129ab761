package ratel

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nts.lol/lol"
)

const nsec = "nsec1vl029mgpspedva04g90vltkh6fvh240zqtv9k0t9af8935ke9laqsnlfe5"

func TestPersistsAcrossOpen(t *testing.T) {
	dir := t.TempDir()
	r, err := New(dir, lol.Error)
	require.NoError(t, err)
	_, ok, err := r.Get()
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, r.Set(nsec))
	require.NoError(t, r.Close())

	r, err = New(dir, lol.Error)
	require.NoError(t, err)
	got, ok, err := r.Get()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, nsec, got)
	require.NoError(t, r.Remove())
	_, ok, err = r.Get()
	require.NoError(t, err)
	require.False(t, ok)
	require.NoError(t, r.Remove())
	require.NoError(t, r.Close())
}

func TestInMemory(t *testing.T) {
	r, err := New("", lol.Error)
	require.NoError(t, err)
	defer r.Close()
	require.Equal(t, "memory", r.Path())
	require.NoError(t, r.Set(nsec))
	got, ok, err := r.Get()
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, nsec, got)
}
