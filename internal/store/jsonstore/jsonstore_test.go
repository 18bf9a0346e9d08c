package jsonstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingFile(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", DefaultFileName))

	v, ok, err := s.Get(context.Background(), "surplusItems")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, v)
}

func TestPutGetKeepsOtherEntries(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	s := New(path)

	require.NoError(t, s.Put(ctx, "surplusItems", []byte(`[{"id":"item-1"}]`)))
	require.NoError(t, s.Put(ctx, "theme", []byte(`"neon"`)))

	v, ok, err := s.Get(ctx, "surplusItems")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"item-1"}]`, string(v))

	// a fresh handle on the same file sees the same document
	v, ok, err = New(path).Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `"neon"`, string(v))

	leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	assert.Empty(t, leftovers)
}

func TestPutRejectsInvalidJSON(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), DefaultFileName))
	assert.Error(t, s.Put(context.Background(), "k", []byte("{oops")))
}

func TestCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, _, err := New(path).Get(context.Background(), "surplusItems")
	assert.Error(t, err)
}

func TestNullEntryIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte(`{"surplusItems": null}`), 0o644))

	_, ok, err := New(path).Get(context.Background(), "surplusItems")
	require.NoError(t, err)
	assert.False(t, ok)
}
