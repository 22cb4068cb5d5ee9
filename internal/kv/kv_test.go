package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetMissing(t *testing.T) {
	m := NewMemory()
	v, err := m.Get(context.Background(), "s1", "equipment-checked")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemorySetGet(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "s1", "k", []byte(`{"a":true}`)))
	require.NoError(t, m.Set(ctx, "s2", "k", []byte(`{}`)))

	v, err := m.Get(ctx, "s1", "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":true}`, string(v))

	v, err = m.Get(ctx, "s2", "k")
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(v))
}

func TestMemoryCopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	buf := []byte("abc")
	require.NoError(t, m.Set(ctx, "s", "k", buf))
	buf[0] = 'x'

	v, err := m.Get(ctx, "s", "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(v))
}
