// Package cache
package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestMemory_GetSet(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(5*time.Minute, zap.NewNop())

	var got string
	assert.False(t, c.Get(ctx, Key("a", "b"), &got))

	c.Set(ctx, Key("a", "b"), "value")
	assert.True(t, c.Get(ctx, Key("a", "b"), &got))
	assert.Equal(t, "value", got)

	// distinct compound keys must not collide
	assert.False(t, c.Get(ctx, Key("a#b"), &got))
}

func TestKey_Injective(t *testing.T) {
	assert.Equal(t, "#a#b", Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("a#b"))
	assert.NotEqual(t, Key("a#b"), Key("a%23b"))
	assert.NotEqual(t, Key("a", ""), Key("a"))
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(5*time.Minute, zap.NewNop())

	now := time.Now()
	c.now = func() time.Time { return now }
	c.Set(ctx, "k", 42)

	var got int
	c.now = func() time.Time { return now.Add(5*time.Minute - time.Millisecond) }
	assert.True(t, c.Get(ctx, "k", &got))
	assert.Equal(t, 42, got)

	c.now = func() time.Time { return now.Add(5 * time.Minute) }
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute, zap.NewNop())
	c.Set(ctx, "k", 1)
	c.Clear(ctx)
	c.Clear(ctx) // idempotent

	var got int
	assert.False(t, c.Get(ctx, "k", &got))
}

func TestNew_InvalidAdapter(t *testing.T) {
	_, err := New(Config{Adapter: Adapter("bolt")})
	assert.NotNil(t, err)
}
