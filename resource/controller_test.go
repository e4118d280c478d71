package resource

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestController_MemoryBudget(t *testing.T) {
	c := NewController(Config{MemoryBudgetBytes: 100})

	// Acquire 50
	ok := c.TryAcquireMemory(50)
	require.True(t, ok)
	assert.Equal(t, int64(50), c.MemoryUsage())

	// Acquire 40
	ok = c.TryAcquireMemory(40)
	require.True(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// TryAcquire 20 (should fail)
	ok = c.TryAcquireMemory(20)
	assert.False(t, ok)
	assert.Equal(t, int64(90), c.MemoryUsage())

	// Release 50, then 20 fits again
	c.ReleaseMemory(50)
	assert.Equal(t, int64(40), c.MemoryUsage())
	assert.True(t, c.TryAcquireMemory(20))
}

func TestController_UnlimitedMemory(t *testing.T) {
	c := NewController(Config{})

	ok := c.TryAcquireMemory(1000)
	require.True(t, ok)
	assert.Equal(t, int64(1000), c.MemoryUsage())

	c.ReleaseMemory(500)
	assert.Equal(t, int64(500), c.MemoryUsage())
}

func TestController_NilIsNoop(t *testing.T) {
	var c *Controller

	assert.True(t, c.TryAcquireMemory(1<<40))
	c.ReleaseMemory(1 << 40)
	assert.Equal(t, int64(0), c.MemoryUsage())
	assert.NoError(t, c.AcquireIO(context.Background(), 1<<20))
}

func TestController_IOLimit(t *testing.T) {
	c := NewController(Config{IOLimitBytesPerSec: 1 << 20})

	// Within burst, no blocking
	require.NoError(t, c.AcquireIO(context.Background(), 1024))

	// Canceled context surfaces when the limiter would block
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.AcquireIO(ctx, 1<<20)
	assert.Error(t, err)
}
