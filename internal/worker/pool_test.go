package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPool_runsEverySubmittedTask(t *testing.T) {
	p := NewPool(4)
	var n int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { atomic.AddInt64(&n, 1) })
	}
	p.Stop()
	assert.Equal(t, int64(100), atomic.LoadInt64(&n))
}

func TestPool_atLeastOneWorker(t *testing.T) {
	p := NewPool(0)
	done := false
	p.Submit(func() { done = true })
	p.Stop()
	assert.True(t, done)
}
