package nb2md

import (
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent conversions when sizing automatically.
	MaxPoolSize = 16
)

// ConverterPool hands out Converters to concurrent workers.
// Converters are created lazily on first acquire.
type ConverterPool struct {
	size    int
	opts    options
	sem     chan *Converter
	mu      sync.Mutex
	created int
}

// NewConverterPool creates a pool with capacity for n Converters, each built
// with opts.
func NewConverterPool(n int, opts ...Option) *ConverterPool {
	return newConverterPool(n, newOptions(opts))
}

func newConverterPool(n int, o options) *ConverterPool {
	if n < MinPoolSize {
		n = MinPoolSize
	}
	return &ConverterPool{
		size: n,
		opts: o,
		sem:  make(chan *Converter, n),
	}
}

// Acquire gets a converter from the pool, creating one if needed.
// Blocks if all converters are in use.
func (p *ConverterPool) Acquire() *Converter {
	select {
	case c := <-p.sem:
		return c
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()
		return newConverter(p.opts)
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a converter to the pool.
func (p *ConverterPool) Release(c *Converter) {
	if c == nil {
		return
	}
	p.sem <- c
}

// Size returns the pool capacity.
func (p *ConverterPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by CLIs.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0)
	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
