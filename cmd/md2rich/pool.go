package main

import (
	"runtime"
	"sync"

	md2rich "github.com/richclip/go-md2rich"
)

// Pool sizing constants.
const (
	minPoolSize = 1

	// maxPoolSize caps converter instances: each may hold a browser for
	// diagram rendering (~200MB).
	maxPoolSize = 8

	// cpuDivisor leaves headroom for browser child processes.
	cpuDivisor = 2
)

// resolvePoolSize maps the --workers flag to an effective pool size.
// Zero means auto: half the CPUs, clamped.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		if workers > maxPoolSize {
			return maxPoolSize
		}
		return workers
	}
	n := runtime.NumCPU() / cpuDivisor
	if n < minPoolSize {
		return minPoolSize
	}
	if n > maxPoolSize {
		return maxPoolSize
	}
	return n
}

// converterPool manages converter instances for parallel batch work.
// Converters are created lazily on first acquire.
type converterPool struct {
	size    int
	newConv func() *md2rich.Converter
	sem     chan *md2rich.Converter
	mu      sync.Mutex
	all     []*md2rich.Converter
	created int
	closed  bool
}

// newConverterPool creates a pool producing converters from factory.
func newConverterPool(n int, factory func() *md2rich.Converter) *converterPool {
	if n < 1 {
		n = 1
	}
	return &converterPool{
		size:    n,
		newConv: factory,
		sem:     make(chan *md2rich.Converter, n),
	}
}

// acquire gets a converter, creating one if the pool is not yet full.
// Blocks while all converters are in use.
func (p *converterPool) acquire() *md2rich.Converter {
	select {
	case conv := <-p.sem:
		return conv
	default:
	}

	p.mu.Lock()
	if !p.closed && p.created < p.size {
		p.created++
		conv := p.newConv()
		p.all = append(p.all, conv)
		p.mu.Unlock()
		return conv
	}
	p.mu.Unlock()

	return <-p.sem
}

// release returns a converter to the pool.
func (p *converterPool) release(conv *md2rich.Converter) {
	p.sem <- conv
}

// close shuts down every created converter. Safe to call once all work
// has been released back.
func (p *converterPool) close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	for _, conv := range p.all {
		_ = conv.Close()
	}
}
