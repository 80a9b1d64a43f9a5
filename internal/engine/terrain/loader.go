package terrain

import (
	"context"
	"fmt"
	"os"
	"sync"
)

// LoadResult is the outcome of one asynchronous heightmap load.
type LoadResult struct {
	Generation uint64
	Source     string
	Heightmap  *Heightmap
	Mesh       *Mesh
	Err        error
}

// Loader decodes images and builds meshes off the caller's goroutine.
// A new request cancels the one in flight: only the most recently requested
// generation is ever returned by Poll or Next.
type Loader struct {
	mapping Mapping

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	results chan LoadResult
	wg      sync.WaitGroup
}

// NewLoader creates a loader that builds meshes with the given mapping.
func NewLoader(mapping Mapping) *Loader {
	return &Loader{
		mapping: mapping,
		results: make(chan LoadResult, 4),
	}
}

// Load starts loading an image file and returns its generation.
func (l *Loader) Load(path string) uint64 {
	return l.start(path, func() ([]byte, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("opening heightmap: %w", err)
		}
		return data, nil
	})
}

// LoadBytes starts decoding an in-memory image and returns its generation.
func (l *Loader) LoadBytes(source string, data []byte) uint64 {
	return l.start(source, func() ([]byte, error) { return data, nil })
}

func (l *Loader) start(source string, read func() ([]byte, error)) uint64 {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	l.cancel = cancel
	l.gen++
	gen := l.gen
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.release(gen, cancel)
		res := l.run(ctx, gen, source, read)
		if ctx.Err() != nil {
			return
		}
		select {
		case l.results <- res:
		case <-ctx.Done():
		}
	}()

	return gen
}

// release cancels a finished worker's context and forgets it if no newer
// load has replaced it.
func (l *Loader) release(gen uint64, cancel context.CancelFunc) {
	cancel()
	l.mu.Lock()
	if l.gen == gen {
		l.cancel = nil
	}
	l.mu.Unlock()
}

func (l *Loader) run(ctx context.Context, gen uint64, source string, read func() ([]byte, error)) LoadResult {
	res := LoadResult{Generation: gen, Source: source}

	data, err := read()
	if err != nil {
		res.Err = err
		return res
	}
	if ctx.Err() != nil {
		res.Err = ctx.Err()
		return res
	}

	hm, err := DecodeBytes(data, source)
	if err != nil {
		res.Err = err
		return res
	}
	if ctx.Err() != nil {
		res.Err = ctx.Err()
		return res
	}

	mesh, err := BuildMesh(hm, l.mapping)
	if err != nil {
		res.Err = &InvalidImageError{Source: source, Err: err}
		return res
	}

	res.Heightmap = hm
	res.Mesh = mesh
	return res
}

// Latest returns the most recently requested generation.
func (l *Loader) Latest() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.gen
}

// Poll returns a finished result without blocking. Results from superseded
// generations are dropped.
func (l *Loader) Poll() (LoadResult, bool) {
	for {
		select {
		case res := <-l.results:
			if res.Generation != l.Latest() {
				continue
			}
			return res, true
		default:
			return LoadResult{}, false
		}
	}
}

// Next blocks until the latest generation finishes or ctx is done.
func (l *Loader) Next(ctx context.Context) (LoadResult, error) {
	for {
		select {
		case res := <-l.results:
			if res.Generation != l.Latest() {
				continue
			}
			return res, nil
		case <-ctx.Done():
			return LoadResult{}, ctx.Err()
		}
	}
}

// Close cancels any in-flight load and waits for workers to exit.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.cancel != nil {
		l.cancel()
	}
	l.mu.Unlock()
	l.wg.Wait()
}
