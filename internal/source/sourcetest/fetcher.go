// Package sourcetest provides an in-memory source.Fetcher for tests.
package sourcetest

import (
	"context"
	"net/http"
	"sync"

	"github.com/kapu/soccer-data-go/pkg/errors"
)

// Fetcher serves canned bodies by URL and counts calls. Unknown URLs fail
// with a 404 UpstreamFetchError.
type Fetcher struct {
	mu     sync.Mutex
	bodies map[string][]byte
	errs   map[string]error
	calls  map[string]int
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		bodies: make(map[string][]byte),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
	}
}

func (f *Fetcher) Serve(url, body string) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[url] = []byte(body)
	delete(f.errs, url)
	return f
}

func (f *Fetcher) Fail(url string, err error) *Fetcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errs[url] = err
	return f
}

func (f *Fetcher) Fetch(ctx context.Context, source, url string) ([]byte, error) {
	f.mu.Lock()
	f.calls[url]++
	body, ok := f.bodies[url]
	err := f.errs[url]
	f.mu.Unlock()

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, errors.NewUpstreamFetchError(source, url, 0, ctxErr)
	}
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewUpstreamFetchError(source, url, http.StatusNotFound, nil)
	}
	return body, nil
}

// Calls returns how often url was fetched.
func (f *Fetcher) Calls(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

// Total returns the number of fetches across all URLs.
func (f *Fetcher) Total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}
