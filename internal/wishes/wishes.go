// Package wishes serves the static wishes page, either the copy embedded
// into the binary or an HTML file on disk that is reloaded when it changes.
package wishes

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/woozymasta/hello-app/internal/reloader"
	"github.com/woozymasta/hello-app/static"
)

const embeddedName = "wishes.html"

type content struct {
	modTime time.Time
	data    []byte
}

// Page holds the current wishes document. It is safe for concurrent use.
type Page struct {
	current atomic.Pointer[content]
	path    string
}

// Embedded returns a page serving the document compiled into the binary.
func Embedded() *Page {
	p := &Page{}
	p.current.Store(&content{data: static.WishesHTML, modTime: startTime})
	return p
}

// Open reads the page from path. A missing or unreadable file is an error.
func Open(path string) (*Page, error) {
	if path == "" {
		return nil, errors.New("wishes: empty path")
	}

	p := &Page{path: path}
	if err := p.Reload(context.Background()); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the page file. On failure the previous content stays.
// For an embedded page it is a no-op.
func (p *Page) Reload(_ context.Context) error {
	if p.path == "" {
		return nil
	}

	info, err := os.Stat(p.path)
	if err != nil {
		return fmt.Errorf("wishes: stat %q: %w", p.path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("wishes: %s is a directory, expected file", p.path)
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return fmt.Errorf("wishes: read %q: %w", p.path, err)
	}

	p.current.Store(&content{data: data, modTime: info.ModTime()})
	return nil
}

// Bytes returns the current document.
func (p *Page) Bytes() []byte {
	return p.current.Load().data
}

// Path returns the file the page is read from, or "" for the embedded page.
func (p *Page) Path() string {
	return p.path
}

// Watch polls the page file every interval and reloads it on change.
// Changes made after Open are picked up on the first tick. It blocks until
// ctx is canceled. For an embedded page it returns at once.
//
// Edits should replace the file atomically (write a temp file, then
// rename). An in-place write can be observed half-done, and the truncated
// page is served until the next tick.
func (p *Page) Watch(ctx context.Context, interval time.Duration) error {
	if p.path == "" {
		return nil
	}

	r, err := reloader.New(p.path, interval, p.Reload)
	if err != nil {
		return fmt.Errorf("wishes: %w", err)
	}
	r.Seed(p.Bytes())

	return r.Start(ctx)
}

// ServeHTTP writes the document verbatim as HTML. Conditional and range
// requests are handled by http.ServeContent.
func (p *Page) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c := p.current.Load()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, embeddedName, c.modTime, bytes.NewReader(c.data))
}

var startTime = time.Now()
