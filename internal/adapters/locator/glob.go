package locator

import (
	"fmt"
	"iter"
	"path/filepath"

	"github.com/kamal-hamza/specplot/internal/core/ports"
)

// GlobLocator expands shell-style patterns against the filesystem
type GlobLocator struct {
	// Root, when set, anchors relative patterns
	Root string
}

// NewGlobLocator creates a locator for patterns relative to the working directory
func NewGlobLocator() *GlobLocator {
	return &GlobLocator{}
}

// Ensure it implements the interface
var _ ports.Locator = (*GlobLocator)(nil)

// Locate returns the files matching pattern in lexical order.
// A literal path matches itself when it exists; no match yields an empty sequence.
func (l *GlobLocator) Locate(pattern string) (iter.Seq[string], error) {
	if l.Root != "" && !filepath.IsAbs(pattern) {
		pattern = filepath.Join(l.Root, pattern)
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid file pattern %q: %w", pattern, err)
	}

	return func(yield func(string) bool) {
		for _, m := range matches {
			if !yield(m) {
				return
			}
		}
	}, nil
}
