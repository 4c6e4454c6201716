// Package bloom provides probabilistic de-duplication of page URLs.
package bloom

import (
	"strings"

	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers page URLs it has been shown.
// It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs with the given false
// positive rate. n below one is treated as one.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(max(n, 1), fpRate),
	}
}

// Seen records url and reports whether it had been recorded before.
// URLs differing only in their fragment are the same page.
func (f *Filter) Seen(url string) bool {
	return f.f.TestAndAddString(stripFragment(url))
}

func stripFragment(url string) string {
	if idx := strings.IndexByte(url, '#'); idx != -1 {
		return url[:idx]
	}
	return url
}
