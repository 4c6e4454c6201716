package library

import "github.com/fwojciec/blocklib/bloom"

// dedupeFalsePositiveRate keeps the chance of dropping a distinct page
// negligible for site-sized URL lists.
const dedupeFalsePositiveRate = 1e-9

// DedupeURLs returns urls without repeats, keeping the first occurrence of
// each page. URLs that differ only in their fragment are the same page.
func DedupeURLs(urls []string) []string {
	filter := bloom.NewFilter(uint(len(urls)), dedupeFalsePositiveRate)
	unique := make([]string, 0, len(urls))
	for _, u := range urls {
		if filter.Seen(u) {
			continue
		}
		unique = append(unique, u)
	}
	return unique
}
