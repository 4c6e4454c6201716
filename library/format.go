package library

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ComputeHash returns the xxhash of a converted document as hex.
func ComputeHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// FormatBytes formats a byte count in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// TruncateURL shortens a URL for progress display, keeping its end.
func TruncateURL(url string, maxLen int) string {
	switch {
	case maxLen <= 0:
		return ""
	case len(url) <= maxLen:
		return url
	case maxLen < 4:
		return url[:maxLen]
	}
	return "..." + url[len(url)-maxLen+3:]
}
