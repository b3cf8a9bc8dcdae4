package jsonstorage

import "github.com/pbnjay/memory"

// DefaultMaxFileSize is an eighth of physical memory, never below 64 MiB.
func DefaultMaxFileSize() int64 {
	total := memory.TotalMemory()
	if total == 0 {
		return minMaxFileSize
	}

	limit := int64(total / 8)
	if limit < minMaxFileSize {
		return minMaxFileSize
	}
	return limit
}
