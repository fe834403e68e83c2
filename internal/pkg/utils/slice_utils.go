package utils

import (
	"strconv"
	"strings"
)

// Offsets returns the starting offsets of count consecutive pages of size.
func Offsets(count, size int) []int {
	if count <= 0 {
		return []int{}
	}
	out := make([]int, count)
	for i := range out {
		out[i] = i * size
	}
	return out
}

// Truncate returns at most n leading items. It never returns nil.
func Truncate[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if n >= 0 && len(items) > n {
		return items[:n]
	}
	return items
}

// Tail returns at most n trailing items. It never returns nil.
func Tail[T any](items []T, n int) []T {
	if items == nil {
		return []T{}
	}
	if n >= 0 && len(items) > n {
		return items[len(items)-n:]
	}
	return items
}

// Page returns the 1-based page of perPage items and the total page count.
func Page[T any](items []T, page, perPage int) ([]T, int) {
	if perPage <= 0 {
		perPage = 1
	}
	if page < 1 {
		page = 1
	}
	totalPages := (len(items) + perPage - 1) / perPage
	start := (page - 1) * perPage
	if start >= len(items) {
		return []T{}, totalPages
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], totalPages
}

// ParseLimit parses a query parameter as a positive integer clamped to max.
// Missing, garbage or non-positive values yield def.
func ParseLimit(raw string, def, max int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		n = def
	}
	if max > 0 && n > max {
		n = max
	}
	return n
}
