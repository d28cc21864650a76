package cache

import "strings"

const (
	DefaultKeyPrefix = "edugen"
)

// GenerateCacheKey builds a namespaced key for a shared key-value backend.
// An empty prefix falls back to DefaultKeyPrefix. Extra parts are joined by
// "_" and appended as a final segment.
func GenerateCacheKey(prefix, objectType, identifier string, parts ...string) string {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	baseKey := strings.Join([]string{prefix, objectType, identifier}, ":")
	if len(parts) > 0 {
		return strings.Join([]string{baseKey, strings.Join(parts, "_")}, ":")
	}
	return baseKey
}
