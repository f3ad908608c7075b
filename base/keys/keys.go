package keys

import (
	"strings"
)

const (
	// PfxEns is used for prefixing ens lookup cache keys
	PfxEns = "ens"
)

// CustomKey is used to join the customized key by components with specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// CacheKey is used to join the cache key by components
func CacheKey(components ...string) string {
	return CustomKey(":", components...)
}
