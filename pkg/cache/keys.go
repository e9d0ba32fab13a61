package cache

import (
	"fmt"
)

// cache key for the featured listings strip.
func FeaturedKey() string {
	return "featured"
}

// cache key for a single property.
func PropertyKey(id int64) string {
	return fmt.Sprintf("property:%d", id)
}

// set holding every key written through a RedisStore, used by Clear.
func trackedKeysSetKey(prefix string) string {
	return prefix + "keys"
}
