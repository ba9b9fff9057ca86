package cache

import "time"

// CacheService defines the behavior for caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache.
	// Returns value, true if found; nil, false otherwise.
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a duration
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// DeletePrefix removes every key starting with prefix
	DeletePrefix(prefix string)

	// Flush removes all items
	Flush()
}

// Cache keys shared between use cases and handlers.
const (
	KeyConfigEnums   = "system:config:enums"
	ProductKeyPrefix = "product:id:"
)

func ProductKey(id string) string { return ProductKeyPrefix + id }

func SellerSummaryKey(sellerID string) string { return "stats:seller:" + sellerID }
