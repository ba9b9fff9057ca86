package utils

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// GenerateUUID returns a random v4 UUID string
func GenerateUUID() string {
	return uuid.NewString()
}

// ParseInt parses a string to int with a fallback default value
func ParseInt(s string, defaultVal int) int {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return defaultVal
	}
	return val
}

// ParseFloat parses a string to float64 with a fallback default value
func ParseFloat(s string, defaultVal float64) float64 {
	if s == "" {
		return defaultVal
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return defaultVal
	}
	return val
}

// PageLimit turns page/limit query values into a bounded limit and offset.
func PageLimit(pageStr, limitStr string, defaultLimit, maxLimit int) (page, limit, offset int) {
	limit = ParseInt(limitStr, defaultLimit)
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	page = ParseInt(pageStr, 1)
	if page < 1 {
		page = 1
	}
	return page, limit, (page - 1) * limit
}
