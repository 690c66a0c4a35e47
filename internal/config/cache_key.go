package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserSessionKey returns the Redis key holding the JTI of a user's active login.
func (r *CacheKeyStruct) UserSessionKey(userID int64) string {
	return fmt.Sprintf("user:%d:session", userID)
}

// RateLimitKey returns the Redis counter key for a client in a rate-limited scope.
func (r *CacheKeyStruct) RateLimitKey(scope, clientIP string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, clientIP)
}

var CacheKey = NewCacheKeyStruct()
