package utils

import "time"

// AuthCachePrefix is the prefix used for Redis authorization cache keys.
const AuthCachePrefix = "auth:"

// AuthCacheTTL is the time-to-live for authorization cache entries.
const AuthCacheTTL = 10 * time.Minute

// ViewDedupPrefix prefixes the Redis keys that suppress repeat profile views.
const ViewDedupPrefix = "view:"

// AuthCookieName is the cookie that carries the session token.
const AuthCookieName = "jwt"
