package utils

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// AuthCacheEntry is what a validated session token resolves to.
type AuthCacheEntry struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
}

// LookupAuth returns the cached entry for a token hash, or nil on a miss.
func LookupAuth(ctx context.Context, tokenHash string) *AuthCacheEntry {
	client := GetAuthCacheClient()
	if client == nil {
		return nil
	}
	raw, err := client.Get(ctx, AuthCachePrefix+tokenHash).Bytes()
	if err != nil {
		return nil
	}
	var entry AuthCacheEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		GetLogger().Warn("Discarding corrupt auth cache entry", zap.Error(err))
		return nil
	}
	return &entry
}

// CacheAuth stores a validated token for AuthCacheTTL.
func CacheAuth(ctx context.Context, tokenHash string, entry AuthCacheEntry) {
	client := GetAuthCacheClient()
	if client == nil {
		return
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := client.Set(ctx, AuthCachePrefix+tokenHash, raw, AuthCacheTTL).Err(); err != nil {
		GetLogger().Warn("Failed to cache auth entry", zap.Error(err))
	}
}

// InvalidateAuth drops cached entries so revoked tokens stop working immediately.
func InvalidateAuth(ctx context.Context, tokenHashes ...string) {
	client := GetAuthCacheClient()
	if client == nil || len(tokenHashes) == 0 {
		return
	}
	keys := make([]string, len(tokenHashes))
	for i, h := range tokenHashes {
		keys[i] = AuthCachePrefix + h
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		GetLogger().Warn("Failed to invalidate auth cache", zap.Error(err))
	}
}
