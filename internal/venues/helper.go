package venues

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"log/slog"

	"venuebook/internal/shared/constants"
	"venuebook/internal/shared/pagination"
	"venuebook/pkg/cache"
	"venuebook/pkg/logger"
)

// listDigest keys a listing cache entry by its normalized parameters
func listDigest(q pagination.Query, f Filters) string {
	raw, _ := json.Marshal(struct {
		Q pagination.Query
		F Filters
	}{q, f})
	sum := sha1.Sum(raw)
	return hex.EncodeToString(sum[:])
}

// invalidateVenueCache drops every cached venue listing and detail
func invalidateVenueCache(ctx context.Context, c cache.Service, log *logger.Logger) {
	if err := c.DeletePattern(ctx, constants.PATTERN_INVALIDATE_VENUES); err != nil {
		log.Warn("failed to invalidate venue cache", slog.Any("error", err))
	}
}
