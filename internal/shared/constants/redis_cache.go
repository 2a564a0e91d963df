package constants

import (
	"fmt"
	"time"
)

// Redis Cache Configuration
// Pattern: venuebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // catalog detail
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // catalog listings
	TTL_DYNAMIC_MEDIUM    = 10 * time.Minute // analytics
)

const (
	CACHE_PREFIX = "venuebook"
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_VENUES_LIST     = CACHE_PREFIX + ":venues:list:"        // + query hash
	CACHE_KEY_VENUE_DETAIL    = CACHE_PREFIX + ":venues:detail:uuid:" // + venue-id
	PATTERN_INVALIDATE_VENUES = CACHE_PREFIX + ":venues:*"
)

const (
	TTL_VENUES_LIST  = TTL_SEMI_STATIC_QUICK
	TTL_VENUE_DETAIL = TTL_SEMI_STATIC_SHORT
)

// ================== MEALS MODULE ==================

const (
	CACHE_KEY_MEALS_LIST     = CACHE_PREFIX + ":meals:list:"        // + query hash
	CACHE_KEY_MEAL_DETAIL    = CACHE_PREFIX + ":meals:detail:uuid:" // + meal-id
	PATTERN_INVALIDATE_MEALS = CACHE_PREFIX + ":meals:*"
)

const (
	TTL_MEALS_LIST  = TTL_SEMI_STATIC_QUICK
	TTL_MEAL_DETAIL = TTL_SEMI_STATIC_SHORT
)

// ================== ANALYTICS MODULE ==================

const (
	CACHE_KEY_ANALYTICS_DASHBOARD  = CACHE_PREFIX + ":analytics:dashboard:admin"
	CACHE_KEY_ANALYTICS_REVENUE    = CACHE_PREFIX + ":analytics:revenue:months:" // + month-count
	CACHE_KEY_ANALYTICS_TOP_VENUES = CACHE_PREFIX + ":analytics:venues:top:"     // + limit
	PATTERN_INVALIDATE_ANALYTICS   = CACHE_PREFIX + ":analytics:*"
)

const (
	TTL_ANALYTICS = TTL_DYNAMIC_MEDIUM
)

// ================== HELPER FUNCTIONS ==================

// BuildVenuesListKey keys a listing by a digest of its normalized query
func BuildVenuesListKey(queryDigest string) string {
	return CACHE_KEY_VENUES_LIST + queryDigest
}

func BuildVenueDetailKey(venueID string) string {
	return CACHE_KEY_VENUE_DETAIL + venueID
}

func BuildMealsListKey(queryDigest string) string {
	return CACHE_KEY_MEALS_LIST + queryDigest
}

func BuildMealDetailKey(mealID string) string {
	return CACHE_KEY_MEAL_DETAIL + mealID
}

func BuildAnalyticsRevenueKey(months int) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_ANALYTICS_REVENUE, months)
}

func BuildAnalyticsTopVenuesKey(limit int) string {
	return fmt.Sprintf("%s%d", CACHE_KEY_ANALYTICS_TOP_VENUES, limit)
}
