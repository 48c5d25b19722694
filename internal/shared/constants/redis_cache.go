package constants

import (
	"fmt"
	"strings"
	"time"
)

// Redis key layout
// Pattern: boxoffice:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_MEDIUM     = 12 * time.Hour   // theater layouts
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // event details
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // event listings
	TTL_REALTIME_SHORT    = 30 * time.Second // live seat maps
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "boxoffice"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_LIST  = CACHE_PREFIX + ":events:list"
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

const (
	TTL_EVENT_LIST   = TTL_SEMI_STATIC_QUICK
	TTL_EVENT_DETAIL = TTL_SEMI_STATIC_SHORT
)

// ================== VENUES MODULE ==================

const (
	CACHE_KEY_THEATER_LAYOUT = CACHE_PREFIX + ":venues:layout:theater:" // + theater-id
)

const (
	TTL_THEATER_LAYOUT = TTL_STATIC_MEDIUM
)

// ================== SEATS MODULE ==================

// The seat map is a derived read view. Hold and commit decisions never consult it.
const (
	CACHE_KEY_SEAT_MAP = CACHE_PREFIX + ":seats:map:event:" // + event-id
)

const (
	TTL_SEAT_MAP = TTL_REALTIME_SHORT
)

// ================== COORDINATION ==================

const (
	LOCK_KEY_PREFIX      = CACHE_PREFIX + ":locks:"
	RATE_LIMIT_PREFIX    = CACHE_PREFIX + ":rate_limit:"
	JOB_NAME_HOLD_REAPER = "seat-hold-reaper"
)

// ================== HELPER FUNCTIONS ==================

// BuildEventListKey keys one page of the public listing. Writes drop every page.
func BuildEventListKey(page, limit int, status, search string) string {
	return fmt.Sprintf("%s:page:%d:limit:%d:status:%s:q:%s", CACHE_KEY_EVENTS_LIST, page, limit, status, strings.ToLower(search))
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildTheaterLayoutKey(theaterID string) string {
	return CACHE_KEY_THEATER_LAYOUT + theaterID
}

func BuildSeatMapKey(eventID string) string {
	return CACHE_KEY_SEAT_MAP + eventID
}

func BuildLockKey(name string) string {
	return LOCK_KEY_PREFIX + name
}
