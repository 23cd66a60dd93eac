// File: utils/constants.go
package utils

import (
	"fmt"
	"time"
)

// AvailabilityCachePrefix is the prefix used for Redis availability cache keys.
const AvailabilityCachePrefix = "availability:"

// AvailabilityCacheTTL is the time-to-live for cached availability records.
const AvailabilityCacheTTL = 10 * time.Minute

// EventSnapshotPrefix is the prefix used for cached calendar event windows.
const EventSnapshotPrefix = "events:"

// EventSnapshotTTL keeps event snapshots short-lived; the refresh worker
// overwrites them as soon as provider data settles.
const EventSnapshotTTL = 2 * time.Minute

// EventSnapshotKey builds the cache key for one account's event window.
// Both the grid service and the refresh worker must agree on this shape.
func EventSnapshotKey(accountID string, start, end time.Time) string {
	return fmt.Sprintf("%s%s:%d:%d", EventSnapshotPrefix, accountID, start.Unix(), end.Unix())
}
