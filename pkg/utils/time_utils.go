package utils

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store timezone (CST, +08:00)
var storeLoc = func() *time.Location {
	if loc, err := time.LoadLocation("Asia/Taipei"); err == nil {
		return loc
	}
	return time.FixedZone("CST", 8*3600)
}()

func StoreLocation() *time.Location { return storeLoc }

func NowUnixSeconds() int64 { return time.Now().Unix() }

// StartOfDay truncates t to midnight in store time.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.In(storeLoc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, storeLoc)
}

// FromUnixSeconds returns zero time if t<=0 to let callers decide how to render.
func FromUnixSeconds(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(storeLoc)
}

func FormatRFC3339(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(storeLoc).Format(time.RFC3339)
}

// GenerateOrderNumber returns prefix + yyyyMMdd + 6 random uppercase hex chars.
// Collisions are not checked.
func GenerateOrderNumber(prefix string, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return prefix + now.In(storeLoc).Format("20060102") + suffix
}
