package utils

import "time"

// Brazil time location (BRT, -03:00)
var brLoc = func() *time.Location {
	if loc, err := time.LoadLocation("America/Sao_Paulo"); err == nil {
		return loc
	}
	return time.FixedZone("BRT", -3*3600)
}()

// Store seconds consistently in the DB.
func NowUnixSeconds() int64 { return time.Now().Unix() }

// Convert an epoch value in seconds to Brazil time.
// Returns zero time if t<=0 to let callers decide how to render.
func FromUnixSecondsBR(t int64) time.Time {
	if t <= 0 {
		return time.Time{}
	}
	return time.Unix(t, 0).In(brLoc)
}

func FormatRFC3339BR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(brLoc).Format(time.RFC3339)
}

// FormatDateBR renders dates the way they appear in user-facing emails.
func FormatDateBR(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(brLoc).Format("02/01/2006")
}
