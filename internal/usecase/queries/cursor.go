package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"order-saga/internal/pkg/errs"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200

	cursorVersion = "o1"
	cursorSep     = "."
)

// Cursor is the opaque position after the last order of a page.
type Cursor struct {
	After string `json:"after,omitempty"`
}

// EncodeAfterCursor packs the (created_at, id) keyset of the last row. Microseconds match the
// precision of timestamptz, so the decoded value compares equal in SQL.
func EncodeAfterCursor(createdAt time.Time, id int64) string {
	raw := strings.Join([]string{
		cursorVersion,
		strconv.FormatInt(createdAt.UnixMicro(), 36),
		strconv.FormatInt(id, 36),
	}, cursorSep)
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

func DecodeAfterCursor(cursor string) (time.Time, int64, error) {
	decoded, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, 0, errs.Wrap(err, "decode cursor")
	}

	parts := strings.Split(string(decoded), cursorSep)
	if len(parts) != 3 || parts[0] != cursorVersion {
		return time.Time{}, 0, errs.Newf("malformed cursor %q", cursor)
	}

	micros, err := strconv.ParseInt(parts[1], 36, 64)
	if err != nil {
		return time.Time{}, 0, errs.Wrap(err, "cursor timestamp")
	}
	id, err := strconv.ParseInt(parts[2], 36, 64)
	if err != nil || id <= 0 {
		return time.Time{}, 0, errs.Newf("cursor id %q is not a positive integer", parts[2])
	}
	return time.UnixMicro(micros).UTC(), id, nil
}

func ValidateLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	default:
		return limit
	}
}
