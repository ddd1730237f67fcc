package repositories

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Cursors are opaque to clients: base64 of "<created_at RFC3339Nano>|<id>".
// The pair matches the listing sort key (created_at DESC, id DESC), which
// keeps pagination stable while new sessions are created.

var errMalformedCursor = errors.New("malformed cursor")

func encodeCursor(createdAt time.Time, id string) string {
	raw := fmt.Sprintf("%s|%s", createdAt.UTC().Format(time.RFC3339Nano), id)
	return base64.URLEncoding.EncodeToString([]byte(raw))
}

func decodeCursor(cursor string) (time.Time, string, error) {
	raw, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, "", errMalformedCursor
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", errMalformedCursor
	}
	createdAt, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", errMalformedCursor
	}
	return createdAt, parts[1], nil
}
