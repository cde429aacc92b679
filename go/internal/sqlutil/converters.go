package sqlutil

import (
	"database/sql"
	"strconv"
	"strings"
	"time"
)

// Helper functions for converting between Go types and SQL column types

// ToSqlString converts a Go string pointer to sql.NullString
func ToSqlString(val *string) sql.NullString {
	if val == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *val, Valid: true}
}

// FromSqlStringPtr converts sql.NullString to Go string pointer
func FromSqlStringPtr(val sql.NullString) *string {
	if !val.Valid {
		return nil
	}
	return &val.String
}

// ToUnixNano converts a time to the BIGINT form used in timestamp columns
func ToUnixNano(val time.Time) int64 {
	if val.IsZero() {
		return 0
	}
	return val.UTC().UnixNano()
}

// FromUnixNano converts a BIGINT timestamp column back to UTC time
func FromUnixNano(val int64) time.Time {
	if val == 0 {
		return time.Time{}
	}
	return time.Unix(0, val).UTC()
}

// Rebind rewrites '?' placeholders to the numbered '$N' form Postgres expects
func Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
