package sqlutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRebind(t *testing.T) {
	assert.Equal(t, "SELECT 1", Rebind("SELECT 1"))
	assert.Equal(t, "UPDATE t SET a = $1 WHERE b = $2 AND c = $3", Rebind("UPDATE t SET a = ? WHERE b = ? AND c = ?"))

	q := "INSERT INTO t VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"
	assert.Contains(t, Rebind(q), "$12)")
}

func TestNullString(t *testing.T) {
	assert.False(t, ToSqlString(nil).Valid)
	s := "msg-1"
	assert.Equal(t, sql.NullString{String: "msg-1", Valid: true}, ToSqlString(&s))

	assert.Nil(t, FromSqlStringPtr(sql.NullString{}))
	assert.Equal(t, "x", *FromSqlStringPtr(sql.NullString{String: "x", Valid: true}))
}

func TestUnixNanoRoundTrip(t *testing.T) {
	ts := time.Date(2026, 10, 14, 9, 30, 0, 123, time.FixedZone("x", 3600))
	assert.True(t, ts.Equal(FromUnixNano(ToUnixNano(ts))))
	assert.True(t, FromUnixNano(ToUnixNano(time.Time{})).IsZero())
}
