package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, "./data/app.db?_pragma=foreign_keys(1)",
		withForeignKeys("./data/app.db"),
		"bare DSN gets the pragma")

	assert.Equal(t, "./data/app.db?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		withForeignKeys("./data/app.db?_pragma=journal_mode(WAL)"),
		"existing options are preserved")

	dsn := "./data/app.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"
	assert.Equal(t, dsn, withForeignKeys(dsn), "already-set pragma is not duplicated")
}
