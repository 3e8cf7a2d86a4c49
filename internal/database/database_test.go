package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_CreatesTables(t *testing.T) {
	db, teardown, err := InitDB(":memory:", "", "")
	require.NoError(t, err, "InitDB should not return an error")
	defer teardown()

	// Check if the 'kv' table was created
	var kvTableName string
	err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&kvTableName)
	require.NoError(t, err, "Querying for kv table should not produce an error")
	assert.Equal(t, "kv", kvTableName, "The 'kv' table should be created")
}
