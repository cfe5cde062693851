package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "postgres://%zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}

func TestClose_ZeroValue(t *testing.T) {
	var db DB
	assert.NotPanics(t, db.Close)
}
