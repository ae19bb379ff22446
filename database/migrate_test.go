package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, migrationsDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}

	assert.Equal(t, []string{"00001_create_users.sql", "00002_create_posts.sql"}, names)
}

func TestMigrations_HaveUpAndDown(t *testing.T) {
	entries, err := fs.ReadDir(Migrations, migrationsDir)
	require.NoError(t, err)

	for _, e := range entries {
		body, err := fs.ReadFile(Migrations, migrationsDir+"/"+e.Name())
		require.NoError(t, err)
		assert.Contains(t, string(body), "-- +goose Up", e.Name())
		assert.Contains(t, string(body), "-- +goose Down", e.Name())
	}
}
