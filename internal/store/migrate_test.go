// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

package store

import (
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forumhub/forumhub/pkg/errutil"
)

// fakeMigrate implements migrateIface for testing.
type fakeMigrate struct {
	upErr          error
	downErr        error
	stepsErr       error
	stepsArg       int
	versionVal     uint
	versionErr     error
	dirty          bool
	forceErr       error
	forceArg       int
	closeSourceErr error
	closeDbErr     error
}

func (f *fakeMigrate) Up() error   { return f.upErr }
func (f *fakeMigrate) Down() error { return f.downErr }
func (f *fakeMigrate) Steps(n int) error {
	f.stepsArg = n
	return f.stepsErr
}
func (f *fakeMigrate) Version() (uint, bool, error) { return f.versionVal, f.dirty, f.versionErr }
func (f *fakeMigrate) Force(v int) error {
	f.forceArg = v
	return f.forceErr
}
func (f *fakeMigrate) Close() (error, error) { return f.closeSourceErr, f.closeDbErr }

func TestMigrateURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/forumhub", "pgx5://u:p@db:5432/forumhub"},
		{"postgresql://u:p@db:5432/forumhub", "pgx5://u:p@db:5432/forumhub"},
		{"pgx5://u:p@db:5432/forumhub", "pgx5://u:p@db:5432/forumhub"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migrateURL(tt.in))
		})
	}
}

func TestNewMigrator_InvalidURL(t *testing.T) {
	_, err := NewMigrator("badscheme://localhost:5432/forumhub")
	require.Error(t, err)
	errutil.AssertErrorCode(t, err, "MIGRATION_INIT_FAILED")
}

func TestMigrator_Up(t *testing.T) {
	tests := []struct {
		name    string
		upErr   error
		wantErr bool
	}{
		{"success", nil, false},
		{"no change is success", migrate.ErrNoChange, false},
		{"failure", errors.New("database locked"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := &Migrator{m: &fakeMigrate{upErr: tt.upErr}}
			err := m.Up()
			if tt.wantErr {
				errutil.AssertErrorCode(t, err, "MIGRATION_UP_FAILED")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMigrator_Down(t *testing.T) {
	require.NoError(t, (&Migrator{m: &fakeMigrate{downErr: migrate.ErrNoChange}}).Down())

	err := (&Migrator{m: &fakeMigrate{downErr: errors.New("constraint violation")}}).Down()
	errutil.AssertErrorCode(t, err, "MIGRATION_DOWN_FAILED")
}

func TestMigrator_Steps(t *testing.T) {
	fake := &fakeMigrate{}
	require.NoError(t, (&Migrator{m: fake}).Steps(-1))
	assert.Equal(t, -1, fake.stepsArg)

	err := (&Migrator{m: &fakeMigrate{stepsErr: errors.New("no such step")}}).Steps(5)
	errutil.AssertErrorCode(t, err, "MIGRATION_STEPS_FAILED")
	errutil.AssertErrorContext(t, err, "steps", 5)
}

func TestMigrator_Version(t *testing.T) {
	t.Run("reports version and dirty flag", func(t *testing.T) {
		version, dirty, err := (&Migrator{m: &fakeMigrate{versionVal: 2, dirty: true}}).Version()
		require.NoError(t, err)
		assert.Equal(t, uint(2), version)
		assert.True(t, dirty)
	})

	t.Run("fresh database is version zero", func(t *testing.T) {
		version, dirty, err := (&Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}).Version()
		require.NoError(t, err)
		assert.Zero(t, version)
		assert.False(t, dirty)
	})

	t.Run("failure", func(t *testing.T) {
		_, _, err := (&Migrator{m: &fakeMigrate{versionErr: errors.New("connection lost")}}).Version()
		errutil.AssertErrorCode(t, err, "MIGRATION_VERSION_FAILED")
	})
}

func TestMigrator_Force(t *testing.T) {
	fake := &fakeMigrate{}
	require.NoError(t, (&Migrator{m: fake}).Force(1))
	assert.Equal(t, 1, fake.forceArg)

	errutil.AssertErrorCode(t, (&Migrator{m: &fakeMigrate{}}).Force(-1), "INVALID_VERSION")
	errutil.AssertErrorCode(t, (&Migrator{m: &fakeMigrate{forceErr: errors.New("x")}}).Force(2), "MIGRATION_FORCE_FAILED")
}

func TestMigrator_Close(t *testing.T) {
	tests := []struct {
		name      string
		srcErr    error
		dbErr     error
		component string
	}{
		{"source", errors.New("source close failed"), nil, "source"},
		{"database", nil, errors.New("db close failed"), "database"},
		{"both", errors.New("source close failed"), errors.New("db close failed"), "both"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := (&Migrator{m: &fakeMigrate{closeSourceErr: tt.srcErr, closeDbErr: tt.dbErr}}).Close()
			errutil.AssertErrorCode(t, err, "MIGRATION_CLOSE_FAILED")
			errutil.AssertErrorContext(t, err, "component", tt.component)
		})
	}

	require.NoError(t, (&Migrator{m: &fakeMigrate{}}).Close())
}

func TestMigrator_PendingMigrations(t *testing.T) {
	t.Run("fresh database has every migration pending", func(t *testing.T) {
		pending, err := (&Migrator{m: &fakeMigrate{versionErr: migrate.ErrNilVersion}}).PendingMigrations()
		require.NoError(t, err)
		assert.Equal(t, []uint{1, 2}, pending)
	})

	t.Run("partially migrated", func(t *testing.T) {
		pending, err := (&Migrator{m: &fakeMigrate{versionVal: 1}}).PendingMigrations()
		require.NoError(t, err)
		assert.Equal(t, []uint{2}, pending)
	})

	t.Run("up to date", func(t *testing.T) {
		pending, err := (&Migrator{m: &fakeMigrate{versionVal: 2}}).PendingMigrations()
		require.NoError(t, err)
		assert.Empty(t, pending)
	})

	t.Run("version failure carries operation", func(t *testing.T) {
		_, err := (&Migrator{m: &fakeMigrate{versionErr: errors.New("connection lost")}}).PendingMigrations()
		errutil.AssertErrorContext(t, err, "operation", "get pending migrations")
	})
}

func TestMigrationName(t *testing.T) {
	name, err := MigrationName(1)
	require.NoError(t, err)
	assert.Equal(t, "000001_create_users", name)

	name, err = MigrationName(99)
	require.NoError(t, err)
	assert.Empty(t, name)
}
