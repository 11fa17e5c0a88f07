// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 ForumHub Contributors

//go:build integration

package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/forumhub/forumhub/internal/store/storetest"
)

// testDB is the shared database for integration tests.
var testDB *storetest.Database

// TestMain sets up a PostgreSQL testcontainer for integration tests.
func TestMain(m *testing.M) {
	ctx := context.Background()

	db, err := storetest.Start(ctx)
	if err != nil {
		panic("failed to start postgres: " + err.Error())
	}
	testDB = db

	code := m.Run()

	db.Close(ctx)
	os.Exit(code)
}
