package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/yatra-app/yatra/testutil"
)

// TestMain brings the test database up to the latest schema before any
// Postgres contract test runs. Without TEST_DATABASE_URL only the
// file-store half of each test runs.
func TestMain(m *testing.M) {
	if dsn := os.Getenv(testutil.DSNEnv); dsn != "" {
		if err := testutil.MigrateUp(context.Background(), dsn); err != nil {
			log.Fatalf("TestMain: migrate: %v", err)
		}
	}
	os.Exit(m.Run())
}
