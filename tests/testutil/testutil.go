package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV is "test". The
// acceptance and integration suites build the full router, so this guard
// keeps them from ever running against a development or production
// database configuration.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	if env := os.Getenv("GO_ENV"); env != "test" {
		t.Fatalf("Tests must run with GO_ENV=test (current GO_ENV=%q). Run: GO_ENV=test go test ./...", env)
	}
}
