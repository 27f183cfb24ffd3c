package testutil

import (
	"testing"
)

func TestRequireTestEnvironment_PassesInTestEnv(t *testing.T) {
	t.Setenv("GO_ENV", "test")
	RequireTestEnvironment(t)
}
