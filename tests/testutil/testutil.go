// Package testutil carries the environment guards shared by the
// integration and acceptance suites.
package testutil

import (
	"os"
	"testing"
)

// RequireTestEnvironment fails the test unless GO_ENV=test. The suites
// that call it open databases and mutate environment variables, which
// must be kept away from a live counter deployment.
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("refusing to run: GO_ENV=%q, expected \"test\"; run as GO_ENV=test go test ./...", env)
	}
}

// RequireTestEnvironmentOrSkip skips instead of failing. Used by the
// acceptance suite, which is optional outside CI.
func RequireTestEnvironmentOrSkip(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Skipf("skipping: GO_ENV=%q, expected \"test\"", env)
	}
}
