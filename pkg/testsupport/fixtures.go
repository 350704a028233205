// Package testsupport provides fixture loading helpers and canned
// entities shared by package tests.
package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/userhub/userhub/model"
)

// LoadFixture loads test data from a fixture file.
// The path is relative to the test package directory.
func LoadFixture(t *testing.T, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to load fixture from %s: %v", path, err)
	}

	return data
}

// LoadFixtureJSON loads JSON test data from a fixture file and unmarshals it.
// The path is relative to the test package directory.
func LoadFixtureJSON(t *testing.T, path string, dest interface{}) {
	t.Helper()

	data := LoadFixture(t, path)
	if err := json.Unmarshal(data, dest); err != nil {
		t.Fatalf("failed to unmarshal JSON fixture from %s: %v", path, err)
	}
}

// FixturePath constructs a path to a fixture file relative to the
// testdata directory.
func FixturePath(filename string) string {
	return filepath.Join("testdata", filename)
}

// TempFile creates a temporary file with the given content for testing.
// The caller is responsible for cleaning up the file.
func TempFile(t *testing.T, content []byte) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	if _, err := tmpfile.Write(content); err != nil {
		tmpfile.Close()
		os.Remove(tmpfile.Name())
		t.Fatalf("failed to write to temp file: %v", err)
	}

	if err := tmpfile.Close(); err != nil {
		os.Remove(tmpfile.Name())
		t.Fatalf("failed to close temp file: %v", err)
	}

	return tmpfile.Name()
}

// SeedUsers returns a deterministic set of users for tests. Callers may
// mutate the returned slice freely.
func SeedUsers() []model.User {
	return []model.User{
		{ID: "u1", Email: "ada@example.com", Firstname: "Ada", Lastname: "Lovelace"},
		{ID: "u2", Email: "alan@example.com", Firstname: "Alan", Lastname: "Turing"},
		{ID: "u3", Email: "grace@example.com", Firstname: "Grace", Lastname: "Hopper"},
	}
}

// SeedComments returns a deterministic set of comments for tests, spread
// over two parent posts.
func SeedComments() []model.Comment {
	return []model.Comment{
		{ID: "c1", PostID: "p1", Name: "Ada", Email: "ada@example.com", Body: "first"},
		{ID: "c2", PostID: "p1", Name: "Alan", Email: "alan@example.com", Body: "second"},
		{ID: "c3", PostID: "p2", Name: "Grace", Email: "grace@example.com", Body: "third"},
	}
}

// StrPtr returns a pointer to s, for building patch payloads inline.
func StrPtr(s string) *string {
	return &s
}
