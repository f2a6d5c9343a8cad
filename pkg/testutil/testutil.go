package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// FileSpec describes one file to materialize under a test temp dir.
type FileSpec struct {
	// Path is the file path relative to the temp dir.
	Path string
	// Content is the file content.
	Content string
}

// MustWriteTestFiles writes the given files under tmpDir, creating parent
// directories as needed, and returns the absolute filenames.
func MustWriteTestFiles(t *testing.T, tmpDir string, files []FileSpec) []string {
	t.Helper()
	var filenames []string
	for _, file := range files {
		abs := filepath.Join(tmpDir, file.Path)
		dir := filepath.Dir(abs)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(file.Content), os.ModePerm); err != nil {
			t.Fatal(err)
		}
		filenames = append(filenames, abs)
	}
	return filenames
}

// EqualError reports whether errors a and b are considered equal.
// They're equal if both are nil, or both are not nil and a.Error() == b.Error().
func EqualError(a, b error) bool {
	return a == nil && b == nil || a != nil && b != nil && a.Error() == b.Error()
}

// ExpectError asserts that the errors are equal.  Return value is true
// if the "want" argument is non-nil.
func ExpectError(t *testing.T, want, got error) bool {
	t.Helper()
	if !EqualError(want, got) {
		t.Fatal("errors: want:", want, "got:", got)
	}
	return want != nil
}
