package qbsource

import (
	"fmt"
	"os"
)

// Load reads a named source file into an immutable File.
// A failure to read is reported as an error, never a panic; callers record
// it against the compilation unit as a load error.
func Load(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return NewFile(path, content), nil
}
