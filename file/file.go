/*
File    : rascal-compiler/file/file.go
Author  : Sergio Cezar
*/

// Package file implements the compiler's file collaborators: reading a
// Rascal source file and persisting the emitted MEPA program. The
// compilation core itself is purely in-memory; these helpers are the
// only place the pipeline touches the filesystem, and their errors are
// the IO diagnostics of the driver.
package file

import (
	"fmt"
	"os"
)

// ReadSource reads the whole source file as UTF-8 text.
func ReadSource(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("IO: cannot open input file '%s': %w", path, err)
	}
	return string(content), nil
}

// WriteOutput persists the emitted MEPA program, creating or
// truncating the output file. A trailing newline is appended so the
// file ends like the line-oriented text it is.
func WriteOutput(path string, code string) error {
	if err := os.WriteFile(path, []byte(code+"\n"), 0644); err != nil {
		return fmt.Errorf("IO: cannot write output file '%s': %w", path, err)
	}
	return nil
}
