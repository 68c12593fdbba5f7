/*
File    : rascal-compiler/file/file_test.go
Author  : Sergio Cezar
*/
package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadSource_RoundTrip(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.ras")
	source := "program p; begin end.\n"
	assert.NoError(t, os.WriteFile(path, []byte(source), 0644))

	got, err := ReadSource(path)
	assert.NoError(t, err)
	assert.Equal(t, source, got)
}

func TestReadSource_MissingFile(t *testing.T) {

	_, err := ReadSource(filepath.Join(t.TempDir(), "missing.ras"))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "IO: cannot open input file")
}

func TestWriteOutput_AppendsFinalNewline(t *testing.T) {

	dir := t.TempDir()
	path := filepath.Join(dir, "out.mepa")

	assert.NoError(t, WriteOutput(path, "     INPP\n     PARA\n     FIM"))

	content, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, "     INPP\n     PARA\n     FIM\n", string(content))
}

func TestWriteOutput_InvalidPath(t *testing.T) {

	err := WriteOutput(filepath.Join(t.TempDir(), "no", "such", "dir", "out.mepa"), "x")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "IO: cannot write output file")
}
