package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

var program = []byte{0x3E, 0x42, 0x76}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile_Raw(t *testing.T) {
	data, err := LoadFile(writeFile(t, "prog.com", program))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, program) {
		t.Errorf("expected %X, got %X", program, data)
	}
}

func TestLoadFile_Gzip(t *testing.T) {
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	w.Write(program)
	w.Close()

	data, err := LoadFile(writeFile(t, "prog.com.gz", buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, program) {
		t.Errorf("expected %X, got %X", program, data)
	}
}

func TestLoadFile_Zip(t *testing.T) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	w.Create("dir/")
	f, _ := w.Create("dir/prog.com")
	f.Write(program)
	w.Close()

	data, err := LoadFile(writeFile(t, "prog.zip", buf.Bytes()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, program) {
		t.Errorf("expected %X, got %X", program, data)
	}

	buf.Reset()
	w = zip.NewWriter(&buf)
	w.Close()
	if _, err := LoadFile(writeFile(t, "empty.zip", buf.Bytes())); !errors.Is(err, ErrEmptyArchive) {
		t.Errorf("expected ErrEmptyArchive, got %v", err)
	}
}

func TestLoadFile_TooLarge(t *testing.T) {
	if _, err := LoadFile(writeFile(t, "big.bin", make([]byte, maxImageSize+1))); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestLoadFile_Missing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.com")); !os.IsNotExist(err) {
		t.Errorf("expected not exist error, got %v", err)
	}
}
