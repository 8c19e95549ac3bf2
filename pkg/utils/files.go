package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

// maxImageSize is the largest program image worth reading: the whole
// 8080 address space.
const maxImageSize = 0x10000

var (
	// ErrEmptyArchive is returned when an archive holds no program.
	ErrEmptyArchive = errors.New("utils: archive contains no program")
	// ErrTooLarge is returned for files larger than the address space.
	ErrTooLarge = errors.New("utils: file larger than 64K")
)

// LoadFile loads the given file and performs decompression if necessary.
// Archives (.zip, .7z, .rar) yield their first regular file; .gz
// files are decompressed. Anything else is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	// try to assert the compression type from the file extension
	var decoder io.Reader
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".gz":
		decoder, err = gzip.NewReader(bytes.NewReader(data))
	case ".zip":
		decoder, err = firstZipFile(data)
	case ".7z":
		decoder, err = firstSevenZipFile(data)
	case ".rar":
		return firstRARFile(filename)
	default:
		return limit(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	// read the decompressed data into a byte slice
	return limitedRead(decoder)
}

func firstZipFile(data []byte) (io.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		return f.Open()
	}
	return nil, ErrEmptyArchive
}

func firstSevenZipFile(data []byte) (io.Reader, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		return f.Open()
	}
	return nil, ErrEmptyArchive
}

func firstRARFile(filename string) ([]byte, error) {
	r, err := rardecode.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	for {
		header, err := r.Next()
		if err == io.EOF {
			return nil, ErrEmptyArchive
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rar entry: %w", err)
		}
		if header.IsDir {
			continue
		}
		return limitedRead(r)
	}
}

// limitedRead reads r, refusing anything larger than the address
// space.
func limitedRead(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxImageSize+1))
	if err != nil {
		return nil, err
	}
	return limit(data)
}

func limit(data []byte) ([]byte, error) {
	if len(data) > maxImageSize {
		return nil, ErrTooLarge
	}
	return data, nil
}
