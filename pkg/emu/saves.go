package emu

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"
)

// DefaultFolder is where snapshots are kept unless told otherwise.
const DefaultFolder = "saves"

// snapshot file naming convention:
// <folder>/<program digest>/<timestamp>.snap

// Save is a snapshot file belonging to one program.
type Save struct {
	Path string    // the path to the snapshot file
	Time time.Time // when the snapshot was taken
}

// programFolder returns the folder holding the snapshots of the
// program with the given digest.
func programFolder(folder string, digest uint64) string {
	return filepath.Join(folder, fmt.Sprintf("%016x", digest))
}

// WriteSave encodes state and writes it as a new snapshot for the
// program with the given digest. The snapshot is written to a
// temporary file first and renamed into place, so a crash never
// leaves a truncated snapshot behind.
func WriteSave(folder string, digest uint64, state []byte) (*Save, error) {
	dir := programFolder(folder, digest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	snapshot, err := Encode(state)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	s := &Save{
		Path: filepath.Join(dir, fmt.Sprintf("%d.snap", now.UnixNano())),
		Time: now,
	}
	if err := writeFileAtomic(s.Path, snapshot); err != nil {
		return nil, fmt.Errorf("emu: writing snapshot: %w", err)
	}
	return s, nil
}

// writeFileAtomic writes b to a temporary file next to path and
// renames it over path.
func writeFileAtomic(path string, b []byte) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	if _, err := f.Write(b); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	return os.Rename(f.Name(), path)
}

// LoadSaves lists the snapshots of the program with the given digest,
// newest first. A program without snapshots has an empty list.
func LoadSaves(folder string, digest uint64) ([]*Save, error) {
	files, err := os.ReadDir(programFolder(folder, digest))
	if os.IsNotExist(err) {
		return make([]*Save, 0), nil
	} else if err != nil {
		return nil, err
	}

	saves := make([]*Save, 0, len(files))
	for _, file := range files {
		if file.IsDir() || !isSaveFile(file.Name()) {
			continue
		}
		saves = append(saves, &Save{
			Path: filepath.Join(programFolder(folder, digest), file.Name()),
			Time: time.Unix(0, parseTimestampFromFilename(file.Name())),
		})
	}

	sort.Slice(saves, func(i, j int) bool {
		return saves[i].Time.After(saves[j].Time)
	})
	return saves, nil
}

// Read reads and decodes the snapshot.
func (s *Save) Read() ([]byte, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, err
	}
	state, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Path, err)
	}
	return state, nil
}

// parseTimestampFromFilename parses the timestamp from the given filename.
// The filename is expected to be in the format of "<timestamp>.snap",
// where <timestamp> is the number of nanoseconds since the Unix epoch.
func parseTimestampFromFilename(filename string) int64 {
	n, err := strconv.ParseInt(strings.TrimSuffix(filename, filepath.Ext(filename)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func isSaveFile(filename string) bool {
	return strings.HasSuffix(filename, ".snap")
}
