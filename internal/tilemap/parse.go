package tilemap

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrEmptyMap is returned when a map source has no rows.
var ErrEmptyMap = errors.New("tilemap: empty map")

// Data is a parsed map before it is bound to a tile size.
type Data struct {
	Cells []int
	Rows  int
	Cols  int
}

// Grid binds the parsed cells to a tile size and solid set.
func (d Data) Grid(tileW, tileH int, solid []int) (*Grid, error) {
	return New(d.Cells, d.Rows, d.Cols, tileW, tileH, solid)
}

// Parse reads comma-separated tile indices, one row per line.
// The first row fixes the column count; short rows are padded and long rows
// truncated. Negative or unparsable values become Empty.
func Parse(r io.Reader) (Data, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	var d Data
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Data{}, fmt.Errorf("tilemap: parse row %d: %w", d.Rows+1, err)
		}
		if d.Rows == 0 {
			d.Cols = len(rec)
		}
		for col := 0; col < d.Cols; col++ {
			v := Empty
			if col < len(rec) {
				v = parseIndex(rec[col])
			}
			d.Cells = append(d.Cells, v)
		}
		d.Rows++
	}

	if d.Rows == 0 || d.Cols == 0 {
		return Data{}, ErrEmptyMap
	}
	return d, nil
}

func parseIndex(s string) int {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return Empty
	}
	return v
}

// LoadFile parses a map from path. When path does not exist each base
// directory is tried in turn (the executable's directory when none are given).
func LoadFile(path string, baseDirs ...string) (Data, error) {
	resolved, err := resolve(path, baseDirs)
	if err != nil {
		return Data{}, err
	}

	f, err := os.Open(resolved)
	if err != nil {
		return Data{}, fmt.Errorf("tilemap: open %s: %w", resolved, err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", resolved, err)
	}
	return d, nil
}

// LoadFS parses a map from a filesystem such as an embed.FS.
func LoadFS(fsys fs.FS, path string) (Data, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return Data{}, fmt.Errorf("tilemap: open %s: %w", path, err)
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

func resolve(path string, baseDirs []string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if filepath.IsAbs(path) {
		return "", fmt.Errorf("tilemap: %s: %w", path, fs.ErrNotExist)
	}

	if len(baseDirs) == 0 {
		if exe, err := os.Executable(); err == nil {
			baseDirs = []string{filepath.Dir(exe)}
		}
	}
	for _, dir := range baseDirs {
		alt := filepath.Join(dir, path)
		if _, err := os.Stat(alt); err == nil {
			return alt, nil
		}
	}
	return "", fmt.Errorf("tilemap: %s: %w", path, fs.ErrNotExist)
}
