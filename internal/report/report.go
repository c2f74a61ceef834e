package report

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lumipallolabs/filesearch/internal/core"
	"github.com/lumipallolabs/filesearch/internal/filelock"
)

const (
	extension  = ".gob.gz"
	timeLayout = "2006-01-02_150405.000"
)

// ErrNoReports is returned when the store holds no saved result sets
var ErrNoReports = errors.New("no saved reports")

// Store handles saving and loading result sets
type Store struct {
	dir string
}

// Info describes one saved report file
type Info struct {
	Path  string
	ID    uuid.UUID
	Saved time.Time
}

// New creates a new store in the given directory
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the directory reports are kept in
func (s *Store) Dir() string {
	return s.dir
}

// Save writes set to a new file named after its finish time and ID
func (s *Store) Save(set *core.ResultSet) (string, error) {
	if set == nil {
		return "", errors.New("save report: nil result set")
	}

	var buf bytes.Buffer
	gzWriter := gzip.NewWriter(&buf)
	if err := gob.NewEncoder(gzWriter).Encode(set); err != nil {
		return "", fmt.Errorf("encode: %w", err)
	}
	if err := gzWriter.Close(); err != nil {
		return "", fmt.Errorf("compress: %w", err)
	}

	saved := set.Finished
	if saved.IsZero() {
		saved = time.Now()
	}
	filename := fmt.Sprintf("%s_%s%s", saved.Format(timeLayout), set.ID, extension)
	path := filepath.Join(s.dir, filename)

	if err := filelock.LockAndWrite(path, buf.Bytes()); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return path, nil
}

// Load reads a result set from path
func Load(path string) (*core.ResultSet, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	gzReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("gzip reader: %w", err)
	}
	defer gzReader.Close()

	var set core.ResultSet
	if err := gob.NewDecoder(gzReader).Decode(&set); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &set, nil
}

// List returns saved reports, oldest first
func (s *Store) List() ([]Info, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, "*"+extension))
	if err != nil {
		return nil, fmt.Errorf("glob: %w", err)
	}

	// Filenames start with the timestamp
	sort.Strings(files)

	var infos []Info
	for _, f := range files {
		info, ok := parseName(f)
		if !ok {
			continue
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Resolve turns a report reference into a path. ref may be a file path,
// "latest", or a unique prefix of a report ID.
func (s *Store) Resolve(ref string) (string, error) {
	if _, err := os.Stat(ref); err == nil {
		return ref, nil
	}

	infos, err := s.List()
	if err != nil {
		return "", err
	}
	if len(infos) == 0 {
		return "", fmt.Errorf("%w in %s", ErrNoReports, s.dir)
	}
	if ref == "latest" {
		return infos[len(infos)-1].Path, nil
	}

	var found []string
	for _, info := range infos {
		if strings.HasPrefix(info.ID.String(), strings.ToLower(ref)) {
			found = append(found, info.Path)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no report matches %q", ref)
	case 1:
		return found[0], nil
	default:
		return "", fmt.Errorf("%q matches %d reports", ref, len(found))
	}
}

func parseName(path string) (Info, bool) {
	base := strings.TrimSuffix(filepath.Base(path), extension)
	// timestamp has one underscore of its own
	idx := strings.LastIndex(base, "_")
	if idx < 0 {
		return Info{}, false
	}

	saved, err := time.ParseInLocation(timeLayout, base[:idx], time.Local)
	if err != nil {
		return Info{}, false
	}
	id, err := uuid.Parse(base[idx+1:])
	if err != nil {
		return Info{}, false
	}
	return Info{Path: path, ID: id, Saved: saved}, true
}
