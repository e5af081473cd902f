package shortlist

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var csvHeader = []string{"id", "title", "price", "location", "saved_at"}

// FileStore keeps the shortlist in a CSV file. The file and its directory are
// created on first Add; a missing file is an empty shortlist.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) List(ctx context.Context) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) Add(ctx context.Context, e Entry) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.load()
	if err != nil {
		return false, err
	}
	key := e.Key()
	for _, x := range existing {
		if x.Key() == key {
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return false, errors.Wrap(err, "create shortlist directory")
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, errors.Wrap(err, "open shortlist")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if len(existing) == 0 {
		if info, err := f.Stat(); err == nil && info.Size() == 0 {
			_ = w.Write(csvHeader)
		}
	}
	_ = w.Write([]string{e.ID, e.Title, e.Price, e.Location, e.SavedAt.UTC().Format(time.RFC3339)})
	w.Flush()
	if err := w.Error(); err != nil {
		return false, errors.Wrap(err, "write shortlist")
	}
	return true, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() ([]Entry, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open shortlist")
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(csvHeader)

	var entries []Entry
	for first := true; ; first = false {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(err, "read shortlist %s", s.path)
		}
		if first && row[0] == csvHeader[0] && row[4] == csvHeader[4] {
			continue
		}
		savedAt, _ := time.Parse(time.RFC3339, row[4])
		entries = append(entries, Entry{
			ID:       row[0],
			Title:    row[1],
			Price:    row[2],
			Location: row[3],
			SavedAt:  savedAt,
		})
	}
	return entries, nil
}
