package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"thingherder/pkg/models"
)

// Sentinel errors crossing the store boundary. Callers decide the
// user-facing status; the store never panics on absent records.
var (
	ErrNotFound  = errors.New("record not found")
	ErrNameTaken = errors.New("agent name already taken")
	ErrDuplicate = errors.New("collaboration already exists")
)

// document is the entire durable state: five named mappings, each keyed by
// record id. There is no secondary index file.
type document struct {
	Agents         map[string]*models.Agent         `json:"agents"`
	Projects       map[string]*models.Project       `json:"projects"`
	Collaborations map[string]*models.Collaboration `json:"collaborations"`
	Updates        map[string]*models.Update        `json:"updates"`
	Comments       map[string]*models.Comment       `json:"comments"`
}

func emptyDocument() *document {
	return &document{
		Agents:         map[string]*models.Agent{},
		Projects:       map[string]*models.Project{},
		Collaborations: map[string]*models.Collaboration{},
		Updates:        map[string]*models.Update{},
		Comments:       map[string]*models.Comment{},
	}
}

// Store owns the in-memory document and its backing file. One instance is
// constructed at process start and handed to the request handlers; every
// mutation flushes the whole document synchronously before returning.
type Store struct {
	path string
	mu   sync.RWMutex
	doc  *document
}

// Open loads the document at path. A missing file starts an empty store; an
// unparsable file is reported and likewise degrades to an empty store, so a
// corrupt data file never prevents startup. Any other read error is fatal.
func Open(path string) (*Store, error) {
	s := &Store{path: path, doc: emptyDocument()}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		fmt.Printf("⚠️  WARNING: data file %s is unparsable, starting with an empty store: %v\n", path, err)
		return s, nil
	}

	// Tolerate mappings missing from older files
	if doc.Agents == nil {
		doc.Agents = map[string]*models.Agent{}
	}
	if doc.Projects == nil {
		doc.Projects = map[string]*models.Project{}
	}
	if doc.Collaborations == nil {
		doc.Collaborations = map[string]*models.Collaboration{}
	}
	if doc.Updates == nil {
		doc.Updates = map[string]*models.Update{}
	}
	if doc.Comments == nil {
		doc.Comments = map[string]*models.Comment{}
	}
	s.doc = &doc
	return s, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// save serializes the whole document and replaces the backing file via a
// temp file + rename, so a crash mid-flush leaves the previous document
// intact. The caller must hold the write lock. A flush error propagates to
// the caller: once it fails, in-memory and durable state have diverged.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp data file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp data file: %w", err)
	}
	return nil
}
