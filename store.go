package main

import (
	"encoding/json"
	"os"
	"sort"

	"github.com/sirupsen/logrus"
)

// ProcessedSet tracks the post IDs that already have narration audio.
type ProcessedSet map[string]struct{}

// Contains reports whether the post ID is in the set.
func (s ProcessedSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add inserts the post ID into the set.
func (s ProcessedSet) Add(id string) {
	s[id] = struct{}{}
}

// IDs returns the set members sorted, for stable on-disk output.
func (s ProcessedSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ProcessedStore persists a ProcessedSet as a JSON array of post IDs. Load
// and save failures degrade the run instead of aborting it: a lost history
// only means posts may be narrated again, and the audio cache absorbs most
// of that cost.
type ProcessedStore struct {
	path string
	log  *logrus.Logger
}

// NewProcessedStore creates a store backed by the given file path.
func NewProcessedStore(path string, log *logrus.Logger) *ProcessedStore {
	return &ProcessedStore{path: path, log: log}
}

// Load reads the history file. A missing file yields an empty set; an
// unreadable or corrupt file is logged and also yields an empty set.
func (s *ProcessedStore) Load() ProcessedSet {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Errorf("Error loading processed posts: %v", err)
		}
		return ProcessedSet{}
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		s.log.Errorf("Error loading processed posts: %v", err)
		return ProcessedSet{}
	}

	set := make(ProcessedSet, len(ids))
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Save overwrites the history file with the current set. Failures are only
// logged so the page is still rendered; the same posts become eligible for
// reprocessing on the next run.
func (s *ProcessedStore) Save(set ProcessedSet) {
	data, err := json.Marshal(set.IDs())
	if err != nil {
		s.log.Errorf("Error encoding processed posts: %v", err)
		return
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.log.Errorf("Error saving processed posts: %v", err)
	}
}
