// Package records keeps per-player results between runs.
package records

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

const (
	AppName = "mazeball"

	recordsObject   = "records"
	recordsProperty = "results"
)

// Records are the results kept across runs. BestFrames is zero until the first
// win.
type Records struct {
	Wins       int    `yaml:"wins"`
	BestFrames int    `yaml:"best_frames"`
	LastSeed   uint64 `yaml:"last_seed"`
}

// Store persists Records through gdata. A Store with a nil manager keeps
// results in memory only.
type Store struct {
	manager *gdata.Manager
	records Records
}

// Open opens the platform data directory for appName. When that fails the
// store still works, without persistence.
func Open(appName string) *Store {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("records: storage unavailable, results will not be saved: %v", err)
		manager = nil
	}
	return NewStore(manager)
}

func NewStore(manager *gdata.Manager) *Store {
	s := &Store{manager: manager}
	if err := s.Load(); err != nil {
		log.Printf("records: load failed, starting fresh: %v", err)
	}
	return s
}

func (s *Store) Load() error {
	s.records = Records{}
	if s.manager == nil || !s.manager.ObjectPropExists(recordsObject, recordsProperty) {
		return nil
	}

	data, err := s.manager.LoadObjectProp(recordsObject, recordsProperty)
	if err != nil {
		return fmt.Errorf("records: load: %w", err)
	}
	var loaded Records
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("records: unmarshal: %w", err)
	}
	s.records = loaded
	return nil
}

func (s *Store) Save() error {
	if s.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(s.records)
	if err != nil {
		return fmt.Errorf("records: marshal: %w", err)
	}
	if err := s.manager.SaveObjectProp(recordsObject, recordsProperty, data); err != nil {
		return fmt.Errorf("records: save: %w", err)
	}
	return nil
}

func (s *Store) Records() Records {
	return s.records
}

// RecordStart remembers the seed of the maze being played.
func (s *Store) RecordStart(seed uint64) error {
	s.records.LastSeed = seed
	return s.Save()
}

// RecordWin counts a win reached after frames ticks and reports whether it
// beat the previous best.
func (s *Store) RecordWin(frames int) (bool, error) {
	s.records.Wins++
	best := frames > 0 && (s.records.BestFrames == 0 || frames < s.records.BestFrames)
	if best {
		s.records.BestFrames = frames
	}
	return best, s.Save()
}
