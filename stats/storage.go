// Package stats keeps monthly counters of analysis outcomes on disk.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/jayozer/SeoTagInspector/logging"
)

// Outcome is the result of one submitted analysis
type Outcome int

const (
	Succeeded Outcome = iota
	ApplicationError
	TransportError
	Rejected
)

// MonthlyStats represents statistics for a specific month
type MonthlyStats struct {
	Succeeded         int            `json:"succeeded"`
	ApplicationErrors int            `json:"application_errors"`
	TransportErrors   int            `json:"transport_errors"`
	Rejected          int            `json:"rejected"`
	Labels            map[string]int `json:"labels,omitempty"` // score label -> count
	LastUpdated       time.Time      `json:"last_updated"`
}

// Total is the number of submissions counted in the month
func (m MonthlyStats) Total() int {
	return m.Succeeded + m.ApplicationErrors + m.TransportErrors + m.Rejected
}

func (m MonthlyStats) clone() MonthlyStats {
	out := m
	if m.Labels != nil {
		out.Labels = make(map[string]int, len(m.Labels))
		for k, v := range m.Labels {
			out.Labels[k] = v
		}
	}
	return out
}

// Storage handles persistent storage of statistics
type Storage struct {
	mutex       sync.RWMutex
	stats       map[string]*MonthlyStats // key: "YYYY-MM"
	filePath    string
	lastWrite   time.Time
	writeBuffer chan struct{}
	stop        chan struct{}
	done        chan struct{}
	once        sync.Once
	now         func() time.Time
}

// NewStorage creates a storage in dataDir and starts its background writer
func NewStorage(dataDir string) (*Storage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	s := &Storage{
		stats:       make(map[string]*MonthlyStats),
		filePath:    filepath.Join(dataDir, "stats.json"),
		writeBuffer: make(chan struct{}, 1),
		stop:        make(chan struct{}),
		done:        make(chan struct{}),
		now:         time.Now,
	}

	if err := s.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load stats: %w", err)
	}

	go s.backgroundWriter()

	return s, nil
}

func (s *Storage) load() error {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	return json.Unmarshal(data, &s.stats)
}

func (s *Storage) save() error {
	s.mutex.RLock()
	data, err := json.Marshal(s.stats)
	s.mutex.RUnlock()

	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}

	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := os.Rename(tempFile, s.filePath); err != nil {
		os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}
	return nil
}

func (s *Storage) saveLogged() {
	if err := s.save(); err != nil {
		logging.Log.WithError(err).Error("Failed to persist statistics")
	}
}

func (s *Storage) backgroundWriter() {
	defer close(s.done)

	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.writeBuffer:
			s.saveLogged()
		case <-ticker.C:
			s.saveLogged()
		case <-s.stop:
			return
		}
	}
}

func (s *Storage) month() string {
	return s.now().Format("2006-01")
}

// requestWrite signals that a write to disk is needed
func (s *Storage) requestWrite() {
	select {
	case s.writeBuffer <- struct{}{}:
	default:
		// write already pending
	}
}

// Record counts one outcome in the current month. label is the score label
// of a successful analysis and is ignored otherwise.
func (s *Storage) Record(outcome Outcome, label string) {
	month := s.month()

	s.mutex.Lock()
	defer s.mutex.Unlock()

	stats, exists := s.stats[month]
	if !exists {
		stats = &MonthlyStats{}
		s.stats[month] = stats
	}

	switch outcome {
	case Succeeded:
		stats.Succeeded++
		if label != "" {
			if stats.Labels == nil {
				stats.Labels = make(map[string]int)
			}
			stats.Labels[label]++
		}
	case ApplicationError:
		stats.ApplicationErrors++
	case TransportError:
		stats.TransportErrors++
	case Rejected:
		stats.Rejected++
	}
	stats.LastUpdated = s.now()

	if time.Since(s.lastWrite) > time.Minute {
		s.requestWrite()
		s.lastWrite = time.Now()
	}
}

// GetCurrentStats returns statistics for the current month
func (s *Storage) GetCurrentStats() MonthlyStats {
	stats, _ := s.GetMonthlyStats(s.month())
	return stats
}

// Cleanup removes statistics older than retainMonths, counting the current month
func (s *Storage) Cleanup(retainMonths int) {
	if retainMonths < 1 {
		retainMonths = 1
	}
	oldest := s.now().AddDate(0, -(retainMonths - 1), 0).Format("2006-01")

	s.mutex.Lock()
	removed := 0
	for key := range s.stats {
		if key < oldest {
			delete(s.stats, key)
			removed++
		}
	}
	s.mutex.Unlock()

	s.requestWrite()
	logging.Log.WithField("oldest", oldest).WithField("removed", removed).Debug("Cleaned up statistics")
}

// GetMonthlyStats returns statistics for a specific month
func (s *Storage) GetMonthlyStats(yearMonth string) (MonthlyStats, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if stats, exists := s.stats[yearMonth]; exists {
		return stats.clone(), true
	}
	return MonthlyStats{}, false
}

// GetAllMonths returns all months that have statistics, newest first
func (s *Storage) GetAllMonths() []string {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	months := make([]string, 0, len(s.stats))
	for month := range s.stats {
		months = append(months, month)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return months
}

// Shutdown stops the background writer and flushes to disk
func (s *Storage) Shutdown() error {
	var err error
	s.once.Do(func() {
		close(s.stop)
		<-s.done
		err = s.save()
	})
	return err
}
