// Package telemetry tallies gameplay events across the rounds of a practice
// session. Everything stays in memory for the life of the process.
package telemetry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	uuid "github.com/satori/go.uuid"

	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

const maxRecent = 1000

// Event is one gameplay event tagged with the round that produced it.
type Event struct {
	Session string `json:"session" msgpack:"session"`
	Round   uint64 `json:"round" msgpack:"round"`
	types.GameplayEvent
}

// Store is safe for concurrent use so several worlds can report into it.
type Store struct {
	session string

	mu          sync.RWMutex
	recent      []Event
	totalIngest int64
	byType      map[string]int64
	rounds      int64
}

func NewStore() *Store {
	return &Store{
		session: uuid.NewV4().String(),
		recent:  make([]Event, 0, 512),
		byType:  make(map[string]int64),
	}
}

// Session returns the id stamped on every event of this store.
func (s *Store) Session() string {
	return s.session
}

// Ingest records the events of one frame snapshot.
func (s *Store) Ingest(frame types.FrameState) {
	if len(frame.Events) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ev := range frame.Events {
		s.totalIngest++
		s.byType[ev.Type]++
		if ev.Type == "kick" {
			s.rounds++
		}
		s.recent = append(s.recent, Event{Session: s.session, Round: frame.Round, GameplayEvent: ev})
	}
	if len(s.recent) > maxRecent {
		s.recent = s.recent[len(s.recent)-maxRecent:]
	}
}

// Recent returns up to limit of the latest events, oldest first.
func (s *Store) Recent(limit int) []Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.recent) {
		limit = len(s.recent)
	}
	out := make([]Event, limit)
	copy(out, s.recent[len(s.recent)-limit:])
	return out
}

// Summary is a point-in-time copy of the counters.
type Summary struct {
	Total  int64
	Rounds int64
	ByType map[string]int64
}

// ConversionRate returns goals per kicked round.
func (s Summary) ConversionRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.ByType["goal"]) / float64(s.Rounds)
}

func (s *Store) Summary() Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byType := make(map[string]int64, len(s.byType))
	for k, v := range s.byType {
		byType[k] = v
	}
	return Summary{Total: s.totalIngest, Rounds: s.rounds, ByType: byType}
}

// WriteMetrics writes the counters in the Prometheus text format.
func (s *Store) WriteMetrics(w io.Writer) error {
	summary := s.Summary()
	kinds := make([]string, 0, len(summary.ByType))
	for typ := range summary.ByType {
		kinds = append(kinds, typ)
	}
	sort.Strings(kinds)

	lines := []string{
		"# HELP freekick_events_total Total gameplay events recorded",
		"# TYPE freekick_events_total counter",
		fmt.Sprintf("freekick_events_total %d", summary.Total),
		"# HELP freekick_rounds_total Kicked rounds",
		"# TYPE freekick_rounds_total counter",
		fmt.Sprintf("freekick_rounds_total %d", summary.Rounds),
	}
	for _, typ := range kinds {
		lines = append(lines, fmt.Sprintf("freekick_events_by_type{event_type=%q} %d", typ, summary.ByType[typ]))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
