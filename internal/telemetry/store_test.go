package telemetry

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brenero/3d-free-kick-game/internal/shared/types"
)

func frame(round uint64, kinds ...string) types.FrameState {
	f := types.FrameState{Round: round}
	for _, k := range kinds {
		f.Events = append(f.Events, types.GameplayEvent{Type: k, Frame: 1})
	}
	return f
}

func TestIngestCountsByType(t *testing.T) {
	s := NewStore()
	s.Ingest(frame(1, "reset", "kick"))
	s.Ingest(frame(1, "post"))
	s.Ingest(frame(1, "goal"))
	s.Ingest(frame(2, "kick"))
	s.Ingest(frame(2, "rest", "miss"))
	s.Ingest(frame(3))

	sum := s.Summary()
	assert.Equal(t, int64(7), sum.Total)
	assert.Equal(t, int64(2), sum.Rounds)
	assert.Equal(t, int64(1), sum.ByType["goal"])
	assert.InDelta(t, 0.5, sum.ConversionRate(), 1e-12)

	recent := s.Recent(2)
	require.Len(t, recent, 2)
	assert.Equal(t, "rest", recent[0].Type)
	assert.Equal(t, "miss", recent[1].Type)
	assert.Equal(t, uint64(2), recent[1].Round)
	assert.Equal(t, s.Session(), recent[1].Session)
}

func TestRecentIsBounded(t *testing.T) {
	s := NewStore()
	for i := 0; i < maxRecent+50; i++ {
		s.Ingest(frame(uint64(i), "kick"))
	}
	assert.Len(t, s.Recent(0), maxRecent)
	assert.Equal(t, uint64(maxRecent+49), s.Recent(1)[0].Round)
}

func TestConcurrentIngest(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Ingest(frame(1, "kick", "save"))
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), s.Summary().ByType["save"])
}

func TestWriteMetrics(t *testing.T) {
	s := NewStore()
	s.Ingest(frame(1, "kick", "goal"))

	var buf bytes.Buffer
	require.NoError(t, s.WriteMetrics(&buf))
	out := buf.String()
	assert.Contains(t, out, "freekick_events_total 2\n")
	assert.Contains(t, out, "freekick_rounds_total 1\n")
	assert.Contains(t, out, `freekick_events_by_type{event_type="goal"} 1`)
	assert.Less(t, bytes.Index(buf.Bytes(), []byte(`"goal"`)), bytes.Index(buf.Bytes(), []byte(`"kick"`)), "sorted by type")
}
