package status

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricMap_GetCachesPointer(t *testing.T) {
	m := NewMetricMap[int]()
	a := m.Get("x")
	*a = 5
	assert.Same(t, a, m.Get("x"))
	assert.True(t, m.Has("x"))
	assert.False(t, m.Has("y"))
	assert.Equal(t, 1, m.Count())
}

func TestMetricMap_EntriesSorted(t *testing.T) {
	m := NewMetricMap[int]()
	for _, k := range []string{"c", "a", "b"} {
		*m.Get(k) = len(k)
	}
	var keys []string
	for _, e := range m.Entries() {
		keys = append(keys, e.Key)
		assert.Same(t, m.Get(e.Key), e.Ptr)
	}
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Empty(t, NewMetricMap[int]().Entries())
}

func TestMetricMap_ConcurrentGet(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				reg.Ints.Get(KeyTicks).Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(8000), reg.Int(KeyTicks))
}

func TestAtomicString(t *testing.T) {
	var s AtomicString
	assert.Equal(t, "", s.Load())
	s.Store("session")
	assert.Equal(t, "session", s.Load())
	s.Store(strings.Repeat("x", MaxStringLen+10))
	assert.Len(t, s.Load(), MaxStringLen)

	// A multi-byte rune straddling the cap is dropped whole
	s.Store(strings.Repeat("x", MaxStringLen-1) + "é")
	assert.Equal(t, strings.Repeat("x", MaxStringLen-1), s.Load())
}

func TestRegistry_Values(t *testing.T) {
	reg := NewRegistry()
	assert.Zero(t, reg.Int(KeyWon))
	assert.False(t, reg.Ints.Has(KeyWon), "reading must not register")

	reg.Ints.Get(KeyWon).Store(2)
	assert.Equal(t, int64(2), reg.Int(KeyWon))
	assert.Equal(t, 1, reg.Ints.Count())
	assert.Zero(t, reg.Strings.Count())
}

func TestExporter_Gather(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(KeyTicks).Store(42)
	reg.Ints.Get(KeyKillsTotal).Store(3)
	reg.Ints.Get(KeyKillsPrefix + "monster_normal").Store(2)
	reg.Ints.Get(KeyKillsPrefix + "monster_ripper").Store(1)
	reg.Strings.Get(KeySessionID).Store("0f1e")

	promReg := prometheus.NewRegistry()
	require.NoError(t, promReg.Register(NewExporter(reg)))
	families, err := promReg.Gather()
	require.NoError(t, err)

	byName := make(map[string]int)
	for _, mf := range families {
		byName[mf.GetName()] = len(mf.GetMetric())
	}
	assert.Equal(t, 1, byName["warehouse_engine_ticks"])
	assert.Equal(t, 1, byName["warehouse_kills_total"])
	assert.Equal(t, 2, byName["warehouse_monsters_killed"])
	assert.Equal(t, 1, byName["warehouse_session_info"])

	for _, mf := range families {
		if mf.GetName() != "warehouse_monsters_killed" {
			continue
		}
		for _, m := range mf.GetMetric() {
			require.Len(t, m.GetLabel(), 1)
			assert.Equal(t, "kind", m.GetLabel()[0].GetName())
			assert.NotNil(t, m.GetCounter())
		}
	}
}

func TestHandler_Scrape(t *testing.T) {
	reg := NewRegistry()
	reg.Ints.Get(KeyPushes).Store(7)

	h, err := Handler(reg)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "warehouse_movement_pushes 7")

	// Metrics registered after the handler was built still show up
	reg.Ints.Get(KeyBounces).Store(1)
	resp2, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp2.Body.Close()
	body, err = io.ReadAll(resp2.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "warehouse_movement_bounces 1")
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, "127.0.0.1:0", NewRegistry()) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
