package checklist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/model"
	"github.com/idilsaglam/checklist/internal/store/memstore"
)

type fixedToday model.DateKey

func (f fixedToday) Today() model.DateKey { return model.DateKey(f) }

const today = fixedToday("2024-01-05")

func TestOpenDefaults(t *testing.T) {
	s := Open(context.Background(), memstore.New(nil), today)
	st := s.State()

	assert.Equal(t, model.Collection{}, st.Open)
	assert.Equal(t, model.Collection{}, st.Closed)
	assert.Equal(t, model.DateKey("2024-01-05"), st.CurrentDate)
	assert.Equal(t, model.TabOpen, st.Active)
}

func TestOpenMalformedFallsBack(t *testing.T) {
	tests := []struct {
		name   string
		values map[string]string
	}{
		{name: "garbage", values: map[string]string{KeyOpen: "{oops", KeyClosed: "[]", KeyCurrentDate: "yesterday"}},
		{name: "null", values: map[string]string{KeyOpen: "null", KeyClosed: "null", KeyCurrentDate: ""}},
		{name: "non canonical keys", values: map[string]string{KeyOpen: `{"1/5/2024":[]}`, KeyClosed: `{"2024-1-5":[]}`, KeyCurrentDate: "2024-1-5"}},
		{name: "wrong item shape", values: map[string]string{KeyOpen: `{"2024-01-05":"x"}`, KeyClosed: `{"2024-01-05":[{"id":{}}]}`, KeyCurrentDate: "1704412800000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Open(context.Background(), memstore.New(tt.values), today).State()
			assert.Equal(t, model.Collection{}, st.Open)
			assert.Equal(t, model.Collection{}, st.Closed)
			assert.Equal(t, model.DateKey("2024-01-05"), st.CurrentDate)
		})
	}
}

type failingKV struct{ memstore.Store }

func (*failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (*failingKV) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestOpenReadErrorsFallBack(t *testing.T) {
	s := Open(context.Background(), &failingKV{}, today)
	assert.Equal(t, model.DateKey("2024-01-05"), s.State().CurrentDate)

	// Write failures are absorbed.
	s.SetCurrentDate("2024-01-06")
	assert.Equal(t, model.DateKey("2024-01-06"), s.State().CurrentDate)
}

func TestOpenReadsPersistedValues(t *testing.T) {
	kv := memstore.New(map[string]string{
		KeyOpen:        `{"2024-01-04":[{"id":1704412800123,"text":"Clean grill","complete":true}]}`,
		KeyCurrentDate: `"2024-01-04"`,
	})
	st := Open(context.Background(), kv, today).State()

	assert.Equal(t, model.Collection{"2024-01-04": {{ID: "1704412800123", Text: "Clean grill", Complete: true}}}, st.Open)
	assert.Equal(t, model.DateKey("2024-01-04"), st.CurrentDate)
}

func TestSettersPersistTheirOwnKey(t *testing.T) {
	kv := memstore.New(nil)
	s := Open(context.Background(), kv, today)

	open := model.Collection{"2024-01-05": {{ID: "a", Text: "Mop"}}}
	s.SetOpen(open)
	assert.Equal(t, map[string]string{KeyOpen: mustJSON(t, open)}, kv.Snapshot())

	s.SetClosed(model.Collection{})
	s.SetCurrentDate("2024-01-03")
	s.SetActive(model.TabClosed)

	snap := kv.Snapshot()
	assert.Equal(t, "{}", snap[KeyClosed])
	assert.Equal(t, "2024-01-03", snap[KeyCurrentDate])
	assert.Len(t, snap, 3, "active tab is not persisted")
	assert.Equal(t, model.TabClosed, s.State().Active)
}

func TestRoundTripThroughKV(t *testing.T) {
	kv := memstore.New(nil)
	s := Open(context.Background(), kv, today)
	open := model.Collection{
		"2024-01-04": {{ID: "a", Text: "Clean grill", Complete: true}, {ID: "b", Text: "Stock napkins"}},
		"2024-01-05": {{ID: "c", Text: "Mop"}},
	}
	closed := model.Collection{"2024-01-05": {{ID: "d", Text: "Lock doors"}}}
	s.SetOpen(open)
	s.SetClosed(closed)
	s.SetCurrentDate("2024-01-04")

	reloaded := Open(context.Background(), memstore.New(kv.Snapshot()), fixedToday("2030-01-01")).State()
	assert.Equal(t, open, reloaded.Open)
	assert.Equal(t, closed, reloaded.Closed)
	assert.Equal(t, model.DateKey("2024-01-04"), reloaded.CurrentDate)
}

func TestSetNilCollectionStoresEmpty(t *testing.T) {
	kv := memstore.New(nil)
	s := Open(context.Background(), kv, today)
	s.SetOpen(nil)

	assert.NotNil(t, s.State().Open)
	assert.Equal(t, "{}", kv.Snapshot()[KeyOpen])
}

func TestDebouncedWritesKeepLatestValue(t *testing.T) {
	kv := memstore.New(nil)
	s := Open(context.Background(), kv, today, WithDebounce(time.Hour))

	s.SetCurrentDate("2024-01-01")
	s.SetCurrentDate("2024-01-02")
	s.SetCurrentDate("2024-01-03")
	assert.Equal(t, 0, kv.Writes(), "nothing written before the debounce fires")

	s.Close()
	assert.Equal(t, 1, kv.Writes())
	assert.Equal(t, "2024-01-03", kv.Snapshot()[KeyCurrentDate])
}

func TestDebounceTimerFlushes(t *testing.T) {
	kv := memstore.New(nil)
	s := Open(context.Background(), kv, today, WithDebounce(10*time.Millisecond))
	s.SetCurrentDate("2024-01-02")

	assert.Eventually(t, func() bool {
		return kv.Snapshot()[KeyCurrentDate] == "2024-01-02"
	}, time.Second, 5*time.Millisecond)
	s.Close()
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	kv := memstore.New(nil)
	s := Open(context.Background(), kv, today)
	sess := NewSession(s, testCalendar(), sequentialIDs())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess.AddItem("task")
		}()
	}
	wg.Wait()

	assert.Len(t, s.State().Open["2024-01-05"], 50)
	var persisted model.Collection
	require.NoError(t, json.Unmarshal([]byte(kv.Snapshot()[KeyOpen]), &persisted))
	assert.Len(t, persisted["2024-01-05"], 50)
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}
