package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "2024-01-05"},
		{in: "2024-02-29"},
		{in: "2023-02-29", wantErr: true},
		{in: "2024-1-5", wantErr: true},
		{in: "1704412800000", wantErr: true},
		{in: "January 5, 2024", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDateKey(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidDateKey))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, DateKey(tt.in), got)
		})
	}
}

func TestCollectionJSONRoundTrip(t *testing.T) {
	c := Collection{
		"2024-01-05": {
			{ID: "a", Text: "Clean grill", Complete: true},
			{ID: "b", Text: "Stock napkins"},
		},
		"2024-01-06": {},
	}
	b, err := json.Marshal(c)
	require.NoError(t, err)

	var got Collection
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, c, got)
}

func TestCollectionRejectsNonCanonicalKeys(t *testing.T) {
	var c Collection
	err := json.Unmarshal([]byte(`{"2024-01-05":[],"Fri Jan 05 2024":[]}`), &c)
	assert.Error(t, err)
}

func TestItemIDAcceptsLegacyNumbers(t *testing.T) {
	var items []Item
	require.NoError(t, json.Unmarshal([]byte(`[{"id":1704412800123,"text":"Mop","complete":false},{"id":"x1","text":"Sweep","complete":true}]`), &items))
	require.Len(t, items, 2)
	assert.Equal(t, ItemID("1704412800123"), items[0].ID)
	assert.Equal(t, ItemID("x1"), items[1].ID)

	b, err := json.Marshal(items[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1704412800123","text":"Mop","complete":false}`, string(b))
}

func TestItemIDRejectsOtherTypes(t *testing.T) {
	var it Item
	assert.Error(t, json.Unmarshal([]byte(`{"id":true}`), &it))
}

func TestParseTab(t *testing.T) {
	for in, want := range map[string]Tab{"open": TabOpen, "closed": TabClosed, "close": TabClosed, " Open ": TabOpen} {
		got, err := ParseTab(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseTab("both")
	assert.True(t, errors.Is(err, ErrInvalidTab))
}

func TestDayOnNilCollection(t *testing.T) {
	var c Collection
	assert.Nil(t, c.Day("2024-01-05"))
	assert.NotNil(t, c.Clone())
}
