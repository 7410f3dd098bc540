package ui

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/checklist/internal/model"
)

func TestMain(m *testing.M) {
	lipgloss.SetColorProfile(termenv.Ascii)
	os.Exit(m.Run())
}

func TestProgressBar(t *testing.T) {
	assert.Equal(t, "[██░░░░░░░░] 1/5", ProgressBar(1, 5, 10))
	assert.Equal(t, "[░░░░░] 0/0", ProgressBar(0, 0, 1))
	assert.Equal(t, "[█████] 3/3", ProgressBar(3, 3, 5))
}

func TestItemLines(t *testing.T) {
	require.NoError(t, SetTheme("mono"))
	t.Cleanup(func() { _ = SetTheme("classic") })

	lines := ItemLines([]model.Item{{Text: "Clean grill"}, {Text: "Mop", Complete: true}})
	assert.Equal(t, []string{" 1. [ ] Clean grill", " 2. [x] Mop"}, lines)
	assert.Equal(t, []string{"no items"}, ItemLines(nil))
}

func TestGroupLinesKeepNumbering(t *testing.T) {
	require.NoError(t, SetTheme("mono"))
	t.Cleanup(func() { _ = SetTheme("classic") })

	lines := GroupLines([]model.Item{{Text: "A"}, {Text: "C"}, {Text: "B", Complete: true}})
	assert.Equal(t, []string{"Pending", " 1. [ ] A", " 2. [ ] C", "", "Done", " 3. [x] B"}, lines)

	lines = GroupLines([]model.Item{{Text: "B", Complete: true}})
	assert.Equal(t, []string{"Pending", "(none)", "", "Done", " 1. [x] B"}, lines)
}

func TestDayPanel(t *testing.T) {
	out := DayPanel(model.TabClosed, "January 5, 2024", []model.Item{{Text: "Lock doors"}}, false)
	assert.Contains(t, out, "Closing Kitchen List")
	assert.Contains(t, out, "January 5, 2024")
	assert.Contains(t, out, "Lock doors")
	assert.Contains(t, out, "0/1")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("é", 100)
	got := truncate(long)
	assert.Len(t, []rune(got), maxTextWidth)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestOKFail(t *testing.T) {
	var out, errOut bytes.Buffer
	OK(&out, "added")
	Fail(&errOut, "nope")
	assert.Contains(t, out.String(), "added")
	assert.Contains(t, errOut.String(), "nope")
}

func TestSetThemeAndColor(t *testing.T) {
	assert.Error(t, SetTheme("disco"))
	assert.NoError(t, SetTheme("neon"))
	assert.Equal(t, "neon", Current().Name)
	assert.NoError(t, SetTheme("classic"))

	assert.Error(t, SetColorMode("sometimes"))
	assert.NoError(t, SetColorMode("never"))
	assert.NoError(t, SetColorMode("auto"))
}
