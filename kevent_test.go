package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nsf/termbox-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable time source for editor tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEditor(t *testing.T, lines []string, vim bool) (*Editor, *fakeClock) {
	t.Helper()
	settings := DefaultSettings()
	settings.VimBindings = vim
	settings.DailyNotesDir = t.TempDir()

	clock := &fakeClock{t: time.Date(2025, 4, 1, 10, 0, 0, 0, time.Local)}
	e := NewEditor(settings, nil, "")
	e.now = clock.Now
	e.session = NewTypingSession(time.Duration(settings.TypingTimeoutSeconds)*time.Second, 0, clock.Now())
	e.lastCheckpoint = clock.Now()
	e.noteDay = clock.Now().Format(dayLayout)
	e.findHeadings = scanHeadingRows
	e.buf = NewTextBuffer(lines)
	return e, clock
}

func keyEv(k termbox.Key) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Key: k}
}

func chEv(r rune) termbox.Event {
	return termbox.Event{Type: termbox.EventKey, Ch: r}
}

func typeKeys(e *Editor, s string) {
	for _, r := range s {
		if r == ' ' {
			e.HandleKey(keyEv(termbox.KeySpace))
			continue
		}
		e.HandleKey(chEv(r))
	}
}

func TestStandardMode_TypeAndEnter(t *testing.T) {
	e, _ := newTestEditor(t, nil, false)

	typeKeys(e, "Hello")
	e.HandleKey(keyEv(termbox.KeyEnter))
	typeKeys(e, "World")

	require.Empty(t, cmp.Diff([]string{"Hello", "World"}, e.buf.Lines()))
	require.Equal(t, Cursor{Row: 1, Col: 5}, e.cur)
	require.True(t, e.modified)
}

func TestStandardMode_BackspaceJoinsLines(t *testing.T) {
	e, _ := newTestEditor(t, []string{"ab", "cd"}, false)
	e.cur = Cursor{Row: 1, Col: 0}

	e.HandleKey(keyEv(termbox.KeyBackspace2))
	require.Empty(t, cmp.Diff([]string{"abcd"}, e.buf.Lines()))
	require.Equal(t, Cursor{Row: 0, Col: 2}, e.cur)

	// Backspace at the very start does nothing.
	e.cur = Cursor{}
	e.HandleKey(keyEv(termbox.KeyBackspace))
	require.Equal(t, "abcd", e.buf.String())
}

func TestStandardMode_DeleteJoinsNextLine(t *testing.T) {
	e, _ := newTestEditor(t, []string{"ab", "cd"}, false)
	e.cur = Cursor{Row: 0, Col: 2}
	e.HandleKey(keyEv(termbox.KeyDelete))
	require.Equal(t, "abcd", e.buf.String())
}

func TestStandardMode_TabInsertsSpaces(t *testing.T) {
	e, _ := newTestEditor(t, nil, false)
	e.HandleKey(keyEv(termbox.KeyTab))
	require.Equal(t, "    ", e.buf.String())
	require.Equal(t, 4, e.cur.Col)
}

func TestStandardMode_ModifiedCharsIgnored(t *testing.T) {
	e, _ := newTestEditor(t, []string{"x"}, false)
	e.HandleKey(termbox.Event{Type: termbox.EventKey, Ch: 'b', Mod: termbox.ModAlt})
	e.HandleKey(keyEv(termbox.KeyF1))
	e.HandleKey(keyEv(termbox.KeyCtrlB))
	require.Equal(t, "x", e.buf.String())
	require.False(t, e.modified)
}

func TestStandardMode_ArrowsCrossLines(t *testing.T) {
	e, _ := newTestEditor(t, []string{"ab", "cd"}, false)
	e.cur = Cursor{Row: 0, Col: 2}
	e.HandleKey(keyEv(termbox.KeyArrowRight))
	require.Equal(t, Cursor{Row: 1, Col: 0}, e.cur)
	e.HandleKey(keyEv(termbox.KeyArrowLeft))
	require.Equal(t, Cursor{Row: 0, Col: 2}, e.cur)
	e.HandleKey(keyEv(termbox.KeyEnd))
	e.HandleKey(keyEv(termbox.KeyHome))
	require.Equal(t, Cursor{Row: 0, Col: 0}, e.cur)
}

func TestStandardMode_CtrlQQuits(t *testing.T) {
	e, _ := newTestEditor(t, nil, false)
	e.HandleKey(keyEv(termbox.KeyCtrlQ))
	require.True(t, e.quit)
}

func TestScrollToCursor_CountsCells(t *testing.T) {
	e, _ := newTestEditor(t, []string{"日本語テキスト"}, false)
	e.width = 10
	e.height = 12
	e.cur = Cursor{Row: 0, Col: 6}

	e.scrollToCursor()
	require.Equal(t, 3, e.view.ColOffset)
	require.Equal(t, 9, e.cursorScreenX())

	e.HandleKey(keyEv(termbox.KeyHome))
	require.Equal(t, 0, e.view.ColOffset)
	require.Equal(t, 0, e.cursorScreenX())
}

func TestVim_StartsInInsert(t *testing.T) {
	e, _ := newTestEditor(t, nil, true)
	require.Equal(t, ModeInsert, e.mode)
	typeKeys(e, "hi")
	require.Equal(t, "hi", e.buf.String())
}

func TestVim_EscStepsBack(t *testing.T) {
	e, _ := newTestEditor(t, []string{"abc"}, true)
	e.cur = Cursor{Row: 0, Col: 3}
	e.HandleKey(keyEv(termbox.KeyEsc))
	require.Equal(t, ModeNormal, e.mode)
	require.Equal(t, Cursor{Row: 0, Col: 2}, e.cur)
}

func TestVim_InsertEntryKeys(t *testing.T) {
	tests := []struct {
		key   rune
		want  Cursor
		lines []string
	}{
		{'i', Cursor{Row: 0, Col: 1}, []string{"abc"}},
		{'I', Cursor{Row: 0, Col: 0}, []string{"abc"}},
		{'a', Cursor{Row: 0, Col: 2}, []string{"abc"}},
		{'A', Cursor{Row: 0, Col: 3}, []string{"abc"}},
		{'o', Cursor{Row: 1, Col: 0}, []string{"abc", ""}},
		{'O', Cursor{Row: 0, Col: 0}, []string{"", "abc"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			e, _ := newTestEditor(t, []string{"abc"}, true)
			e.mode = ModeNormal
			e.cur = Cursor{Row: 0, Col: 1}

			e.HandleKey(chEv(tt.key))
			assert.Equal(t, ModeInsert, e.mode)
			assert.Equal(t, tt.want, e.cur)
			assert.Empty(t, cmp.Diff(tt.lines, e.buf.Lines()))
		})
	}
}

func TestVim_NormalMotions(t *testing.T) {
	e, _ := newTestEditor(t, []string{"hello world", "next line", "end"}, true)
	e.mode = ModeNormal

	e.HandleKey(chEv('w'))
	assert.Equal(t, Cursor{Row: 0, Col: 6}, e.cur)
	e.HandleKey(chEv('e'))
	assert.Equal(t, Cursor{Row: 0, Col: 10}, e.cur)
	e.HandleKey(chEv('w'))
	assert.Equal(t, Cursor{Row: 1, Col: 0}, e.cur)
	e.HandleKey(chEv('b'))
	assert.Equal(t, Cursor{Row: 0, Col: 6}, e.cur)

	e.HandleKey(chEv('$'))
	assert.Equal(t, Cursor{Row: 0, Col: 10}, e.cur)
	e.HandleKey(chEv('l'))
	assert.Equal(t, Cursor{Row: 0, Col: 10}, e.cur, "l stays on the line")
	e.HandleKey(chEv('j'))
	assert.Equal(t, Cursor{Row: 1, Col: 8}, e.cur)
	e.HandleKey(chEv('0'))
	assert.Equal(t, Cursor{Row: 1, Col: 0}, e.cur)
	e.HandleKey(chEv('G'))
	assert.Equal(t, Cursor{Row: 2, Col: 0}, e.cur)
	e.HandleKey(chEv('k'))
	e.HandleKey(chEv('g'))
	assert.Equal(t, Cursor{}, e.cur)
}

func TestVim_DeleteLineAndPaste(t *testing.T) {
	e, _ := newTestEditor(t, []string{"a", "b", "c"}, true)
	e.HandleKey(keyEv(termbox.KeyEsc))
	e.cur = Cursor{}

	e.HandleKey(chEv('d'))
	require.Equal(t, 3, e.buf.Len(), "single d waits for the second key")
	e.HandleKey(chEv('d'))
	require.Empty(t, cmp.Diff([]string{"b", "c"}, e.buf.Lines()))
	require.Equal(t, Cursor{}, e.cur)

	e.HandleKey(chEv('p'))
	require.Empty(t, cmp.Diff([]string{"b", "a", "c"}, e.buf.Lines()))
	require.Equal(t, Cursor{Row: 1, Col: 0}, e.cur)

	e.HandleKey(chEv('P'))
	require.Empty(t, cmp.Diff([]string{"b", "a", "a", "c"}, e.buf.Lines()))
}

func TestVim_PendingKeyClearedByOtherKey(t *testing.T) {
	e, _ := newTestEditor(t, []string{"a", "b"}, true)
	e.mode = ModeNormal
	e.HandleKey(chEv('d'))
	e.HandleKey(chEv('j'))
	e.HandleKey(chEv('d'))
	require.Equal(t, 2, e.buf.Len())
	require.Equal(t, rune('d'), e.pendingKey)
}

func TestVim_YankMirrorsToSystemClipboard(t *testing.T) {
	e, _ := newTestEditor(t, []string{"first", "second"}, true)
	var copied string
	e.copyToSystem = func(text string) error {
		copied = text
		return nil
	}
	e.mode = ModeNormal
	e.cur = Cursor{Row: 1}

	e.HandleKey(chEv('y'))
	e.HandleKey(chEv('y'))
	require.Equal(t, "second\n", copied)
	require.Equal(t, "Line yanked", e.message)
	require.False(t, e.modified)
}

func TestVim_DeleteCharX(t *testing.T) {
	e, _ := newTestEditor(t, []string{"abc"}, true)
	e.mode = ModeNormal
	e.cur = Cursor{Row: 0, Col: 2}
	e.HandleKey(chEv('x'))
	require.Equal(t, "ab", e.buf.String())
	require.Equal(t, Cursor{Row: 0, Col: 1}, e.cur)
}

func TestVim_UnmatchedKeyIsNoop(t *testing.T) {
	e, _ := newTestEditor(t, []string{"abc"}, true)
	e.mode = ModeNormal
	e.HandleKey(chEv('z'))
	e.HandleKey(keyEv(termbox.KeyF5))
	require.Equal(t, ModeNormal, e.mode)
	require.Equal(t, "abc", e.buf.String())
	require.False(t, e.modified)
}

func TestVim_HeadingMotions(t *testing.T) {
	e, _ := newTestEditor(t, []string{"# One", "text", "more", "## Two", "tail"}, true)
	e.mode = ModeNormal
	e.cur = Cursor{Row: 1}

	e.HandleKey(chEv(']'))
	require.Equal(t, 3, e.cur.Row)
	e.HandleKey(chEv(']'))
	require.Equal(t, 3, e.cur.Row, "no heading below")
	e.HandleKey(chEv('['))
	require.Equal(t, 0, e.cur.Row)
}

func TestCommandMode_Transitions(t *testing.T) {
	e, _ := newTestEditor(t, nil, true)
	e.HandleKey(keyEv(termbox.KeyEsc))
	require.Equal(t, ModeNormal, e.mode)

	e.HandleKey(chEv(':'))
	require.Equal(t, ModeCommand, e.mode)
	e.HandleKey(keyEv(termbox.KeyEsc))
	require.Equal(t, ModeNormal, e.mode)

	// Backspace on an empty command line leaves Command mode.
	e.HandleKey(chEv(':'))
	e.HandleKey(keyEv(termbox.KeyBackspace2))
	require.Equal(t, ModeNormal, e.mode)

	e.HandleKey(chEv(':'))
	typeKeys(e, "q")
	e.HandleKey(keyEv(termbox.KeyEnter))
	require.Equal(t, ModeNormal, e.mode)
	require.True(t, e.quit)
}

func TestCommandMode_UnknownCommand(t *testing.T) {
	e, _ := newTestEditor(t, nil, true)
	e.mode = ModeNormal
	e.HandleKey(chEv(':'))
	typeKeys(e, "frobnicate")
	e.HandleKey(keyEv(termbox.KeyEnter))
	require.Equal(t, "Not an editor command: frobnicate", e.message)
	require.False(t, e.quit)
}

func TestCommandMode_Search(t *testing.T) {
	e, _ := newTestEditor(t, []string{"alpha", "beta world", "world again"}, true)
	e.mode = ModeNormal

	e.HandleKey(chEv('/'))
	typeKeys(e, "world")
	e.HandleKey(keyEv(termbox.KeyEnter))
	require.Equal(t, Cursor{Row: 1, Col: 5}, e.cur)

	e.HandleKey(chEv('n'))
	require.Equal(t, Cursor{Row: 2, Col: 0}, e.cur)
	e.HandleKey(chEv('n'))
	require.Equal(t, Cursor{Row: 1, Col: 5}, e.cur, "search wraps around")
	e.HandleKey(chEv('N'))
	require.Equal(t, Cursor{Row: 2, Col: 0}, e.cur)

	e.HandleKey(chEv('/'))
	typeKeys(e, "zzz")
	e.HandleKey(keyEv(termbox.KeyEnter))
	require.Equal(t, "Pattern not found: zzz", e.message)
}

func TestCommandMode_GoToLineAndDebug(t *testing.T) {
	e, _ := newTestEditor(t, []string{"a", "b", "c"}, true)
	e.commands.Handle("2")
	require.Equal(t, Cursor{Row: 1}, e.cur)
	e.commands.Handle("99")
	require.Equal(t, Cursor{Row: 2}, e.cur)

	e.commands.Handle("debug")
	require.True(t, e.showDebugLog)
}

func TestCommandMode_Wrap(t *testing.T) {
	e, _ := newTestEditor(t, []string{"one two three four five six seven"}, true)
	e.width = 15
	e.commands.Handle("wrap")
	require.Empty(t, cmp.Diff([]string{"one two", "three four", "five six", "seven"}, e.buf.Lines()))
	require.True(t, e.modified)
}
