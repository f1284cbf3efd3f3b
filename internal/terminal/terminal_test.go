package terminal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitRunsLine(t *testing.T) {
	var got []string
	term := New(func(line string) error {
		got = append(got, line)
		return nil
	}, func() []string { return nil })

	assert.False(t, term.submit())
	term.insert("select 1")
	assert.True(t, term.submit())
	assert.Equal(t, []string{"select 1"}, got)
	assert.Empty(t, term.Input())
}

func TestBackspaceRemovesRune(t *testing.T) {
	term := New(func(string) error { return nil }, nil)
	term.insert("name é")
	term.backspace()
	assert.Equal(t, "name ", term.Input())
	for i := 0; i < 10; i++ {
		term.backspace()
	}
	assert.Empty(t, term.Input())
}

func TestVisible(t *testing.T) {
	lines := []string{"a", "b", "c", strings.Repeat("x", 300)}
	v := Visible(lines, 2)
	require.Len(t, v, 2)
	assert.Equal(t, "c", v[0])
	assert.Len(t, v[1], maxLineLen)
	assert.True(t, strings.HasSuffix(v[1], "..."))

	assert.Equal(t, []string{"a"}, Visible([]string{"a"}, 14))
	assert.Empty(t, Visible(nil, 14))
}
