package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor_EnsureBreaksOnlyOnOverflow(t *testing.T) {
	s := newRecorder(210, 297)
	s.AddPage()
	cur := NewCursor(s, 20, 280)

	assert.False(t, cur.Ensure(100))
	cur.Advance(200)
	assert.False(t, cur.Ensure(60))
	assert.True(t, cur.Ensure(61))
	assert.Equal(t, 2, s.PageCount())
	assert.Equal(t, 20.0, cur.Y())
}

func TestCursor_TallBlockAtTopDoesNotLoop(t *testing.T) {
	s := newRecorder(210, 297)
	s.AddPage()
	cur := NewCursor(s, 20, 280)

	assert.False(t, cur.Ensure(1000))
	assert.Equal(t, 1, s.PageCount())
	assert.Equal(t, 260.0, cur.PageHeight())
}
