package notify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanStripsMarkupKeepsText(t *testing.T) {
	assert.Equal(t, "Passwords don't match", Clean("Passwords don't match"))
	assert.Equal(t, "Username taken", Clean("<b>Username</b> taken<script>alert(1)</script>"))
	assert.Equal(t, "a < b & c", Clean("a &lt; b &amp; c"))
	assert.Equal(t, "  spaced  ", Clean("  spaced  "))
}

func TestConsoleWritesMessages(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf)
	c.Success("User registered")
	c.Error("<i>Email</i> already in use")

	out := buf.String()
	assert.Contains(t, out, "User registered")
	assert.Contains(t, out, "Email already in use")
	assert.NotContains(t, out, "<i>")
}

func TestRecorderKeepsOrder(t *testing.T) {
	r := &Recorder{}
	_, ok := r.Last()
	assert.False(t, ok)

	r.Error("first")
	r.Success("second")
	assert.Equal(t, []Message{{Level: "error", Text: "first"}, {Level: "success", Text: "second"}}, r.Messages)
}

func TestRecorderKeepsServerTextVerbatim(t *testing.T) {
	r := &Recorder{}
	for _, msg := range []string{"Tom &amp; Jerry exists", "  spaced  ", "a<b>bold</b>"} {
		r.Error(msg)
		last, ok := r.Last()
		assert.True(t, ok)
		assert.Equal(t, msg, last.Text)
	}
}
