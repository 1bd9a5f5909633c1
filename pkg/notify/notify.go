package notify

import (
	"html"
	"io"
	"sync"

	"github.com/gookit/color"
	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Clean strips markup from a message that may have come from the server
// and returns plain text for a terminal, which cannot render it.
func Clean(message string) string {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return html.UnescapeString(policy.Sanitize(message))
}

// Console prints messages to a terminal, green for success and red for
// errors.
type Console struct {
	out io.Writer
}

func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

func (c *Console) Success(message string) {
	color.Fprintln(c.out, color.Green.Sprint("✔ "+Clean(message)))
}

func (c *Console) Error(message string) {
	color.Fprintln(c.out, color.Red.Sprint("✘ "+Clean(message)))
}

// Recorder keeps every message verbatim, in order. Front ends use it when
// they render messages inline rather than as toasts; escaping is left to
// the renderer.
type Recorder struct {
	mu       sync.Mutex
	Messages []Message
}

type Message struct {
	Level string
	Text  string
}

func (r *Recorder) Success(message string) {
	r.add("success", message)
}

func (r *Recorder) Error(message string) {
	r.add("error", message)
}

func (r *Recorder) add(level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Messages = append(r.Messages, Message{Level: level, Text: message})
}

// Last returns the most recent message.
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Messages) == 0 {
		return Message{}, false
	}
	return r.Messages[len(r.Messages)-1], true
}
