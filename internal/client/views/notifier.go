package views

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/portfolio/internal/client/client"
)

// Notifier shows short, transient messages to the user.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ConsoleNotifier prints notifications as single lines.
type ConsoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

func NewConsoleNotifier(w io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{w: w}
}

func (n *ConsoleNotifier) Success(msg string) { n.print("✓", msg) }
func (n *ConsoleNotifier) Error(msg string)   { n.print("✗", msg) }

func (n *ConsoleNotifier) print(mark, msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.w, "%s %s\n", mark, msg)
}

// Failed reports err as "<prefix>: <message>". A 401 is left to the
// session layer, which announces the expiry once for all callers.
func Failed(n Notifier, prefix string, err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		return
	}
	n.Error(prefix + ": " + client.Message(err))
}
