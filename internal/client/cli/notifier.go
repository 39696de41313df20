package cli

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmitrijs2005/dojoauth/internal/client/session"
)

// terminalNotifier renders controller notifications as lines of text.
type terminalNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

var _ session.Notifier = (*terminalNotifier)(nil)

func newTerminalNotifier(out io.Writer) *terminalNotifier {
	return &terminalNotifier{out: out}
}

func (n *terminalNotifier) OnAuthenticated(u session.UserProfile) {
	n.println(fmt.Sprintf("Logged in as %s", u.Name))
}

func (n *terminalNotifier) OnAnonymous() {
	n.println("Logged out")
}

func (n *terminalNotifier) OnMessage(kind session.MessageKind, text string) {
	prefix := "[ok]"
	if kind == session.MessageError {
		prefix = "[error]"
	}
	n.println(prefix + " " + text)
}

func (n *terminalNotifier) println(s string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.out, s)
}
