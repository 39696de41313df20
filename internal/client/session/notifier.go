package session

type MessageKind string

const (
	MessageSuccess MessageKind = "success"
	MessageError   MessageKind = "error"
)

// Notifier receives state changes and user-facing messages. Calls are made
// after the controller has released its lock, so implementations may call
// back into the controller.
type Notifier interface {
	OnAuthenticated(user UserProfile)
	OnAnonymous()
	OnMessage(kind MessageKind, text string)
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	Authenticated func(user UserProfile)
	Anonymous     func()
	Message       func(kind MessageKind, text string)
}

func (n NotifierFuncs) OnAuthenticated(user UserProfile) {
	if n.Authenticated != nil {
		n.Authenticated(user)
	}
}

func (n NotifierFuncs) OnAnonymous() {
	if n.Anonymous != nil {
		n.Anonymous()
	}
}

func (n NotifierFuncs) OnMessage(kind MessageKind, text string) {
	if n.Message != nil {
		n.Message(kind, text)
	}
}
