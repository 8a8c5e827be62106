package core

// Directive is a tagged render instruction returned by the engine. The
// transport turns it into actual messages, keyboards and documents; the
// engine never produces user-facing text itself.
type Directive interface {
	directive()
}

// ShowContent renders a catalog page plus its keyboard.
type ShowContent struct {
	Key      string
	Keyboard string
}

// ShowQuestion renders quiz question Index of Total. WithIntro asks the
// transport to send the quiz intro text first (fresh start at question 0).
type ShowQuestion struct {
	Index     int
	Total     int
	Question  Question
	WithIntro bool
}

// ShowResult renders the final quiz outcome.
type ShowResult struct {
	Score int
	Band  Band
}

// ForwardToOperator carries the marker-embedded text for the operator chat
// and the acknowledgment page key for the asking user.
type ForwardToOperator struct {
	OperatorText string
	AckKey       string
}

// DeliverReply sends the operator's reply text to the resolved chat.
type DeliverReply struct {
	ChatID int64
	Text   string
}

// ShowFallback is the generic answer for free text outside relay mode.
type ShowFallback struct{}

// Ack acknowledges an event with no user-visible effect: stale quiz answers,
// malformed payloads, unroutable operator replies.
type Ack struct {
	Reason string
}

func (ShowContent) directive()       {}
func (ShowQuestion) directive()      {}
func (ShowResult) directive()        {}
func (ForwardToOperator) directive() {}
func (DeliverReply) directive()      {}
func (ShowFallback) directive()      {}
func (Ack) directive()               {}
