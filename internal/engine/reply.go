package engine

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/strandworks/lumibot/internal/core"
)

// The marker is a wire contract: Compose embeds it into the forwarded text
// and Route parses it back out of the same text when the operator replies in
// thread. Changing the format breaks routing for every message already
// forwarded, so both sides live in this file and nowhere else.
const markerLabel = "ID:"

var markerPattern = regexp.MustCompile(markerLabel + `\s*(\d+)`)

// ReplyRouter resolves the destination chat of an operator reply from the
// marker inside the originally forwarded text. Stateless and best-effort:
// no mapping is persisted, correctness rides on the transport preserving
// the reply-to link and the forwarded text staying unmodified.
type ReplyRouter struct{}

func NewReplyRouter() *ReplyRouter {
	return &ReplyRouter{}
}

// Compose builds the operator-facing text for a relayed question.
func (r *ReplyRouter) Compose(chatID int64, profile core.Profile, text string) string {
	var b strings.Builder
	b.WriteString(profile.FirstName)
	if profile.Username != "" {
		fmt.Fprintf(&b, " (@%s)", profile.Username)
	}
	fmt.Fprintf(&b, "\n%s %d\n\n%s", markerLabel, chatID, text)
	return b.String()
}

// Route extracts the destination chat id from the forwarded text the
// operator replied to. Returns core.ErrReplyNotFound when no marker is
// present or the digits do not fit a chat id.
func (r *ReplyRouter) Route(replySource string) (int64, error) {
	m := markerPattern.FindStringSubmatch(replySource)
	if m == nil {
		return 0, core.ErrReplyNotFound
	}
	id, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return 0, core.ErrReplyNotFound
	}
	return id, nil
}
