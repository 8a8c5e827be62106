package engine

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/strandworks/lumibot/internal/content"
	"github.com/strandworks/lumibot/internal/core"
)

type upsertCall struct {
	chatID  int64
	profile core.Profile
	command string
	phone   string
}

type mockContacts struct {
	mu        sync.Mutex
	calls     []upsertCall
	upsertErr error
}

func (m *mockContacts) Upsert(ctx context.Context, chatID int64, profile core.Profile, command, phone string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.calls = append(m.calls, upsertCall{chatID: chatID, profile: profile, command: command, phone: phone})
	return nil
}

func (m *mockContacts) Get(ctx context.Context, chatID int64) (*core.Contact, error) {
	return nil, nil
}

func (m *mockContacts) lastCall(t *testing.T) upsertCall {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		t.Fatal("no upsert recorded")
	}
	return m.calls[len(m.calls)-1]
}

func newTestEngine(contacts *mockContacts) *Engine {
	quiz := NewQuizManager(sixQuestionBank(), 3, 7)
	return New(contacts, quiz, NewRelayTracker())
}

func TestEngine_OnStart(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()

	// Pre-existing relay mode must be reset by /start.
	e.relay.Enter(42)

	d, err := e.OnStart(ctx, 42, core.Profile{FirstName: "Anna"})
	if err != nil {
		t.Fatalf("OnStart failed: %v", err)
	}
	sc, ok := d.(core.ShowContent)
	if !ok || sc.Key != content.KeyStart || sc.Keyboard != content.KbStart {
		t.Errorf("directive = %+v, want start page with start keyboard", d)
	}
	if call := contacts.lastCall(t); call.command != content.KeyStart || call.chatID != 42 {
		t.Errorf("upsert = %+v, want command=start chat=42", call)
	}
	if e.relay.Active(42) {
		t.Error("relay mode must be cleared by /start")
	}
}

func TestEngine_OnStart_StorageFault(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{upsertErr: errors.New("disk gone")}
	e := newTestEngine(contacts)

	d, err := e.OnStart(context.Background(), 42, core.Profile{})
	if err == nil {
		t.Fatal("expected storage error to surface")
	}
	if d != nil {
		t.Errorf("directive = %+v, want nil on aborted event", d)
	}
}

func TestEngine_OnMenuSelect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		label     string
		wantRelay bool
		wantKb    string
	}{
		{name: "client_menu", label: content.KeyClient, wantKb: content.KbClient},
		{name: "service_page", label: content.KeyKeratin, wantKb: content.KbServicePage},
		{name: "consultation_enters_relay", label: content.KeyConsulting, wantRelay: true},
		{name: "contacts_links", label: content.KeyContacts, wantKb: content.KbContacts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contacts := &mockContacts{}
			e := newTestEngine(contacts)
			ctx := context.Background()

			d, err := e.OnMenuSelect(ctx, 42, core.Profile{FirstName: "Anna"}, tt.label)
			if err != nil {
				t.Fatalf("OnMenuSelect failed: %v", err)
			}
			sc, ok := d.(core.ShowContent)
			if !ok || sc.Key != tt.label || sc.Keyboard != tt.wantKb {
				t.Errorf("directive = %+v, want content %q keyboard %q", d, tt.label, tt.wantKb)
			}
			if call := contacts.lastCall(t); call.command != tt.label {
				t.Errorf("audited command = %q, want %q", call.command, tt.label)
			}
			if e.relay.Active(42) != tt.wantRelay {
				t.Errorf("relay active = %v, want %v", e.relay.Active(42), tt.wantRelay)
			}
		})
	}
}

func TestEngine_OnMenuSelect_LeavesRelayMode(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()

	if _, err := e.OnMenuSelect(ctx, 42, core.Profile{}, content.KeyConsulting); err != nil {
		t.Fatalf("OnMenuSelect failed: %v", err)
	}
	if !e.relay.Active(42) {
		t.Fatal("consultation should enter relay mode")
	}

	if _, err := e.OnMenuSelect(ctx, 42, core.Profile{}, content.KeyPrice); err != nil {
		t.Fatalf("OnMenuSelect failed: %v", err)
	}
	if e.relay.Active(42) {
		t.Error("any ordinary selection should leave relay mode")
	}
}

func TestEngine_OnMenuSelect_UnknownLabelDropped(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)

	d, err := e.OnMenuSelect(context.Background(), 42, core.Profile{}, "no_such_page")
	if err != nil {
		t.Fatalf("OnMenuSelect failed: %v", err)
	}
	if _, ok := d.(core.Ack); !ok {
		t.Errorf("directive = %T, want Ack for unknown label", d)
	}
	contacts.mu.Lock()
	defer contacts.mu.Unlock()
	if len(contacts.calls) != 0 {
		t.Error("unknown selection must not be audited")
	}
}

func TestEngine_OnQuizStart(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()

	e.relay.Enter(42)

	d, err := e.OnQuizStart(ctx, 42, core.Profile{FirstName: "Anna"})
	if err != nil {
		t.Fatalf("OnQuizStart failed: %v", err)
	}
	q, ok := d.(core.ShowQuestion)
	if !ok || q.Index != 0 || !q.WithIntro {
		t.Errorf("directive = %+v, want intro question 0", d)
	}
	if e.relay.Active(42) {
		t.Error("starting the quiz must leave relay mode")
	}
	if call := contacts.lastCall(t); call.command != content.KeyQuiz {
		t.Errorf("audited command = %q, want %q", call.command, content.KeyQuiz)
	}
}

func TestEngine_QuizFlowEndToEnd(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()

	if _, err := e.OnQuizStart(ctx, 42, core.Profile{}); err != nil {
		t.Fatalf("OnQuizStart failed: %v", err)
	}

	var last core.Directive
	for i := 0; i < 6; i++ {
		var err error
		last, err = e.OnQuizAnswer(ctx, 42, i, 1)
		if err != nil {
			t.Fatalf("OnQuizAnswer %d failed: %v", i, err)
		}
		// Duplicate delivery of the same callback.
		dup, err := e.OnQuizAnswer(ctx, 42, i, 1)
		if err != nil {
			t.Fatalf("duplicate OnQuizAnswer %d failed: %v", i, err)
		}
		if i < 5 {
			if _, ok := dup.(core.Ack); !ok {
				t.Errorf("duplicate answer %d directive = %T, want Ack", i, dup)
			}
		}
	}

	r, ok := last.(core.ShowResult)
	if !ok {
		t.Fatalf("final directive = %T, want ShowResult", last)
	}
	if r.Score != 6 || r.Band != core.BandMedium {
		t.Errorf("result = %+v, want score 6 band medium", r)
	}
}

func TestEngine_OnFreeText_RelayExclusivity(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()
	profile := core.Profile{FirstName: "Anna", Username: "annak"}

	// Outside relay mode: fallback only.
	d, err := e.OnFreeText(ctx, 42, profile, "hello?")
	if err != nil {
		t.Fatalf("OnFreeText failed: %v", err)
	}
	if _, ok := d.(core.ShowFallback); !ok {
		t.Errorf("directive = %T, want ShowFallback outside relay mode", d)
	}

	// Inside relay mode: forward only, never fallback for the same event.
	e.relay.Enter(42)
	d, err = e.OnFreeText(ctx, 42, profile, "my hair question")
	if err != nil {
		t.Fatalf("OnFreeText failed: %v", err)
	}
	fwd, ok := d.(core.ForwardToOperator)
	if !ok {
		t.Fatalf("directive = %T, want ForwardToOperator in relay mode", d)
	}
	if !strings.Contains(fwd.OperatorText, "ID: 42") {
		t.Errorf("forwarded text %q missing routing marker", fwd.OperatorText)
	}
	if !strings.Contains(fwd.OperatorText, "my hair question") {
		t.Errorf("forwarded text %q missing original question", fwd.OperatorText)
	}
	if fwd.AckKey != content.KeyConsultAck {
		t.Errorf("ack key = %q, want %q", fwd.AckKey, content.KeyConsultAck)
	}

	// Free text upserts without a command label.
	if call := contacts.lastCall(t); call.command != "" {
		t.Errorf("free text audited command %q, want empty", call.command)
	}
}

func TestEngine_OnContact(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)

	d, err := e.OnContact(context.Background(), 42, core.Profile{FirstName: "Anna"}, "+1000")
	if err != nil {
		t.Fatalf("OnContact failed: %v", err)
	}
	if sc, ok := d.(core.ShowContent); !ok || sc.Key != content.KeyContactAck {
		t.Errorf("directive = %+v, want contact acknowledgment", d)
	}
	if call := contacts.lastCall(t); call.phone != "+1000" {
		t.Errorf("upserted phone = %q, want +1000", call.phone)
	}
}

func TestEngine_OnOperatorReply(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()

	tests := []struct {
		name       string
		source     string
		wantChatID int64
		wantDrop   bool
	}{
		{
			name:       "routes_marker",
			source:     "Anna (@annak)\nID: 777\n\nquestion text",
			wantChatID: 777,
		},
		{
			name:     "no_marker_drops",
			source:   "operator replied to something else",
			wantDrop: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := e.OnOperatorReply(ctx, tt.source, "use a milder shampoo")
			if err != nil {
				t.Fatalf("OnOperatorReply failed: %v", err)
			}
			if tt.wantDrop {
				if _, ok := d.(core.Ack); !ok {
					t.Errorf("directive = %T, want Ack (drop)", d)
				}
				return
			}
			dr, ok := d.(core.DeliverReply)
			if !ok {
				t.Fatalf("directive = %T, want DeliverReply", d)
			}
			if dr.ChatID != tt.wantChatID || dr.Text != "use a milder shampoo" {
				t.Errorf("delivery = %+v, want chat %d with reply text", dr, tt.wantChatID)
			}
		})
	}
}

func TestEngine_ConcurrentEventsAcrossChats(t *testing.T) {
	t.Parallel()
	contacts := &mockContacts{}
	e := newTestEngine(contacts)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			if _, err := e.OnStart(ctx, id, core.Profile{}); err != nil {
				t.Errorf("OnStart(%d): %v", id, err)
			}
			if _, err := e.OnQuizStart(ctx, id, core.Profile{}); err != nil {
				t.Errorf("OnQuizStart(%d): %v", id, err)
			}
			for q := 0; q < 6; q++ {
				if _, err := e.OnQuizAnswer(ctx, id, q, 1); err != nil {
					t.Errorf("OnQuizAnswer(%d, %d): %v", id, q, err)
				}
			}
		}(int64(i + 1))
	}
	wg.Wait()
}
