package engine

import (
	"sync"

	"github.com/strandworks/lumibot/internal/core"
)

type quizSession struct {
	index int
	score int
}

// QuizManager owns the ephemeral per-chat quiz progress. Sessions live in
// memory only and are lost on restart by design; the contact store is the
// only durable state in the bot.
type QuizManager struct {
	mu        sync.Mutex
	sessions  map[int64]*quizSession
	bank      []core.Question
	lowMax    int
	mediumMax int
}

func NewQuizManager(bank []core.Question, lowMax, mediumMax int) *QuizManager {
	return &QuizManager{
		sessions:  make(map[int64]*quizSession),
		bank:      bank,
		lowMax:    lowMax,
		mediumMax: mediumMax,
	}
}

// Start opens a fresh session at (0,0), discarding any stale one, and
// renders question 0. An empty bank resolves to an immediate result.
func (m *QuizManager) Start(chatID int64) core.Directive {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[chatID] = &quizSession{}
	return m.advanceLocked(chatID, true)
}

// Answer applies a scored answer. Only the answer for the session's current
// question index is accepted; anything else is a duplicate or out-of-order
// callback retry and acknowledged without touching progress. An answer with
// no live session reinitializes at question 0 and discards the answer.
func (m *QuizManager) Answer(chatID int64, index, delta int) core.Directive {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		m.sessions[chatID] = &quizSession{}
		return m.advanceLocked(chatID, false)
	}

	if index != s.index {
		return core.Ack{Reason: "stale quiz answer"}
	}

	s.index++
	s.score += delta
	return m.advanceLocked(chatID, false)
}

// Active reports whether a chat has a live session.
func (m *QuizManager) Active(chatID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[chatID]
	return ok
}

func (m *QuizManager) advanceLocked(chatID int64, withIntro bool) core.Directive {
	s := m.sessions[chatID]
	if s.index >= len(m.bank) {
		score := s.score
		delete(m.sessions, chatID)
		return core.ShowResult{Score: score, Band: m.band(score)}
	}
	return core.ShowQuestion{
		Index:     s.index,
		Total:     len(m.bank),
		Question:  m.bank[s.index],
		WithIntro: withIntro,
	}
}

func (m *QuizManager) band(score int) core.Band {
	switch {
	case score <= m.lowMax:
		return core.BandLow
	case score <= m.mediumMax:
		return core.BandMedium
	default:
		return core.BandHigh
	}
}
