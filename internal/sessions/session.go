package sessions

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"faqbot/internal/domain"
)

// FeedbackWindow é quantos turnos recentes acompanham um feedback.
const FeedbackWindow = 5

// History é o histórico append-only de uma sessão. Turnos nunca são reordenados
// nem removidos.
type History struct {
	mu    sync.RWMutex
	id    string
	turns []domain.Turn
	now   func() time.Time
}

// Option configura um History.
type Option func(*History)

// WithClock troca a fonte de timestamps.
func WithClock(now func() time.Time) Option {
	return func(h *History) { h.now = now }
}

// WithID fixa o id da sessão.
func WithID(id string) Option {
	return func(h *History) { h.id = id }
}

// NewHistory cria um histórico vazio com um id novo.
func NewHistory(opts ...Option) *History {
	h := &History{id: uuid.NewString(), now: time.Now}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ID retorna o id da sessão.
func (h *History) ID() string { return h.id }

// Record acrescenta um turno com timestamp atual.
func (h *History) Record(role domain.Role, content string) domain.Turn {
	turn := domain.Turn{Role: role, Content: content, Timestamp: h.now()}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = append(h.turns, turn)
	return turn
}

// Turns retorna uma cópia de todos os turnos em ordem.
func (h *History) Turns() []domain.Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Turn(nil), h.turns...)
}

// Last retorna até n turnos mais recentes, do mais antigo para o mais novo.
func (h *History) Last(n int) []domain.Turn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if n <= 0 {
		return []domain.Turn{}
	}
	start := max(0, len(h.turns)-n)
	return append([]domain.Turn{}, h.turns[start:]...)
}

// Len retorna o número de turnos.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.turns)
}
