package dashboard

import (
	"errors"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrOutOfStock        = errors.New("product is out of stock")
)

const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Stat is one summary tile on a dashboard
type Stat struct {
	Label string `json:"label"`
	Value any    `json:"value"`
	Icon  string `json:"icon"`
}

// View is the rendered model of a dashboard or status page
type View struct {
	Role    string `json:"role"`
	Title   string `json:"title"`
	Message string `json:"message,omitempty"`
	Stats   []Stat `json:"stats,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Translate resolves a message key in the caller's language
type Translate func(key string) string

// idSource hands out millisecond ids that never repeat
type idSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func (s *idSource) next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
