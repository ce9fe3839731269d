package session

import (
	"errors"
	"github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"
	"mediscreen.com/prescreen/logger"
	"mediscreen.com/prescreen/screening"
	"mediscreen.com/prescreen/types"
	"sync"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

type Config struct {
	TTL             time.Duration `envconfig:"PRESCREEN_SESSION_TTL" default:"30m"`
	CleanupInterval time.Duration `envconfig:"PRESCREEN_SESSION_CLEANUP_INTERVAL" default:"5m"`
}

// Session is one live call. Turns are serialized so webhook retries for the
// same call cannot interleave.
type Session struct {
	CallSid   string
	From      string
	StartedAt time.Time

	mu           sync.Mutex
	conversation *screening.Conversation
}

type Turn struct {
	Reply     string
	Outcome   screening.TurnOutcome
	Concluded bool
}

func (s *Session) Start() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.Start()
}

func (s *Session) Submit(utterance string) Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	reply := s.conversation.Submit(utterance)
	return Turn{
		Reply:     reply,
		Outcome:   s.conversation.LastOutcome(),
		Concluded: s.conversation.Concluded(),
	}
}

func (s *Session) Summary() types.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversation.Summary()
}

func (s *Session) Duration(now time.Time) time.Duration {
	return now.Sub(s.StartedAt)
}

type ConversationFactory func() *screening.Conversation

// Registry keys live sessions by call identifier. Idle sessions expire
// after the configured TTL.
type Registry struct {
	sessions        *cache.Cache
	newConversation ConversationFactory
	logger          zerolog.Logger
	now             func() time.Time
}

func NewRegistry(cfg Config, factory ConversationFactory) *Registry {
	r := &Registry{
		sessions:        cache.New(cfg.TTL, cfg.CleanupInterval),
		newConversation: factory,
		logger:          logger.NewLogger("Session Registry"),
		now:             time.Now,
	}
	r.sessions.OnEvicted(func(callSid string, _ interface{}) {
		r.logger.Debug().Str("call_sid", callSid).Msg("session dropped")
	})
	return r
}

// Create starts a fresh session, replacing any session already held for
// the same call.
func (r *Registry) Create(callSid string, from string) *Session {
	if _, found := r.sessions.Get(callSid); found {
		r.logger.Warn().Str("call_sid", callSid).Msg("replacing existing session")
	}
	s := &Session{
		CallSid:      callSid,
		From:         from,
		StartedAt:    r.now(),
		conversation: r.newConversation(),
	}
	r.sessions.SetDefault(callSid, s)
	return s
}

// Get returns the session and extends its expiration.
func (r *Registry) Get(callSid string) (*Session, error) {
	v, found := r.sessions.Get(callSid)
	if !found {
		return nil, ErrSessionNotFound
	}
	s := v.(*Session)
	r.sessions.SetDefault(callSid, s)
	return s, nil
}

func (r *Registry) Remove(callSid string) {
	r.sessions.Delete(callSid)
}

func (r *Registry) Count() int {
	return r.sessions.ItemCount()
}
