package session

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/denisAlshanov/vidgrab/internal/metrics"
	"github.com/denisAlshanov/vidgrab/internal/services/downloader"
	"github.com/denisAlshanov/vidgrab/internal/utils"
)

// OrchestratorFactory creates the private downloader of a new session.
type OrchestratorFactory func() (*downloader.Orchestrator, error)

// Store keeps sessions in memory and expires them after ttl of inactivity.
type Store struct {
	cache   *cache.Cache
	ttl     time.Duration
	factory OrchestratorFactory
}

func NewStore(ttl time.Duration, factory OrchestratorFactory) *Store {
	cleanup := ttl / 2
	if cleanup < time.Second {
		cleanup = time.Second
	}

	s := &Store{
		cache:   cache.New(ttl, cleanup),
		ttl:     ttl,
		factory: factory,
	}
	s.cache.OnEvicted(s.evicted)
	return s
}

// Create registers a new session under a random ID.
func (s *Store) Create() *Session {
	sess := newSession(uuid.New().String(), s.factory)
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
	metrics.ActiveSessions.Inc()

	utils.GetLogger().WithField("session_id", sess.ID).Debug("Session created")
	return sess
}

// Get returns the session and extends its expiry.
func (s *Store) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	value, found := s.cache.Get(id)
	if !found {
		return nil, false
	}
	sess, ok := value.(*Session)
	if !ok {
		return nil, false
	}
	s.Touch(sess)
	return sess, true
}

// Touch resets the expiry of sess.
func (s *Store) Touch(sess *Session) {
	sess.touch()
	s.cache.Set(sess.ID, sess, cache.DefaultExpiration)
}

// Delete removes the session and its work directory.
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

func (s *Store) Count() int {
	return s.cache.ItemCount()
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Close deletes every session, removing all work directories.
func (s *Store) Close() {
	for id := range s.cache.Items() {
		s.cache.Delete(id)
	}
}

func (s *Store) evicted(id string, value interface{}) {
	metrics.ActiveSessions.Dec()

	sess, ok := value.(*Session)
	if !ok {
		return
	}
	if err := sess.close(); err != nil {
		utils.GetLogger().WithError(err).WithField("session_id", id).Warn("Failed to remove session work directory")
		return
	}
	utils.GetLogger().WithField("session_id", id).Debug("Session expired")
}
