package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/bdauda29-ux/bdj-ledger/internal/model"
	"github.com/bdauda29-ux/bdj-ledger/pkg/redis"
)

var ErrNotFound = errors.New("session not found")

// Session is the server-side login state keyed by an opaque token. The
// selected tenant lives here so every request is already scoped.
type Session struct {
	Token    string           `json:"-"`
	UserID   int64            `json:"user_id"`
	Username string           `json:"username"`
	Perms    model.Permission `json:"perms"`
	TenantID int64            `json:"tenant_id"`
}

type Store struct {
	redis redis.Adapter
	ttl   time.Duration
}

func NewStore(adapter redis.Adapter, ttl time.Duration) *Store {
	return &Store{
		redis: adapter,
		ttl:   ttl,
	}
}

func key(token string) string {
	return fmt.Sprintf("session:%s", token)
}

// Create issues a fresh token for the user and stores the session.
func (s *Store) Create(user *model.User) (*Session, error) {
	sess := &Session{
		Token:    uuid.NewString(),
		UserID:   user.ID,
		Username: user.Username,
		Perms:    user.Perms,
	}
	if err := s.write(sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Get loads a session and slides its expiry.
func (s *Store) Get(token string) (*Session, error) {
	raw, err := s.redis.Get(key(token))
	if err != nil {
		if errors.Is(err, redis.NilError) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	sess := &Session{}
	if err := json.Unmarshal(raw, sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	sess.Token = token
	if err := s.redis.Expire(key(token), s.ttl); err != nil {
		return nil, err
	}
	return sess, nil
}

// Update rewrites the stored session, e.g. after selecting a tenant.
func (s *Store) Update(sess *Session) error {
	return s.write(sess)
}

func (s *Store) Delete(token string) error {
	return s.redis.Del(key(token))
}

func (s *Store) write(sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.redis.Set(key(sess.Token), raw, s.ttl)
}
