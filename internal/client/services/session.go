// Package services contains the application services of the idolcode
// client: the session store, authentication, the backend wake-up check,
// search-as-you-type and the dashboard loader.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/idolcode/internal/client/models"
	"github.com/dmitrijs2005/idolcode/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/idolcode/internal/common"
	"github.com/dmitrijs2005/idolcode/internal/logging"
)

// IdolSaver is the part of the backend the session needs: remembering the
// idol choice on the account.
type IdolSaver interface {
	SaveIdol(ctx context.Context, handle, idolHandle string) error
}

// idolSyncTimeout bounds each background idol sync.
const idolSyncTimeout = 15 * time.Second

// SessionStore owns the signed-in user and the selected idol. Both survive
// restarts through the metadata repository. An idol may be selected before
// anyone signs in.
//
// Reads and writes are safe for concurrent use; every mutation replaces the
// whole value.
type SessionStore struct {
	repo    metadata.Repository
	gateway IdolSaver
	logger  logging.Logger

	mu     sync.RWMutex
	user   *models.User
	idol   *models.Idol
	loaded bool

	tasks sync.WaitGroup
}

func NewSessionStore(repo metadata.Repository, gateway IdolSaver, logger logging.Logger) *SessionStore {
	return &SessionStore{repo: repo, gateway: gateway, logger: logger}
}

// Restore loads the persisted user and idol. The two keys are independent:
// a record that cannot be decoded is deleted and the other one is kept. A
// storage failure is logged and treated as no prior state. Restore always
// marks the store as loaded.
func (s *SessionStore) Restore(ctx context.Context) {
	var user models.User
	hasUser := s.restoreKey(ctx, common.UserStorageKey, &user)
	var idol models.Idol
	hasIdol := s.restoreKey(ctx, common.IdolStorageKey, &idol)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.user, s.idol = nil, nil
	if hasUser {
		s.user = &user
	}
	if hasIdol {
		s.idol = &idol
	}
	s.loaded = true
}

func (s *SessionStore) restoreKey(ctx context.Context, key string, dst any) bool {
	raw, err := s.repo.Get(ctx, key)
	if err != nil {
		s.logger.Warn(ctx, "session storage unreadable", "key", key, "error", err)
		return false
	}
	if raw == nil {
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.logger.Debug(ctx, "dropping corrupt session record", "key", key, "error", err)
		if err := s.repo.Delete(ctx, key); err != nil {
			s.logger.Warn(ctx, "failed to delete corrupt session record", "key", key, "error", err)
		}
		return false
	}
	return true
}

// Login makes handle the current user. profile is the backend's auth
// response; a non-empty "idol" in it also becomes the selected idol. Both
// records are written in one transaction before Login returns.
func (s *SessionStore) Login(ctx context.Context, handle string, profile map[string]any) error {
	user := models.NewUser(handle, profile)

	records := map[string]any{common.UserStorageKey: user}
	var idol *models.Idol
	if user.Idol != "" {
		idol = models.NewIdol(user.Idol, nil)
		records[common.IdolStorageKey] = idol
	}

	if err := s.persist(ctx, records); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	s.user = user
	if idol != nil {
		s.idol = idol
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "signed in", "handle", handle)
	return nil
}

// SelectIdol makes handle the current idol and persists it. When someone is
// signed in the choice is also sent to the backend in the background; a
// failure there is only logged and the local choice stands.
func (s *SessionStore) SelectIdol(ctx context.Context, handle string, info map[string]any) error {
	idol := models.NewIdol(handle, info)

	if err := s.persist(ctx, map[string]any{common.IdolStorageKey: idol}); err != nil {
		return fmt.Errorf("save idol: %w", err)
	}

	s.mu.Lock()
	s.idol = idol
	user := s.user
	s.mu.Unlock()

	if user != nil && s.gateway != nil {
		s.syncIdol(ctx, user.Handle, handle)
	}
	return nil
}

func (s *SessionStore) syncIdol(ctx context.Context, userHandle, idolHandle string) {
	s.tasks.Add(1)
	go func() {
		defer s.tasks.Done()

		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), idolSyncTimeout)
		defer cancel()

		if err := s.gateway.SaveIdol(ctx, userHandle, idolHandle); err != nil {
			s.logger.Warn(ctx, "failed to save idol on the server", "handle", userHandle, "idol", idolHandle, "error", err)
			return
		}
		s.logger.Debug(ctx, "idol saved on the server", "handle", userHandle, "idol", idolHandle)
	}()
}

// Logout forgets the user and the idol. Both records are removed in one
// transaction. Memory is cleared even if storage fails.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user, s.idol = nil, nil
	s.mu.Unlock()

	if err := s.repo.DeleteMany(ctx, common.UserStorageKey, common.IdolStorageKey); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.Info(ctx, "signed out")
	return nil
}

// Reset wipes every record in the local store, not just the session keys.
func (s *SessionStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	s.user, s.idol = nil, nil
	s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("reset local store: %w", err)
	}
	s.logger.Info(ctx, "local store reset")
	return nil
}

func (s *SessionStore) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *SessionStore) Idol() *models.Idol {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.idol
}

// Loaded reports whether Restore has finished.
func (s *SessionStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

func (s *SessionStore) IsAuthenticated() bool {
	return s.User() != nil
}

// Close waits for background idol syncs to finish.
func (s *SessionStore) Close() {
	s.tasks.Wait()
}

func (s *SessionStore) persist(ctx context.Context, records map[string]any) error {
	values := make(map[string][]byte, len(records))
	for k, v := range records {
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode %s: %w", k, err)
		}
		values[k] = b
	}
	return s.repo.SetMany(ctx, values)
}
