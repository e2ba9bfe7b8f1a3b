package encounter

import (
	"context"
	"sync"
	"time"
)

// Manager serializes encounters per user and enforces the catch
// cooldown. Each user holds at most one in-flight encounter; the lock
// expires on its own so a crashed handler cannot wedge a user forever.
type Manager struct {
	activeLocks    sync.Map // userID -> lock expiry
	cooldowns      sync.Map // userID -> next allowed encounter
	cooldownPeriod time.Duration
	lockDuration   time.Duration
}

func NewManager(cooldownPeriod time.Duration) *Manager {
	return &Manager{
		cooldownPeriod: cooldownPeriod,
		lockDuration:   30 * time.Second,
	}
}

// CanEncounter reports whether the user is off cooldown, and the wait
// remaining otherwise. Exempt callers (premium collectors, official
// guilds) skip the cooldown entirely.
func (m *Manager) CanEncounter(userID string, exempt bool) (bool, time.Duration) {
	if exempt {
		return true, 0
	}
	if cooldown, exists := m.cooldowns.Load(userID); exists {
		next := cooldown.(time.Time)
		if time.Now().Before(next) {
			return false, time.Until(next)
		}
	}
	return true, 0
}

// Lock claims the user's encounter slot. It returns false when another
// encounter for the same user is still resolving.
func (m *Manager) Lock(userID string) bool {
	now := time.Now()
	expiry := now.Add(m.lockDuration)

	for {
		existing, loaded := m.activeLocks.LoadOrStore(userID, expiry)
		if !loaded {
			return true
		}
		// A stale lock from a dead handler can be stolen.
		if now.After(existing.(time.Time)) {
			if m.activeLocks.CompareAndSwap(userID, existing, expiry) {
				return true
			}
			continue
		}
		return false
	}
}

func (m *Manager) Release(userID string) {
	m.activeLocks.Delete(userID)
}

// SetCooldown starts the user's cooldown clock after a resolved catch.
func (m *Manager) SetCooldown(userID string) {
	m.cooldowns.Store(userID, time.Now().Add(m.cooldownPeriod))
}

func (m *Manager) cleanupExpired() {
	now := time.Now()

	m.activeLocks.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			m.activeLocks.Delete(key)
		}
		return true
	})

	m.cooldowns.Range(func(key, value interface{}) bool {
		if now.After(value.(time.Time)) {
			m.cooldowns.Delete(key)
		}
		return true
	})
}

// StartCleanupRoutine sweeps expired locks and cooldowns until the
// context is cancelled.
func (m *Manager) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.cleanupExpired()
			}
		}
	}()
}
