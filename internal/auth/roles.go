package auth

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"unicode"

	"github.com/couriersync/courier-backoffice/internal/domain"
)

// RoleSource lists the role table from the backing store.
type RoleSource interface {
	ListAll(ctx context.Context) ([]domain.Role, error)
}

// RoleDirectory is an in-memory snapshot of the role table, mapping role id to
// normalized role name. It is seeded once at startup and only changes when
// Refresh is called; lookups never touch the backing store. The snapshot may
// be stale until the next refresh.
type RoleDirectory struct {
	source RoleSource

	mu       sync.Mutex // serializes Load/Refresh
	snapshot atomic.Pointer[map[int]domain.RoleName]
}

// NewRoleDirectory builds an empty directory. Load must succeed before the
// authorization gate serves traffic.
func NewRoleDirectory(source RoleSource) *RoleDirectory {
	d := &RoleDirectory{source: source}
	empty := map[int]domain.RoleName{}
	d.snapshot.Store(&empty)
	return d
}

// Load fetches all roles, normalizes each name and replaces the mapping in a
// single atomic swap. Readers observe either the previous or the new snapshot,
// never a mix.
func (d *RoleDirectory) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	roles, err := d.source.ListAll(ctx)
	if err != nil {
		return err
	}

	next := make(map[int]domain.RoleName, len(roles))
	for _, role := range roles {
		next[role.ID] = Normalize(role.Name)
	}
	d.snapshot.Store(&next)
	return nil
}

// Refresh re-runs Load. Writers serialize among themselves; readers never block.
func (d *RoleDirectory) Refresh(ctx context.Context) error {
	return d.Load(ctx)
}

// Lookup returns the cached name for a role id, defaulting to ROLE_USER for
// unknown ids. It never fails and performs no I/O.
func (d *RoleDirectory) Lookup(roleID int) domain.RoleName {
	snapshot := *d.snapshot.Load()
	if name, ok := snapshot[roleID]; ok {
		return name
	}
	return domain.RoleUser
}

// Snapshot returns a copy of the current mapping. The copy is built from a
// single snapshot, so it never mixes entries from two refreshes.
func (d *RoleDirectory) Snapshot() map[int]domain.RoleName {
	snapshot := *d.snapshot.Load()
	out := make(map[int]domain.RoleName, len(snapshot))
	for id, name := range snapshot {
		out[id] = name
	}
	return out
}

// Normalize maps a raw role display name onto the closed ROLE_* set. It is a
// pure function and idempotent: feeding its output back in returns the same
// value.
func Normalize(raw string) domain.RoleName {
	name := strings.ToUpper(strings.TrimSpace(raw))
	name = strings.TrimPrefix(name, "ROLE_")
	name = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			return -1
		}
		return r
	}, name)

	if name == "" {
		return domain.RoleUser
	}

	switch {
	case strings.Contains(name, "ADMIN"):
		name = "ADMIN"
	case strings.Contains(name, "GESTOR") && strings.Contains(name, "RUTA"):
		name = "GESTORRUTA"
	case strings.Contains(name, "CONDUCTOR"):
		name = "CONDUCTOR"
	case strings.Contains(name, "AUDITOR"):
		name = "AUDITOR"
	}

	return domain.RoleName("ROLE_" + name)
}
