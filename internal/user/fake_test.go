// AngelaMos | 2026
// fake_test.go

package user

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/househunt/go-backend/internal/core"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]*User
	clock time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		users: map[string]*User{},
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memRepo) Create(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.users {
		if existing.Email == u.Email {
			return ErrEmailTaken
		}
		if u.Phone != "" && existing.Phone == u.Phone {
			return ErrPhoneTaken
		}
	}
	u.CreatedAt = m.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memRepo) GetByEmail(_ context.Context, email string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (m *memRepo) FirstByRole(_ context.Context, role string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var first *User
	for _, u := range m.users {
		if u.Role == role && (first == nil || u.CreatedAt.Before(first.CreatedAt)) {
			first = u
		}
	}
	if first == nil {
		return nil, core.ErrNotFound
	}
	cp := *first
	return &cp, nil
}

func (m *memRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) UpdatePassword(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return core.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (m *memRepo) SetStatusIfMissing(_ context.Context, id, status string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if u, ok := m.users[id]; ok && u.Status == "" {
		u.Status = status
	}
	return nil
}

func (m *memRepo) ApproveOwner(_ context.Context, id string) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok || u.Role != RoleOwner {
		return nil, core.ErrNotFound
	}
	u.Status = StatusApproved
	u.UpdatedAt = m.tick()
	cp := *u
	return &cp, nil
}

func (m *memRepo) ListByRoleAndStatus(_ context.Context, role, status string) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []User{}
	for _, u := range m.users {
		if u.Role == role && u.Status == status {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memRepo) CountByRoleAndStatus(_ context.Context) ([]RoleStatusCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	counts := map[[2]string]int{}
	for _, u := range m.users {
		counts[[2]string{u.Role, u.Status}]++
	}
	out := make([]RoleStatusCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, RoleStatusCount{Role: k[0], Status: k[1], Count: n})
	}
	return out, nil
}

// insert stores u as-is, for records that predate registration rules.
func (m *memRepo) insert(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u.CreatedAt = m.tick()
	m.users[u.ID] = &u
}
