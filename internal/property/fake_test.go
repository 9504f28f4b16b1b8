// AngelaMos | 2026
// fake_test.go

package property

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/househunt/go-backend/internal/core"
	"github.com/househunt/go-backend/internal/media"
)

type memRepo struct {
	mu     sync.Mutex
	props  map[string]*Property
	order  []string
	owners map[string][2]string
	lists  int

	createErr error
}

func newMemRepo() *memRepo {
	return &memRepo{
		props:  map[string]*Property{},
		owners: map[string][2]string{},
	}
}

func (m *memRepo) Create(_ context.Context, p *Property) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.createErr != nil {
		return m.createErr
	}

	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	m.props[p.ID] = &cp
	m.order = append(m.order, p.ID)
	return nil
}

func (m *memRepo) GetByID(_ context.Context, id string) (*Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.props[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) List(_ context.Context) ([]Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists++
	out := []Property{}
	for _, id := range m.order {
		if p, ok := m.props[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) ListWithOwners(ctx context.Context) ([]Listing, error) {
	props, _ := m.List(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Listing, 0, len(props))
	for _, p := range props {
		l := Listing{Property: p}
		if owner, ok := m.owners[p.OwnerID]; ok {
			l.OwnerName = sql.NullString{String: owner[0], Valid: true}
			l.OwnerEmail = sql.NullString{String: owner[1], Valid: true}
		}
		out = append(out, l)
	}
	return out, nil
}

func (m *memRepo) ListByOwner(_ context.Context, ownerID string) ([]Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Property{}
	for _, id := range m.order {
		if p, ok := m.props[id]; ok && p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memRepo) UpdateOwned(_ context.Context, id, ownerID string, patch Patch) (*Property, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.props[id]
	if !ok || p.OwnerID != ownerID {
		return nil, core.ErrNotFound
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Rent != nil {
		p.Rent = *patch.Rent
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = patch.Bedrooms
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = patch.Bathrooms
	}
	if patch.Size != nil {
		p.Size = patch.Size
	}
	if patch.Furnished != nil {
		p.Furnished = *patch.Furnished
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.ImageURL != nil {
		p.ImageURL = *patch.ImageURL
	}
	p.UpdatedAt = time.Now()

	cp := *p
	return &cp, nil
}

func (m *memRepo) DeleteOwned(_ context.Context, id, ownerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.props[id]
	if !ok || p.OwnerID != ownerID {
		return core.ErrNotFound
	}
	delete(m.props, id)
	return nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.props), nil
}

func (m *memRepo) DeleteAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.props))
	m.props = map[string]*Property{}
	m.order = nil
	return n, nil
}

type memCache struct {
	list        []Property
	listings    []Listing
	invalidated int
}

func (c *memCache) GetList(context.Context) ([]Property, bool) {
	return c.list, c.list != nil
}

func (c *memCache) SetList(_ context.Context, props []Property) {
	c.list = props
}

func (c *memCache) GetListings(context.Context) ([]Listing, bool) {
	return c.listings, c.listings != nil
}

func (c *memCache) SetListings(_ context.Context, listings []Listing) {
	c.listings = listings
}

func (c *memCache) Invalidate(context.Context) {
	c.list, c.listings = nil, nil
	c.invalidated++
}

type stubImages struct {
	url     string
	err     error
	removed *[]string
}

func (s stubImages) Ingest(context.Context, media.Upload) (string, error) {
	return s.url, s.err
}

func (s stubImages) Remove(url string) error {
	if s.removed != nil {
		*s.removed = append(*s.removed, url)
	}
	return nil
}
