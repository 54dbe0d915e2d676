package categories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store for service and handler tests.
type memStore struct {
	mu    sync.Mutex
	items map[primitive.ObjectID]Category
	clock time.Time
	err   error
}

func newMemStore() *memStore {
	return &memStore{
		items: make(map[primitive.ObjectID]Category),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) List(_ context.Context) ([]Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Category, 0, len(m.items))
	for _, c := range m.items {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Create(_ context.Context, name string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	now := m.tick()
	c := Category{ID: primitive.NewObjectID(), Name: name, CreatedAt: now, UpdatedAt: now}
	m.items[c.ID] = c
	return &c, nil
}

func (m *memStore) Exists(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	_, ok := m.items[oid]
	return ok, m.err
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, patch Patch) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	c.Name = patch.Name
	c.UpdatedAt = m.tick()
	m.items[id] = c
	return &c, nil
}

func (m *memStore) Delete(_ context.Context, id primitive.ObjectID) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	if _, ok := m.items[id]; !ok {
		return false, nil
	}
	delete(m.items, id)
	return true, nil
}
