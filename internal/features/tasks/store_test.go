package tasks

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
	items map[primitive.ObjectID]Task
	clock time.Time
	err   error
}

func newMemStore() *memStore {
	return &memStore{
		items: make(map[primitive.ObjectID]Task),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) List(_ context.Context, filter Filter) ([]Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := make([]Task, 0, len(m.items))
	for _, t := range m.items {
		if filter.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *filter.CategoryID) {
			continue
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memStore) Create(_ context.Context, in NewTask) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	now := m.tick()
	t := Task{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		Description: in.Description,
		IsCompleted: in.IsCompleted,
		CategoryID:  in.CategoryID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.items[t.ID] = t
	return &t, nil
}

func (m *memStore) Update(_ context.Context, id primitive.ObjectID, patch Patch) (*Task, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	t, ok := m.items[id]
	if !ok {
		return nil, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.IsCompleted != nil {
		t.IsCompleted = *patch.IsCompleted
	}
	switch {
	case patch.UnsetCategory:
		t.CategoryID = nil
	case patch.CategoryID != nil:
		c := *patch.CategoryID
		t.CategoryID = &c
	}
	t.UpdatedAt = m.tick()
	m.items[id] = t
	return &t, nil
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

// categorySet answers Exists from a fixed set of ids.
type categorySet struct {
	mu    sync.Mutex
	ids   map[string]bool
	calls int
	err   error
}

func newCategorySet(ids ...primitive.ObjectID) *categorySet {
	s := &categorySet{ids: make(map[string]bool)}
	for _, id := range ids {
		s.ids[id.Hex()] = true
	}
	return s
}

func (s *categorySet) Exists(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return false, s.err
	}
	return s.ids[id], nil
}

func (s *categorySet) remove(id primitive.ObjectID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id.Hex())
}
