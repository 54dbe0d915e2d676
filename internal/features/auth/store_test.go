package auth

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory IdentityStore.
type memStore struct {
	mu      sync.Mutex
	byID    map[primitive.ObjectID]*Identity
	err     error
	loseIDs bool
}

func newMemStore() *memStore {
	return &memStore{byID: make(map[primitive.ObjectID]*Identity)}
}

func (m *memStore) Upsert(_ context.Context, p Profile) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	if m.loseIDs {
		return &Identity{Username: p.Username}, nil
	}
	now := time.Now().UTC()
	for _, existing := range m.byID {
		if existing.Provider == p.Provider && existing.ProviderUserID == p.ProviderUserID {
			existing.Username = p.Username
			existing.Email = p.Email
			existing.AvatarURL = p.AvatarURL
			existing.UpdatedAt = now
			cp := *existing
			return &cp, nil
		}
	}
	identity := &Identity{
		ID:             primitive.NewObjectID(),
		Provider:       p.Provider,
		ProviderUserID: p.ProviderUserID,
		Username:       p.Username,
		Email:          p.Email,
		AvatarURL:      p.AvatarURL,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.byID[identity.ID] = identity
	cp := *identity
	return &cp, nil
}

func (m *memStore) FindByID(_ context.Context, id string) (*Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	identity, ok := m.byID[oid]
	if !ok {
		return nil, nil
	}
	cp := *identity
	return &cp, nil
}

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.byID)
}

// stubProvider is a Provider with canned answers.
type stubProvider struct {
	configured  bool
	exchangeErr error
	profile     *Profile
	profileErr  error
}

func (s *stubProvider) Configured() bool { return s.configured }

func (s *stubProvider) AuthorizeURL(state, challenge string) string {
	return "https://provider.test/authorize?state=" + state + "&code_challenge=" + challenge
}

func (s *stubProvider) Exchange(_ context.Context, _, _ string) (string, error) {
	if s.exchangeErr != nil {
		return "", s.exchangeErr
	}
	return "provider-token", nil
}

func (s *stubProvider) FetchProfile(_ context.Context, _ string) (*Profile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	p := *s.profile
	return &p, nil
}

// countingRecorder records failures per stage.
type countingRecorder struct {
	mu     sync.Mutex
	stages map[string]int
}

func newCountingRecorder() *countingRecorder {
	return &countingRecorder{stages: make(map[string]int)}
}

func (c *countingRecorder) OAuthFailure(stage string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stages[stage]++
}

func (c *countingRecorder) get(stage Stage) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stages[string(stage)]
}
