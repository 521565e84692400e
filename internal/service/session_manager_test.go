package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/salesops/so-ui-api/internal/domain/auth"
	"github.com/salesops/so-ui-api/internal/mocks"
)

// fakeStore is a hand-rolled SessionStore double with programmable behavior.
type fakeStore struct {
	saved    map[string]domainauth.Session
	idTokens map[string]string

	saveErr   error
	getErr    error
	deleteErr error

	saveCalls   int
	deleteCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		saved:    make(map[string]domainauth.Session),
		idTokens: make(map[string]string),
	}
}

var errStoreNotFound = errors.New("session not found")

func (f *fakeStore) Save(_ context.Context, sess domainauth.Session) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved[sess.ID] = sess
	return nil
}

func (f *fakeStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	if f.getErr != nil {
		return domainauth.Session{}, f.getErr
	}
	sess, ok := f.saved[id]
	if !ok {
		return domainauth.Session{}, errStoreNotFound
	}
	return sess, nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	f.deleteCalls++
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.saved, id)
	delete(f.idTokens, id)
	return nil
}

func (f *fakeStore) SaveIDToken(_ context.Context, id, raw string, _ time.Time) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.idTokens[id] = raw
	return nil
}

func (f *fakeStore) GetIDToken(_ context.Context, id string) (string, error) {
	raw, ok := f.idTokens[id]
	if !ok {
		return "", errStoreNotFound
	}
	return raw, nil
}

func managerSession(id string) domainauth.Session {
	return domainauth.Session{
		ID:        id,
		UserID:    "u1",
		Role:      domainauth.RoleSalesPerson,
		Token:     "oracle-auth-u1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func TestSessionManager_SetWritesThrough(t *testing.T) {
	store := newFakeStore()
	mgr := NewSessionManager(SessionManagerOptions{Store: store})
	ctx := context.Background()

	sess := managerSession("s1")
	require.NoError(t, mgr.Set(ctx, sess))

	// Memory and store both hold the session once Set returns.
	got, ok := mgr.Current(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, sess, got)
	assert.Equal(t, sess, store.saved["s1"])
}

func TestSessionManager_SetRejectsPartialSession(t *testing.T) {
	store := newFakeStore()
	mgr := NewSessionManager(SessionManagerOptions{Store: store})

	sess := managerSession("s1")
	sess.Token = ""

	err := mgr.Set(context.Background(), sess)
	assert.ErrorIs(t, err, domainauth.ErrPartialSession)
	assert.Zero(t, store.saveCalls)
}

func TestSessionManager_StorageFailureDoesNotFailLogin(t *testing.T) {
	store := newFakeStore()
	store.saveErr = errors.New("redis down")
	mgr := NewSessionManager(SessionManagerOptions{Store: store})
	ctx := context.Background()

	sess := managerSession("s1")
	require.NoError(t, mgr.Set(ctx, sess))

	// In-memory session stays authoritative.
	got, ok := mgr.Current(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, sess, got)
}

func TestSessionManager_CurrentHydratesFromStore(t *testing.T) {
	store := newFakeStore()
	sess := managerSession("s1")
	store.saved["s1"] = sess

	mgr := NewSessionManager(SessionManagerOptions{Store: store})

	got, ok := mgr.Current(context.Background(), "s1")
	require.True(t, ok)
	assert.Equal(t, sess, got)
}

func TestSessionManager_CurrentDropsCorruptStoredSession(t *testing.T) {
	store := newFakeStore()
	sess := managerSession("s1")
	sess.Token = "" // partial record planted directly in storage
	store.saved["s1"] = sess

	mgr := NewSessionManager(SessionManagerOptions{Store: store})

	_, ok := mgr.Current(context.Background(), "s1")
	assert.False(t, ok)
	assert.Equal(t, 1, store.deleteCalls)
}

func TestSessionManager_CurrentClearsExpired(t *testing.T) {
	store := newFakeStore()
	mgr := NewSessionManager(SessionManagerOptions{Store: store})
	ctx := context.Background()

	sess := managerSession("s1")
	require.NoError(t, mgr.Set(ctx, sess))

	// Age the in-memory copy past its expiry.
	mgr.mu.Lock()
	aged := mgr.sessions["s1"]
	aged.ExpiresAt = time.Now().Add(-time.Minute)
	mgr.sessions["s1"] = aged
	mgr.mu.Unlock()

	_, ok := mgr.Current(ctx, "s1")
	assert.False(t, ok)

	_, ok = mgr.Current(ctx, "s1")
	assert.False(t, ok, "expired session must stay gone")
}

func TestSessionManager_ObserversRunInSubscriptionOrder(t *testing.T) {
	mgr := NewSessionManager(SessionManagerOptions{Store: newFakeStore()})
	ctx := context.Background()

	var order []string
	mgr.Subscribe(func(_ context.Context, sess *domainauth.Session) {
		require.NotNil(t, sess)
		order = append(order, "first")
	})
	mgr.Subscribe(func(_ context.Context, _ *domainauth.Session) {
		order = append(order, "second")
	})

	require.NoError(t, mgr.Set(ctx, managerSession("s1")))
	assert.Equal(t, []string{"first", "second"}, order)

	order = nil
	mgr.Clear(ctx, "s1")
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSessionManager_ObserverSeesNilOnClear(t *testing.T) {
	mgr := NewSessionManager(SessionManagerOptions{Store: newFakeStore()})
	ctx := context.Background()

	var lastWasNil bool
	mgr.Subscribe(func(_ context.Context, sess *domainauth.Session) {
		lastWasNil = sess == nil
	})

	require.NoError(t, mgr.Set(ctx, managerSession("s1")))
	assert.False(t, lastWasNil)

	mgr.Clear(ctx, "s1")
	assert.True(t, lastWasNil)
}

func TestSessionManager_ClearIsIdempotent(t *testing.T) {
	store := newFakeStore()
	mgr := NewSessionManager(SessionManagerOptions{Store: store})
	ctx := context.Background()

	notifications := 0
	mgr.Subscribe(func(_ context.Context, _ *domainauth.Session) {
		notifications++
	})

	require.NoError(t, mgr.Set(ctx, managerSession("s1")))
	notifications = 0

	mgr.Clear(ctx, "s1")
	mgr.Clear(ctx, "s1")
	mgr.Clear(ctx, "s1")

	assert.Equal(t, 1, notifications, "only the first clear observes a change")
	_, ok := mgr.Current(ctx, "s1")
	assert.False(t, ok)
}

func TestSessionManager_StoreCallOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockSessionStore(ctrl)
	mgr := NewSessionManager(SessionManagerOptions{Store: store})
	ctx := context.Background()
	sess := managerSession("s1")

	// Set writes through before Clear deletes; the miss afterwards falls
	// back to the store exactly once.
	gomock.InOrder(
		store.EXPECT().Save(ctx, sess).Return(nil),
		store.EXPECT().Delete(ctx, "s1").Return(nil),
		store.EXPECT().Get(ctx, "s1").Return(domainauth.Session{}, errStoreNotFound),
	)

	require.NoError(t, mgr.Set(ctx, sess))
	mgr.Clear(ctx, "s1")

	_, ok := mgr.Current(ctx, "s1")
	assert.False(t, ok)
}

func TestSessionManager_IDTokenRoundTrip(t *testing.T) {
	store := newFakeStore()
	mgr := NewSessionManager(SessionManagerOptions{Store: store})
	ctx := context.Background()

	mgr.SaveIDToken(ctx, "s1", "raw.jwt", time.Now().Add(time.Hour))

	raw, ok := mgr.IDToken(ctx, "s1")
	require.True(t, ok)
	assert.Equal(t, "raw.jwt", raw)

	_, ok = mgr.IDToken(ctx, "missing")
	assert.False(t, ok)
}
