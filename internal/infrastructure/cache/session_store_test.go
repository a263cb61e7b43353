package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionStore(client), mr
}

func TestSessionStore_SaveAndLoad(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	session := Session{UserID: uuid.New(), Username: "asha", RoleID: 3, Role: "patient"}

	if err := store.Save(ctx, session, "acc-1", 15*time.Minute, "ref-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx, session.UserID, "acc-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || *got != session {
		t.Fatalf("expected %+v, got %+v", session, got)
	}

	if ttl := mr.TTL(AccessKey(session.UserID, "acc-1")); ttl != 15*time.Minute {
		t.Errorf("expected access ttl 15m, got %v", ttl)
	}
	if !mr.Exists(RefreshKey(session.UserID, "ref-1")) {
		t.Error("expected refresh marker")
	}
}

func TestSessionStore_LoadExpired(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	session := Session{UserID: uuid.New(), Username: "asha", RoleID: 3, Role: "patient"}

	if err := store.Save(ctx, session, "acc-1", time.Minute, "ref-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	got, err := store.Load(ctx, session.UserID, "acc-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got != nil {
		t.Fatalf("expected expired session, got %+v", got)
	}
}

func TestSessionStore_ConsumeRefreshOnce(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := store.Save(ctx, Session{UserID: userID}, "acc-1", time.Minute, "ref-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	ok, err := store.ConsumeRefresh(ctx, userID, "ref-1")
	if err != nil || !ok {
		t.Fatalf("expected first consume to succeed, got %v %v", ok, err)
	}
	ok, err = store.ConsumeRefresh(ctx, userID, "ref-1")
	if err != nil || ok {
		t.Fatalf("expected second consume to fail, got %v %v", ok, err)
	}
}

func TestSessionStore_Revoke(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()

	if err := store.Save(ctx, Session{UserID: userID}, "acc-1", time.Minute, "ref-1", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Revoke(ctx, userID, "acc-1", "ref-1"); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if mr.Exists(AccessKey(userID, "acc-1")) || mr.Exists(RefreshKey(userID, "ref-1")) {
		t.Error("expected keys to be removed")
	}
}

func TestSessionStore_RevokeAll(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()
	userID := uuid.New()
	other := uuid.New()

	for _, id := range []string{"a", "b"} {
		if err := store.Save(ctx, Session{UserID: userID}, "acc-"+id, time.Minute, "ref-"+id, time.Hour); err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	if err := store.Save(ctx, Session{UserID: other}, "acc-x", time.Minute, "ref-x", time.Hour); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.RevokeAll(ctx, userID); err != nil {
		t.Fatalf("revoke all: %v", err)
	}

	if mr.Exists(AccessKey(userID, "acc-a")) || mr.Exists(RefreshKey(userID, "ref-b")) {
		t.Error("expected user sessions to be removed")
	}
	if !mr.Exists(AccessKey(other, "acc-x")) {
		t.Error("expected other user's session to survive")
	}
}
