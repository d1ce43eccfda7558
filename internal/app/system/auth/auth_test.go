package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/domain/models"
)

func newManager(t *testing.T, ttl time.Duration) *auth.Manager {
	t.Helper()
	m, err := auth.NewManager("test-signing-key-0123456789", ttl, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return m
}

func youthUser() models.User {
	groupID := primitive.NewObjectID()
	facID := primitive.NewObjectID()
	return models.User{
		ID:            primitive.NewObjectID(),
		Role:          models.RoleYouth,
		GroupID:       &groupID,
		FacilitatorID: &facID,
	}
}

func TestNewManager_EmptySecret(t *testing.T) {
	if _, err := auth.NewManager("  ", time.Hour, zap.NewNop()); err == nil {
		t.Fatal("expected error for empty signing key")
	}
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	m := newManager(t, time.Hour)
	u := youthUser()

	token, err := m.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	p, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if p.ID != u.ID.Hex() {
		t.Errorf("ID: got %q, want %q", p.ID, u.ID.Hex())
	}
	if p.Role != models.RoleYouth {
		t.Errorf("Role: got %q, want youth", p.Role)
	}
	if p.GroupID != u.GroupID.Hex() {
		t.Errorf("GroupID: got %q, want %q", p.GroupID, u.GroupID.Hex())
	}
	if p.FacilitatorID != u.FacilitatorID.Hex() {
		t.Errorf("FacilitatorID: got %q, want %q", p.FacilitatorID, u.FacilitatorID.Hex())
	}
}

func TestVerify_Expired(t *testing.T) {
	m := newManager(t, time.Nanosecond)
	token, err := m.Issue(youthUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := m.Verify(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestVerify_WrongKey(t *testing.T) {
	m := newManager(t, time.Hour)
	token, err := m.Issue(youthUser())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	other, err := auth.NewManager("a-different-signing-key", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	if _, err := other.Verify(token); err == nil {
		t.Fatal("expected token signed with another key to be rejected")
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := newManager(t, time.Hour)
	if _, err := m.Verify("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}

func TestLoadPrincipal_ValidToken(t *testing.T) {
	m := newManager(t, time.Hour)
	u := youthUser()
	token, err := m.Issue(u)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	var got *auth.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentPrincipal(r)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	m.LoadPrincipal(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("principal not loaded into context")
	}
	if got.ID != u.ID.Hex() {
		t.Errorf("ID: got %q, want %q", got.ID, u.ID.Hex())
	}
}

func TestLoadPrincipal_InvalidTokenContinuesUnauthenticated(t *testing.T) {
	m := newManager(t, time.Hour)

	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		if _, ok := auth.CurrentPrincipal(r); ok {
			t.Error("invalid token must not yield a principal")
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	m.LoadPrincipal(next).ServeHTTP(httptest.NewRecorder(), req)

	if !called {
		t.Fatal("next handler should still run")
	}
}

func TestRequireSignedIn(t *testing.T) {
	m := newManager(t, time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	m.RequireSignedIn(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("anonymous request: got %d, want 401", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := auth.WithTestPrincipal(httptest.NewRequest(http.MethodGet, "/", nil), &auth.Principal{
		ID:   primitive.NewObjectID().Hex(),
		Role: models.RoleYouth,
	})
	m.RequireSignedIn(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("authenticated request: got %d, want 200", rec.Code)
	}
}
