package userstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"

	userstore "github.com/waypointhub/waypoint/internal/app/store/users"
	"github.com/waypointhub/waypoint/internal/domain/models"
	"github.com/waypointhub/waypoint/internal/testutil"
)

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	created, err := store.Create(ctx, models.User{
		Email:        "Ana.Garcia@example.com",
		Name:         "Ana Garcia",
		PasswordHash: "x",
		Role:         models.RoleFacilitator,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID.IsZero() {
		t.Fatal("Create must assign an id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("Create must stamp timestamps")
	}

	got, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != "Ana.Garcia@example.com" {
		t.Errorf("Email: got %q", got.Email)
	}
	if got.Role != models.RoleFacilitator {
		t.Errorf("Role: got %q", got.Role)
	}
}

func TestGetByEmail_CaseInsensitive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{
		Email: "Mixed.Case@Example.COM",
		Name:  "Mixed Case",
		Role:  models.RoleFacilitator,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.GetByEmail(ctx, "mixed.case@example.com")
	if err != nil {
		t.Fatalf("GetByEmail lowercase: %v", err)
	}
	if got.Email != "Mixed.Case@Example.COM" {
		t.Errorf("original casing must be preserved, got %q", got.Email)
	}

	if _, err := store.GetByEmail(ctx, "MIXED.CASE@EXAMPLE.COM"); err != nil {
		t.Fatalf("GetByEmail uppercase: %v", err)
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)

	if _, err := store.Create(ctx, models.User{
		Email: "dup@example.com",
		Name:  "First",
		Role:  models.RoleFacilitator,
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err := store.Create(ctx, models.User{
		Email: "DUP@example.com", // differs only in case
		Name:  "Second",
		Role:  models.RoleFacilitator,
	})
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestGetByEmail_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store := userstore.New(db)
	_, err := store.GetByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, mongo.ErrNoDocuments) {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}
