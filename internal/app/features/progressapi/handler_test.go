package progressapi_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/waypointhub/waypoint/internal/app/features/progressapi"
	progressstore "github.com/waypointhub/waypoint/internal/app/store/progress"
	"github.com/waypointhub/waypoint/internal/app/system/auth"
	"github.com/waypointhub/waypoint/internal/testutil"
)

func newHandler(t *testing.T) (*progressapi.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mgr, err := auth.NewManager("test-signing-key", time.Hour, zap.NewNop())
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}
	return progressapi.NewHandler(db, mgr, zap.NewNop()), testutil.NewFixtures(t, db)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestUpsertModule(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/modules/intro",
		strings.NewReader(`{"score": 85, "done": true, "data": {"attempts": 2}}`),
		testutil.YouthPrincipal(youth))
	req = testutil.WithChiURLParam(req, "moduleID", "intro")

	rec := httptest.NewRecorder()
	h.HandleUpsertModule(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["ok"] != true {
		t.Errorf("ok flag: %v", body["ok"])
	}
	prog, _ := body["progress"].(map[string]any)
	if prog == nil {
		t.Fatal("missing progress in response")
	}
	if got := prog["overallScore"]; got != float64(85) {
		t.Errorf("overallScore: got %v, want 85", got)
	}
}

func TestUpsertModule_FacilitatorDenied(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")

	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/modules/intro",
		strings.NewReader(`{"score": 85}`), testutil.FacilitatorPrincipal(fac))
	req = testutil.WithChiURLParam(req, "moduleID", "intro")

	rec := httptest.NewRecorder()
	h.HandleUpsertModule(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestUpsertModule_ScoreOutOfRange(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodPut, "/modules/intro",
		strings.NewReader(`{"score": 101}`), testutil.YouthPrincipal(youth))
	req = testutil.WithChiURLParam(req, "moduleID", "intro")

	rec := httptest.NewRecorder()
	h.HandleUpsertModule(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestYouthProgress_SelfRead(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)

	score := 70.0
	if _, err := h.Progress.UpsertModule(ctx, youth.ID, "intro", progressstore.ModuleUpdate{Score: &score}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/youth/"+youth.ID.Hex(), nil, testutil.YouthPrincipal(youth))
	req = testutil.WithChiURLParam(req, "youthID", youth.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeYouthProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	rows, _ := body["progress"].([]any)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0].(map[string]any)
	if row["moduleId"] != "intro" || row["score"] != float64(70) {
		t.Errorf("row: %v", row)
	}
}

func TestYouthProgress_EmptyList(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/youth/"+youth.ID.Hex(), nil, testutil.YouthPrincipal(youth))
	req = testutil.WithChiURLParam(req, "youthID", youth.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeYouthProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200 for a youth with no progress yet", rec.Code)
	}
	body := decodeBody(t, rec)
	rows, ok := body["progress"].([]any)
	if !ok || len(rows) != 0 {
		t.Errorf("progress: got %v, want empty list", body["progress"])
	}
}

func TestYouthProgress_CrossYouthDenied(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)
	other := f.CreateYouth(ctx, "Other", "o@example.com", g.ID, fac.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/youth/"+other.ID.Hex(), nil, testutil.YouthPrincipal(youth))
	req = testutil.WithChiURLParam(req, "youthID", other.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeYouthProgress(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestModuleProgress_NullWhenAbsent(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/youth/"+youth.ID.Hex()+"/module/intro", nil, testutil.YouthPrincipal(youth))
	req = testutil.WithChiURLParam(req, "youthID", youth.ID.Hex())
	req = testutil.WithChiURLParam(req, "moduleID", "intro")

	rec := httptest.NewRecorder()
	h.ServeModuleProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
	body := decodeBody(t, rec)
	if v, present := body["module"]; !present || v != nil {
		t.Errorf("module: got %v, want explicit null", v)
	}
}

func TestModuleProgress_Found(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	youth := f.CreateYouth(ctx, "Youth", "y@example.com", g.ID, fac.ID)

	score := 55.0
	done := true
	if _, err := h.Progress.UpsertModule(ctx, youth.ID, "intro", progressstore.ModuleUpdate{Score: &score, Done: &done}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/youth/"+youth.ID.Hex()+"/module/intro", nil, testutil.FacilitatorPrincipal(fac))
	req = testutil.WithChiURLParam(req, "youthID", youth.ID.Hex())
	req = testutil.WithChiURLParam(req, "moduleID", "intro")

	rec := httptest.NewRecorder()
	h.ServeModuleProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	mod, _ := body["module"].(map[string]any)
	if mod == nil {
		t.Fatal("missing module in response")
	}
	if mod["score"] != float64(55) || mod["done"] != true {
		t.Errorf("module: %v", mod)
	}
	if _, present := mod["payload"]; !present {
		t.Error("payload field must always be present")
	}
}

func TestGroupProgress(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)
	y1 := f.CreateYouth(ctx, "Y1", "y1@example.com", g.ID, fac.ID)
	y2 := f.CreateYouth(ctx, "Y2", "y2@example.com", g.ID, fac.ID)
	for _, id := range []primitive.ObjectID{y1.ID, y2.ID} {
		if err := h.Groups.AddMember(ctx, g.ID, id); err != nil {
			t.Fatalf("AddMember: %v", err)
		}
	}

	// Only y1 has progress; y2 must be omitted from the fan-out.
	score := 60.0
	if _, err := h.Progress.UpsertModule(ctx, y1.ID, "intro", progressstore.ModuleUpdate{Score: &score}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/groups/"+g.ID.Hex(), nil, testutil.FacilitatorPrincipal(fac))
	req = testutil.WithChiURLParam(req, "groupID", g.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeGroupProgress(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	rows, _ := body["progress"].([]any)
	if len(rows) != 1 {
		t.Fatalf("got %d aggregates, want 1", len(rows))
	}
}

func TestGroupProgress_ForeignFacilitator(t *testing.T) {
	h, f := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fac := f.CreateFacilitator(ctx, "Fac", "fac@example.com")
	g := f.CreateGroup(ctx, "Cohort", fac.ID)

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/groups/"+g.ID.Hex(), nil, testutil.RandomFacilitatorPrincipal())
	req = testutil.WithChiURLParam(req, "groupID", g.ID.Hex())

	rec := httptest.NewRecorder()
	h.ServeGroupProgress(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status %d, want 403", rec.Code)
	}
}

func TestGroupProgress_MissingGroup(t *testing.T) {
	h, _ := newHandler(t)

	id := primitive.NewObjectID().Hex()
	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/groups/"+id, nil, testutil.RandomFacilitatorPrincipal())
	req = testutil.WithChiURLParam(req, "groupID", id)

	rec := httptest.NewRecorder()
	h.ServeGroupProgress(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status %d, want 404", rec.Code)
	}
}
