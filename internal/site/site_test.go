package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/emprendelab/vitrina/internal/db"
	"github.com/emprendelab/vitrina/internal/listing"
)

func setupTestSite(t *testing.T) (*listing.Store, http.Handler) {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := listing.NewStore(database)
	s, err := New(store, Options{SiteName: "Vitrina de prueba"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return store, r
}

func seed(t *testing.T, store *listing.Store, listings ...listing.Listing) {
	t.Helper()
	for _, l := range listings {
		if _, err := store.Create(context.Background(), l); err != nil {
			t.Fatalf("Create %s: %v", l.Name, err)
		}
	}
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestIndexShowsCounters(t *testing.T) {
	store, h := setupTestSite(t)
	seed(t, store,
		listing.Listing{ID: "a", Name: "CafeSol", Category: "Servicios", OwnerName: "Ana"},
		listing.Listing{ID: "b", Name: "EcoBag", Category: "Otro", OwnerName: "Ana"},
		listing.Listing{ID: "c", Name: "TutorPro", Category: "Educación", OwnerName: "Luis"},
	)

	w := get(t, h, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		`id="total-emprendimientos">3<`,
		`id="total-categorias">3<`,
		`id="total-estudiantes">2<`,
		"Educación: 1",
		"/detalle/c",
		"Vitrina de prueba",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}
}

func TestIndexFeaturedLimit(t *testing.T) {
	store, h := setupTestSite(t)
	for _, id := range []string{"l1", "l2", "l3", "l4", "l5", "l6", "l7"} {
		seed(t, store, listing.Listing{ID: id, Name: "Proyecto " + id})
	}

	body := get(t, h, "/").Body.String()
	if strings.Contains(body, "/detalle/l1") {
		t.Error("oldest listing should not be featured")
	}
	if !strings.Contains(body, "/detalle/l7") || !strings.Contains(body, "/detalle/l2") {
		t.Error("six most recent listings should be featured")
	}
}

func TestListFiltersCards(t *testing.T) {
	store, h := setupTestSite(t)
	seed(t, store,
		listing.Listing{ID: "cafesol", Name: "CafeSol", Description: "Café de especialidad", Category: "Servicios"},
		listing.Listing{ID: "ecobag", Name: "EcoBag", Description: "Bolsas reutilizables", Category: "Otro"},
	)

	w := get(t, h, "/lista?busqueda=eco")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `<span id="results-count">1</span>`) {
		t.Error("expected results count 1")
	}
	if !strings.Contains(body, "Ver Todos") {
		t.Error("expected reset control while filtering")
	}
	if !strings.Contains(body, `data-nombre="ecobag"`) || !strings.Contains(body, `data-nombre="cafesol"`) {
		t.Error("every card should be rendered with its data attributes")
	}
	if n := strings.Count(body, `class="emprendimiento-card" style="display: none"`); n != 1 {
		t.Errorf("expected 1 hidden card, got %d", n)
	}
	if !strings.Contains(body, `<div class="empty-state" style="display: none">`) {
		t.Error("empty state should be hidden when something matches")
	}
}

func TestListWithoutFilter(t *testing.T) {
	store, h := setupTestSite(t)
	seed(t, store, listing.Listing{ID: "a", Name: "CafeSol"}, listing.Listing{ID: "b", Name: "EcoBag"})

	body := get(t, h, "/lista").Body.String()
	if !strings.Contains(body, `<span id="results-count">2</span>`) {
		t.Error("expected results count 2")
	}
	if strings.Contains(body, "Ver Todos") {
		t.Error("reset control should not be shown without a filter")
	}
	if strings.Contains(body, `class="emprendimiento-card" style="display: none"`) {
		t.Error("no card should be hidden")
	}
}

func TestListNoMatchShowsEmptyState(t *testing.T) {
	store, h := setupTestSite(t)
	seed(t, store, listing.Listing{ID: "a", Name: "CafeSol", Category: "Servicios"})

	body := get(t, h, "/lista?categoria=Otro").Body.String()
	if !strings.Contains(body, `<span id="results-count">0</span>`) {
		t.Error("expected results count 0")
	}
	if strings.Contains(body, `<div class="empty-state" style="display: none">`) {
		t.Error("empty state should be visible")
	}
	if !strings.Contains(body, `<option value="Otro" selected>`) {
		t.Error("selected category should be preserved")
	}
}

func TestRegisterRedirects(t *testing.T) {
	store, h := setupTestSite(t)

	form := url.Values{
		"nombre":      {"CafeSol"},
		"descripcion": {"Café de especialidad tostado en casa"},
		"categoria":   {"Servicios"},
		"instagram":   {"instagram.com/cafesol"},
	}
	req := httptest.NewRequest(http.MethodPost, "/registro", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parsing Location: %v", err)
	}
	if loc.Path != "/lista" || loc.Query().Get("exito") != msgRegistered {
		t.Errorf("unexpected redirect %q", loc)
	}

	listings, err := store.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listings) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(listings))
	}
	if listings[0].Instagram != "https://instagram.com/cafesol" {
		t.Errorf("expected cleaned instagram URL, got %q", listings[0].Instagram)
	}
}

func TestRegisterValidationErrors(t *testing.T) {
	store, h := setupTestSite(t)

	form := url.Values{"nombre": {"ab"}, "descripcion": {"corta"}}
	req := httptest.NewRequest(http.MethodPost, "/registro", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "al menos 3 caracteres") || !strings.Contains(body, "al menos 10 caracteres") {
		t.Error("expected both validation messages")
	}
	if !strings.Contains(body, `value="ab"`) {
		t.Error("submitted values should be kept in the form")
	}
	if n, _ := store.Count(context.Background()); n != 0 {
		t.Errorf("nothing should be stored, got %d", n)
	}
}

func TestDetail(t *testing.T) {
	store, h := setupTestSite(t)
	seed(t, store, listing.Listing{
		ID:          "cafesol",
		Name:        "CafeSol",
		Description: "Café **de especialidad**\n<script>alert(1)</script>",
		Website:     "https://cafesol.example",
	})

	w := get(t, h, "/detalle/cafesol")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "<strong>de especialidad</strong>") {
		t.Error("description should be rendered as markdown")
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("raw HTML in the description must not be rendered")
	}
	if !strings.Contains(body, `href="https://cafesol.example"`) {
		t.Error("expected website link")
	}
}

func TestDetailNotFoundRedirects(t *testing.T) {
	_, h := setupTestSite(t)

	w := get(t, h, "/detalle/missing")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	loc, _ := url.Parse(w.Header().Get("Location"))
	if loc.Query().Get("errores") != msgNotFound {
		t.Errorf("unexpected redirect %q", loc)
	}

	body := get(t, h, loc.String()).Body.String()
	if !strings.Contains(body, msgNotFound) {
		t.Error("list page should show the error flash")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("corto", 10); got != "corto" {
		t.Errorf("truncate short = %q", got)
	}
	if got := truncate("añoñoñoño", 3); got != "año…" {
		t.Errorf("truncate = %q, want %q", got, "año…")
	}
}
