// Package site serves the public HTML pages: the landing page with the
// summary counters, the registration form, the searchable listing grid
// and the detail page.
package site

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"

	"github.com/emprendelab/vitrina/internal/audit"
	"github.com/emprendelab/vitrina/internal/filter"
	"github.com/emprendelab/vitrina/internal/listing"
	"github.com/emprendelab/vitrina/internal/stats"
)

const (
	// DefaultFeatured is how many recent listings the landing page shows.
	DefaultFeatured = 6

	msgRegistered = "¡Emprendimiento registrado exitosamente!"
	msgNotFound   = "Emprendimiento no encontrado"
)

// Options configures a Site.
type Options struct {
	SiteName string
	Featured int
	Logger   *slog.Logger
}

// Site renders the HTML pages backed by a listing store.
type Site struct {
	store    *listing.Store
	name     string
	featured int
	logger   *slog.Logger
	md       goldmark.Markdown
	pages    map[string]*template.Template
}

// New parses the page templates and returns a Site.
func New(store *listing.Store, opts Options) (*Site, error) {
	s := &Site{
		store:    store,
		name:     opts.SiteName,
		featured: opts.Featured,
		logger:   opts.Logger,
		md:       newMarkdown(),
		pages:    make(map[string]*template.Template),
	}
	if s.featured <= 0 {
		s.featured = DefaultFeatured
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	funcs := template.FuncMap{
		"lower":    strings.ToLower,
		"truncate": truncate,
	}
	for name, src := range map[string]string{
		"index":    indexTemplate,
		"registro": registroTemplate,
		"lista":    listaTemplate,
		"detalle":  detalleTemplate,
	} {
		tmpl, err := template.New("layout").Funcs(funcs).Parse(layoutTemplate)
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.Parse(src); err != nil {
			return nil, err
		}
		s.pages[name] = tmpl
	}
	return s, nil
}

// RegisterRoutes mounts the HTML pages.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleIndex)
	r.Get("/registro", s.handleRegisterForm)
	r.Post("/registro", s.handleRegister)
	r.Get("/lista", s.handleList)
	r.Get("/detalle/{id}", s.handleDetail)
}

type categoryCount struct {
	Name  string
	Count int
}

type indexData struct {
	SiteName       string
	Stats          stats.Snapshot
	CategoryCounts []categoryCount
	Featured       []listing.Listing
}

func (s *Site) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	snap, err := stats.Current(ctx, s.store)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	counts, err := s.store.CountByCategory(ctx)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	recent, err := s.store.Recent(ctx, s.featured)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := indexData{SiteName: s.name, Stats: snap, Featured: recent}
	for name, n := range counts {
		data.CategoryCounts = append(data.CategoryCounts, categoryCount{Name: name, Count: n})
	}
	sort.Slice(data.CategoryCounts, func(i, j int) bool {
		return data.CategoryCounts[i].Name < data.CategoryCounts[j].Name
	})
	s.render(w, r, http.StatusOK, "index", data)
}

type registroData struct {
	SiteName    string
	Errors      []string
	Form        listing.Registration
	Categories  []string
	Stages      []string
	TimeRunning []string
}

func (s *Site) registroData(form listing.Registration, errs []string) registroData {
	return registroData{
		SiteName:    s.name,
		Errors:      errs,
		Form:        form,
		Categories:  listing.Categories,
		Stages:      listing.Stages,
		TimeRunning: listing.TimeRunning,
	}
}

func (s *Site) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "registro", s.registroData(listing.Registration{}, nil))
}

func (s *Site) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, r, http.StatusBadRequest, "registro", s.registroData(listing.Registration{}, []string{"Formulario inválido"}))
		return
	}
	form := registrationFromForm(r.PostForm)

	if err := form.Validate(); err != nil {
		var verr *listing.ValidationError
		if errors.As(err, &verr) {
			s.render(w, r, http.StatusUnprocessableEntity, "registro", s.registroData(form, verr.Messages))
			return
		}
		s.serverError(w, r, err)
		return
	}

	ctx := audit.WithActor(r.Context(), audit.Actor{Type: audit.ActorWeb, ID: r.RemoteAddr})
	created, err := s.store.Create(ctx, form.Listing())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.logger.Info("listing registered", "id", created.ID, "category", created.Category)
	http.Redirect(w, r, "/lista?"+url.Values{"exito": {msgRegistered}}.Encode(), http.StatusSeeOther)
}

func registrationFromForm(v url.Values) listing.Registration {
	return listing.Registration{
		Name:              v.Get("nombre"),
		Description:       v.Get("descripcion"),
		Category:          v.Get("categoria"),
		OwnerName:         v.Get("estudiante_nombre"),
		Email:             v.Get("email"),
		Phone:             v.Get("telefono"),
		University:        v.Get("universidad"),
		Career:            v.Get("carrera"),
		Semester:          v.Get("semestre"),
		Instagram:         v.Get("instagram"),
		Facebook:          v.Get("facebook"),
		TikTok:            v.Get("tiktok"),
		Website:           v.Get("sitio_web"),
		InitialInvestment: v.Get("inversion_inicial"),
		TimeRunning:       v.Get("tiempo_funcionando"),
		Employees:         v.Get("empleados"),
		Stage:             v.Get("estado"),
	}
}

type card struct {
	listing.Listing
	Visible bool
}

type listaData struct {
	SiteName   string
	Success    string
	Error      string
	State      filter.State
	Categories []string
	Cards      []card
	Count      int
	EmptyShown bool
	ResetShown bool
}

// handleList renders every card and applies busqueda/categoria through
// the filter controller, so the page shows exactly what a submit on the
// search controls would.
func (s *Site) handleList(w http.ResponseWriter, r *http.Request) {
	listings, err := s.store.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	q := r.URL.Query()
	items := listing.Items(listings)
	page := filter.NewPage(items)
	ctrl := filter.NewController(items, page)
	ctrl.SetQuery(q.Get("busqueda"))
	ctrl.SetCategory(q.Get("categoria"))
	if !ctrl.State().IsZero() {
		ctrl.Submit()
	}

	data := listaData{
		SiteName:   s.name,
		Success:    q.Get("exito"),
		Error:      q.Get("errores"),
		State:      ctrl.State(),
		Categories: listing.Categories,
		Cards:      make([]card, len(listings)),
		Count:      page.Count,
		EmptyShown: page.EmptyShown,
		ResetShown: page.ResetShown,
	}
	for i, l := range listings {
		data.Cards[i] = card{Listing: l, Visible: page.IsVisible(l.ID)}
	}
	s.render(w, r, http.StatusOK, "lista", data)
}

type link struct {
	Label string
	URL   string
}

type detalleData struct {
	SiteName    string
	Listing     *listing.Listing
	Description template.HTML
	Links       []link
}

func (s *Site) handleDetail(w http.ResponseWriter, r *http.Request) {
	l, err := s.store.GetByID(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, listing.ErrNotFound) {
		http.Redirect(w, r, "/lista?"+url.Values{"errores": {msgNotFound}}.Encode(), http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	desc, err := renderMarkdown(s.md, l.Description)
	if err != nil {
		s.serverError(w, r, err)
		return
	}

	data := detalleData{SiteName: s.name, Listing: l, Description: desc}
	for _, lk := range []link{
		{"Instagram", l.Instagram},
		{"Facebook", l.Facebook},
		{"TikTok", l.TikTok},
		{"Sitio web", l.Website},
	} {
		if lk.URL != "" {
			data.Links = append(data.Links, lk)
		}
	}
	s.render(w, r, http.StatusOK, "detalle", data)
}

func (s *Site) render(w http.ResponseWriter, r *http.Request, status int, page string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.pages[page].Execute(w, data); err != nil {
		s.logger.Error("rendering page", "page", page, "path", r.URL.Path, "error", err)
	}
}

func (s *Site) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("serving page", "path", r.URL.Path, "error", err)
	http.Error(w, "Error interno del servidor", http.StatusInternalServerError)
}

// truncate shortens s to at most n runes, adding an ellipsis when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
