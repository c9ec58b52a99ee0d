package listing

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minNameLength        = 3
	minDescriptionLength = 10
)

// ValidationError collects every problem found in a registration.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid registration: " + strings.Join(e.Messages, "; ")
}

// Registration is the raw registration form, as submitted.
type Registration struct {
	Name              string `json:"nombre"`
	Description       string `json:"descripcion"`
	Category          string `json:"categoria"`
	OwnerName         string `json:"estudiante_nombre"`
	Email             string `json:"email"`
	Phone             string `json:"telefono"`
	University        string `json:"universidad"`
	Career            string `json:"carrera"`
	Semester          string `json:"semestre"`
	Instagram         string `json:"instagram"`
	Facebook          string `json:"facebook"`
	TikTok            string `json:"tiktok"`
	Website           string `json:"sitio_web"`
	InitialInvestment string `json:"inversion_inicial"`
	TimeRunning       string `json:"tiempo_funcionando"`
	Employees         string `json:"empleados"`
	Stage             string `json:"estado"`
}

// Validate returns a *ValidationError listing every failed rule, or nil.
func (r Registration) Validate() error {
	var msgs []string
	if utf8.RuneCountInString(strings.TrimSpace(r.Name)) < minNameLength {
		msgs = append(msgs, "El nombre del emprendimiento debe tener al menos 3 caracteres")
	}
	if utf8.RuneCountInString(strings.TrimSpace(r.Description)) < minDescriptionLength {
		msgs = append(msgs, "La descripción debe tener al menos 10 caracteres")
	}
	if len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// Listing builds the listing a valid registration describes, applying
// defaults for omitted fields. ID and registration time are assigned by
// the store.
func (r Registration) Listing() Listing {
	return Listing{
		Name:              strings.TrimSpace(r.Name),
		Description:       strings.TrimSpace(r.Description),
		Category:          orDefault(r.Category, DefaultCategory),
		OwnerName:         strings.TrimSpace(r.OwnerName),
		Email:             strings.TrimSpace(r.Email),
		University:        strings.TrimSpace(r.University),
		Career:            strings.TrimSpace(r.Career),
		Semester:          orDefault(r.Semester, DefaultSemester),
		Instagram:         CleanSocialURL(r.Instagram),
		Facebook:          CleanSocialURL(r.Facebook),
		TikTok:            CleanSocialURL(r.TikTok),
		Website:           CleanSocialURL(r.Website),
		InitialInvestment: parseFloatOr(r.InitialInvestment, 0),
		TimeRunning:       orDefault(r.TimeRunning, DefaultTimeRunning),
		Employees:         parseIntOr(r.Employees, DefaultEmployees),
		Stage:             orDefault(r.Stage, DefaultStage),
	}
}

// CleanSocialURL trims u and prefixes https:// when it has no http or
// https scheme. Empty input stays empty.
func CleanSocialURL(u string) string {
	u = strings.TrimSpace(u)
	if u == "" {
		return ""
	}
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return "https://" + u
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

// parseFloatOr treats NaN and infinities as absent; neither survives a
// NOT NULL column or JSON encoding.
func parseFloatOr(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

// parseIntOr treats zero as absent, like the form does.
func parseIntOr(v string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n == 0 {
		return def
	}
	return n
}
