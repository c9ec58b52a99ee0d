package listing

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/emprendelab/vitrina/internal/filter"
)

// Categories are the fixed listing categories offered by the
// registration form.
var Categories = []string{
	"Tecnología", "Servicios", "Educación", "Salud y Bienestar", "Otro",
}

// Stages describe how far along a venture is.
var Stages = []string{"Idea", "En desarrollo", "Funcionando", "En crecimiento", "Establecido"}

// TimeRunning are the buckets for how long a venture has operated.
var TimeRunning = []string{
	"Menos de 6 meses", "6 meses - 1 año", "1-2 años",
	"2-3 años", "Más de 3 años",
}

const (
	DefaultCategory    = "Otro"
	DefaultStage       = "Idea"
	DefaultTimeRunning = "Menos de 6 meses"
	DefaultSemester    = "1"
	DefaultEmployees   = 1
)

// Listing is one registered student venture. JSON keys match the
// site's published data format.
type Listing struct {
	ID                string    `json:"id"`
	Name              string    `json:"nombre"`
	Description       string    `json:"descripcion"`
	Category          string    `json:"categoria"`
	OwnerName         string    `json:"estudiante_nombre"`
	Email             string    `json:"email"`
	University        string    `json:"universidad"`
	Career            string    `json:"carrera"`
	Semester          string    `json:"semestre"`
	Instagram         string    `json:"instagram"`
	Facebook          string    `json:"facebook"`
	TikTok            string    `json:"tiktok"`
	Website           string    `json:"sitio_web"`
	InitialInvestment float64   `json:"inversion_inicial"`
	TimeRunning       string    `json:"tiempo_funcionando"`
	Employees         int       `json:"empleados"`
	Stage             string    `json:"estado"`
	RegisteredAt      Timestamp `json:"fecha_registro"`
}

// Item returns the searchable view of l used by the filter engine.
func (l Listing) Item() filter.Item {
	return filter.Item{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		OwnerName:   l.OwnerName,
		Category:    l.Category,
	}
}

// Items converts listings to filter items, preserving order.
func Items(listings []Listing) []filter.Item {
	items := make([]filter.Item, len(listings))
	for i, l := range listings {
		items[i] = l.Item()
	}
	return items
}

// Timestamp is a time that also accepts ISO-8601 values without a zone
// offset, as found in older data files.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(t.UTC().Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("fecha_registro: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("fecha_registro: unrecognized time %q", s)
}
