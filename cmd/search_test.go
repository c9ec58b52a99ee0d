package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/emprendelab/vitrina/internal/db"
	"github.com/emprendelab/vitrina/internal/listing"
)

func seededStore(t *testing.T) *listing.Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := listing.NewStore(database)
	for _, l := range []listing.Listing{
		{ID: "cafesol", Name: "CafeSol", Description: "Café de especialidad\ntostado en casa", Category: "Servicios", OwnerName: "Ana Ruiz"},
		{ID: "ecobag", Name: "EcoBag", Description: "Bolsas reutilizables", Category: "Otro", OwnerName: "Luis Paz"},
		{ID: "tutorpro", Name: "TutorPro", Description: "Clases de cálculo", Category: "Educación"},
	} {
		if _, err := store.Create(context.Background(), l); err != nil {
			t.Fatalf("Create %s: %v", l.ID, err)
		}
	}
	return store
}

func TestPrintSearch(t *testing.T) {
	store := seededStore(t)

	tests := []struct {
		name     string
		query    string
		category string
		want     []string
		absent   []string
	}{
		{
			name:   "owner name match",
			query:  "ANA",
			want:   []string{"1 resultados", "cafesol  CafeSol [Servicios]", "Ana Ruiz", "Café de especialidad tostado en casa"},
			absent: []string{"EcoBag", "TutorPro"},
		},
		{
			name:     "category only",
			category: "Otro",
			want:     []string{"1 resultados", "ecobag  EcoBag [Otro]"},
			absent:   []string{"CafeSol"},
		},
		{
			name: "no filter",
			want: []string{"3 resultados", "CafeSol", "EcoBag", "TutorPro"},
		},
		{
			name:     "no match",
			query:    "cálculo",
			category: "Servicios",
			want:     []string{"No se encontraron emprendimientos."},
			absent:   []string{"resultados"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := printSearch(context.Background(), &out, store, tt.query, tt.category); err != nil {
				t.Fatalf("printSearch: %v", err)
			}
			got := out.String()
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, absent := range tt.absent {
				if strings.Contains(got, absent) {
					t.Errorf("output should not contain %q:\n%s", absent, got)
				}
			}
		})
	}
}
