package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/emprendelab/vitrina/internal/db"
	"github.com/emprendelab/vitrina/internal/listing"
	"github.com/emprendelab/vitrina/internal/stats"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	store := listing.NewStore(database)
	ctx := context.Background()
	for _, l := range []listing.Listing{
		{ID: "cafesol", Name: "CafeSol", Description: "Café de especialidad", Category: "Servicios", OwnerName: "Ana Ruiz"},
		{ID: "ecobag", Name: "EcoBag", Description: "Bolsas reutilizables", Category: "Otro", OwnerName: "Luis Paz"},
		{ID: "tutorpro", Name: "TutorPro", Description: "Clases de cálculo", Category: "Educación", OwnerName: "Marta Eco"},
	} {
		if _, err := store.Create(ctx, l); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	return NewServer(store)
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"search_listings", searchListingsTool, "search_listings"},
		{"get_listing", getListingTool, "get_listing"},
		{"get_stats", getStatsTool, "get_stats"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServer(t *testing.T) {
	srv := setupTestServer(t)
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
}

func TestHandleSearchListings(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		args    map[string]any
		want    []string
		notWant []string
	}{
		{"text matches name and owner", map[string]any{"query": "eco"}, []string{"Found 2", "EcoBag", "TutorPro"}, []string{"CafeSol"}},
		{"category only", map[string]any{"category": "Servicios"}, []string{"Found 1", "CafeSol"}, []string{"EcoBag"}},
		{"category and text", map[string]any{"query": "eco", "category": "Otro"}, []string{"Found 1", "EcoBag"}, []string{"TutorPro"}},
		{"no arguments lists everything", map[string]any{}, []string{"Found 3"}, nil},
		{"no match", map[string]any{"query": "zzz"}, []string{"No ventures match"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := mcp.CallToolRequest{}
			req.Params.Arguments = tt.args

			result, err := srv.handleSearchListings(ctx, req)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.IsError {
				t.Fatalf("unexpected tool error: %v", result.Content)
			}
			text := extractText(result)
			for _, w := range tt.want {
				if !strings.Contains(text, w) {
					t.Errorf("result missing %q:\n%s", w, text)
				}
			}
			for _, nw := range tt.notWant {
				if strings.Contains(text, nw) {
					t.Errorf("result should not contain %q:\n%s", nw, text)
				}
			}
		})
	}
}

func TestHandleGetListing(t *testing.T) {
	srv := setupTestServer(t)
	ctx := context.Background()

	t.Run("existing listing", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"id": "ecobag"}

		result, err := srv.handleGetListing(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		var l listing.Listing
		if err := json.Unmarshal([]byte(extractText(result)), &l); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if l.Name != "EcoBag" || l.OwnerName != "Luis Paz" {
			t.Errorf("unexpected listing: %+v", l)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{"id": "missing"}

		result, err := srv.handleGetListing(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for unknown id")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		req := mcp.CallToolRequest{}
		req.Params.Arguments = map[string]any{}

		result, err := srv.handleGetListing(ctx, req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.IsError {
			t.Error("expected error for missing id")
		}
	})
}

func TestHandleGetStats(t *testing.T) {
	srv := setupTestServer(t)

	result, err := srv.handleGetStats(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var snap stats.Snapshot
	if err := json.Unmarshal([]byte(extractText(result)), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if snap.Total != 3 || snap.TotalCategories != 3 || snap.TotalStudents != 3 {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}
