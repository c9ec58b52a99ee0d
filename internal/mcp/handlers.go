package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/emprendelab/vitrina/internal/filter"
	"github.com/emprendelab/vitrina/internal/listing"
	"github.com/emprendelab/vitrina/internal/stats"
)

// handleSearchListings applies the list page filter to every stored listing.
func (s *Server) handleSearchListings(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	state := filter.State{
		Query:    request.GetString("query", ""),
		Category: request.GetString("category", ""),
	}.Normalize()

	listings, err := s.store.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing failed: %v", err)), nil
	}

	res := filter.Apply(listing.Items(listings), state)
	if res.Empty() {
		return mcp.NewToolResultText("No ventures match. Try a shorter query or no category."), nil
	}

	matched := make([]listing.Listing, 0, res.Count)
	for _, l := range listings {
		if res.IsVisible(l.ID) {
			matched = append(matched, l)
		}
	}
	return mcp.NewToolResultText(formatListings(matched)), nil
}

// handleGetListing returns one listing as indented JSON.
func (s *Server) handleGetListing(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	l, err := s.store.GetByID(ctx, id)
	if errors.Is(err, listing.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("No venture with id %q.", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read venture: %v", err)), nil
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding venture: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleGetStats returns the current summary snapshot as JSON.
func (s *Server) handleGetStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap, err := stats.Current(ctx, s.store)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("computing stats: %v", err)), nil
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encoding stats: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// formatListings renders search hits as plain text for agent consumption.
func formatListings(listings []listing.Listing) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d venture(s):\n", len(listings)))

	for i, l := range listings {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("ID: %s\n", l.ID))
		sb.WriteString(fmt.Sprintf("Name: %s\n", l.Name))
		sb.WriteString(fmt.Sprintf("Category: %s\n", l.Category))
		if l.OwnerName != "" {
			sb.WriteString(fmt.Sprintf("Student: %s\n", l.OwnerName))
		}
		if l.Stage != "" {
			sb.WriteString(fmt.Sprintf("Stage: %s\n", l.Stage))
		}
		sb.WriteString("\n")
		sb.WriteString(l.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}
