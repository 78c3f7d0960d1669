// ABOUTME: MCP tool handler implementations for the menu assistant
// ABOUTME: Tool failures are returned as error results, never as protocol errors
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/harper/menuchat/internal/chat"
	"github.com/harper/menuchat/internal/models"
	"github.com/harper/menuchat/internal/storage/sqlite"
)

// Searcher returns ranked chunks for a query
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]models.SearchResult, error)
}

// RestaurantLister reports what the index contains
type RestaurantLister interface {
	Restaurants() ([]sqlite.RestaurantSummary, error)
}

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	searcher       Searcher
	service        *chat.Service
	lister         RestaurantLister
	defaultResults int

	// MCP requests may arrive concurrently; the session is not safe for that
	mu      sync.Mutex
	session *chat.Session
}

// NewHandlers creates handlers sharing one chat session
func NewHandlers(searcher Searcher, service *chat.Service, lister RestaurantLister, defaultResults int) *Handlers {
	if defaultResults <= 0 {
		defaultResults = chat.DefaultTopK
	}
	return &Handlers{
		searcher:       searcher,
		service:        service,
		lister:         lister,
		defaultResults: defaultResults,
		session:        chat.NewSession(),
	}
}

type sourceView struct {
	Restaurant      string  `json:"restaurant"`
	ChunkID         string  `json:"chunk_id"`
	SimilarityScore float64 `json:"similarity_score"`
	Content         string  `json:"content,omitempty"`
}

func toSources(results []models.SearchResult, withContent bool) []sourceView {
	out := make([]sourceView, 0, len(results))
	for _, r := range results {
		v := sourceView{Restaurant: r.Restaurant, ChunkID: r.ChunkID, SimilarityScore: r.SimilarityScore}
		if withContent {
			v.Content = r.Content
		}
		out = append(out, v)
	}
	return out
}

// SearchMenu handles the search_menu tool
func (h *Handlers) SearchMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", h.defaultResults)
	if maxResults <= 0 {
		maxResults = h.defaultResults
	}

	results, err := h.searcher.Search(ctx, query, maxResults)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("menu search failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"query":   query,
		"results": toSources(results, true),
	})
}

// AskMenu handles the ask_menu tool
func (h *Handlers) AskMenu(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	h.mu.Lock()
	answer, err := h.service.Ask(ctx, h.session, question)
	turns := h.session.Len()
	h.mu.Unlock()

	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("answering failed: %v", err)), nil
	}

	return jsonResult(map[string]interface{}{
		"answer":           answer.Text,
		"sources":          toSources(answer.Sources, false),
		"session_messages": turns,
	})
}

// ListRestaurants handles the list_restaurants tool
func (h *Handlers) ListRestaurants(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	restaurants, err := h.lister.Restaurants()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list restaurants: %v", err)), nil
	}
	if restaurants == nil {
		restaurants = []sqlite.RestaurantSummary{}
	}

	return jsonResult(map[string]interface{}{
		"restaurants": restaurants,
		"count":       len(restaurants),
	})
}

func jsonResult(response interface{}) (*mcp.CallToolResult, error) {
	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}
