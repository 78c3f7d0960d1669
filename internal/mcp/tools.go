// ABOUTME: MCP tool definitions and registration for the menu assistant
// ABOUTME: Exposes menu search, question answering, and the restaurant list
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/harper/menuchat/internal/chat"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, searcher Searcher, service *chat.Service, lister RestaurantLister, defaultResults int) *Handlers {
	handlers := NewHandlers(searcher, service, lister, defaultResults)

	// 1. search_menu - Retrieval only
	server.AddTool(mcp.Tool{
		Name:        "search_menu",
		Description: "Search scraped restaurant menus and contact details. Returns the most relevant knowledge-base chunks with their restaurant and similarity score.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to look for, e.g. 'gluten-free desserts' or 'Quay opening hours'",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of chunks to return (default: 4)",
					"default":     defaultResults,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchMenu)

	// 2. ask_menu - Retrieval-augmented answer
	server.AddTool(mcp.Tool{
		Name:        "ask_menu",
		Description: "Ask a question about the indexed restaurants. The answer is generated only from retrieved menu context and the exchange is kept in the server session.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question about restaurants, menu items, prices, or dietary options",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskMenu)

	// 3. list_restaurants - Index contents
	server.AddTool(mcp.Tool{
		Name:        "list_restaurants",
		Description: "List the restaurants present in the knowledge base with their chunk counts.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.ListRestaurants)

	return handlers
}
