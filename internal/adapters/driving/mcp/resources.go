package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the custom URI scheme for itemforge resources.
const uriScheme = "itemforge://"

// itemListLimit caps the items resource.
const itemListLimit = 100

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing items.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "items",
		Name:        "items",
		Description: "Most recent exam items in the bank",
		MIMEType:    "application/json",
	}, s.handleItemsResource)

	// Static resource for the commit cart.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "cart",
		Name:        "cart",
		Description: "Approved items awaiting commit",
		MIMEType:    "application/json",
	}, s.handleCartResource)

	// Template for individual items.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "items/{itemId}",
		Name:        "item",
		Description: "A single exam item",
		MIMEType:    "application/json",
	}, s.handleItemResource)
}

// handleItemsResource returns the most recent items.
func (s *Server) handleItemsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	items, err := s.ports.Item.List(ctx, itemListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}

	infos := make([]ItemOutput, len(items))
	for i := range items {
		infos[i] = toItemOutput(&items[i])
	}

	return jsonResource(req.Params.URI, infos)
}

// handleCartResource returns approved items awaiting commit.
func (s *Server) handleCartResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Review == nil {
		return jsonResource(req.Params.URI, []ItemOutput{})
	}

	items, err := s.ports.Review.Cart(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing cart: %w", err)
	}

	infos := make([]ItemOutput, len(items))
	for i := range items {
		infos[i] = toItemOutput(&items[i])
	}

	return jsonResource(req.Params.URI, infos)
}

// handleItemResource returns a single item.
func (s *Server) handleItemResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractItemID(req.Params.URI)
	if id == 0 {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	item, err := s.ports.Item.Get(ctx, id)
	if err != nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return jsonResource(req.Params.URI, toItemOutput(item))
}

// jsonResource marshals v into a single JSON resource content.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractItemID extracts the item ID from a URI like itemforge://items/{itemId}.
// Returns 0 when the URI does not match.
func extractItemID(uri string) int64 {
	const prefix = uriScheme + "items/"

	if !strings.HasPrefix(uri, prefix) {
		return 0
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil || id < 1 {
		return 0
	}
	return id
}
