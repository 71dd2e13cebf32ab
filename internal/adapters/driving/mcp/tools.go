package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/veritas-labs/itemforge-cli/internal/core/domain"
)

// ItemOutput represents one exam item in tool results.
type ItemOutput struct {
	ID       int64    `json:"id"`
	Source   string   `json:"source"`
	Stimulus string   `json:"stimulus"`
	Stem     string   `json:"stem"`
	Choices  []string `json:"choices"`
	Answer   string   `json:"answer"`
	Status   string   `json:"status"`
}

func toItemOutput(item *domain.Item) ItemOutput {
	return ItemOutput{
		ID:       item.ID,
		Source:   string(item.Source),
		Stimulus: item.Stimulus,
		Stem:     item.Stem,
		Choices:  item.Choices,
		Answer:   item.Answer,
		Status:   string(item.Status),
	}
}

// FindSimilarInput is the input schema for the find_similar_items tool.
type FindSimilarInput struct {
	ItemID int64 `json:"item_id" jsonschema:"the item whose stimulus to compare against the bank"`
	TopK   int   `json:"top_k,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// FindSimilarOutput is the output schema for the find_similar_items tool.
type FindSimilarOutput struct {
	QueryID int64                `json:"query_id"`
	Results []domain.SimilarItem `json:"results"`
}

// ListItemsInput is the input schema for the list_items tool.
type ListItemsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of items to return (default 20)"`
}

// ListItemsOutput is the output schema for the list_items tool.
type ListItemsOutput struct {
	Items []ItemOutput `json:"items"`
	Count int          `json:"count"`
}

// GetItemInput is the input schema for the get_item tool.
type GetItemInput struct {
	ItemID int64 `json:"item_id" jsonschema:"the item to retrieve"`
}

// ReviewInput is the input schema for the approve_item and reject_item tools.
type ReviewInput struct {
	ItemID int64 `json:"item_id" jsonschema:"the item to review"`
}

// GenerateInput is the input schema for the generate_item tool.
type GenerateInput struct {
	Prompt string `json:"prompt" jsonschema:"authoring prompt describing the item to generate"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "find_similar_items",
		Description: "Find exam items whose stimulus is semantically similar to a given item",
	}, s.handleFindSimilar)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_items",
		Description: "List the most recent exam items in the bank",
	}, s.handleListItems)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_item",
		Description: "Retrieve one exam item by ID",
	}, s.handleGetItem)

	if s.ports.Review != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "approve_item",
			Description: "Approve an exam item, adding it to the commit cart",
		}, s.handleApprove)

		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "reject_item",
			Description: "Reject an exam item",
		}, s.handleReject)
	}

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "generate_item",
		Description: "Generate a new exam item from an authoring prompt using the configured LLM",
	}, s.handleGenerate)
}

// handleFindSimilar handles the find_similar_items tool invocation.
func (s *Server) handleFindSimilar(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input FindSimilarInput,
) (*mcp.CallToolResult, FindSimilarOutput, error) {
	k := input.TopK
	if k <= 0 {
		k = 5
	}

	result, err := s.ports.Similarity.FindSimilar(ctx, input.ItemID, k)
	if err != nil {
		return nil, FindSimilarOutput{}, err
	}

	return nil, FindSimilarOutput{
		QueryID: result.QueryID,
		Results: result.Results,
	}, nil
}

// handleListItems handles the list_items tool invocation.
func (s *Server) handleListItems(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListItemsInput,
) (*mcp.CallToolResult, ListItemsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	items, err := s.ports.Item.List(ctx, limit)
	if err != nil {
		return nil, ListItemsOutput{}, err
	}

	output := ListItemsOutput{
		Items: make([]ItemOutput, len(items)),
		Count: len(items),
	}
	for i := range items {
		output.Items[i] = toItemOutput(&items[i])
	}

	return nil, output, nil
}

// handleGetItem handles the get_item tool invocation.
func (s *Server) handleGetItem(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetItemInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	item, err := s.ports.Item.Get(ctx, input.ItemID)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(item), nil
}

// handleApprove handles the approve_item tool invocation.
func (s *Server) handleApprove(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReviewInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	item, err := s.ports.Review.Approve(ctx, input.ItemID)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(item), nil
}

// handleReject handles the reject_item tool invocation.
func (s *Server) handleReject(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReviewInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	item, err := s.ports.Review.Reject(ctx, input.ItemID)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(item), nil
}

// handleGenerate handles the generate_item tool invocation.
func (s *Server) handleGenerate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GenerateInput,
) (*mcp.CallToolResult, ItemOutput, error) {
	if s.ports.Generation == nil {
		return nil, ItemOutput{}, errors.New("item generation is not configured")
	}

	item, err := s.ports.Generation.FromPrompt(ctx, input.Prompt)
	if err != nil {
		return nil, ItemOutput{}, err
	}
	return nil, toItemOutput(item), nil
}
