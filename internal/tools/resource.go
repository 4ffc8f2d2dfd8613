package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"tracker/internal/categories"
)

const categoriesURI = "expense:///categories"

// CategoriesResource is the read-only expense-categories endpoint.
// Unlike the tools it has no side effects beyond creating the backing
// file with defaults on first read.
type CategoriesResource struct {
	store *categories.Store
}

func (r *CategoriesResource) Definition() mcp.Resource {
	return mcp.NewResource(categoriesURI, "expense-categories",
		mcp.WithResourceDescription("Configured expense categories"),
		mcp.WithMIMEType("application/json"),
	)
}

func (r *CategoriesResource) Handle(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	text, err := r.store.Read()
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      categoriesURI,
			MIMEType: "application/json",
			Text:     text,
		},
	}, nil
}
