// Package commands/frog_commands implements the core frog commands.
//
// COMMAND IMPLEMENTATIONS:
// - RenderFrogCommand: renders one template, optionally colorized
// - RandomFrogCommand: renders a random template with an explicit, random or no scheme
// - ListTemplatesCommand: lists template summaries in display order
// - ListSchemesCommand: lists color scheme summaries in display order
// - SearchTemplatesCommand: fuzzy search over template ids and names
//
// Service errors are returned unchanged so the executor keeps their codes,
// which the HTTP layer maps to status codes.
package commands

import (
	"context"
	"fmt"

	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/storage"
)

func requireService(svc *service.Service) error {
	if svc == nil {
		return fmt.Errorf("service not set")
	}
	return nil
}

// RenderFrogCommand renders a template by id
type RenderFrogCommand struct {
	service     *service.Service
	TemplateID  string
	ColorScheme string
	Format      models.Format
}

func (c *RenderFrogCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *RenderFrogCommand) SetParameters(params map[string]interface{}) error {
	c.TemplateID = storage.DefaultTemplateID
	if template, ok := params["template"].(string); ok {
		c.TemplateID = template
	}
	if scheme, ok := params["colorScheme"].(string); ok {
		c.ColorScheme = scheme
	}
	if format, ok := params["format"].(string); ok {
		c.Format = models.Format(format)
	}
	return nil
}

func (c *RenderFrogCommand) Validate() error {
	return requireService(c.service)
}

func (c *RenderFrogCommand) GetName() string {
	return CmdRender
}

func (c *RenderFrogCommand) GetDescription() string {
	return "Render a frog template, optionally colorized with a color scheme"
}

func (c *RenderFrogCommand) Execute(ctx context.Context) (*CommandResult, error) {
	out, err := c.service.RenderByID(c.TemplateID, c.ColorScheme, c.Format)
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Success: true,
		Data:    out,
		Message: fmt.Sprintf("Rendered %s", out.TemplateName),
	}, nil
}

// RandomFrogCommand renders a uniformly chosen template
type RandomFrogCommand struct {
	service      *service.Service
	ColorScheme  string
	RandomScheme bool
	Format       models.Format
}

func (c *RandomFrogCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *RandomFrogCommand) SetParameters(params map[string]interface{}) error {
	if scheme, ok := params["colorScheme"].(string); ok {
		c.ColorScheme = scheme
	}
	if random, ok := params["randomScheme"].(bool); ok {
		c.RandomScheme = random
	}
	if format, ok := params["format"].(string); ok {
		c.Format = models.Format(format)
	}
	return nil
}

func (c *RandomFrogCommand) Validate() error {
	return requireService(c.service)
}

func (c *RandomFrogCommand) GetName() string {
	return CmdRandom
}

func (c *RandomFrogCommand) GetDescription() string {
	return "Render a random frog template"
}

func (c *RandomFrogCommand) Execute(ctx context.Context) (*CommandResult, error) {
	out, err := c.service.RenderRandom(service.RandomRequest{
		SchemeID:     c.ColorScheme,
		RandomScheme: c.RandomScheme,
		Format:       c.Format,
	})
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Success: true,
		Data:    out,
		Message: fmt.Sprintf("Rendered random frog %s", out.TemplateName),
	}, nil
}

// ListTemplatesCommand lists every template
type ListTemplatesCommand struct {
	service *service.Service
}

func (c *ListTemplatesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ListTemplatesCommand) Validate() error {
	return requireService(c.service)
}

func (c *ListTemplatesCommand) GetName() string {
	return CmdListTemplates
}

func (c *ListTemplatesCommand) GetDescription() string {
	return "List all frog templates"
}

func (c *ListTemplatesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	templates := c.service.ListTemplates()
	return &CommandResult{
		Success: true,
		Data:    templates,
		Message: fmt.Sprintf("Found %d templates", len(templates)),
	}, nil
}

// ListSchemesCommand lists every color scheme
type ListSchemesCommand struct {
	service *service.Service
}

func (c *ListSchemesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *ListSchemesCommand) Validate() error {
	return requireService(c.service)
}

func (c *ListSchemesCommand) GetName() string {
	return CmdListSchemes
}

func (c *ListSchemesCommand) GetDescription() string {
	return "List all color schemes"
}

func (c *ListSchemesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	schemes := c.service.ListColorSchemes()
	return &CommandResult{
		Success: true,
		Data:    schemes,
		Message: fmt.Sprintf("Found %d color schemes", len(schemes)),
	}, nil
}

// SearchTemplatesCommand performs fuzzy search over templates
type SearchTemplatesCommand struct {
	service *service.Service
	Query   string
	Limit   int
}

func (c *SearchTemplatesCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *SearchTemplatesCommand) SetParameters(params map[string]interface{}) error {
	if query, ok := params["query"].(string); ok {
		c.Query = query
	}
	if limit, ok := params["limit"].(int); ok {
		c.Limit = limit
	}
	return nil
}

func (c *SearchTemplatesCommand) Validate() error {
	return requireService(c.service)
}

func (c *SearchTemplatesCommand) GetName() string {
	return CmdSearch
}

func (c *SearchTemplatesCommand) GetDescription() string {
	return "Search templates using fuzzy matching on id and name"
}

func (c *SearchTemplatesCommand) Execute(ctx context.Context) (*CommandResult, error) {
	results := c.service.SearchTemplates(c.Query, c.Limit)
	return &CommandResult{
		Success: true,
		Data:    results,
		Message: fmt.Sprintf("Found %d templates matching '%s'", len(results), c.Query),
	}, nil
}
