// Package commands/utility_commands implements system and presentation helper commands.
//
// COMMAND IMPLEMENTATIONS:
// - HealthCheckCommand: liveness, version, uptime and table sizes
// - TerminalConfigCommand: settings for drawing the terminal widget
// - FormatClipboardCommand: plain text of a rendered frog plus its name
package commands

import (
	"context"

	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/service"
)

// HealthCheckCommand provides system health information
type HealthCheckCommand struct {
	service *service.Service
}

func (c *HealthCheckCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *HealthCheckCommand) Validate() error {
	return requireService(c.service)
}

func (c *HealthCheckCommand) GetName() string {
	return CmdHealth
}

func (c *HealthCheckCommand) GetDescription() string {
	return "Check system health status"
}

func (c *HealthCheckCommand) Execute(ctx context.Context) (*CommandResult, error) {
	return &CommandResult{
		Success: true,
		Data:    c.service.Health(),
		Message: "System is healthy",
	}, nil
}

// TerminalConfigCommand returns the terminal widget settings
type TerminalConfigCommand struct {
	service *service.Service
}

func (c *TerminalConfigCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *TerminalConfigCommand) Validate() error {
	return requireService(c.service)
}

func (c *TerminalConfigCommand) GetName() string {
	return CmdTerminalConfig
}

func (c *TerminalConfigCommand) GetDescription() string {
	return "Get the terminal widget configuration"
}

func (c *TerminalConfigCommand) Execute(ctx context.Context) (*CommandResult, error) {
	return &CommandResult{
		Success: true,
		Data:    c.service.TerminalConfig(),
	}, nil
}

// ClipboardText is the data of a successful format-clipboard command
type ClipboardText struct {
	Text string `json:"text"`
}

// FormatClipboardCommand strips color markup for copying
type FormatClipboardCommand struct {
	service  *service.Service
	ASCII    string
	FrogName string
	Format   models.Format
}

func (c *FormatClipboardCommand) SetService(svc *service.Service) {
	c.service = svc
}

func (c *FormatClipboardCommand) SetParameters(params map[string]interface{}) error {
	if ascii, ok := params["ascii"].(string); ok {
		c.ASCII = ascii
	}
	if name, ok := params["frogName"].(string); ok {
		c.FrogName = name
	}
	if format, ok := params["format"].(string); ok {
		c.Format = models.Format(format)
	}
	return nil
}

func (c *FormatClipboardCommand) Validate() error {
	return requireService(c.service)
}

func (c *FormatClipboardCommand) GetName() string {
	return CmdFormatClipboard
}

func (c *FormatClipboardCommand) GetDescription() string {
	return "Format a rendered frog as plain text for the clipboard"
}

func (c *FormatClipboardCommand) Execute(ctx context.Context) (*CommandResult, error) {
	text, err := c.service.FormatClipboard(c.ASCII, c.FrogName, c.Format)
	if err != nil {
		return nil, err
	}

	return &CommandResult{
		Success: true,
		Data:    ClipboardText{Text: text},
		Message: "Formatted for clipboard",
	}, nil
}
