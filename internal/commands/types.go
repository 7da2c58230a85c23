// Package commands implements the unified command execution system for ascii-frog.
//
// SYSTEM ARCHITECTURE ROLE:
// This module serves as the coordination layer between user interfaces (CLI, HTTP, terminal
// widget) and the service layer. It implements the Command Pattern so every interface renders,
// lists and searches frogs through the same validated code path.
//
// KEY RESPONSIBILITIES:
// - Define the command interface and execution pipeline
// - Validate parameters with the centralized validation schemas
// - Convert AppErrors into the structured ErrorInfo carried by CommandResult
// - Register every available command by name
//
// INTEGRATION POINTS:
// - internal/api/server.go: every endpoint executes a command through CommandExecutor.Execute()
// - internal/cli: subcommands build parameter maps from flags and print CommandResult.Data
// - internal/service/service.go: commands delegate through the ServiceAwareCommand interface
// - internal/validation/validator.go: CommandExecutor.validator checks parameters before execution
// - internal/commands/frog_commands.go: render, random, list and search commands
// - internal/commands/utility_commands.go: health, terminal config and clipboard commands
//
// COMMAND FLOW:
// 1. Interface converts its input to a parameter map
// 2. CommandExecutor validates the map against the command's schema
// 3. A fresh command instance receives the service and the validated parameters
// 4. The command executes and returns a CommandResult
// 5. Any error becomes a failed CommandResult carrying the original AppError
package commands

import (
	"context"
	"sort"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/service"
	"github.com/froggen/ascii-frog/internal/validation"
)

// Command names
const (
	CmdRender          = "render"
	CmdRandom          = "random"
	CmdListTemplates   = "list-templates"
	CmdListSchemes     = "list-schemes"
	CmdSearch          = "search"
	CmdHealth          = "health"
	CmdTerminalConfig  = "terminal-config"
	CmdFormatClipboard = "format-clipboard"
)

// CommandResult represents the result of executing a command
type CommandResult struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Success bool        `json:"success"`
	Error   *ErrorInfo  `json:"error,omitempty"`

	// Err is the AppError behind a failed result, for interfaces that map it to status codes
	Err *errors.AppError `json:"-"`
}

// ErrorInfo provides structured error information
type ErrorInfo struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Details  string `json:"details,omitempty"`
	Category string `json:"category,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// Command represents a unified command interface
type Command interface {
	Execute(ctx context.Context) (*CommandResult, error)
	Validate() error
	GetName() string
	GetDescription() string
}

// ParameterizedCommand interface for commands that accept parameters
type ParameterizedCommand interface {
	SetParameters(params map[string]interface{}) error
}

// ServiceAwareCommand interface for commands that need service access
type ServiceAwareCommand interface {
	SetService(svc *service.Service)
}

// CommandRegistry manages available commands
type CommandRegistry struct {
	commands map[string]func() Command
}

// NewCommandRegistry creates a new command registry
func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		commands: make(map[string]func() Command),
	}
}

// Register adds a command factory to the registry
func (r *CommandRegistry) Register(name string, factory func() Command) {
	r.commands[name] = factory
}

// Get retrieves a command factory by name
func (r *CommandRegistry) Get(name string) (func() Command, bool) {
	factory, exists := r.commands[name]
	return factory, exists
}

// List returns all available command names, sorted
func (r *CommandRegistry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CommandExecutor provides a unified way to execute commands
type CommandExecutor struct {
	service   *service.Service
	registry  *CommandRegistry
	validator *validation.Validator
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(svc *service.Service) *CommandExecutor {
	executor := &CommandExecutor{
		service:   svc,
		registry:  NewCommandRegistry(),
		validator: validation.NewValidator(),
	}

	executor.registerCommands()

	return executor
}

// Commands returns the registered command names
func (e *CommandExecutor) Commands() []string {
	return e.registry.List()
}

// Execute runs a command by name with the given parameters. Failures are
// reported through the result; the returned error is reserved for context cancellation.
func (e *CommandExecutor) Execute(ctx context.Context, commandName string, params map[string]interface{}) (*CommandResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	factory, exists := e.registry.Get(commandName)
	if !exists {
		return Failure(errors.CommandNotFoundError(commandName)), nil
	}

	if params == nil {
		params = make(map[string]interface{})
	}

	if schema := e.getValidationSchema(commandName); schema != "" {
		validationResult := e.validator.Validate(schema, params)
		if !validationResult.Valid {
			return Failure(validationResult.ToAppError()), nil
		}
		params = validationResult.GetValidatedData()
	}

	cmd := factory()

	if parameterized, ok := cmd.(ParameterizedCommand); ok {
		if err := parameterized.SetParameters(params); err != nil {
			return Failure(errors.ValidationError(err.Error())), nil
		}
	}

	if err := cmd.Validate(); err != nil {
		return Failure(errors.ValidationError(err.Error())), nil
	}

	result, err := cmd.Execute(ctx)
	if err != nil {
		return Failure(err), nil
	}

	return result, nil
}

// Failure builds a failed result from any error
func Failure(err error) *CommandResult {
	appErr := errors.GetAppError(err)
	return &CommandResult{
		Success: false,
		Err:     appErr,
		Error: &ErrorInfo{
			Code:     string(appErr.Code),
			Message:  appErr.Message,
			Details:  appErr.Details,
			Category: string(appErr.Category),
			Severity: string(appErr.Severity),
		},
	}
}

// getValidationSchema returns the validation schema name for a command
func (e *CommandExecutor) getValidationSchema(commandName string) string {
	switch commandName {
	case CmdRender:
		return validation.SchemaRenderFrog
	case CmdRandom:
		return validation.SchemaRandomFrog
	case CmdSearch:
		return validation.SchemaSearchTemplates
	case CmdFormatClipboard:
		return validation.SchemaFormatClipboard
	default:
		return ""
	}
}

// registerCommands registers all available commands
func (e *CommandExecutor) registerCommands() {
	register := func(name string, newCmd func() Command) {
		e.registry.Register(name, func() Command {
			cmd := newCmd()
			if serviceAware, ok := cmd.(ServiceAwareCommand); ok {
				serviceAware.SetService(e.service)
			}
			return cmd
		})
	}

	register(CmdRender, func() Command { return &RenderFrogCommand{} })
	register(CmdRandom, func() Command { return &RandomFrogCommand{} })
	register(CmdListTemplates, func() Command { return &ListTemplatesCommand{} })
	register(CmdListSchemes, func() Command { return &ListSchemesCommand{} })
	register(CmdSearch, func() Command { return &SearchTemplatesCommand{} })
	register(CmdHealth, func() Command { return &HealthCheckCommand{} })
	register(CmdTerminalConfig, func() Command { return &TerminalConfigCommand{} })
	register(CmdFormatClipboard, func() Command { return &FormatClipboardCommand{} })
}
