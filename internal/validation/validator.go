// Package validation provides centralized input validation and sanitization.
//
// SYSTEM ARCHITECTURE ROLE:
// This module validates every parameter map before it reaches a command, whether the
// map came from an HTTP request, CLI flags or a terminal widget action. It provides
// schema-based validation with type conversion and field-level error reporting.
//
// KEY RESPONSIBILITIES:
// - Define validation schemas for command parameters
// - Convert loosely typed input (query strings, JSON numbers) to Go types
// - Produce one ValidationError per failing field
// - Convert failures into a single AppError for the interfaces
//
// INTEGRATION POINTS:
// - internal/commands/types.go: CommandExecutor validates parameters through getValidationSchema()
// - internal/validation/middleware.go: RequestValidator turns HTTP requests into parameter maps
// - internal/errors/errors.go: ValidationResult.ToAppError() builds the VALIDATION_ERROR
// - schemas: render_frog, random_frog, search_templates, format_clipboard
//
// VALIDATION FLOW:
// 1. Interface converts input to a parameter map
// 2. Validator checks the map against the command's schema, field by field in name order
// 3. Valid values are type-converted into ValidationResult.Data
// 4. Unknown keys are dropped, so commands only ever see declared fields
package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/froggen/ascii-frog/internal/models"
)

// Schema names
const (
	SchemaRenderFrog      = "render_frog"
	SchemaRandomFrog      = "random_frog"
	SchemaSearchTemplates = "search_templates"
	SchemaFormatClipboard = "format_clipboard"
)

// MaxSearchLimit caps the number of search results a caller can ask for
const MaxSearchLimit = 100

var identifierPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// FieldValidator provides validation rules for individual fields
type FieldValidator struct {
	Name      string
	Required  bool
	Type      string
	MinLength int
	MaxLength int
	Pattern   *regexp.Regexp
	Options   []string
	Custom    func(interface{}) error
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool                   `json:"valid"`
	Errors []ValidationError      `json:"errors,omitempty"`
	Data   map[string]interface{} `json:"data,omitempty"`
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Schema represents a validation schema
type Schema struct {
	Name   string
	Fields map[string]FieldValidator
	Rules  []func(map[string]interface{}) error
}

// Validator provides centralized validation functionality
type Validator struct {
	schemas map[string]*Schema
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	v := &Validator{
		schemas: make(map[string]*Schema),
	}

	v.registerBuiltinSchemas()

	return v
}

// RegisterSchema registers a validation schema
func (v *Validator) RegisterSchema(schema *Schema) {
	v.schemas[schema.Name] = schema
}

// HasSchema reports whether a schema is registered under name
func (v *Validator) HasSchema(name string) bool {
	_, ok := v.schemas[name]
	return ok
}

// Validate validates data against a schema
func (v *Validator) Validate(schemaName string, data map[string]interface{}) *ValidationResult {
	schema, exists := v.schemas[schemaName]
	if !exists {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "schema",
				Code:    "SCHEMA_NOT_FOUND",
				Message: fmt.Sprintf("Validation schema '%s' not found", schemaName),
			}},
		}
	}

	result := &ValidationResult{
		Valid:  true,
		Errors: []ValidationError{},
		Data:   make(map[string]interface{}),
	}

	names := make([]string, 0, len(schema.Fields))
	for name := range schema.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v.validateField(name, schema.Fields[name], data, result)
	}

	for _, rule := range schema.Rules {
		if err := rule(result.Data); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   "schema",
				Code:    "SCHEMA_RULE_VIOLATION",
				Message: err.Error(),
			})
		}
	}

	return result
}

// validateField validates a single field
func (v *Validator) validateField(fieldName string, validator FieldValidator, data map[string]interface{}, result *ValidationResult) {
	value, exists := data[fieldName]

	if validator.Required && (!exists || value == nil || value == "") {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "REQUIRED_FIELD_MISSING",
			Message: fmt.Sprintf("Field '%s' is required", fieldName),
		})
		return
	}

	// Absent optional fields and empty strings are left out of the result
	if !exists || value == nil || value == "" {
		return
	}

	convertedValue, err := v.validateAndConvertType(fieldName, validator.Type, value)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "INVALID_TYPE",
			Message: err.Error(),
			Value:   value,
		})
		return
	}

	result.Data[fieldName] = convertedValue

	if strValue, ok := convertedValue.(string); ok && validator.Type == "string" {
		v.validateString(fieldName, validator, strValue, result)
	}

	if validator.Custom != nil {
		if err := validator.Custom(convertedValue); err != nil {
			result.Valid = false
			result.Errors = append(result.Errors, ValidationError{
				Field:   fieldName,
				Code:    "CUSTOM_VALIDATION_FAILED",
				Message: fmt.Sprintf("Field '%s': %s", fieldName, err.Error()),
				Value:   convertedValue,
			})
		}
	}
}

func (v *Validator) validateString(fieldName string, validator FieldValidator, strValue string, result *ValidationResult) {
	if validator.MinLength > 0 && len(strValue) < validator.MinLength {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "MIN_LENGTH_VIOLATION",
			Message: fmt.Sprintf("Field '%s' must be at least %d characters long", fieldName, validator.MinLength),
			Value:   strValue,
		})
	}

	if validator.MaxLength > 0 && len(strValue) > validator.MaxLength {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "MAX_LENGTH_VIOLATION",
			Message: fmt.Sprintf("Field '%s' must be at most %d characters long", fieldName, validator.MaxLength),
		})
	}

	if validator.Pattern != nil && !validator.Pattern.MatchString(strValue) {
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "PATTERN_MISMATCH",
			Message: fmt.Sprintf("Field '%s' does not match required pattern", fieldName),
			Value:   strValue,
		})
	}

	if len(validator.Options) > 0 {
		for _, option := range validator.Options {
			if strValue == option {
				return
			}
		}
		result.Valid = false
		result.Errors = append(result.Errors, ValidationError{
			Field:   fieldName,
			Code:    "INVALID_OPTION",
			Message: fmt.Sprintf("Field '%s' must be one of: %s", fieldName, strings.Join(validator.Options, ", ")),
			Value:   strValue,
		})
	}
}

// validateAndConvertType validates and converts value to the specified type
func (v *Validator) validateAndConvertType(fieldName, expectedType string, value interface{}) (interface{}, error) {
	switch expectedType {
	case "string":
		if str, ok := value.(string); ok {
			return str, nil
		}
		return nil, fmt.Errorf("field '%s' must be a string", fieldName)

	case "int":
		switch val := value.(type) {
		case int:
			return val, nil
		case float64:
			if val != float64(int(val)) {
				return nil, fmt.Errorf("field '%s' must be an integer", fieldName)
			}
			return int(val), nil
		case string:
			if intVal, err := strconv.Atoi(val); err == nil {
				return intVal, nil
			}
		}
		return nil, fmt.Errorf("field '%s' must be an integer", fieldName)

	case "bool":
		switch val := value.(type) {
		case bool:
			return val, nil
		case string:
			if boolVal, err := strconv.ParseBool(val); err == nil {
				return boolVal, nil
			}
		}
		return nil, fmt.Errorf("field '%s' must be a boolean", fieldName)

	default:
		return value, nil
	}
}

func formatOptions() []string {
	options := make([]string, 0, len(models.Formats))
	for _, f := range models.Formats {
		options = append(options, string(f))
	}
	return options
}

// registerBuiltinSchemas registers the command parameter schemas
func (v *Validator) registerBuiltinSchemas() {
	identifier := func(name string, required bool) FieldValidator {
		return FieldValidator{
			Name:      name,
			Type:      "string",
			Required:  required,
			MinLength: 1,
			MaxLength: 100,
			Pattern:   identifierPattern,
		}
	}
	format := FieldValidator{
		Name:    "format",
		Type:    "string",
		Options: formatOptions(),
	}

	v.RegisterSchema(&Schema{
		Name: SchemaRenderFrog,
		Fields: map[string]FieldValidator{
			"template":    identifier("template", false),
			"colorScheme": identifier("colorScheme", false),
			"format":      format,
		},
	})

	v.RegisterSchema(&Schema{
		Name: SchemaRandomFrog,
		Fields: map[string]FieldValidator{
			"colorScheme":  identifier("colorScheme", false),
			"randomScheme": {Name: "randomScheme", Type: "bool"},
			"format":       format,
		},
	})

	v.RegisterSchema(&Schema{
		Name: SchemaSearchTemplates,
		Fields: map[string]FieldValidator{
			"query": {
				Name:      "query",
				Type:      "string",
				MaxLength: 200,
			},
			"limit": {
				Name: "limit",
				Type: "int",
				Custom: func(value interface{}) error {
					limit, _ := value.(int)
					if limit < 0 || limit > MaxSearchLimit {
						return fmt.Errorf("must be between 0 and %d", MaxSearchLimit)
					}
					return nil
				},
			},
		},
	})

	v.RegisterSchema(&Schema{
		Name: SchemaFormatClipboard,
		Fields: map[string]FieldValidator{
			"ascii": {
				Name:      "ascii",
				Type:      "string",
				Required:  true,
				MaxLength: 100000,
			},
			"frogName": {
				Name:      "frogName",
				Type:      "string",
				MaxLength: 200,
			},
			"format": format,
		},
	})
}

// ToAppError converts validation result to AppError
func (result *ValidationResult) ToAppError() *errors.AppError {
	if result.Valid {
		return nil
	}

	if len(result.Errors) == 0 {
		return errors.ValidationError("Validation failed")
	}

	appErr := errors.ValidationError(result.Errors[0].Message)

	var details []string
	for _, validationErr := range result.Errors {
		details = append(details, fmt.Sprintf("%s: %s", validationErr.Field, validationErr.Message))
	}

	appErr.WithDetails(strings.Join(details, "; "))
	appErr.WithContext("validation_errors", result.Errors)

	return appErr
}

// GetValidatedData returns the validated and converted data
func (result *ValidationResult) GetValidatedData() map[string]interface{} {
	if !result.Valid {
		return nil
	}
	return result.Data
}
