package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/froggen/ascii-frog/internal/errors"
	"github.com/rs/zerolog"
)

func TestRenderFrogSchema(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name  string
		data  map[string]interface{}
		valid bool
	}{
		{"empty is valid", map[string]interface{}{}, true},
		{"all fields", map[string]interface{}{"template": "classic", "colorScheme": "tropical", "format": "html"}, true},
		{"empty strings are ignored", map[string]interface{}{"template": "", "colorScheme": ""}, true},
		{"bad template id", map[string]interface{}{"template": "../etc"}, false},
		{"unknown format", map[string]interface{}{"format": "sixel"}, false},
		{"non-string template", map[string]interface{}{"template": 42.0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := v.Validate(SchemaRenderFrog, tt.data)
			if result.Valid != tt.valid {
				t.Errorf("Expected valid=%v, got %v (%+v)", tt.valid, result.Valid, result.Errors)
			}
		})
	}
}

func TestValidateDropsUnknownFields(t *testing.T) {
	v := NewValidator()

	result := v.Validate(SchemaRenderFrog, map[string]interface{}{"template": "tiny", "extra": "x"})
	if !result.Valid {
		t.Fatalf("Expected valid, got %+v", result.Errors)
	}
	data := result.GetValidatedData()
	if _, ok := data["extra"]; ok {
		t.Error("Expected undeclared field to be dropped")
	}
	if data["template"] != "tiny" {
		t.Errorf("Expected template tiny, got %v", data["template"])
	}
}

func TestTypeConversion(t *testing.T) {
	v := NewValidator()

	result := v.Validate(SchemaRandomFrog, map[string]interface{}{"randomScheme": "true"})
	if !result.Valid || result.Data["randomScheme"] != true {
		t.Errorf("Expected string bool to convert, got %+v", result)
	}

	result = v.Validate(SchemaSearchTemplates, map[string]interface{}{"query": "frog", "limit": 5.0})
	if !result.Valid || result.Data["limit"] != 5 {
		t.Errorf("Expected JSON number to convert to int, got %+v", result)
	}

	result = v.Validate(SchemaSearchTemplates, map[string]interface{}{"limit": "2.5"})
	if result.Valid {
		t.Error("Expected fractional limit to fail")
	}

	result = v.Validate(SchemaSearchTemplates, map[string]interface{}{"limit": MaxSearchLimit + 1})
	if result.Valid {
		t.Error("Expected limit above the maximum to fail")
	}
}

func TestFormatClipboardRequiresASCII(t *testing.T) {
	v := NewValidator()

	result := v.Validate(SchemaFormatClipboard, map[string]interface{}{"frogName": "Tiny Frog"})
	if result.Valid {
		t.Fatal("Expected missing ascii to fail")
	}
	if result.Errors[0].Code != "REQUIRED_FIELD_MISSING" {
		t.Errorf("Expected REQUIRED_FIELD_MISSING, got %s", result.Errors[0].Code)
	}

	appErr := result.ToAppError()
	if appErr.Code != errors.ErrCodeValidation {
		t.Errorf("Expected VALIDATION_ERROR, got %s", appErr.Code)
	}
	if !strings.Contains(appErr.Details, "ascii") {
		t.Errorf("Expected details to name the field, got %q", appErr.Details)
	}
}

func TestUnknownSchema(t *testing.T) {
	result := NewValidator().Validate("nope", nil)
	if result.Valid || result.Errors[0].Code != "SCHEMA_NOT_FOUND" {
		t.Errorf("Expected SCHEMA_NOT_FOUND, got %+v", result)
	}
}

func TestErrorOrderIsStable(t *testing.T) {
	v := NewValidator()
	data := map[string]interface{}{"template": "a b", "colorScheme": "c d", "format": "x"}

	first := v.Validate(SchemaRenderFrog, data).ToAppError().Details
	for i := 0; i < 10; i++ {
		if got := v.Validate(SchemaRenderFrog, data).ToAppError().Details; got != first {
			t.Fatalf("Details changed between runs: %q vs %q", first, got)
		}
	}
	if !strings.HasPrefix(first, "colorScheme:") {
		t.Errorf("Expected fields in name order, got %q", first)
	}
}

func TestExtractRequestData(t *testing.T) {
	rv := NewRequestValidator(zerolog.Nop())

	mux := http.NewServeMux()
	var got map[string]interface{}
	mux.HandleFunc("POST /frogs/{id}", func(w http.ResponseWriter, r *http.Request) {
		data, err := rv.ExtractRequestData(r, "id")
		if err != nil {
			rv.WriteError(w, err)
			return
		}
		got = data
	})

	req := httptest.NewRequest(http.MethodPost, "/frogs/tiny?format=html&colorScheme=%00fire",
		strings.NewReader(`{"colorScheme":"neon","randomScheme":true}`))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got["id"] != "tiny" || got["format"] != "html" {
		t.Errorf("Expected path and query values, got %v", got)
	}
	if got["colorScheme"] != "neon" {
		t.Errorf("Expected body to override query, got %v", got["colorScheme"])
	}
	if got["randomScheme"] != true {
		t.Errorf("Expected JSON bool, got %v", got["randomScheme"])
	}
}

func TestExtractRequestDataRejectsBadBodies(t *testing.T) {
	rv := NewRequestValidator(zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"ascii":`))
	req.Header.Set("Content-Type", "application/json")
	if _, err := rv.ExtractRequestData(req); errors.GetAppError(err).Code != errors.ErrCodeValidation {
		t.Errorf("Expected VALIDATION_ERROR for broken JSON, got %v", err)
	}

	req = httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`ascii=x`))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if _, err := rv.ExtractRequestData(req); errors.GetAppError(err).Code != errors.ErrCodeInvalidFormat {
		t.Errorf("Expected INVALID_FORMAT for form body, got %v", err)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  fi\x00re\x1b \n"); got != "fire" {
		t.Errorf("Expected control characters removed, got %q", got)
	}
}
