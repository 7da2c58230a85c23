// Package api/openapi provides the OpenAPI 3.0 description of the HTTP API.
//
// KEY RESPONSIBILITIES:
// - Describe every route registered in routes() with its parameters and responses
// - Serve a Swagger UI page at /api/docs backed by /api/openapi.json
//
// INTEGRATION POINTS:
// - internal/api/server.go: paths here must track routes()
// - internal/validation/validator.go: parameter enums and limits mirror the schemas
// - internal/errors/handlers.go: ErrorResponse matches HTTPErrorHandler.BuildResponse()
package api

import (
	"net/http"

	"github.com/froggen/ascii-frog/internal/models"
	"github.com/froggen/ascii-frog/internal/validation"
)

const swaggerPage = `<!DOCTYPE html>
<html>
<head>
    <title>ascii-frog API Documentation</title>
    <link rel="stylesheet" type="text/css" href="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui.css" />
    <style>
        html { box-sizing: border-box; overflow-y: scroll; }
        *, *:before, *:after { box-sizing: inherit; }
        body { margin:0; background: #fafafa; }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4.15.5/swagger-ui-bundle.js"></script>
    <script>
        window.onload = function() {
            SwaggerUIBundle({
                url: '/api/openapi.json',
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [SwaggerUIBundle.presets.apis]
            });
        };
    </script>
</body>
</html>`

// handleOpenAPI serves the documentation page
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(swaggerPage))
}

// handleOpenAPISpec serves the OpenAPI JSON document
func (s *Server) handleOpenAPISpec(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, openAPISpec(s.service.Version()), http.StatusOK)
}

func jsonContent(ref string) map[string]interface{} {
	return map[string]interface{}{
		"application/json": map[string]interface{}{
			"schema": map[string]interface{}{"$ref": "#/components/schemas/" + ref},
		},
	}
}

func responses(okDescription string, errorCodes ...string) map[string]interface{} {
	out := map[string]interface{}{
		"200": map[string]interface{}{
			"description": okDescription,
			"content":     jsonContent("APIResponse"),
		},
	}
	descriptions := map[string]string{
		"400": "Invalid parameters",
		"404": "Template or color scheme not found",
	}
	for _, code := range errorCodes {
		out[code] = map[string]interface{}{
			"description": descriptions[code],
			"content":     jsonContent("ErrorResponse"),
		}
	}
	return out
}

func queryParam(name, description string, schema map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"in":          "query",
		"description": description,
		"required":    false,
		"schema":      schema,
	}
}

func formatParam() map[string]interface{} {
	formats := make([]string, 0, len(models.Formats))
	for _, f := range models.Formats {
		formats = append(formats, string(f))
	}
	return queryParam("format", "Output format", map[string]interface{}{
		"type":    "string",
		"enum":    formats,
		"default": string(models.FormatPlain),
	})
}

func get(summary string, params []map[string]interface{}, resp map[string]interface{}) map[string]interface{} {
	op := map[string]interface{}{"summary": summary, "responses": resp}
	if len(params) > 0 {
		op["parameters"] = params
	}
	return map[string]interface{}{"get": op}
}

func post(summary, bodySchema string, resp map[string]interface{}) map[string]interface{} {
	return map[string]interface{}{
		"post": map[string]interface{}{
			"summary": summary,
			"requestBody": map[string]interface{}{
				"required": true,
				"content":  jsonContent(bodySchema),
			},
			"responses": resp,
		},
	}
}

// openAPISpec returns the OpenAPI 3.0 document
func openAPISpec(version string) map[string]interface{} {
	schemeParam := queryParam("colorScheme", "Color scheme id", map[string]interface{}{"type": "string"})
	stringSchema := map[string]interface{}{"type": "string"}

	return map[string]interface{}{
		"openapi": "3.0.3",
		"info": map[string]interface{}{
			"title":       "ascii-frog API",
			"description": "Render ASCII-art frogs from templates and color schemes",
			"version":     version,
		},
		"paths": map[string]interface{}{
			"/api/templates": get("List templates", nil, responses("Template summaries")),
			"/api/frogs":     get("List templates (alias)", nil, responses("Template summaries")),
			"/api/templates/{id}": get("Render a template", []map[string]interface{}{
				{"name": "id", "in": "path", "required": true, "schema": stringSchema},
				schemeParam,
				formatParam(),
			}, responses("Rendered frog", "400", "404")),
			"/api/color-schemes": get("List color schemes", nil, responses("Scheme summaries")),
			"/api/generate-frog": post("Render a template from a JSON body", "GenerateRequest",
				responses("Rendered frog", "400", "404")),
			"/api/random-frog": get("Render a random template", []map[string]interface{}{
				schemeParam,
				queryParam("randomScheme", "Pick a random scheme when colorScheme is absent", map[string]interface{}{"type": "boolean"}),
				formatParam(),
			}, responses("Rendered frog", "400", "404")),
			"/api/search": get("Fuzzy search templates", []map[string]interface{}{
				queryParam("q", "Search query", stringSchema),
				queryParam("limit", "Maximum results", map[string]interface{}{
					"type": "integer", "minimum": 0, "maximum": validation.MaxSearchLimit,
				}),
			}, responses("Matching templates", "400")),
			"/api/terminal-config":  get("Terminal widget settings", nil, responses("Terminal configuration")),
			"/api/format-clipboard": post("Strip color markup for copying", "ClipboardRequest", responses("Plain text", "400")),
			"/api/health":           get("Health status", nil, responses("Health status")),
			"/health":               get("Liveness probe (bare status object)", nil, responses("Health status")),
		},
		"components": map[string]interface{}{
			"schemas": map[string]interface{}{
				"APIResponse": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"success":   map[string]interface{}{"type": "boolean"},
						"data":      map[string]interface{}{},
						"message":   stringSchema,
						"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
					},
					"required": []string{"success", "timestamp"},
				},
				"GenerateRequest": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"template":    map[string]interface{}{"type": "string", "default": "classic"},
						"frog":        map[string]interface{}{"type": "string", "description": "Alias of template"},
						"colorScheme": stringSchema,
						"format":      stringSchema,
					},
				},
				"ClipboardRequest": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"ascii":    stringSchema,
						"frogName": stringSchema,
						"format": map[string]interface{}{
							"type":        "string",
							"description": "Format the ascii was rendered in; defaults to ansi",
						},
					},
					"required": []string{"ascii"},
				},
				"ErrorResponse": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"success": map[string]interface{}{"type": "boolean"},
						"error": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"code":      stringSchema,
								"message":   stringSchema,
								"details":   stringSchema,
								"context":   map[string]interface{}{"type": "object"},
								"timestamp": map[string]interface{}{"type": "string", "format": "date-time"},
							},
							"required": []string{"code", "message", "timestamp"},
						},
					},
					"required": []string{"success", "error"},
				},
			},
		},
	}
}
