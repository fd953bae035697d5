// Package docs registers the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/api/v1/extract": {
            "post": {
                "description": "Fetches the page, discovers its images in document order and runs text recognition on each one.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Extract text from every image on a page",
                "parameters": [
                    {"type": "string", "description": "Recognition provider API key", "name": "X-API-Key", "in": "header", "required": true},
                    {"description": "Target page", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ExtractRequest"}}
                ],
                "responses": {
                    "200": {"description": "Ordered per-image results", "schema": {"$ref": "#/definitions/domain.BatchResult"}},
                    "400": {"description": "Missing API key or invalid URL", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "422": {"description": "No images found on the page", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Page could not be fetched", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/analyze-image": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["extraction"],
                "summary": "Extract text from a single uploaded image",
                "parameters": [
                    {"type": "string", "description": "Recognition provider API key", "name": "X-API-Key", "in": "header", "required": true},
                    {"description": "Base64 image or data URI", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.AnalyzeImageRequest"}}
                ],
                "responses": {
                    "200": {"description": "Recognized text", "schema": {"$ref": "#/definitions/domain.RecognitionOutcome"}},
                    "400": {"description": "Missing API key or image data", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "429": {"description": "Provider rate limited", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}},
                    "502": {"description": "Recognition failed", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/api/v1/export": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/csv", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"],
                "tags": ["export"],
                "summary": "Export results as CSV or XLSX",
                "parameters": [
                    {"type": "string", "default": "csv", "description": "csv or xlsx", "name": "format", "in": "query"},
                    {"description": "Results to export", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handler.ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Export file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format or empty result list", "schema": {"$ref": "#/definitions/handler.ErrorResponseBody"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "domain.ExtractionResult": {
            "type": "object",
            "properties": {
                "imageUrl": {"type": "string"},
                "text": {"type": "string"},
                "success": {"type": "boolean"},
                "outcome": {"type": "string", "enum": ["recognized", "not_detected", "failed"]},
                "reason": {"type": "string"},
                "stage": {"type": "string"}
            }
        },
        "domain.BatchResult": {
            "type": "object",
            "properties": {
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.ExtractionResult"}},
                "successCount": {"type": "integer"},
                "failureCount": {"type": "integer"},
                "total": {"type": "integer"}
            }
        },
        "domain.RecognitionOutcome": {
            "type": "object",
            "properties": {
                "outcome": {"type": "string", "enum": ["recognized", "not_detected", "failed"]},
                "text": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "handler.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "handler.ErrorResponseBody": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": false},
                "error": {"$ref": "#/definitions/handler.APIError"}
            }
        },
        "handler.ExtractRequest": {
            "type": "object",
            "properties": {
                "websiteUrl": {"type": "string", "example": "https://example.com/blog/post"}
            }
        },
        "handler.AnalyzeImageRequest": {
            "type": "object",
            "properties": {
                "imageData": {"type": "string", "example": "data:image/png;base64,iVBORw0KGgo..."}
            }
        },
        "handler.ExportRequest": {
            "type": "object",
            "properties": {
                "label": {"type": "string", "example": "example.com"},
                "results": {"type": "array", "items": {"$ref": "#/definitions/domain.ExtractionResult"}}
            }
        },
        "handler.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "example": "ok"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Image Text Extraction API",
	Description:      "Discovers the images on a web page and extracts their text with a vision model.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
