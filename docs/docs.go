// Package docs registers the OpenAPI description served at /swagger/.
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
        "/api/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Liveness probe",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"type": "object", "additionalProperties": true}
                    }
                }
            }
        },
        "/api/runs": {
            "get": {
                "produces": ["application/json"],
                "tags": ["reports"],
                "summary": "Recent report runs",
                "parameters": [
                    {"type": "integer", "description": "Maximum number of runs", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Runs, newest first",
                        "schema": {"type": "array", "items": {"$ref": "#/definitions/store.Run"}}
                    },
                    "404": {
                        "description": "Run history is not configured",
                        "schema": {"$ref": "#/definitions/server.errorResponse"}
                    }
                }
            }
        },
        "/process-complete-report/": {
            "post": {
                "description": "Upload a workbook with a DATA sheet and receive the Region Summary, PERCENTAGE and watch-list sheets.",
                "consumes": ["multipart/form-data"],
                "produces": [
                    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
                    "application/json"
                ],
                "tags": ["Excel Processing"],
                "summary": "Generate the complete bank report",
                "parameters": [
                    {"type": "file", "description": "Excel workbook (.xlsx or .xls)", "name": "file", "in": "formData", "required": true},
                    {"type": "string", "description": "Set to json for the report set as JSON", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {
                        "description": "Report workbook",
                        "schema": {"type": "file"}
                    },
                    "400": {
                        "description": "Unusable upload",
                        "schema": {"$ref": "#/definitions/server.errorResponse"}
                    },
                    "413": {
                        "description": "Upload too large",
                        "schema": {"$ref": "#/definitions/server.errorResponse"}
                    },
                    "500": {
                        "description": "Unexpected error",
                        "schema": {"$ref": "#/definitions/server.errorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "models.ReportFailure": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "report": {"type": "string"}
            }
        },
        "server.errorResponse": {
            "type": "object",
            "properties": {
                "detail": {"type": "string"}
            }
        },
        "store.Run": {
            "type": "object",
            "properties": {
                "created_at": {"type": "string"},
                "duration": {"type": "integer"},
                "failures": {"type": "array", "items": {"$ref": "#/definitions/models.ReportFailure"}},
                "id": {"type": "string"},
                "mode": {"type": "string"},
                "records": {"type": "integer"},
                "reports": {"type": "integer"},
                "request_id": {"type": "string"},
                "source": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Combined Excel Report Generator",
	Description:      "Upload an Excel file to generate a multi-sheet report with Region Summary, Percentage Analysis, and KPI breakdowns.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
