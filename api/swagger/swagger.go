package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Citizen Portal API",
        "description": "Citizen services catalog, engagement logging and admin insights.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": ["http"],
    "tags": [
        {"name": "Services", "description": "Public service catalog"},
        {"name": "Engagements", "description": "Citizen interaction logging"},
        {"name": "Authentication", "description": "Admin session cookie"},
        {"name": "Admin", "description": "Insights, exports and catalog management (session cookie required)"},
        {"name": "Health", "description": "Probes and metrics"}
    ],
    "paths": {
        "/api/services": {
            "get": {
                "tags": ["Services"],
                "summary": "List services",
                "produces": ["application/json"],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Service"}}},
                    "503": {"description": "Store unavailable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/service/{id}": {
            "get": {
                "tags": ["Services"],
                "summary": "Get a service, or an empty object when unknown",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Service"}}
                }
            }
        },
        "/api/engagement": {
            "post": {
                "tags": ["Engagements"],
                "summary": "Log an engagement",
                "description": "Any body is accepted. Unreadable fields are stored as absent.",
                "consumes": ["application/json"],
                "parameters": [{"name": "payload", "in": "body", "schema": {"$ref": "#/definitions/EngagementInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Status"}}
                }
            }
        },
        "/api/ai/search": {
            "post": {
                "tags": ["Services"],
                "summary": "Semantic search placeholder",
                "responses": {
                    "200": {"description": "Not configured", "schema": {"type": "object", "properties": {"message": {"type": "string"}}}}
                }
            }
        },
        "/admin/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Admin login",
                "consumes": ["application/x-www-form-urlencoded"],
                "parameters": [
                    {"name": "username", "in": "formData", "required": true, "type": "string"},
                    {"name": "password", "in": "formData", "required": true, "type": "string"}
                ],
                "responses": {
                    "302": {"description": "Session cookie set, redirect to /admin"},
                    "401": {"description": "Login failed"}
                }
            }
        },
        "/api/admin/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "End the admin session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Status"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/admin/insights": {
            "get": {
                "tags": ["Admin"],
                "summary": "Aggregated engagement insights",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/InsightsReport"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/admin/engagements": {
            "get": {
                "tags": ["Admin"],
                "summary": "Newest engagements, newest first",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Engagement"}}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/admin/export_csv": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download engagements as CSV",
                "produces": ["text/csv"],
                "responses": {
                    "200": {"description": "engagements.csv attachment"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/admin/export_insights_pdf": {
            "get": {
                "tags": ["Admin"],
                "summary": "Download insights as PDF",
                "produces": ["application/pdf"],
                "responses": {
                    "200": {"description": "insights.pdf attachment"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/admin/services": {
            "get": {
                "tags": ["Admin"],
                "summary": "List services",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Service"}}}
                }
            },
            "post": {
                "tags": ["Admin"],
                "summary": "Create or replace a service",
                "consumes": ["application/json"],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Service"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Status"}},
                    "400": {"description": "id required", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/api/admin/services/{id}": {
            "delete": {
                "tags": ["Admin"],
                "summary": "Delete a service (idempotent)",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Status"}}
                }
            }
        },
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness check",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Status"}}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready", "schema": {"$ref": "#/definitions/Status"}},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Health"],
                "summary": "Prometheus exposition",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "Service": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "description": {"type": "string"},
                "category": {"type": "string"}
            }
        },
        "EngagementInput": {
            "type": "object",
            "properties": {
                "user_id": {"type": "string"},
                "age": {"type": "integer"},
                "job": {"type": "string"},
                "desires": {"type": "array", "items": {"type": "string"}},
                "question_clicked": {"type": "string"},
                "service": {"type": "string"}
            }
        },
        "Engagement": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string", "x-nullable": true},
                "age": {"type": "integer", "x-nullable": true},
                "job": {"type": "string", "x-nullable": true},
                "desires": {"type": "array", "items": {"type": "string"}},
                "question_clicked": {"type": "string", "x-nullable": true},
                "service": {"type": "string", "x-nullable": true},
                "timestamp": {"type": "string", "example": "2024-03-01T08:30:00.123456Z"}
            }
        },
        "InsightsReport": {
            "type": "object",
            "properties": {
                "age_groups": {"type": "object", "additionalProperties": {"type": "integer"}},
                "jobs": {"type": "object", "additionalProperties": {"type": "integer"}},
                "services": {"type": "object", "additionalProperties": {"type": "integer"}},
                "questions": {"type": "object", "additionalProperties": {"type": "integer"}},
                "desires": {"type": "object", "additionalProperties": {"type": "integer"}},
                "premium_suggestions": {"type": "array", "items": {"$ref": "#/definitions/PremiumLead"}}
            }
        },
        "PremiumLead": {
            "type": "object",
            "properties": {
                "user": {"type": "string"},
                "question": {"type": "string", "x-nullable": true},
                "count": {"type": "integer"}
            }
        },
        "Status": {
            "type": "object",
            "properties": {"status": {"type": "string"}}
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {"error": {"$ref": "#/definitions/APIError"}}
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
