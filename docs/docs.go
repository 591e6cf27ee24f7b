// Package docs holds the OpenAPI document served at /swagger.
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
        "/meetings": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Create a meeting",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.CreateMeetingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/suggestions": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Suggest titles and expected outcomes for a purpose",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.SuggestMeetingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}}
                }
            }
        },
        "/meetings/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Get a meeting",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{id}/outcomes": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Replace the expected outcomes of a draft meeting",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/meeting.ReplaceOutcomesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Meetings"],
                "summary": "Cancel a meeting",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{id}/schedule": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Scheduling"],
                "summary": "Schedule a draft meeting",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "schema": {"$ref": "#/definitions/meeting.ScheduleMeetingRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "412": {"description": "Precondition Failed", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{id}/capture": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Capture"],
                "summary": "Get the committed capture",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Capture"],
                "summary": "Submit a capture",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/capture.SubmitCaptureRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "409": {"description": "Already captured or cancelled", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/meetings/{id}/capture/eligibility": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Capture"],
                "summary": "Check whether a meeting can be captured",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}}
                }
            }
        },
        "/meetings/{id}/capture/seed": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Capture"],
                "summary": "Get the capture seed derived from expected outcomes",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}}
                }
            }
        },
        "/meetings/{id}/capture/quick-close": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Capture"],
                "summary": "Quick-close a meeting",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "409": {"description": "Already captured or cancelled", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        },
        "/scopes/{type}/{id}/awaiting-capture": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Capture"],
                "summary": "List meetings awaiting capture in a scope",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string", "enum": ["space", "area"]},
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/common.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/common.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "common.SuccessResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {}
            }
        },
        "common.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {"type": "integer"},
                "message": {"type": "string"},
                "info": {"type": "string"},
                "details": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "meeting.ScopeRequest": {
            "type": "object",
            "required": ["id", "type"],
            "properties": {
                "id": {"type": "string"},
                "type": {"type": "string", "enum": ["space", "area"]}
            }
        },
        "meeting.OutcomeRequest": {
            "type": "object",
            "required": ["label", "type"],
            "properties": {
                "label": {"type": "string"},
                "type": {"type": "string", "enum": ["decision", "action_item", "information", "custom"]},
                "provenance": {"type": "string", "enum": ["ai_suggested", "manual"]}
            }
        },
        "meeting.AttendeeRequest": {
            "type": "object",
            "required": ["email"],
            "properties": {
                "email": {"type": "string"},
                "display_name": {"type": "string"},
                "user_id": {"type": "string"},
                "attendee_type": {"type": "string", "enum": ["required", "optional"]},
                "is_owner": {"type": "boolean"}
            }
        },
        "meeting.CreateMeetingRequest": {
            "type": "object",
            "required": ["duration_minutes", "title"],
            "properties": {
                "title": {"type": "string"},
                "purpose": {"type": "string"},
                "duration_minutes": {"type": "integer"},
                "scope": {"$ref": "#/definitions/meeting.ScopeRequest"},
                "parent_task_id": {"type": "string"},
                "expected_outcomes": {"type": "array", "items": {"$ref": "#/definitions/meeting.OutcomeRequest"}},
                "attendees": {"type": "array", "items": {"$ref": "#/definitions/meeting.AttendeeRequest"}},
                "scheduled_start": {"type": "string"},
                "scheduled_end": {"type": "string"}
            }
        },
        "meeting.ReplaceOutcomesRequest": {
            "type": "object",
            "properties": {
                "expected_outcomes": {"type": "array", "items": {"$ref": "#/definitions/meeting.OutcomeRequest"}}
            }
        },
        "meeting.ScheduleMeetingRequest": {
            "type": "object",
            "properties": {
                "online_meeting": {"type": "boolean"}
            }
        },
        "meeting.SuggestMeetingRequest": {
            "type": "object",
            "required": ["purpose"],
            "properties": {
                "purpose": {"type": "string"}
            }
        },
        "capture.OutcomeResolutionRequest": {
            "type": "object",
            "required": ["label", "outcome_id", "status"],
            "properties": {
                "outcome_id": {"type": "string"},
                "label": {"type": "string"},
                "status": {"type": "string", "enum": ["resolved", "partially_resolved", "not_addressed", "deferred"]}
            }
        },
        "capture.DecisionRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "rationale": {"type": "string"},
                "owner_id": {"type": "string"},
                "outcome_id": {"type": "string"},
                "propagate_to_context": {"type": "boolean"},
                "confirmed": {"type": "boolean"}
            }
        },
        "capture.ActionItemRequest": {
            "type": "object",
            "required": ["id"],
            "properties": {
                "id": {"type": "string"},
                "text": {"type": "string"},
                "owner_id": {"type": "string"},
                "due_date": {"type": "string"},
                "convert_to_subtask": {"type": "boolean"}
            }
        },
        "capture.SubmitCaptureRequest": {
            "type": "object",
            "properties": {
                "version": {"type": "integer"},
                "summary": {"type": "string"},
                "outcome_resolutions": {"type": "array", "items": {"$ref": "#/definitions/capture.OutcomeResolutionRequest"}},
                "decisions": {"type": "array", "items": {"$ref": "#/definitions/capture.DecisionRequest"}},
                "action_items": {"type": "array", "items": {"$ref": "#/definitions/capture.ActionItemRequest"}},
                "capture_started_at": {"type": "string"},
                "capture_completed_at": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/v1",
	Schemes:          []string{},
	Title:            "Meeting Capture API",
	Description:      "Meeting lifecycle, scheduling and post-meeting capture orchestration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
