// Package docs holds the OpenAPI description served at /swagger/.
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
        "/events": {
            "get": {
                "description": "Events ordered by date, undated events last. The first event is the default selection.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "List events",
                "responses": {
                    "200": {"description": "data is EventListResponse", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: persistence_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}}
                }
            }
        },
        "/events/current": {
            "get": {
                "description": "The most recently updated event, or status \"empty\" when none exists.",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Current event",
                "responses": {
                    "200": {"description": "data is CurrentEventResponse", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "503": {"description": "error.code: persistence_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}}
                }
            }
        },
        "/events/{eventID}": {
            "get": {
                "description": "Event detail. Unknown ids answer 404 with navigation \"redirect_event_list\".",
                "produces": ["application/json"],
                "tags": ["events"],
                "summary": "Get an event by ID",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "data is EventView", "schema": {"$ref": "#/definitions/helpers.APIResponse"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "503": {"description": "error.code: persistence_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}}
                }
            }
        },
        "/events/{eventID}/registrations": {
            "post": {
                "description": "Validates, stores the optional receipt, persists a pending registration and returns the WhatsApp handoff link.",
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Register for an event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "eventID", "in": "path", "required": true},
                    {"type": "string", "description": "Full name", "name": "full_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Phone", "name": "phone", "in": "formData", "required": true},
                    {"type": "string", "description": "pix (default) or in_person", "name": "payment_method", "in": "formData"},
                    {"type": "file", "description": "Payment receipt (PIX only)", "name": "receipt", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "data is RegistrationResponse", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "404": {"description": "error.code: not_found", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "502": {"description": "error.code: upload_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "503": {"description": "error.code: persistence_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}}
                }
            }
        },
        "/registrations": {
            "post": {
                "description": "Same as POST /events/{eventID}/registrations with the event taken from the event_id field.",
                "consumes": ["multipart/form-data", "application/json"],
                "produces": ["application/json"],
                "tags": ["registrations"],
                "summary": "Register for the selected event",
                "parameters": [
                    {"type": "string", "description": "Event ID", "name": "event_id", "in": "formData", "required": true},
                    {"type": "string", "description": "Full name", "name": "full_name", "in": "formData", "required": true},
                    {"type": "string", "description": "Phone", "name": "phone", "in": "formData", "required": true},
                    {"type": "string", "description": "pix (default) or in_person", "name": "payment_method", "in": "formData"},
                    {"type": "file", "description": "Payment receipt (PIX only)", "name": "receipt", "in": "formData"}
                ],
                "responses": {
                    "201": {"description": "data is RegistrationResponse", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "400": {"description": "error.code: bad_request", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "409": {"description": "error.code: conflict", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "502": {"description": "error.code: upload_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}},
                    "503": {"description": "error.code: persistence_failed", "schema": {"$ref": "#/definitions/controllers.Envelope"}}
                }
            }
        }
    },
    "definitions": {
        "helpers.APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "fields": {"type": "array", "items": {"type": "string"}}
            }
        },
        "helpers.APIResponse": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"}
            }
        },
        "controllers.Notice": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "description": {"type": "string"}
            }
        },
        "controllers.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "error": {"$ref": "#/definitions/helpers.APIError"},
                "notice": {"$ref": "#/definitions/controllers.Notice"},
                "navigation": {"type": "string"}
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
	Title:            "Event Registration API",
	Description:      "Church event registration: event catalog, registration submission and WhatsApp handoff.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
