// Package docs registers the OpenAPI description served at /api/swagger.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Login",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/LoginInput"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorResponse"}}}
            }
        },
        "/auth/forgot-password": {
            "post": {"tags": ["auth"], "summary": "Request a password reset code", "responses": {"200": {"description": "OK"}}}
        },
        "/auth/reset-password": {
            "post": {"tags": ["auth"], "summary": "Reset a password with an emailed code", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
        },
        "/organizer/{kind}-requests": {
            "get": {"tags": ["organizer"], "summary": "List own requests", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "kind", "type": "string", "required": true, "enum": ["resource", "media", "event", "super-hero"]}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["organizer"], "summary": "Submit a request for review", "security": [{"BearerAuth": []}], "parameters": [{"in": "path", "name": "kind", "type": "string", "required": true, "enum": ["resource", "media", "event", "super-hero"]}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/ErrorResponse"}}}}
        },
        "/admin/{kind}-requests/{id}": {
            "patch": {
                "tags": ["admin"],
                "summary": "Approve or deny a request",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "path", "name": "kind", "type": "string", "required": true, "enum": ["resource", "media", "event", "super-hero"]},
                    {"in": "path", "name": "id", "type": "integer", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/ReviewInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/public/{plural}": {
            "get": {
                "tags": ["public"],
                "summary": "Browse published content",
                "parameters": [
                    {"in": "path", "name": "plural", "type": "string", "required": true, "enum": ["resources", "media", "events", "super-heroes"]},
                    {"in": "query", "name": "tag", "type": "string"},
                    {"in": "query", "name": "targetAudience", "type": "string"},
                    {"in": "query", "name": "ageGroup", "type": "string"},
                    {"in": "query", "name": "q", "type": "string"}
                ],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/public/resources/download": {
            "post": {"tags": ["public"], "summary": "Count a document download", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/upload": {
            "post": {"tags": ["upload"], "summary": "Upload a base64 file to the media host", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}, "code": {"type": "string"}}
        },
        "LoginInput": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "ReviewInput": {
            "type": "object",
            "properties": {"status": {"type": "string", "enum": ["approved", "denied"]}, "adminReason": {"type": "string"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{"http", "https"},
	Title:            "Children.lk API",
	Description:      "Organizer submissions, admin review and the public parent catalog.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
