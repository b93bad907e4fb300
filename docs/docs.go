// Package docs registers the OpenAPI document served under /swagger/.
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
        "/auth/signup": {"post": {"tags": ["auth"], "summary": "Create an account and its profile", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "409": {"description": "Conflict"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Exchange email and password for a bearer token", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/industries": {"get": {"tags": ["profile"], "summary": "List industries", "responses": {"200": {"description": "OK"}}}},
        "/interests": {"get": {"tags": ["profile"], "summary": "List interests", "responses": {"200": {"description": "OK"}}}},
        "/events": {"get": {"tags": ["events"], "summary": "List active events", "responses": {"200": {"description": "OK"}}}},
        "/events/next": {"get": {"tags": ["events"], "summary": "Next upcoming event with countdown", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/events/{slug}": {"get": {"tags": ["events"], "summary": "Get an active event by slug", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/events/{slug}/countdown": {"get": {"tags": ["events"], "summary": "Time remaining until an event", "parameters": [{"name": "slug", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/profile/me": {
            "get": {"tags": ["profile"], "summary": "Current user's profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}},
            "patch": {"tags": ["profile"], "summary": "Update the current user's profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}, "401": {"description": "Unauthorized"}}}
        },
        "/portal/events": {"get": {"tags": ["portal"], "summary": "Open events with the caller's registration status", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/portal/events/{eventID}/interest": {"post": {"tags": ["portal"], "summary": "Express interest in an event", "security": [{"BearerAuth": []}], "parameters": [{"name": "eventID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "Already registered"}, "201": {"description": "Created"}, "409": {"description": "Precondition failed"}}}},
        "/portal/registrations": {"get": {"tags": ["portal"], "summary": "The caller's registrations", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/portal/registrations/{registrationID}/confirm": {"post": {"tags": ["portal"], "summary": "Confirm attendance of an approved registration", "security": [{"BearerAuth": []}], "parameters": [{"name": "registrationID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}, "409": {"description": "Precondition failed"}}}},
        "/admin/dashboard": {"get": {"tags": ["admin"], "summary": "Registration statistics and recent activity", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/registrations": {"get": {"tags": ["admin"], "summary": "List registrations", "security": [{"BearerAuth": []}], "parameters": [{"name": "event_id", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}], "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/admin/registrations/{registrationID}/approve": {"post": {"tags": ["admin"], "summary": "Approve an interested registration", "security": [{"BearerAuth": []}], "parameters": [{"name": "registrationID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Precondition failed"}}}},
        "/admin/registrations/{registrationID}/reject": {"post": {"tags": ["admin"], "summary": "Reject an interested registration", "security": [{"BearerAuth": []}], "parameters": [{"name": "registrationID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Precondition failed"}}}},
        "/admin/registrations/{registrationID}/check-in": {"post": {"tags": ["admin"], "summary": "Mark a confirmed registration as attended", "security": [{"BearerAuth": []}], "parameters": [{"name": "registrationID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Precondition failed"}}}},
        "/admin/events": {
            "get": {"tags": ["admin"], "summary": "All events with registration counts", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Create an event", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/admin/events/{eventID}": {"patch": {"tags": ["admin"], "summary": "Toggle event visibility or registration", "security": [{"BearerAuth": []}], "parameters": [{"name": "eventID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}},
        "/admin/profiles": {"get": {"tags": ["admin"], "summary": "Paginated profile listing", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/admin/profiles/{profileID}/admin": {"put": {"tags": ["admin"], "summary": "Grant or revoke the admin role", "security": [{"BearerAuth": []}], "parameters": [{"name": "profileID", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Precondition failed"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "EFG Events Portal API",
	Description:      "Attendee registration, review and check-in for EFG conference events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
