// Package docs registers the OpenAPI description served under /swagger.
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
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/auth/me": {"get": {"tags": ["Auth"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "No session"}}}},
        "/auth/logout": {"post": {"tags": ["Auth"], "summary": "Sign out", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/entitlement": {"get": {"tags": ["Entitlement"], "summary": "Current entitlement", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "No session"}, "503": {"description": "Profile store unavailable"}}}},
        "/entitlement/limits/{feature}": {"get": {"tags": ["Entitlement"], "summary": "Feature limit check", "security": [{"BearerAuth": []}], "parameters": [{"name": "feature", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown feature"}}}},
        "/insights": {"get": {"tags": ["Insights"], "summary": "Generate insights", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "402": {"description": "Plan limit reached"}}}},
        "/insights/summary": {"get": {"tags": ["Insights"], "summary": "Insight summary", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "402": {"description": "Plan limit reached"}}}},
        "/clients": {
            "get": {"tags": ["Clients"], "summary": "List clients", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Clients"], "summary": "Create client", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "402": {"description": "Plan limit reached"}}}
        },
        "/clients/{id}": {
            "get": {"tags": ["Clients"], "summary": "Get client", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Clients"], "summary": "Update client", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Clients"], "summary": "Delete client", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/projects": {
            "get": {"tags": ["Projects"], "summary": "List projects", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Projects"], "summary": "Create project", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "402": {"description": "Plan limit reached"}}}
        },
        "/projects/{id}": {
            "get": {"tags": ["Projects"], "summary": "Get project", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Projects"], "summary": "Update project", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Projects"], "summary": "Delete project", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/invoices": {
            "get": {"tags": ["Invoices"], "summary": "List invoices", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Invoices"], "summary": "Create invoice", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "402": {"description": "Plan limit reached"}}}
        },
        "/invoices/{id}": {
            "get": {"tags": ["Invoices"], "summary": "Get invoice", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["Invoices"], "summary": "Update invoice", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Invoices"], "summary": "Delete invoice", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/invoices/{id}/send": {"post": {"tags": ["Invoices"], "summary": "Send invoice", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Not a draft"}}}},
        "/invoices/{id}/pay": {"post": {"tags": ["Invoices"], "summary": "Mark invoice paid", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Cannot be paid"}}}},
        "/time-entries": {
            "get": {"tags": ["TimeEntries"], "summary": "List time entries", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["TimeEntries"], "summary": "Create time entry", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "402": {"description": "Plan limit reached"}}}
        },
        "/time-entries/{id}": {
            "get": {"tags": ["TimeEntries"], "summary": "Get time entry", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "put": {"tags": ["TimeEntries"], "summary": "Update time entry", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["TimeEntries"], "summary": "Delete time entry", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "FreelanceHub API",
	Description:      "Client, project, invoice and time tracking API with trial entitlements and business insights.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
