// Package docs holds the swagger document served under /swagger. Keep it in
// step with the @Param annotations on the handlers.
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
        "/announcements/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Announcements"],
                "summary": "Search announcements",
                "parameters": [
                    {"type": "number", "description": "Minimum price", "name": "startPrice", "in": "query"},
                    {"type": "number", "description": "Maximum price", "name": "endPrice", "in": "query"},
                    {"type": "number", "description": "Minimum area", "name": "startArea", "in": "query"},
                    {"type": "number", "description": "Maximum area", "name": "endArea", "in": "query"},
                    {"type": "string", "description": "Heating type fragment", "name": "heatingType", "in": "query"},
                    {"type": "string", "description": "City fragment", "name": "city", "in": "query"},
                    {"type": "boolean", "description": "Has parking", "name": "parking", "in": "query"},
                    {"type": "string", "description": "Author phone fragment", "name": "phoneNumber", "in": "query"},
                    {"type": "string", "description": "SALE or RENT fragment", "name": "type", "in": "query"},
                    {"type": "string", "description": "Author first name fragment", "name": "authorName", "in": "query"},
                    {"type": "string", "description": "Author last name fragment", "name": "authorSurname", "in": "query"},
                    {"type": "string", "description": "Property name fragment", "name": "propertyName", "in": "query"},
                    {"type": "string", "description": "Country fragment", "name": "country", "in": "query"},
                    {"type": "string", "description": "Street fragment", "name": "street", "in": "query"},
                    {"type": "boolean", "description": "Has balcony", "name": "balcony", "in": "query"},
                    {"type": "boolean", "description": "Is furnished", "name": "furnished", "in": "query"},
                    {"type": "boolean", "description": "Has air conditioning", "name": "airConditioning", "in": "query"},
                    {"type": "integer", "description": "Zero-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "description": "price,desc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.Announcement"}}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/announcements/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Announcements"],
                "summary": "Get announcement",
                "parameters": [{"type": "string", "description": "Announcement ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Announcement"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            },
            "delete": {
                "security": [{"BearerAuth": []}],
                "tags": ["Announcements"],
                "summary": "Delete announcement",
                "parameters": [{"type": "string", "description": "Announcement ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "204": {"description": "No Content"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/types.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/announcements/{id}/reports": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Announcements"],
                "summary": "Report announcement",
                "parameters": [
                    {"type": "string", "description": "Announcement ID", "name": "id", "in": "path", "required": true},
                    {"description": "Reason", "name": "report", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.CreateReportRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.Report"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/announcements/{id}/images": {
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Announcements"],
                "summary": "Upload announcement image",
                "parameters": [
                    {"type": "string", "description": "Announcement ID", "name": "id", "in": "path", "required": true},
                    {"type": "file", "description": "Image", "name": "file", "in": "formData", "required": true}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.Image"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.Response"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [{"description": "Credentials", "name": "credentials", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TokenResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Register",
                "parameters": [{"description": "New account", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/types.User"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/types.Response"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/auth/refresh": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Refresh token",
                "parameters": [{"description": "Current token", "name": "token", "in": "body", "required": true, "schema": {"$ref": "#/definitions/types.RefreshTokenRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.TokenResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/companies/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "Search companies",
                "parameters": [
                    {"type": "string", "description": "Name fragment", "name": "name", "in": "query"},
                    {"type": "string", "description": "Email fragment", "name": "email", "in": "query"},
                    {"type": "string", "description": "Phone fragment", "name": "phoneNumber", "in": "query"},
                    {"type": "string", "description": "Country fragment", "name": "country", "in": "query"},
                    {"type": "string", "description": "City fragment", "name": "city", "in": "query"},
                    {"type": "integer", "description": "Zero-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "description": "name,asc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.Company"}}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/companies/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Company"],
                "summary": "Get company",
                "parameters": [{"type": "string", "description": "Company ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.Company"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/users/search": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Filters active users. companyName only matches members with an accepted company verification.",
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Search users",
                "parameters": [
                    {"type": "string", "description": "First name fragment", "name": "firstName", "in": "query"},
                    {"type": "string", "description": "Last name fragment", "name": "lastName", "in": "query"},
                    {"type": "string", "description": "Email fragment", "name": "email", "in": "query"},
                    {"type": "string", "description": "Phone fragment", "name": "phoneNumber", "in": "query"},
                    {"type": "string", "description": "Company name fragment", "name": "companyName", "in": "query"},
                    {"type": "integer", "description": "Zero-based page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "size", "in": "query"},
                    {"type": "string", "description": "lastName,asc", "name": "sort", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/types.User"}}},
                    "400": {"description": "Invalid Input", "schema": {"$ref": "#/definitions/types.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["User"],
                "summary": "Get user",
                "parameters": [{"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/types.User"}},
                    "404": {"description": "User Not Found", "schema": {"$ref": "#/definitions/types.Response"}}
                }
            }
        }
    },
    "definitions": {
        "types.Announcement": {"type": "object"},
        "types.Company": {"type": "object"},
        "types.CreateReportRequest": {"type": "object", "properties": {"reason": {"type": "string"}}},
        "types.Image": {"type": "object"},
        "types.LoginRequest": {"type": "object", "properties": {"email": {"type": "string"}, "password": {"type": "string"}}},
        "types.RefreshTokenRequest": {"type": "object", "properties": {"token": {"type": "string"}}},
        "types.RegisterRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "first_name": {"type": "string"},
                "last_name": {"type": "string"},
                "phone_number": {"type": "string"}
            }
        },
        "types.Report": {"type": "object"},
        "types.Response": {"type": "object", "properties": {"success": {"type": "boolean"}, "message": {"type": "string"}}},
        "types.TokenResponse": {"type": "object", "properties": {"token": {"type": "string"}, "expires_at": {"type": "integer"}}},
        "types.User": {"type": "object"}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "Real Estate Ads API",
	Description:      "Announcement, company and user search behind a token gate.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
