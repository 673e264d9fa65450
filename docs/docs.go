// Package docs holds the Swagger document served under /swagger.
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
        "/api/create-checkout-session": {
            "post": {
                "description": "Creates a hosted checkout session for a paid plan and returns its redirect URL.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["checkout"],
                "summary": "Create checkout session",
                "parameters": [
                    {
                        "description": "Plan and user",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/checkout.CreateSessionRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/checkout.CreateSessionResponse"}},
                    "400": {"description": "Missing plan or userId / Invalid plan", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "429": {"description": "Too Many Requests", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "500": {"description": "Internal server error", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/plans": {
            "get": {
                "produces": ["application/json"],
                "tags": ["subscription"],
                "summary": "List paid plans",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/subscription.PlanInfo"}}}
                }
            }
        },
        "/api/profile": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profile"],
                "summary": "Get current profile",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profile.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/diary": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["diary"],
                "summary": "List recent games",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/diary.ListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            },
            "post": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["diary"],
                "summary": "Record a game",
                "parameters": [
                    {
                        "description": "Game",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/diary.NewEntry"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/diary.Entry"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ValidationErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/workouts": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["workouts"],
                "summary": "List workouts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/workout.ListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/warmup-routines": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["workouts"],
                "summary": "List warm-up and cool-down routines",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/workout.ListResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/api/subscription": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["subscription"],
                "summary": "Get current subscription",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/subscription.Response"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with e-mail and password",
                "parameters": [
                    {
                        "description": "Credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.LoginRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Create an account",
                "parameters": [
                    {
                        "description": "Account data",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/auth.RegisterRequest"}
                    }
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/auth.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/api.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/api.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "End the session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.MessageResponse"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Describe the current session",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/auth.SessionResponse"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/api.HealthResponse"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "description": "Exposes Prometheus metrics in text format",
                "produces": ["text/plain"],
                "tags": ["system"],
                "summary": "Prometheus metrics",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "string"}}
                }
            }
        }
    },
    "definitions": {
        "api.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "api.MessageResponse": {
            "type": "object",
            "properties": {"message": {"type": "string"}}
        },
        "api.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "backend": {"type": "string"},
                "mode": {"type": "string"}
            }
        },
        "api.ValidationError": {
            "type": "object",
            "properties": {
                "field": {"type": "string"},
                "tag": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "api.ValidationErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "details": {"type": "array", "items": {"$ref": "#/definitions/api.ValidationError"}}
            }
        },
        "checkout.CreateSessionRequest": {
            "type": "object",
            "properties": {
                "plan": {"type": "string", "enum": ["monthly", "annual"]},
                "userId": {"type": "string"}
            }
        },
        "checkout.CreateSessionResponse": {
            "type": "object",
            "properties": {"url": {"type": "string"}}
        },
        "auth.LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "auth.RegisterRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"},
                "full_name": {"type": "string"}
            }
        },
        "auth.SessionResponse": {
            "type": "object",
            "properties": {
                "authenticated": {"type": "boolean"},
                "user_id": {"type": "string"},
                "email": {"type": "string"},
                "access_token": {"type": "string"},
                "refresh_token": {"type": "string"},
                "expires_in": {"type": "integer"},
                "confirmation_required": {"type": "boolean"}
            }
        },
        "diary.NewEntry": {
            "type": "object",
            "required": ["opponent_name", "result", "game_date"],
            "properties": {
                "opponent_name": {"type": "string"},
                "result": {"type": "string", "enum": ["win", "loss", "draw"]},
                "score_user": {"type": "integer"},
                "score_opponent": {"type": "integer"},
                "goals": {"type": "integer"},
                "assists": {"type": "integer"},
                "rating": {"type": "number"},
                "notes": {"type": "string"},
                "game_date": {"type": "string", "format": "date"}
            }
        },
        "diary.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "user_id": {"type": "string"},
                "opponent_name": {"type": "string"},
                "result": {"type": "string"},
                "score_user": {"type": "integer"},
                "score_opponent": {"type": "integer"},
                "goals": {"type": "integer"},
                "assists": {"type": "integer"},
                "rating": {"type": "number"},
                "notes": {"type": "string"},
                "game_date": {"type": "string", "format": "date"},
                "created_at": {"type": "string", "format": "date-time"}
            }
        },
        "diary.ListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"$ref": "#/definitions/diary.Entry"}},
                "loading": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "profile.Response": {
            "type": "object",
            "properties": {
                "profile": {"type": "object"},
                "display_name": {"type": "string"},
                "level": {"type": "integer"},
                "stats": {"type": "object"},
                "loading": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "subscription.PlanInfo": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price_cents": {"type": "integer"},
                "currency": {"type": "string"},
                "price_display": {"type": "string"},
                "period": {"type": "string"},
                "features": {"type": "array", "items": {"type": "string"}}
            }
        },
        "subscription.Response": {
            "type": "object",
            "properties": {
                "subscription": {"type": "object"},
                "is_premium": {"type": "boolean"},
                "loading": {"type": "boolean"},
                "error": {"type": "string"}
            }
        },
        "workout.ListResponse": {
            "type": "object",
            "properties": {
                "items": {"type": "array", "items": {"type": "object"}},
                "loading": {"type": "boolean"},
                "error": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Craque da Pelada API",
	Description:      "Backend for the Craque da Pelada football training app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
