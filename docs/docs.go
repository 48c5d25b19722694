// Package docs registers the OpenAPI document served at /swagger/index.html.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/seats/hold": {
            "post": {
                "tags": ["seats"],
                "summary": "Hold seats for a checkout session",
                "description": "Holds every requested seat or none. Repeating the call with the same holder token extends the hold.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/seats.HoldSeatsRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/events/{id}/seats": {
            "get": {
                "tags": ["seats"],
                "summary": "Seat map of an event",
                "produces": ["application/json"],
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            },
            "put": {
                "security": [{"BearerAuth": []}],
                "tags": ["seats"],
                "summary": "Manually correct seat states",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/seats.OverwriteSeatsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/events/{id}/lock-seats": {
            "post": {
                "tags": ["seats"],
                "summary": "Hold seats of one event",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/seats.HoldSeatsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/events/{id}/release-seats": {
            "post": {
                "tags": ["seats"],
                "summary": "Release seats held by a checkout session",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/seats.ReleaseSeatsRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/orders": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Commit held seats into a paid order",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/orders.CreateOrderRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        },
        "/orders/{id}/cancel": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Cancel an order and free its seats",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/orders/{id}/refund-status": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["orders"],
                "summary": "Move an order through the refund workflow",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/orders.RefundStatusRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/orders/verify": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tickets"],
                "summary": "Check whether a ticket admits entry",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/orders.TicketLookupRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}}
            }
        },
        "/orders/check-in": {
            "post": {
                "security": [{"BearerAuth": []}],
                "tags": ["tickets"],
                "summary": "Consume a ticket at the door",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/orders.TicketLookupRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.StandardApiResponse"}}
                }
            }
        }
    },
    "definitions": {
        "response.StandardApiResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "status_code": {"type": "integer"},
                "message": {"type": "string"},
                "data": {},
                "errors": {}
            }
        },
        "seats.HoldSeatsRequest": {
            "type": "object",
            "required": ["seat_ids"],
            "properties": {
                "event_id": {"type": "string"},
                "seat_ids": {"type": "array", "items": {"type": "string"}},
                "holder_token": {"type": "string"},
                "ttl_seconds": {"type": "integer"}
            }
        },
        "seats.ReleaseSeatsRequest": {
            "type": "object",
            "required": ["seat_ids", "holder_token"],
            "properties": {
                "seat_ids": {"type": "array", "items": {"type": "string"}},
                "holder_token": {"type": "string"}
            }
        },
        "seats.OverwriteSeatsRequest": {
            "type": "object",
            "required": ["seats"],
            "properties": {
                "seats": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "seat_id": {"type": "string"},
                            "status": {"type": "string", "enum": ["AVAILABLE", "BOOKED"]}
                        }
                    }
                },
                "force": {"type": "boolean"}
            }
        },
        "orders.CreateOrderRequest": {
            "type": "object",
            "required": ["event_id", "seat_ids", "holder_token", "customer_name", "customer_email"],
            "properties": {
                "event_id": {"type": "string"},
                "seat_ids": {"type": "array", "items": {"type": "string"}},
                "holder_token": {"type": "string"},
                "customer_name": {"type": "string"},
                "customer_email": {"type": "string"},
                "coupon_code": {"type": "string"},
                "payment_mode": {"type": "string", "enum": ["CARD", "UPI", "WALLET", "CASH"]}
            }
        },
        "orders.RefundStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["PAID", "REFUND_REQUESTED", "REFUNDED"]}
            }
        },
        "orders.TicketLookupRequest": {
            "type": "object",
            "required": ["qr_payload"],
            "properties": {
                "qr_payload": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Box Office API",
	Description:      "Seat holds, checkout and door check-in for reserved-seating events.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
