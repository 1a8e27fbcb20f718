package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Academy CRM API",
        "description": "Single-tenant football academy management API",
        "version": "0.1.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster management"},
        {"name": "Groups", "description": "Training group management"},
        {"name": "Payments", "description": "Payment ledger and invoicing"},
        {"name": "Dashboard", "description": "Staff dashboard aggregates"},
        {"name": "Portal", "description": "Student-facing portal"},
        {"name": "Exports", "description": "Async payment ledger exports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["Active", "Inactive"]},
                    {"name": "groupId", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Add student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}": {
            "get": {
                "tags": ["Students"],
                "summary": "Get student",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/group": {
            "put": {
                "tags": ["Students"],
                "summary": "Move student to another group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReassignStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/students/{id}/summary": {
            "get": {
                "tags": ["Students"],
                "summary": "Generate AI performance summary",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups": {
            "get": {
                "tags": ["Groups"],
                "summary": "List groups with member counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Groups"],
                "summary": "Add group",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateGroupRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{id}": {
            "get": {
                "tags": ["Groups"],
                "summary": "Get group detail",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/groups/{id}/members": {
            "post": {
                "tags": ["Groups"],
                "summary": "Enroll student into group",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AddMemberRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments": {
            "get": {
                "tags": ["Payments"],
                "summary": "List payments",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string", "enum": ["Paid", "Due", "Overdue"]},
                    {"name": "studentId", "in": "query", "type": "integer"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Payments"],
                "summary": "Record payment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RecordPaymentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/recent": {
            "get": {
                "tags": ["Payments"],
                "summary": "Latest settled payments",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/payments/invoices": {
            "post": {
                "tags": ["Payments"],
                "summary": "Generate monthly invoices",
                "parameters": [
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/GenerateInvoicesRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Dashboard overview",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/portal/me": {
            "get": {
                "tags": ["Portal"],
                "summary": "Portal view for the acting student",
                "parameters": [
                    {"name": "X-Student-ID", "in": "header", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports": {
            "post": {
                "tags": ["Exports"],
                "summary": "Queue a payment ledger export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}": {
            "get": {
                "tags": ["Exports"],
                "summary": "Export job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/exports/{id}/download": {
            "get": {
                "tags": ["Exports"],
                "summary": "Download a finished export",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"}
                }
            }
        }
    },
    "definitions": {
        "Student": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "dob": {"type": "string"},
                "group_id": {"type": "integer"},
                "contact": {"$ref": "#/definitions/Contact"},
                "status": {"type": "string"},
                "joined_date": {"type": "string"},
                "avatar_url": {"type": "string"},
                "performance": {"$ref": "#/definitions/Performance"}
            }
        },
        "Contact": {
            "type": "object",
            "properties": {
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"}
            }
        },
        "Performance": {
            "type": "object",
            "properties": {
                "goals": {"type": "integer"},
                "assists": {"type": "integer"},
                "attendance": {"type": "integer"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "dob": {"type": "string"},
                "group_id": {"type": "integer"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "address": {"type": "string"},
                "status": {"type": "string"},
                "joined_date": {"type": "string"}
            },
            "required": ["name", "dob", "group_id", "phone", "email", "status", "joined_date"]
        },
        "ReassignStudentRequest": {
            "type": "object",
            "properties": {
                "group_id": {"type": "integer"}
            },
            "required": ["group_id"]
        },
        "CreateGroupRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "coach": {"type": "string"},
                "monthly_fee": {"type": "integer"}
            },
            "required": ["name", "coach", "monthly_fee"]
        },
        "AddMemberRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"}
            },
            "required": ["student_id"]
        },
        "RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "student_id": {"type": "integer"},
                "amount": {"type": "integer"},
                "date": {"type": "string"},
                "due_date": {"type": "string"},
                "status": {"type": "string"}
            },
            "required": ["student_id", "amount", "due_date", "status"]
        },
        "GenerateInvoicesRequest": {
            "type": "object",
            "properties": {
                "as_of": {"type": "string"}
            }
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "status": {"type": "string", "enum": ["Paid", "Due", "Overdue"]}
            },
            "required": ["format"]
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "pagination": {"$ref": "#/definitions/Pagination"},
                "meta": {"type": "object"}
            }
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
