package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "SMA Timetable API",
        "description": "Weekly school timetable generation and conflict auditing",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": ["http"],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Teachers", "description": "Teachers and the subjects they can teach"},
        {"name": "Availability", "description": "Per-slot teacher availability"},
        {"name": "Classes", "description": "Classes"},
        {"name": "Requirements", "description": "Weekly periods per class and subject"},
        {"name": "Subjects", "description": "Subjects"},
        {"name": "Timetable", "description": "Timetable entries, generation and export"},
        {"name": "Conflicts", "description": "Timetable audit"},
        {"name": "Authentication", "description": "Admin tokens"}
    ],
    "paths": {
        "/teachers": {
            "get": {"tags": ["Teachers"], "summary": "List teachers", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}},
            "post": {
                "tags": ["Teachers"], "summary": "Create teacher", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeacherRequest"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "400": {"description": "Invalid payload"}}
            }
        },
        "/teachers/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "get": {"tags": ["Teachers"], "summary": "Get teacher", "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}},
            "patch": {
                "tags": ["Teachers"], "summary": "Update teacher", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTeacherRequest"}}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not found"}}
            },
            "delete": {"tags": ["Teachers"], "summary": "Delete teacher with its availability and entries", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/availability": {
            "post": {
                "tags": ["Availability"], "summary": "Set availability for one slot", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/SetAvailabilityRequest"}}],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid payload"}}
            }
        },
        "/availability/{teacherId}": {
            "get": {
                "tags": ["Availability"], "summary": "List teacher availability",
                "parameters": [{"name": "teacherId", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/classes": {
            "get": {"tags": ["Classes"], "summary": "List classes", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Classes"], "summary": "Create class", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassRequest"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/classes/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "get": {"tags": ["Classes"], "summary": "Get class", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Classes"], "summary": "Update class", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Classes"], "summary": "Delete class with its requirements and entries", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/classes/{id}/requirements": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "get": {"tags": ["Requirements"], "summary": "List class requirements", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Requirements"], "summary": "Upsert a requirement", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpsertRequirementRequest"}}],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/classes/requirements/{requirementId}": {
            "delete": {
                "tags": ["Requirements"], "summary": "Delete a requirement", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "requirementId", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/subjects": {
            "get": {"tags": ["Subjects"], "summary": "List subjects", "responses": {"200": {"description": "OK"}}},
            "post": {
                "tags": ["Subjects"], "summary": "Create subject", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}],
                "responses": {"201": {"description": "Created"}}
            }
        },
        "/subjects/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "get": {"tags": ["Subjects"], "summary": "Get subject", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Subjects"], "summary": "Update subject", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["Subjects"], "summary": "Delete subject with its requirements and entries", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/timetable": {
            "get": {
                "tags": ["Timetable"], "summary": "List entries",
                "parameters": [{"name": "classId", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK"}}
            },
            "post": {
                "tags": ["Timetable"], "summary": "Place a lesson", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateTimetableEntryRequest"}}],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Unqualified, unavailable or double-booked teacher"}}
            }
        },
        "/timetable/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
            "get": {"tags": ["Timetable"], "summary": "Get entry", "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["Timetable"], "summary": "Update entry", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "409": {"description": "Class slot taken"}}},
            "delete": {"tags": ["Timetable"], "summary": "Delete entry", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "Deleted"}}}
        },
        "/timetable/generate": {
            "post": {
                "tags": ["Timetable"], "summary": "Regenerate the whole timetable", "security": [{"BearerAuth": []}],
                "parameters": [{"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/GenerateTimetableRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/GenerateTimetableResponse"}}, "400": {"description": "Override outside 0..40 periods"}, "412": {"description": "No teachers, classes or subjects"}}
            }
        },
        "/timetable/export": {
            "get": {
                "tags": ["Timetable"], "summary": "Export a class timetable", "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "classId", "in": "query", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {"200": {"description": "File"}, "400": {"description": "Missing classId or unsupported format"}, "404": {"description": "Unknown class"}}
            }
        },
        "/conflicts": {
            "get": {
                "tags": ["Conflicts"], "summary": "Audit the timetable",
                "parameters": [{"name": "extended", "in": "query", "type": "boolean"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/Conflict"}}}}
            }
        },
        "/auth/token": {
            "post": {
                "tags": ["Authentication"], "summary": "Issue an access token",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK"}, "401": {"description": "Invalid credentials"}}
            }
        },
        "/auth/me": {
            "get": {"tags": ["Authentication"], "summary": "Describe the current token", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        }
    },
    "definitions": {
        "CreateTeacherRequest": {
            "type": "object",
            "required": ["name", "email"],
            "properties": {
                "name": {"type": "string"},
                "email": {"type": "string"},
                "subjects": {"type": "array", "items": {"type": "string"}}
            }
        },
        "SetAvailabilityRequest": {
            "type": "object",
            "required": ["teacher_id", "day", "period"],
            "properties": {
                "teacher_id": {"type": "string"},
                "day": {"type": "string", "enum": ["Monday", "Tuesday", "Wednesday", "Thursday", "Friday"]},
                "period": {"type": "string", "example": "8:00-9:00"},
                "available": {"type": "boolean", "default": true}
            }
        },
        "CreateClassRequest": {
            "type": "object",
            "required": ["name", "grade"],
            "properties": {
                "name": {"type": "string"},
                "grade": {"type": "string", "example": "Grade 10"},
                "student_count": {"type": "integer"}
            }
        },
        "UpsertRequirementRequest": {
            "type": "object",
            "required": ["subject_id"],
            "properties": {
                "subject_id": {"type": "string"},
                "periods_per_week": {"type": "integer", "minimum": 0, "maximum": 40}
            }
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {
                "name": {"type": "string"},
                "color": {"type": "string", "example": "#2563eb"}
            }
        },
        "CreateTimetableEntryRequest": {
            "type": "object",
            "required": ["class_id", "teacher_id", "subject_id", "day", "period"],
            "properties": {
                "class_id": {"type": "string"},
                "teacher_id": {"type": "string"},
                "subject_id": {"type": "string"},
                "day": {"type": "string"},
                "period": {"type": "string"}
            }
        },
        "GenerateTimetableRequest": {
            "type": "object",
            "properties": {
                "requirements": {
                    "type": "object",
                    "additionalProperties": {"type": "object", "additionalProperties": {"type": "integer"}}
                }
            }
        },
        "GenerateTimetableResponse": {
            "type": "object",
            "properties": {
                "entries_created": {"type": "integer"},
                "requested_periods": {"type": "integer"},
                "unfilled_periods": {"type": "integer"}
            }
        },
        "Conflict": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["teacher_double_booking", "teacher_unavailable", "unassigned_period", "missing_subject"]},
                "message": {"type": "string"},
                "day": {"type": "string"},
                "period": {"type": "string"},
                "teacher_id": {"type": "string"},
                "class_id": {"type": "string"},
                "subject_id": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
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
