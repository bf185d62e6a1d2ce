package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Auto Attendance Tracker API",
        "description": "Classroom, student and attendance tracking backend",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Registration and login"},
        {"name": "Classrooms", "description": "Classroom management and retrieval"},
        {"name": "Students", "description": "Students embedded in a classroom"},
        {"name": "Attendance", "description": "Per-day attendance records"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Auth"],
                "summary": "Register account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Email already taken"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Login",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/classrooms": {
            "post": {
                "tags": ["Classrooms"],
                "summary": "Create classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassroomRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed"}
                }
            },
            "get": {
                "tags": ["Classrooms"],
                "summary": "List the caller's classrooms",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/classrooms/{classroomId}": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Get classroom with students and attendance",
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Classroom not found"}
                }
            },
            "patch": {
                "tags": ["Classrooms"],
                "summary": "Update classroom fields",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ClassroomPatch"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Classroom not found"}
                }
            },
            "delete": {
                "tags": ["Classrooms"],
                "summary": "Delete classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Classroom not found"}
                }
            }
        },
        "/classrooms/{classroomId}/students": {
            "post": {
                "tags": ["Students"],
                "summary": "Add student to classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPayload"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Classroom not found"}
                }
            }
        },
        "/classrooms/{classroomId}/students/{studentId}": {
            "patch": {
                "tags": ["Students"],
                "summary": "Update student in classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentPatch"}}
                ],
                "responses": {
                    "204": {"description": "Updated"},
                    "404": {"description": "Classroom or student not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Remove student from classroom",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "studentId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Classroom or student not found"}
                }
            }
        },
        "/classrooms/{classroomId}/attendance": {
            "post": {
                "tags": ["Attendance"],
                "summary": "Add attendance record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/AttendancePayload"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "403": {"description": "Forbidden"},
                    "404": {"description": "Classroom not found"}
                }
            }
        },
        "/classrooms/{classroomId}/attendance/export": {
            "get": {
                "tags": ["Attendance"],
                "summary": "Export attendance as CSV or PDF",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Classroom not found"}
                }
            }
        },
        "/classrooms/{classroomId}/attendance/{attendanceId}": {
            "delete": {
                "tags": ["Attendance"],
                "summary": "Remove attendance record",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"name": "classroomId", "in": "path", "required": true, "type": "string"},
                    {"name": "attendanceId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "404": {"description": "Classroom or record not found"}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "required": ["email", "password", "full_name"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string", "minLength": 8},
                "full_name": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateClassroomRequest": {
            "type": "object",
            "required": ["name", "start_year", "end_year"],
            "properties": {
                "name": {"type": "string"},
                "start_year": {"type": "integer", "minimum": 1900, "maximum": 3000},
                "end_year": {"type": "integer", "minimum": 1900, "maximum": 3000},
                "image_url": {"type": "string"},
                "students": {"type": "array", "items": {"$ref": "#/definitions/StudentPayload"}}
            }
        },
        "ClassroomPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_year": {"type": "integer"},
                "end_year": {"type": "integer"},
                "image_url": {"type": "string"}
            }
        },
        "StudentPayload": {
            "type": "object",
            "required": ["name", "adm_no", "image_url"],
            "properties": {
                "name": {"type": "string"},
                "adm_no": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "StudentPatch": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "adm_no": {"type": "string"},
                "image_url": {"type": "string"}
            }
        },
        "AttendancePayload": {
            "type": "object",
            "required": ["day"],
            "properties": {
                "day": {"type": "string", "format": "date-time"},
                "presentees": {"type": "array", "items": {"type": "string"}}
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
                "error": {"$ref": "#/definitions/APIError"}
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
