package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Student Schedule Intake API",
        "description": "Accepts weekly availability and class schedules submitted by students.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Submissions", "description": "Student availability and class schedule intake"},
        {"name": "Operations", "description": "Probes and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Liveness check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check (database ping)",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Prometheus exposition format"}
                }
            }
        },
        "/api/submit-schedule": {
            "post": {
                "tags": ["Submissions"],
                "summary": "Submit a student's availability and class schedule",
                "description": "Replaces every stored availability and class-schedule row for the student in one transaction.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [
                    {
                        "in": "body",
                        "name": "payload",
                        "required": true,
                        "schema": {"$ref": "#/definitions/SubmitScheduleRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "Stored", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Malformed body or missing studentId", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Submission throttle exceeded", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "500": {"description": "Storage failure; prior rows are kept", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "AvailabilityItem": {
            "type": "object",
            "required": ["day", "time", "type"],
            "properties": {
                "day": {"type": "integer", "example": 1},
                "time": {"type": "string", "example": "09:00-10:00"},
                "type": {"type": "string", "example": "available"}
            }
        },
        "ClassScheduleItem": {
            "type": "object",
            "required": ["day", "time"],
            "properties": {
                "day": {"type": "integer", "example": 1},
                "time": {"type": "string", "example": "10:00-11:00"}
            }
        },
        "SubmitScheduleRequest": {
            "type": "object",
            "required": ["studentId"],
            "properties": {
                "studentId": {"type": "string", "example": "20231234"},
                "availability": {"type": "array", "items": {"$ref": "#/definitions/AvailabilityItem"}},
                "classSchedule": {"type": "array", "items": {"$ref": "#/definitions/ClassScheduleItem"}}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "status": {"type": "string", "enum": ["success", "error"]},
                "message": {"type": "string"}
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
