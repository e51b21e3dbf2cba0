package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Course Advising API",
        "description": "Course catalogue, semester planning and schedule export for university advising",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http",
        "https"
    ],
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "security": [
        {"BearerAuth": []}
    ],
    "tags": [
        {"name": "Users", "description": "Registration, roles and account state"},
        {"name": "Categories", "description": "Course categories keyed by prefix"},
        {"name": "Semesters", "description": "Year and season pairs"},
        {"name": "Courses", "description": "Catalogue entries and their offerings"},
        {"name": "UserCourse", "description": "Planned and completed courses per user"},
        {"name": "Observability", "description": "Health checks and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Observability"],
                "summary": "Liveness check",
                "security": [],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Observability"],
                "summary": "Readiness check",
                "security": [],
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Observability"],
                "summary": "Prometheus exposition",
                "security": [],
                "produces": ["text/plain"],
                "responses": {"200": {"description": "Metrics"}}
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Metrics snapshot (admin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users (director)",
                "parameters": [
                    {"name": "role", "in": "query", "type": "string", "enum": ["user", "director", "admin"]},
                    {"name": "enabled", "in": "query", "type": "boolean"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/limit"},
                    {"$ref": "#/parameters/offset"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Users"],
                "summary": "Register the session user",
                "responses": {
                    "200": {"description": "Already registered", "schema": {"$ref": "#/definitions/User"}},
                    "201": {"description": "Registered", "schema": {"$ref": "#/definitions/User"}},
                    "401": {"description": "Invalid session", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/me": {
            "get": {
                "tags": ["Users"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "403": {"description": "Not registered", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get a user (self or director)",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update a user; role and enabled require admin",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/User"}},
                    "400": {"description": "Validation error", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete a user (admin)",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/schedule": {
            "get": {
                "tags": ["Users"],
                "summary": "Schedule for a user, optionally exported",
                "produces": ["application/json", "text/csv", "application/pdf"],
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "format", "in": "query", "type": "string", "enum": ["json", "csv", "pdf"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/Schedule"}},
                    "400": {"description": "Unknown format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/categories": {
            "get": {
                "tags": ["Categories"],
                "summary": "List categories",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/limit"},
                    {"$ref": "#/parameters/offset"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Categories"],
                "summary": "Create a category (director)",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCategoryRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Category"}},
                    "409": {"description": "Prefix taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/categories/{id}": {
            "get": {
                "tags": ["Categories"],
                "summary": "Get a category",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Category"}}}
            },
            "put": {
                "tags": ["Categories"],
                "summary": "Update a category (director)",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCategoryRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Category"}}}
            },
            "delete": {
                "tags": ["Categories"],
                "summary": "Delete a category (director)",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "Deleted"}}
            }
        },
        "/semesters": {
            "get": {
                "tags": ["Semesters"],
                "summary": "List semesters",
                "parameters": [
                    {"name": "year", "in": "query", "type": "integer"},
                    {"name": "type", "in": "query", "type": "string", "enum": ["winter", "spring", "summer", "fall"]},
                    {"$ref": "#/parameters/limit"},
                    {"$ref": "#/parameters/offset"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Semesters"],
                "summary": "Create a semester (director)",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Semester"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/Semester"}},
                    "409": {"description": "Duplicate", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/semesters/{id}": {
            "get": {
                "tags": ["Semesters"],
                "summary": "Get a semester",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Semester"}}}
            },
            "put": {
                "tags": ["Semesters"],
                "summary": "Update a semester (director)",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/Semester"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/Semester"}}}
            },
            "delete": {
                "tags": ["Semesters"],
                "summary": "Delete a semester (director)",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "Deleted"}}
            }
        },
        "/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "parameters": [
                    {"name": "category", "in": "query", "type": "string"},
                    {"name": "search", "in": "query", "type": "string"},
                    {"$ref": "#/parameters/limit"},
                    {"$ref": "#/parameters/offset"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create a course (director)",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/CourseDetail"}},
                    "400": {"description": "Unknown category or semester", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get a course with its category and semesters",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseDetail"}}}
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update a course (director)",
                "parameters": [
                    {"$ref": "#/parameters/id"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/CourseDetail"}}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete a course (director)",
                "parameters": [{"$ref": "#/parameters/id"}],
                "responses": {"200": {"description": "Deleted"}}
            }
        },
        "/userCourse": {
            "get": {
                "tags": ["UserCourse"],
                "summary": "List a user's courses",
                "parameters": [
                    {"name": "userId", "in": "query", "type": "integer"},
                    {"name": "semesterId", "in": "query", "type": "integer"},
                    {"name": "taken", "in": "query", "type": "boolean"},
                    {"$ref": "#/parameters/limit"},
                    {"$ref": "#/parameters/offset"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["UserCourse"],
                "summary": "Plan a course in a semester",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserCourseRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/UserCourse"}},
                    "409": {"description": "Already planned", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["UserCourse"],
                "summary": "Mark a planned course taken or untaken",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UserCourseRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/UserCourse"}}}
            },
            "delete": {
                "tags": ["UserCourse"],
                "summary": "Remove a planned course; body or query parameters",
                "parameters": [
                    {"name": "userId", "in": "query", "type": "integer"},
                    {"name": "courseId", "in": "query", "type": "integer"},
                    {"name": "semesterId", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "id": {"name": "id", "in": "path", "required": true, "type": "integer"},
        "limit": {"name": "limit", "in": "query", "type": "integer", "default": 100},
        "offset": {"name": "offset", "in": "query", "type": "integer", "default": 0}
    },
    "definitions": {
        "User": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "externalId": {"type": "string"},
                "email": {"type": "string"},
                "enabled": {"type": "boolean"},
                "role": {"type": "string", "enum": ["user", "director", "admin"]}
            }
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "role": {"type": "string", "enum": ["user", "director", "admin"]},
                "enabled": {"type": "boolean"}
            }
        },
        "Category": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "prefix": {"type": "string"}
            }
        },
        "CreateCategoryRequest": {
            "type": "object",
            "required": ["name", "prefix"],
            "properties": {
                "name": {"type": "string"},
                "prefix": {"type": "string", "maxLength": 16}
            }
        },
        "Semester": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "year": {"type": "integer"},
                "type": {"type": "string", "enum": ["winter", "spring", "summer", "fall"]}
            }
        },
        "CourseDetail": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "name": {"type": "string"},
                "section": {"type": "string"},
                "credits": {"type": "integer"},
                "categoryPrefix": {"type": "string"},
                "categoryName": {"type": "string"},
                "semesters": {"type": "array", "items": {"$ref": "#/definitions/Semester"}}
            }
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["name", "section", "category"],
            "properties": {
                "name": {"type": "string"},
                "section": {"type": "string"},
                "credits": {"type": "integer", "minimum": 0, "maximum": 30},
                "category": {"type": "string"},
                "semesterIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "section": {"type": "string"},
                "credits": {"type": "integer"},
                "category": {"type": "string"},
                "addSemesterIds": {"type": "array", "items": {"type": "integer"}},
                "removeSemesterIds": {"type": "array", "items": {"type": "integer"}}
            }
        },
        "UserCourse": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "courseId": {"type": "integer"},
                "semesterId": {"type": "integer"},
                "taken": {"type": "boolean"}
            }
        },
        "UserCourseRequest": {
            "type": "object",
            "required": ["courseId", "semesterId"],
            "properties": {
                "userId": {"type": "integer", "description": "defaults to the caller"},
                "courseId": {"type": "integer"},
                "semesterId": {"type": "integer"},
                "taken": {"type": "boolean"}
            }
        },
        "Schedule": {
            "type": "object",
            "properties": {
                "userId": {"type": "integer"},
                "totalCredits": {"type": "integer"},
                "takenCredits": {"type": "integer"},
                "semesters": {
                    "type": "array",
                    "items": {
                        "type": "object",
                        "properties": {
                            "semester": {"$ref": "#/definitions/Semester"},
                            "credits": {"type": "integer"},
                            "courses": {"type": "array", "items": {"type": "object"}}
                        }
                    }
                }
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "limit": {"type": "integer"},
                "offset": {"type": "integer"},
                "totalCount": {"type": "integer"}
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
