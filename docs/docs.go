// Package docs holds the OpenAPI description served under /swagger.
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
        "/championships": {
            "get": {
                "produces": ["application/json"],
                "tags": ["championships"],
                "summary": "List championships",
                "parameters": [
                    {"type": "string", "description": "created, groups, knockout or completed", "name": "status", "in": "query"},
                    {"type": "integer", "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "integer", "description": "Page offset", "name": "offset", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["championships"],
                "summary": "Create a championship",
                "parameters": [
                    {"description": "Name, date and format", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.CreateChampionshipInput"}}
                ],
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/championships/{championshipID}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["championships"],
                "summary": "Get a championship with groups, standings and knockout",
                "parameters": [{"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "tags": ["championships"],
                "summary": "Delete a championship",
                "parameters": [{"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}}
            }
        },
        "/championships/{championshipID}/reset": {
            "post": {
                "produces": ["application/json"],
                "tags": ["championships"],
                "summary": "Drop groups and knockout, keeping roster and format",
                "parameters": [{"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/championships/{championshipID}/athletes": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["athletes"],
                "summary": "Register an athlete",
                "parameters": [
                    {"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true},
                    {"description": "Athlete", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.AthleteInput"}}
                ],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Roster locked"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/championships/{championshipID}/athletes/{athleteID}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["athletes"],
                "summary": "Update an athlete",
                "parameters": [
                    {"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true},
                    {"type": "string", "description": "Athlete ID", "name": "athleteID", "in": "path", "required": true},
                    {"description": "Athlete", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.AthleteInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            },
            "delete": {
                "tags": ["athletes"],
                "summary": "Remove an athlete",
                "parameters": [
                    {"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true},
                    {"type": "string", "description": "Athlete ID", "name": "athleteID", "in": "path", "required": true}
                ],
                "responses": {"204": {"description": "No Content"}, "404": {"description": "Not Found"}, "409": {"description": "Conflict"}}
            }
        },
        "/championships/{championshipID}/groups": {
            "post": {
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Seed athletes into groups and schedule the round robins",
                "parameters": [{"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Use a hand-made group assignment",
                "parameters": [
                    {"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true},
                    {"description": "Athlete ids per group", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/services.ManualGroupsInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/championships/{championshipID}/groups/{groupID}/standings": {
            "get": {
                "produces": ["application/json"],
                "tags": ["groups"],
                "summary": "Current standings of a group",
                "parameters": [
                    {"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true},
                    {"type": "string", "description": "Group ID", "name": "groupID", "in": "path", "required": true}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/championships/{championshipID}/matches/{matchID}/result": {
            "put": {
                "description": "Partial results keep the match open for live scoring.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Record or replace a match result",
                "parameters": [
                    {"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true},
                    {"type": "string", "description": "Match ID", "name": "matchID", "in": "path", "required": true},
                    {"description": "Sets, timeouts or walkover", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.resultInput"}}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}, "409": {"description": "Match locked"}, "422": {"description": "Unprocessable Entity"}}
            }
        },
        "/championships/{championshipID}/knockout": {
            "post": {
                "produces": ["application/json"],
                "tags": ["matches"],
                "summary": "Close the groups and draw the knockout brackets",
                "parameters": [{"type": "string", "description": "Championship ID", "name": "championshipID", "in": "path", "required": true}],
                "responses": {"201": {"description": "Created"}, "409": {"description": "Groups incomplete or wrong status"}, "422": {"description": "Unprocessable Entity"}}
            }
        }
    },
    "definitions": {
        "models.Config": {
            "type": "object",
            "properties": {
                "group_size": {"type": "integer"},
                "qualification_spots_per_group": {"type": "integer"},
                "groups_best_of": {"type": "integer"},
                "knockout_best_of": {"type": "integer"},
                "has_third_place": {"type": "boolean"},
                "has_repechage": {"type": "boolean"}
            }
        },
        "models.SetResult": {
            "type": "object",
            "properties": {
                "player1_score": {"type": "integer"},
                "player2_score": {"type": "integer"}
            }
        },
        "models.Timeouts": {
            "type": "object",
            "properties": {
                "player1": {"type": "boolean"},
                "player2": {"type": "boolean"}
            }
        },
        "services.CreateChampionshipInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "date": {"type": "string"},
                "config": {"$ref": "#/definitions/models.Config"}
            }
        },
        "services.AthleteInput": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "is_seeded": {"type": "boolean"},
                "seed_number": {"type": "integer"},
                "is_virtual": {"type": "boolean"}
            }
        },
        "services.ManualGroupsInput": {
            "type": "object",
            "properties": {
                "groups": {"type": "array", "items": {"type": "array", "items": {"type": "string"}}}
            }
        },
        "handlers.resultInput": {
            "type": "object",
            "properties": {
                "sets": {"type": "array", "items": {"$ref": "#/definitions/models.SetResult"}},
                "timeouts": {"$ref": "#/definitions/models.Timeouts"},
                "is_walkover": {"type": "boolean"},
                "walkover_winner_id": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Table Tennis Championship API",
	Description:      "Groups, standings and knockout brackets for table tennis championships.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
