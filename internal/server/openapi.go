//-------------------------------------------------------------------------
//
// Vana RAG Server
//
// Copyright (c) 2026, Vana Garden Project
// This software is released under The MIT License
//
//-------------------------------------------------------------------------

package server

import (
	"net/http"
)

// OpenAPISpec represents the OpenAPI v3 specification.
type OpenAPISpec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       OpenAPIInfo            `json:"info"`
	Servers    []OpenAPIServer        `json:"servers"`
	Paths      map[string]OpenAPIPath `json:"paths"`
	Components OpenAPIComponents      `json:"components"`
}

// OpenAPIInfo contains API metadata.
type OpenAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Version     string `json:"version"`
}

// OpenAPIServer describes a server.
type OpenAPIServer struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// OpenAPIPath contains operations for a path.
type OpenAPIPath struct {
	Get  *OpenAPIOperation `json:"get,omitempty"`
	Post *OpenAPIOperation `json:"post,omitempty"`
}

// OpenAPIOperation describes an API operation.
type OpenAPIOperation struct {
	Summary     string                     `json:"summary"`
	Description string                     `json:"description,omitempty"`
	OperationID string                     `json:"operationId"`
	Tags        []string                   `json:"tags,omitempty"`
	RequestBody *OpenAPIRequestBody        `json:"requestBody,omitempty"`
	Responses   map[string]OpenAPIResponse `json:"responses"`
}

// OpenAPIRequestBody describes a request body.
type OpenAPIRequestBody struct {
	Description string                      `json:"description,omitempty"`
	Required    bool                        `json:"required"`
	Content     map[string]OpenAPIMediaType `json:"content"`
}

// OpenAPIResponse describes a response.
type OpenAPIResponse struct {
	Description string                      `json:"description"`
	Content     map[string]OpenAPIMediaType `json:"content,omitempty"`
}

// OpenAPIMediaType describes a media type.
type OpenAPIMediaType struct {
	Schema OpenAPISchema `json:"schema"`
}

// OpenAPISchema describes a schema.
type OpenAPISchema struct {
	Type        string                   `json:"type,omitempty"`
	Format      string                   `json:"format,omitempty"`
	Description string                   `json:"description,omitempty"`
	Properties  map[string]OpenAPISchema `json:"properties,omitempty"`
	Items       *OpenAPISchema           `json:"items,omitempty"`
	Required    []string                 `json:"required,omitempty"`
	Ref         string                   `json:"$ref,omitempty"`
}

// OpenAPIComponents contains reusable components.
type OpenAPIComponents struct {
	Schemas map[string]OpenAPISchema `json:"schemas"`
}

// handleOpenAPI handles the GET /v1/openapi.json endpoint.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	spec := BuildOpenAPISpec()
	s.respondJSON(w, http.StatusOK, spec)
}

// BuildOpenAPISpec constructs the OpenAPI v3 specification.
// This is exported so it can be used to generate static documentation.
func BuildOpenAPISpec() OpenAPISpec {
	errorContent := map[string]OpenAPIMediaType{
		"application/json": {
			Schema: OpenAPISchema{
				Ref: "#/components/schemas/ErrorResponse",
			},
		},
	}

	return OpenAPISpec{
		OpenAPI: "3.0.3",
		Info: OpenAPIInfo{
			Title:       "Vana RAG Server API",
			Description: "REST API for retrieval-augmented answers about medicinal plants",
			Version:     "1.0.0",
		},
		Servers: []OpenAPIServer{
			{
				URL:         "/v1",
				Description: "API v1",
			},
		},
		Paths: map[string]OpenAPIPath{
			"/health": {
				Get: &OpenAPIOperation{
					Summary:     "Health check",
					Description: "Check if the server is running and healthy",
					OperationID: "getHealth",
					Tags:        []string{"System"},
					Responses: map[string]OpenAPIResponse{
						"200": {
							Description: "Server is healthy",
							Content: map[string]OpenAPIMediaType{
								"application/json": {
									Schema: OpenAPISchema{
										Ref: "#/components/schemas/HealthResponse",
									},
								},
							},
						},
					},
				},
			},
			"/chat": {
				Post: &OpenAPIOperation{
					Summary:     "Ask a question",
					Description: "Answer a free-text question about medicinal plants from the indexed corpus",
					OperationID: "chat",
					Tags:        []string{"Pipelines"},
					RequestBody: &OpenAPIRequestBody{
						Description: "Chat request",
						Required:    true,
						Content: map[string]OpenAPIMediaType{
							"application/json": {
								Schema: OpenAPISchema{
									Ref: "#/components/schemas/ChatRequest",
								},
							},
						},
					},
					Responses: map[string]OpenAPIResponse{
						"200": {
							Description: "Answer with source provenance",
							Content: map[string]OpenAPIMediaType{
								"application/json": {
									Schema: OpenAPISchema{
										Ref: "#/components/schemas/ChatResponse",
									},
								},
							},
						},
						"400": {Description: "Invalid request", Content: errorContent},
						"500": {Description: "Server error", Content: errorContent},
					},
				},
			},
			"/diet": {
				Post: &OpenAPIOperation{
					Summary:     "Generate a diet plan",
					Description: "Build a breakfast/lunch/dinner meal plan around the named plants",
					OperationID: "generateDietPlan",
					Tags:        []string{"Pipelines"},
					RequestBody: &OpenAPIRequestBody{
						Description: "Diet plan request",
						Required:    true,
						Content: map[string]OpenAPIMediaType{
							"application/json": {
								Schema: OpenAPISchema{
									Ref: "#/components/schemas/DietRequest",
								},
							},
						},
					},
					Responses: map[string]OpenAPIResponse{
						"200": {
							Description: "Meal plan as JSON text",
							Content: map[string]OpenAPIMediaType{
								"application/json": {
									Schema: OpenAPISchema{
										Ref: "#/components/schemas/DietPlanResponse",
									},
								},
							},
						},
						"400": {Description: "Invalid request", Content: errorContent},
						"500": {Description: "Server error", Content: errorContent},
					},
				},
			},
		},
		Components: OpenAPIComponents{
			Schemas: map[string]OpenAPISchema{
				"HealthResponse": {
					Type: "object",
					Properties: map[string]OpenAPISchema{
						"status": {
							Type:        "string",
							Description: "Health status",
						},
					},
					Required: []string{"status"},
				},
				"ChatRequest": {
					Type: "object",
					Properties: map[string]OpenAPISchema{
						"query": {
							Type:        "string",
							Description: "The question to answer",
						},
					},
					Required: []string{"query"},
				},
				"ChatResponse": {
					Type: "object",
					Properties: map[string]OpenAPISchema{
						"answer": {
							Type:        "string",
							Description: "The generated answer",
						},
						"sources": {
							Type:        "array",
							Description: "Provenance of each passage used for context, in retrieval order",
							Items: &OpenAPISchema{
								Type: "string",
							},
						},
					},
					Required: []string{"answer", "sources"},
				},
				"DietRequest": {
					Type: "object",
					Properties: map[string]OpenAPISchema{
						"plantNames": {
							Type:        "array",
							Description: "Plants to build the meal plan around",
							Items: &OpenAPISchema{
								Type: "string",
							},
						},
					},
					Required: []string{"plantNames"},
				},
				"DietPlanResponse": {
					Type: "object",
					Properties: map[string]OpenAPISchema{
						"plan": {
							Type:        "string",
							Description: "The meal plan as raw JSON text with breakfast, lunch, and dinner arrays",
						},
						"sourceNodes": {
							Type:        "array",
							Description: "Identifiers of the passages used for context",
							Items: &OpenAPISchema{
								Type: "string",
							},
						},
					},
					Required: []string{"plan", "sourceNodes"},
				},
				"ErrorResponse": {
					Type: "object",
					Properties: map[string]OpenAPISchema{
						"error": {
							Type:        "string",
							Description: "Error message",
						},
						"details": {
							Type:        "string",
							Description: "Additional diagnostic detail",
						},
					},
					Required: []string{"error"},
				},
			},
		},
	}
}
