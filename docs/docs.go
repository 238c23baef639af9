package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "Sentiment Dashboard API",
    "description": "Customer sentiment KPIs, feedback, priorities and insights for the dashboard client",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/api/dashboard/summary": {"get": {"tags": ["dashboard"], "summary": "Dashboard KPI summary", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}}},
    "/api/regional-sentiment": {
      "get": {"tags": ["sentiment"], "summary": "Regional sentiment scores", "responses": {"200": {"description": "OK"}}},
      "put": {"tags": ["sentiment"], "summary": "Create or update a region's sentiment score", "responses": {"200": {"description": "OK"}, "400": {"description": "Validation error"}}}
    },
    "/api/feedback": {
      "get": {"tags": ["feedback"], "summary": "Recent feedback, newest first", "parameters": [{"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["feedback"], "summary": "Submit feedback", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
    },
    "/api/sentiment-trends": {"get": {"tags": ["sentiment"], "summary": "Monthly sentiment trend", "responses": {"200": {"description": "OK"}}}},
    "/api/priority-items": {
      "get": {"tags": ["priorities"], "summary": "Priority items", "parameters": [{"name": "sort", "in": "query", "type": "string", "enum": ["rank", "impact", "effort"]}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown sort key"}}},
      "post": {"tags": ["priorities"], "summary": "Create a priority item", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
    },
    "/api/priority-items/matrix": {"get": {"tags": ["priorities"], "summary": "Impact vs effort matrix", "responses": {"200": {"description": "OK"}}}},
    "/api/ai-insights": {
      "get": {"tags": ["insights"], "summary": "Insights, newest first", "parameters": [{"name": "limit", "in": "query", "type": "integer"}], "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["insights"], "summary": "Create an insight manually", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
    },
    "/api/ai-insights/generate": {"post": {"tags": ["insights"], "summary": "Generate insights from current data", "responses": {"201": {"description": "Created"}}}},
    "/api/impact-metrics": {"get": {"tags": ["metrics"], "summary": "Before/after impact metrics", "responses": {"200": {"description": "OK"}}}},
    "/api/usage-metrics": {"get": {"tags": ["metrics"], "summary": "Weekly usage metrics", "responses": {"200": {"description": "OK"}}}},
    "/api/channels": {
      "get": {"tags": ["channels"], "summary": "Feedback channels", "responses": {"200": {"description": "OK"}}},
      "post": {"tags": ["channels"], "summary": "Register a channel", "responses": {"201": {"description": "Created"}, "400": {"description": "Validation error"}}}
    }
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}
