package api

import (
	_ "embed"
	"net/http"
)

// OpenAPIPath is where the OpenAPI document is served.
const OpenAPIPath = "/swagger/v1/swagger.json"

//go:embed openapi.json
var openAPIDocument []byte

// OpenAPIDocument serves the embedded OpenAPI 3 description of the API.
func OpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}
