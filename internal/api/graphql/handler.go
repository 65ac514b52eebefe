package graphql

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"Feedline/internal/api/handlers/common"
)

// Handler serves POST /graphql. The identity middleware runs before it, so
// resolvers read the caller's identity from the request context.
type Handler struct {
	schema graphql.Schema
}

// NewHandler creates a new GraphQL handler
func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// ServeHTTP executes one GraphQL request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteBadRequest(w, "Invalid request body")
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	common.WriteJSON(w, http.StatusOK, result)
}
