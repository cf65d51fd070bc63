package web

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// Executor runs one GraphQL request. Implemented by graph.Schema.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]interface{}, operationName string) *graphql.Result
}

// graphqlRequest is the JSON body of a POST /graphql call.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	Variables     map[string]interface{} `json:"variables"`
	OperationName string                 `json:"operationName"`
}

// graphqlResponse is the JSON shape of the endpoint's reply. Errors carry the
// flattened envelope, not the executor's location-annotated form.
type graphqlResponse struct {
	Data   interface{}      `json:"data,omitempty"`
	Errors []formattedError `json:"errors,omitempty"`
}

// GraphQLHandler serves POST /graphql. The HTTP status is always 200 for
// well-formed requests; operation failures are reported inside the errors
// array with their own status field.
func GraphQLHandler(executor Executor) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, graphqlResponse{
				Errors: []formattedError{{Message: "Invalid request body.", Status: 400}},
			})
			return
		}

		result := executor.Execute(c.Request.Context(), req.Query, req.Variables, req.OperationName)

		resp := graphqlResponse{Data: result.Data}
		if len(result.Errors) > 0 {
			resp.Errors = formatErrors(result.Errors)
		}

		c.JSON(http.StatusOK, resp)
	}
}
