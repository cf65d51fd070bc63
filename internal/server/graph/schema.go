// Package graph defines the GraphQL schema of the RecipeBook API and binds it
// to the service layer. Field resolution relies on the executor's default
// resolver reading the models' json tags; only relations and computed fields
// get explicit resolvers.
package graph

import (
	"context"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/mkurent/recipebook/internal/server/models"
)

// Schema is the executable GraphQL schema with its resolvers bound.
type Schema struct {
	schema graphql.Schema
}

// New builds the schema around the given resolver services.
func New(users UserResolver, recipes RecipeResolver) (*Schema, error) {
	r := &resolver{users: users, recipes: recipes}

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"_id":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"recipes": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
			"createdAt": &graphql.Field{
				Type:    graphql.String,
				Resolve: resolveCreatedAt,
			},
		},
	})

	recipeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Recipe",
		Fields: graphql.Fields{
			"_id":         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"recipe":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"numOfMin":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"ingredients": &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
			"creator":     &graphql.Field{Type: userType},
			"createdAt": &graphql.Field{
				Type:    graphql.String,
				Resolve: resolveCreatedAt,
			},
		},
	})

	tokenDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenData",
		Fields: graphql.Fields{
			"token":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"userId": &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		},
	})

	recipesDataType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RecipesData",
		Fields: graphql.Fields{
			"recipes":    &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(recipeType))},
			"totalItems": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		},
	})

	userDataInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "UserData",
		Fields: graphql.InputObjectConfigFieldMap{
			"name":            &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"email":           &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"password":        &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"confirmPassword": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	recipeInput := graphql.NewInputObject(graphql.InputObjectConfig{
		Name: "RecipeInput",
		Fields: graphql.InputObjectConfigFieldMap{
			"title":       &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"imageUrl":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"recipe":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"numOfMin":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
			"ingredients": &graphql.InputObjectFieldConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.String))},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"getRecipes": &graphql.Field{
				Type: recipesDataType,
				Args: graphql.FieldConfigArgument{
					"page": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: r.getRecipes,
			},
			"getRecipe": &graphql.Field{
				Type: recipeType,
				Args: graphql.FieldConfigArgument{
					"recipeId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.getRecipe,
			},
			"loginUser": &graphql.Field{
				Type: tokenDataType,
				Args: graphql.FieldConfigArgument{
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: r.loginUser,
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createUser": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userInputData": &graphql.ArgumentConfig{Type: graphql.NewNonNull(userDataInput)},
				},
				Resolve: r.createUser,
			},
			"createRecipe": &graphql.Field{
				Type: recipeType,
				Args: graphql.FieldConfigArgument{
					"recipeInputData": &graphql.ArgumentConfig{Type: graphql.NewNonNull(recipeInput)},
				},
				Resolve: r.createRecipe,
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		return nil, err
	}

	return &Schema{schema: schema}, nil
}

// Execute runs one GraphQL request against the schema. ctx must carry the
// request identity set by the auth gate so mutations can authorize.
func (s *Schema) Execute(ctx context.Context, query string, variables map[string]interface{}, operationName string) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: variables,
		OperationName:  operationName,
		Context:        ctx,
	})
}

// resolveCreatedAt formats the CreatedAt timestamp of either model as RFC 3339.
func resolveCreatedAt(p graphql.ResolveParams) (interface{}, error) {
	var ts time.Time
	switch src := p.Source.(type) {
	case *models.User:
		ts = src.CreatedAt
	case *models.Recipe:
		ts = src.CreatedAt
	default:
		return nil, nil
	}
	if ts.IsZero() {
		return nil, nil
	}
	return ts.UTC().Format(time.RFC3339), nil
}
