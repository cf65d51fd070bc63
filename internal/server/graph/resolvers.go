package graph

import (
	"context"

	"github.com/graphql-go/graphql"

	"github.com/mkurent/recipebook/internal/server/auth"
	"github.com/mkurent/recipebook/internal/server/models"
	"github.com/mkurent/recipebook/internal/server/services"
)

// UserResolver is the slice of the user service the schema needs.
type UserResolver interface {
	Register(ctx context.Context, input *services.RegisterUserInput) (*models.User, error)
	Login(ctx context.Context, email string, password string) (*services.TokenData, error)
}

// RecipeResolver is the slice of the recipe service the schema needs.
type RecipeResolver interface {
	Create(ctx context.Context, identity auth.Identity, input *services.CreateRecipeInput) (*models.Recipe, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	List(ctx context.Context, page int) (*services.RecipePage, error)
}

type resolver struct {
	users   UserResolver
	recipes RecipeResolver
}

func (r *resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	data := p.Args["userInputData"].(map[string]interface{})

	input := &services.RegisterUserInput{
		Name:            stringArg(data, "name"),
		Email:           stringArg(data, "email"),
		Password:        stringArg(data, "password"),
		ConfirmPassword: stringArg(data, "confirmPassword"),
	}

	return r.users.Register(p.Context, input)
}

func (r *resolver) loginUser(p graphql.ResolveParams) (interface{}, error) {
	email := p.Args["email"].(string)
	password := p.Args["password"].(string)

	return r.users.Login(p.Context, email, password)
}

func (r *resolver) createRecipe(p graphql.ResolveParams) (interface{}, error) {
	data := p.Args["recipeInputData"].(map[string]interface{})

	input := &services.CreateRecipeInput{
		Title:       stringArg(data, "title"),
		ImageURL:    stringArg(data, "imageUrl"),
		Description: stringArg(data, "description"),
		Body:        stringArg(data, "recipe"),
		Minutes:     intArg(data, "numOfMin"),
		Ingredients: stringListArg(data, "ingredients"),
	}

	identity := auth.IdentityFromContext(p.Context)

	return r.recipes.Create(p.Context, identity, input)
}

func (r *resolver) getRecipe(p graphql.ResolveParams) (interface{}, error) {
	id := p.Args["recipeId"].(string)

	return r.recipes.Get(p.Context, id)
}

func (r *resolver) getRecipes(p graphql.ResolveParams) (interface{}, error) {
	page := p.Args["page"].(int)

	return r.recipes.List(p.Context, page)
}

// arg helpers: executor-validated non-null args always arrive with their Go
// type, optional ones may be absent.

func stringArg(args map[string]interface{}, key string) string {
	s, _ := args[key].(string)
	return s
}

func intArg(args map[string]interface{}, key string) int {
	n, _ := args[key].(int)
	return n
}

func stringListArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
