package services

import "errors"

// Sentinel errors returned by the service layer. Controllers map these to
// HTTP statuses; a recipe that exists under another owner and a recipe that
// does not exist at all both surface as ErrRecipeNotFound.
var (
	ErrRecipeNotFound     = errors.New("recipe_not_found")
	ErrTagNotFound        = errors.New("tag_not_found")
	ErrIngredientNotFound = errors.New("ingredient_not_found")
	ErrNotAnImage         = errors.New("not_an_image")
	ErrEmailRequired      = errors.New("email_required")
	ErrUserAlreadyExists  = errors.New("user_already_exists")
	ErrUserNotFound       = errors.New("user_not_found")
)
