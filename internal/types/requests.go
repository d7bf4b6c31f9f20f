package types

// IngredientAmount references an existing ingredient by id
type IngredientAmount struct {
	ID     uint `json:"id"`
	Amount int  `json:"amount" validate:"lte=32767"`
}

// RecipeWriteRequest is the write representation of a recipe.
// Image is a base64 data URI and may be empty on update.
type RecipeWriteRequest struct {
	Tags        []uint             `json:"tags"`
	Ingredients []IngredientAmount `json:"ingredients" validate:"dive"`
	Name        string             `json:"name" validate:"required,max=200"`
	Image       string             `json:"image"`
	Text        string             `json:"text" validate:"required"`
	CookingTime int                `json:"cooking_time"`
}

// TagRequest creates or replaces a tag
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

// IngredientRequest creates or replaces an ingredient
type IngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// RegisterRequest creates a user account
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=254"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8,max=150"`
}

// LoginRequest exchanges credentials for a token
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries an issued auth token
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}
