package api

import "github.com/dorazhang07/ladle/internal/models"

type userResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

func newUserResponse(user models.User) userResponse {
	return userResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

type attributeResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func tagResponses(tags []models.Tag) []attributeResponse {
	responses := make([]attributeResponse, 0, len(tags))
	for _, tag := range tags {
		responses = append(responses, attributeResponse{ID: tag.ID, Name: tag.Name})
	}
	return responses
}

func ingredientResponses(ingredients []models.Ingredient) []attributeResponse {
	responses := make([]attributeResponse, 0, len(ingredients))
	for _, ingredient := range ingredients {
		responses = append(responses, attributeResponse{ID: ingredient.ID, Name: ingredient.Name})
	}
	return responses
}

// recipeSummaryResponse is the list form: associations as bare ID lists.
type recipeSummaryResponse struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       string  `json:"price"`
	Link        string  `json:"link"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
	Image       *string `json:"image"`
}

// recipeDetailResponse is the retrieve form: associations expanded to
// nested objects.
type recipeDetailResponse struct {
	ID          uint                `json:"id"`
	Title       string              `json:"title"`
	TimeMinutes int                 `json:"time_minutes"`
	Price       string              `json:"price"`
	Link        string              `json:"link"`
	Tags        []attributeResponse `json:"tags"`
	Ingredients []attributeResponse `json:"ingredients"`
	Image       *string             `json:"image"`
}

func (handler *Handler) recipeImageURL(recipe models.Recipe) *string {
	if recipe.ImagePath == "" {
		return nil
	}
	url := handler.images.URL(recipe.ImagePath)
	return &url
}

func (handler *Handler) newRecipeSummary(recipe models.Recipe) recipeSummaryResponse {
	tagIDs := make([]uint, 0, len(recipe.Tags))
	for _, tag := range recipe.Tags {
		tagIDs = append(tagIDs, tag.ID)
	}
	ingredientIDs := make([]uint, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredientIDs = append(ingredientIDs, ingredient.ID)
	}

	return recipeSummaryResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
		Image:       handler.recipeImageURL(recipe),
	}
}

func (handler *Handler) newRecipeDetail(recipe models.Recipe) recipeDetailResponse {
	return recipeDetailResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        tagResponses(recipe.Tags),
		Ingredients: ingredientResponses(recipe.Ingredients),
		Image:       handler.recipeImageURL(recipe),
	}
}
