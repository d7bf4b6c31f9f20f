package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/repository"
	"github.com/foodgram/backend/internal/types"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// validateStruct runs the struct tag rules and reports the first failure
// as a ValidationError
func validateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return ValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	return ValidationError(topField(fe), fieldMessage(fe))
}

// topField names the request field an error belongs to, so a bad
// ingredients[2].amount is reported against ingredients
func topField(fe validator.FieldError) string {
	parts := strings.SplitN(fe.Namespace(), ".", 3)
	if len(parts) < 2 {
		return fe.Field()
	}
	name, _, _ := strings.Cut(parts[1], "[")
	return name
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "lte":
		return fmt.Sprintf("ensure this value is less than or equal to %s", fe.Param())
	case "hexcolor", "len":
		return "enter a valid hex color, e.g. #49B64E"
	case "slug":
		return "enter a valid slug of letters, numbers, underscores or hyphens"
	case "email":
		return "enter a valid email address"
	default:
		return "invalid value"
	}
}

// RecipeValidator checks recipe payloads against the reference data
type RecipeValidator struct {
	store *repository.Store
}

func NewRecipeValidator(store *repository.Store) *RecipeValidator {
	return &RecipeValidator{store: store}
}

// Validate checks a recipe payload and returns it unchanged. It only reads.
func (v *RecipeValidator) Validate(ctx context.Context, req *types.RecipeWriteRequest) (*types.RecipeWriteRequest, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	if len(req.Tags) == 0 {
		return nil, ValidationError("tags", "at least one tag is required")
	}
	if len(lo.Uniq(req.Tags)) != len(req.Tags) {
		return nil, ValidationError("tags", "tags must not repeat")
	}
	tags, err := v.store.FindTags(ctx, req.Tags)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(req.Tags) {
		known := lo.SliceToMap(tags, func(t models.Tag) (uint, bool) { return t.ID, true })
		missing, _ := lo.Find(req.Tags, func(id uint) bool { return !known[id] })
		return nil, ValidationError("tags", fmt.Sprintf("tag %d does not exist", missing))
	}

	if req.CookingTime <= 0 {
		return nil, ValidationError("cooking_time", "cooking time must be greater than 0")
	}

	if len(req.Ingredients) == 0 {
		return nil, ValidationError("ingredients", "at least one ingredient is required")
	}
	ids := lo.Map(req.Ingredients, func(item types.IngredientAmount, _ int) uint { return item.ID })
	if len(lo.Uniq(ids)) != len(ids) {
		return nil, ValidationError("ingredients", "ingredients must not repeat")
	}
	found, err := v.store.FindIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}
	known := lo.SliceToMap(found, func(i models.Ingredient) (uint, bool) { return i.ID, true })
	for _, item := range req.Ingredients {
		if !known[item.ID] {
			return nil, ValidationError("ingredients", fmt.Sprintf("ingredient %d does not exist", item.ID))
		}
		if item.Amount <= 0 {
			return nil, ValidationError("ingredients", fmt.Sprintf("amount of ingredient %d must be greater than 0", item.ID))
		}
	}

	return req, nil
}
