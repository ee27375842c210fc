package ai

import (
	"fmt"
	"strings"
)

const requestSection = `Please create a recipe based on the following details:
- Ingredients: %s
- Meal: %s
- Number of people: %s
- Cooking method: %s`

const formatSection = `Present the recipe in this format:
1. Ingredient List
2. Preparation Time
3. Cooking Time
4. Step-by-Step Instructions
5. Serving Suggestion`

func getMethodContext(cookingMethod string) string {
	switch strings.ToLower(strings.TrimSpace(cookingMethod)) {
	case "no-cook":
		return "The dish must not require any heat; cooking time should be zero."
	case "pressure-cooker":
		return "Give pressure cooking times and include the pressure release step."
	case "oven":
		return "State the oven temperature in Celsius and whether to preheat."
	case "grill":
		return "Say whether to use direct or indirect heat and how often to turn the food."
	default:
		return ""
	}
}

// BuildRecipePrompt builds the recipe generation prompt. The output is a pure
// function of its arguments so identical requests produce identical prompts.
func BuildRecipePrompt(ingredients, mealType, peopleCount, cookingMethod string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(requestSection,
		strings.TrimSpace(ingredients),
		strings.TrimSpace(mealType),
		strings.TrimSpace(peopleCount),
		strings.TrimSpace(cookingMethod),
	))
	sb.WriteString("\n\n")

	if mCtx := getMethodContext(cookingMethod); mCtx != "" {
		sb.WriteString(mCtx)
		sb.WriteString("\n\n")
	}

	sb.WriteString(formatSection)
	sb.WriteString("\n")

	return sb.String()
}
