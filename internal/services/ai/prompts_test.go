package ai

import (
	"strings"
	"testing"
)

func TestBuildRecipePrompt(t *testing.T) {
	tests := []struct {
		name          string
		ingredients   string
		mealType      string
		peopleCount   string
		cookingMethod string
		contains      []string
	}{
		{
			name:          "Stovetop breakfast",
			ingredients:   "egg, flour",
			mealType:      "breakfast",
			peopleCount:   "2",
			cookingMethod: "stovetop",
			contains: []string{
				"- Ingredients: egg, flour",
				"- Meal: breakfast",
				"- Number of people: 2",
				"- Cooking method: stovetop",
				"1. Ingredient List",
				"2. Preparation Time",
				"3. Cooking Time",
				"4. Step-by-Step Instructions",
				"5. Serving Suggestion",
			},
		},
		{
			name:          "No-cook snack",
			ingredients:   "yogurt, honey",
			mealType:      "snack",
			peopleCount:   "1",
			cookingMethod: "no-cook",
			contains: []string{
				"must not require any heat",
			},
		},
		{
			name:          "Fields are trimmed",
			ingredients:   "  rice \n",
			mealType:      " dinner ",
			peopleCount:   " 4",
			cookingMethod: "oven ",
			contains: []string{
				"- Ingredients: rice\n",
				"- Number of people: 4\n",
				"oven temperature in Celsius",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildRecipePrompt(tt.ingredients, tt.mealType, tt.peopleCount, tt.cookingMethod)

			if len(prompt) == 0 {
				t.Errorf("BuildRecipePrompt() returned empty string")
			}

			for _, s := range tt.contains {
				if !strings.Contains(prompt, s) {
					t.Errorf("BuildRecipePrompt() did not contain expected string: %q", s)
				}
			}
		})
	}
}

func TestBuildRecipePrompt_Deterministic(t *testing.T) {
	a := BuildRecipePrompt("egg, flour", "breakfast", "2", "stovetop")
	b := BuildRecipePrompt("egg, flour", "breakfast", "2", "stovetop")
	if a != b {
		t.Error("expected identical prompts for identical input")
	}
}

func TestGetMethodContext(t *testing.T) {
	tests := []struct {
		name     string
		method   string
		expected string
	}{
		{name: "No-cook", method: "no-cook", expected: "heat"},
		{name: "Pressure cooker", method: "pressure-cooker", expected: "pressure release"},
		{name: "Grill", method: "Grill", expected: "indirect heat"},
		{name: "Stovetop", method: "stovetop", expected: ""},
		{name: "Unknown", method: "campfire", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := getMethodContext(tt.method)
			if tt.expected == "" {
				if result != "" {
					t.Errorf("getMethodContext() = %v, expected empty string", result)
				}
			} else {
				if !strings.Contains(result, tt.expected) {
					t.Errorf("getMethodContext() = %v, expected it to contain %v", result, tt.expected)
				}
			}
		})
	}
}
