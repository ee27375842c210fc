package form

import "github.com/socialchef/mise/internal/services/recipe"

const (
	SubmitLabelIdle    = "Generate recipe"
	SubmitLabelBusy    = "Generating recipe..."
	ResultPlaceholder  = "Fill in the form to generate a recipe"
	peopleCountSuffix  = " people"
	singlePersonSuffix = " person"
)

// View is everything the page needs to render one session.
type View struct {
	CredentialConfigured bool            `json:"credentialConfigured"`
	Draft                recipe.Request  `json:"draft"`
	Busy                 bool            `json:"busy"`
	SubmitDisabled       bool            `json:"submitDisabled"`
	SubmitLabel          string          `json:"submitLabel"`
	HasResult            bool            `json:"hasResult"`
	Result               *ResultView     `json:"result,omitempty"`
	Placeholder          string          `json:"placeholder,omitempty"`
	MealTypes            []recipe.Option `json:"mealTypes"`
	CookingMethods       []recipe.Option `json:"cookingMethods"`
}

// ResultView is a generated recipe annotated with the request fields that
// produced it.
type ResultView struct {
	Text          string `json:"text"`
	PeopleCount   string `json:"peopleCount"`
	PeopleLabel   string `json:"peopleLabel"`
	CookingMethod string `json:"cookingMethod"`
	MethodLabel   string `json:"methodLabel"`
	MealType      string `json:"mealType"`
	MealLabel     string `json:"mealLabel"`
	Provider      string `json:"provider,omitempty"`
}

// View returns the render model for the current state.
func (c *Controller) View() View {
	return NewView(c.State())
}

// NewView derives the render model from s. The result annotation always
// comes from the frozen request, never from the current draft.
func NewView(s State) View {
	v := View{
		CredentialConfigured: s.CredentialConfigured,
		Draft:                s.Draft,
		Busy:                 s.Busy,
		SubmitDisabled:       s.Busy,
		SubmitLabel:          SubmitLabelIdle,
		MealTypes:            recipe.MealTypeOptions(),
		CookingMethods:       recipe.CookingMethodOptions(),
	}
	if s.Busy {
		v.SubmitLabel = SubmitLabelBusy
	}

	if s.Result == nil {
		v.Placeholder = ResultPlaceholder
		return v
	}

	req := s.Result.Request
	v.HasResult = true
	v.Result = &ResultView{
		Text:          s.Result.Text,
		PeopleCount:   req.PeopleCount,
		PeopleLabel:   peopleLabel(req.PeopleCount),
		CookingMethod: req.CookingMethod,
		MethodLabel:   recipe.Label(v.CookingMethods, req.CookingMethod),
		MealType:      req.MealType,
		MealLabel:     recipe.Label(v.MealTypes, req.MealType),
		Provider:      s.Result.Provider,
	}
	return v
}

func peopleLabel(count string) string {
	if count == "1" {
		return count + singlePersonSuffix
	}
	return count + peopleCountSuffix
}
