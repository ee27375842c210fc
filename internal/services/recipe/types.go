package recipe

import (
	"strings"
	"time"
)

// MealType is one of the meals the form offers.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// CookingMethod is one of the cooking methods the form offers.
type CookingMethod string

const (
	MethodStovetop       CookingMethod = "stovetop"
	MethodOven           CookingMethod = "oven"
	MethodGrill          CookingMethod = "grill"
	MethodPressureCooker CookingMethod = "pressure-cooker"
	MethodNoCook         CookingMethod = "no-cook"
)

// Option is a select option: the submitted value and its display label.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var mealTypeOptions = []Option{
	{Value: string(MealBreakfast), Label: "Breakfast"},
	{Value: string(MealLunch), Label: "Lunch"},
	{Value: string(MealDinner), Label: "Dinner"},
	{Value: string(MealSnack), Label: "Snack"},
}

var cookingMethodOptions = []Option{
	{Value: string(MethodStovetop), Label: "Stovetop"},
	{Value: string(MethodOven), Label: "Oven"},
	{Value: string(MethodGrill), Label: "Grill"},
	{Value: string(MethodPressureCooker), Label: "Pressure cooker"},
	{Value: string(MethodNoCook), Label: "No cooking"},
}

// MealTypeOptions returns the meal types in display order.
func MealTypeOptions() []Option {
	return append([]Option(nil), mealTypeOptions...)
}

// CookingMethodOptions returns the cooking methods in display order.
func CookingMethodOptions() []Option {
	return append([]Option(nil), cookingMethodOptions...)
}

// Label returns the display label for value, or value itself when it is
// not one of the options.
func Label(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Field names one of the four request fields.
type Field string

const (
	FieldIngredients   Field = "ingredients"
	FieldMealType      Field = "mealType"
	FieldPeopleCount   Field = "peopleCount"
	FieldCookingMethod Field = "cookingMethod"
)

// Fields lists the request fields in form order.
var Fields = []Field{FieldIngredients, FieldMealType, FieldPeopleCount, FieldCookingMethod}

// ParseField maps a field name to a Field.
func ParseField(name string) (Field, bool) {
	for _, f := range Fields {
		if string(f) == name {
			return f, true
		}
	}
	return "", false
}

// Request is what the user asks a recipe for. Values are kept as typed;
// only presence is checked before generation.
type Request struct {
	Ingredients   string `json:"ingredients"`
	MealType      string `json:"mealType"`
	PeopleCount   string `json:"peopleCount"`
	CookingMethod string `json:"cookingMethod"`
}

// Get returns the value of field f.
func (r Request) Get(f Field) string {
	switch f {
	case FieldIngredients:
		return r.Ingredients
	case FieldMealType:
		return r.MealType
	case FieldPeopleCount:
		return r.PeopleCount
	case FieldCookingMethod:
		return r.CookingMethod
	default:
		return ""
	}
}

// With returns a copy of r with field f set to value.
func (r Request) With(f Field, value string) Request {
	switch f {
	case FieldIngredients:
		r.Ingredients = value
	case FieldMealType:
		r.MealType = value
	case FieldPeopleCount:
		r.PeopleCount = value
	case FieldCookingMethod:
		r.CookingMethod = value
	}
	return r
}

// Missing returns the names of fields that are empty or whitespace only.
func (r Request) Missing() []string {
	var missing []string
	for _, f := range Fields {
		if strings.TrimSpace(r.Get(f)) == "" {
			missing = append(missing, string(f))
		}
	}
	return missing
}

// Result is generated recipe text frozen together with the request that
// produced it, so later draft edits never change what the result describes.
type Result struct {
	Text        string    `json:"text"`
	Request     Request   `json:"request"`
	Provider    string    `json:"provider,omitempty"`
	GeneratedAt time.Time `json:"generatedAt"`
}
