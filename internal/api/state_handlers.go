package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	apperrors "github.com/socialchef/mise/internal/errors"
	"github.com/socialchef/mise/internal/form"
	"github.com/socialchef/mise/internal/middleware"
	"github.com/socialchef/mise/internal/services/recipe"
)

type CredentialRequest struct {
	Credential string `json:"credential"`
}

type UpdateFieldRequest struct {
	Value string `json:"value"`
}

// RecipeRequest carries optional field values applied to the draft before
// submission. Absent fields keep their current draft value.
type RecipeRequest struct {
	Ingredients   *string `json:"ingredients"`
	MealType      *string `json:"mealType"`
	PeopleCount   *string `json:"peopleCount"`
	CookingMethod *string `json:"cookingMethod"`
}

func (req RecipeRequest) values() map[recipe.Field]*string {
	return map[recipe.Field]*string{
		recipe.FieldIngredients:   req.Ingredients,
		recipe.FieldMealType:      req.MealType,
		recipe.FieldPeopleCount:   req.PeopleCount,
		recipe.FieldCookingMethod: req.CookingMethod,
	}
}

func invalidBody() error {
	return apperrors.NewValidationError("Invalid request body", "INVALID_BODY", "Send a JSON object.")
}

// decodeJSON reads an optional JSON body into v. An empty body is not an error.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return invalidBody()
	}
	return nil
}

func (s *Server) controller(w http.ResponseWriter, r *http.Request) (*form.Controller, bool) {
	c, ok := middleware.GetController(r.Context())
	if !ok {
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorBody{
				Type:    string(apperrors.ErrorTypeInternal),
				Message: "Session unavailable",
				Code:    "NO_SESSION",
			},
		})
	}
	return c, ok
}

func (s *Server) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	appErr := apperrors.NewNotFoundError("No such endpoint", "ROUTE_NOT_FOUND", "Check the request path.")
	writeJSON(w, appErr.StatusCode, ErrorResponse{
		Error: ErrorBody{
			Type:               string(appErr.Type),
			Message:            appErr.Message,
			Code:               appErr.Code(),
			RecoverySuggestion: appErr.RecoverySuggestion(),
		},
	})
}

func (s *Server) HandleState(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(c))
}

func (s *Server) HandleSubmitCredential(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	var req CredentialRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, c, c.Reject(r.Context(), err))
		return
	}

	if err := c.SubmitCredential(r.Context(), req.Credential); err != nil {
		s.writeError(w, r, c, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(c))
}

func (s *Server) HandleUpdateField(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	var req UpdateFieldRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, c, c.Reject(r.Context(), err))
		return
	}

	field := recipe.Field(chi.URLParam(r, "field"))
	if err := c.UpdateField(r.Context(), field, req.Value); err != nil {
		s.writeError(w, r, c, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(c))
}

func (s *Server) HandleSubmitRecipe(w http.ResponseWriter, r *http.Request) {
	c, ok := s.controller(w, r)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, c, c.Reject(r.Context(), err))
		return
	}

	ctx := r.Context()
	values := req.values()
	for _, f := range recipe.Fields {
		if v := values[f]; v != nil {
			if err := c.UpdateField(ctx, f, *v); err != nil {
				s.writeError(w, r, c, err)
				return
			}
		}
	}

	if err := c.SubmitRecipeRequest(ctx); err != nil {
		s.writeError(w, r, c, err)
		return
	}
	writeJSON(w, http.StatusOK, s.stateResponse(c))
}
