package usecases

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// messages maps "<StructNamespace>.<tag>" to the text shown to users.
var messages = map[string]string{
	"Property.Title.required":            "Please add a property title",
	"Property.Title.max":                 "Title cannot be more than 100 characters",
	"Property.Description.required":      "Please add a description",
	"Property.Description.max":           "Description cannot be more than 1000 characters",
	"Property.Price.gte":                 "Price cannot be negative",
	"Property.PropertyType.required":     "Please select property type",
	"Property.PropertyType.oneof":        "Property type must be one of apartment, house, condo, townhouse, studio",
	"Property.Bedrooms.gte":              "Bedrooms cannot be negative",
	"Property.Bathrooms.gte":             "Bathrooms cannot be negative",
	"Property.Area.gte":                  "Area cannot be negative",
	"Property.Location.Address.required": "Please add an address",
	"Property.Location.City.required":    "Please add a city",
	"Property.Location.State.required":   "Please add a state",
	"Property.Location.ZipCode.required": "Please add a zip code",
	"Property.AgentID.required":          "Property must have an owning agent",

	"User.Name.required":  "Please add a name",
	"User.Name.max":       "Name cannot be more than 100 characters",
	"User.Email.required": "Please add an email",
	"User.Email.email":    "Please add a valid email",
	"User.Role.oneof":     "Role must be one of agent, admin, user",
	"User.UserType.oneof": "User type must be agent or tenant",
}

// validationMessages runs the struct's validate tags and returns one
// readable message per failing field.
func validationMessages(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if msg, ok := messages[fe.StructNamespace()+"."+fe.Tag()]; ok {
			out = append(out, msg)
			continue
		}
		out = append(out, fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field())))
	}
	return out
}
