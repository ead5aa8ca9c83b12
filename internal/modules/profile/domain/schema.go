package domain

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const profileSchema = `{
  "type": "object",
  "required": ["name", "familyName"],
  "properties": {
    "name":        {"type": "string", "minLength": 1, "pattern": "\\S"},
    "familyName":  {"type": "string", "minLength": 1, "pattern": "\\S"},
    "phoneNumber": {"type": "string", "pattern": "^\\+?[0-9 ]{8,20}$"}
  }
}`

var compiledProfileSchema = mustCompile(profileSchema)

func mustCompile(raw string) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("profile schema: %v", err))
	}
	return schema
}

// ValidationResult carries one message per failing field.
type ValidationResult struct {
	Valid       bool
	FieldErrors map[Field]string
}

// Validate checks the editable fields of r against the profile schema. Empty
// optional fields are not validated. Email is read-only and never checked.
func Validate(r Record) ValidationResult {
	document := map[string]any{
		string(FieldName):       r.Name,
		string(FieldFamilyName): r.FamilyName,
	}
	if strings.TrimSpace(r.PhoneNumber) != "" {
		document[string(FieldPhoneNumber)] = r.PhoneNumber
	}

	result, err := compiledProfileSchema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return ValidationResult{FieldErrors: map[Field]string{}}
	}
	if result.Valid() {
		return ValidationResult{Valid: true, FieldErrors: map[Field]string{}}
	}

	fieldErrors := make(map[Field]string, len(result.Errors()))
	for _, resultErr := range result.Errors() {
		field := Field(resultErr.Field())
		if property, ok := resultErr.Details()["property"].(string); ok && resultErr.Type() == "required" {
			field = Field(property)
		}
		if _, exists := fieldErrors[field]; exists {
			continue
		}
		fieldErrors[field] = fieldMessage(field, resultErr)
	}
	return ValidationResult{FieldErrors: fieldErrors}
}

func fieldMessage(field Field, resultErr gojsonschema.ResultError) string {
	switch field {
	case FieldName:
		return "Full name is required"
	case FieldFamilyName:
		return "Family name is required"
	case FieldPhoneNumber:
		return "Phone number is invalid"
	}
	return resultErr.Description()
}
