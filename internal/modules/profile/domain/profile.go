package domain

import "errors"

// Field names a profile form field.
type Field string

const (
	FieldName        Field = "name"
	FieldFamilyName  Field = "familyName"
	FieldPhoneNumber Field = "phoneNumber"
	FieldEmail       Field = "email"
)

var (
	ErrUnknownField  = errors.New("unknown profile field")
	ErrReadOnlyField = errors.New("profile field is read-only")
)

// Fields lists the form fields in display order.
func Fields() []Field {
	return []Field{FieldName, FieldFamilyName, FieldPhoneNumber, FieldEmail}
}

func ParseField(raw string) (Field, error) {
	for _, field := range Fields() {
		if string(field) == raw {
			return field, nil
		}
	}
	return "", ErrUnknownField
}

// Record is the profile as returned by the backend.
type Record struct {
	Name        string `json:"name"`
	FamilyName  string `json:"familyName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// Update is the body sent to the backend. Email is echoed back unchanged.
type Update struct {
	Name        string `json:"name"`
	FamilyName  string `json:"familyName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email,omitempty"`
}

// UpdateResponse is the backend's answer to an update.
type UpdateResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// Get returns the value held for field.
func (r Record) Get(field Field) string {
	switch field {
	case FieldName:
		return r.Name
	case FieldFamilyName:
		return r.FamilyName
	case FieldPhoneNumber:
		return r.PhoneNumber
	case FieldEmail:
		return r.Email
	}
	return ""
}

// With returns a copy of r with field set to value.
func (r Record) With(field Field, value string) (Record, error) {
	switch field {
	case FieldName:
		r.Name = value
	case FieldFamilyName:
		r.FamilyName = value
	case FieldPhoneNumber:
		r.PhoneNumber = value
	case FieldEmail:
		r.Email = value
	default:
		return r, ErrUnknownField
	}
	return r, nil
}

func (r Record) Update() Update {
	return Update{Name: r.Name, FamilyName: r.FamilyName, PhoneNumber: r.PhoneNumber, Email: r.Email}
}
