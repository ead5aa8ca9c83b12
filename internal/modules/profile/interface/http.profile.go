package transport

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"skyflyBff/internal/modules/profile/application/form"
	"skyflyBff/internal/modules/profile/application/port"
	"skyflyBff/internal/modules/profile/domain"
	"skyflyBff/internal/shared/auth"
	"skyflyBff/internal/shared/httputil"
)

var errInvalidBody = errors.New("invalid request body")

var profileErrors = httputil.NewErrorMapper().
	WithMapping(form.ErrNotEditable, http.StatusForbidden, "profile is not editable").
	WithMapping(form.ErrNotReady, http.StatusConflict, "profile is not ready").
	WithMapping(errInvalidBody, http.StatusBadRequest, "invalid request body")

type FieldView struct {
	Value    string `json:"value"`
	ReadOnly bool   `json:"readOnly"`
}

// FormView is the JSON rendering of a profile form after an interaction.
type FormView struct {
	State         form.State           `json:"state"`
	Editable      bool                 `json:"editable"`
	Fields        map[string]FieldView `json:"fields"`
	FieldErrors   map[string]string    `json:"fieldErrors"`
	Notifications []form.Notification  `json:"notifications"`
}

// EditProfileRequest carries the editable fields only.
type EditProfileRequest struct {
	Name        string `json:"name"`
	FamilyName  string `json:"familyName"`
	PhoneNumber string `json:"phoneNumber"`
}

// NewProfileFormHTTPHandler exposes GET /api/account/profile?edit=.
func NewProfileFormHTTPHandler(gateway port.ProfileGateway, checker auth.CredentialChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		editable, _ := strconv.ParseBool(c.QueryParam("edit"))
		notes := &form.Notifications{}
		controller := form.NewController(gateway, checker, notes, editable)
		controller.Mount(c.Request().Context(), auth.ExtractToken(c.Request(), ""))
		return c.JSON(http.StatusOK, renderForm(controller, notes))
	}
}

// NewEditProfileHTTPHandler exposes PUT /api/account/profile.
func NewEditProfileHTTPHandler(gateway port.ProfileGateway, checker auth.CredentialChecker) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req EditProfileRequest
		if err := c.Bind(&req); err != nil {
			slog.Warn("profile http: invalid request body", slog.Any("error", err))
			return profileErrors.Respond(c, errInvalidBody)
		}

		token := auth.ExtractToken(c.Request(), "")
		notes := &form.Notifications{}
		controller := form.NewController(gateway, checker, notes, true)
		controller.Mount(c.Request().Context(), token)

		edits := []struct {
			field domain.Field
			value string
		}{
			{domain.FieldName, req.Name},
			{domain.FieldFamilyName, req.FamilyName},
			{domain.FieldPhoneNumber, req.PhoneNumber},
		}
		for _, edit := range edits {
			if err := controller.SetField(edit.field, edit.value); err != nil {
				return profileErrors.Respond(c, err)
			}
		}

		if err := controller.Submit(c.Request().Context(), token); err != nil {
			return profileErrors.Respond(c, err)
		}
		return c.JSON(http.StatusOK, renderForm(controller, notes))
	}
}

func renderForm(controller *form.Controller, notes *form.Notifications) FormView {
	values := controller.Values()
	view := FormView{
		State:         controller.State(),
		Editable:      controller.Editable(),
		Fields:        make(map[string]FieldView, len(domain.Fields())),
		FieldErrors:   map[string]string{},
		Notifications: notes.Items(),
	}
	for _, field := range domain.Fields() {
		view.Fields[string(field)] = FieldView{Value: values.Get(field), ReadOnly: controller.ReadOnly(field)}
	}
	for field, message := range controller.FieldErrors() {
		view.FieldErrors[string(field)] = message
	}
	if view.Notifications == nil {
		view.Notifications = []form.Notification{}
	}
	return view
}
