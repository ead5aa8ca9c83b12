package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"skyflyBff/internal/modules/profile/application/form"
	"skyflyBff/internal/modules/profile/domain"
	"skyflyBff/internal/platform/rest"
	"skyflyBff/internal/shared/auth"
)

type fakeGateway struct {
	record  domain.Record
	result  rest.Result
	gets    int
	updates []domain.Update
}

func (g *fakeGateway) GetProfile(context.Context, string) (domain.Record, error) {
	g.gets++
	return g.record, nil
}

func (g *fakeGateway) EditProfile(_ context.Context, _ string, update domain.Update) rest.Result {
	g.updates = append(g.updates, update)
	return g.result
}

var harry = domain.Record{Name: "Harry", FamilyName: "Potter", PhoneNumber: "+62 812 3456 7890", Email: "harry@hogwarts.edu"}

func decodeView(t *testing.T, rec *httptest.ResponseRecorder) FormView {
	t.Helper()
	var view FormView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	return view
}

func TestProfileFormHTTPHandler(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{record: harry}
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/account/profile?edit=true", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "tkn"})
	rec := httptest.NewRecorder()

	require.NoError(t, NewProfileFormHTTPHandler(gateway, auth.NewTokenChecker(""))(e.NewContext(req, rec)))

	require.Equal(t, http.StatusOK, rec.Code)
	want := FormView{
		State:    form.StateReady,
		Editable: true,
		Fields: map[string]FieldView{
			"name":        {Value: "Harry"},
			"familyName":  {Value: "Potter"},
			"phoneNumber": {Value: "+62 812 3456 7890"},
			"email":       {Value: "harry@hogwarts.edu", ReadOnly: true},
		},
		FieldErrors:   map[string]string{},
		Notifications: []form.Notification{},
	}
	if diff := cmp.Diff(want, decodeView(t, rec)); diff != "" {
		t.Errorf("view mismatch (-want,+got)\n%s", diff)
	}
}

func TestProfileFormHTTPHandler_ReadOnlyWithoutToken(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{record: harry}
	e := echo.New()
	rec := httptest.NewRecorder()

	require.NoError(t, NewProfileFormHTTPHandler(gateway, auth.NewTokenChecker(""))(e.NewContext(httptest.NewRequest(http.MethodGet, "/api/account/profile", nil), rec)))

	view := decodeView(t, rec)
	require.Zero(t, gateway.gets)
	require.False(t, view.Editable)
	require.Equal(t, FieldView{ReadOnly: true}, view.Fields["name"])
}

func putProfile(t *testing.T, gateway *fakeGateway, body string, token string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/api/account/profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, NewEditProfileHTTPHandler(gateway, auth.NewTokenChecker(""))(e.NewContext(req, rec)))
	return rec
}

func TestEditProfileHTTPHandler(t *testing.T) {
	t.Parallel()

	t.Run("submits edited fields and keeps email", func(t *testing.T) {
		t.Parallel()
		gateway := &fakeGateway{record: harry, result: rest.Ok([]byte(`{"status":true,"message":"Profile updated"}`))}

		rec := putProfile(t, gateway, `{"name":"Harry James","familyName":"Potter","phoneNumber":"+44 20 7946 0000"}`, "tkn")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, []domain.Update{{Name: "Harry James", FamilyName: "Potter", PhoneNumber: "+44 20 7946 0000", Email: "harry@hogwarts.edu"}}, gateway.updates)
		view := decodeView(t, rec)
		require.Equal(t, []form.Notification{{Level: form.LevelSuccess, Message: "Profile updated"}}, view.Notifications)
		require.Equal(t, form.StateReady, view.State)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Parallel()
		gateway := &fakeGateway{record: harry}

		rec := putProfile(t, gateway, `{"name":"Harry","familyName":"Potter"}`, "")

		require.Equal(t, http.StatusOK, rec.Code)
		require.Empty(t, gateway.updates)
		view := decodeView(t, rec)
		require.Equal(t, []form.Notification{{Level: form.LevelError, Message: "Token is missing or invalid."}}, view.Notifications)
	})

	t.Run("field errors", func(t *testing.T) {
		t.Parallel()
		gateway := &fakeGateway{record: harry}

		rec := putProfile(t, gateway, `{"name":"","familyName":"Potter","phoneNumber":"+62 812 3456 7890"}`, "tkn")

		require.Empty(t, gateway.updates)
		require.Equal(t, map[string]string{"name": "Full name is required"}, decodeView(t, rec).FieldErrors)
	})

	t.Run("invalid body", func(t *testing.T) {
		t.Parallel()
		rec := putProfile(t, &fakeGateway{}, `{"name":`, "tkn")

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"status":false,"message":"invalid request body"}`, rec.Body.String())
	})
}
