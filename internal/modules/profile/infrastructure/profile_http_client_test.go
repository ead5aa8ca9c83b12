package infrastructure

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"skyflyBff/internal/modules/profile/domain"
	"skyflyBff/internal/platform/rest"
)

type seenRequest struct {
	method string
	path   string
	auth   string
	body   string
}

func newProfileBackend(t *testing.T, status int, response string) (*httptest.Server, <-chan seenRequest) {
	t.Helper()
	seen := make(chan seenRequest, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		seen <- seenRequest{method: r.Method, path: r.URL.Path, auth: r.Header.Get("Authorization"), body: string(raw)}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(server.Close)
	return server, seen
}

func TestProfileHTTPClient_GetProfile(t *testing.T) {
	t.Parallel()

	want := domain.Record{Name: "Harry", FamilyName: "Potter", PhoneNumber: "+62 812", Email: "harry@hogwarts.edu"}

	tests := []struct {
		name     string
		response string
	}{
		{name: "flat", response: `{"name":"Harry","familyName":"Potter","phoneNumber":"+62 812","email":"harry@hogwarts.edu"}`},
		{name: "wrapped", response: `{"status":true,"data":{"name":"Harry","familyName":"Potter","phoneNumber":"+62 812","email":"harry@hogwarts.edu"}}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			server, seen := newProfileBackend(t, http.StatusOK, tt.response)
			client := NewProfileHTTPClient(server.URL+"/api/v1", "", time.Second, nil)

			record, err := client.GetProfile(context.Background(), "tkn")

			require.NoError(t, err)
			require.Equal(t, want, record)
			req := <-seen
			require.Equal(t, http.MethodGet, req.method)
			require.Equal(t, "/api/v1/users/profile", req.path)
			require.Equal(t, "Bearer tkn", req.auth)
		})
	}
}

func TestProfileHTTPClient_GetProfileFailure(t *testing.T) {
	t.Parallel()

	server, _ := newProfileBackend(t, http.StatusUnauthorized, `{"message":"jwt expired"}`)
	client := NewProfileHTTPClient(server.URL, "/me", time.Second, nil)

	_, err := client.GetProfile(context.Background(), "tkn")

	var transportErr *rest.TransportError
	require.True(t, errors.As(err, &transportErr))
	require.Equal(t, "jwt expired", transportErr.RemoteMessage())
}

func TestProfileHTTPClient_EditProfile(t *testing.T) {
	t.Parallel()

	t.Run("success body relayed", func(t *testing.T) {
		t.Parallel()
		server, seen := newProfileBackend(t, http.StatusOK, `{"status":true,"message":"Profile updated"}`)
		client := NewProfileHTTPClient(server.URL, "", time.Second, nil)

		result := client.EditProfile(context.Background(), "tkn", domain.Update{Name: "Harry", FamilyName: "Potter", PhoneNumber: "+62 812", Email: "harry@hogwarts.edu"})

		require.True(t, result.IsOk())
		require.JSONEq(t, `{"status":true,"message":"Profile updated"}`, string(result.Body()))
		req := <-seen
		require.Equal(t, http.MethodPut, req.method)
		require.JSONEq(t, `{"name":"Harry","familyName":"Potter","phoneNumber":"+62 812","email":"harry@hogwarts.edu"}`, req.body)
	})

	t.Run("failure normalized", func(t *testing.T) {
		t.Parallel()
		server, _ := newProfileBackend(t, http.StatusBadRequest, `{"status":false,"message":"Phone already used"}`)
		client := NewProfileHTTPClient(server.URL, "", time.Second, nil)

		result := client.EditProfile(context.Background(), "tkn", domain.Update{Name: "Harry"})

		require.False(t, result.IsOk())
		require.Equal(t, "Phone already used", result.Message())
	})
}
