package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL+"/", 2*time.Second, nil), srv
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestLogin_SendsContractBodyAndDecodes(t *testing.T) {
	var got map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, LoginPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err, "request id must be a uuid")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		writeJSON(w, http.StatusOK, map[string]any{
			"token":   "t1",
			"usuario": map[string]any{"nome": "Ana", "faixa": "azul"},
		})
	})

	resp, err := c.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "secret1"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"email": "a@b.com", "senha": "secret1"}, got)
	assert.Equal(t, "t1", resp.Token)
	assert.JSONEq(t, `{"nome":"Ana","faixa":"azul"}`, string(resp.User))
}

func TestSignup_SendsContractBody(t *testing.T) {
	var got map[string]string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, SignupPath, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusCreated, map[string]any{"token": "t2", "usuario": map[string]any{"nome": "Bia"}})
	})

	resp, err := c.Signup(context.Background(), SignupRequest{
		Name: "Bia", Age: "21", MartialArt: "judo", Email: "bia@dojo.com", Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "t2", resp.Token)
	assert.Equal(t, map[string]string{
		"nome": "Bia", "idade": "21", "arte_marcial": "judo", "email": "bia@dojo.com", "senha": "secret1",
	}, got)
}

func TestLogin_ServerErrorMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"erro": "Invalid credentials"})
	})

	_, err := c.Login(context.Background(), LoginRequest{Email: "a@b.com", Password: "x"})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_ErrorWithoutMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{})
	})

	_, err := c.Login(context.Background(), LoginRequest{})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestLogin_MalformedBodies(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"html error page":  {http.StatusInternalServerError, "<html>oops</html>"},
		"empty error body": {http.StatusBadGateway, ""},
		"2xx not json":     {http.StatusOK, "ok"},
		"2xx no token":     {http.StatusOK, `{"usuario":{"nome":"Ana"}}`},
		"2xx null usuario": {http.StatusOK, `{"token":"t1","usuario":null}`},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = io.WriteString(w, tc.body)
			})

			_, err := c.Login(context.Background(), LoginRequest{})
			require.ErrorIs(t, err, ErrMalformedResponse)
		})
	}
}

func TestLogin_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := NewHTTPClient(url, time.Second, nil)
	_, err := c.Login(context.Background(), LoginRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestLogin_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := NewHTTPClient(srv.URL, 50*time.Millisecond, nil)
	_, err := c.Login(context.Background(), LoginRequest{})
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestGetProtected_AttachesBearer(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, ProfilePath, r.URL.Path)
		assert.Equal(t, "Bearer t1", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, map[string]any{"nome": "Ana", "idade": 30})
	})

	body, err := c.GetProtected(context.Background(), ProfilePath, "t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"nome":"Ana","idade":30}`, string(body))
}

func TestGetProtected_PathWithoutLeadingSlash(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/perfil", r.URL.Path)
		writeJSON(w, http.StatusOK, []int{1})
	})

	_, err := c.GetProtected(context.Background(), "api/perfil", "t1")
	require.NoError(t, err)
}

func TestGetProtected_AuthFailures(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = io.WriteString(w, "no body contract")
		})

		_, err := c.GetProtected(context.Background(), ProfilePath, "expired")
		require.ErrorIs(t, err, ErrUnauthorized, "status %d", status)
	}
}

func TestGetProtected_OtherStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"erro": "not found"})
	})

	_, err := c.GetProtected(context.Background(), "/api/missing", "t1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "not found", apiErr.Message)
	assert.NotErrorIs(t, err, ErrUnauthorized)
}

func TestGetProtected_NonJSONSuccess(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "plain text")
	})

	_, err := c.GetProtected(context.Background(), ProfilePath, "t1")
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func TestMapError(t *testing.T) {
	require.NoError(t, mapError(nil))
	require.ErrorIs(t, mapError(context.Canceled), context.Canceled)
	require.NotErrorIs(t, mapError(context.Canceled), ErrUnavailable)

	cause := errors.New("dial tcp: refused")
	err := mapError(cause)
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, err, cause)
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "api error: status 500", (&Error{StatusCode: 500}).Error())
	assert.Equal(t, "api error: status 409: email taken", (&Error{StatusCode: 409, Message: "email taken"}).Error())
}
