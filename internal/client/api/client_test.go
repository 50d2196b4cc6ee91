package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/session"
)

func TestClient_EnviaTokenYDecodifica(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/api/centros", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"cen_id":1,"cen_nombre":"Centro Uno"}]}`))
	}))
	defer srv.Close()

	store := session.NewMemoryStore(session.Session{Token: "tok-1"})
	c := NewClient(srv.URL+"/", store, time.Second)

	centros, err := c.GetCentros(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []dto.CentroResponse{{ID: 1, Nombre: "Centro Uno"}}, centros)
	assert.Equal(t, "Bearer tok-1", gotAuth)

	// El token se lee en cada petición.
	require.NoError(t, store.Clear())
	_, err = c.GetCentros(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ErrorDelBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"code":"USER_NOT_FOUND","error":"Correo no registrado"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil, time.Second)
	err := c.PostJSON(context.Background(), "/api/auth/login", dto.LoginRequest{Correo: "x"}, nil)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "USER_NOT_FOUND", apiErr.Code)
	assert.Equal(t, "Correo no registrado", apiErr.Message)
}

func TestClient_ErrorSinCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, nil, time.Second).DeleteUser(context.Background(), 7)
	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Empty(t, apiErr.Message)
}

func TestClient_UpdateYDelete(t *testing.T) {
	var method, path string
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		if r.Method == http.MethodPut {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			_ = json.NewEncoder(w).Encode(body)
			return
		}
		_, _ = w.Write([]byte(`{"message":"usuario eliminado"}`))
	}))
	defer srv.Close()
	c := NewClient(srv.URL, nil, time.Second)

	nombre, centro := "Ana", 4
	out, err := c.UpdateUser(context.Background(), 123, dto.UpdateUserRequest{PrimerNombre: &nombre, CentroID: &centro})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/usuarios/123", path)
	assert.Equal(t, float64(4), body["cen_id"])
	assert.NotContains(t, body, "tip_usr_id", "los campos nil no se envían")
	assert.Equal(t, "Ana", out.PrimerNombre)

	require.NoError(t, c.DeleteUser(context.Background(), 123))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/api/usuarios/123", path)
}

func TestClient_Solicitudes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "5", r.URL.Query().Get("limit"))
			_, _ = w.Write([]byte(`{"items":[{"id":"s1","producto":"Guantes","cantidad":"2","estado":"pendiente"}],"page":{"limit":5,"offset":0}}`))
		case http.MethodPatch:
			assert.Equal(t, "/api/solicitudes/s1/estado", r.URL.Path)
			var in dto.CambiarEstadoRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			_, _ = w.Write([]byte(`{"id":"s1","estado":"` + in.Estado + `"}`))
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL, nil, time.Second)

	list, err := c.ListSolicitudes(context.Background(), 5, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "2", list.Items[0].Cantidad.String())

	s, err := c.CambiarEstadoSolicitud(context.Background(), "s1", "aprobada")
	require.NoError(t, err)
	assert.Equal(t, "aprobada", s.Estado)
}

func TestClient_ErrorDeTransporte(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, nil, time.Second).GetUsers(context.Background())
	require.Error(t, err)
	var apiErr *Error
	assert.False(t, errors.As(err, &apiErr), "un fallo de red no es *Error")
}
