// Package api es el cliente REST que usa la consola contra el backend de gestión de centros.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/client/session"
)

// maxBody límite de lectura de respuestas (el reporte PDF no pasa por aquí).
const maxBody = 4 << 20

// Error respuesta no exitosa del backend. Message es el campo "error" del cuerpo, si vino.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Client cliente HTTP con URL base y token de sesión leído en cada petición.
type Client struct {
	baseURL    string
	store      session.Store
	httpClient *http.Client
}

// NewClient construye el cliente. timeout <= 0 usa 15 s.
func NewClient(baseURL string, store session.Store, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		store:      store,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// PostJSON envía in como JSON y decodifica la respuesta en out (si no es nil).
func (c *Client) PostJSON(ctx context.Context, path string, in, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// GetCentros GET /api/centros.
func (c *Client) GetCentros(ctx context.Context) ([]dto.CentroResponse, error) {
	var out dto.CentroListResponse
	if err := c.do(ctx, http.MethodGet, "/api/centros", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// GetUsers GET /api/usuarios.
func (c *Client) GetUsers(ctx context.Context) ([]dto.UserBackend, error) {
	var out []dto.UserBackend
	if err := c.do(ctx, http.MethodGet, "/api/usuarios", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateUser PUT /api/usuarios/{cedula}. Los campos nil no viajan y el backend los conserva.
func (c *Client) UpdateUser(ctx context.Context, cedula int64, in dto.UpdateUserRequest) (*dto.UserBackend, error) {
	var out dto.UserBackend
	if err := c.do(ctx, http.MethodPut, "/api/usuarios/"+strconv.FormatInt(cedula, 10), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser DELETE /api/usuarios/{cedula}.
func (c *Client) DeleteUser(ctx context.Context, cedula int64) error {
	return c.do(ctx, http.MethodDelete, "/api/usuarios/"+strconv.FormatInt(cedula, 10), nil, nil)
}

// ListSolicitudes GET /api/solicitudes.
func (c *Client) ListSolicitudes(ctx context.Context, limit, offset int) (*dto.SolicitudListResponse, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	var out dto.SolicitudListResponse
	if err := c.do(ctx, http.MethodGet, "/api/solicitudes?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CambiarEstadoSolicitud PATCH /api/solicitudes/{id}/estado.
func (c *Client) CambiarEstadoSolicitud(ctx context.Context, id, estado string) (*dto.SolicitudResponse, error) {
	var out dto.SolicitudResponse
	path := "/api/solicitudes/" + url.PathEscape(id) + "/estado"
	if err := c.do(ctx, http.MethodPatch, path, dto.CambiarEstadoRequest{Estado: estado}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: serializar request: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.store != nil {
		if s, err := c.store.Load(); err == nil && s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("api: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return fmt.Errorf("api: leer respuesta: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &Error{Status: resp.StatusCode}
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code = e.Code
			apiErr.Message = e.Message
		}
		return apiErr
	}
	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: decodificar respuesta: %w", err)
	}
	return nil
}
