// Package admin contiene la lógica de la pantalla de búsqueda de usuarios de la consola:
// carga, filtro, orden, paginación, edición y eliminación.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/jhoicas/gestion-centros/internal/application/dto"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/rs/zerolog"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// CentroDesconocido nombre mostrado cuando el centro del usuario no está en el catálogo.
const CentroDesconocido = "N/A"

// ErrStale la carga terminó después de otra más reciente y se descartó.
var ErrStale = errors.New("carga descartada por una más reciente")

// Backend operaciones REST que necesita la pantalla (las implementa *api.Client).
type Backend interface {
	GetCentros(ctx context.Context) ([]dto.CentroResponse, error)
	GetUsers(ctx context.Context) ([]dto.UserBackend, error)
	UpdateUser(ctx context.Context, cedula int64, in dto.UpdateUserRequest) (*dto.UserBackend, error)
	DeleteUser(ctx context.Context, cedula int64) error
}

// User usuario tal como se muestra en la consola, con centro y tipo resueltos a nombre.
type User struct {
	Cedula          int64
	PrimerNombre    string
	SegundoNombre   string
	PrimerApellido  string
	SegundoApellido string
	Email           string
	Telefono        string
	Centro          string
	TipoUsuario     string
}

// NombreCompleto nombres y apellidos separados por un espacio, incluidos los vacíos.
func (u User) NombreCompleto() string {
	return u.PrimerNombre + " " + u.SegundoNombre + " " + u.PrimerApellido + " " + u.SegundoApellido
}

// Filter criterios de búsqueda; un campo vacío no filtra.
type Filter struct {
	Nombre string
	Centro string // cen_id como texto
	Email  string
	Cedula string
}

// Controller estado de la pantalla. Seguro para uso concurrente.
type Controller struct {
	backend Backend
	log     zerolog.Logger

	mu       sync.Mutex
	gen      uint64
	centros  []dto.CentroResponse
	users    []User
	filter   Filter
	filtered []User
	collator *collate.Collator
}

// NewController construye el controlador.
func NewController(backend Backend, log zerolog.Logger) *Controller {
	return &Controller{
		backend:  backend,
		log:      log,
		collator: collate.New(language.Spanish),
	}
}

// Load trae centros y luego usuarios, resuelve el nombre del centro y reaplica filtro y orden.
// Si falla se conserva la lista anterior. Si entretanto empezó otra carga, devuelve ErrStale.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	centros, err := c.backend.GetCentros(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("obtener centros de formación")
		return fmt.Errorf("obtener centros: %w", err)
	}
	raw, err := c.backend.GetUsers(ctx)
	if err != nil {
		c.log.Error().Err(err).Msg("obtener usuarios")
		return fmt.Errorf("obtener usuarios: %w", err)
	}

	nombres := make(map[int]string, len(centros))
	for _, ce := range centros {
		nombres[ce.ID] = ce.Nombre
	}
	users := make([]User, 0, len(raw))
	for _, u := range raw {
		users = append(users, toUser(u, nombres))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return ErrStale
	}
	c.centros = centros
	c.users = users
	c.applyLocked()
	return nil
}

// Reset olvida usuarios, centros y filtro (al cerrar sesión). Las cargas en curso quedan obsoletas.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.centros = nil
	c.users = nil
	c.filter = Filter{}
	c.filtered = nil
}

// Filter fija los criterios y devuelve el resultado ordenado.
func (c *Controller) Filter(f Filter) []User {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	c.applyLocked()
	return append([]User(nil), c.filtered...)
}

// Results resultado vigente (filtrado y ordenado).
func (c *Controller) Results() []User {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]User(nil), c.filtered...)
}

// Total cantidad de usuarios que pasan el filtro.
func (c *Controller) Total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.filtered)
}

// Page devuelve la página n (desde 0) de tamaño size.
func (c *Controller) Page(n, size int) []User {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size <= 0 || n < 0 {
		return nil
	}
	start := n * size
	if start >= len(c.filtered) {
		return nil
	}
	end := start + size
	if end > len(c.filtered) {
		end = len(c.filtered)
	}
	return append([]User(nil), c.filtered[start:end]...)
}

// PageCount número de páginas para size.
func (c *Controller) PageCount(size int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size <= 0 {
		return 0
	}
	return (len(c.filtered) + size - 1) / size
}

// Centros catálogo cargado.
func (c *Controller) Centros() []dto.CentroResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]dto.CentroResponse(nil), c.centros...)
}

// ApplyEdit envía el usuario editado y recarga. nil (diálogo cancelado) no hace nada.
// Un centro o tipo que no se reconoce no se envía y el backend conserva el actual.
func (c *Controller) ApplyEdit(ctx context.Context, u *User) error {
	if u == nil {
		return nil
	}
	in := c.toUpdateRequest(*u)
	if _, err := c.backend.UpdateUser(ctx, u.Cedula, in); err != nil {
		c.log.Error().Err(err).Int64("cedula", u.Cedula).Msg("actualizar usuario")
		return fmt.Errorf("actualizar usuario: %w", err)
	}
	return c.Load(ctx)
}

// ApplyDelete elimina el usuario si se confirmó y recarga.
func (c *Controller) ApplyDelete(ctx context.Context, u User, confirmed bool) error {
	if !confirmed {
		return nil
	}
	if err := c.backend.DeleteUser(ctx, u.Cedula); err != nil {
		c.log.Error().Err(err).Int64("cedula", u.Cedula).Msg("eliminar usuario")
		return fmt.Errorf("eliminar usuario: %w", err)
	}
	return c.Load(ctx)
}

func (c *Controller) applyLocked() {
	centroNombre := ""
	if c.filter.Centro != "" {
		for _, ce := range c.centros {
			if strconv.Itoa(ce.ID) == c.filter.Centro {
				centroNombre = ce.Nombre
				break
			}
		}
	}
	out := make([]User, 0, len(c.users))
	for _, u := range c.users {
		if matches(u, c.filter, centroNombre) {
			out = append(out, u)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return c.collator.CompareString(sortKey(out[i]), sortKey(out[j])) < 0
	})
	c.filtered = out
}

// matches aplica el filtro; centroNombre es el nombre resuelto de f.Centro.
func matches(u User, f Filter, centroNombre string) bool {
	if f.Nombre != "" && !strings.Contains(strings.ToLower(u.NombreCompleto()), strings.ToLower(f.Nombre)) {
		return false
	}
	if f.Centro != "" && u.Centro != centroNombre {
		return false
	}
	if f.Email != "" && !strings.Contains(strings.ToLower(u.Email), strings.ToLower(f.Email)) {
		return false
	}
	if f.Cedula != "" && !strings.Contains(strconv.FormatInt(u.Cedula, 10), f.Cedula) {
		return false
	}
	return true
}

func sortKey(u User) string {
	return u.PrimerNombre + " " + u.PrimerApellido
}

func toUser(u dto.UserBackend, centros map[int]string) User {
	centro, ok := centros[u.CentroID]
	if !ok {
		centro = CentroDesconocido
	}
	return User{
		Cedula:          u.Cedula,
		PrimerNombre:    u.PrimerNombre,
		SegundoNombre:   u.SegundoNombre,
		PrimerApellido:  u.PrimerApellido,
		SegundoApellido: u.SegundoApellido,
		Email:           u.Correo,
		Telefono:        u.Telefono,
		Centro:          centro,
		TipoUsuario:     entity.TipoUsuario(u.TipoUsuarioID).String(),
	}
}

func (c *Controller) toUpdateRequest(u User) dto.UpdateUserRequest {
	in := dto.UpdateUserRequest{
		PrimerNombre:    &u.PrimerNombre,
		SegundoNombre:   &u.SegundoNombre,
		PrimerApellido:  &u.PrimerApellido,
		SegundoApellido: &u.SegundoApellido,
		Correo:          &u.Email,
		Telefono:        &u.Telefono,
	}
	c.mu.Lock()
	for _, ce := range c.centros {
		if ce.Nombre == u.Centro {
			id := ce.ID
			in.CentroID = &id
			break
		}
	}
	c.mu.Unlock()
	if tipo, ok := entity.ParseTipoUsuario(u.TipoUsuario); ok {
		id := int(tipo)
		in.TipoUsuarioID = &id
	}
	return in
}
