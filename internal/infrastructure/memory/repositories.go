// Package memory implementa los puertos de persistencia en memoria. Se usa con APP_STORAGE=memory
// (demos y desarrollo sin PostgreSQL) y como doble de prueba en los tests de aplicación y HTTP.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jhoicas/gestion-centros/internal/application/ports"
	"github.com/jhoicas/gestion-centros/internal/domain"
	"github.com/jhoicas/gestion-centros/internal/domain/entity"
	"github.com/jhoicas/gestion-centros/internal/domain/repository"
)

var (
	_ repository.UserRepository      = (*UserRepo)(nil)
	_ repository.CentroRepository    = (*CentroRepo)(nil)
	_ repository.SolicitudRepository = (*SolicitudRepo)(nil)
	_ ports.SolicitudTxRunner        = (*TxRunner)(nil)
)

// UserRepo repositorio de usuarios en memoria, indexado por cédula.
type UserRepo struct {
	mu    sync.RWMutex
	users map[int64]entity.User
}

// NewUserRepository construye el repositorio con usuarios iniciales opcionales.
func NewUserRepository(seed ...*entity.User) *UserRepo {
	r := &UserRepo{users: make(map[int64]entity.User)}
	for _, u := range seed {
		r.users[u.Cedula] = *u
	}
	return r
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Cedula]; ok {
		return domain.ErrDuplicate
	}
	if r.correoTakenLocked(user.Correo, 0) {
		return domain.ErrEmailAlreadyExists
	}
	r.users[user.Cedula] = *user
	return nil
}

func (r *UserRepo) GetByCedula(_ context.Context, cedula int64) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[cedula]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByCorreo(_ context.Context, correo string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Correo, correo) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[user.Cedula]
	if !ok {
		return nil
	}
	if r.correoTakenLocked(user.Correo, user.Cedula) {
		return domain.ErrEmailAlreadyExists
	}
	updated := *user
	updated.PasswordHash = current.PasswordHash
	r.users[user.Cedula] = updated
	return nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, cedula int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[cedula]
	if !ok {
		return nil
	}
	u.PasswordHash = hash
	r.users[cedula] = u
	return nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Cedula < out[j].Cedula })
	return out, nil
}

func (r *UserRepo) Delete(_ context.Context, cedula int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, cedula)
	return nil
}

func (r *UserRepo) correoTakenLocked(correo string, except int64) bool {
	for c, u := range r.users {
		if c != except && strings.EqualFold(u.Correo, correo) {
			return true
		}
	}
	return false
}

// CentroRepo catálogo fijo de centros.
type CentroRepo struct {
	centros []entity.Centro
}

// NewCentroRepository construye el catálogo.
func NewCentroRepository(centros ...entity.Centro) *CentroRepo {
	cp := append([]entity.Centro(nil), centros...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Nombre < cp[j].Nombre })
	return &CentroRepo{centros: cp}
}

func (r *CentroRepo) List(_ context.Context) ([]*entity.Centro, error) {
	out := make([]*entity.Centro, 0, len(r.centros))
	for i := range r.centros {
		c := r.centros[i]
		out = append(out, &c)
	}
	return out, nil
}

func (r *CentroRepo) GetByID(_ context.Context, id int) (*entity.Centro, error) {
	for _, c := range r.centros {
		if c.ID == id {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

// SolicitudRepo repositorio de solicitudes de almacén en memoria.
type SolicitudRepo struct {
	mu    sync.RWMutex
	items map[string]entity.SolicitudAlmacen
}

// NewSolicitudRepository construye el repositorio vacío.
func NewSolicitudRepository() *SolicitudRepo {
	return &SolicitudRepo{items: make(map[string]entity.SolicitudAlmacen)}
}

func (r *SolicitudRepo) Create(_ context.Context, s *entity.SolicitudAlmacen) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[s.ID]; ok {
		return domain.ErrDuplicate
	}
	r.items[s.ID] = *s
	return nil
}

func (r *SolicitudRepo) GetByID(_ context.Context, id string) (*entity.SolicitudAlmacen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *SolicitudRepo) List(_ context.Context, cedula int64, limit, offset int) ([]*entity.SolicitudAlmacen, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*entity.SolicitudAlmacen, 0, len(r.items))
	for _, s := range r.items {
		if cedula > 0 && s.Cedula != cedula {
			continue
		}
		s := s
		all = append(all, &s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *SolicitudRepo) UpdateEstado(_ context.Context, id, estado string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Estado = estado
	r.items[id] = s
	return nil
}

// TxRunner serializa las transacciones sobre el repositorio en memoria. No hay rollback:
// fn debe validar antes de escribir.
type TxRunner struct {
	mu   sync.Mutex
	repo *SolicitudRepo
}

// NewTxRunner construye el runner sobre repo.
func NewTxRunner(repo *SolicitudRepo) *TxRunner {
	return &TxRunner{repo: repo}
}

func (t *TxRunner) RunSolicitud(_ context.Context, fn func(repo repository.SolicitudRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.repo)
}
