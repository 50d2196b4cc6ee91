package repository

import (
	"context"

	"github.com/jhoicas/gestion-centros/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByCedula(ctx context.Context, cedula int64) (*entity.User, error)
	GetByCorreo(ctx context.Context, correo string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	UpdatePassword(ctx context.Context, cedula int64, hash string) error
	List(ctx context.Context) ([]*entity.User, error)
	Delete(ctx context.Context, cedula int64) error
}
