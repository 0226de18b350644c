package repository

import (
	"context"

	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// Los Get* devuelven (nil, nil) cuando el registro no existe.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByEmail(ctx context.Context, email string) (*entity.Customer, error)
	GetByDocument(ctx context.Context, documentNumber string) (*entity.Customer, error)
	List(ctx context.Context, search string, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id string) error
	HasOrders(ctx context.Context, id string) (bool, error)
}
