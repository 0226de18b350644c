// Package apptest provee repositorios en memoria para las pruebas de los casos de uso.
// Implementa los puertos de internal/domain/repository sin base de datos.
package apptest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Confecciones-api/internal/domain"
	"github.com/jhoicas/Confecciones-api/internal/domain/entity"
	"github.com/jhoicas/Confecciones-api/internal/domain/repository"
)

// ErrInjected error devuelto por las fallas simuladas.
var ErrInjected = errors.New("falla simulada")

// Faults fallas a inyectar. Se comparte entre el store y sus copias transaccionales.
type Faults struct {
	// FailAssignmentCreateAt hace fallar la n-ésima llamada a Create de asignaciones (1 = primera).
	FailAssignmentCreateAt int
	assignmentCreates      int
}

// Store estado en memoria.
type Store struct {
	mu          sync.Mutex
	Customers   map[string]entity.Customer
	Products    map[string]entity.Product
	Materials   map[string]entity.Material
	Tasks       map[string]entity.Task
	Users       map[string]entity.User
	Orders      map[string]entity.Order
	Assignments map[string]entity.TaskAssignment
	Catalog     map[string]entity.CatalogItem
	Faults      *Faults
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		Customers:   map[string]entity.Customer{},
		Products:    map[string]entity.Product{},
		Materials:   map[string]entity.Material{},
		Tasks:       map[string]entity.Task{},
		Users:       map[string]entity.User{},
		Orders:      map[string]entity.Order{},
		Assignments: map[string]entity.TaskAssignment{},
		Catalog:     map[string]entity.CatalogItem{},
		Faults:      &Faults{},
	}
}

func (s *Store) clone() *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := NewStore()
	c.Faults = s.Faults
	for k, v := range s.Orders {
		v.Items = append([]entity.OrderItem(nil), v.Items...)
		c.Orders[k] = v
	}
	for k, v := range s.Assignments {
		c.Assignments[k] = v
	}
	return c
}

// CustomerRepo repositorio de clientes.
func (s *Store) CustomerRepo() repository.CustomerRepository { return customerRepo{s} }

// ProductRepo repositorio de productos.
func (s *Store) ProductRepo() repository.ProductRepository { return productRepo{s} }

// MaterialRepo repositorio de insumos.
func (s *Store) MaterialRepo() repository.MaterialRepository { return materialRepo{s} }

// TaskRepo repositorio de tareas.
func (s *Store) TaskRepo() repository.TaskRepository { return taskRepo{s} }

// UserRepo repositorio de usuarios.
func (s *Store) UserRepo() repository.UserRepository { return userRepo{s} }

// OrderRepo repositorio de pedidos.
func (s *Store) OrderRepo() repository.OrderRepository { return orderRepo{s} }

// AssignmentRepo repositorio de asignaciones.
func (s *Store) AssignmentRepo() repository.TaskAssignmentRepository { return assignmentRepo{s} }

// CatalogRepo repositorio de catálogos.
func (s *Store) CatalogRepo() repository.CatalogRepository { return catalogRepo{s} }

// AnalyticsRepo consultas del tablero.
func (s *Store) AnalyticsRepo() repository.AnalyticsRepository { return analyticsRepo{s} }

// TxRunner transacción simulada: los callbacks escriben sobre una copia que solo se
// publica si terminan sin error.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunOrders ejecuta fn con un repositorio de pedidos transaccional.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(orderRepo repository.OrderRepository) error) error {
	staged := r.s.clone()
	if err := fn(staged.OrderRepo()); err != nil {
		return err
	}
	r.s.mu.Lock()
	r.s.Orders = staged.Orders
	r.s.mu.Unlock()
	return nil
}

// RunAssignments ejecuta fn con un repositorio de asignaciones transaccional.
func (r *TxRunner) RunAssignments(ctx context.Context, fn func(assignmentRepo repository.TaskAssignmentRepository) error) error {
	staged := r.s.clone()
	if err := fn(staged.AssignmentRepo()); err != nil {
		return err
	}
	r.s.mu.Lock()
	r.s.Assignments = staged.Assignments
	r.s.mu.Unlock()
	return nil
}

// ── clientes ──────────────────────────────────────────────────────────────────

type customerRepo struct{ s *Store }

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.Customers {
		if strings.EqualFold(e.Email, c.Email) || e.DocumentNumber == c.DocumentNumber {
			return domain.ErrDuplicate
		}
	}
	r.s.Customers[c.ID] = *c
	return nil
}

func (r customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.Customers[id]; ok {
		return &c, nil
	}
	return nil, nil
}

func (r customerRepo) find(match func(entity.Customer) bool) *entity.Customer {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.Customers {
		if match(c) {
			c := c
			return &c
		}
	}
	return nil
}

func (r customerRepo) GetByEmail(_ context.Context, email string) (*entity.Customer, error) {
	return r.find(func(c entity.Customer) bool { return strings.EqualFold(c.Email, email) }), nil
}

func (r customerRepo) GetByDocument(_ context.Context, doc string) (*entity.Customer, error) {
	return r.find(func(c entity.Customer) bool { return c.DocumentNumber == doc }), nil
}

func (r customerRepo) List(_ context.Context, search string, limit, offset int) ([]*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Customer
	for _, c := range r.s.Customers {
		if search != "" && !strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Customers[c.ID] = *c
	return nil
}

func (r customerRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Customers, id)
	return nil
}

func (r customerRepo) HasOrders(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.Orders {
		if o.CustomerID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── productos ─────────────────────────────────────────────────────────────────

type productRepo struct{ s *Store }

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Products[p.ID] = *p
	return nil
}

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p, ok := r.s.Products[id]; ok {
		return &p, nil
	}
	return nil, nil
}

func (r productRepo) GetByCode(_ context.Context, code string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Products {
		if p.Code == code {
			return &p, nil
		}
	}
	return nil, nil
}

func (r productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.Products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return page(out, limit, offset), nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Products[p.ID] = *p
	return nil
}

func (r productRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Products, id)
	return nil
}

func (r productRepo) IsReferenced(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.Orders {
		for _, it := range o.Items {
			if it.ProductID == id {
				return true, nil
			}
		}
	}
	for _, a := range r.s.Assignments {
		if a.ProductID == id {
			return true, nil
		}
	}
	return false, nil
}

// ── insumos ───────────────────────────────────────────────────────────────────

type materialRepo struct{ s *Store }

func (r materialRepo) Create(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Materials[m.ID] = *m
	return nil
}

func (r materialRepo) GetByID(_ context.Context, id string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.Materials[id]; ok {
		return &m, nil
	}
	return nil, nil
}

func (r materialRepo) GetByName(_ context.Context, name string) (*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.Materials {
		if strings.EqualFold(m.Name, name) {
			return &m, nil
		}
	}
	return nil, nil
}

func (r materialRepo) List(_ context.Context, limit, offset int) ([]*entity.Material, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Material
	for _, m := range r.s.Materials {
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r materialRepo) Update(_ context.Context, m *entity.Material) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Materials[m.ID] = *m
	return nil
}

func (r materialRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Materials, id)
	return nil
}

func (r materialRepo) IsUsedByProduct(_ context.Context, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.Products {
		for _, mid := range p.MaterialIDs {
			if mid == id {
				return true, nil
			}
		}
	}
	return false, nil
}

// ── tareas ────────────────────────────────────────────────────────────────────

type taskRepo struct{ s *Store }

func (r taskRepo) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Tasks[t.ID] = *t
	return nil
}

func (r taskRepo) GetByID(_ context.Context, id string) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.Tasks[id]; ok {
		return &t, nil
	}
	return nil, nil
}

func (r taskRepo) GetByName(_ context.Context, name string) (*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.Tasks {
		if strings.EqualFold(t.Name, name) {
			return &t, nil
		}
	}
	return nil, nil
}

func (r taskRepo) List(_ context.Context, limit, offset int) ([]*entity.Task, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Task
	for _, t := range r.s.Tasks {
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), nil
}

func (r taskRepo) Update(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Tasks[t.ID] = *t
	return nil
}

func (r taskRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Tasks, id)
	return nil
}

// ── usuarios ──────────────────────────────────────────────────────────────────

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.Users {
		if strings.EqualFold(e.Username, u.Username) || strings.EqualFold(e.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	c := *u
	c.Roles = append([]string(nil), u.Roles...)
	r.s.Users[u.ID] = c
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.Users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r userRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.Users {
		if strings.EqualFold(u.Username, login) || strings.EqualFold(u.Email, login) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r userRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.User
	for _, u := range r.s.Users {
		u := u
		out = append(out, &u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return page(out, limit, offset), nil
}

func (r userRepo) UpdateRoles(_ context.Context, id string, roles []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Roles = append([]string(nil), roles...)
	r.s.Users[id] = u
	return nil
}

func (r userRepo) UpdateLockout(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.Users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.FailedAttempts = user.FailedAttempts
	u.LockoutEnd = user.LockoutEnd
	r.s.Users[user.ID] = u
	return nil
}

// ── pedidos ───────────────────────────────────────────────────────────────────

type orderRepo struct{ s *Store }

func copyOrder(o entity.Order) *entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	return &o
}

func (r orderRepo) Create(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Orders[o.ID] = *copyOrder(*o)
	return nil
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o, ok := r.s.Orders[id]; ok {
		return copyOrder(o), nil
	}
	return nil, nil
}

func (r orderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if f.Status != 0 && o.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RegisteredAt.After(out[j].RegisteredAt) })
	return page(out, f.Limit, f.Offset), nil
}

func (r orderRepo) Update(_ context.Context, o *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.Orders[o.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status.IsTerminal() {
		return fmt.Errorf("%w: el pedido está %s", domain.ErrConflict, current.Status.Label())
	}
	o.Status = current.Status
	r.s.Orders[o.ID] = *copyOrder(*o)
	return nil
}

func (r orderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.Orders[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	r.s.Orders[id] = o
	return nil
}

func (r orderRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Orders, id)
	return nil
}

// ── asignaciones ──────────────────────────────────────────────────────────────

type assignmentRepo struct{ s *Store }

func (r assignmentRepo) Create(_ context.Context, a *entity.TaskAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	f := r.s.Faults
	f.assignmentCreates++
	if f.FailAssignmentCreateAt > 0 && f.assignmentCreates == f.FailAssignmentCreateAt {
		return ErrInjected
	}
	r.s.Assignments[a.ID] = *a
	return nil
}

func (r assignmentRepo) GetByID(_ context.Context, id string) (*entity.TaskAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.Assignments[id]; ok {
		return &a, nil
	}
	return nil, nil
}

func (r assignmentRepo) List(_ context.Context, f repository.AssignmentFilter) ([]*entity.TaskAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TaskAssignment
	for _, a := range r.s.Assignments {
		if (f.UserID != "" && a.UserID != f.UserID) ||
			(f.ProductID != "" && a.ProductID != f.ProductID) ||
			(f.TaskID != "" && a.TaskID != f.TaskID) ||
			(f.Status != 0 && a.Status != f.Status) {
			continue
		}
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartAt.Before(out[j].StartAt) })
	return page(out, f.Limit, f.Offset), nil
}

func (r assignmentRepo) UpdateStatus(_ context.Context, a *entity.TaskAssignment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.Assignments[a.ID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = a.Status
	e.EndAt = a.EndAt
	r.s.Assignments[a.ID] = e
	return nil
}

func (r assignmentRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Assignments, id)
	return nil
}

func (r assignmentRepo) ExistsActive(_ context.Context, key entity.AssignmentKey) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.Assignments {
		if a.Key() == key && !a.Status.IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (r assignmentRepo) CountActiveByTask(_ context.Context, taskID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, a := range r.s.Assignments {
		if a.TaskID == taskID && !a.Status.IsTerminal() {
			n++
		}
	}
	return n, nil
}

func (r assignmentRepo) CountsByProduct(_ context.Context, productIDs []string) (map[string]entity.AssignmentCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return countsByProduct(r.s.Assignments, productIDs), nil
}

func countsByProduct(all map[string]entity.TaskAssignment, productIDs []string) map[string]entity.AssignmentCounts {
	wanted := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		wanted[id] = struct{}{}
	}
	out := make(map[string]entity.AssignmentCounts)
	for _, a := range all {
		if _, ok := wanted[a.ProductID]; !ok {
			continue
		}
		c := out[a.ProductID]
		c.Total++
		switch a.Status {
		case entity.AssignmentCompleted:
			c.Completed++
		case entity.AssignmentInProgress:
			c.InProgress++
		}
		out[a.ProductID] = c
	}
	return out
}

// ── catálogos ─────────────────────────────────────────────────────────────────

type catalogRepo struct{ s *Store }

func (r catalogRepo) Create(_ context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Catalog[item.ID] = *item
	return nil
}

func (r catalogRepo) GetByID(_ context.Context, kind entity.CatalogKind, id string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.Catalog[id]; ok && c.Kind == kind {
		return &c, nil
	}
	return nil, nil
}

func (r catalogRepo) FindByNormalized(_ context.Context, kind entity.CatalogKind, normalized string) (*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.Catalog {
		if c.Kind == kind && entity.NormalizeDescription(c.Description) == normalized {
			return &c, nil
		}
	}
	return nil, nil
}

func (r catalogRepo) List(_ context.Context, kind entity.CatalogKind) ([]*entity.CatalogItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.CatalogItem
	for _, c := range r.s.Catalog {
		if c.Kind == kind {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Description < out[j].Description })
	return out, nil
}

func (r catalogRepo) Update(_ context.Context, item *entity.CatalogItem) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.Catalog[item.ID] = *item
	return nil
}

func (r catalogRepo) Delete(_ context.Context, _ entity.CatalogKind, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.Catalog, id)
	return nil
}

func (r catalogRepo) IsReferenced(_ context.Context, kind entity.CatalogKind, id string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if kind == entity.CatalogMaterialType {
		for _, m := range r.s.Materials {
			if m.MaterialTypeID == id {
				return true, nil
			}
		}
		return false, nil
	}
	for _, p := range r.s.Products {
		var ref *string
		switch kind {
		case entity.CatalogColor:
			ref = p.ColorID
		case entity.CatalogSize:
			ref = p.SizeID
		case entity.CatalogCategory:
			ref = p.CategoryID
		case entity.CatalogFamily:
			ref = p.FamilyID
		case entity.CatalogLine:
			ref = p.LineID
		}
		if ref != nil && *ref == id {
			return true, nil
		}
	}
	return false, nil
}

// ── tablero ───────────────────────────────────────────────────────────────────

type analyticsRepo struct{ s *Store }

func hasStatus(s entity.OrderStatus, statuses []entity.OrderStatus) bool {
	for _, x := range statuses {
		if x == s {
			return true
		}
	}
	return false
}

func (r analyticsRepo) ordersBy(match func(entity.Order) bool) []*entity.Order {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Order
	for _, o := range r.s.Orders {
		if match(o) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out
}

func (r analyticsRepo) NextDueOrder(_ context.Context, statuses []entity.OrderStatus) (*entity.Order, error) {
	list := r.ordersBy(func(o entity.Order) bool { return hasStatus(o.Status, statuses) })
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r analyticsRepo) OrdersByStatus(_ context.Context, statuses []entity.OrderStatus, limit int) ([]*entity.Order, error) {
	list := r.ordersBy(func(o entity.Order) bool { return hasStatus(o.Status, statuses) })
	return page(list, limit, 0), nil
}

func (r analyticsRepo) CountRegisteredBetween(_ context.Context, from, to time.Time) (int, error) {
	list := r.ordersBy(func(o entity.Order) bool {
		return !o.RegisteredAt.Before(from) && !o.RegisteredAt.After(to)
	})
	return len(list), nil
}

func overdueOrder(o entity.Order, now time.Time) bool {
	return o.DueDate.Before(now) && o.Status != entity.OrderCompleted && o.Status != entity.OrderCancelled
}

func (r analyticsRepo) CountOverdueOrders(_ context.Context, now time.Time) (int, error) {
	return len(r.ordersBy(func(o entity.Order) bool { return overdueOrder(o, now) })), nil
}

func (r analyticsRepo) OverdueOrders(_ context.Context, now time.Time, limit int) ([]*entity.Order, error) {
	list := r.ordersBy(func(o entity.Order) bool { return overdueOrder(o, now) })
	return page(list, limit, 0), nil
}

func (r analyticsRepo) OverdueAssignments(_ context.Context, now time.Time, limit int) ([]*entity.TaskAssignment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.TaskAssignment
	for _, a := range r.s.Assignments {
		if a.IsOverdue(now) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndAt.Before(*out[j].EndAt) })
	return page(out, limit, 0), nil
}

func (r analyticsRepo) AssignmentCountsByProduct(_ context.Context, productIDs []string) (map[string]entity.AssignmentCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return countsByProduct(r.s.Assignments, productIDs), nil
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
