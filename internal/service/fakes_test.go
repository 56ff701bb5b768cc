package service

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"orderhub/internal/errs"
	"orderhub/internal/model"
	"orderhub/internal/repository"
)

type fakeUsers struct {
	byEmail map[string]*model.User
	roles   *fakeRoles // role link written in the same "transaction" as the user

	createErr error
	getErr    error
}

var _ repository.UserRepository = (*fakeUsers)(nil)

func newFakeUsers() *fakeUsers { return &fakeUsers{byEmail: map[string]*model.User{}} }

func (f *fakeUsers) CreateWithRole(ctx context.Context, u *model.User, roleName string) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[u.Email]; exists {
		return errs.ErrEmailExists
	}
	var pair rolePair
	if f.roles != nil {
		r, err := f.roles.GetByName(ctx, roleName)
		if err != nil {
			// neither write survives
			return err
		}
		pair = rolePair{u.ID, r.ID}
	}
	cpy := *u
	f.byEmail[u.Email] = &cpy
	if f.roles != nil {
		f.roles.pairs[pair] = true
	}
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, errs.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

type rolePair struct {
	userID uuid.UUID
	roleID uuid.UUID
}

type fakeRoles struct {
	byName map[string]model.Role
	pairs  map[rolePair]bool

	hasRoleCalls int
}

var _ repository.RoleRepository = (*fakeRoles)(nil)

func newFakeRoles(names ...string) *fakeRoles {
	f := &fakeRoles{byName: map[string]model.Role{}, pairs: map[rolePair]bool{}}
	for _, n := range names {
		f.byName[n] = model.Role{ID: uuid.Must(uuid.NewV4()), Name: n}
	}
	return f
}

func (f *fakeRoles) GetByName(_ context.Context, name string) (*model.Role, error) {
	r, ok := f.byName[name]
	if !ok {
		return nil, errs.ErrInvalidInput
	}
	return &r, nil
}

func (f *fakeRoles) Associate(_ context.Context, userID, roleID uuid.UUID) error {
	p := rolePair{userID, roleID}
	if f.pairs[p] {
		return errs.ErrAssociationExists
	}
	f.pairs[p] = true
	return nil
}

func (f *fakeRoles) Unlink(_ context.Context, userID, roleID uuid.UUID) error {
	p := rolePair{userID, roleID}
	if !f.pairs[p] {
		return errs.ErrAssociationNotFound
	}
	delete(f.pairs, p)
	return nil
}

func (f *fakeRoles) HasRole(_ context.Context, userID uuid.UUID, roleName string) (bool, error) {
	f.hasRoleCalls++
	r, ok := f.byName[roleName]
	if !ok {
		return false, nil
	}
	return f.pairs[rolePair{userID, r.ID}], nil
}

func (f *fakeRoles) NamesForUser(_ context.Context, userID uuid.UUID) ([]string, error) {
	var names []string
	for n, r := range f.byName {
		if f.pairs[rolePair{userID, r.ID}] {
			names = append(names, n)
		}
	}
	return names, nil
}

type fakeProducts struct {
	byID map[uuid.UUID]model.Product

	createErr error
}

var _ repository.ProductRepository = (*fakeProducts)(nil)

func newFakeProducts(products ...model.Product) *fakeProducts {
	f := &fakeProducts{byID: map[uuid.UUID]model.Product{}}
	for _, p := range products {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProducts) Create(_ context.Context, p *model.Product) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.byID {
		if existing.OwnerID == p.OwnerID && existing.Name == p.Name {
			return errs.ErrDuplicatedResource
		}
	}
	f.byID[p.ID] = *p
	return nil
}

func (f *fakeProducts) GetByName(_ context.Context, name string) (*model.Product, error) {
	for _, p := range f.byID {
		if p.Name == name {
			c := p
			return &c, nil
		}
	}
	return nil, errs.ErrProductNotFound
}

func (f *fakeProducts) GetByIDs(_ context.Context, ids []uuid.UUID) ([]model.Product, error) {
	var out []model.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProducts) List(_ context.Context, page, size int) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range f.byID {
		out = append(out, p)
	}
	return out, int64(len(f.byID)), nil
}

type fakeOrders struct {
	byID map[uuid.UUID]model.Order

	createErr     error
	createdOrder  *model.Order
	createdEvent  *model.OutboxEvent
	createCalls   int
	listCallsPage int
}

var _ repository.OrderRepository = (*fakeOrders)(nil)

func newFakeOrders() *fakeOrders { return &fakeOrders{byID: map[uuid.UUID]model.Order{}} }

func (f *fakeOrders) CreateWithEvent(_ context.Context, o *model.Order, ev *model.OutboxEvent) error {
	f.createCalls++
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[o.ID] = *o
	f.createdOrder = o
	f.createdEvent = ev
	return nil
}

func (f *fakeOrders) GetByID(_ context.Context, id uuid.UUID) (*model.Order, error) {
	o, ok := f.byID[id]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	c := o
	return &c, nil
}

func (f *fakeOrders) List(_ context.Context, page, size int) ([]model.Order, int64, error) {
	f.listCallsPage = page
	var out []model.Order
	for _, o := range f.byID {
		out = append(out, o)
	}
	return out, int64(len(out)), nil
}
