package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/innsight/hotel-admin/internal/core/auth"
	"github.com/innsight/hotel-admin/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stub repository
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	nextID  int
	calls   int   // every repository call, for "no persistence access" checks
	failErr error // if set, every call returns this error
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.ID] = cloneUser(u)
	}
	return r
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) touch() error {
	r.calls++
	return r.failErr
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) ExistsWithRole(_ context.Context, role domain.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return false, err
	}
	for _, u := range r.users {
		if u.Role == role {
			return true, nil
		}
	}
	return false, nil
}

// List applies the same filter and ordering the real stores use.
func (r *stubUserRepo) List(_ context.Context, f domain.UserFilter) ([]*domain.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(f.Search)
	var matched []*domain.User
	for _, u := range r.users {
		if needle != "" && !strings.Contains(strings.ToLower(u.Email), needle) && !strings.Contains(strings.ToLower(u.Name), needle) {
			continue
		}
		matched = append(matched, cloneUser(u))
	}
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := int64(len(matched))
	if f.Skip >= len(matched) {
		return []*domain.User{}, total, nil
	}
	end := f.Skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[f.Skip:end], total, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return nil, err
	}
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return nil, domain.ErrUserExists
		}
		if user.Role == domain.RoleSuperAdmin && u.Role == domain.RoleSuperAdmin {
			return nil, domain.ErrUserExists
		}
	}
	created := cloneUser(user)
	if created.ID == "" {
		r.nextID++
		created.ID = fmt.Sprintf("new-%d", r.nextID)
	}
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, patch domain.UserPatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.touch(); err != nil {
		return err
	}
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *stubUserRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// ---------------------------------------------------------------------------
// Other collaborators
// ---------------------------------------------------------------------------

// stubHasher prefixes instead of hashing so tests stay fast.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (stubHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type stubRevalidator struct {
	mu    sync.Mutex
	types []string
}

func (r *stubRevalidator) Revalidate(_ context.Context, contentType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, contentType)
}

func (r *stubRevalidator) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.types)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	superAdmin = &domain.User{ID: "sa", Email: "owner@hotel.test", Role: domain.RoleSuperAdmin, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	admin      = &domain.User{ID: "ad", Email: "manager@hotel.test", Name: "Manager", Role: domain.RoleAdmin, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	frontDesk  = &domain.User{ID: "fd", Email: "desk@hotel.test", Name: "Desk", Role: domain.RoleFrontDesk, CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)}
)

func sessionFor(u *domain.User) context.Context {
	return auth.WithSession(context.Background(), &domain.Session{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role})
}

func newUserService(repo *stubUserRepo) (*UserService, *stubRevalidator) {
	rv := &stubRevalidator{}
	gate := auth.NewGate(auth.ContextProvider{})
	return NewUserService(repo, gate, stubHasher{}, rv, zerolog.Nop()), rv
}

func rolePtr(r domain.Role) *domain.Role { return &r }

func strPtr(s string) *string { return &s }
