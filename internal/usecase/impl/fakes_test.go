package impl

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Hand-rolled in-memory fakes standing in for the persistence layer.
// They mirror the behavior of the postgres repositories, including the
// unique-email constraint mapping.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- user repository fake ---

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	cloned := *user

	return &cloned, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			cloned := *user

			return &cloned, nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// The store's unique index on email is the final authority.
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
	}

	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cloned := *user
	r.users[user.ID] = &cloned

	return nil
}

func (r *fakeUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.users)
}

// --- product repository fake ---

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uuid.UUID]*entity.Product
	seq      int // insertion order, newest listed first
	order    map[uuid.UUID]int
	failWith error // when set, every call fails with this error

	// rowMu emulates the store's row lock: FindByIDForUpdate takes it and
	// the following Update releases it, serializing read-modify-write flows.
	rowMu       sync.Mutex
	rowLocked   bool // guarded by mu
	lockedReads int  // guarded by mu
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products: make(map[uuid.UUID]*entity.Product),
		order:    make(map[uuid.UUID]int),
	}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	product, ok := r.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	cloned := *product

	return &cloned, nil
}

func (r *fakeProductRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	r.rowMu.Lock()

	product, err := r.FindByID(ctx, id)
	if err != nil {
		r.rowMu.Unlock()

		return nil, err
	}

	r.mu.Lock()
	r.rowLocked = true
	r.lockedReads++
	r.mu.Unlock()

	return product, nil
}

// releaseRowLock emulates transaction end, where the store drops row locks.
func (r *fakeProductRepo) releaseRowLock() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.rowLocked {
		r.rowLocked = false
		r.rowMu.Unlock()
	}
}

func (r *fakeProductRepo) List(_ context.Context, filter repository.ProductFilter, page repository.ProductPage) ([]*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return nil, r.failWith
	}

	matched := r.matchLocked(filter)

	start := page.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if page.Limit > 0 && start+page.Limit < end {
		end = start + page.Limit
	}

	result := make([]*entity.Product, 0, end-start)
	for _, product := range matched[start:end] {
		cloned := *product
		result = append(result, &cloned)
	}

	return result, nil
}

func (r *fakeProductRepo) Count(_ context.Context, filter repository.ProductFilter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return 0, r.failWith
	}

	return int64(len(r.matchLocked(filter))), nil
}

func (r *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	product.ID = uuid.New()
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt
	cloned := *product
	r.products[product.ID] = &cloned
	r.seq++
	r.order[product.ID] = r.seq

	return nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.products[product.ID]; !ok {
		return repository.ErrProductNotFound
	}
	cloned := *product
	cloned.UpdatedAt = time.Now()
	r.products[product.ID] = &cloned

	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		return r.failWith
	}

	if _, ok := r.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, id)
	delete(r.order, id)

	return nil
}

func (r *fakeProductRepo) lockedReadCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.lockedReads
}

func (r *fakeProductRepo) matchLocked(filter repository.ProductFilter) []*entity.Product {
	matched := make([]*entity.Product, 0, len(r.products))
	for _, product := range r.products {
		if len(filter.Categories) > 0 && !containsFold(filter.Categories, product.Category) {
			continue
		}
		if filter.Featured != nil && product.IsFeatured != *filter.Featured {
			continue
		}
		matched = append(matched, product)
	}

	// Newest first, like the postgres implementation's ORDER BY created_at DESC.
	sort.Slice(matched, func(i, j int) bool {
		return r.order[matched[i].ID] > r.order[matched[j].ID]
	})

	return matched
}

func containsFold(haystack []string, needle string) bool {
	for _, s := range haystack {
		if strings.EqualFold(s, needle) {
			return true
		}
	}

	return false
}

// --- transaction manager fake ---

type fakeRepoFactory struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
}

func (f *fakeRepoFactory) UserRepo() repository.UserRepository       { return f.userRepo }
func (f *fakeRepoFactory) ProductRepo() repository.ProductRepository { return f.productRepo }

type fakeTxManager struct {
	factory     *fakeRepoFactory
	productRepo *fakeProductRepo
}

func newFakeTxManager(userRepo *fakeUserRepo, productRepo *fakeProductRepo) *fakeTxManager {
	return &fakeTxManager{
		factory: &fakeRepoFactory{
			userRepo:    userRepo,
			productRepo: productRepo,
		},
		productRepo: productRepo,
	}
}

func (tm *fakeTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	defer tm.productRepo.releaseRowLock()

	return fn(tm.factory)
}

// --- domain service stubs ---

// stubHasher is deterministic and cheap; real bcrypt behavior is covered by
// the infra tests.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Check(password, hash string) bool {
	return hash == "hashed:"+password
}

type failingHasher struct{}

func (failingHasher) Hash(string) (string, error) {
	return "", errors.New("hasher exploded")
}

func (failingHasher) Check(string, string) bool { return false }

// stubTokenService issues real, verifiable claims without infra config.
type stubTokenService struct{}

func (stubTokenService) Generate(userID uuid.UUID) (string, error) {
	return "token-for-" + userID.String(), nil
}

func (stubTokenService) Validate(tokenString string) (*service.Claims, error) {
	raw, ok := strings.CutPrefix(tokenString, "token-for-")
	if !ok {
		return nil, errors.New("invalid token")
	}
	userID, err := uuid.Parse(raw)
	if err != nil {
		return nil, errors.New("invalid token")
	}

	return &service.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: userID.String(),
		},
	}, nil
}
