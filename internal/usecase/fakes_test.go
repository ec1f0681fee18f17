package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// In-memory repository fakes for service tests. Every fake is guarded by a
// mutex because services fire goroutines for side effects.

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok || user.DeletedAt != nil {
		return nil, nil
	}
	cp := *user
	return &cp, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.Email == email && user.DeletedAt == nil {
			cp := *user
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if user, ok := f.users[id]; ok {
		now := time.Now()
		user.DeletedAt = &now
	}
	return nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *session
	f.sessions[session.Token.String()] = &cp
	return nil
}

func (f *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	cp := *session
	return &cp, nil
}

func (f *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if session, ok := f.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for _, session := range f.sessions {
		if session.UserID == userID {
			session.RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeSessionRepo) CleanExpiredSessions(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for token, session := range f.sessions {
		if session.ExpiresAt.Before(time.Now()) {
			delete(f.sessions, token)
		}
	}
	return nil
}

func (f *fakeSessionRepo) activeCount(userID uuid.UUID) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, session := range f.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			count++
		}
	}
	return count
}

type fakeProductRepo struct {
	mu        sync.Mutex
	products  map[uuid.UUID]*entity.Product
	ratings   map[uuid.UUID]map[uuid.UUID]int
	purchases map[uuid.UUID]map[uuid.UUID]bool
	carts     *fakeCartRepo
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{
		products:  make(map[uuid.UUID]*entity.Product),
		ratings:   make(map[uuid.UUID]map[uuid.UUID]int),
		purchases: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (f *fakeProductRepo) Create(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	product, ok := f.products[id]
	if !ok || product.DeletedAt != nil {
		return nil, nil
	}
	cp := *product
	return &cp, nil
}

func (f *fakeProductRepo) matches(product *entity.Product, filter *entity.ProductFilter) bool {
	if product.DeletedAt != nil {
		return false
	}
	if filter == nil {
		return true
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(product.Name), strings.ToLower(filter.Search)) {
		return false
	}
	if filter.MinPrice != nil && product.Price < *filter.MinPrice {
		return false
	}
	if filter.MaxPrice != nil && product.Price > *filter.MaxPrice {
		return false
	}
	if filter.Category != "" && (product.Category == nil || *product.Category != filter.Category) {
		return false
	}
	return true
}

func (f *fakeProductRepo) FindAll(_ context.Context, filter *entity.ProductFilter) ([]*entity.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Product
	for _, product := range f.products {
		if !f.matches(product, filter) {
			continue
		}
		cp := *product
		result = append(result, &cp)
	}
	return result, nil
}

func (f *fakeProductRepo) Count(_ context.Context, filter *entity.ProductFilter) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var total int64
	for _, product := range f.products {
		if f.matches(product, filter) {
			total++
		}
	}
	return total, nil
}

func (f *fakeProductRepo) Update(_ context.Context, product *entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *product
	f.products[product.ID] = &cp
	return nil
}

func (f *fakeProductRepo) DeleteCascade(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	if product, ok := f.products[id]; ok {
		now := time.Now()
		product.DeletedAt = &now
	}
	f.mu.Unlock()
	if f.carts != nil {
		f.carts.removeProductEverywhere(id)
	}
	return nil
}

func (f *fakeProductRepo) UpsertRating(_ context.Context, rating *entity.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ratings[rating.ProductID] == nil {
		f.ratings[rating.ProductID] = make(map[uuid.UUID]int)
	}
	f.ratings[rating.ProductID][rating.UserID] = rating.Score

	sum, n := 0, 0
	for _, score := range f.ratings[rating.ProductID] {
		sum += score
		n++
	}
	if product, ok := f.products[rating.ProductID]; ok && n > 0 {
		product.AverageRating = float64(sum) / float64(n)
	}
	return nil
}

func (f *fakeProductRepo) HasPurchased(_ context.Context, userID, productID uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.purchases[userID][productID], nil
}

func (f *fakeProductRepo) markPurchased(userID, productID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.purchases[userID] == nil {
		f.purchases[userID] = make(map[uuid.UUID]bool)
	}
	f.purchases[userID][productID] = true
}

type fakeCartRepo struct {
	mu       sync.Mutex
	items    map[uuid.UUID]map[uuid.UUID]int
	products *fakeProductRepo
}

func newFakeCartRepo(products *fakeProductRepo) *fakeCartRepo {
	return &fakeCartRepo{
		items:    make(map[uuid.UUID]map[uuid.UUID]int),
		products: products,
	}
}

func (f *fakeCartRepo) FindLines(_ context.Context, userID uuid.UUID) ([]*entity.CartLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var lines []*entity.CartLine
	for productID, quantity := range f.items[userID] {
		product := f.products.products[productID]
		if product == nil || product.DeletedAt != nil {
			continue
		}
		lines = append(lines, &entity.CartLine{
			ProductID: productID,
			Name:      product.Name,
			Price:     product.Price,
			Quantity:  quantity,
		})
	}
	return lines, nil
}

func (f *fakeCartRepo) AddItem(_ context.Context, userID, productID uuid.UUID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.items[userID] == nil {
		f.items[userID] = make(map[uuid.UUID]int)
	}
	f.items[userID][productID] += quantity
	return nil
}

func (f *fakeCartRepo) SetQuantity(_ context.Context, userID, productID uuid.UUID, quantity int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[userID][productID]; !ok {
		return false, nil
	}
	f.items[userID][productID] = quantity
	return true, nil
}

func (f *fakeCartRepo) RemoveItem(_ context.Context, userID, productID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items[userID], productID)
	return nil
}

func (f *fakeCartRepo) Clear(_ context.Context, userID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, userID)
	return nil
}

func (f *fakeCartRepo) removeProductEverywhere(productID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, lines := range f.items {
		delete(lines, productID)
	}
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders []*entity.Order
	items  map[uuid.UUID][]*entity.OrderItem
	carts  *fakeCartRepo
}

func newFakeOrderRepo(carts *fakeCartRepo) *fakeOrderRepo {
	return &fakeOrderRepo{
		items: make(map[uuid.UUID][]*entity.OrderItem),
		carts: carts,
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, order *entity.Order, items []*entity.OrderItem, clearCart bool) error {
	f.mu.Lock()
	cp := *order
	f.orders = append(f.orders, &cp)
	f.items[order.ID] = items
	f.mu.Unlock()
	if clearCart {
		return f.carts.Clear(ctx, order.UserID)
	}
	return nil
}

func (f *fakeOrderRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Order
	for _, order := range f.orders {
		if order.UserID == userID {
			cp := *order
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) FindBySellerID(_ context.Context, sellerID uuid.UUID) ([]*entity.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.Order
	for _, order := range f.orders {
		for _, item := range f.items[order.ID] {
			if item.SellerID == sellerID {
				cp := *order
				result = append(result, &cp)
				break
			}
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) FindItems(_ context.Context, orderID uuid.UUID) ([]*entity.OrderItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.items[orderID], nil
}

type fakePermissionRepo struct {
	mu       sync.Mutex
	requests map[uuid.UUID]*entity.PermissionRequest
}

func newFakePermissionRepo() *fakePermissionRepo {
	return &fakePermissionRepo{requests: make(map[uuid.UUID]*entity.PermissionRequest)}
}

func (f *fakePermissionRepo) Create(_ context.Context, req *entity.PermissionRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakePermissionRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.PermissionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	req, ok := f.requests[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (f *fakePermissionRepo) FindPending(_ context.Context) ([]*entity.PermissionRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*entity.PermissionRequest
	for _, req := range f.requests {
		if req.Status == entity.RequestStatusPending {
			cp := *req
			result = append(result, &cp)
		}
	}
	return result, nil
}

func (f *fakePermissionRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.RequestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req, ok := f.requests[id]; ok {
		req.Status = status
	}
	return nil
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeMailer) Send(to, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, to+": "+subject)
	return nil
}

// testEnv bundles the fakes with the wired Repository for assertions.
type testEnv struct {
	repo       *repository.Repository
	users      *fakeUserRepo
	sessions   *fakeSessionRepo
	products   *fakeProductRepo
	carts      *fakeCartRepo
	orders     *fakeOrderRepo
	permission *fakePermissionRepo
	mailer     *fakeMailer
	config     *utils.Config
	log        *zap.Logger
}

func newTestEnv() *testEnv {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	products := newFakeProductRepo()
	carts := newFakeCartRepo(products)
	products.carts = carts
	orders := newFakeOrderRepo(carts)
	permission := newFakePermissionRepo()

	return &testEnv{
		repo: &repository.Repository{
			User:       users,
			Session:    sessions,
			Product:    products,
			Cart:       carts,
			Order:      orders,
			Permission: permission,
		},
		users:      users,
		sessions:   sessions,
		products:   products,
		carts:      carts,
		orders:     orders,
		permission: permission,
		mailer:     &fakeMailer{},
		config: &utils.Config{
			Session: utils.SessionConfig{ExpiryDays: 7},
		},
		log: zap.NewNop(),
	}
}

func (e *testEnv) addUser(role entity.UserRole, email, password string) *entity.User {
	hash, _ := utils.HashPassword(password)
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:         "Test User",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	e.users.Create(context.Background(), user)
	return user
}

func (e *testEnv) addProduct(sellerID uuid.UUID, name string, price float64) *entity.Product {
	product := &entity.Product{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name:        name,
		Price:       price,
		Description: "test product",
		SellerID:    sellerID,
	}
	e.products.Create(context.Background(), product)
	return product
}
