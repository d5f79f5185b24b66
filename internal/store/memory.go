package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/arzan03/storefront/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NewMemory returns Stores kept in process memory. It enforces the same
// unique constraints as the MongoDB indexes.
func NewMemory() Stores {
	m := &memory{
		users:    map[primitive.ObjectID]models.User{},
		products: map[primitive.ObjectID]models.Product{},
		reviews:  map[primitive.ObjectID]models.Review{},
		orders:   map[primitive.ObjectID]models.Order{},
	}
	return Stores{
		Users:    memUsers{m},
		Products: memProducts{m},
		Reviews:  memReviews{m},
		Orders:   memOrders{m},
	}
}

type memory struct {
	mu       sync.RWMutex
	users    map[primitive.ObjectID]models.User
	products map[primitive.ObjectID]models.Product
	reviews  map[primitive.ObjectID]models.Review
	orders   map[primitive.ObjectID]models.Order
}

func stamp(id *primitive.ObjectID, created, updated *time.Time) {
	if id.IsZero() {
		*id = primitive.NewObjectID()
	}
	now := time.Now()
	*created, *updated = now, now
}

// sortByCreated orders a listing the way the Mongo stores sort it.
func sortByCreated[T any](items []T, created func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool {
		return created(items[i]).Before(created(items[j]))
	})
}

// users

type memUsers struct{ m *memory }

func (s memUsers) Create(_ context.Context, user *models.User) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, u := range s.m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	s.m.users[user.ID] = *user
	return nil
}

func (s memUsers) Count(_ context.Context) (int64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()
	return int64(len(s.m.users)), nil
}

func (s memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	for _, u := range s.m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s memUsers) ListByRole(_ context.Context, role string) ([]models.User, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	users := []models.User{}
	for _, u := range s.m.users {
		if u.Role == role {
			u.Password = ""
			users = append(users, u)
		}
	}
	sortByCreated(users, func(u models.User) time.Time { return u.CreatedAt })
	return users, nil
}

func (s memUsers) UpdateProfile(_ context.Context, id primitive.ObjectID, name, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	for otherID, other := range s.m.users {
		if otherID != id && other.Email == email {
			return nil, ErrDuplicate
		}
	}
	u.Name, u.Email, u.UpdatedAt = name, email, time.Now()
	s.m.users[id] = u
	return &u, nil
}

func (s memUsers) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	u, ok := s.m.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Password, u.UpdatedAt = hash, time.Now()
	s.m.users[id] = u
	return nil
}

// products

type memProducts struct{ m *memory }

func (s memProducts) Create(_ context.Context, product *models.Product) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	stamp(&product.ID, &product.CreatedAt, &product.UpdatedAt)
	product.Colors = append([]string(nil), product.Colors...)
	s.m.products[product.ID] = *product
	return nil
}

func (s memProducts) List(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	products := []models.Product{}
	for _, p := range s.m.products {
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if filter.Company != "" && p.Company != filter.Company {
			continue
		}
		if filter.Featured != nil && p.Featured != *filter.Featured {
			continue
		}
		products = append(products, p)
	}
	sortByCreated(products, func(p models.Product) time.Time { return p.CreatedAt })
	return products, nil
}

func (s memProducts) FindByID(_ context.Context, id primitive.ObjectID) (*models.Product, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	p, ok := s.m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s memProducts) Update(_ context.Context, id primitive.ObjectID, update models.ProductUpdate) (*models.Product, error) {
	return s.mutate(id, func(p *models.Product) { update.Apply(p) })
}

func (s memProducts) SetImage(_ context.Context, id primitive.ObjectID, image string) error {
	_, err := s.mutate(id, func(p *models.Product) { p.Image = image })
	return err
}

func (s memProducts) SetRating(_ context.Context, id primitive.ObjectID, summary models.RatingSummary) error {
	_, err := s.mutate(id, func(p *models.Product) {
		p.AverageRating = summary.AverageRating
		p.NumOfReviews = summary.NumOfReviews
	})
	return err
}

func (s memProducts) mutate(id primitive.ObjectID, fn func(*models.Product)) (*models.Product, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	p, ok := s.m.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	fn(&p)
	p.UpdatedAt = time.Now()
	s.m.products[id] = p
	return &p, nil
}

func (s memProducts) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.products[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.products, id)
	return nil
}

// reviews

type memReviews struct{ m *memory }

func (s memReviews) Create(_ context.Context, review *models.Review) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, r := range s.m.reviews {
		if r.User == review.User && r.Product == review.Product {
			return ErrDuplicate
		}
	}
	stamp(&review.ID, &review.CreatedAt, &review.UpdatedAt)
	s.m.reviews[review.ID] = *review
	return nil
}

func (s memReviews) FindByID(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	r, ok := s.m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &r, nil
}

func (s memReviews) ListByProduct(_ context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	reviews := []models.Review{}
	for _, r := range s.m.reviews {
		if r.Product == productID {
			reviews = append(reviews, r)
		}
	}
	sortByCreated(reviews, func(r models.Review) time.Time { return r.CreatedAt })
	return reviews, nil
}

func (s memReviews) Update(_ context.Context, id primitive.ObjectID, update models.ReviewUpdate) (*models.Review, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	r, ok := s.m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	update.Apply(&r)
	r.UpdatedAt = time.Now()
	s.m.reviews[id] = r
	return &r, nil
}

func (s memReviews) Delete(_ context.Context, id primitive.ObjectID) (*models.Review, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	r, ok := s.m.reviews[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(s.m.reviews, id)
	return &r, nil
}

func (s memReviews) DeleteByProduct(_ context.Context, productID primitive.ObjectID) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	var n int64
	for id, r := range s.m.reviews {
		if r.Product == productID {
			delete(s.m.reviews, id)
			n++
		}
	}
	return n, nil
}

func (s memReviews) Summarize(_ context.Context, productID primitive.ObjectID) (models.RatingSummary, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var sum, n int
	for _, r := range s.m.reviews {
		if r.Product == productID {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return models.RatingSummary{}, nil
	}
	return models.RatingSummary{AverageRating: float64(sum) / float64(n), NumOfReviews: n}, nil
}

// orders

type memOrders struct{ m *memory }

func (s memOrders) Create(_ context.Context, order *models.Order) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	stamp(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	order.Items = append([]models.OrderItem(nil), order.Items...)
	s.m.orders[order.ID] = *order
	return nil
}

func (s memOrders) List(_ context.Context) ([]models.Order, error) {
	return s.filter(func(models.Order) bool { return true }), nil
}

func (s memOrders) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.filter(func(o models.Order) bool { return o.User == userID }), nil
}

func (s memOrders) filter(keep func(models.Order) bool) []models.Order {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	orders := []models.Order{}
	for _, o := range s.m.orders {
		if keep(o) {
			orders = append(orders, o)
		}
	}
	sortByCreated(orders, func(o models.Order) time.Time { return o.CreatedAt })
	return orders
}

func (s memOrders) FindByID(_ context.Context, id primitive.ObjectID) (*models.Order, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	o, ok := s.m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &o, nil
}

func (s memOrders) MarkProcessing(_ context.Context, id primitive.ObjectID, paymentIntentID string) (*models.Order, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	o, ok := s.m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	o.PaymentIntentID = paymentIntentID
	o.Status = models.OrderProcessing
	o.UpdatedAt = time.Now()
	s.m.orders[id] = o
	return &o, nil
}

func (s memOrders) Delete(_ context.Context, id primitive.ObjectID) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	if _, ok := s.m.orders[id]; !ok {
		return ErrNotFound
	}
	delete(s.m.orders, id)
	return nil
}
