// Package memstore implements storage.Store with in-process keyed maps.
// It backs tests and local development; the relational backend lives in
// gormstore. All methods serialize on a single mutex, which is what makes
// the merge-or-insert and reserve invariants hold under concurrent requests.
package memstore

import (
	"context"
	"sync"

	"fashionexpress/models"
	"fashionexpress/storage"
)

type Store struct {
	mu sync.Mutex

	users         map[uint]models.User
	categories    map[uint]models.Category
	products      map[uint]models.Product
	cartItems     map[uint]models.CartItem
	orders        map[uint]models.Order
	orderItems    map[uint]models.OrderItem
	orderTracking map[uint]models.OrderTracking
	wishlistItems map[uint]models.WishlistItem
	reviews       map[uint]models.Review

	lastID struct {
		user, category, product, cartItem uint
		order, orderItem, tracking        uint
		wishlistItem, review              uint
	}
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:         make(map[uint]models.User),
		categories:    make(map[uint]models.Category),
		products:      make(map[uint]models.Product),
		cartItems:     make(map[uint]models.CartItem),
		orders:        make(map[uint]models.Order),
		orderItems:    make(map[uint]models.OrderItem),
		orderTracking: make(map[uint]models.OrderTracking),
		wishlistItems: make(map[uint]models.WishlistItem),
		reviews:       make(map[uint]models.Review),
	}
}

// Users

func (s *Store) GetUser(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == user.Username || u.Email == user.Email {
			return storage.ErrDuplicate
		}
	}
	s.lastID.user++
	user.ID = s.lastID.user
	s.users[user.ID] = *user
	return nil
}

func (s *Store) UpdateUser(_ context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "username":
			u.Username = v.(string)
		case "email":
			u.Email = v.(string)
		case "name":
			u.Name = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "address":
			u.Address = v.(string)
		case "city":
			u.City = v.(string)
		case "state":
			u.State = v.(string)
		case "pincode":
			u.Pincode = v.(string)
		}
	}
	s.users[id] = u
	return &u, nil
}

// Categories

func (s *Store) GetAllCategories(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Category, 0, len(s.categories))
	for id := uint(1); id <= s.lastID.category; id++ {
		if c, ok := s.categories[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *Store) GetCategory(_ context.Context, id uint) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &c, nil
}

func (s *Store) CreateCategory(_ context.Context, category *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID.category++
	category.ID = s.lastID.category
	s.categories[category.ID] = *category
	return nil
}
