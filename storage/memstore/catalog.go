package memstore

import (
	"context"
	"math"
	"strings"
	"time"

	"fashionexpress/models"
	"fashionexpress/storage"
)

func (s *Store) QueryProducts(_ context.Context, q storage.ProductQuery) ([]models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Product{}
	for id := uint(1); id <= s.lastID.product; id++ {
		p, ok := s.products[id]
		if !ok {
			continue
		}
		switch q.Mode {
		case storage.QueryByCategory:
			if p.CategoryID != q.CategoryID {
				continue
			}
		case storage.QueryBySearch:
			if !matchesSearch(&p, q.Search) {
				continue
			}
		case storage.QueryFeatured:
			if !p.IsFeatured {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// matchesSearch reports whether the query appears in the product's name,
// description or brand, case-insensitively.
func matchesSearch(p *models.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q)
}

func (s *Store) GetProduct(_ context.Context, id uint) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return &p, nil
}

func (s *Store) CreateProduct(_ context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastID.product++
	product.ID = s.lastID.product
	if product.CreatedAt.IsZero() {
		product.CreatedAt = time.Now()
	}
	s.products[product.ID] = *product
	return nil
}

func (s *Store) UpdateProduct(_ context.Context, id uint, fields map[string]interface{}) (*models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "description":
			p.Description = v.(string)
		case "price":
			p.Price = toFloat(v)
		case "discount_price":
			if v == nil {
				p.DiscountPrice = nil
			} else {
				f := toFloat(v)
				p.DiscountPrice = &f
			}
		case "stock":
			p.Stock = toInt(v)
		case "image":
			p.Image = v.(string)
		case "brand":
			p.Brand = v.(string)
		case "is_featured":
			p.IsFeatured = v.(bool)
		}
	}
	s.products[id] = p
	return &p, nil
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	}
	return 0
}

func toInt(v interface{}) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

// ReserveStock decrements every line or nothing. The check and the writes
// happen under one lock, so concurrent checkouts against the same product
// serialize and stock never goes negative.
func (s *Store) ReserveStock(_ context.Context, lines []storage.StockLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range lines {
		p, ok := s.products[l.ProductID]
		if !ok {
			return storage.ErrNotFound
		}
		if p.Stock < l.Quantity {
			return storage.ErrInsufficientStock
		}
	}
	for _, l := range lines {
		p := s.products[l.ProductID]
		p.Stock -= l.Quantity
		s.products[l.ProductID] = p
	}
	return nil
}

func (s *Store) ReleaseStock(_ context.Context, lines []storage.StockLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range lines {
		p, ok := s.products[l.ProductID]
		if !ok {
			continue
		}
		p.Stock += l.Quantity
		s.products[l.ProductID] = p
	}
	return nil
}

// recomputeRating re-derives the aggregate rating from all reviews of the
// product. Caller must hold s.mu.
func (s *Store) recomputeRating(productID uint) {
	p, ok := s.products[productID]
	if !ok {
		return
	}
	var sum, count int
	for _, r := range s.reviews {
		if r.ProductID == productID {
			sum += r.Rating
			count++
		}
	}
	if count == 0 {
		p.Ratings = 0
		p.NumReviews = 0
	} else {
		p.Ratings = math.Round(float64(sum)/float64(count)*10) / 10
		p.NumReviews = count
	}
	s.products[productID] = p
}
