package gormstore

import (
	"context"
	"math"

	"gorm.io/gorm"

	"fashionexpress/models"
	"fashionexpress/storage"
)

func (s *Store) QueryProducts(ctx context.Context, q storage.ProductQuery) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{})

	switch q.Mode {
	case storage.QueryByCategory:
		query = query.Where("category_id = ?", q.CategoryID)
	case storage.QueryBySearch:
		like := "%" + q.Search + "%"
		query = query.Where(
			"LOWER(name) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(brand) LIKE LOWER(?)",
			like, like, like,
		)
	case storage.QueryFeatured:
		query = query.Where("is_featured = ?", true)
	}

	var out []models.Product
	if err := query.Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, product *models.Product) error {
	return translate(s.db.WithContext(ctx).Create(product).Error)
}

func (s *Store) UpdateProduct(ctx context.Context, id uint, fields map[string]interface{}) (*models.Product, error) {
	res := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetProduct(ctx, id)
}

// ReserveStock decrements stock for all lines inside one transaction. Each
// decrement is conditional (stock >= quantity), so a concurrent checkout can
// never drive stock negative; if any line cannot be satisfied the whole
// transaction rolls back and nothing is taken.
func (s *Store) ReserveStock(ctx context.Context, lines []storage.StockLine) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", l.ProductID, l.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", l.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Distinguish a missing product from an exhausted one.
				var count int64
				if err := tx.Model(&models.Product{}).Where("id = ?", l.ProductID).Count(&count).Error; err != nil {
					return err
				}
				if count == 0 {
					return storage.ErrNotFound
				}
				return storage.ErrInsufficientStock
			}
		}
		return nil
	})
}

func (s *Store) ReleaseStock(ctx context.Context, lines []storage.StockLine) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, l := range lines {
			if err := tx.Model(&models.Product{}).
				Where("id = ?", l.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", l.Quantity)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// recomputeRating re-derives ratings and num_reviews from the reviews table.
func recomputeRating(tx *gorm.DB, productID uint) error {
	var agg struct {
		Avg   float64
		Count int64
	}
	err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("product_id = ?", productID).
		Scan(&agg).Error
	if err != nil {
		return err
	}
	rounded := math.Round(agg.Avg*10) / 10
	return tx.Model(&models.Product{}).Where("id = ?", productID).Updates(map[string]interface{}{
		"ratings":     rounded,
		"num_reviews": agg.Count,
	}).Error
}
