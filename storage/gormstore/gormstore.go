// Package gormstore implements storage.Store on a relational database via
// GORM. Stock reservation relies on atomic conditional decrements so that
// concurrent checkouts serialize at the row level.
package gormstore

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fashionexpress/models"
	"fashionexpress/storage"
)

type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

// Open connects to Postgres and returns a Store. The caller runs migrations
// separately (config.Migrate).
func Open(dsn string) (*Store, *gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return nil, nil, err
	}
	return &Store{db: db}, db, nil
}

// gormConfig turns on error translation: without it the postgres driver
// surfaces a unique violation as a raw *pgconn.PgError and translate() can
// never see gorm.ErrDuplicatedKey.
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

// New wraps an existing GORM handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return storage.ErrDuplicate
	}
	return err
}

// Users

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *Store) UpdateUser(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	res := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, storage.ErrNotFound
	}
	return s.GetUser(ctx, id)
}

// Categories

func (s *Store) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var c models.Category
	if err := s.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (s *Store) CreateCategory(ctx context.Context, category *models.Category) error {
	return translate(s.db.WithContext(ctx).Create(category).Error)
}
