package user

import (
	"context"

	"go-hrms/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	FindAllByCompany(ctx context.Context, companyID string) ([]User, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*User, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]User, error) {
	var users []User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&users).Error
	return users, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*User, error) {
	var u User
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}
