package user

import (
	"context"

	"go-hrms/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, companyID string) ([]UserResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]UserOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]UserResponse, error) {
	users, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]UserResponse, len(users))
	for i, u := range users {
		resp[i] = MapToResponse(u)
	}

	return resp, nil
}

// GetOptions returns active users as manager candidates for department forms.
func (s *service) GetOptions(ctx context.Context, companyID string) ([]UserOptionResponse, error) {
	l := contextutil.GetLogger(ctx, nil)

	users, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		l.Error("get manager options failed", zap.Error(err))
		return nil, err
	}

	resp := make([]UserOptionResponse, 0, len(users))
	for _, u := range users {
		if !u.IsActive {
			continue
		}
		resp = append(resp, UserOptionResponse{
			ID:    u.ID.String(),
			Name:  u.Name,
			Email: u.Email,
		})
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (UserResponse, error) {
	u, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return UserResponse{}, err
	}

	return MapToResponse(*u), nil
}

// MapToResponse is exported because the department tree embeds manager
// details using the same shape.
func MapToResponse(u User) UserResponse {
	return UserResponse{
		ID:         u.ID.String(),
		CompanyID:  u.CompanyID.String(),
		EmployeeID: u.EmployeeID.String(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
