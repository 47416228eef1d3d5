package user_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-hrms/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeUserService struct {
	GetAllFn     func(ctx context.Context, companyID string) ([]user.UserResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]user.UserOptionResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (user.UserResponse, error)
}

func (f *fakeUserService) GetAll(ctx context.Context, companyID string) ([]user.UserResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeUserService) GetOptions(ctx context.Context, companyID string) ([]user.UserOptionResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeUserService) GetByID(ctx context.Context, companyID, id string) (user.UserResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}

func TestUserHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeUserService{
			GetAllFn: func(ctx context.Context, cid string) ([]user.UserResponse, error) {
				assert.Equal(t, companyID, cid)
				return []user.UserResponse{{ID: uuid.New().String(), Name: "Jane"}}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		c.Set("company_id", companyID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Jane")
	})

	t.Run("service error -> 500", func(t *testing.T) {
		svc := &fakeUserService{
			GetAllFn: func(ctx context.Context, cid string) ([]user.UserResponse, error) {
				return nil, errors.New("db error")
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users", nil)
		c.Set("company_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUserHandler_GetOptions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			GetOptionsFn: func(ctx context.Context, cid string) ([]user.UserOptionResponse, error) {
				return []user.UserOptionResponse{{ID: uuid.New().String(), Name: "Boss"}}, nil
			},
		}

		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/users/options", nil)
		c.Set("company_id", uuid.New().String())

		h.GetOptions(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Boss")
	})
}
