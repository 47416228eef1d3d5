package department_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/department"
	departmenterrors "go-hrms/internal/department/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeDepartmentService struct {
	CreateFn        func(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error)
	GetAllFn        func(ctx context.Context, companyID string) ([]department.DepartmentResponse, error)
	GetTreeFn       func(ctx context.Context, companyID string) ([]*department.TreeNode, error)
	GetByIDFn       func(ctx context.Context, companyID, id string) (department.DepartmentResponse, error)
	UpdateFn        func(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error)
	CheckDeletionFn func(ctx context.Context, companyID, id string) (department.DeletionCheckResponse, error)
	DeleteFn        func(ctx context.Context, companyID, id string) error
}

func (f *fakeDepartmentService) Create(ctx context.Context, companyID string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeDepartmentService) GetAll(ctx context.Context, companyID string) ([]department.DepartmentResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeDepartmentService) GetTree(ctx context.Context, companyID string) ([]*department.TreeNode, error) {
	return f.GetTreeFn(ctx, companyID)
}
func (f *fakeDepartmentService) GetByID(ctx context.Context, companyID, id string) (department.DepartmentResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeDepartmentService) Update(ctx context.Context, companyID, id string, req department.UpdateDepartmentRequest) (department.DepartmentResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeDepartmentService) CheckDeletion(ctx context.Context, companyID, id string) (department.DeletionCheckResponse, error) {
	return f.CheckDeletionFn(ctx, companyID, id)
}
func (f *fakeDepartmentService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func TestDepartmentHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeDepartmentService{
			CreateFn: func(ctx context.Context, cid string, req department.CreateDepartmentRequest) (department.DepartmentResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "Engineering", req.Name)
				return department.DepartmentResponse{
					ID:        uuid.New().String(),
					CompanyID: cid,
					Name:      req.Name,
				}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"name":"Engineering"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/departments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "Engineering")
	})

	t.Run("missing name rejected", func(t *testing.T) {
		svc := &fakeDepartmentService{}
		h := department.NewHandler(svc)

		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"description":"no name"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/departments", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDepartmentHandler_GetTree(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeDepartmentService{
			GetTreeFn: func(ctx context.Context, cid string) ([]*department.TreeNode, error) {
				return []*department.TreeNode{
					{
						Department:    department.DepartmentResponse{ID: uuid.New().String(), Name: "Eng"},
						EmployeeCount: 3,
						Children: []*department.TreeNode{
							{
								Department: department.DepartmentResponse{ID: uuid.New().String(), Name: "Backend"},
								Level:      1,
								Children:   []*department.TreeNode{},
							},
						},
					},
				}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/departments/tree", nil)
		c.Set("company_id", companyID)

		h.GetTree(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Backend")
		assert.Contains(t, w.Body.String(), `"employee_count":3`)
	})
}

func TestDepartmentHandler_CheckDeletion(t *testing.T) {
	t.Run("blocked department reports counts", func(t *testing.T) {
		id := uuid.New().String()

		svc := &fakeDepartmentService{
			CheckDeletionFn: func(ctx context.Context, cid, gotID string) (department.DeletionCheckResponse, error) {
				assert.Equal(t, id, gotID)
				return department.DeletionCheckResponse{
					Allowed:               false,
					BlockingEmployeeCount: 4,
					BlockingChildCount:    1,
				}, nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/departments/"+id+"/deletion-check", nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("company_id", uuid.New().String())

		h.CheckDeletion(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"allowed":false`)
		assert.Contains(t, w.Body.String(), `"blocking_employee_count":4`)
	})
}

func TestDepartmentHandler_Delete(t *testing.T) {
	t.Run("blocked delete -> 409 with details", func(t *testing.T) {
		id := uuid.New().String()

		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, cid, gotID string) error {
				return departmenterrors.ErrDepartmentHasDependents.WithDetails(map[string]any{
					"blocking_employee_count": int64(4),
					"blocking_child_count":    int64(0),
				})
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/departments/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("company_id", uuid.New().String())

		h.Delete(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "blocking_employee_count")
	})

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()

		svc := &fakeDepartmentService{
			DeleteFn: func(ctx context.Context, cid, gotID string) error {
				return nil
			},
		}

		h := department.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/departments/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("company_id", uuid.New().String())

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
