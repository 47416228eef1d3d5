package employee_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	TransferFn   func(ctx context.Context, companyID string, req employee.TransferRequest) ([]employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Transfer(ctx context.Context, companyID string, req employee.TransferRequest) ([]employee.EmployeeResponse, error) {
	return f.TransferFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func TestEmployeeHandler_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "John Doe", req.FullName)
				return employee.EmployeeResponse{
					ID:        uuid.New().String(),
					FullName:  req.FullName,
					Email:     req.Email,
					CompanyID: cid,
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"John Doe","email":"john@example.com","employee_number":"EMP-900","phone":"0812","hire_date":"2026-01-01","employment_status":"ACTIVE"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"email":"not-an-email"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_Transfer(t *testing.T) {
	t.Run("success - moves batch to target", func(t *testing.T) {
		companyID := uuid.New().String()
		target := uuid.New().String()
		ids := []string{uuid.New().String(), uuid.New().String()}

		svc := &fakeEmployeeService{
			TransferFn: func(ctx context.Context, cid string, req employee.TransferRequest) ([]employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, ids, req.EmployeeIDs)
				assert.NotNil(t, req.TargetDepartmentID)
				assert.Equal(t, target, *req.TargetDepartmentID)

				resp := make([]employee.EmployeeResponse, len(req.EmployeeIDs))
				for i, id := range req.EmployeeIDs {
					resp[i] = employee.EmployeeResponse{ID: id, DepartmentID: target}
				}
				return resp, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_ids":["` + ids[0] + `","` + ids[1] + `"],"target_department_id":"` + target + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/transfer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Transfer(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), target)
	})

	t.Run("null target means unassign", func(t *testing.T) {
		companyID := uuid.New().String()
		id := uuid.New().String()

		svc := &fakeEmployeeService{
			TransferFn: func(ctx context.Context, cid string, req employee.TransferRequest) ([]employee.EmployeeResponse, error) {
				assert.Nil(t, req.TargetDepartmentID)
				return []employee.EmployeeResponse{{ID: id}}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_ids":["` + id + `"],"target_department_id":null}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/transfer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", companyID)

		h.Transfer(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("empty employee list rejected by binding", func(t *testing.T) {
		svc := &fakeEmployeeService{}
		h := employee.NewHandler(svc)

		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_ids":[]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/transfer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Transfer(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown employee -> 404 from service", func(t *testing.T) {
		svc := &fakeEmployeeService{
			TransferFn: func(ctx context.Context, cid string, req employee.TransferRequest) ([]employee.EmployeeResponse, error) {
				return nil, employeeerrors.ErrEmployeeNotFound.WithDetails(map[string]any{
					"missing_ids": req.EmployeeIDs,
				})
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_ids":["` + uuid.New().String() + `"]}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/transfer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Transfer(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "missing_ids")
	})

	t.Run("target department not found -> 404", func(t *testing.T) {
		svc := &fakeEmployeeService{
			TransferFn: func(ctx context.Context, cid string, req employee.TransferRequest) ([]employee.EmployeeResponse, error) {
				return nil, employeeerrors.ErrDepartmentNotFound
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		body := `{"employee_ids":["` + uuid.New().String() + `"],"target_department_id":"` + uuid.New().String() + `"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/transfer", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		c.Request = req
		c.Set("company_id", uuid.New().String())

		h.Transfer(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()

		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{{ID: uuid.New().String(), FullName: "Andi"}}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees", nil)
		c.Set("company_id", companyID)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Andi")
	})

	t.Run("q filter narrows the list", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetAllFn: func(ctx context.Context, cid string) ([]employee.EmployeeResponse, error) {
				return []employee.EmployeeResponse{
					{ID: uuid.New().String(), FullName: "Andi", Email: "andi@comp.com"},
					{ID: uuid.New().String(), FullName: "Budi", Email: "budi@comp.com"},
				}, nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/employees?q=budi", nil)
		c.Set("company_id", uuid.New().String())

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Budi")
		assert.NotContains(t, w.Body.String(), "Andi")
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()

		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, cid, gotID string) error {
				assert.Equal(t, id, gotID)
				return nil
			},
		}

		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		gin.SetMode(gin.TestMode)
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/employees/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("company_id", uuid.New().String())

		h.Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
