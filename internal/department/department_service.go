package department

import (
	"context"
	"database/sql"
	"errors"

	departmenterrors "go-hrms/internal/department/errors"
	"go-hrms/internal/employee"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=department_service.go -destination=mock/department_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID string, req CreateDepartmentRequest) (DepartmentResponse, error)
	GetAll(ctx context.Context, companyID string) ([]DepartmentResponse, error)
	GetTree(ctx context.Context, companyID string) ([]*TreeNode, error)
	GetByID(ctx context.Context, companyID, id string) (DepartmentResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateDepartmentRequest) (DepartmentResponse, error)
	CheckDeletion(ctx context.Context, companyID, id string) (DeletionCheckResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	userRepo     user.Repository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	userRepo user.Repository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("department.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("department.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		logger:       l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID string,
	req CreateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create department requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("name", req.Name),
	)

	company, err := uuid.Parse(companyID)
	if err != nil {
		s.logger.Warn("create department rejected, malformed company id", zap.String("company_id", companyID))
		return DepartmentResponse{}, departmenterrors.ErrInvalidCompanyID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	parentID, err := s.resolveParent(ctx, qtx, companyID, req.ParentID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	managerID, err := s.resolveManager(ctx, qtx, companyID, req.ManagerID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept := &Department{
		ID:          uuid.New(),
		CompanyID:   company,
		Name:        req.Name,
		Description: req.Description,
		ParentID:    parentID,
		ManagerID:   managerID,
	}

	if err := qtx.Create(ctx, dept); err != nil {
		s.logger.Error("create department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("create department success",
		zap.String("request_id", rid),
		zap.String("department_id", dept.ID.String()),
	)

	return mapToResponse(*dept), nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]DepartmentResponse, error) {
	depts, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all departments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(depts), nil
}

// GetTree rebuilds the forest from current store state on every call.
// Nothing derived is cached, so counts can never drift from the employee
// table.
func (s *service) GetTree(ctx context.Context, companyID string) ([]*TreeNode, error) {
	s.logger.Debug("get department tree requested", zap.String("company_id", companyID))

	depts, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get tree load departments failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	empls, err := s.employeeRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get tree load employees failed", zap.Error(err))
		return nil, err
	}

	managers, err := s.userRepo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get tree load managers failed", zap.Error(err))
		return nil, err
	}

	return BuildForest(depts, empls, managers), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (DepartmentResponse, error) {
	dept, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get department by id failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*dept), nil
}

func (s *service) Update(
	ctx context.Context,
	companyID, id string,
	req UpdateDepartmentRequest,
) (DepartmentResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("update department requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("department_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update department begin tx failed", zap.Error(err))
		return DepartmentResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	dept, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("update department fetch existing failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	parentID, err := s.resolveParent(ctx, qtx, companyID, req.ParentID)
	if err != nil {
		return DepartmentResponse{}, err
	}
	if parentID != nil {
		if *parentID == dept.ID {
			return DepartmentResponse{}, departmenterrors.ErrSelfParent
		}
		cycle, err := s.wouldCreateCycle(ctx, qtx, companyID, dept.ID, *parentID)
		if err != nil {
			return DepartmentResponse{}, err
		}
		if cycle {
			s.logger.Warn("update department rejected, parent change closes a cycle",
				zap.String("department_id", id),
				zap.String("parent_id", parentID.String()),
			)
			return DepartmentResponse{}, departmenterrors.ErrCycleDetected
		}
	}

	managerID, err := s.resolveManager(ctx, qtx, companyID, req.ManagerID)
	if err != nil {
		return DepartmentResponse{}, err
	}

	dept.Name = req.Name
	dept.Description = req.Description
	dept.ParentID = parentID
	dept.ManagerID = managerID

	if err := qtx.Update(ctx, dept); err != nil {
		s.logger.Error("update department persist failed", zap.Error(err))
		return DepartmentResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update department commit failed", zap.Error(err))
		return DepartmentResponse{}, err
	}

	s.logger.Info("update department success",
		zap.String("request_id", rid),
		zap.String("department_id", id),
	)

	return mapToResponse(*dept), nil
}

// CheckDeletion reports what still blocks a delete without mutating anything.
func (s *service) CheckDeletion(
	ctx context.Context,
	companyID, id string,
) (DeletionCheckResponse, error) {
	if _, err := s.repo.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return DeletionCheckResponse{}, mapRepositoryError(err)
	}

	employeeCount, err := s.repo.CountEmployees(ctx, companyID, id)
	if err != nil {
		s.logger.Error("deletion check count employees failed", zap.Error(err))
		return DeletionCheckResponse{}, err
	}

	childCount, err := s.repo.CountChildren(ctx, companyID, id)
	if err != nil {
		s.logger.Error("deletion check count children failed", zap.Error(err))
		return DeletionCheckResponse{}, err
	}

	return DeletionCheckResponse{
		Allowed:               employeeCount == 0 && childCount == 0,
		BlockingEmployeeCount: employeeCount,
		BlockingChildCount:    childCount,
	}, nil
}

// Delete re-runs the dependency check inside the transaction, so a transfer
// or re-parent racing with the delete cannot leave dangling references.
// Blocked deletes are denied outright; there is no force or cascade path.
func (s *service) Delete(
	ctx context.Context,
	companyID, id string,
) error {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("delete department requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("department_id", id),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete department begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByIDAndCompany(ctx, companyID, id); err != nil {
		return mapRepositoryError(err)
	}

	employeeCount, err := qtx.CountEmployees(ctx, companyID, id)
	if err != nil {
		s.logger.Error("delete department count employees failed", zap.Error(err))
		return err
	}

	childCount, err := qtx.CountChildren(ctx, companyID, id)
	if err != nil {
		s.logger.Error("delete department count children failed", zap.Error(err))
		return err
	}

	if employeeCount > 0 || childCount > 0 {
		s.logger.Warn("delete department blocked by dependents",
			zap.String("department_id", id),
			zap.Int64("blocking_employee_count", employeeCount),
			zap.Int64("blocking_child_count", childCount),
		)
		return departmenterrors.ErrDepartmentHasDependents.WithDetails(map[string]any{
			"blocking_employee_count": employeeCount,
			"blocking_child_count":    childCount,
		})
	}

	if err := qtx.Delete(ctx, companyID, id); err != nil {
		s.logger.Error("delete department failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete department commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete department success",
		zap.String("request_id", rid),
		zap.String("department_id", id),
	)
	return nil
}

func (s *service) resolveParent(
	ctx context.Context,
	repo Repository,
	companyID, parentID string,
) (*uuid.UUID, error) {
	if parentID == "" {
		return nil, nil
	}

	parent, err := repo.FindByIDAndCompany(ctx, companyID, parentID)
	if err != nil {
		if errors.Is(mapRepositoryError(err), departmenterrors.ErrDepartmentNotFound) {
			return nil, departmenterrors.ErrParentDepartmentNotFound
		}
		return nil, err
	}
	return &parent.ID, nil
}

func (s *service) resolveManager(
	ctx context.Context,
	repo Repository,
	companyID, managerID string,
) (*uuid.UUID, error) {
	if managerID == "" {
		return nil, nil
	}

	exists, err := repo.ManagerExists(ctx, companyID, managerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, departmenterrors.ErrManagerNotFound
	}
	id := uuid.MustParse(managerID)
	return &id, nil
}

// wouldCreateCycle walks the proposed parent's ancestor chain; reaching the
// department being edited means the new edge would close a loop. A visited
// set bounds the walk even if the stored chain already contains a cycle.
func (s *service) wouldCreateCycle(
	ctx context.Context,
	repo Repository,
	companyID string,
	deptID, newParentID uuid.UUID,
) (bool, error) {
	depts, err := repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return false, err
	}

	index := make(map[uuid.UUID]*Department, len(depts))
	for i := range depts {
		index[depts[i].ID] = &depts[i]
	}

	visited := make(map[uuid.UUID]bool, len(depts))
	current := newParentID
	for {
		if current == deptID {
			return true, nil
		}
		if visited[current] {
			return false, nil
		}
		visited[current] = true

		node, ok := index[current]
		if !ok || node.ParentID == nil {
			return false, nil
		}
		current = *node.ParentID
	}
}

func mapToResponse(dept Department) DepartmentResponse {
	resp := DepartmentResponse{
		ID:          dept.ID.String(),
		CompanyID:   dept.CompanyID.String(),
		Name:        dept.Name,
		Description: dept.Description,
	}
	if dept.ParentID != nil {
		resp.ParentID = dept.ParentID.String()
	}
	if dept.ManagerID != nil {
		resp.ManagerID = dept.ManagerID.String()
	}
	return resp
}

func mapToListResponse(depts []Department) []DepartmentResponse {
	res := make([]DepartmentResponse, len(depts))
	for i, d := range depts {
		res[i] = mapToResponse(d)
	}
	return res
}
