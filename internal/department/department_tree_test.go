package department_test

import (
	"testing"

	"go-hrms/internal/department"
	"go-hrms/internal/employee"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func dept(companyID uuid.UUID, name string, parentID, managerID *uuid.UUID) department.Department {
	return department.Department{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      name,
		ParentID:  parentID,
		ManagerID: managerID,
	}
}

func empl(companyID uuid.UUID, departmentID *uuid.UUID) employee.Employee {
	return employee.Employee{
		ID:           uuid.New(),
		CompanyID:    companyID,
		DepartmentID: departmentID,
	}
}

// collectIDs flattens the forest depth first, counting each appearance.
func collectIDs(forest []*department.TreeNode, seen map[string]int) {
	for _, node := range forest {
		seen[node.Department.ID]++
		collectIDs(node.Children, seen)
	}
}

func TestBuildForest_EmptyInput(t *testing.T) {
	forest := department.BuildForest(nil, nil, nil)
	assert.Empty(t, forest)
}

func TestBuildForest_ExampleScenario(t *testing.T) {
	companyID := uuid.New()

	eng := dept(companyID, "Eng", nil, nil)
	backend := dept(companyID, "Backend", &eng.ID, nil)
	missing := uuid.New()
	ghost := dept(companyID, "Ghost", &missing, nil)

	employees := []employee.Employee{
		empl(companyID, &backend.ID),
	}

	forest := department.BuildForest(
		[]department.Department{eng, backend, ghost},
		employees,
		nil,
	)

	assert.Len(t, forest, 2)

	assert.Equal(t, "Eng", forest[0].Department.Name)
	assert.Equal(t, 0, forest[0].Level)
	assert.Equal(t, 0, forest[0].EmployeeCount)
	assert.False(t, forest[0].Orphaned)
	assert.Len(t, forest[0].Children, 1)

	be := forest[0].Children[0]
	assert.Equal(t, "Backend", be.Department.Name)
	assert.Equal(t, 1, be.Level)
	assert.Equal(t, 1, be.EmployeeCount)

	assert.Equal(t, "Ghost", forest[1].Department.Name)
	assert.Equal(t, 0, forest[1].Level)
	assert.Equal(t, 0, forest[1].EmployeeCount)
	assert.True(t, forest[1].Orphaned)
}

func TestBuildForest_EveryDepartmentAppearsExactlyOnce(t *testing.T) {
	companyID := uuid.New()

	root := dept(companyID, "Root", nil, nil)
	childA := dept(companyID, "A", &root.ID, nil)
	childB := dept(companyID, "B", &root.ID, nil)
	grandchild := dept(companyID, "AA", &childA.ID, nil)
	missing := uuid.New()
	orphan := dept(companyID, "Lost", &missing, nil)

	// Two departments pointing at each other.
	cycleA := dept(companyID, "CycleA", nil, nil)
	cycleB := dept(companyID, "CycleB", &cycleA.ID, nil)
	cycleA.ParentID = &cycleB.ID

	depts := []department.Department{root, childA, childB, grandchild, orphan, cycleA, cycleB}

	forest := department.BuildForest(depts, nil, nil)

	seen := map[string]int{}
	collectIDs(forest, seen)

	assert.Len(t, seen, len(depts))
	for _, d := range depts {
		assert.Equal(t, 1, seen[d.ID.String()], "department %s should appear exactly once", d.Name)
	}
}

func TestBuildForest_CycleMembersBecomeOrphans(t *testing.T) {
	companyID := uuid.New()

	a := dept(companyID, "A", nil, nil)
	b := dept(companyID, "B", &a.ID, nil)
	a.ParentID = &b.ID

	forest := department.BuildForest([]department.Department{a, b}, nil, nil)

	assert.Len(t, forest, 2)
	for _, node := range forest {
		assert.True(t, node.Orphaned)
		assert.Equal(t, 0, node.Level)
		assert.Empty(t, node.Children)
	}
}

func TestBuildForest_ThreeMemberCycleTerminates(t *testing.T) {
	companyID := uuid.New()

	a := dept(companyID, "A", nil, nil)
	b := dept(companyID, "B", &a.ID, nil)
	c := dept(companyID, "C", &b.ID, nil)
	a.ParentID = &c.ID

	// A clean chain hanging off the cycle stays attached to its parent.
	leaf := dept(companyID, "Leaf", &c.ID, nil)

	forest := department.BuildForest([]department.Department{a, b, c, leaf}, nil, nil)

	assert.Len(t, forest, 3)

	var cNode *department.TreeNode
	for _, node := range forest {
		assert.True(t, node.Orphaned)
		if node.Department.Name == "C" {
			cNode = node
		}
	}

	assert.NotNil(t, cNode)
	assert.Len(t, cNode.Children, 1)
	assert.Equal(t, "Leaf", cNode.Children[0].Department.Name)
	assert.Equal(t, 1, cNode.Children[0].Level)
	assert.False(t, cNode.Children[0].Orphaned)
}

func TestBuildForest_CountsAreDirectMembershipOnly(t *testing.T) {
	companyID := uuid.New()

	parent := dept(companyID, "Parent", nil, nil)
	child := dept(companyID, "Child", &parent.ID, nil)

	employees := []employee.Employee{
		empl(companyID, &parent.ID),
		empl(companyID, &child.ID),
		empl(companyID, &child.ID),
		empl(companyID, nil), // unassigned, counts nowhere
	}

	forest := department.BuildForest([]department.Department{parent, child}, employees, nil)

	assert.Len(t, forest, 1)
	assert.Equal(t, 1, forest[0].EmployeeCount, "parent count must not roll up descendants")
	assert.Equal(t, 2, forest[0].Children[0].EmployeeCount)
}

func TestBuildForest_SiblingsSortedByNameThenID(t *testing.T) {
	companyID := uuid.New()

	root := dept(companyID, "Root", nil, nil)
	z := dept(companyID, "Zeta", &root.ID, nil)
	a := dept(companyID, "Alpha", &root.ID, nil)
	m1 := dept(companyID, "Mid", &root.ID, nil)
	m2 := dept(companyID, "Mid", &root.ID, nil)

	forest := department.BuildForest([]department.Department{root, z, a, m1, m2}, nil, nil)

	children := forest[0].Children
	assert.Len(t, children, 4)
	assert.Equal(t, "Alpha", children[0].Department.Name)
	assert.Equal(t, "Mid", children[1].Department.Name)
	assert.Equal(t, "Mid", children[2].Department.Name)
	assert.Equal(t, "Zeta", children[3].Department.Name)
	assert.Less(t, children[1].Department.ID, children[2].Department.ID)
}

func TestBuildForest_ManagerBinding(t *testing.T) {
	companyID := uuid.New()

	manager := user.User{
		ID:        uuid.New(),
		CompanyID: companyID,
		Name:      "Jane Manager",
		Email:     "jane@corp.test",
		IsActive:  true,
	}
	unknownManager := uuid.New()

	managed := dept(companyID, "Managed", nil, &manager.ID)
	dangling := dept(companyID, "Dangling", nil, &unknownManager)
	unmanaged := dept(companyID, "Unmanaged", nil, nil)

	forest := department.BuildForest(
		[]department.Department{managed, dangling, unmanaged},
		nil,
		[]user.User{manager},
	)

	byName := map[string]*department.TreeNode{}
	for _, node := range forest {
		byName[node.Department.Name] = node
	}

	assert.NotNil(t, byName["Managed"].Manager)
	assert.Equal(t, "Jane Manager", byName["Managed"].Manager.Name)

	// An unresolved manager id is not an error, the binding is just absent.
	assert.Nil(t, byName["Dangling"].Manager)
	assert.Nil(t, byName["Unmanaged"].Manager)
}

func TestBuildForest_RootsPrecedeOrphans(t *testing.T) {
	companyID := uuid.New()

	missing := uuid.New()
	orphan := dept(companyID, "AAA Orphan", &missing, nil)
	root := dept(companyID, "ZZZ Root", nil, nil)

	forest := department.BuildForest([]department.Department{orphan, root}, nil, nil)

	// Proper roots come first even when an orphan sorts earlier by name.
	assert.Len(t, forest, 2)
	assert.Equal(t, "ZZZ Root", forest[0].Department.Name)
	assert.False(t, forest[0].Orphaned)
	assert.Equal(t, "AAA Orphan", forest[1].Department.Name)
	assert.True(t, forest[1].Orphaned)
}

func TestBuildForest_DeepChainLevels(t *testing.T) {
	companyID := uuid.New()

	l0 := dept(companyID, "L0", nil, nil)
	l1 := dept(companyID, "L1", &l0.ID, nil)
	l2 := dept(companyID, "L2", &l1.ID, nil)
	l3 := dept(companyID, "L3", &l2.ID, nil)

	forest := department.BuildForest([]department.Department{l3, l1, l0, l2}, nil, nil)

	assert.Len(t, forest, 1)
	node := forest[0]
	for want := 0; want <= 3; want++ {
		assert.Equal(t, want, node.Level)
		if want < 3 {
			assert.Len(t, node.Children, 1)
			node = node.Children[0]
		}
	}
}
