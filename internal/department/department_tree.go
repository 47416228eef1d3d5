package department

import (
	"sort"

	"go-hrms/internal/employee"
	"go-hrms/internal/user"

	"github.com/google/uuid"
)

// parentState classifies each department's parent chain during forest
// construction. Cycle members are demoted to orphans; departments whose chain
// merely leads into a cycle stay attached to their (demoted) parent.
type parentState uint8

const (
	stateUnknown parentState = iota
	stateInPath
	stateClean
	stateCycle
)

// BuildForest turns one tenant's flat department list into an ordered forest.
// All three inputs must already be filtered to a single company; the builder
// trusts that precondition and does not re-check company ids per record.
//
// The builder is total: a missing parent or a parent cycle demotes the
// affected departments to orphaned roots instead of failing, so it is safe to
// run on every read. Employee counts are direct membership only.
func BuildForest(
	departments []Department,
	employees []employee.Employee,
	managers []user.User,
) []*TreeNode {
	if len(departments) == 0 {
		return []*TreeNode{}
	}

	index := make(map[uuid.UUID]*Department, len(departments))
	for i := range departments {
		index[departments[i].ID] = &departments[i]
	}

	counts := make(map[uuid.UUID]int, len(departments))
	for i := range employees {
		if employees[i].DepartmentID != nil {
			counts[*employees[i].DepartmentID]++
		}
	}

	managerIndex := make(map[uuid.UUID]*user.User, len(managers))
	for i := range managers {
		managerIndex[managers[i].ID] = &managers[i]
	}

	states := classifyParentChains(departments, index)

	nodes := make(map[uuid.UUID]*TreeNode, len(departments))
	for i := range departments {
		d := &departments[i]
		node := &TreeNode{
			Department:    mapToResponse(*d),
			EmployeeCount: counts[d.ID],
			Children:      []*TreeNode{},
		}
		if d.ManagerID != nil {
			if m, ok := managerIndex[*d.ManagerID]; ok {
				resp := user.MapToResponse(*m)
				node.Manager = &resp
			}
		}
		nodes[d.ID] = node
	}

	var roots, orphans []*TreeNode
	for i := range departments {
		d := &departments[i]
		node := nodes[d.ID]

		switch {
		case d.ParentID == nil:
			roots = append(roots, node)
		case states[d.ID] == stateCycle:
			node.Orphaned = true
			orphans = append(orphans, node)
		default:
			parent, ok := index[*d.ParentID]
			if !ok {
				node.Orphaned = true
				orphans = append(orphans, node)
				continue
			}
			nodes[parent.ID].Children = append(nodes[parent.ID].Children, node)
		}
	}

	sortSiblings(roots)
	sortSiblings(orphans)
	for _, n := range nodes {
		sortSiblings(n.Children)
	}

	for _, root := range roots {
		assignLevels(root, 0)
	}
	for _, orphan := range orphans {
		assignLevels(orphan, 0)
	}

	forest := make([]*TreeNode, 0, len(roots)+len(orphans))
	forest = append(forest, roots...)
	forest = append(forest, orphans...)
	return forest
}

// classifyParentChains walks each department's parent chain once, marking
// every member of a detected cycle. Visited departments keep their final
// state, so the whole pass is O(n) over the tenant's departments.
func classifyParentChains(departments []Department, index map[uuid.UUID]*Department) map[uuid.UUID]parentState {
	states := make(map[uuid.UUID]parentState, len(departments))

	for i := range departments {
		if states[departments[i].ID] != stateUnknown {
			continue
		}

		var path []uuid.UUID
		current := &departments[i]
		for {
			states[current.ID] = stateInPath
			path = append(path, current.ID)

			if current.ParentID == nil {
				markPath(states, path, stateClean, uuid.Nil)
				break
			}

			parent, ok := index[*current.ParentID]
			if !ok {
				// Dangling parent: the last department on the path is the
				// orphan, everything above it is a clean chain.
				markPath(states, path, stateClean, uuid.Nil)
				break
			}

			switch states[parent.ID] {
			case stateClean:
				markPath(states, path, stateClean, uuid.Nil)
			case stateCycle:
				// The chain leads into a known cycle but is not part of it.
				markPath(states, path, stateClean, uuid.Nil)
			case stateInPath:
				// Revisited a department on the current walk: everything from
				// that department onward is the cycle, the prefix is clean.
				markPath(states, path, stateCycle, parent.ID)
			case stateUnknown:
				current = parent
				continue
			}
			break
		}
	}

	return states
}

// markPath finalizes a walk. With cycleStart == uuid.Nil the whole path gets
// the given state; otherwise path members from cycleStart onward are marked
// stateCycle and the prefix before it stateClean.
func markPath(states map[uuid.UUID]parentState, path []uuid.UUID, state parentState, cycleStart uuid.UUID) {
	if cycleStart == uuid.Nil {
		for _, id := range path {
			states[id] = state
		}
		return
	}

	inCycle := false
	for _, id := range path {
		if id == cycleStart {
			inCycle = true
		}
		if inCycle {
			states[id] = stateCycle
		} else {
			states[id] = stateClean
		}
	}
}

// sortSiblings orders nodes by name with id as the tiebreaker, so rendering
// is deterministic regardless of store ordering.
func sortSiblings(nodes []*TreeNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Department.Name != nodes[j].Department.Name {
			return nodes[i].Department.Name < nodes[j].Department.Name
		}
		return nodes[i].Department.ID < nodes[j].Department.ID
	})
}

func assignLevels(node *TreeNode, level int) {
	node.Level = level
	for _, child := range node.Children {
		assignLevels(child, level+1)
	}
}
