package hierarchy

import "context"

type HierarchyService interface {
	ListBranches(ctx context.Context) ([]BranchResponse, error)
	GetBranch(ctx context.Context, id string) (BranchResponse, error)

	// SaveBranch creates or updates a branch; the manager becomes a
	// branch-manager of it
	SaveBranch(ctx context.Context, req SaveBranchRequest) (BranchResponse, error)
	DeleteBranch(ctx context.Context, id string) error

	// SaveDepartment creates or updates a department; the supervisor becomes
	// a dept-supervisor of it
	SaveDepartment(ctx context.Context, req SaveDepartmentRequest) (BranchResponse, error)
	DeleteDepartment(ctx context.Context, branchID, departmentID string) (BranchResponse, error)

	AddPosition(ctx context.Context, req PositionRequest) (BranchResponse, error)
	RemovePosition(ctx context.Context, req PositionRequest) (BranchResponse, error)
}
