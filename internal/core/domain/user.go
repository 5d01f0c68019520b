package domain

import "time"

// Position is a tenant-scoped job grade. Rank drives role classification;
// the capability flags extend it per position.
type Position struct {
	ID              string `json:"id" bson:"_id,omitempty"`
	TenantID        string `json:"tenant_id" bson:"tenant_id"`
	Rank            int    `json:"rank" bson:"rank"`
	Name            string `json:"name" bson:"name"`
	SortOrder       int    `json:"sort_order" bson:"sort_order"`
	CanEvaluate     bool   `json:"can_evaluate" bson:"can_evaluate"`
	CanViewAll      bool   `json:"can_view_all" bson:"can_view_all"`
	CanFinalApprove bool   `json:"can_final_approve" bson:"can_final_approve"`
}

// User models a staff member within one tenant.
type User struct {
	ID           string     `json:"id" bson:"_id,omitempty"`
	TenantID     string     `json:"tenant_id" bson:"tenant_id"`
	DepartmentID string     `json:"department_id,omitempty" bson:"department_id,omitempty"`
	Name         string     `json:"name" bson:"name"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"`
	Position     *Position  `json:"position,omitempty" bson:"position,omitempty"`
	CanEvaluate  bool       `json:"can_evaluate" bson:"can_evaluate"` // per-user override
	IsActive     bool       `json:"is_active" bson:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}

// Role returns the user's classified capability tier.
func (u *User) Role() Role {
	return ClassifyRole(u)
}

func (u *User) IsSystemAdmin() bool {
	return u.Role() == RoleAdmin
}

func (u *User) IsDirector() bool {
	return u.Role() == RoleDirector
}

func (u *User) IsManager() bool {
	return u.Role() == RoleManager
}

// IsSeniorStaff reports whether the user sits at or above the manager tier.
// A senior subject has no peer manager, so the manager-approval stage is
// skipped for their evaluations.
func (u *User) IsSeniorStaff() bool {
	return u.Role().AtLeast(RoleManager)
}

// CanPerformEvaluation reports whether the user may act as an evaluator:
// granted by the position or by the per-user override flag.
func (u *User) CanPerformEvaluation() bool {
	return (u.Position != nil && u.Position.CanEvaluate) || u.CanEvaluate
}
