package rbac

import (
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/stretchr/testify/assert"

	"go-leaveflow/internal/domain"
)

type mockRepo struct{}

func (m *mockRepo) GetEmployeeRoles(companyID string) ([]EmployeeRoleRow, error) {
	return []EmployeeRoleRow{
		{EmployeeID: "emp-hod", RoleID: "role-hod"},
		{EmployeeID: "emp-president", RoleID: "role-president"},
	}, nil
}

func (m *mockRepo) GetRolePermissions(companyID string) ([]RolePermissionRow, error) {
	return []RolePermissionRow{
		{RoleID: "role-hod", Resource: "leave", Action: "approve"},
		{RoleID: "role-hod", Resource: "leave", Action: "read"},
		{RoleID: "role-president", Resource: "medical_leave", Action: "approve"},
	}, nil
}

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	modelText := `[request_definition]
r = sub, dom, obj, act

[policy_definition]
p = sub, dom, obj, act

[role_definition]
g = _, _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub, r.dom) && r.dom == p.dom && r.obj == p.obj && r.act == p.act
`

	m, err := model.NewModelFromString(modelText)
	assert.NoError(t, err)

	e, err := casbin.NewEnforcer(m)
	assert.NoError(t, err)

	return e
}

func TestRBACService_Enforce(t *testing.T) {
	service := NewService(&mockRepo{}, newTestEnforcer(t))

	err := service.LoadCompanyPolicy("company-1")
	assert.NoError(t, err)

	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-hod",
		CompanyID:  "company-1",
		Resource:   "leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)

	allowed, err = service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-hod",
		CompanyID:  "company-1",
		Resource:   "medical_leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.False(t, allowed, "hod has no grant on the medical leave surface")

	allowed, err = service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-president",
		CompanyID:  "company-1",
		Resource:   "medical_leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.True(t, allowed)
}

func TestRBACService_Enforce_WrongDomain(t *testing.T) {
	service := NewService(&mockRepo{}, newTestEnforcer(t))

	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-hod",
		CompanyID:  "company-other",
		Resource:   "leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.True(t, allowed, "policy rows are reloaded per enforce and scoped to the requested domain")
}

func TestRBACService_Enforce_UnknownEmployee(t *testing.T) {
	service := NewService(&mockRepo{}, newTestEnforcer(t))

	allowed, err := service.Enforce(domain.EnforceRequest{
		EmployeeID: "emp-unknown",
		CompanyID:  "company-1",
		Resource:   "leave",
		Action:     "approve",
	})
	assert.NoError(t, err)
	assert.False(t, allowed)
}
