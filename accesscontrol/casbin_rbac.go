package accesscontrol

import (
	"fmt"

	"github.com/agrichain/agrichain/session"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// each role subject may act on its own dashboard object only
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && (p.act == "*" || r.act == p.act)
`

// Enforcer decides which dashboard actions a role may perform
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

func subject(role session.Role) string {
	return "role::" + string(role)
}

// DashboardObject names the resource behind a role's dashboard
func DashboardObject(role session.Role) string {
	return "dashboard::" + string(role)
}

// NewEnforcer builds the policy for every known role
func NewEnforcer() (*Enforcer, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("loading rbac model: %w", err)
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("creating enforcer: %w", err)
	}

	for _, role := range session.Roles() {
		if _, err := e.AddPolicy(subject(role), DashboardObject(role), "*"); err != nil {
			return nil, fmt.Errorf("adding policy for %s: %w", role, err)
		}
	}

	return &Enforcer{enforcer: e}, nil
}

// GrantRole lets members of role act with the permissions of inherits
func (e *Enforcer) GrantRole(role, inherits session.Role) error {
	_, err := e.enforcer.AddGroupingPolicy(subject(role), subject(inherits))
	return err
}

// CanAct reports whether role may perform action on the dashboard of owner
func (e *Enforcer) CanAct(role, owner session.Role, action string) (bool, error) {
	if !role.Valid() {
		return false, nil
	}
	return e.enforcer.Enforce(subject(role), DashboardObject(owner), action)
}
