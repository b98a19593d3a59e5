// Package access decides which filter controls each dashboard role can see.
// It never changes what the filters do, only whether their controls render.
package access

import (
	"fmt"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
)

const (
	RoleSuperAdmin     = "super_admin"
	RoleAdmin          = "admin"
	RoleClusterManager = "cluster_manager"
	RoleFarmer         = "farmer"

	// Everyone is the policy subject matched by any role, known or not.
	Everyone = "*"

	actionView = "view"
)

const gateModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (p.sub == "*" || g(r.sub, p.sub)) && (p.obj == "*" || r.obj == p.obj) && r.act == p.act
`

type Gate struct {
	enforcer *casbin.Enforcer
}

// NewGate builds an empty gate where super_admin inherits every admin grant.
func NewGate() (*Gate, error) {

	m, err := model.NewModelFromString(gateModel)
	if err != nil {
		return nil, fmt.Errorf("access model: %w", err)
	}

	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("access enforcer: %w", err)
	}

	_, err = e.AddGroupingPolicy(RoleSuperAdmin, RoleAdmin)
	if err != nil {
		return nil, err
	}

	return &Gate{enforcer: e}, nil
}

// Grant lets role see control. Use Everyone as role or control for wildcards.
func (g *Gate) Grant(role, control string) error {
	_, err := g.enforcer.AddPolicy(role, control, actionView)
	return err
}

func (g *Gate) Revoke(role, control string) error {
	_, err := g.enforcer.RemovePolicy(role, control, actionView)
	return err
}

func (g *Gate) Allowed(role, control string) bool {
	ok, err := g.enforcer.Enforce(role, control, actionView)
	if err != nil {
		return false
	}
	return ok
}

// Visible returns the controls role can see, keeping input order.
func (g *Gate) Visible(role string, controls []string) []string {
	result := make([]string, 0, len(controls))
	for _, control := range controls {
		if g.Allowed(role, control) {
			result = append(result, control)
		}
	}
	return result
}
