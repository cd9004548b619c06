package infra

import "github.com/casbin/casbin/v2"

// NewEnforcer builds a policy-less enforcer from the RBAC-with-domains
// model file; policy rows are loaded per company at enforce time.
func NewEnforcer(modelPath string) (*casbin.Enforcer, error) {
	return casbin.NewEnforcer(modelPath)
}
