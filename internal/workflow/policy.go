package workflow

import (
	"fmt"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// ChainPolicy describes, per leave type, the escalation order a request
// travels and which role owns the paid/unpaid reconciliation. Chain
// composition is org policy consumed at submission time; the engine
// never re-derives it from a live chain.
type ChainPolicy struct {
	Chain                  []domain.Role
	ReconcilesSplit        bool
	FinalFinancialApprover domain.Role
}

var chainPolicies = map[domain.LeaveType]ChainPolicy{
	domain.LeaveAnnual: {
		Chain:                  []domain.Role{domain.RoleHOD, domain.RoleDean},
		ReconcilesSplit:        true,
		FinalFinancialApprover: domain.RoleDean,
	},
	domain.LeaveCasual: {
		Chain: []domain.Role{domain.RoleHOD},
	},
	domain.LeaveSick: {
		Chain: []domain.Role{domain.RoleHOD, domain.RoleHR},
	},
	domain.LeaveMedical: {
		Chain:                  []domain.Role{domain.RoleHOD, domain.RoleDean, domain.RoleVC, domain.RolePresident},
		ReconcilesSplit:        true,
		FinalFinancialApprover: domain.RolePresident,
	},
	domain.LeaveMaternity: {
		Chain:                  []domain.Role{domain.RoleHR, domain.RoleDean},
		ReconcilesSplit:        true,
		FinalFinancialApprover: domain.RoleDean,
	},
}

// PolicyFor returns the chain policy for a leave type.
func PolicyFor(leaveType domain.LeaveType) (ChainPolicy, error) {
	p, ok := chainPolicies[leaveType]
	if !ok {
		return ChainPolicy{}, fmt.Errorf("no chain policy for leave type %s", leaveType)
	}
	return p, nil
}

// IsFinalFinancialApprover reports whether role must reconcile the
// paid/unpaid split (and, for medical leave, the category) when approving
// a request of the given type.
func IsFinalFinancialApprover(leaveType domain.LeaveType, role domain.Role) bool {
	p, ok := chainPolicies[leaveType]
	return ok && p.ReconcilesSplit && p.FinalFinancialApprover == role
}

// BuildChain materializes the policy chain for a new request: all steps
// pending, insertion order = escalation order.
func BuildChain(requestID uuid.UUID, leaveType domain.LeaveType) ([]domain.ApprovalStep, error) {
	p, err := PolicyFor(leaveType)
	if err != nil {
		return nil, err
	}
	steps := make([]domain.ApprovalStep, len(p.Chain))
	for i, role := range p.Chain {
		steps[i] = domain.ApprovalStep{
			ID:             uuid.New(),
			LeaveRequestID: requestID,
			StepOrder:      i,
			Role:           role,
			Status:         domain.StepPending,
		}
	}
	return steps, nil
}
