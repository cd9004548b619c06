// Package workflow holds the pure decision rules of the leave approval
// chain: who may act, what a decision does to the chain, and the
// eligibility and reconciliation gates an approval must pass. Nothing in
// this package touches storage or blocks; the leaverequest service owns
// transactions and persistence around it.
package workflow

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"go-leaveflow/internal/domain"
)

// ErrNotActionable is returned when a role attempts a decision on a step
// that is no longer (or not yet) its turn. Repeat decisions on an acted
// step must fail with this, never silently overwrite.
var ErrNotActionable = errors.New("approval step is not actionable for this role")

// DecisionMeta carries the actor details stamped onto the acting step.
type DecisionMeta struct {
	ActorID   uuid.UUID
	Comment   string
	DecidedAt time.Time
}

// CanAct reports whether role owns the pending step at the chain cursor
// of a non-terminal request. Strict left-to-right precedence: every step
// before the cursor must already be approved.
func CanAct(req *domain.LeaveRequest, role domain.Role) bool {
	if req.Status != domain.StatusPending && req.Status != domain.StatusForwarded {
		return false
	}
	if req.CurrentStep < 0 || req.CurrentStep >= len(req.Steps) {
		return false
	}
	step := &req.Steps[req.CurrentStep]
	if step.Role != role || step.Status != domain.StepPending {
		return false
	}
	for i := 0; i < req.CurrentStep; i++ {
		if req.Steps[i].Status != domain.StepApproved {
			return false
		}
	}
	return true
}

// ApplyDecision mutates the request in place for one decision by role.
//
// Reject marks the acting step rejected and short-circuits the request to
// REJECTED; later steps are never visited, the terminal status alone is
// authoritative. Approve marks the step approved and either forwards the
// cursor to the next step or, on the last step, finalizes to APPROVED.
func ApplyDecision(req *domain.LeaveRequest, role domain.Role, decision domain.Decision, meta DecisionMeta) error {
	if !decision.IsValid() {
		return errors.New("unknown decision")
	}
	if !CanAct(req, role) {
		return ErrNotActionable
	}

	actedAt := meta.DecidedAt
	if actedAt.IsZero() {
		actedAt = time.Now().UTC()
	}
	actor := meta.ActorID

	step := &req.Steps[req.CurrentStep]
	step.ActedBy = &actor
	step.ActedAt = &actedAt
	step.Comment = meta.Comment

	switch decision {
	case domain.DecisionReject:
		step.Status = domain.StepRejected
		req.Status = domain.StatusRejected
	case domain.DecisionApprove:
		step.Status = domain.StepApproved
		if req.CurrentStep == len(req.Steps)-1 {
			req.Status = domain.StatusApproved
		} else {
			req.CurrentStep++
			req.Status = domain.StatusForwarded
		}
	}

	return nil
}
