package workflow_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"go-leaveflow/internal/domain"
	"go-leaveflow/internal/workflow"
)

func newChainRequest(t *testing.T, leaveType domain.LeaveType, roles ...domain.Role) *domain.LeaveRequest {
	t.Helper()

	id := uuid.New()
	steps := make([]domain.ApprovalStep, len(roles))
	for i, role := range roles {
		steps[i] = domain.ApprovalStep{
			ID:             uuid.New(),
			LeaveRequestID: id,
			StepOrder:      i,
			Role:           role,
			Status:         domain.StepPending,
		}
	}
	return &domain.LeaveRequest{
		ID:         id,
		CompanyID:  uuid.New(),
		EmployeeID: uuid.New(),
		LeaveType:  leaveType,
		StartDate:  time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
		TotalDays:  5,
		Status:     domain.StatusPending,
		Steps:      steps,
		CreatedBy:  uuid.New(),
	}
}

// assertCursorMatchesScan cross-checks the CurrentStep cursor against the
// first-pending scan of the chain.
func assertCursorMatchesScan(t *testing.T, req *domain.LeaveRequest) {
	t.Helper()
	if req.Status.IsTerminal() {
		return
	}
	assert.Equal(t, req.PendingStepIndex(), req.CurrentStep)
}

func TestCanAct(t *testing.T) {
	t.Run("first role on fresh request", func(t *testing.T) {
		req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD, domain.RoleHR)

		assert.True(t, workflow.CanAct(req, domain.RoleHOD))
		assert.False(t, workflow.CanAct(req, domain.RoleHR))
	})

	t.Run("negative role not in chain", func(t *testing.T) {
		req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD, domain.RoleHR)

		assert.False(t, workflow.CanAct(req, domain.RoleDean))
	})

	t.Run("negative terminal request", func(t *testing.T) {
		req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD)
		req.Status = domain.StatusWithdrawn

		assert.False(t, workflow.CanAct(req, domain.RoleHOD))
	})

	t.Run("negative corrupted precedence", func(t *testing.T) {
		// An earlier step that is not approved must block the cursor
		// role even if the cursor itself points at a pending step.
		req := newChainRequest(t, domain.LeaveMedical, domain.RoleHOD, domain.RoleDean, domain.RoleVC)
		req.CurrentStep = 2
		req.Status = domain.StatusForwarded
		req.Steps[0].Status = domain.StepApproved

		assert.False(t, workflow.CanAct(req, domain.RoleVC))
	})

	t.Run("negative empty chain", func(t *testing.T) {
		req := newChainRequest(t, domain.LeaveSick)

		assert.False(t, workflow.CanAct(req, domain.RoleHOD))
	})
}

func TestApplyDecision_ForwardAndFinalize(t *testing.T) {
	actor := uuid.New()
	meta := workflow.DecisionMeta{ActorID: actor, Comment: "ok"}

	req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD, domain.RoleHR)

	err := workflow.ApplyDecision(req, domain.RoleHOD, domain.DecisionApprove, meta)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusForwarded, req.Status)
	assert.Equal(t, domain.StepApproved, req.Steps[0].Status)
	assert.Equal(t, domain.StepPending, req.Steps[1].Status)
	assert.Equal(t, 1, req.CurrentStep)
	assert.NotNil(t, req.Steps[0].ActedBy)
	assert.Equal(t, actor, *req.Steps[0].ActedBy)
	assert.NotNil(t, req.Steps[0].ActedAt)
	assert.Equal(t, "ok", req.Steps[0].Comment)
	assertCursorMatchesScan(t, req)

	err = workflow.ApplyDecision(req, domain.RoleHR, domain.DecisionApprove, meta)
	assert.NoError(t, err)
	assert.Equal(t, domain.StatusApproved, req.Status)
	assert.Equal(t, domain.StepApproved, req.Steps[1].Status)
}

func TestApplyDecision_RejectShortCircuits(t *testing.T) {
	// Scenario: [hod, dean, hr]; hod approves, dean rejects, hr is never
	// reachable again.
	meta := workflow.DecisionMeta{ActorID: uuid.New()}
	req := newChainRequest(t, domain.LeaveAnnual, domain.RoleHOD, domain.RoleDean, domain.RoleHR)

	assert.NoError(t, workflow.ApplyDecision(req, domain.RoleHOD, domain.DecisionApprove, meta))
	assert.Equal(t, domain.StatusForwarded, req.Status)
	assertCursorMatchesScan(t, req)

	assert.NoError(t, workflow.ApplyDecision(req, domain.RoleDean, domain.DecisionReject, workflow.DecisionMeta{
		ActorID: uuid.New(),
		Comment: "insufficient balance",
	}))
	assert.Equal(t, domain.StatusRejected, req.Status)
	assert.Equal(t, domain.StepRejected, req.Steps[1].Status)
	// Later steps are left untouched, the terminal status is authoritative.
	assert.Equal(t, domain.StepPending, req.Steps[2].Status)
	assert.Nil(t, req.Steps[2].ActedBy)

	err := workflow.ApplyDecision(req, domain.RoleHR, domain.DecisionApprove, meta)
	assert.ErrorIs(t, err, workflow.ErrNotActionable)
}

func TestApplyDecision_RejectAnywhereYieldsRejected(t *testing.T) {
	chains := [][]domain.Role{
		{domain.RoleHOD},
		{domain.RoleHOD, domain.RoleDean},
		{domain.RoleHOD, domain.RoleDean, domain.RoleVC, domain.RolePresident},
	}
	meta := workflow.DecisionMeta{ActorID: uuid.New()}

	for _, chain := range chains {
		for rejectAt := range chain {
			req := newChainRequest(t, domain.LeaveMedical, chain...)
			for i := 0; i < rejectAt; i++ {
				assert.NoError(t, workflow.ApplyDecision(req, chain[i], domain.DecisionApprove, meta))
			}
			assert.NoError(t, workflow.ApplyDecision(req, chain[rejectAt], domain.DecisionReject, meta))
			assert.Equal(t, domain.StatusRejected, req.Status,
				"chain len %d reject at %d", len(chain), rejectAt)
		}
	}
}

func TestApplyDecision_StepsAreMonotonic(t *testing.T) {
	t.Run("repeat approve fails", func(t *testing.T) {
		meta := workflow.DecisionMeta{ActorID: uuid.New()}
		req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD, domain.RoleHR)

		assert.NoError(t, workflow.ApplyDecision(req, domain.RoleHOD, domain.DecisionApprove, meta))

		err := workflow.ApplyDecision(req, domain.RoleHOD, domain.DecisionApprove, meta)
		assert.ErrorIs(t, err, workflow.ErrNotActionable)

		err = workflow.ApplyDecision(req, domain.RoleHOD, domain.DecisionReject, meta)
		assert.ErrorIs(t, err, workflow.ErrNotActionable)
		assert.Equal(t, domain.StepApproved, req.Steps[0].Status)
	})

	t.Run("acting out of order fails", func(t *testing.T) {
		req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD, domain.RoleHR)

		err := workflow.ApplyDecision(req, domain.RoleHR, domain.DecisionApprove, workflow.DecisionMeta{ActorID: uuid.New()})
		assert.ErrorIs(t, err, workflow.ErrNotActionable)
		assert.Equal(t, domain.StatusPending, req.Status)
		assert.Equal(t, domain.StepPending, req.Steps[1].Status)
	})

	t.Run("negative unknown decision", func(t *testing.T) {
		req := newChainRequest(t, domain.LeaveSick, domain.RoleHOD)

		err := workflow.ApplyDecision(req, domain.RoleHOD, domain.Decision("MAYBE"), workflow.DecisionMeta{ActorID: uuid.New()})
		assert.Error(t, err)
		assert.Equal(t, domain.StatusPending, req.Status)
	})
}

func TestApplyDecision_FullChainWalk(t *testing.T) {
	// hod -> dean -> vc -> president, all approving; cursor and scan must
	// agree after every hop.
	chain := []domain.Role{domain.RoleHOD, domain.RoleDean, domain.RoleVC, domain.RolePresident}
	req := newChainRequest(t, domain.LeaveMedical, chain...)

	for i, role := range chain {
		assert.True(t, workflow.CanAct(req, role))
		assert.NoError(t, workflow.ApplyDecision(req, role, domain.DecisionApprove, workflow.DecisionMeta{ActorID: uuid.New()}))
		if i < len(chain)-1 {
			assert.Equal(t, domain.StatusForwarded, req.Status)
			assertCursorMatchesScan(t, req)
		}
	}
	assert.Equal(t, domain.StatusApproved, req.Status)
	assert.Equal(t, -1, req.PendingStepIndex())
}
