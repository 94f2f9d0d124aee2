package workflow

import (
	"testing"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(userID string, validator, chief, final bool) entity.DepartmentMember {
	return entity.DepartmentMember{
		UserID:         userID,
		Validator:      validator,
		Chief:          chief,
		FinalValidator: final,
	}
}

func besoin(id, state string, reviewedBy ...string) entity.Besoin {
	b := entity.Besoin{ID: id, Label: "besoin " + id, State: state}
	for _, v := range reviewedBy {
		b.Reviews = append(b.Reviews, entity.BesoinReview{
			BesoinID:    id,
			ValidatorID: v,
			Decision:    entity.DecisionApproved,
		})
	}
	return b
}

func TestIsFinalValidator(t *testing.T) {
	departments := []entity.Department{
		{ID: "d1", Members: []entity.DepartmentMember{
			member("u1", true, false, false),
			member("u2", false, false, true),
		}},
		{ID: "d2", Members: []entity.DepartmentMember{
			member("u1", true, true, false),
		}},
	}

	assert.False(t, IsFinalValidator(departments, "u1"))
	assert.True(t, IsFinalValidator(departments, "u2"))
	assert.False(t, IsFinalValidator(departments, "unknown"))
}

func TestPendingForRegularValidator(t *testing.T) {
	departments := []entity.Department{
		{ID: "d1", Members: []entity.DepartmentMember{
			member("v1", true, false, false),
			member("v2", true, false, false),
		}},
	}
	besoins := []entity.Besoin{
		besoin("b1", entity.BesoinStatePending),
		besoin("b2", entity.BesoinStatePending, "v1"),
		besoin("b3", entity.BesoinStateValidated),
		besoin("b4", entity.BesoinStateRejected, "v1"),
	}

	pending := PendingFor(besoins, departments, "v1")
	require.Len(t, pending, 1)
	assert.Equal(t, "b1", pending[0].ID)

	// A pending besoin without v1's review never shows up as processed.
	processed := ProcessedBy(besoins, departments, "v1")
	require.Len(t, processed, 2)
	assert.Equal(t, "b2", processed[0].ID)
	assert.Equal(t, "b4", processed[1].ID)

	// v2 has acted on nothing: everything pending is in their queue.
	assert.Len(t, PendingFor(besoins, departments, "v2"), 2)
	assert.Empty(t, ProcessedBy(besoins, departments, "v2"))
}

func TestPendingForFinalValidatorGate(t *testing.T) {
	departments := []entity.Department{
		{ID: "d1", Members: []entity.DepartmentMember{
			member("v1", true, false, false),
			member("v2", true, false, false),
			member("chief", false, true, false),
			member("final", false, false, true),
		}},
	}
	besoins := []entity.Besoin{
		besoin("b1", entity.BesoinStatePending, "v1"),       // chain incomplete
		besoin("b2", entity.BesoinStatePending, "v1", "v2"), // chain complete
		besoin("b3", entity.BesoinStateValidated, "v1", "v2"),
	}

	pending := PendingFor(besoins, departments, "final")
	require.Len(t, pending, 1)
	assert.Equal(t, "b2", pending[0].ID)

	// Final validators see every resolved besoin as processed.
	processed := ProcessedBy(besoins, departments, "final")
	require.Len(t, processed, 1)
	assert.Equal(t, "b3", processed[0].ID)
}

func TestPendingForFinalValidatorEmptyRoster(t *testing.T) {
	// No validator-capable member anywhere: the all-reviewed gate is
	// vacuously satisfied and every pending besoin reaches the final queue.
	departments := []entity.Department{
		{ID: "d1", Members: []entity.DepartmentMember{
			member("chief", false, true, false),
			member("final", false, false, true),
		}},
	}
	besoins := []entity.Besoin{
		besoin("b1", entity.BesoinStatePending),
		besoin("b2", entity.BesoinStatePending),
	}

	assert.Len(t, PendingFor(besoins, departments, "final"), 2)
}

func TestPendingAndProcessedAreDisjoint(t *testing.T) {
	departments := []entity.Department{
		{ID: "d1", Members: []entity.DepartmentMember{
			member("v1", true, false, false),
			member("v2", true, false, false),
		}},
	}
	besoins := []entity.Besoin{
		besoin("b1", entity.BesoinStatePending),
		besoin("b2", entity.BesoinStatePending, "v1"),
		besoin("b3", entity.BesoinStateValidated, "v1", "v2"),
		besoin("b4", entity.BesoinStateRejected, "v2"),
	}

	for _, userID := range []string{"v1", "v2"} {
		inPending := make(map[string]bool)
		for _, b := range PendingFor(besoins, departments, userID) {
			inPending[b.ID] = true
		}
		for _, b := range ProcessedBy(besoins, departments, userID) {
			assert.Falsef(t, inPending[b.ID], "besoin %s in both buckets for %s", b.ID, userID)
		}
	}
}

func TestValidatorIDsDedupAcrossDepartments(t *testing.T) {
	departments := []entity.Department{
		{ID: "d1", Members: []entity.DepartmentMember{
			member("v1", true, false, false),
			member("v2", true, false, false),
		}},
		{ID: "d2", Members: []entity.DepartmentMember{
			member("v1", true, false, false), // same user, second department
			member("x1", false, false, false),
		}},
	}

	assert.Equal(t, []string{"v1", "v2"}, ValidatorIDs(departments))
}

func TestCategoryChainApproved(t *testing.T) {
	chain := []entity.CategoryValidator{
		{UserID: "v1", Rank: 1},
		{UserID: "v2", Rank: 2},
	}

	b := besoin("b1", entity.BesoinStatePending, "v1")
	assert.False(t, CategoryChainApproved(b, chain))

	b = besoin("b1", entity.BesoinStatePending, "v1", "v2")
	assert.True(t, CategoryChainApproved(b, chain))

	// A rejection on file is not an approval.
	b.Reviews[1].Decision = entity.DecisionRejected
	assert.False(t, CategoryChainApproved(b, chain))

	// Zero-validator category never completes.
	assert.False(t, CategoryChainApproved(b, nil))
}
