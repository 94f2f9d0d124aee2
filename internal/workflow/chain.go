package workflow

import "github.com/Krestdev/Creapp-sub005/internal/entity"

// Validation chain classification. Pure read-only functions over besoin and
// department snapshots: no mutation, no I/O. A result is only valid for the
// snapshot pair it was computed from — recompute when either input changes.

// IsFinalValidator reports whether any department membership of userID
// carries the final-validator capability. The capability is user-level here:
// holding it in one department changes completion semantics for every besoin
// the user evaluates.
func IsFinalValidator(departments []entity.Department, userID string) bool {
	for _, d := range departments {
		for _, m := range d.Members {
			if m.UserID == userID && m.FinalValidator {
				return true
			}
		}
	}
	return false
}

// ValidatorIDs collects the ids of every validator-capable member across all
// departments, deduplicated, in first-seen order.
func ValidatorIDs(departments []entity.Department) []string {
	seen := make(map[string]struct{})
	var ids []string
	for _, d := range departments {
		for _, m := range d.Members {
			if !m.Validator {
				continue
			}
			if _, ok := seen[m.UserID]; ok {
				continue
			}
			seen[m.UserID] = struct{}{}
			ids = append(ids, m.UserID)
		}
	}
	return ids
}

// HasReviewed reports whether userID already appears in the besoin's review
// list.
func HasReviewed(b entity.Besoin, userID string) bool {
	for _, r := range b.Reviews {
		if r.ValidatorID == userID {
			return true
		}
	}
	return false
}

// AllValidatorsReviewed reports whether every validator-capable member across
// all departments appears in the besoin's review list. Vacuously true when no
// department has a validator-capable member.
func AllValidatorsReviewed(b entity.Besoin, departments []entity.Department) bool {
	for _, id := range ValidatorIDs(departments) {
		if !HasReviewed(b, id) {
			return false
		}
	}
	return true
}

// PendingFor returns the besoins awaiting userID's decision.
//
// A regular validator's queue is "still pending and not yet acted by me". A
// final validator's queue is gated on everyone else: only besoins where every
// validator-capable member has already reviewed reach the final sign-off.
func PendingFor(besoins []entity.Besoin, departments []entity.Department, userID string) []entity.Besoin {
	final := IsFinalValidator(departments, userID)
	var out []entity.Besoin
	for _, b := range besoins {
		if b.State != entity.BesoinStatePending {
			continue
		}
		if final {
			if AllValidatorsReviewed(b, departments) {
				out = append(out, b)
			}
			continue
		}
		if !HasReviewed(b, userID) {
			out = append(out, b)
		}
	}
	return out
}

// ProcessedBy returns the besoins userID (or the chain) has already resolved:
// final validators see every non-pending besoin since they decide completion;
// regular validators see exactly the besoins bearing their own review,
// whatever the final state.
func ProcessedBy(besoins []entity.Besoin, departments []entity.Department, userID string) []entity.Besoin {
	final := IsFinalValidator(departments, userID)
	var out []entity.Besoin
	for _, b := range besoins {
		if final {
			if b.State != entity.BesoinStatePending {
				out = append(out, b)
			}
			continue
		}
		if HasReviewed(b, userID) {
			out = append(out, b)
		}
	}
	return out
}

// CategoryChainApproved reports whether every validator of the category chain
// has an approved review on the besoin. A chain with zero validators never
// completes: the besoin stays pending, which is a data state, not an error.
func CategoryChainApproved(b entity.Besoin, chain []entity.CategoryValidator) bool {
	if len(chain) == 0 {
		return false
	}
	approved := make(map[string]bool, len(b.Reviews))
	for _, r := range b.Reviews {
		if r.Decision == entity.DecisionApproved {
			approved[r.ValidatorID] = true
		}
	}
	for _, v := range chain {
		if !approved[v.UserID] {
			return false
		}
	}
	return true
}

// AnyFinalValidator reports whether any member of any department carries the
// final-validator capability.
func AnyFinalValidator(departments []entity.Department) bool {
	for _, d := range departments {
		for _, m := range d.Members {
			if m.FinalValidator {
				return true
			}
		}
	}
	return false
}
