package workflow

import "github.com/Krestdev/Creapp-sub005/internal/entity"

// Signatory authorization. The index is rebuilt from the full signatair list
// on every roster fetch — rosters are small, no incremental update.

// SignerKey composite roster key: one roster per (bank, pay method) pair.
type SignerKey struct {
	BankID   string
	MethodID string
}

type roster struct {
	mode    string
	userIDs []string
	members map[string]struct{}
}

// SignerIndex resolved signing rosters keyed by bank × pay method.
type SignerIndex struct {
	rosters map[SignerKey]roster
}

// BuildSignerIndex indexes the signatair list. Should two records improbably
// target the same pair, the first wins — the invariant is at most one record
// per pair.
func BuildSignerIndex(signatairs []entity.Signatair) *SignerIndex {
	ix := &SignerIndex{rosters: make(map[SignerKey]roster, len(signatairs))}
	for _, s := range signatairs {
		key := SignerKey{BankID: s.BankID, MethodID: s.PayTypeID}
		if _, ok := ix.rosters[key]; ok {
			continue
		}
		r := roster{mode: s.Mode, members: make(map[string]struct{}, len(s.Users))}
		for _, u := range s.Users {
			if _, ok := r.members[u.UserID]; ok {
				continue
			}
			r.members[u.UserID] = struct{}{}
			r.userIDs = append(r.userIDs, u.UserID)
		}
		ix.rosters[key] = r
	}
	return ix
}

// CanSign reports whether userID may sign a payment on (bankID, methodID).
// Fail-closed: an unresolved bank or method, or a pair with no signatair
// record, authorizes nobody.
func (ix *SignerIndex) CanSign(userID string, bankID, methodID *string) bool {
	if bankID == nil || *bankID == "" || methodID == nil || *methodID == "" {
		return false
	}
	r, ok := ix.rosters[SignerKey{BankID: *bankID, MethodID: *methodID}]
	if !ok {
		return false
	}
	_, ok = r.members[userID]
	return ok
}

// Roster returns the authorized user ids and mode for a pair, with ok=false
// when no record exists.
func (ix *SignerIndex) Roster(bankID, methodID string) (userIDs []string, mode string, ok bool) {
	r, found := ix.rosters[SignerKey{BankID: bankID, MethodID: methodID}]
	if !found {
		return nil, "", false
	}
	return r.userIDs, r.mode, true
}

// IsComplete reports whether the signatures collected so far finalize the
// payment on (bankID, methodID). ONE: a single authorized signature
// suffices. BOTH: every user of the roster must appear in signedBy.
// Signatures from users outside the roster never count.
func (ix *SignerIndex) IsComplete(bankID, methodID string, signedBy []string) bool {
	r, ok := ix.rosters[SignerKey{BankID: bankID, MethodID: methodID}]
	if !ok {
		return false
	}
	signed := make(map[string]struct{}, len(signedBy))
	for _, id := range signedBy {
		if _, member := r.members[id]; member {
			signed[id] = struct{}{}
		}
	}
	if r.mode == entity.SignModeBoth {
		for _, id := range r.userIDs {
			if _, ok := signed[id]; !ok {
				return false
			}
		}
		return len(r.userIDs) > 0
	}
	return len(signed) > 0
}

// FilterActionable returns userID's signing worklist: payments still awaiting
// signature that the user is authorized to sign and has not signed yet.
func (ix *SignerIndex) FilterActionable(payments []entity.PaymentRequest, userID string) []entity.PaymentRequest {
	var out []entity.PaymentRequest
	for _, p := range payments {
		if !p.AwaitsSignature() {
			continue
		}
		if !ix.CanSign(userID, p.BankID, p.MethodID) {
			continue
		}
		alreadySigned := false
		for _, sig := range p.Signatures {
			if sig.UserID == userID {
				alreadySigned = true
				break
			}
		}
		if alreadySigned {
			continue
		}
		out = append(out, p)
	}
	return out
}
