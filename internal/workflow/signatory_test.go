package workflow

import (
	"testing"

	"github.com/Krestdev/Creapp-sub005/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signatair(bankID, payTypeID, mode string, userIDs ...string) entity.Signatair {
	s := entity.Signatair{BankID: bankID, PayTypeID: payTypeID, Mode: mode}
	for _, id := range userIDs {
		s.Users = append(s.Users, entity.SignatairUser{UserID: id})
	}
	return s
}

func strptr(s string) *string { return &s }

func TestCanSignRosterScenario(t *testing.T) {
	// Signatair {bank 1, method 2, ONE, users 10 and 11}.
	ix := BuildSignerIndex([]entity.Signatair{signatair("1", "2", entity.SignModeOne, "10", "11")})

	assert.True(t, ix.CanSign("10", strptr("1"), strptr("2")))
	assert.True(t, ix.CanSign("11", strptr("1"), strptr("2")))
	assert.False(t, ix.CanSign("12", strptr("1"), strptr("2")))
}

func TestCanSignFailClosed(t *testing.T) {
	ix := BuildSignerIndex([]entity.Signatair{signatair("1", "2", entity.SignModeOne, "10")})

	// Unresolved bank or method never authorizes.
	assert.False(t, ix.CanSign("10", nil, strptr("2")))
	assert.False(t, ix.CanSign("10", strptr("1"), nil))
	assert.False(t, ix.CanSign("10", strptr(""), strptr("2")))

	// bank=7, method=3 has no signatair record: nobody may sign.
	assert.False(t, ix.CanSign("10", strptr("7"), strptr("3")))
	assert.False(t, ix.CanSign("99", strptr("7"), strptr("3")))
}

func TestIsCompleteModeOne(t *testing.T) {
	ix := BuildSignerIndex([]entity.Signatair{signatair("1", "2", entity.SignModeOne, "10", "11")})

	assert.False(t, ix.IsComplete("1", "2", nil))
	assert.True(t, ix.IsComplete("1", "2", []string{"10"}))
	assert.True(t, ix.IsComplete("1", "2", []string{"11"}))
	// A signature from outside the roster counts for nothing.
	assert.False(t, ix.IsComplete("1", "2", []string{"12"}))
}

func TestIsCompleteModeBoth(t *testing.T) {
	ix := BuildSignerIndex([]entity.Signatair{signatair("1", "2", entity.SignModeBoth, "10", "11")})

	assert.False(t, ix.IsComplete("1", "2", []string{"10"}))
	assert.False(t, ix.IsComplete("1", "2", []string{"11"}))
	assert.True(t, ix.IsComplete("1", "2", []string{"10", "11"}))
	assert.True(t, ix.IsComplete("1", "2", []string{"11", "10", "12"}))
	// No roster record: never complete.
	assert.False(t, ix.IsComplete("7", "3", []string{"10", "11"}))
}

func TestBuildSignerIndexFirstRecordWinsPerPair(t *testing.T) {
	ix := BuildSignerIndex([]entity.Signatair{
		signatair("1", "2", entity.SignModeOne, "10"),
		signatair("1", "2", entity.SignModeBoth, "20"), // duplicate pair, ignored
	})

	assert.True(t, ix.CanSign("10", strptr("1"), strptr("2")))
	assert.False(t, ix.CanSign("20", strptr("1"), strptr("2")))
}

func TestFilterActionable(t *testing.T) {
	ix := BuildSignerIndex([]entity.Signatair{
		signatair("1", "2", entity.SignModeBoth, "10", "11"),
	})
	payments := []entity.PaymentRequest{
		{ID: "p1", BankID: strptr("1"), MethodID: strptr("2"), Status: entity.PaymentStatusUnsigned},
		{ID: "p2", BankID: strptr("1"), MethodID: strptr("2"), Status: entity.PaymentStatusSigned},
		{ID: "p3", BankID: strptr("7"), MethodID: strptr("3"), Status: entity.PaymentStatusUnsigned},
		{ID: "p4", BankID: nil, MethodID: strptr("2"), Status: entity.PaymentStatusUnsigned},
		{
			ID: "p5", BankID: strptr("1"), MethodID: strptr("2"),
			Status:     entity.PaymentStatusPartiallySigned,
			Signatures: []entity.PaymentSignature{{UserID: "10"}},
		},
	}

	// User 10 already signed p5; p1 is their only actionable payment.
	actionable := ix.FilterActionable(payments, "10")
	require.Len(t, actionable, 1)
	assert.Equal(t, "p1", actionable[0].ID)

	// User 11 still owes a signature on the partially signed p5.
	actionable = ix.FilterActionable(payments, "11")
	require.Len(t, actionable, 2)
	assert.Equal(t, "p1", actionable[0].ID)
	assert.Equal(t, "p5", actionable[1].ID)

	// Unknown user: fail-closed everywhere.
	assert.Empty(t, ix.FilterActionable(payments, "99"))
}
