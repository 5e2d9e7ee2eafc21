package domain

import (
	"time"

	"github.com/google/uuid"
)

// PendingApproval is one outstanding human decision about whether to reset
// a flagged subject's ledger. It is keyed by the opaque token the
// notification transport returned when the decision request was delivered
// (typically a message identifier).
//
// Lifecycle: created when the verification heuristic flags an account,
// resolved exactly once by the first matching external reaction, or purged
// by the TTL sweep if nobody ever reacts. All three outcomes are terminal.
type PendingApproval struct {
	Token     string    `db:"token"`
	ID        uuid.UUID `db:"id"`
	SubjectID MemberID  `db:"subject_id"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}

// Verdict is the human decision delivered for a pending approval.
type Verdict string

const (
	VerdictApprove Verdict = "approve"
	VerdictReject  Verdict = "reject"
)

// Valid reports whether v is one of the known verdicts.
func (v Verdict) Valid() bool {
	return v == VerdictApprove || v == VerdictReject
}
