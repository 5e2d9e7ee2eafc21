package domain

import "time"

// Attestation is one peer's on-record claim that a subject is reputable.
// The (actor, subject) pair is unique: a community member attests for a
// given subject at most once, ever, until the record is explicitly cleared.
//
// The attestation set is a log of who attested, not the source of truth for
// the counter — administrators move Account.VouchCount without leaving a
// record, which is the root source of drift the reconciliation and
// verification components exist to detect.
type Attestation struct {
	ID        int64     `db:"id"`
	ActorID   MemberID  `db:"actor_id"`
	SubjectID MemberID  `db:"subject_id"`
	Reason    *string   `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
