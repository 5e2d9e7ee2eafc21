package domain

// VerificationStatus classifies an account's current ledger state.
type VerificationStatus string

const (
	// StatusUnvouchable: the subject carries the unvouchable flag.
	StatusUnvouchable VerificationStatus = "UNVOUCHABLE"
	// StatusTrackingOff: the subject never enabled tracking.
	StatusTrackingOff VerificationStatus = "TRACKING_OFF"
	// StatusFakeTags: the rendered label shows more vouches than the
	// ledger backs. Strongest tamper signal.
	StatusFakeTags VerificationStatus = "FAKE_TAGS"
	// StatusTagDiscrepancy: the rendered label lags the ledger.
	StatusTagDiscrepancy VerificationStatus = "TAG_DISCREPANCY"
	// StatusVerified: every counted vouch is backed by a community record.
	StatusVerified VerificationStatus = "VERIFIED"
	// StatusAdminHeavy: part of the counter is admin-set or unaccounted.
	StatusAdminHeavy VerificationStatus = "ADMIN_HEAVY"
)

// VerificationReport is the outcome of classifying a single subject.
type VerificationReport struct {
	SubjectID      MemberID
	DisplayedCount int
	StoredCount    int
	CommunityCount int
	AdminCount     int
	Unaccounted    int
	Status         VerificationStatus
	// Flagged reports whether the status warrants a human decision
	// request (fake tags, tag discrepancy, or an admin share above
	// the configured threshold).
	Flagged bool
}

// AdminShare returns the fraction of the stored count that is not backed
// by community records. Zero when nothing is stored.
func (r VerificationReport) AdminShare() float64 {
	if r.StoredCount == 0 {
		return 0
	}
	return float64(r.AdminCount+r.Unaccounted) / float64(r.StoredCount)
}

// ReconcileReport summarizes one reconciliation pass over a subject.
type ReconcileReport struct {
	SubjectID MemberID
	Count     int
	Records   int
	// Inserted is how many synthetic records this pass added. It can be
	// lower than Count-Records because synthetic records collide with the
	// (actor, subject) uniqueness constraint and are silently skipped.
	Inserted int
}
