package domain

import "time"

// MemberID identifies a chat-platform account. The platform hands out
// 64-bit snowflake identifiers; the core never interprets their structure.
type MemberID int64

// Account is the per-member vouch counter with its moderation flags.
// Accounts are created lazily on the first attestation or tracking-enable
// and are never physically deleted, only reset to zero.
type Account struct {
	ID              MemberID  `db:"id"`
	VouchCount      int       `db:"vouch_count"`
	TrackingEnabled bool      `db:"tracking_enabled"`
	Unvouchable     bool      `db:"unvouchable"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Cooldown remembers when an actor last performed a successful
// non-privileged attestation. One row per actor, overwritten each time.
type Cooldown struct {
	ActorID      MemberID  `db:"actor_id"`
	LastActionAt time.Time `db:"last_action_at"`
}
