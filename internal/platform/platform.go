// Package platform declares the capabilities the chat-platform layer must
// provide to the ledger core. The core never sees platform-specific types;
// everything crosses this boundary as plain identifiers and strings.
package platform

import (
	"context"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// Renamer reads and writes a member's visible display label.
type Renamer interface {
	// DisplayName returns the member's current display label.
	DisplayName(ctx context.Context, id domain.MemberID) (string, error)
	// Rename applies a new display label. The platform may refuse
	// (insufficient permission, rate limit); callers treat any failure
	// as non-fatal since the ledger stays authoritative.
	Rename(ctx context.Context, id domain.MemberID, label string) error
}

// Notifier delivers decision requests to humans and returns the opaque
// token later decisions are correlated by (typically a message id).
type Notifier interface {
	SendDecisionRequest(ctx context.Context, recipient domain.MemberID, subject domain.MemberID, reason string) (token string, err error)
	BroadcastDecisionRequest(ctx context.Context, channel string, subject domain.MemberID, reason string) (token string, err error)
}

// RoleResolver answers privilege questions about platform members.
type RoleResolver interface {
	IsPrivileged(ctx context.Context, id domain.MemberID) (bool, error)
	ListPrivileged(ctx context.Context) ([]domain.MemberID, error)
}
