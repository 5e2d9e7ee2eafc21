package platform

import (
	"context"
	"errors"

	"github.com/heartmarshall/vouchd/internal/domain"
)

// ErrUnavailable is returned by the headless capability set for every
// operation that would need a live chat platform.
var ErrUnavailable = errors.New("platform: no chat platform attached")

// Headless implements every capability by failing with ErrUnavailable.
// It lets the maintenance binaries (migrations, sweeps, reconciliation)
// run without a chat frontend: ledger mutations still work because rename
// failures are swallowed, while operations that genuinely need a human in
// the loop fail loudly.
type Headless struct{}

func (Headless) DisplayName(context.Context, domain.MemberID) (string, error) {
	return "", ErrUnavailable
}

func (Headless) Rename(context.Context, domain.MemberID, string) error {
	return ErrUnavailable
}

func (Headless) SendDecisionRequest(context.Context, domain.MemberID, domain.MemberID, string) (string, error) {
	return "", ErrUnavailable
}

func (Headless) BroadcastDecisionRequest(context.Context, string, domain.MemberID, string) (string, error) {
	return "", ErrUnavailable
}

func (Headless) IsPrivileged(context.Context, domain.MemberID) (bool, error) {
	return false, nil
}

func (Headless) ListPrivileged(context.Context) ([]domain.MemberID, error) {
	return nil, nil
}

var (
	_ Renamer      = Headless{}
	_ Notifier     = Headless{}
	_ RoleResolver = Headless{}
)
