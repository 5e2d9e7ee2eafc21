package ledger

import (
	"context"
	"sync"

	"github.com/heartmarshall/vouchd/internal/domain"
)

var (
	_ accountRepo     = &accountRepoMock{}
	_ attestationRepo = &attestationRepoMock{}
	_ cooldownRepo    = &cooldownRepoMock{}
	_ rateLimiter     = &rateLimiterMock{}
	_ renamer         = &renamerMock{}
	_ txManager       = &txManagerMock{}
)

type accountRepoMock struct {
	GetFunc             func(ctx context.Context, id domain.MemberID) (*domain.Account, error)
	IncrementCountFunc  func(ctx context.Context, id domain.MemberID) (int, error)
	SetCountFunc        func(ctx context.Context, id domain.MemberID, count int) error
	SetTrackingFunc     func(ctx context.Context, id domain.MemberID, on bool) error
	SetTrackingAllFunc  func(ctx context.Context, on bool) ([]domain.MemberID, error)
	SetUnvouchableFunc  func(ctx context.Context, id domain.MemberID, on bool) error
	ResetAllCountsFunc  func(ctx context.Context) (int, error)
	ListTrackedFunc     func(ctx context.Context) ([]domain.MemberID, error)
	ListUnvouchableFunc func(ctx context.Context) ([]domain.MemberID, error)
	CountTrackedFunc    func(ctx context.Context) (int, error)

	mu    sync.Mutex
	calls struct {
		IncrementCount []domain.MemberID
		SetCount       []struct {
			ID    domain.MemberID
			Count int
		}
		ResetAllCounts int
	}
}

func (m *accountRepoMock) Get(ctx context.Context, id domain.MemberID) (*domain.Account, error) {
	if m.GetFunc == nil {
		panic("accountRepoMock.GetFunc: method is nil but Get was just called")
	}
	return m.GetFunc(ctx, id)
}

func (m *accountRepoMock) IncrementCount(ctx context.Context, id domain.MemberID) (int, error) {
	if m.IncrementCountFunc == nil {
		panic("accountRepoMock.IncrementCountFunc: method is nil but IncrementCount was just called")
	}
	m.mu.Lock()
	m.calls.IncrementCount = append(m.calls.IncrementCount, id)
	m.mu.Unlock()
	return m.IncrementCountFunc(ctx, id)
}

func (m *accountRepoMock) IncrementCountCalls() []domain.MemberID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.IncrementCount
}

func (m *accountRepoMock) SetCount(ctx context.Context, id domain.MemberID, count int) error {
	if m.SetCountFunc == nil {
		panic("accountRepoMock.SetCountFunc: method is nil but SetCount was just called")
	}
	m.mu.Lock()
	m.calls.SetCount = append(m.calls.SetCount, struct {
		ID    domain.MemberID
		Count int
	}{id, count})
	m.mu.Unlock()
	return m.SetCountFunc(ctx, id, count)
}

func (m *accountRepoMock) SetCountCalls() []struct {
	ID    domain.MemberID
	Count int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.SetCount
}

func (m *accountRepoMock) SetTracking(ctx context.Context, id domain.MemberID, on bool) error {
	if m.SetTrackingFunc == nil {
		panic("accountRepoMock.SetTrackingFunc: method is nil but SetTracking was just called")
	}
	return m.SetTrackingFunc(ctx, id, on)
}

func (m *accountRepoMock) SetTrackingAll(ctx context.Context, on bool) ([]domain.MemberID, error) {
	if m.SetTrackingAllFunc == nil {
		panic("accountRepoMock.SetTrackingAllFunc: method is nil but SetTrackingAll was just called")
	}
	return m.SetTrackingAllFunc(ctx, on)
}

func (m *accountRepoMock) SetUnvouchable(ctx context.Context, id domain.MemberID, on bool) error {
	if m.SetUnvouchableFunc == nil {
		panic("accountRepoMock.SetUnvouchableFunc: method is nil but SetUnvouchable was just called")
	}
	return m.SetUnvouchableFunc(ctx, id, on)
}

func (m *accountRepoMock) ResetAllCounts(ctx context.Context) (int, error) {
	if m.ResetAllCountsFunc == nil {
		panic("accountRepoMock.ResetAllCountsFunc: method is nil but ResetAllCounts was just called")
	}
	m.mu.Lock()
	m.calls.ResetAllCounts++
	m.mu.Unlock()
	return m.ResetAllCountsFunc(ctx)
}

func (m *accountRepoMock) ResetAllCountsCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.ResetAllCounts
}

func (m *accountRepoMock) ListTracked(ctx context.Context) ([]domain.MemberID, error) {
	if m.ListTrackedFunc == nil {
		panic("accountRepoMock.ListTrackedFunc: method is nil but ListTracked was just called")
	}
	return m.ListTrackedFunc(ctx)
}

func (m *accountRepoMock) ListUnvouchable(ctx context.Context) ([]domain.MemberID, error) {
	if m.ListUnvouchableFunc == nil {
		panic("accountRepoMock.ListUnvouchableFunc: method is nil but ListUnvouchable was just called")
	}
	return m.ListUnvouchableFunc(ctx)
}

func (m *accountRepoMock) CountTracked(ctx context.Context) (int, error) {
	if m.CountTrackedFunc == nil {
		panic("accountRepoMock.CountTrackedFunc: method is nil but CountTracked was just called")
	}
	return m.CountTrackedFunc(ctx)
}

type attestationRepoMock struct {
	InsertFunc          func(ctx context.Context, actor, subject domain.MemberID, reason *string) (*domain.Attestation, error)
	InsertSyntheticFunc func(ctx context.Context, actor, subject domain.MemberID) (bool, error)
	ExistsFunc          func(ctx context.Context, actor, subject domain.MemberID) (bool, error)
	ListBySubjectFunc   func(ctx context.Context, subject domain.MemberID) ([]domain.Attestation, error)
	DeleteOldestFunc    func(ctx context.Context, subject domain.MemberID, n int) (int, error)
	DeleteBySubjectFunc func(ctx context.Context, subject domain.MemberID) (int, error)
	DeleteAllFunc       func(ctx context.Context) error
	UpsertReasonFunc    func(ctx context.Context, actor, subject domain.MemberID, reason string) error

	mu    sync.Mutex
	calls struct {
		Insert []struct {
			Actor, Subject domain.MemberID
		}
		InsertSynthetic []struct {
			Actor, Subject domain.MemberID
		}
		DeleteOldest []struct {
			Subject domain.MemberID
			N       int
		}
		DeleteBySubject []domain.MemberID
		DeleteAll       int
	}
}

func (m *attestationRepoMock) Insert(ctx context.Context, actor, subject domain.MemberID, reason *string) (*domain.Attestation, error) {
	if m.InsertFunc == nil {
		panic("attestationRepoMock.InsertFunc: method is nil but Insert was just called")
	}
	m.mu.Lock()
	m.calls.Insert = append(m.calls.Insert, struct {
		Actor, Subject domain.MemberID
	}{actor, subject})
	m.mu.Unlock()
	return m.InsertFunc(ctx, actor, subject, reason)
}

func (m *attestationRepoMock) InsertCalls() []struct {
	Actor, Subject domain.MemberID
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Insert
}

func (m *attestationRepoMock) InsertSynthetic(ctx context.Context, actor, subject domain.MemberID) (bool, error) {
	if m.InsertSyntheticFunc == nil {
		panic("attestationRepoMock.InsertSyntheticFunc: method is nil but InsertSynthetic was just called")
	}
	m.mu.Lock()
	m.calls.InsertSynthetic = append(m.calls.InsertSynthetic, struct {
		Actor, Subject domain.MemberID
	}{actor, subject})
	m.mu.Unlock()
	return m.InsertSyntheticFunc(ctx, actor, subject)
}

func (m *attestationRepoMock) InsertSyntheticCalls() []struct {
	Actor, Subject domain.MemberID
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.InsertSynthetic
}

func (m *attestationRepoMock) Exists(ctx context.Context, actor, subject domain.MemberID) (bool, error) {
	if m.ExistsFunc == nil {
		panic("attestationRepoMock.ExistsFunc: method is nil but Exists was just called")
	}
	return m.ExistsFunc(ctx, actor, subject)
}

func (m *attestationRepoMock) ListBySubject(ctx context.Context, subject domain.MemberID) ([]domain.Attestation, error) {
	if m.ListBySubjectFunc == nil {
		panic("attestationRepoMock.ListBySubjectFunc: method is nil but ListBySubject was just called")
	}
	return m.ListBySubjectFunc(ctx, subject)
}

func (m *attestationRepoMock) DeleteOldest(ctx context.Context, subject domain.MemberID, n int) (int, error) {
	if m.DeleteOldestFunc == nil {
		panic("attestationRepoMock.DeleteOldestFunc: method is nil but DeleteOldest was just called")
	}
	m.mu.Lock()
	m.calls.DeleteOldest = append(m.calls.DeleteOldest, struct {
		Subject domain.MemberID
		N       int
	}{subject, n})
	m.mu.Unlock()
	return m.DeleteOldestFunc(ctx, subject, n)
}

func (m *attestationRepoMock) DeleteOldestCalls() []struct {
	Subject domain.MemberID
	N       int
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.DeleteOldest
}

func (m *attestationRepoMock) DeleteBySubject(ctx context.Context, subject domain.MemberID) (int, error) {
	if m.DeleteBySubjectFunc == nil {
		panic("attestationRepoMock.DeleteBySubjectFunc: method is nil but DeleteBySubject was just called")
	}
	m.mu.Lock()
	m.calls.DeleteBySubject = append(m.calls.DeleteBySubject, subject)
	m.mu.Unlock()
	return m.DeleteBySubjectFunc(ctx, subject)
}

func (m *attestationRepoMock) DeleteBySubjectCalls() []domain.MemberID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.DeleteBySubject
}

func (m *attestationRepoMock) DeleteAll(ctx context.Context) error {
	if m.DeleteAllFunc == nil {
		panic("attestationRepoMock.DeleteAllFunc: method is nil but DeleteAll was just called")
	}
	m.mu.Lock()
	m.calls.DeleteAll++
	m.mu.Unlock()
	return m.DeleteAllFunc(ctx)
}

func (m *attestationRepoMock) DeleteAllCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.DeleteAll
}

func (m *attestationRepoMock) UpsertReason(ctx context.Context, actor, subject domain.MemberID, reason string) error {
	if m.UpsertReasonFunc == nil {
		panic("attestationRepoMock.UpsertReasonFunc: method is nil but UpsertReason was just called")
	}
	return m.UpsertReasonFunc(ctx, actor, subject, reason)
}

type cooldownRepoMock struct {
	DeleteFunc func(ctx context.Context, actor domain.MemberID) error

	mu    sync.Mutex
	calls struct {
		Delete []domain.MemberID
	}
}

func (m *cooldownRepoMock) Delete(ctx context.Context, actor domain.MemberID) error {
	if m.DeleteFunc == nil {
		panic("cooldownRepoMock.DeleteFunc: method is nil but Delete was just called")
	}
	m.mu.Lock()
	m.calls.Delete = append(m.calls.Delete, actor)
	m.mu.Unlock()
	return m.DeleteFunc(ctx, actor)
}

func (m *cooldownRepoMock) DeleteCalls() []domain.MemberID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Delete
}

type rateLimiterMock struct {
	AcquireFunc func(ctx context.Context, actor domain.MemberID) error
	TouchFunc   func(ctx context.Context, actor domain.MemberID) error

	mu    sync.Mutex
	calls struct {
		Acquire []domain.MemberID
		Touch   []domain.MemberID
	}
}

func (m *rateLimiterMock) Acquire(ctx context.Context, actor domain.MemberID) error {
	if m.AcquireFunc == nil {
		panic("rateLimiterMock.AcquireFunc: method is nil but Acquire was just called")
	}
	m.mu.Lock()
	m.calls.Acquire = append(m.calls.Acquire, actor)
	m.mu.Unlock()
	return m.AcquireFunc(ctx, actor)
}

func (m *rateLimiterMock) AcquireCalls() []domain.MemberID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Acquire
}

func (m *rateLimiterMock) Touch(ctx context.Context, actor domain.MemberID) error {
	if m.TouchFunc == nil {
		panic("rateLimiterMock.TouchFunc: method is nil but Touch was just called")
	}
	m.mu.Lock()
	m.calls.Touch = append(m.calls.Touch, actor)
	m.mu.Unlock()
	return m.TouchFunc(ctx, actor)
}

func (m *rateLimiterMock) TouchCalls() []domain.MemberID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Touch
}

type renamerMock struct {
	DisplayNameFunc func(ctx context.Context, id domain.MemberID) (string, error)
	RenameFunc      func(ctx context.Context, id domain.MemberID, label string) error

	mu    sync.Mutex
	calls struct {
		Rename []struct {
			ID    domain.MemberID
			Label string
		}
	}
}

func (m *renamerMock) DisplayName(ctx context.Context, id domain.MemberID) (string, error) {
	if m.DisplayNameFunc == nil {
		panic("renamerMock.DisplayNameFunc: method is nil but DisplayName was just called")
	}
	return m.DisplayNameFunc(ctx, id)
}

func (m *renamerMock) Rename(ctx context.Context, id domain.MemberID, label string) error {
	if m.RenameFunc == nil {
		panic("renamerMock.RenameFunc: method is nil but Rename was just called")
	}
	m.mu.Lock()
	m.calls.Rename = append(m.calls.Rename, struct {
		ID    domain.MemberID
		Label string
	}{id, label})
	m.mu.Unlock()
	return m.RenameFunc(ctx, id, label)
}

func (m *renamerMock) RenameCalls() []struct {
	ID    domain.MemberID
	Label string
} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls.Rename
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTxFunc == nil {
		panic("txManagerMock.RunInTxFunc: method is nil but RunInTx was just called")
	}
	return m.RunInTxFunc(ctx, fn)
}
