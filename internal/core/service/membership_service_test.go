package service

import (
	"context"
	"errors"
	"testing"

	"github.com/thehex/board/internal/core/domain"
	"github.com/thehex/board/internal/core/policy"
	"github.com/thehex/board/internal/core/ports"
)

func newMembershipSvc(repo *stubAccountRepo, rec ports.ActivityRecorder) *MembershipService {
	return NewMembershipService(repo, policy.NewPasscodeGate(policy.DefaultPasscode), rec, discardLogger)
}

func TestMembershipService_Elevate_Success(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(&domain.Account{ID: "alice", FirstName: "Alice"})
	rec := &stubRecorder{}
	svc := newMembershipSvc(repo, rec)

	account, err := svc.Elevate(context.Background(), domain.Viewer{AccountID: "alice"}, "ENTER_THE_HEX")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !account.IsMember {
		t.Error("returned account must be a member")
	}
	if !repo.byID["alice"].IsMember {
		t.Error("stored account must be a member")
	}
	if got := rec.kinds(); len(got) != 1 || got[0] != domain.ActivityMembershipGranted {
		t.Errorf("expected membership_granted activity, got %v", got)
	}
}

func TestMembershipService_Elevate_WrongPasscodeLeavesAccountUnchanged(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(&domain.Account{ID: "bob"})
	rec := &stubRecorder{}
	svc := newMembershipSvc(repo, rec)

	for _, code := range []string{"wrong", "enter_the_hex", "", "ENTER_THE_HEX "} {
		_, err := svc.Elevate(context.Background(), domain.Viewer{AccountID: "bob"}, code)
		if !errors.Is(err, domain.ErrInvalidPasscode) {
			t.Fatalf("passcode %q: expected ErrInvalidPasscode, got %v", code, err)
		}
		if !errors.Is(err, domain.ErrValidation) {
			t.Errorf("passcode %q: expected a validation failure", code)
		}
	}

	if repo.byID["bob"].IsMember {
		t.Error("wrong passcode must not grant membership")
	}
	if repo.updateN != 0 {
		t.Errorf("expected no update calls, got %d", repo.updateN)
	}
	for _, k := range rec.kinds() {
		if k != domain.ActivityPasscodeRejected {
			t.Errorf("unexpected activity %q", k)
		}
	}
}

func TestMembershipService_Elevate_IsIdempotent(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(&domain.Account{ID: "alice"})
	svc := newMembershipSvc(repo, nil)
	viewer := domain.Viewer{AccountID: "alice"}

	if _, err := svc.Elevate(context.Background(), viewer, "ENTER_THE_HEX"); err != nil {
		t.Fatalf("first elevation failed: %v", err)
	}

	_, err := svc.Elevate(context.Background(), viewer, "ENTER_THE_HEX")
	if !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("second elevation: expected ErrAlreadyMember, got %v", err)
	}
	if repo.updateN != 1 {
		t.Errorf("membership must be written once, got %d updates", repo.updateN)
	}
	if !repo.byID["alice"].IsMember {
		t.Error("account must remain a member")
	}
}

func TestMembershipService_Elevate_AlreadyMemberSkipsPasscode(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(&domain.Account{ID: "alice", IsMember: true})
	rec := &stubRecorder{}
	svc := newMembershipSvc(repo, rec)

	_, err := svc.Elevate(context.Background(), domain.Viewer{AccountID: "alice"}, "wrong")
	if !errors.Is(err, domain.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
	if !repo.byID["alice"].IsMember {
		t.Error("member must stay a member")
	}
	if len(rec.kinds()) != 0 {
		t.Errorf("passcode must not be evaluated, got activity %v", rec.kinds())
	}
}

func TestMembershipService_Elevate_Anonymous(t *testing.T) {
	svc := newMembershipSvc(newStubAccountRepo(), nil)

	if _, err := svc.Elevate(context.Background(), domain.Viewer{}, "ENTER_THE_HEX"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestMembershipService_Elevate_UnknownAccount(t *testing.T) {
	svc := newMembershipSvc(newStubAccountRepo(), nil)

	if _, err := svc.Elevate(context.Background(), domain.Viewer{AccountID: "ghost"}, "ENTER_THE_HEX"); !errors.Is(err, domain.ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestMembershipService_Elevate_PersistFailure(t *testing.T) {
	repo := newStubAccountRepo()
	repo.seed(&domain.Account{ID: "alice"})
	repo.updateErr = domain.Collaborator("update account", errors.New("write conflict"))
	svc := newMembershipSvc(repo, nil)

	_, err := svc.Elevate(context.Background(), domain.Viewer{AccountID: "alice"}, "ENTER_THE_HEX")
	if !errors.Is(err, domain.ErrCollaborator) {
		t.Fatalf("expected ErrCollaborator, got %v", err)
	}
	if repo.byID["alice"].IsMember {
		t.Error("failed write must not leave the account elevated")
	}
}
