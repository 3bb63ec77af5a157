package services

import (
	"testing"

	"github.com/jessicamedeirosp/sistema-turismo-prefeitura-v2-sub000/models"
)

func strPtr(s string) *string { return &s }

func TestCanApprove(t *testing.T) {
	cases := map[string]bool{
		models.StatusPending:  true,
		models.StatusRejected: true,
		models.StatusApproved: false,
		"draft":               false,
		"":                    false,
	}
	for status, want := range cases {
		if got := CanApprove(status); got != want {
			t.Errorf("CanApprove(%q) = %v, want %v", status, got, want)
		}
	}
}

func TestCanReject(t *testing.T) {
	cases := map[string]bool{
		models.StatusPending:  true,
		models.StatusApproved: true,
		models.StatusRejected: false,
		"draft":               false,
		"":                    false,
	}
	for status, want := range cases {
		if got := CanReject(status); got != want {
			t.Errorf("CanReject(%q) = %v, want %v", status, got, want)
		}
	}
}

// A business edit always re-queues, whatever the prior status.
func TestResubmitBusinessAlwaysResets(t *testing.T) {
	for _, prior := range []string{models.StatusPending, models.StatusApproved, models.StatusRejected} {
		business := models.Business{Status: prior, StatusDetails: strPtr("missing license")}
		ResubmitBusiness(&business)
		if business.Status != models.StatusPending {
			t.Errorf("after resubmit from %s: status = %s, want pending", prior, business.Status)
		}
		if business.StatusDetails != nil {
			t.Errorf("after resubmit from %s: statusDetails = %q, want nil", prior, *business.StatusDetails)
		}
	}
}

// An agency edit re-queues only from approved; a rejected agency keeps its
// status and the reviewer's note.
func TestResubmitAgencyOnlyFromApproved(t *testing.T) {
	approved := models.Agency{Status: models.StatusApproved}
	ResubmitAgency(&approved)
	if approved.Status != models.StatusPending || approved.StatusDetails != nil {
		t.Errorf("resubmit from approved: got (%s, %v), want (pending, nil)", approved.Status, approved.StatusDetails)
	}

	rejected := models.Agency{Status: models.StatusRejected, StatusDetails: strPtr("bad address")}
	ResubmitAgency(&rejected)
	if rejected.Status != models.StatusRejected {
		t.Errorf("resubmit from rejected: status = %s, want rejected", rejected.Status)
	}
	if rejected.StatusDetails == nil || *rejected.StatusDetails != "bad address" {
		t.Errorf("resubmit from rejected: statusDetails = %v, want %q preserved", rejected.StatusDetails, "bad address")
	}

	pending := models.Agency{Status: models.StatusPending}
	ResubmitAgency(&pending)
	if pending.Status != models.StatusPending {
		t.Errorf("resubmit from pending: status = %s, want pending", pending.Status)
	}
}

func TestCheckReason(t *testing.T) {
	if _, err := checkReason(""); err == nil {
		t.Error("empty reason accepted")
	}
	if _, err := checkReason("   "); err == nil {
		t.Error("blank reason accepted")
	}
	reason, err := checkReason("  missing license ")
	if err != nil {
		t.Fatalf("valid reason rejected: %v", err)
	}
	if reason != "missing license" {
		t.Errorf("reason = %q, want trimmed %q", reason, "missing license")
	}
}
