package admin

import (
	"testing"
	"time"
)

func TestEnableAndValidate(t *testing.T) {
	m := NewManager("ForceGranted")

	if _, ok := m.Enable("wrong"); ok {
		t.Error("wrong password must not enable admin mode")
	}

	token, ok := m.Enable("ForceGranted")
	if !ok || token == "" {
		t.Fatal("correct password should yield a token")
	}
	if !m.Valid(token) {
		t.Error("fresh token should be valid")
	}
	if m.Valid("") || m.Valid("made-up") {
		t.Error("unknown tokens must not validate")
	}
}

func TestEmptyPasswordDisablesAdmin(t *testing.T) {
	m := NewManager("")
	if _, ok := m.Enable(""); ok {
		t.Error("empty configured password must disable admin mode entirely")
	}
}

func TestSessionExpiry(t *testing.T) {
	m := NewManager("pw")
	now := time.Now()
	m.now = func() time.Time { return now }

	token, ok := m.Enable("pw")
	if !ok {
		t.Fatal("enable failed")
	}

	now = now.Add(SessionDuration - time.Minute)
	if !m.Valid(token) {
		t.Error("token should still be valid before the 60-minute mark")
	}

	now = now.Add(2 * time.Minute)
	if m.Valid(token) {
		t.Error("token should expire after 60 minutes")
	}
	// Expired tokens are pruned, not resurrected.
	now = now.Add(-10 * time.Minute)
	if m.Valid(token) {
		t.Error("expired token must stay invalid")
	}
}

func TestLogout(t *testing.T) {
	m := NewManager("pw")
	token, _ := m.Enable("pw")
	m.Logout(token)
	if m.Valid(token) {
		t.Error("logout should invalidate the token immediately")
	}
}

func TestSessionsAreIndependent(t *testing.T) {
	m := NewManager("pw")
	a, _ := m.Enable("pw")
	b, _ := m.Enable("pw")
	m.Logout(a)
	if m.Valid(a) {
		t.Error("logged-out session still valid")
	}
	if !m.Valid(b) {
		t.Error("unrelated session was invalidated")
	}
}
