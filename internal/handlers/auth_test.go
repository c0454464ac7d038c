package handlers_test

import (
	"net/http"
	"testing"

	"github.com/taskhive/taskhive/internal/models"
)

func TestSignupIssuesUsableToken(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "001", "")

	rec := ts.do(t, http.MethodGet, "/check_session", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("check_session with fresh token: %d %s", rec.Code, rec.Body.String())
	}

	var session struct {
		ID       uint   `json:"id"`
		Username string `json:"username"`
		Role     string `json:"role"`
	}
	decode(t, rec, &session)

	if session.Username != "user_001" {
		t.Fatalf("wrong username: %q", session.Username)
	}
	if session.Role != models.RoleMember {
		t.Fatalf("signup without role should default to member, got %q", session.Role)
	}
}

func TestSignupDuplicateIDNo(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "001", "")

	dup := signupBody("002", "")
	dup["id_no"] = "ID001"

	rec := ts.do(t, http.MethodPost, "/signup", "", dup)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}
	decode(t, rec, &resp)
	if resp.Error != "ID number already exists. Please use a different one." {
		t.Fatalf("unexpected error message: %q", resp.Error)
	}

	members, _ := ts.store.Members()
	if len(members) != 1 {
		t.Fatalf("rejected signup must not persist a row, have %d", len(members))
	}
}

func TestSignupMissingField(t *testing.T) {
	ts := newTestServer(t)

	body := signupBody("001", "")
	delete(body, "username")

	rec := ts.do(t, http.MethodPost, "/signup", "", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "001", "")

	t.Run("valid credentials", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/login", "", map[string]string{
			"username": "user_001",
			"password": "password123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
		}
		var resp struct {
			Token string `json:"token"`
		}
		decode(t, rec, &resp)
		if resp.Token == "" {
			t.Fatal("login returned an empty token")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/login", "", map[string]string{
			"username": "user_001",
			"password": "wrong-password",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/login", "", map[string]string{
			"username": "ghost",
			"password": "password123",
		})
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestCheckSessionRejectsBadTokens(t *testing.T) {
	ts := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/check_session", "", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/check_session", "not-a-jwt", nil)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestCheckSessionDeletedMember(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "001", "")

	if err := ts.store.DeleteMember(1); err != nil {
		t.Fatalf("delete member: %v", err)
	}

	// Token signature is still valid, but the member row is gone.
	rec := ts.do(t, http.MethodGet, "/check_session", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for deleted member, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "001", "")

	rec := ts.do(t, http.MethodDelete, "/logout", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	// Stateless logout: the token remains usable until it expires.
	rec = ts.do(t, http.MethodGet, "/check_session", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("token should survive logout, got %d", rec.Code)
	}
}

func TestChangePassword(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "001", "")

	t.Run("wrong current password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/change_password", token, map[string]interface{}{
			"user_id":         1,
			"currentPassword": "wrong-password",
			"newPassword":     "brand-new-password",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d %s", rec.Code, rec.Body.String())
		}

		// Old password must still work.
		rec = ts.do(t, http.MethodPost, "/login", "", map[string]string{
			"username": "user_001",
			"password": "password123",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("old password should still log in, got %d", rec.Code)
		}
	})

	t.Run("short new password", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/change_password", token, map[string]interface{}{
			"user_id":         1,
			"currentPassword": "password123",
			"newPassword":     "short",
		})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("success rotates the credential", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/change_password", token, map[string]interface{}{
			"user_id":         1,
			"currentPassword": "password123",
			"newPassword":     "brand-new-password",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
		}

		rec = ts.do(t, http.MethodPost, "/login", "", map[string]string{
			"username": "user_001",
			"password": "brand-new-password",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("new password should log in, got %d", rec.Code)
		}

		rec = ts.do(t, http.MethodPost, "/login", "", map[string]string{
			"username": "user_001",
			"password": "password123",
		})
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("old password should be rejected, got %d", rec.Code)
		}
	})
}
