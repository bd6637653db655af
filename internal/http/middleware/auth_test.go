package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"droptaxi/internal/infra"
)

type stubVerifier struct {
	token *infra.FirebaseToken
	err   error
}

func (v *stubVerifier) VerifyIDToken(_ context.Context, _ string) (*infra.FirebaseToken, error) {
	return v.token, v.err
}

func newAuthRouter(verifier infra.TokenVerifier, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Auth(verifier)}
	if adminOnly {
		handlers = append(handlers, AdminOnly())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": CallerUID(c), "role": CallerRole(c)})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuth(t *testing.T) {
	cases := []struct {
		name       string
		header     string
		verifier   *stubVerifier
		wantStatus int
	}{
		{
			name:       "missing header",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not a bearer token",
			header:     "Basic abc123",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer token",
			header:     "Bearer ",
			verifier:   &stubVerifier{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "verifier rejects token",
			header:     "Bearer bad-token",
			verifier:   &stubVerifier{err: errors.New("expired")},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:   "valid token",
			header: "Bearer good-token",
			verifier: &stubVerifier{
				token: &infra.FirebaseToken{UID: "uid-1", Claims: map[string]interface{}{"role": "customer"}},
			},
			wantStatus: http.StatusOK,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAuthRouter(tc.verifier, false)
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tc.wantStatus)
			}
		})
	}
}

func TestAdminOnly(t *testing.T) {
	customer := &stubVerifier{
		token: &infra.FirebaseToken{UID: "uid-1", Claims: map[string]interface{}{"role": "customer"}},
	}
	admin := &stubVerifier{
		token: &infra.FirebaseToken{UID: "uid-2", Claims: map[string]interface{}{"role": "admin"}},
	}

	r := newAuthRouter(customer, true)
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("customer status = %d, want 403", w.Code)
	}

	r = newAuthRouter(admin, true)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin status = %d, want 200", w.Code)
	}
}

func TestCallerUID_Unauthenticated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if uid := CallerUID(c); uid != "" {
		t.Errorf("CallerUID = %q, want empty", uid)
	}
}
