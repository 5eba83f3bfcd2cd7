package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"lead-crm/backend/internal/enquiry/domain"
	"lead-crm/backend/internal/enquiry/service"
	"lead-crm/backend/internal/server/middleware"
)

type fakeEnquiryService struct {
	submitErr error
	listErr   error
	claimErr  error
	unclaimed []*domain.Enquiry
	claimed   []*domain.Enquiry

	gotClaimID    string
	gotClaimEmail string
	gotListEmail  string
}

func (f *fakeEnquiryService) Submit(_ context.Context, name, email, courseInterest string) error {
	return f.submitErr
}

func (f *fakeEnquiryService) ListUnclaimed(_ context.Context) ([]*domain.Enquiry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.unclaimed, nil
}

func (f *fakeEnquiryService) ListClaimedBy(_ context.Context, email string) ([]*domain.Enquiry, error) {
	f.gotListEmail = email
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.claimed, nil
}

func (f *fakeEnquiryService) Claim(_ context.Context, id, callerEmail string) error {
	f.gotClaimID, f.gotClaimEmail = id, callerEmail
	return f.claimErr
}

// identify injects the given email the way the access gate does after
// verifying a token. Empty email installs no identity.
func identify(email string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if email != "" {
			ctx := middleware.WithEmployeeEmail(c.Request.Context(), email)
			c.Request = c.Request.WithContext(ctx)
		}
		c.Next()
	}
}

func newRouter(svc EnquiryService, callerEmail string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, slog.New(slog.DiscardHandler))
	r.POST("/enquiry", h.Submit)
	g := r.Group("/enquiries", identify(callerEmail))
	g.GET("/public", h.ListPublic)
	g.POST("/claim/:id", h.Claim)
	g.GET("/my", h.ListMine)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body.Message
}

func TestSubmit(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		svcErr      error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			body:        `{"name":"Asha","email":"asha@example.com","courseInterest":"Go Backend Bootcamp"}`,
			wantStatus:  http.StatusOK,
			wantMessage: "Enquiry submitted successfully",
		},
		{
			name:        "malformed body",
			body:        `{not json`,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "All fields required",
		},
		{
			name:        "missing fields",
			body:        `{"name":"","email":"","courseInterest":""}`,
			svcErr:      service.ErrMissingFields,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "All fields required",
		},
		{
			name:        "store failure",
			body:        `{"name":"Asha","email":"asha@example.com","courseInterest":"Go"}`,
			svcErr:      errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error submitting enquiry",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&fakeEnquiryService{submitErr: tc.svcErr}, "")
			w := doRequest(t, r, http.MethodPost, "/enquiry", tc.body)
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if got := message(t, w); got != tc.wantMessage {
				t.Fatalf("message = %q, want %q", got, tc.wantMessage)
			}
		})
	}
}

func TestListPublic(t *testing.T) {
	svc := &fakeEnquiryService{
		unclaimed: []*domain.Enquiry{
			{ID: "id-2", Name: "Tom", Email: "tom@example.com", CourseInterest: "Data", CreatedAt: time.Now().UTC()},
			{ID: "id-1", Name: "Asha", Email: "asha@example.com", CourseInterest: "Go", CreatedAt: time.Now().UTC().Add(-time.Hour)},
		},
	}
	r := newRouter(svc, "agent@example.com")

	w := doRequest(t, r, http.MethodGet, "/enquiries/public", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	var body struct {
		Enquiries []struct {
			ID        string  `json:"id"`
			ClaimedBy *string `json:"claimedBy"`
		} `json:"enquiries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Enquiries) != 2 {
		t.Fatalf("got %d enquiries, want 2", len(body.Enquiries))
	}
	if body.Enquiries[0].ID != "id-2" || body.Enquiries[1].ID != "id-1" {
		t.Fatalf("order = [%s %s], want [id-2 id-1]", body.Enquiries[0].ID, body.Enquiries[1].ID)
	}
	if body.Enquiries[0].ClaimedBy != nil {
		t.Fatal("unclaimed enquiry has non-nil claimedBy")
	}
}

func TestListPublic_StoreFailure(t *testing.T) {
	r := newRouter(&fakeEnquiryService{listErr: errors.New("db down")}, "agent@example.com")
	w := doRequest(t, r, http.MethodGet, "/enquiries/public", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}

func TestListMine(t *testing.T) {
	agent := "agent@example.com"
	svc := &fakeEnquiryService{
		claimed: []*domain.Enquiry{
			{ID: "id-1", Name: "Asha", Email: "asha@example.com", CourseInterest: "Go", ClaimedBy: &agent, CreatedAt: time.Now().UTC()},
		},
	}
	r := newRouter(svc, agent)

	w := doRequest(t, r, http.MethodGet, "/enquiries/my", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if svc.gotListEmail != agent {
		t.Fatalf("service got email %q, want %q", svc.gotListEmail, agent)
	}

	var body struct {
		Enquiries []struct {
			ClaimedBy *string `json:"claimedBy"`
		} `json:"enquiries"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(body.Enquiries) != 1 {
		t.Fatalf("got %d enquiries, want 1", len(body.Enquiries))
	}
	if body.Enquiries[0].ClaimedBy == nil || *body.Enquiries[0].ClaimedBy != agent {
		t.Fatalf("claimedBy = %v, want %q", body.Enquiries[0].ClaimedBy, agent)
	}
}

func TestListMine_NoIdentity(t *testing.T) {
	r := newRouter(&fakeEnquiryService{}, "")
	w := doRequest(t, r, http.MethodGet, "/enquiries/my", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestClaim(t *testing.T) {
	cases := []struct {
		name        string
		svcErr      error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "success",
			wantStatus:  http.StatusOK,
			wantMessage: "Enquiry claimed successfully",
		},
		{
			name:        "not found",
			svcErr:      service.ErrNotFound,
			wantStatus:  http.StatusNotFound,
			wantMessage: "Enquiry not found",
		},
		{
			name:        "already claimed",
			svcErr:      service.ErrAlreadyClaimed,
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Enquiry already claimed",
		},
		{
			name:        "store failure",
			svcErr:      errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Error claiming enquiry",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeEnquiryService{claimErr: tc.svcErr}
			r := newRouter(svc, "agent@example.com")
			w := doRequest(t, r, http.MethodPost, "/enquiries/claim/id-1", "")
			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tc.wantStatus)
			}
			if got := message(t, w); got != tc.wantMessage {
				t.Fatalf("message = %q, want %q", got, tc.wantMessage)
			}
			if svc.gotClaimID != "id-1" || svc.gotClaimEmail != "agent@example.com" {
				t.Fatalf("service got (%q, %q)", svc.gotClaimID, svc.gotClaimEmail)
			}
		})
	}
}

func TestClaim_NoIdentity(t *testing.T) {
	r := newRouter(&fakeEnquiryService{}, "")
	w := doRequest(t, r, http.MethodPost, "/enquiries/claim/id-1", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}
