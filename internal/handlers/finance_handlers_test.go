package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"dormhub_app_echo/internal/models"
	"dormhub_app_echo/internal/services"
)

type stubFinance struct {
	user    models.User
	profile models.StudentFinanceProfile
	err     error
}

func (s *stubFinance) Resolve(ctx context.Context, studentKey string) (models.User, error) {
	return s.user, s.err
}

func (s *stubFinance) Profile(ctx context.Context, studentKey string) (models.StudentFinanceProfile, error) {
	return s.profile, s.err
}

func (s *stubFinance) ProfileForUser(ctx context.Context, user models.User) (models.StudentFinanceProfile, error) {
	return s.profile, s.err
}

type stubReports struct {
	payload     []byte
	filename    string
	contentType string
	reports     []models.FinanceReport
	err         error
	created     int
}

func (s *stubReports) CreateSnapshot(ctx context.Context, snapshot models.StudentFinanceProfile) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created++
	return fmt.Sprintf("report-%d", s.created), nil
}

func (s *stubReports) CreateDocument(ctx context.Context, userID, tenantCode string, payload []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.created++
	return fmt.Sprintf("report-%d", s.created), nil
}

func (s *stubReports) ForStudent(ctx context.Context, userID string) ([]models.FinanceReport, error) {
	return s.reports, s.err
}

func (s *stubReports) DownloadPayload(ctx context.Context, reportID string) ([]byte, string, string, error) {
	if s.err != nil {
		return nil, "", "", s.err
	}
	return s.payload, s.filename, s.contentType, nil
}

func newTestContext(method, path string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestDownloadReport(t *testing.T) {
	tests := []struct {
		name        string
		reports     *stubReports
		wantCode    int
		wantBody    string
		wantHeaders map[string]string
	}{
		{
			name: "existing report streams the document",
			reports: &stubReports{
				payload:     []byte("%PDF-1.4 fake"),
				filename:    "finance-report-r1.pdf",
				contentType: "application/pdf",
			},
			wantCode: http.StatusOK,
			wantBody: "%PDF-1.4 fake",
			wantHeaders: map[string]string{
				echo.HeaderContentType:        "application/pdf",
				echo.HeaderContentDisposition: `attachment; filename="finance-report-r1.pdf"`,
			},
		},
		{
			name:     "missing report",
			reports:  &stubReports{err: fmt.Errorf("report r1: %w", services.ErrNotFound)},
			wantCode: http.StatusNotFound,
			wantBody: `{"error":"Report not found"}`,
		},
		{
			name:     "store failure",
			reports:  &stubReports{err: fmt.Errorf("get report: %w", services.ErrStoreUnavailable)},
			wantCode: http.StatusInternalServerError,
			wantBody: `{"error":"Failed to download report"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newTestContext(http.MethodGet, "/")
			c.SetPath("/api/finance/reports/:reportId/download")
			c.SetParamNames("reportId")
			c.SetParamValues("r1")

			h := NewFinanceHandler(&stubFinance{}, tt.reports, nil)
			if err := h.DownloadReport(c); err != nil {
				t.Fatalf("DownloadReport() error = %v; want nil", err)
			}

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d; want %d", rec.Code, tt.wantCode)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %q; want %q", got, tt.wantBody)
			}
			for header, want := range tt.wantHeaders {
				if got := rec.Header().Get(header); got != want {
					t.Errorf("header %s = %q; want %q", header, got, want)
				}
			}
		})
	}
}

func TestUserReports(t *testing.T) {
	t.Run("no reports yields an empty list, not an error", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/")
		c.SetPath("/api/finance/user-reports/:userId")
		c.SetParamNames("userId")
		c.SetParamValues("u1")

		h := NewFinanceHandler(&stubFinance{}, &stubReports{reports: []models.FinanceReport{}}, nil)
		if err := h.UserReports(c); err != nil {
			t.Fatalf("UserReports() error = %v; want nil", err)
		}

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d; want 200", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"reports":[]}` {
			t.Errorf("body = %q; want %q", got, `{"reports":[]}`)
		}
	})

	t.Run("store failure", func(t *testing.T) {
		c, rec := newTestContext(http.MethodGet, "/")
		c.SetPath("/api/finance/user-reports/:userId")
		c.SetParamNames("userId")
		c.SetParamValues("u1")

		h := NewFinanceHandler(&stubFinance{}, &stubReports{err: services.ErrStoreUnavailable}, nil)
		if err := h.UserReports(c); err != nil {
			t.Fatalf("UserReports() error = %v; want nil", err)
		}

		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d; want 500", rec.Code)
		}
		if got := strings.TrimSpace(rec.Body.String()); got != `{"error":"Failed to fetch reports"}` {
			t.Errorf("body = %q; want %q", got, `{"error":"Failed to fetch reports"}`)
		}
	})
}

func TestGenerateReport(t *testing.T) {
	t.Run("two generations yield two distinct reports", func(t *testing.T) {
		finance := &stubFinance{user: models.User{ID: "u1", TenantCode: "TC100"}}
		reports := &stubReports{}
		h := NewFinanceHandler(finance, reports, nil)

		ids := map[string]bool{}
		for i := 0; i < 2; i++ {
			c, rec := newTestContext(http.MethodPost, "/")
			c.SetPath("/api/admin/finance/students/:key/reports")
			c.SetParamNames("key")
			c.SetParamValues("TC100")

			if err := h.GenerateReport(c); err != nil {
				t.Fatalf("GenerateReport() error = %v; want nil", err)
			}
			if rec.Code != http.StatusCreated {
				t.Fatalf("status = %d; want 201", rec.Code)
			}
			ids[rec.Body.String()] = true
		}

		if len(ids) != 2 {
			t.Errorf("got %d distinct report ids; want 2", len(ids))
		}
	})

	t.Run("unknown student", func(t *testing.T) {
		finance := &stubFinance{err: fmt.Errorf("tenant code X: %w", services.ErrNotFound)}
		h := NewFinanceHandler(finance, &stubReports{}, nil)

		c, _ := newTestContext(http.MethodPost, "/")
		c.SetPath("/api/admin/finance/students/:key/reports")
		c.SetParamNames("key")
		c.SetParamValues("X")

		err := h.GenerateReport(c)
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusNotFound {
			t.Errorf("GenerateReport() error = %v; want 404 HTTPError", err)
		}
	})
}

func TestMyProfileRequiresIdentity(t *testing.T) {
	h := NewFinanceHandler(&stubFinance{}, &stubReports{}, nil)

	c, _ := newTestContext(http.MethodGet, "/api/finance/me")
	err := h.MyProfile(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Errorf("MyProfile() without identity: error = %v; want 401 HTTPError", err)
	}
}
