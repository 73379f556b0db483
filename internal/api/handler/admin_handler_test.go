package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/orgsite/cms-backend/internal/core/domain"
	"github.com/orgsite/cms-backend/internal/core/ports"
)

func TestAdminHandler_Add_ReturnsTempPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		addFn: func(ctx context.Context, email string) (*ports.ProvisionedAdmin, error) {
			if email != "new@example.org" {
				t.Fatalf("unexpected email: %s", email)
			}
			return &ports.ProvisionedAdmin{
				Admin:        &domain.Admin{ID: "2", Email: email, Role: domain.RoleAdmin},
				TempPassword: "ne3kX!9z",
			}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := postJSON(e, "/admins", `{"email":"new@example.org"}`)
	if err := handler.Add(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["temp_password"] != "ne3kX!9z" {
		t.Fatalf("expected temp password in response, got %+v", resp)
	}
}

func TestAdminHandler_Add_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		addFn: func(ctx context.Context, email string) (*ports.ProvisionedAdmin, error) {
			return nil, domain.ErrEmailTaken
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := postJSON(e, "/admins", `{"email":"dup@example.org"}`)
	if err := handler.Add(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAdminHandler_List(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		listFn: func(ctx context.Context) ([]*domain.Admin, error) {
			return []*domain.Admin{
				{ID: "1", Email: "root@example.org", Role: domain.RoleSuperadmin},
				{ID: "2", Email: "a@example.org", Role: domain.RoleAdmin},
			}, nil
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/admins", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	admins, ok := resp["admins"].([]any)
	if !ok || len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %+v", resp)
	}
}

func TestAdminHandler_Remove_Superadmin(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		removeFn: func(ctx context.Context, id string) (*domain.Admin, error) {
			return nil, domain.ErrSuperadminDelete
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/admins/1", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Remove(c); !errors.Is(err, domain.ErrSuperadminDelete) {
		t.Fatalf("expected ErrSuperadminDelete, got %v", err)
	}
}

func TestAdminHandler_Remove_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		removeFn: func(ctx context.Context, id string) (*domain.Admin, error) {
			if id != "2" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.Admin{ID: "2", Email: "a@example.org", Role: domain.RoleAdmin}, nil
		},
	}
	handler := NewAdminHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/admins/2", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.Remove(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAdminHandler_Handover_Success(t *testing.T) {
	e := newTestEcho()
	caller := &domain.Admin{ID: "1", Email: "root@example.org", Role: domain.RoleSuperadmin}
	stub := &stubAuthService{
		handoverFn: func(ctx context.Context, got *domain.Admin, targetID string) (*domain.Admin, error) {
			if got.ID != caller.ID || targetID != "2" {
				t.Fatalf("unexpected args: %s %s", got.ID, targetID)
			}
			return &domain.Admin{ID: "2", Email: "a@example.org", Role: domain.RoleSuperadmin}, nil
		},
	}
	handler := NewAdminHandler(stub)

	c, rec := postJSON(e, "/admins/superadmin", `{"new_superadmin_id":"2"}`)
	c.Set("auth_admin", caller)

	if err := handler.Handover(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	promoted, ok := resp["admin"].(map[string]any)
	if !ok || promoted["role"] != "superadmin" || promoted["id"] != "2" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	// the caller's record is gone, so its cookies must be expired too
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge != -1 {
			t.Fatalf("cookie %s not expired after handover: MaxAge=%d", ck.Name, ck.MaxAge)
		}
	}
}

func TestAdminHandler_Handover_SelfTarget(t *testing.T) {
	e := newTestEcho()
	caller := &domain.Admin{ID: "1", Email: "root@example.org", Role: domain.RoleSuperadmin}
	stub := &stubAuthService{
		handoverFn: func(ctx context.Context, got *domain.Admin, targetID string) (*domain.Admin, error) {
			return nil, domain.ErrSelfHandover
		},
	}
	handler := NewAdminHandler(stub)

	c, _ := postJSON(e, "/admins/superadmin", `{"new_superadmin_id":"1"}`)
	c.Set("auth_admin", caller)

	if err := handler.Handover(c); !errors.Is(err, domain.ErrSelfHandover) {
		t.Fatalf("expected ErrSelfHandover, got %v", err)
	}
}

func TestAdminHandler_Handover_MissingTarget(t *testing.T) {
	e := newTestEcho()
	handler := NewAdminHandler(&stubAuthService{})

	c, _ := postJSON(e, "/admins/superadmin", `{}`)
	c.Set("auth_admin", &domain.Admin{ID: "1", Role: domain.RoleSuperadmin})

	err := handler.Handover(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 http error, got %v", err)
	}
}
