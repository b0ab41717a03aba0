package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yigit/librarium/internal/app/models/dto"
	"github.com/yigit/librarium/internal/pkg/apperrors"
	"github.com/yigit/librarium/internal/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
	return resp
}

func TestHandleAPIError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantField string
	}{
		{"field validation", fmt.Errorf("creating member: %w", apperrors.NewValidationError("age", "must be at least 6")), http.StatusBadRequest, "age"},
		{"uniqueness", apperrors.NewUniqueViolation("name", ""), http.StatusConflict, "name"},
		{"not found", apperrors.NewResourceNotFoundError("book 7 not found"), http.StatusNotFound, ""},
		{"unknown model", fmt.Errorf("%w: publisher", apperrors.ErrUnknownModel), http.StatusNotFound, ""},
		{"unknown action", fmt.Errorf("%w: purge", apperrors.ErrUnknownAction), http.StatusNotFound, ""},
		{"empty selection", fmt.Errorf("%w: %w", apperrors.ErrNoSelection, apperrors.NewValidationError("ids", "select at least one record")), http.StatusBadRequest, "ids"},
		{"credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized, ""},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized, ""},
		{"auth required", apperrors.ErrAuthRequired, http.StatusUnauthorized, ""},
		{"disabled", apperrors.ErrAccountDisabled, http.StatusForbidden, ""},
		{"bad request", apperrors.NewBadRequestError("pages", "Invalid request body", "expected int"), http.StatusBadRequest, "pages"},
		{"internal", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/anything", nil)

			HandleAPIError(c, tt.err)

			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}
			resp := decodeError(t, w)
			if resp.Success || resp.Error == nil {
				t.Fatalf("expected a failed envelope, got %s", w.Body.String())
			}
			if resp.Error.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", resp.Error.Field, tt.wantField)
			}
		})
	}
}

func TestInternalErrorsAreHidden(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, errors.New("password authentication failed for user postgres"))

	if strings.Contains(w.Body.String(), "postgres") {
		t.Fatalf("internal error leaked: %s", w.Body.String())
	}
}

// accountStates answers CheckActive from a fixed table; ids not listed are active.
type accountStates map[int64]error

func (a accountStates) CheckActive(_ context.Context, userID int64) error {
	return a[userID]
}

func newSigner(secret string) *auth.Signer {
	return auth.NewSigner(auth.SignerConfig{Secret: secret, TTL: time.Hour, Issuer: "librarium"})
}

func newAuthRouter(signer *auth.Signer, accounts AccountChecker) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/private", NewAuthMiddleware(signer, accounts).JWTAuth(), func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"userID": id, "username": c.GetString(UsernameKey)})
	})
	return r
}

func TestJWTAuth(t *testing.T) {
	signer := newSigner("secret")
	token, err := signer.Issue(7, "admin")
	if err != nil {
		t.Fatal(err)
	}
	router := newAuthRouter(signer, accountStates{})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"no bearer prefix", token.Value, http.StatusUnauthorized},
		{"garbage token", "Bearer not.a.token", http.StatusUnauthorized},
		{"valid", "Bearer " + token.Value, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	var body struct {
		UserID   int64  `json:"userID"`
		Username string `json:"username"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.UserID != 7 || body.Username != "admin" {
		t.Fatalf("claims not propagated: %+v", body)
	}
}

func TestJWTAuthRejectsOtherSecret(t *testing.T) {
	token, err := newSigner("other").Issue(1, "admin")
	if err != nil {
		t.Fatal(err)
	}
	router := newAuthRouter(newSigner("secret"), accountStates{})

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+token.Value)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if resp := decodeError(t, w); resp.Error.Code != dto.ErrorCodeInvalidToken {
		t.Fatalf("code = %s, want %s", resp.Error.Code, dto.ErrorCodeInvalidToken)
	}
}

func TestJWTAuthRechecksAccount(t *testing.T) {
	signer := newSigner("secret")
	accounts := accountStates{
		2: apperrors.ErrAccountDisabled,
		3: fmt.Errorf("%w: account 3 no longer exists", apperrors.ErrTokenInvalid),
	}
	router := newAuthRouter(signer, accounts)

	tests := []struct {
		name     string
		userID   int64
		want     int
		wantCode dto.ErrorCode
	}{
		{"deactivated", 2, http.StatusForbidden, dto.ErrorCodeAccountDisabled},
		{"deleted", 3, http.StatusUnauthorized, dto.ErrorCodeInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := signer.Issue(tt.userID, "former")
			if err != nil {
				t.Fatal(err)
			}
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			req.Header.Set("Authorization", "Bearer "+token.Value)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
			if resp := decodeError(t, w); resp.Error.Code != tt.wantCode {
				t.Fatalf("code = %s, want %s", resp.Error.Code, tt.wantCode)
			}
		})
	}
}

func TestBindJSONBadRequest(t *testing.T) {
	r := gin.New()
	r.POST("/books", func(c *gin.Context) {
		var body struct {
			Pages int `json:"pages"`
		}
		if !BindJSON(c, &body) {
			return
		}
		c.Status(http.StatusNoContent)
	})

	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"wrong type", `{"pages":"many"}`, "pages"},
		{"malformed", `{"pages":`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			resp := decodeError(t, w)
			if resp.Error.Code != dto.ErrorCodeBadRequest || resp.Error.Field != tt.wantField {
				t.Fatalf("error = %+v", resp.Error)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), RequestLogger())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Fatalf("generated id %q, body %q", generated, w.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q, want the caller's", got)
	}
}

func TestParseIDParam(t *testing.T) {
	r := gin.New()
	r.GET("/books/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{"/books/12": http.StatusOK, "/books/abc": http.StatusBadRequest, "/books/0": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != want {
			t.Fatalf("%s: status = %d, want %d", path, w.Code, want)
		}
	}
}
