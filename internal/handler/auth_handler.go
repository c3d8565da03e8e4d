package handler

import (
	"net/http"

	"github.com/financefusion/finance-fusion-go/internal/domain"
	"github.com/financefusion/finance-fusion-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Signup — POST /api/v1/auth/signup
// ============================================================

func signupHandler(authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/auth/signup")
		defer span.End()

		var req domain.SignupRequest
		if err := decodeJSON(r, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		resp, err := authSvc.Signup(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// ============================================================
// Login — POST /api/v1/auth/login
// ============================================================

// loginHandler accepts a form-encoded body where the username field
// carries the email, matching the OAuth2 password-grant shape most
// frontends already speak.
func loginHandler(authSvc *service.AuthService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /api/v1/auth/login")
		defer span.End()

		if err := r.ParseForm(); err != nil {
			writeError(w, http.StatusBadRequest, "invalid form payload")
			return
		}

		email := r.PostFormValue("username")
		password := r.PostFormValue("password")
		if email == "" || password == "" {
			writeError(w, http.StatusBadRequest, "username and password are required")
			return
		}

		token, err := authSvc.Login(ctx, email, password)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, token)
	}
}
