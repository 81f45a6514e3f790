package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"microblog-service/internal/shared/apperr"
	"microblog-service/internal/shared/jwt"
)

type HandlerFunc func(http.ResponseWriter, *http.Request) error

// Wrap maps domain errors onto status codes. Not-found and forbidden share one
// 404 shape so a caller cannot tell "doesn't exist" from "not yours".
func Wrap(fn HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}
		switch {
		case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrForbidden):
			WriteJSON(w, map[string]any{"error": "not found"}, http.StatusNotFound)
		case errors.Is(err, apperr.ErrUnauthorized):
			WriteJSON(w, map[string]any{"error": "unauthorized"}, http.StatusUnauthorized)
		case apperr.IsValidation(err):
			WriteJSON(w, map[string]any{"error": err.Error()}, http.StatusUnprocessableEntity)
		default:
			WriteJSON(w, map[string]any{"error": err.Error()}, http.StatusBadRequest)
		}
	})
}

func Decode[T any](r *http.Request) (T, error) {
	var t T
	err := json.NewDecoder(r.Body).Decode(&t)
	return t, err
}

func WriteJSON(w http.ResponseWriter, v any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, code int, err error, reason string) {
	WriteJSON(w, map[string]any{"error": err.Error(), "reason": reason}, code)
}

type ctxKey string

const userKey ctxKey = "user_id"

func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := BearerToken(r)
		if tok == "" {
			WriteJSON(w, map[string]string{"error": "missing token"}, http.StatusUnauthorized)
			return
		}
		uid, err := jwt.Parse(tok)
		if err != nil || uid == 0 {
			WriteJSON(w, map[string]string{"error": "invalid token"}, http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), userKey, uid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func UserFromCtx(r *http.Request) (uint, error) {
	uid, _ := r.Context().Value(userKey).(uint)
	if uid == 0 {
		return 0, apperr.ErrUnauthorized
	}
	return uid, nil
}

func QueryInt(r *http.Request, key string, def int) int {
	s := r.URL.Query().Get(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func PathUint(r *http.Request, key string) (uint, error) {
	n, err := strconv.ParseUint(r.PathValue(key), 10, 64)
	if err != nil {
		return 0, apperr.ErrNotFound
	}
	return uint(n), nil
}
