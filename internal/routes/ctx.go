package routes

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gitlab.com/ranfdev/updoot/internal/models"
)

type ctxKey int

const (
	UserIDCtxKey ctxKey = iota
	PostIDCtxKey
)

// UserIDHeader carries the identity established by the authenticating
// proxy in front of this service. It is trusted as is.
const UserIDHeader = "X-User-ID"

func (routes *Routes) UserCtx(next http.Handler) http.Handler {
	return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) AppError {
		raw := r.Header.Get(UserIDHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return nil
		}
		userID, err := strconv.Atoi(raw)
		if err != nil || userID <= 0 {
			return &ErrBadRequest{Cause: models.Invalid("%s header %q", UserIDHeader, raw)}
		}
		ctx := context.WithValue(r.Context(), UserIDCtxKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
		return nil
	})
}
func (routes *Routes) EnforceCtx(key ctxKey) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) AppError {
			if r.Context().Value(key) == nil {
				return &ErrUnauthorized{}
			}
			next.ServeHTTP(w, r)
			return nil
		})
	}
}
func (routes *Routes) PostCtx(next http.Handler) http.Handler {
	return routes.AppHandler(func(w http.ResponseWriter, r *http.Request) AppError {
		raw := chi.URLParam(r, "postID")
		postID, err := strconv.Atoi(raw)
		if err != nil || postID <= 0 {
			return &ErrNotFound{Thing: "post", Cause: models.Invalid("post id %q", raw)}
		}
		ctx := context.WithValue(r.Context(), PostIDCtxKey, postID)
		next.ServeHTTP(w, r.WithContext(ctx))
		return nil
	})
}

func GetUserID(r *http.Request) (int, bool) {
	userID, ok := r.Context().Value(UserIDCtxKey).(int)
	return userID, ok
}
func GetPostID(r *http.Request) int {
	postID, _ := r.Context().Value(PostIDCtxKey).(int)
	return postID
}
