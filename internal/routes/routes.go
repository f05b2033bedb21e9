package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"gitlab.com/ranfdev/updoot/internal/models"
)

const maxBodyBytes = 1 << 20

// Store is the part of db.SharedDB the HTTP layer needs.
type Store interface {
	CastVote(ctx context.Context, userID, postID int, dir models.VoteDirection) (bool, error)
	ListPosts(ctx context.Context, limit int, cursor string) (*models.PaginatedPosts, error)
	CreatePost(ctx context.Context, creatorID int, in models.PostInput) (*models.Post, error)
	GetPost(ctx context.Context, id int) (*models.Post, error)
	UpdatePost(ctx context.Context, userID, id int, in models.PostInput) (*models.Post, error)
	DeletePost(ctx context.Context, userID, id int) error
	VoteStatus(ctx context.Context, userID, postID int) (*int, error)
	CreateUser(ctx context.Context, user *models.User) error
	Ping(ctx context.Context) error
}

type Routes struct {
	db      Store
	metrics *Metrics
}

func NewRouter(db Store, log zerolog.Logger, metrics *Metrics) chi.Router {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	routes := &Routes{
		db:      db,
		metrics: metrics,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(hlog.NewHandler(log))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Send()
	}))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(routes.UserCtx)

	r.Get("/health", routes.AppHandler(routes.GetHealth))
	r.Handle("/metrics", metrics.Handler())
	r.Post("/users", routes.AppHandler(routes.PostUser))
	r.Route("/posts", routes.PostsRouter)
	return r
}
func (routes *Routes) GetHealth(w http.ResponseWriter, r *http.Request) AppError {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := routes.db.Ping(ctx); err != nil {
		return &ErrUnavailable{Cause: err}
	}
	renderJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	return nil
}
func (routes *Routes) PostUser(w http.ResponseWriter, r *http.Request) AppError {
	var user models.User
	if err := decodeJSON(w, r, &user); err != nil {
		return err
	}
	if err := routes.db.CreateUser(r.Context(), &user); err != nil {
		return FromErr(err, "user")
	}
	renderJSON(w, http.StatusCreated, user)
	return nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) AppError {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return &ErrBadRequest{Cause: models.Invalid("malformed body: %v", err)}
	}
	return nil
}
func renderJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
