package routes

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"gitlab.com/ranfdev/updoot/internal/models"
)

type postView struct {
	models.Post
	TextSnippet string `json:"textSnippet"`
	VoteStatus  *int   `json:"voteStatus,omitempty"`
}

type feedView struct {
	Posts      []postView `json:"posts"`
	HasMore    bool       `json:"hasMore"`
	NextCursor string     `json:"nextCursor,omitempty"`
}

func newPostView(p models.Post) postView {
	return postView{Post: p, TextSnippet: p.TextSnippet()}
}

func (routes *Routes) PostsRouter(r chi.Router) {
	r.Get("/", routes.AppHandler(routes.GetPosts))
	r.With(routes.EnforceCtx(UserIDCtxKey)).Post("/", routes.AppHandler(routes.PostPost))

	specificPost := r.With(routes.PostCtx)
	specificPost.Get("/{postID}", routes.AppHandler(routes.GetPost))
	specificPost.With(routes.EnforceCtx(UserIDCtxKey)).Put("/{postID}", routes.AppHandler(routes.UpdatePost))
	specificPost.With(routes.EnforceCtx(UserIDCtxKey)).Delete("/{postID}", routes.AppHandler(routes.DeletePost))
	specificPost.With(routes.EnforceCtx(UserIDCtxKey)).Post("/{postID}/vote", routes.AppHandler(routes.PostVote))
}

// GetPosts serves one page of the feed. The cursor for the following page
// is derived from the last post returned.
func (routes *Routes) GetPosts(w http.ResponseWriter, r *http.Request) AppError {
	limit := models.DefaultPageSize
	if raw := r.URL.Query().Get("limit"); raw != "" {
		l, err := strconv.Atoi(raw)
		if err != nil {
			return &ErrBadRequest{Cause: models.Invalid("limit %q", raw)}
		}
		limit = l
	}

	page, err := routes.db.ListPosts(r.Context(), limit, r.URL.Query().Get("cursor"))
	if err != nil {
		return FromErr(err, "posts")
	}
	routes.metrics.FeedPageSize.Observe(float64(len(page.Posts)))

	feed := feedView{
		Posts:   make([]postView, 0, len(page.Posts)),
		HasMore: page.HasMore,
	}
	for _, p := range page.Posts {
		feed.Posts = append(feed.Posts, newPostView(p))
	}
	if n := len(page.Posts); n > 0 {
		feed.NextCursor = models.CursorFor(page.Posts[n-1])
	}
	renderJSON(w, http.StatusOK, feed)
	return nil
}
func (routes *Routes) GetPost(w http.ResponseWriter, r *http.Request) AppError {
	postID := GetPostID(r)
	post, err := routes.db.GetPost(r.Context(), postID)
	if err != nil {
		return FromErr(err, "post")
	}
	view := newPostView(*post)
	if userID, ok := GetUserID(r); ok {
		view.VoteStatus, err = routes.db.VoteStatus(r.Context(), userID, postID)
		if err != nil {
			return FromErr(err, "post")
		}
	}
	renderJSON(w, http.StatusOK, view)
	return nil
}
func (routes *Routes) PostPost(w http.ResponseWriter, r *http.Request) AppError {
	userID, _ := GetUserID(r)
	var in models.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	post, err := routes.db.CreatePost(r.Context(), userID, in)
	if err != nil {
		return FromErr(err, "user")
	}
	renderJSON(w, http.StatusCreated, newPostView(*post))
	return nil
}
func (routes *Routes) UpdatePost(w http.ResponseWriter, r *http.Request) AppError {
	userID, _ := GetUserID(r)
	var in models.PostInput
	if err := decodeJSON(w, r, &in); err != nil {
		return err
	}
	post, err := routes.db.UpdatePost(r.Context(), userID, GetPostID(r), in)
	if err != nil {
		return FromErr(err, "post")
	}
	renderJSON(w, http.StatusOK, newPostView(*post))
	return nil
}
func (routes *Routes) DeletePost(w http.ResponseWriter, r *http.Request) AppError {
	userID, _ := GetUserID(r)
	err := routes.db.DeletePost(r.Context(), userID, GetPostID(r))
	if err != nil {
		return FromErr(err, "post")
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}
