package routes

import (
	"net/http"

	"gitlab.com/ranfdev/updoot/internal/models"
)

// voteReq accepts either {"direction":"up"} or the numeric {"value":1}.
type voteReq struct {
	Direction string `json:"direction"`
	Value     *int   `json:"value"`
}

func (req voteReq) direction() (models.VoteDirection, error) {
	if req.Direction != "" {
		return models.ParseVoteDirection(req.Direction)
	}
	if req.Value != nil {
		return models.DirectionFromValue(*req.Value)
	}
	return "", models.Invalid("missing vote direction")
}

func (routes *Routes) PostVote(w http.ResponseWriter, r *http.Request) AppError {
	userID, _ := GetUserID(r)
	var req voteReq
	if err := decodeJSON(w, r, &req); err != nil {
		return err
	}
	dir, err := req.direction()
	if err != nil {
		routes.metrics.ObserveVote("invalid", err)
		return &ErrBadRequest{Cause: err}
	}

	ok, err := routes.db.CastVote(r.Context(), userID, GetPostID(r), dir)
	routes.metrics.ObserveVote(dir, err)
	if err != nil {
		return FromErr(err, "post")
	}
	renderJSON(w, http.StatusOK, map[string]bool{"success": ok})
	return nil
}
