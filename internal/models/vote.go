package models

type VoteDirection string

const (
	VoteUp   VoteDirection = "up"
	VoteDown VoteDirection = "down"
)

// Updoot is one user's current vote on one post.
type Updoot struct {
	UserID int `db:"user_id" json:"userId"`
	PostID int `db:"post_id" json:"postId"`
	Value  int `db:"value" json:"value"`
}

func ParseVoteDirection(s string) (VoteDirection, error) {
	switch VoteDirection(s) {
	case VoteUp:
		return VoteUp, nil
	case VoteDown:
		return VoteDown, nil
	}
	return "", Invalid("vote direction %q, want up or down", s)
}

// DirectionFromValue accepts the numeric form used by older clients.
func DirectionFromValue(v int) (VoteDirection, error) {
	switch v {
	case 1:
		return VoteUp, nil
	case -1:
		return VoteDown, nil
	}
	return "", Invalid("vote value %d, want 1 or -1", v)
}

// Value is the ledger value stored for the direction.
func (d VoteDirection) Value() (int, error) {
	switch d {
	case VoteUp:
		return 1, nil
	case VoteDown:
		return -1, nil
	}
	return 0, Invalid("vote direction %q, want up or down", string(d))
}
