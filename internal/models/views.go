package models

// OwnerSummary is the trimmed projection of a user embedded in read views.
// It never exposes credentials or contact details.
type OwnerSummary struct {
	ID       string   `json:"id"`
	Username string   `json:"username"`
	FullName string   `json:"fullName"`
	Avatar   MediaRef `json:"avatar"`
}

// VideoView is a video with its owner reference hydrated.
type VideoView struct {
	Video
	Owner OwnerSummary
}

// CommentView is a comment with its owner reference hydrated.
type CommentView struct {
	Comment
	Owner OwnerSummary
}

// PlaylistSummary is the listing projection of a playlist. Thumbnail is
// derived from the most recently created member video; nil when empty.
type PlaylistSummary struct {
	ID          string
	Name        string
	Description string
	Thumbnail   *MediaRef
}

// PlaylistView is a playlist with its member videos hydrated, each carrying
// its own hydrated owner.
type PlaylistView struct {
	Playlist
	Videos []VideoView
}

// ChannelStats aggregates per-owner totals across content and edges.
// All fields are zero for an owner with no videos; that is a valid result.
type ChannelStats struct {
	VideoCount      int64 `json:"videoCount"`
	ViewTotal       int64 `json:"viewTotal"`
	SubscriberCount int64 `json:"subscriberCount"`
	LikeCount       int64 `json:"likeCount"`
}

// ToggleState reports which side of a toggle was applied.
type ToggleState string

const (
	ToggleCreated ToggleState = "created"
	ToggleRemoved ToggleState = "removed"
)
