package models

import "time"

// MediaRef points at an object uploaded to the blob store: the storage key
// plus the public URL derived from it.
type MediaRef struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// Zero reports whether the reference carries no object.
func (m MediaRef) Zero() bool {
	return m.Key == "" && m.URL == ""
}

// User represents an account within the StreamHive platform.
type User struct {
	ID         string
	Username   string
	Email      string
	FullName   string
	Password   string
	Avatar     MediaRef
	CoverImage MediaRef
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Video is a published piece of content owned by exactly one user.
// The owner never changes after creation.
type Video struct {
	ID          string
	OwnerID     string
	Title       string
	Description string
	File        MediaRef
	Thumbnail   MediaRef
	Duration    float64
	Views       int64
	Published   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Comment belongs to exactly one video and one owner.
type Comment struct {
	ID        string
	VideoID   string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Post is a short text entry owned by a user (no video attached).
type Post struct {
	ID        string
	OwnerID   string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LikeKind names the entity a like edge is anchored to.
type LikeKind string

const (
	LikeVideo   LikeKind = "video"
	LikeComment LikeKind = "comment"
	LikePost    LikeKind = "post"
)

// Like is a pure edge record: one owner, one anchor, no content of its own.
// At most one like exists per (owner, kind, target).
type Like struct {
	ID        string
	OwnerID   string
	Kind      LikeKind
	TargetID  string
	CreatedAt time.Time
}

// Subscription is an edge from a subscriber to a channel (another user).
// At most one per (subscriber, channel); self-subscription is forbidden.
type Subscription struct {
	ID           string
	SubscriberID string
	ChannelID    string
	CreatedAt    time.Time
}

// Playlist is an owned, named collection of videos without duplicates.
type Playlist struct {
	ID          string
	OwnerID     string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SessionTokens groups the bearer credentials issued to authenticated users.
type SessionTokens struct {
	AccessToken      string    `json:"accessToken"`
	AccessExpiresAt  time.Time `json:"accessExpiresAt"`
	RefreshToken     string    `json:"refreshToken"`
	RefreshExpiresAt time.Time `json:"refreshExpiresAt"`
}
