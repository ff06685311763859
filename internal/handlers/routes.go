package handlers

import "net/http"

// Dependencies aggregates collaborators required by HTTP handlers.
type Dependencies struct {
	Users         UserStore
	Sessions      SessionManager
	Videos        VideoCatalog
	Comments      CommentCatalog
	Posts         PostCatalog
	Playlists     PlaylistCatalog
	Likes         LikeEngine
	Subscriptions SubscriptionEngine
	Stats         StatsProvider
	Media         MediaStore
	AuthLimiter   RateLimiter
}

// RegisterRoutes wires HTTP handlers into the provided ServeMux.
func RegisterRoutes(mux *http.ServeMux, deps Dependencies) {
	health := HealthHandler{}
	auth := AuthHandler{Users: deps.Users, Sessions: deps.Sessions, Limiter: deps.AuthLimiter}
	users := UserHandler{Users: deps.Users, Sessions: deps.Sessions, Media: deps.Media}
	videos := VideoHandler{Videos: deps.Videos, Sessions: deps.Sessions, Media: deps.Media, Likes: deps.Likes}
	comments := CommentHandler{Comments: deps.Comments, Sessions: deps.Sessions}
	posts := PostHandler{Posts: deps.Posts, Sessions: deps.Sessions}
	playlists := PlaylistHandler{Playlists: deps.Playlists, Sessions: deps.Sessions}
	likes := LikeHandler{Likes: deps.Likes, Sessions: deps.Sessions}
	subs := SubscriptionHandler{Subscriptions: deps.Subscriptions, Sessions: deps.Sessions}
	stats := StatsHandler{Stats: deps.Stats, Sessions: deps.Sessions, Subscriptions: deps.Subscriptions}

	mux.HandleFunc("GET /healthz", health.Handle)

	mux.HandleFunc("POST /api/v1/auth/signup", auth.SignUp)
	mux.HandleFunc("POST /api/v1/auth/login", auth.Login)
	mux.HandleFunc("POST /api/v1/auth/refresh", auth.Refresh)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.Logout)

	mux.HandleFunc("GET /api/v1/users/me", users.Me)
	mux.HandleFunc("PATCH /api/v1/users/me", users.UpdateProfile)
	mux.HandleFunc("POST /api/v1/users/me/password", users.ChangePassword)
	mux.HandleFunc("POST /api/v1/users/me/avatar", users.UploadAvatar)
	mux.HandleFunc("POST /api/v1/users/me/cover", users.UploadCover)

	mux.HandleFunc("POST /api/v1/videos", videos.Publish)
	mux.HandleFunc("GET /api/v1/videos/liked", likes.LikedVideos)
	mux.HandleFunc("GET /api/v1/videos/{id}", videos.Get)
	mux.HandleFunc("PATCH /api/v1/videos/{id}", videos.Update)
	mux.HandleFunc("DELETE /api/v1/videos/{id}", videos.Delete)
	mux.HandleFunc("POST /api/v1/videos/{id}/thumbnail", videos.UpdateThumbnail)
	mux.HandleFunc("POST /api/v1/videos/{id}/toggle-publish", videos.TogglePublish)
	mux.HandleFunc("POST /api/v1/videos/{id}/like", likes.ToggleVideo)
	mux.HandleFunc("GET /api/v1/videos/{id}/comments", comments.List)
	mux.HandleFunc("POST /api/v1/videos/{id}/comments", comments.Add)

	mux.HandleFunc("PATCH /api/v1/comments/{id}", comments.Update)
	mux.HandleFunc("DELETE /api/v1/comments/{id}", comments.Delete)
	mux.HandleFunc("POST /api/v1/comments/{id}/like", likes.ToggleComment)

	mux.HandleFunc("POST /api/v1/posts", posts.Create)
	mux.HandleFunc("PATCH /api/v1/posts/{id}", posts.Update)
	mux.HandleFunc("DELETE /api/v1/posts/{id}", posts.Delete)
	mux.HandleFunc("POST /api/v1/posts/{id}/like", likes.TogglePost)

	mux.HandleFunc("POST /api/v1/playlists", playlists.Create)
	mux.HandleFunc("GET /api/v1/playlists/{id}", playlists.Get)
	mux.HandleFunc("PATCH /api/v1/playlists/{id}", playlists.Update)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}", playlists.Delete)
	mux.HandleFunc("POST /api/v1/playlists/{id}/videos/{videoId}", playlists.AddVideo)
	mux.HandleFunc("DELETE /api/v1/playlists/{id}/videos/{videoId}", playlists.RemoveVideo)

	mux.HandleFunc("POST /api/v1/channels/{id}/subscribe", subs.Toggle)
	mux.HandleFunc("GET /api/v1/channels/{id}/subscribers", subs.Subscribers)
	mux.HandleFunc("GET /api/v1/channels/{id}/stats", stats.Channel)

	mux.HandleFunc("GET /api/v1/users/{id}/videos", videos.ListByOwner)
	mux.HandleFunc("GET /api/v1/users/{id}/posts", posts.ListByOwner)
	mux.HandleFunc("GET /api/v1/users/{id}/playlists", playlists.ListByOwner)
	mux.HandleFunc("GET /api/v1/users/{id}/subscriptions", subs.Channels)
}
