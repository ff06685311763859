package catalog

import (
	"context"
	"sort"
	"time"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
	"github.com/streamhive/backend/internal/repositories"
)

// matchValue pulls the value of the first match stage on the given field.
func matchValue(stages []pipeline.Stage, field string) string {
	for _, s := range stages {
		if m, ok := s.(pipeline.Match); ok && m.Field == field {
			return m.Value
		}
	}
	return ""
}

func window[T any](items []T, page pipeline.Page) []T {
	start := page.Offset()
	if start >= len(items) {
		return nil
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type fakeVideoRepo struct {
	videos map[string]models.Video
	owners map[string]models.OwnerSummary

	deleted []string
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{
		videos: make(map[string]models.Video),
		owners: make(map[string]models.OwnerSummary),
	}
}

func (f *fakeVideoRepo) Create(_ context.Context, video models.Video) error {
	if _, ok := f.videos[video.ID]; ok {
		return repositories.ErrConflict
	}
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) FindByID(_ context.Context, id string) (models.Video, error) {
	video, ok := f.videos[id]
	if !ok {
		return models.Video{}, repositories.ErrNotFound
	}
	return video, nil
}

func (f *fakeVideoRepo) FindView(_ context.Context, id string) (models.VideoView, error) {
	video, ok := f.videos[id]
	if !ok {
		return models.VideoView{}, repositories.ErrNotFound
	}
	return models.VideoView{Video: video, Owner: f.owners[video.OwnerID]}, nil
}

func (f *fakeVideoRepo) Update(_ context.Context, video models.Video) error {
	current, ok := f.videos[video.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	video.OwnerID = current.OwnerID
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) SetPublished(_ context.Context, id string, published bool) error {
	video, ok := f.videos[id]
	if !ok {
		return repositories.ErrNotFound
	}
	video.Published = published
	f.videos[id] = video
	return nil
}

func (f *fakeVideoRepo) IncrementViews(_ context.Context, id string) error {
	video, ok := f.videos[id]
	if !ok {
		return repositories.ErrNotFound
	}
	video.Views++
	f.videos[id] = video
	return nil
}

func (f *fakeVideoRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.videos[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.videos, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeVideoRepo) List(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error) {
	ownerID := matchValue(stages, pipeline.FieldOwner)
	var all []models.VideoView
	for _, video := range f.videos {
		if ownerID != "" && video.OwnerID != ownerID {
			continue
		}
		all = append(all, models.VideoView{Video: video, Owner: f.owners[video.OwnerID]})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, page), len(all), nil
}

type fakeCommentRepo struct {
	comments map[string]models.Comment
	owners   map[string]models.OwnerSummary
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[string]models.Comment),
		owners:   make(map[string]models.OwnerSummary),
	}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment models.Comment) error {
	if _, ok := f.comments[comment.ID]; ok {
		return repositories.ErrConflict
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id string) (models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return models.Comment{}, repositories.ErrNotFound
	}
	return comment, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment models.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.comments[comment.ID] = comment
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.comments[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) ListForVideo(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.CommentView, int, error) {
	videoID := matchValue(stages, pipeline.FieldVideo)
	var all []models.CommentView
	for _, comment := range f.comments {
		if comment.VideoID != videoID {
			continue
		}
		all = append(all, models.CommentView{Comment: comment, Owner: f.owners[comment.OwnerID]})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return window(all, page), len(all), nil
}

type fakePostRepo struct {
	posts map[string]models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]models.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post models.Post) error {
	if _, ok := f.posts[post.ID]; ok {
		return repositories.ErrConflict
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id string) (models.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return models.Post{}, repositories.ErrNotFound
	}
	return post, nil
}

func (f *fakePostRepo) Update(_ context.Context, post models.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.posts[post.ID] = post
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) ListByOwner(_ context.Context, stages []pipeline.Stage) ([]models.Post, error) {
	ownerID := matchValue(stages, pipeline.FieldOwner)
	var all []models.Post
	for _, post := range f.posts {
		if post.OwnerID == ownerID {
			all = append(all, post)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

type membership struct {
	videoID string
	addedAt time.Time
}

type fakePlaylistRepo struct {
	playlists map[string]models.Playlist
	members   map[string][]membership
	videos    *fakeVideoRepo
}

func newFakePlaylistRepo(videos *fakeVideoRepo) *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists: make(map[string]models.Playlist),
		members:   make(map[string][]membership),
		videos:    videos,
	}
}

func (f *fakePlaylistRepo) Create(_ context.Context, playlist models.Playlist) error {
	if _, ok := f.playlists[playlist.ID]; ok {
		return repositories.ErrConflict
	}
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) FindByID(_ context.Context, id string) (models.Playlist, error) {
	playlist, ok := f.playlists[id]
	if !ok {
		return models.Playlist{}, repositories.ErrNotFound
	}
	return playlist, nil
}

func (f *fakePlaylistRepo) Update(_ context.Context, playlist models.Playlist) error {
	if _, ok := f.playlists[playlist.ID]; !ok {
		return repositories.ErrNotFound
	}
	f.playlists[playlist.ID] = playlist
	return nil
}

func (f *fakePlaylistRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.playlists[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(f.playlists, id)
	delete(f.members, id)
	return nil
}

func (f *fakePlaylistRepo) AddVideo(_ context.Context, playlistID, videoID string, addedAt time.Time) error {
	for _, m := range f.members[playlistID] {
		if m.videoID == videoID {
			return repositories.ErrConflict
		}
	}
	f.members[playlistID] = append(f.members[playlistID], membership{videoID: videoID, addedAt: addedAt})
	return nil
}

func (f *fakePlaylistRepo) RemoveVideo(_ context.Context, playlistID, videoID string) error {
	members := f.members[playlistID]
	for i, m := range members {
		if m.videoID == videoID {
			f.members[playlistID] = append(members[:i], members[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakePlaylistRepo) ListByOwner(_ context.Context, stages []pipeline.Stage) ([]models.PlaylistSummary, error) {
	ownerID := matchValue(stages, pipeline.FieldOwner)
	var all []models.PlaylistSummary
	for _, playlist := range f.playlists {
		if playlist.OwnerID != ownerID {
			continue
		}
		summary := models.PlaylistSummary{
			ID:          playlist.ID,
			Name:        playlist.Name,
			Description: playlist.Description,
		}
		var newest models.Video
		for _, m := range f.members[playlist.ID] {
			if video, ok := f.videos.videos[m.videoID]; ok && video.CreatedAt.After(newest.CreatedAt) {
				newest = video
			}
		}
		if newest.ID != "" {
			thumb := newest.Thumbnail
			summary.Thumbnail = &thumb
		}
		all = append(all, summary)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, nil
}

func (f *fakePlaylistRepo) FindView(_ context.Context, id string) (models.PlaylistView, error) {
	playlist, ok := f.playlists[id]
	if !ok {
		return models.PlaylistView{}, repositories.ErrNotFound
	}
	view := models.PlaylistView{Playlist: playlist}
	for _, m := range f.members[id] {
		if video, ok := f.videos.videos[m.videoID]; ok {
			view.Videos = append(view.Videos, models.VideoView{Video: video, Owner: f.videos.owners[video.OwnerID]})
		}
	}
	return view, nil
}

type recordingReclaimer struct {
	keys []string
}

func (r *recordingReclaimer) Enqueue(key string) {
	r.keys = append(r.keys, key)
}
