package engagement

import (
	"context"
	"sort"

	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
	"github.com/streamhive/backend/internal/repositories"
)

type recordingInvalidator struct {
	owners []string
}

func (r *recordingInvalidator) Invalidate(ownerID string) {
	r.owners = append(r.owners, ownerID)
}

type likeKey struct {
	owner  string
	kind   models.LikeKind
	target string
}

type fakeLikeRepo struct {
	edges  map[likeKey]models.Like
	videos map[string]models.Video
}

func newFakeLikeRepo() *fakeLikeRepo {
	return &fakeLikeRepo{
		edges:  make(map[likeKey]models.Like),
		videos: make(map[string]models.Video),
	}
}

func (f *fakeLikeRepo) Exists(_ context.Context, ownerID string, kind models.LikeKind, targetID string) (bool, error) {
	_, ok := f.edges[likeKey{ownerID, kind, targetID}]
	return ok, nil
}

func (f *fakeLikeRepo) CreateIfAbsent(_ context.Context, like models.Like) (bool, error) {
	key := likeKey{like.OwnerID, like.Kind, like.TargetID}
	if _, ok := f.edges[key]; ok {
		return false, nil
	}
	f.edges[key] = like
	return true, nil
}

func (f *fakeLikeRepo) DeleteIfPresent(_ context.Context, ownerID string, kind models.LikeKind, targetID string) (bool, error) {
	key := likeKey{ownerID, kind, targetID}
	if _, ok := f.edges[key]; !ok {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeLikeRepo) LikedVideos(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error) {
	ownerID := matchValue(stages, pipeline.FieldOwner)
	var likes []models.Like
	for key, like := range f.edges {
		if key.owner == ownerID && key.kind == models.LikeVideo {
			likes = append(likes, like)
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].CreatedAt.After(likes[j].CreatedAt) })

	var all []models.VideoView
	for _, like := range likes {
		if video, ok := f.videos[like.TargetID]; ok {
			all = append(all, models.VideoView{Video: video})
		}
	}

	start := page.Offset()
	if start >= len(all) {
		return nil, len(all), nil
	}
	end := start + page.Limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], len(all), nil
}

func matchValue(stages []pipeline.Stage, field string) string {
	for _, s := range stages {
		if m, ok := s.(pipeline.Match); ok && m.Field == field {
			return m.Value
		}
	}
	return ""
}

type fakeVideoRepo struct {
	videos map[string]models.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[string]models.Video)}
}

func (f *fakeVideoRepo) Create(_ context.Context, video models.Video) error {
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
	return models.VideoView{Video: video}, nil
}

func (f *fakeVideoRepo) Update(_ context.Context, video models.Video) error {
	f.videos[video.ID] = video
	return nil
}

func (f *fakeVideoRepo) SetPublished(_ context.Context, id string, published bool) error { return nil }
func (f *fakeVideoRepo) IncrementViews(_ context.Context, id string) error               { return nil }
func (f *fakeVideoRepo) Delete(_ context.Context, id string) error                       { return nil }

func (f *fakeVideoRepo) List(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.VideoView, int, error) {
	return nil, 0, nil
}

type fakeCommentRepo struct {
	comments map[string]models.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: make(map[string]models.Comment)}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment models.Comment) error {
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

func (f *fakeCommentRepo) Update(_ context.Context, comment models.Comment) error { return nil }
func (f *fakeCommentRepo) Delete(_ context.Context, id string) error              { return nil }

func (f *fakeCommentRepo) ListForVideo(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.CommentView, int, error) {
	return nil, 0, nil
}

type fakePostRepo struct {
	posts map[string]models.Post
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: make(map[string]models.Post)}
}

func (f *fakePostRepo) Create(_ context.Context, post models.Post) error {
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

func (f *fakePostRepo) Update(_ context.Context, post models.Post) error { return nil }
func (f *fakePostRepo) Delete(_ context.Context, id string) error        { return nil }

func (f *fakePostRepo) ListByOwner(_ context.Context, stages []pipeline.Stage) ([]models.Post, error) {
	return nil, nil
}

type subKey struct {
	subscriber string
	channel    string
}

type fakeSubscriptionRepo struct {
	edges map[subKey]models.Subscription
	users map[string]models.OwnerSummary
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{
		edges: make(map[subKey]models.Subscription),
		users: make(map[string]models.OwnerSummary),
	}
}

func (f *fakeSubscriptionRepo) Exists(_ context.Context, subscriberID, channelID string) (bool, error) {
	_, ok := f.edges[subKey{subscriberID, channelID}]
	return ok, nil
}

func (f *fakeSubscriptionRepo) CreateIfAbsent(_ context.Context, sub models.Subscription) (bool, error) {
	key := subKey{sub.SubscriberID, sub.ChannelID}
	if _, ok := f.edges[key]; ok {
		return false, nil
	}
	f.edges[key] = sub
	return true, nil
}

func (f *fakeSubscriptionRepo) DeleteIfPresent(_ context.Context, subscriberID, channelID string) (bool, error) {
	key := subKey{subscriberID, channelID}
	if _, ok := f.edges[key]; !ok {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeSubscriptionRepo) Subscribers(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.OwnerSummary, int, error) {
	channelID := matchValue(stages, pipeline.FieldChannel)
	var all []models.OwnerSummary
	for key := range f.edges {
		if key.channel == channelID {
			all = append(all, f.users[key.subscriber])
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

func (f *fakeSubscriptionRepo) Channels(_ context.Context, stages []pipeline.Stage, page pipeline.Page) ([]models.OwnerSummary, int, error) {
	subscriberID := matchValue(stages, pipeline.FieldSubscriber)
	var all []models.OwnerSummary
	for key := range f.edges {
		if key.subscriber == subscriberID {
			all = append(all, f.users[key.channel])
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all, len(all), nil
}

type fakeUserRepo struct {
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (f *fakeUserRepo) FindByLogin(_ context.Context, login string) (models.User, error) {
	for _, user := range f.users {
		if user.Username == login || user.Email == login {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (f *fakeUserRepo) Update(_ context.Context, user models.User) error {
	f.users[user.ID] = user
	return nil
}

type fakeStatsRepo struct {
	stats map[string]models.ChannelStats
	calls int
}

func newFakeStatsRepo() *fakeStatsRepo {
	return &fakeStatsRepo{stats: make(map[string]models.ChannelStats)}
}

func (f *fakeStatsRepo) ChannelStats(_ context.Context, ownerID string) (models.ChannelStats, error) {
	f.calls++
	return f.stats[ownerID], nil
}
