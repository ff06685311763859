package repositories

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/cockroachdb/cockroach-go/v2/testserver"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/streamhive/backend/internal/auth"
	"github.com/streamhive/backend/internal/models"
	"github.com/streamhive/backend/internal/pipeline"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	server, err := testserver.NewTestServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "start cockroach test server: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, server.PGURL().String())
	if err != nil {
		fmt.Fprintf(os.Stderr, "connect to cockroach test server: %v\n", err)
		server.Stop()
		os.Exit(1)
	}

	if err := applyMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "apply migrations: %v\n", err)
		pool.Close()
		server.Stop()
		os.Exit(1)
	}

	testPool = pool

	code := m.Run()

	pool.Close()
	server.Stop()

	os.Exit(code)
}

func TestPostgresUserRepository_CreateFindAndUpdate(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	repo := NewPostgresUserRepository(testPool)

	user := createTestUser(t, repo, "ada")

	dup := user
	dup.ID = uuid.NewString()
	if err := repo.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for duplicate username, got %v", err)
	}

	byName, err := repo.FindByLogin(ctx, user.Username)
	if err != nil {
		t.Fatalf("find by username: %v", err)
	}
	if byName.ID != user.ID {
		t.Fatalf("expected %s by username, got %s", user.ID, byName.ID)
	}

	byEmail, err := repo.FindByLogin(ctx, user.Email)
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("expected %s by email, got %s", user.ID, byEmail.ID)
	}

	updated := user
	updated.FullName = "Ada Lovelace"
	updated.Avatar = models.MediaRef{Key: "avatars/ada", URL: "https://cdn/avatars/ada"}
	updated.UpdatedAt = time.Now().UTC().Add(time.Minute)

	if err := repo.Update(ctx, updated); err != nil {
		t.Fatalf("update user: %v", err)
	}

	fetched, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if fetched.FullName != updated.FullName || fetched.Avatar != updated.Avatar {
		t.Fatalf("expected updated fields to persist, got %+v", fetched)
	}

	missing := user
	missing.ID = uuid.NewString()
	missing.Username = "missing"
	missing.Email = "missing@example.com"
	if err := repo.Update(ctx, missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound updating missing user, got %v", err)
	}
}

func TestPostgresSessionStore_SaveFindAndDelete(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	user := createTestUser(t, users, "grace")

	store := NewPostgresSessionStore(testPool)

	now := time.Now().UTC().Truncate(time.Millisecond)
	session := auth.Session{
		AccessToken:      "access-1",
		RefreshToken:     "refresh-1",
		UserID:           user.ID,
		AccessExpiresAt:  now.Add(15 * time.Minute),
		RefreshExpiresAt: now.Add(30 * 24 * time.Hour),
	}

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save session: %v", err)
	}

	byAccess, err := store.FindByAccess(ctx, session.AccessToken)
	if err != nil {
		t.Fatalf("find by access token: %v", err)
	}
	if byAccess.UserID != user.ID || !timesClose(byAccess.AccessExpiresAt, session.AccessExpiresAt, time.Second) {
		t.Fatalf("unexpected session by access token: %+v", byAccess)
	}

	rotated := session
	rotated.AccessToken = "access-2"
	if err := store.Save(ctx, rotated); err != nil {
		t.Fatalf("rotate access token: %v", err)
	}
	if _, err := store.FindByAccess(ctx, "access-1"); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("expected stale access token to be gone, got %v", err)
	}

	byRefresh, err := store.FindByRefresh(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("find by refresh token: %v", err)
	}
	if byRefresh.AccessToken != "access-2" {
		t.Fatalf("expected rotated access token, got %s", byRefresh.AccessToken)
	}

	if err := store.Delete(ctx, session.RefreshToken); err != nil {
		t.Fatalf("delete session: %v", err)
	}
	if err := store.Delete(ctx, session.RefreshToken); !errors.Is(err, auth.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on double delete, got %v", err)
	}
}

func TestPostgresLikeRepository_AtomicToggle(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	videosRepo := NewPostgresVideoRepository(testPool)
	likes := NewPostgresLikeRepository(testPool)

	owner := createTestUser(t, users, "owner")
	fan := createTestUser(t, users, "fan")
	video := createTestVideo(t, videosRepo, owner.ID, "First upload", 0)

	like := models.Like{
		ID:        uuid.NewString(),
		OwnerID:   fan.ID,
		Kind:      models.LikeVideo,
		TargetID:  video.ID,
		CreatedAt: time.Now().UTC(),
	}

	created, err := likes.CreateIfAbsent(ctx, like)
	if err != nil {
		t.Fatalf("create like: %v", err)
	}
	if !created {
		t.Fatal("expected first create to insert")
	}

	dup := like
	dup.ID = uuid.NewString()
	created, err = likes.CreateIfAbsent(ctx, dup)
	if err != nil {
		t.Fatalf("create duplicate like: %v", err)
	}
	if created {
		t.Fatal("expected duplicate create to be a no-op")
	}

	exists, err := likes.Exists(ctx, fan.ID, models.LikeVideo, video.ID)
	if err != nil {
		t.Fatalf("check like: %v", err)
	}
	if !exists {
		t.Fatal("expected like to exist")
	}

	removed, err := likes.DeleteIfPresent(ctx, fan.ID, models.LikeVideo, video.ID)
	if err != nil {
		t.Fatalf("delete like: %v", err)
	}
	if !removed {
		t.Fatal("expected delete to remove the edge")
	}

	removed, err = likes.DeleteIfPresent(ctx, fan.ID, models.LikeVideo, video.ID)
	if err != nil {
		t.Fatalf("delete absent like: %v", err)
	}
	if removed {
		t.Fatal("expected second delete to be a no-op")
	}
}

func TestPostgresVideoRepository_ListSearchAndSort(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	repo := NewPostgresVideoRepository(testPool)

	owner := createTestUser(t, users, "creator")
	other := createTestUser(t, users, "bystander")

	createTestVideo(t, repo, owner.ID, "Go concurrency patterns", 50)
	createTestVideo(t, repo, owner.ID, "Gardening basics", 10)
	createTestVideo(t, repo, owner.ID, "Go generics deep dive", 99)
	createTestVideo(t, repo, other.ID, "Go but someone else", 1)

	stages := pipeline.VideosByOwner(owner.ID, "go", "views", true)
	page := pipeline.NormalizePage(pipeline.Page{Number: 1, Limit: 10})

	views, total, err := repo.List(ctx, stages, page)
	if err != nil {
		t.Fatalf("list videos: %v", err)
	}
	if total != 2 {
		t.Fatalf("expected 2 matches for owner search, got %d", total)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 views, got %d", len(views))
	}
	if views[0].Views < views[1].Views {
		t.Fatalf("expected descending view counts, got %d then %d", views[0].Views, views[1].Views)
	}
	for _, v := range views {
		if v.Owner.ID != owner.ID {
			t.Fatalf("unexpected owner %s in listing", v.Owner.ID)
		}
		if v.Owner.Username != owner.Username {
			t.Fatalf("expected hydrated owner, got %+v", v.Owner)
		}
		if v.Duration != 123.45 {
			t.Fatalf("expected fractional duration to round-trip, got %v", v.Duration)
		}
	}

	// Window past the end still reports the full total.
	views, total, err = repo.List(ctx, pipeline.VideosByOwner(owner.ID, "", "", true), pipeline.NormalizePage(pipeline.Page{Number: 3, Limit: 2}))
	if err != nil {
		t.Fatalf("list second window: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty window, got %d views", len(views))
	}
}

func TestPostgresVideoRepository_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	videosRepo := NewPostgresVideoRepository(testPool)
	comments := NewPostgresCommentRepository(testPool)
	likes := NewPostgresLikeRepository(testPool)
	playlists := NewPostgresPlaylistRepository(testPool)

	owner := createTestUser(t, users, "owner")
	fan := createTestUser(t, users, "fan")
	video := createTestVideo(t, videosRepo, owner.ID, "Doomed", 7)

	comment := models.Comment{
		ID:        uuid.NewString(),
		VideoID:   video.ID,
		OwnerID:   fan.ID,
		Content:   "nice",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := comments.Create(ctx, comment); err != nil {
		t.Fatalf("create comment: %v", err)
	}

	for _, like := range []models.Like{
		{ID: uuid.NewString(), OwnerID: fan.ID, Kind: models.LikeVideo, TargetID: video.ID, CreatedAt: time.Now().UTC()},
		{ID: uuid.NewString(), OwnerID: owner.ID, Kind: models.LikeComment, TargetID: comment.ID, CreatedAt: time.Now().UTC()},
	} {
		if _, err := likes.CreateIfAbsent(ctx, like); err != nil {
			t.Fatalf("create like: %v", err)
		}
	}

	playlist := models.Playlist{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Name:      "Keepers",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := playlists.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}
	if err := playlists.AddVideo(ctx, playlist.ID, video.ID, time.Now().UTC()); err != nil {
		t.Fatalf("add playlist member: %v", err)
	}

	if err := videosRepo.Delete(ctx, video.ID); err != nil {
		t.Fatalf("delete video: %v", err)
	}

	if _, err := videosRepo.FindByID(ctx, video.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected video gone, got %v", err)
	}
	if _, err := comments.FindByID(ctx, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected comment gone, got %v", err)
	}
	for _, check := range []struct {
		kind   models.LikeKind
		target string
	}{
		{models.LikeVideo, video.ID},
		{models.LikeComment, comment.ID},
	} {
		exists, err := likes.Exists(ctx, fan.ID, check.kind, check.target)
		if err != nil {
			t.Fatalf("check like: %v", err)
		}
		if exists {
			t.Fatalf("expected %s like to cascade away", check.kind)
		}
	}

	view, err := playlists.FindView(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("find playlist view: %v", err)
	}
	if len(view.Videos) != 0 {
		t.Fatalf("expected playlist membership to cascade away, got %d members", len(view.Videos))
	}
}

func TestPostgresPlaylistRepository_MembershipAndThumbnail(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	videosRepo := NewPostgresVideoRepository(testPool)
	repo := NewPostgresPlaylistRepository(testPool)

	owner := createTestUser(t, users, "curator")
	older := createTestVideoAt(t, videosRepo, owner.ID, "Older", time.Now().UTC().Add(-time.Hour))
	newer := createTestVideoAt(t, videosRepo, owner.ID, "Newer", time.Now().UTC())

	playlist := models.Playlist{
		ID:        uuid.NewString(),
		OwnerID:   owner.ID,
		Name:      "Favorites",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(ctx, playlist); err != nil {
		t.Fatalf("create playlist: %v", err)
	}

	if err := repo.AddVideo(ctx, playlist.ID, older.ID, time.Now().UTC()); err != nil {
		t.Fatalf("add older video: %v", err)
	}
	if err := repo.AddVideo(ctx, playlist.ID, newer.ID, time.Now().UTC()); err != nil {
		t.Fatalf("add newer video: %v", err)
	}
	if err := repo.AddVideo(ctx, playlist.ID, older.ID, time.Now().UTC()); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict on duplicate membership, got %v", err)
	}

	summaries, err := repo.ListByOwner(ctx, pipeline.PlaylistsByOwner(owner.ID))
	if err != nil {
		t.Fatalf("list playlists: %v", err)
	}
	if len(summaries) != 1 {
		t.Fatalf("expected one playlist, got %d", len(summaries))
	}
	if summaries[0].Thumbnail == nil {
		t.Fatal("expected derived thumbnail")
	}
	if summaries[0].Thumbnail.Key != newer.Thumbnail.Key {
		t.Fatalf("expected thumbnail from newest member, got %q", summaries[0].Thumbnail.Key)
	}

	view, err := repo.FindView(ctx, playlist.ID)
	if err != nil {
		t.Fatalf("find playlist view: %v", err)
	}
	if len(view.Videos) != 2 {
		t.Fatalf("expected 2 member videos, got %d", len(view.Videos))
	}

	if err := repo.RemoveVideo(ctx, playlist.ID, newer.ID); err != nil {
		t.Fatalf("remove video: %v", err)
	}
	if err := repo.RemoveVideo(ctx, playlist.ID, newer.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound removing absent member, got %v", err)
	}
}

func TestPostgresStatsRepository_Aggregates(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	videosRepo := NewPostgresVideoRepository(testPool)
	likes := NewPostgresLikeRepository(testPool)
	subs := NewPostgresSubscriptionRepository(testPool)
	stats := NewPostgresStatsRepository(testPool)

	channel := createTestUser(t, users, "channel")
	fanA := createTestUser(t, users, "fan-a")
	fanB := createTestUser(t, users, "fan-b")

	v1 := createTestVideo(t, videosRepo, channel.ID, "One", 10)
	createTestVideo(t, videosRepo, channel.ID, "Two", 5)

	for _, fan := range []models.User{fanA, fanB} {
		if _, err := subs.CreateIfAbsent(ctx, models.Subscription{
			ID:           uuid.NewString(),
			SubscriberID: fan.ID,
			ChannelID:    channel.ID,
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			t.Fatalf("subscribe %s: %v", fan.Username, err)
		}
		if _, err := likes.CreateIfAbsent(ctx, models.Like{
			ID:        uuid.NewString(),
			OwnerID:   fan.ID,
			Kind:      models.LikeVideo,
			TargetID:  v1.ID,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("like as %s: %v", fan.Username, err)
		}
	}

	got, err := stats.ChannelStats(ctx, channel.ID)
	if err != nil {
		t.Fatalf("channel stats: %v", err)
	}

	want := models.ChannelStats{VideoCount: 2, ViewTotal: 15, SubscriberCount: 2, LikeCount: 2}
	if got != want {
		t.Fatalf("expected %+v, got %+v", want, got)
	}

	empty, err := stats.ChannelStats(ctx, fanA.ID)
	if err != nil {
		t.Fatalf("stats for empty channel: %v", err)
	}
	if empty != (models.ChannelStats{}) {
		t.Fatalf("expected zero stats for empty channel, got %+v", empty)
	}
}

func TestPostgresSubscriptionRepository_SelfSubscriptionRejected(t *testing.T) {
	ctx := context.Background()
	resetDatabase(t)

	users := NewPostgresUserRepository(testPool)
	subs := NewPostgresSubscriptionRepository(testPool)

	user := createTestUser(t, users, "loner")

	_, err := subs.CreateIfAbsent(ctx, models.Subscription{
		ID:           uuid.NewString(),
		SubscriberID: user.ID,
		ChannelID:    user.ID,
		CreatedAt:    time.Now().UTC(),
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected check constraint violation as ErrConflict, got %v", err)
	}
}

func applyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	migrationsDir := filepath.Join("..", "..", "migrations")
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		contents, err := os.ReadFile(filepath.Join(migrationsDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}

		if _, err := pool.Exec(ctx, string(contents)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func resetDatabase(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	conn, err := testPool.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire connection: %v", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "TRUNCATE TABLE playlist_videos, playlists, subscriptions, likes, posts, comments, videos, sessions, users CASCADE"); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, username string) models.User {
	t.Helper()
	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     username + "@example.com",
		Password:  "password-hash",
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create test user: %v", err)
	}
	return user
}

func createTestVideo(t *testing.T, repo *PostgresVideoRepository, ownerID, title string, views int64) models.Video {
	t.Helper()
	video := newTestVideo(ownerID, title, time.Now().UTC())
	video.Views = views
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatalf("create test video: %v", err)
	}
	return video
}

func createTestVideoAt(t *testing.T, repo *PostgresVideoRepository, ownerID, title string, createdAt time.Time) models.Video {
	t.Helper()
	video := newTestVideo(ownerID, title, createdAt)
	if err := repo.Create(context.Background(), video); err != nil {
		t.Fatalf("create test video: %v", err)
	}
	return video
}

func newTestVideo(ownerID, title string, createdAt time.Time) models.Video {
	id := uuid.NewString()
	return models.Video{
		ID:        id,
		OwnerID:   ownerID,
		Title:     title,
		File:      models.MediaRef{Key: "videos/" + id, URL: "https://cdn/videos/" + id},
		Thumbnail: models.MediaRef{Key: "thumbs/" + id, URL: "https://cdn/thumbs/" + id},
		Duration:  123.45,
		Published: true,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func timesClose(a, b time.Time, delta time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= delta
}
