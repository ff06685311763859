package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/models"
)

func TestPlaylistServiceCreate(t *testing.T) {
	videos := newFakeVideoRepo()
	repo := newFakePlaylistRepo(videos)
	svc := NewPlaylistService(repo, videos)

	owner := ids.New()
	playlist, err := svc.Create(context.Background(), owner, "  Watch later  ", "queue")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if playlist.Name != "Watch later" {
		t.Fatalf("name = %q, want trimmed", playlist.Name)
	}

	if _, err := svc.Create(context.Background(), owner, "   ", ""); !faults.Is(err, faults.KindInvalidInput) {
		t.Fatalf("expected invalid input fault, got %v", err)
	}
}

func TestPlaylistServiceAddVideo(t *testing.T) {
	videos := newFakeVideoRepo()
	repo := newFakePlaylistRepo(videos)
	svc := NewPlaylistService(repo, videos)

	owner := ids.New()
	playlistID := ids.New()
	repo.playlists[playlistID] = models.Playlist{ID: playlistID, OwnerID: owner}

	videoID := ids.New()
	videos.videos[videoID] = models.Video{ID: videoID, OwnerID: ids.New()}

	if err := svc.AddVideo(context.Background(), owner, playlistID, videoID); err != nil {
		t.Fatalf("AddVideo returned error: %v", err)
	}
	if err := svc.AddVideo(context.Background(), owner, playlistID, videoID); !faults.Is(err, faults.KindConflict) {
		t.Fatalf("expected conflict fault for duplicate membership, got %v", err)
	}
	if err := svc.AddVideo(context.Background(), ids.New(), playlistID, videoID); !faults.Is(err, faults.KindForbidden) {
		t.Fatalf("expected forbidden fault for non-owner, got %v", err)
	}
	if err := svc.AddVideo(context.Background(), owner, playlistID, ids.New()); !faults.Is(err, faults.KindNotFound) {
		t.Fatalf("expected not found fault for missing video, got %v", err)
	}
}

func TestPlaylistServiceRemoveVideo(t *testing.T) {
	videos := newFakeVideoRepo()
	repo := newFakePlaylistRepo(videos)
	svc := NewPlaylistService(repo, videos)

	owner := ids.New()
	playlistID := ids.New()
	repo.playlists[playlistID] = models.Playlist{ID: playlistID, OwnerID: owner}

	videoID := ids.New()
	videos.videos[videoID] = models.Video{ID: videoID}
	repo.members[playlistID] = []membership{{videoID: videoID, addedAt: time.Now()}}

	if err := svc.RemoveVideo(context.Background(), owner, playlistID, videoID); err != nil {
		t.Fatalf("RemoveVideo returned error: %v", err)
	}
	if err := svc.RemoveVideo(context.Background(), owner, playlistID, videoID); !faults.Is(err, faults.KindNotFound) {
		t.Fatalf("expected not found fault for non-member, got %v", err)
	}
}

func TestPlaylistServiceListThumbnailDerivation(t *testing.T) {
	videos := newFakeVideoRepo()
	repo := newFakePlaylistRepo(videos)
	svc := NewPlaylistService(repo, videos)

	owner := ids.New()
	full := ids.New()
	empty := ids.New()
	repo.playlists[full] = models.Playlist{ID: full, OwnerID: owner, Name: "full"}
	repo.playlists[empty] = models.Playlist{ID: empty, OwnerID: owner, Name: "empty"}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	older := ids.New()
	newer := ids.New()
	videos.videos[older] = models.Video{ID: older, CreatedAt: base, Thumbnail: models.MediaRef{Key: "thumbs/old"}}
	videos.videos[newer] = models.Video{ID: newer, CreatedAt: base.Add(time.Hour), Thumbnail: models.MediaRef{Key: "thumbs/new"}}
	repo.members[full] = []membership{{videoID: older}, {videoID: newer}}

	summaries, err := svc.ListByOwner(context.Background(), owner)
	if err != nil {
		t.Fatalf("ListByOwner returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("len(summaries) = %d, want 2", len(summaries))
	}

	byID := map[string]models.PlaylistSummary{}
	for _, s := range summaries {
		byID[s.ID] = s
	}
	if thumb := byID[full].Thumbnail; thumb == nil || thumb.Key != "thumbs/new" {
		t.Fatalf("full playlist thumbnail = %+v, want newest member's", thumb)
	}
	if byID[empty].Thumbnail != nil {
		t.Fatal("empty playlist must have nil thumbnail")
	}
}

func TestPlaylistServiceGet(t *testing.T) {
	videos := newFakeVideoRepo()
	repo := newFakePlaylistRepo(videos)
	svc := NewPlaylistService(repo, videos)

	owner := ids.New()
	playlistID := ids.New()
	repo.playlists[playlistID] = models.Playlist{ID: playlistID, OwnerID: owner, Name: "mix"}

	videoID := ids.New()
	videos.videos[videoID] = models.Video{ID: videoID, OwnerID: owner}
	repo.members[playlistID] = []membership{{videoID: videoID}}

	view, err := svc.Get(context.Background(), playlistID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(view.Videos) != 1 || view.Videos[0].ID != videoID {
		t.Fatalf("view videos = %+v", view.Videos)
	}

	if _, err := svc.Get(context.Background(), ids.New()); !faults.Is(err, faults.KindNotFound) {
		t.Fatalf("expected not found fault, got %v", err)
	}
}

func TestPlaylistServiceDeleteOwnership(t *testing.T) {
	videos := newFakeVideoRepo()
	repo := newFakePlaylistRepo(videos)
	svc := NewPlaylistService(repo, videos)

	owner := ids.New()
	playlistID := ids.New()
	repo.playlists[playlistID] = models.Playlist{ID: playlistID, OwnerID: owner}

	if err := svc.Delete(context.Background(), ids.New(), playlistID); !faults.Is(err, faults.KindForbidden) {
		t.Fatalf("expected forbidden fault, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, playlistID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, ok := repo.playlists[playlistID]; ok {
		t.Fatal("playlist should be gone")
	}
}
