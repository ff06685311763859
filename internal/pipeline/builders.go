package pipeline

// Builders compose the stage list for every read use case. Each builder is a
// pure function of its parameters: the same inputs always yield the same
// sequence.

// Field names shared by the builders. These are logical record fields; the
// store executor maps them onto its own schema.
const (
	FieldOwner       = "owner"
	FieldChannel     = "channel"
	FieldSubscriber  = "subscriber"
	FieldVideo       = "video"
	FieldID          = "id"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCreatedAt   = "createdAt"
	FieldViews       = "views"
	FieldDuration    = "duration"
)

// DeriveThumbnail names the playlist display-thumbnail derivation: the
// thumbnail of the most recently created member video, null when empty.
const DeriveThumbnail = "playlistThumbnail"

// ownerProjection is the trimmed user view embedded everywhere an owner is
// hydrated. The credential hash is never part of any projection.
var ownerProjection = []string{"id", "username", "fullName", "avatar"}

// VideosByOwner lists an owner's videos, optionally narrowed by a free-text
// query over title and description and ordered by an explicit sort key.
// Without a requested sort the newest videos come first, so the listing is
// stable across calls.
func VideosByOwner(ownerID, query, sortKey string, descending bool) []Stage {
	stages := []Stage{
		Match{Field: FieldOwner, Value: ownerID},
	}
	if query != "" {
		stages = append(stages, Search{Term: query, Fields: []string{FieldTitle, FieldDescription}})
	}
	if sortKey != "" {
		stages = append(stages, Sort{Key: sortKey, Descending: descending})
	} else {
		stages = append(stages, Sort{Key: FieldCreatedAt, Descending: true})
	}
	stages = append(stages,
		Hydrate{Field: FieldOwner, From: "users"},
		Project{Fields: []string{"video", "owner"}},
	)
	return stages
}

// VideoByID fetches a single video with its owner hydrated.
func VideoByID(videoID string) []Stage {
	return []Stage{
		Match{Field: FieldID, Value: videoID},
		Hydrate{Field: FieldOwner, From: "users"},
		Project{Fields: []string{"video", "owner"}},
	}
}

// CommentsForVideo lists a video's comments, newest first, owners hydrated.
func CommentsForVideo(videoID string) []Stage {
	return []Stage{
		Match{Field: FieldVideo, Value: videoID},
		Sort{Key: FieldCreatedAt, Descending: true},
		Hydrate{Field: FieldOwner, From: "users"},
		Project{Fields: []string{"comment", "owner"}},
	}
}

// PostsByOwner lists a user's posts, newest first.
func PostsByOwner(ownerID string) []Stage {
	return []Stage{
		Match{Field: FieldOwner, Value: ownerID},
		Sort{Key: FieldCreatedAt, Descending: true},
		Project{Fields: []string{"post"}},
	}
}

// LikedVideos lists the videos an actor has liked, each hydrated with the
// video record and, nested within it, the video's owner.
func LikedVideos(actorID string) []Stage {
	return []Stage{
		Match{Field: FieldOwner, Value: actorID},
		Sort{Key: FieldCreatedAt, Descending: true},
		Hydrate{Field: FieldVideo, From: "videos"},
		Hydrate{Field: "video.owner", From: "users"},
		Project{Fields: []string{"video", "video.owner"}},
	}
}

// PlaylistsByOwner lists a user's playlists with the derived display
// thumbnail. The derivation must run after member hydration.
func PlaylistsByOwner(ownerID string) []Stage {
	return []Stage{
		Match{Field: FieldOwner, Value: ownerID},
		Sort{Key: FieldCreatedAt, Descending: true},
		Hydrate{Field: "videos", From: "videos"},
		Derive{Name: DeriveThumbnail},
		Project{Fields: []string{"id", "name", "description", DeriveThumbnail}},
	}
}

// PlaylistByID fetches one playlist with member videos hydrated, each member
// carrying its own hydrated owner.
func PlaylistByID(playlistID string) []Stage {
	return []Stage{
		Match{Field: FieldID, Value: playlistID},
		Hydrate{Field: "videos", From: "videos"},
		Hydrate{Field: "videos.owner", From: "users"},
		Project{Fields: []string{"playlist", "videos", "videos.owner"}},
	}
}

// Subscribers lists the users subscribed to a channel.
func Subscribers(channelID string) []Stage {
	return []Stage{
		Match{Field: FieldChannel, Value: channelID},
		Sort{Key: FieldCreatedAt, Descending: true},
		Hydrate{Field: FieldSubscriber, From: "users"},
		Project{Fields: ownerProjection},
	}
}

// SubscribedChannels lists the channels a user has subscribed to.
func SubscribedChannels(subscriberID string) []Stage {
	return []Stage{
		Match{Field: FieldSubscriber, Value: subscriberID},
		Sort{Key: FieldCreatedAt, Descending: true},
		Hydrate{Field: FieldChannel, From: "users"},
		Project{Fields: ownerProjection},
	}
}
