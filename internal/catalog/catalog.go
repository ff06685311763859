// Package catalog implements the content services: videos, comments, posts
// and playlists. Each service validates input, enforces ownership and drives
// its repository; read paths are expressed as pipeline stage plans handed to
// the store executor.
package catalog

import (
	"errors"
	"time"

	"github.com/streamhive/backend/internal/faults"
	"github.com/streamhive/backend/internal/ids"
	"github.com/streamhive/backend/internal/repositories"
)

// requireID rejects identifiers that are empty or not well formed before any
// store call is made.
func requireID(label, id string) error {
	if err := ids.Validate(id); err != nil {
		return faults.InvalidInput("%s id is not a valid identifier", label)
	}
	return nil
}

// requireOwner enforces that only the owner of a record may mutate it.
func requireOwner(actorID, ownerID, label string) error {
	if actorID != ownerID {
		return faults.Forbidden("only the owner may modify this %s", label)
	}
	return nil
}

// storeFault maps repository sentinels onto the service failure vocabulary.
func storeFault(op, label string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return faults.NotFound("%s not found", label)
	case errors.Is(err, repositories.ErrConflict):
		return faults.Conflict("%s already exists", label)
	default:
		return faults.Store(op, err)
	}
}

func utcNow() time.Time { return time.Now().UTC() }
