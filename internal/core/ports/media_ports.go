package ports

import "context"

// MediaStorage uploads a locally staged file and returns a durable URL.
// Implementations must remove the local file whether the upload succeeds
// or fails.
type MediaStorage interface {
	UploadFile(ctx context.Context, localPath string) (string, error)
}
