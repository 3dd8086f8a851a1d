package ports

import "context"

// ArtifactMirror copies finished artifacts to object storage.
type ArtifactMirror interface {
	ObjectKey(workspaceID, name string) string
	Publish(ctx context.Context, a *Artifact) (string, error)
}
