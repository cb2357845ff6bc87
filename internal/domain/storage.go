package domain

import "context"

// BlobStore stores binary attachments and hands out public references to them.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
	PublicURLFor(key string) string
}

// Dispatcher opens a handoff link in the host environment. Whether the target
// actually opened is not observable.
type Dispatcher interface {
	Open(ctx context.Context, target string)
}
