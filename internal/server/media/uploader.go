// Package media stores binary assets on an external S3-compatible host and
// hands back durable URLs.
package media

import "context"

// Result is what the host answered. On success SecureURL is set; a well-formed
// rejection from the host sets Err instead.
type Result struct {
	SecureURL string
	Err       error
}

// Uploader stores data under folder. A transport fault is returned as an
// error; a host-side rejection comes back as a Result with Err set.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (*Result, error)
}
