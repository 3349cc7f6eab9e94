// Package common contains shared constants and sentinel errors used across
// userhub components.
package common

const (
	// AccessTokenFieldName is the JSON field carrying the issued token in the
	// login response.
	AccessTokenFieldName = "access_token"

	// AuthorizationHeaderName carries "Bearer <token>" on authenticated requests.
	AuthorizationHeaderName = "Authorization"

	// RequestIDHeaderName is honored on input and echoed on every response.
	RequestIDHeaderName = "X-Request-ID"

	// ProfilePicturesFolder is the media-host folder profile pictures go to.
	ProfilePicturesFolder = "profile_pictures"
)
