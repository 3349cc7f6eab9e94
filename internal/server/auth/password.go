package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/userhub/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher hashes and verifies passwords with bcrypt. The work runs on
// its own goroutine so the caller can give up when ctx is done.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

type hashResult struct {
	hash []byte
	err  error
}

func (h *BcryptHasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ch := make(chan hashResult, 1)
	go func() {
		b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
		ch <- hashResult{hash: b, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			if errors.Is(r.err, bcrypt.ErrPasswordTooLong) {
				return "", fmt.Errorf("%w: password exceeds 72 bytes", common.ErrValidationFailed)
			}
			return "", fmt.Errorf("hash password: %w", r.err)
		}
		return string(r.hash), nil
	}
}

// Verify reports whether plain matches hash. A mismatch is (false, nil); a
// malformed hash is an error.
func (h *BcryptHasher) Verify(ctx context.Context, plain, hash string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	ch := make(chan error, 1)
	go func() {
		ch <- bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	}()

	select {
	case <-ctx.Done():
		return false, ctx.Err()
	case err := <-ch:
		switch {
		case err == nil:
			return true, nil
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			return false, nil
		default:
			return false, fmt.Errorf("verify password: %w", err)
		}
	}
}
