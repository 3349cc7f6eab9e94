package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/dbx"
	"github.com/dmitrijs2005/userhub/internal/server/media"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	usersrepo "github.com/dmitrijs2005/userhub/internal/server/repositories/users"
	"github.com/google/uuid"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

// memUsersRepo is an in-memory users.Repository with optional injected errors.
type memUsersRepo struct {
	mu      sync.Mutex
	byID    map[string]*models.User
	byLogin map[string]string

	getByLoginErr error
	getByIDErr    error
	createErr     error
	updateErr     error
	updates       int
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{byID: map[string]*models.User{}, byLogin: map[string]string{}}
}

var _ usersrepo.Repository = (*memUsersRepo)(nil)

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byLogin[u.UserName]; ok {
		return nil, common.ErrDuplicateUsername
	}
	c := *u
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.byID[c.ID] = &c
	r.byLogin[c.UserName] = c.ID
	out := c
	return &out, nil
}

func (r *memUsersRepo) GetUserByLogin(ctx context.Context, login string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getByLoginErr != nil {
		return nil, r.getByLoginErr
	}
	id, ok := r.byLogin[login]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *r.byID[id]
	return &c, nil
}

func (r *memUsersRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getByIDErr != nil {
		return nil, r.getByIDErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	c.PasswordHash = ""
	return &c, nil
}

func (r *memUsersRepo) UpdateProfilePicture(ctx context.Context, id string, url string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.ProfilePictureURL = &url
	u.UpdatedAt = time.Now()
	r.updates++
	c := *u
	c.PasswordHash = ""
	return &c, nil
}

type fakeRepoManager struct {
	u *memUsersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository      { return m.u }

// plainHasher "hashes" by prefixing, which keeps service tests fast.
type plainHasher struct {
	hashErr   error
	verifyErr error
}

func (h plainHasher) Hash(ctx context.Context, plain string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + plain, nil
}

func (h plainHasher) Verify(ctx context.Context, plain, hash string) (bool, error) {
	if h.verifyErr != nil {
		return false, h.verifyErr
	}
	return hash == "hashed:"+plain, nil
}

type fakeUploader struct {
	res    *media.Result
	err    error
	calls  int
	folder string
	data   []byte
}

func (f *fakeUploader) Upload(ctx context.Context, data []byte, contentType, folder string) (*media.Result, error) {
	f.calls++
	f.folder = folder
	f.data = data
	return f.res, f.err
}

type fakeIssuer struct {
	err     error
	subject string
	name    string
}

func (f *fakeIssuer) Issue(userID, username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.subject, f.name = userID, username
	return "token-for-" + username, nil
}

var errUploadRejected = errors.New("AccessDenied: denied")
