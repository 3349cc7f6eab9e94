package rest

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/userhub/internal/common"
	"github.com/dmitrijs2005/userhub/internal/logging"
	"github.com/dmitrijs2005/userhub/internal/server/models"
	"github.com/gin-gonic/gin"
)

// ProfileImageField is the multipart field carrying the picture.
const ProfileImageField = "profileImage"

// UserDirectory is satisfied by services.UserService.
type UserDirectory interface {
	Create(ctx context.Context, username, password string) (*models.User, error)
	UpdateProfilePicture(ctx context.Context, userID string, data []byte, contentType string) (*models.User, error)
}

// Authenticator is satisfied by services.AuthService.
type Authenticator interface {
	SignIn(ctx context.Context, username, password string) (string, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Handler struct {
	users          UserDirectory
	auth           Authenticator
	db             Pinger
	maxUploadBytes int64
	logger         logging.Logger
}

func NewHandler(users UserDirectory, auth Authenticator, db Pinger, maxUploadBytes int64, logger logging.Logger) *Handler {
	return &Handler{
		users:          users,
		auth:           auth,
		db:             db,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username" binding:"required,nowhitespace"`
	Password string `json:"password" binding:"required,min=6"`
}

type userResponse struct {
	ID                string    `json:"id"`
	Username          string    `json:"username"`
	ProfilePictureURL *string   `json:"profilePictureUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:                u.ID,
		Username:          u.UserName,
		ProfilePictureURL: u.ProfilePictureURL,
		CreatedAt:         u.CreatedAt,
		UpdatedAt:         u.UpdatedAt,
	}
}

// Login handles POST /auth/login. Missing fields are not rejected here; they
// fail as invalid credentials.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithMessage(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	token, err := h.auth.SignIn(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{common.AccessTokenFieldName: token})
}

// Profile handles GET /auth/profile and echoes the verified token claims.
func (h *Handler) Profile(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, h.logger, common.ErrInvalidToken)
		return
	}
	c.JSON(http.StatusOK, claims)
}

// Register handles POST /users/register.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if msg, ok := validationMessage(err); ok {
			abortWithMessage(c, http.StatusBadRequest, msg)
			return
		}
		abortWithMessage(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	user, err := h.users.Create(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// UpdateProfilePicture handles PATCH /users/profile-picture.
func (h *Handler) UpdateProfilePicture(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		respondError(c, h.logger, common.ErrInvalidToken)
		return
	}

	// room for the multipart envelope around the file
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+64<<10)

	fh, err := c.FormFile(ProfileImageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithMessage(c, http.StatusBadRequest, "File too large")
			return
		}
		abortWithMessage(c, http.StatusBadRequest, "File is required in field "+ProfileImageField)
		return
	}
	if fh.Size > h.maxUploadBytes {
		abortWithMessage(c, http.StatusBadRequest, "File too large")
		return
	}

	f, err := fh.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes+1))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	if int64(len(data)) > h.maxUploadBytes {
		abortWithMessage(c, http.StatusBadRequest, "File too large")
		return
	}
	if len(data) == 0 {
		abortWithMessage(c, http.StatusBadRequest, "File is required in field "+ProfileImageField)
		return
	}

	user, err := h.users.UpdateProfilePicture(c.Request.Context(), claims.Subject, data, http.DetectContentType(data))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.Error(ctx, "health check failed", "error", err.Error())
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK"})
}
