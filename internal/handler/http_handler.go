package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aryanarora07/studybuddy-new/internal/auth"
	"github.com/aryanarora07/studybuddy-new/internal/domain"
	"github.com/aryanarora07/studybuddy-new/internal/presence"
	"github.com/aryanarora07/studybuddy-new/internal/service"
	"github.com/aryanarora07/studybuddy-new/pkg/log"
	"github.com/aryanarora07/studybuddy-new/pkg/response"
)

const maxAvatarSize = 5 << 20 // 5 MiB

// Handler handles the HTTP API: auth, profiles, partner discovery and the
// create/join room boundary in front of the realtime channel.
type Handler struct {
	users          service.UserService
	profiles       service.ProfileService
	partners       service.PartnerService
	rooms          service.RoomService
	presence       presence.Store
	authMiddleware *auth.Middleware
}

// NewHandler creates a new HTTP handler.
func NewHandler(
	users service.UserService,
	profiles service.ProfileService,
	partners service.PartnerService,
	rooms service.RoomService,
	presenceStore presence.Store,
	authMiddleware *auth.Middleware,
) *Handler {
	return &Handler{
		users:          users,
		profiles:       profiles,
		partners:       partners,
		rooms:          rooms,
		presence:       presenceStore,
		authMiddleware: authMiddleware,
	}
}

// RegisterRoutes registers all HTTP routes.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/signup", h.Signup)
			authGroup.POST("/login", h.Login)
			authGroup.POST("/refresh", h.Refresh)
		}

		protected := api.Group("", h.authMiddleware.RequireAuth())
		{
			protected.GET("/profile/:userId", h.GetProfile)
			protected.POST("/profile/update", h.UpdateProfile)
			protected.POST("/profile/avatar", h.UploadAvatar)
			protected.GET("/study-partners", h.ListPartners)
			protected.POST("/rooms", h.CreateOrJoinRoom)
			protected.GET("/rooms/my", h.GetMyRooms)
			protected.POST("/presence/heartbeat", h.Heartbeat)
		}
	}
}

// Signup registers a new account.
func (h *Handler) Signup(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind signup request")
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.users.Signup(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			response.BadRequest(c, "registration failed: email already registered")
			return
		}
		l.Error().Err(err).Msg("signup failed")
		response.InternalError(c, "registration failed")
		return
	}

	response.Created(c, gin.H{
		"message": "User created successfully",
		"userId":  user.ID,
	})
}

// Login authenticates and returns a token pair.
func (h *Handler) Login(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.BadRequest(c, "invalid credentials")
			return
		}
		l.Error().Err(err).Msg("login failed")
		response.InternalError(c, "login failed")
		return
	}

	response.Success(c, result)
}

// Refresh exchanges a refresh token for a new pair.
func (h *Handler) Refresh(c *gin.Context) {
	ctx := c.Request.Context()

	var req domain.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.users.RefreshToken(ctx, &req)
	if err != nil {
		response.Unauthorized(c, "invalid refresh token")
		return
	}

	response.Success(c, result)
}

// GetProfile returns a user's profile.
func (h *Handler) GetProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := c.Param("userId")

	profile, err := h.profiles.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			response.NotFound(c, "profile not found")
			return
		}
		l.Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to get profile")
		response.InternalError(c, "failed to get profile")
		return
	}

	response.Success(c, gin.H{"profile": profile})
}

// UpdateProfile upserts the caller's profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := auth.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req domain.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Warn().Err(err).Msg("failed to bind profile update request")
		response.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profiles.UpdateProfile(ctx, userID, &req)
	if err != nil {
		l.Error().Err(err).Msg("failed to update profile")
		response.InternalError(c, "failed to update profile")
		return
	}

	response.Success(c, gin.H{"profile": profile})
}

// UploadAvatar stores the caller's profile picture.
func (h *Handler) UploadAvatar(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := auth.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	file, header, err := c.Request.FormFile("picture")
	if err != nil {
		response.BadRequest(c, "missing picture file")
		return
	}
	defer file.Close()

	if header.Size > maxAvatarSize {
		response.BadRequest(c, "picture too large")
		return
	}

	url, err := h.profiles.UploadAvatar(ctx, userID, file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedPicture) {
			response.BadRequest(c, "unsupported picture content type")
			return
		}
		l.Error().Err(err).Msg("failed to upload avatar")
		response.InternalError(c, "failed to upload picture")
		return
	}

	response.Success(c, gin.H{"profilePicture": url})
}

// ListPartners returns discoverable study partners with presence.
func (h *Handler) ListPartners(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := auth.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	partners, err := h.partners.ListPartners(ctx, userID, c.Query("major"), c.Query("q"))
	if err != nil {
		l.Error().Err(err).Msg("failed to list study partners")
		response.InternalError(c, "failed to list study partners")
		return
	}

	c.JSON(http.StatusOK, partners)
}

// CreateOrJoinRoom is the authorization boundary before the realtime
// join-room frame: it must succeed first.
func (h *Handler) CreateOrJoinRoom(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := auth.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	var req domain.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	room, err := h.rooms.CreateOrJoin(ctx, userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmptyRoomName) {
			response.BadRequest(c, "room name must not be empty")
			return
		}
		l.Error().Err(err).Msg("failed to create or join room")
		response.InternalError(c, "failed to join room")
		return
	}

	response.Success(c, room)
}

// GetMyRooms returns the caller's joined rooms.
func (h *Handler) GetMyRooms(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)

	userID := auth.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	rooms, err := h.rooms.GetMyRooms(ctx, userID)
	if err != nil {
		l.Error().Err(err).Msg("failed to get rooms")
		response.InternalError(c, "failed to get rooms")
		return
	}

	response.Success(c, gin.H{"rooms": rooms})
}

// Heartbeat refreshes the caller's online presence.
func (h *Handler) Heartbeat(c *gin.Context) {
	ctx := c.Request.Context()

	userID := auth.GetUserID(c)
	if userID == "" {
		response.Unauthorized(c, "unauthorized")
		return
	}

	if err := h.presence.Heartbeat(ctx, userID); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to record heartbeat")
		response.InternalError(c, "failed to record presence")
		return
	}

	response.Success(c, gin.H{"online": true})
}
