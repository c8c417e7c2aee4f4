package http

import (
	"crypto/sha256"
	"fmt"
	"net/http"
	"time"

	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/dto"
	"github.com/Miraines/MoonyAndStarry/bookmark-service/internal/adapters/transport/http/middleware"
	appjwt "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/jwt"
	authsvc "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/auth/service"
	bmsvc "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/app/bookmark/service"
	customErrors "github.com/Miraines/MoonyAndStarry/bookmark-service/internal/domain/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	auth      authsvc.Service
	bookmarks bmsvc.Service
	log       *zap.Logger
}

func NewHandler(auth authsvc.Service, bookmarks bmsvc.Service, log *zap.Logger) *Handler {
	return &Handler{
		auth:      auth,
		bookmarks: bookmarks,
		log:       log,
	}
}

// RegisterRoutes wires the auth and bookmark endpoints. authLimit, when
// non-nil, guards the auth group only.
func (h *Handler) RegisterRoutes(r *gin.Engine, tokens appjwt.TokenManager, authLimit gin.HandlerFunc) {
	requireAuth := middleware.RequireAuth(tokens)

	auth := r.Group("/auth")
	if authLimit != nil {
		auth.Use(authLimit)
	}
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.POST("/logout-all", requireAuth, h.LogoutAll)

	bookmarks := r.Group("/bookmarks", requireAuth)
	bookmarks.POST("", h.CreateBookmark)
	bookmarks.GET("", h.ListBookmarks)
	bookmarks.DELETE("/:id", h.DeleteBookmark)

	r.GET("/health", h.Health)
}

func (h *Handler) Signup(c *gin.Context) {
	var body dto.SignupDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/auth/signup",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	pair, err := h.auth.Register(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var body dto.LoginDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.log.Info("/auth/login",
		zap.String("user", fmt.Sprintf("%x", sha256.Sum256([]byte(body.Email)))),
	)

	pair, err := h.auth.Login(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

func (h *Handler) Refresh(c *gin.Context) {
	// A missing or empty body means a missing token, which the service
	// reports as unauthenticated rather than a bind failure.
	var body dto.RefreshDTO
	_ = c.ShouldBindJSON(&body)

	accessToken, err := h.auth.Refresh(c.Request.Context(), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"accessToken": accessToken})
}

func (h *Handler) Logout(c *gin.Context) {
	var body dto.LogoutDTO
	_ = c.ShouldBindJSON(&body)
	h.log.Info("/auth/logout")

	if err := h.auth.Logout(c.Request.Context(), body); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) LogoutAll(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	h.log.Info("/auth/logout-all")

	if err := h.auth.LogoutAll(c.Request.Context(), userID); err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out everywhere"})
}

func (h *Handler) CreateBookmark(c *gin.Context) {
	var body dto.CreateBookmarkDTO
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bookmark, err := h.bookmarks.Create(c.Request.Context(), c.GetString(middleware.ContextUserID), body)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookmark)
}

func (h *Handler) ListBookmarks(c *gin.Context) {
	list, err := h.bookmarks.List(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) DeleteBookmark(c *gin.Context) {
	err := h.bookmarks.Delete(c.Request.Context(), c.GetString(middleware.ContextUserID), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bookmark deleted"})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().Unix()})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	switch {
	case customErrors.IsInvalidArgument(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsAlreadyExists(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsInvalidCredentials(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case customErrors.IsUnauthenticated(err):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
	case customErrors.IsInvalidToken(err):
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid refresh token"})
	case customErrors.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found or unauthorized"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
