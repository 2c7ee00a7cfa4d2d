package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/TurkiHQ/DevConnecter/internal/config"
	"github.com/TurkiHQ/DevConnecter/internal/domain"
	"github.com/TurkiHQ/DevConnecter/internal/log"
	"github.com/TurkiHQ/DevConnecter/internal/metrics"
	"github.com/TurkiHQ/DevConnecter/internal/queue"
	"github.com/TurkiHQ/DevConnecter/internal/repo"
	"github.com/TurkiHQ/DevConnecter/internal/security"
)

// Pinger is what Healthz needs from the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Users      repo.UserRepo
	Profiles   repo.ProfileRepo
	Health     Pinger
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	Limiter    *repo.Limiter
	Events     queue.Publisher
}

func NewHandler(users repo.UserRepo, profiles repo.ProfileRepo, cfg config.Config, limiter *repo.Limiter, events queue.Publisher) *Handler {
	return &Handler{
		Users:      users,
		Profiles:   profiles,
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   time.Duration(cfg.JWTTTLSeconds) * time.Second,
		BcryptCost: cfg.BcryptCost,
		Limiter:    limiter,
		Events:     events,
	}
}

func serverError(c *gin.Context, op string, err error) {
	log.L().Error(op, zap.Error(err), zap.String("request_id", requestID(c)))
	c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
}

// subjectID resolves the authenticated subject set by AuthJWT.
func subjectID(c *gin.Context) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.GetString(authUserKey))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Token is not valid"})
		return primitive.NilObjectID, false
	}
	return oid, true
}

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *registerReq) validate() []fieldError {
	var errs []fieldError
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, fieldError{Msg: "Name is required", Param: "name"})
	}
	if !validEmail(normalizeEmail(in.Email)) {
		errs = append(errs, fieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if len(in.Password) < 6 {
		errs = append(errs, fieldError{Msg: "Please enter a password with 6 or more characters", Param: "password"})
	}
	return errs
}

// Register godoc
// @Summary Register a user and return a token
// @Tags users
// @Accept json
// @Produce json
// @Param payload body registerReq true "name, email, password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]any
// @Router /api/users [post]
func (h *Handler) Register(c *gin.Context) {
	var in registerReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorsBody([]fieldError{{Msg: "Invalid JSON body"}}))
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errorsBody(errs))
		return
	}
	email := normalizeEmail(in.Email)

	existing, err := h.Users.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		serverError(c, "register: lookup", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, invalidCredentials)
		return
	}

	hash, err := security.HashPassword(in.Password, h.BcryptCost)
	if err != nil {
		serverError(c, "register: hash", err)
		return
	}
	u := &domain.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Avatar:   security.GravatarURL(email),
	}
	if err := h.Users.CreateUser(c.Request.Context(), u); err != nil {
		// the unique index is the real uniqueness check: a concurrent
		// registration that lost the race lands here
		if err == repo.ErrEmailTaken {
			c.JSON(http.StatusBadRequest, invalidCredentials)
			return
		}
		serverError(c, "register: insert", err)
		return
	}
	metrics.UsersRegistered.Inc()

	go h.Events.Publish(context.Background(), queue.Exchange, queue.KeyUserRegistered,
		queue.UserRegistered{UserID: u.ID, Email: u.Email, Name: u.Name}, requestID(c))

	tok, err := security.MakeToken(h.JWTSecret, u.ID.Hex(), h.TokenTTL)
	if err != nil {
		serverError(c, "register: token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (in *loginReq) validate() []fieldError {
	var errs []fieldError
	if !validEmail(normalizeEmail(in.Email)) {
		errs = append(errs, fieldError{Msg: "Please include a valid email", Param: "email"})
	}
	if in.Password == "" {
		errs = append(errs, fieldError{Msg: "Password is required", Param: "password"})
	}
	return errs
}

// Login godoc
// @Summary Authenticate and return a token
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginReq true "email, password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]any
// @Router /api/auth [post]
func (h *Handler) Login(c *gin.Context) {
	var in loginReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, errorsBody([]fieldError{{Msg: "Invalid JSON body"}}))
		return
	}
	if errs := in.validate(); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, errorsBody(errs))
		return
	}

	u, err := h.Users.FindUserByEmail(c.Request.Context(), normalizeEmail(in.Email))
	if err != nil {
		serverError(c, "login: lookup", err)
		return
	}
	// unknown email and wrong password answer identically
	if u == nil || !security.CheckPassword(u.Password, in.Password) {
		c.JSON(http.StatusBadRequest, invalidCredentials)
		return
	}

	tok, err := security.MakeToken(h.JWTSecret, u.ID.Hex(), h.TokenTTL)
	if err != nil {
		serverError(c, "login: token", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tok})
}

// Me godoc
// @Summary Current user, password hash never included
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.User
// @Failure 401 {object} map[string]string
// @Router /api/auth [get]
func (h *Handler) Me(c *gin.Context) {
	uid, ok := subjectID(c)
	if !ok {
		return
	}
	u, err := h.Users.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		serverError(c, "me: lookup", err)
		return
	}
	if u == nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.Health != nil {
		if err := h.Health.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
