package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"

	"github.com/blogapi/service/internal/response"
	"github.com/blogapi/service/internal/user"
)

// usernameRegex matches 3-32 character usernames of letters, digits and underscores.
var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{3,32}$`)

const minPasswordLength = 8

// Handler holds HTTP handlers for auth endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new auth Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type credentialsRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"correct horse battery staple"`
}

type authData struct {
	Token string   `json:"token" example:"eyJhbGci..."`
	User  userBody `json:"user"`
}

type userBody struct {
	ID       int64  `json:"id"       example:"1"`
	Username string `json:"username" example:"alice"`
}

// Register godoc
//
//	@Summary		Register
//	@Description	Creates a new account and returns a JWT token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credentialsRequest	true	"Username and password"
//	@Success		201		{object}	response.Envelope{data=authData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		409		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if !usernameRegex.MatchString(req.Username) {
		response.BadRequest(w, "username must be 3-32 characters of letters, digits or underscores")
		return
	}
	if len(req.Password) < minPasswordLength {
		response.BadRequest(w, "password must be at least 8 characters")
		return
	}

	token, u, err := h.svc.Register(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			response.Conflict(w, "username already taken")
			return
		}
		response.InternalError(w)
		return
	}

	response.Created(w, authData{Token: token, User: body(u)})
}

// Login godoc
//
//	@Summary		Login
//	@Description	Verifies credentials and returns a JWT token.
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		credentialsRequest	true	"Username and password"
//	@Success		200		{object}	response.Envelope{data=authData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		response.BadRequest(w, "username and password are required")
		return
	}

	token, u, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrAccountDisabled) {
			response.Unauthorized(w, "invalid username or password")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, authData{Token: token, User: body(u)})
}

func body(u *user.User) userBody {
	return userBody{ID: u.ID, Username: u.Username}
}
