package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/blogapi/service/internal/middleware"
	"github.com/blogapi/service/internal/response"
)

// Handler holds HTTP handlers for user-related endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new user Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type uploadURLRequest struct {
	FileName      string `json:"fileName"      example:"me.png"`
	ContentType   string `json:"contentType"   example:"image/png"`
	ContentLength int64  `json:"contentLength" example:"51200"`
}

type confirmImageRequest struct {
	ImagePath string `json:"imagePath" example:"users/1/profile-image.png"`
}

type profileData struct {
	ID        int64  `json:"id"        example:"1"`
	Username  string `json:"username"  example:"alice"`
	ImageURL  string `json:"imageUrl,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

func (h *Handler) profile(u *User) profileData {
	p := profileData{ID: u.ID, Username: u.Username, ImageURL: h.svc.ImageURL(u)}
	if u.ImagePath != nil {
		p.ImagePath = *u.ImagePath
	}
	return p
}

// GetMe godoc
//
//	@Summary		Get current user
//	@Description	Returns the profile of the currently authenticated user.
//	@Tags			users
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	response.Envelope{data=profileData}
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	u, err := h.svc.GetByID(r.Context(), callerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "user not found")
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, h.profile(u))
}

// CheckUsername godoc
//
//	@Summary		Check username availability
//	@Description	Returns whether the given username is still free.
//	@Tags			users
//	@Produce		json
//	@Param			username	query		string	true	"Username to check"
//	@Success		200			{object}	response.Envelope
//	@Failure		400			{object}	response.Envelope
//	@Failure		500			{object}	response.Envelope
//	@Router			/users/username-check [get]
func (h *Handler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		response.BadRequest(w, "username query parameter is required")
		return
	}

	taken, err := h.svc.ExistsUsername(r.Context(), username)
	if err != nil {
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]bool{"available": !taken})
}

// CreateUploadURL godoc
//
//	@Summary		Request a profile-image upload URL
//	@Description	Returns a short-lived presigned PUT URL bound to the declared content type and size. The client uploads directly to the object store and then confirms with PUT /users/me/profile-image.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		uploadURLRequest	true	"Declared file metadata"
//	@Success		200		{object}	response.Envelope{data=UploadGrant}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/users/me/profile-image/upload-url [post]
func (h *Handler) CreateUploadURL(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req uploadURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	grant, err := h.svc.CreateUploadGrant(r.Context(), callerID, req.FileName, req.ContentType, req.ContentLength)
	if err != nil {
		if errors.Is(err, ErrInvalidUpload) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, grant)
}

// ConfirmProfileImage godoc
//
//	@Summary		Confirm an uploaded profile image
//	@Description	Records the uploaded image as the caller's profile image. Only the caller's own derived image path is accepted, and the object must exist in the store.
//	@Tags			users
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		confirmImageRequest	true	"Image path returned by the upload-url endpoint"
//	@Success		200		{object}	response.Envelope{data=profileData}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/users/me/profile-image [put]
func (h *Handler) ConfirmProfileImage(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var req confirmImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	u, err := h.svc.ConfirmProfileImage(r.Context(), callerID, req.ImagePath)
	if err != nil {
		if errors.Is(err, ErrInvalidUpload) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w)
		return
	}

	response.OK(w, h.profile(u))
}
