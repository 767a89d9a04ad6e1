package article

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/blogapi/service/internal/middleware"
	"github.com/blogapi/service/internal/response"
)

const maxTitleLength = 200

// Handler holds HTTP handlers for article endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates a new article Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type articleForm struct {
	Title string `json:"title" example:"My first post"`
	Body  string `json:"body"  example:"Hello, world."`
}

func (f *articleForm) validate() string {
	f.Title = strings.TrimSpace(f.Title)
	if f.Title == "" {
		return "title is required"
	}
	if len(f.Title) > maxTitleLength {
		return "title is too long"
	}
	if f.Body == "" {
		return "body is required"
	}
	return ""
}

// List godoc
//
//	@Summary		List articles
//	@Description	Returns all articles, newest first.
//	@Tags			articles
//	@Produce		json
//	@Success		200	{object}	response.Envelope{data=[]Article}
//	@Failure		500	{object}	response.Envelope
//	@Router			/articles [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.svc.List(r.Context())
	if err != nil {
		response.InternalError(w)
		return
	}
	response.OK(w, articles)
}

// Get godoc
//
//	@Summary		Get article
//	@Description	Returns a single article by id.
//	@Tags			articles
//	@Produce		json
//	@Param			id	path		int	true	"Article ID"
//	@Success		200	{object}	response.Envelope{data=Article}
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/articles/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	a, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.NotFound(w, "article not found")
			return
		}
		response.InternalError(w)
		return
	}
	response.OK(w, a)
}

// Create godoc
//
//	@Summary		Create article
//	@Description	Publishes a new article owned by the authenticated user.
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body		articleForm	true	"Article content"
//	@Success		201		{object}	response.Envelope{data=Article}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/articles [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var form articleForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if msg := form.validate(); msg != "" {
		response.BadRequest(w, msg)
		return
	}

	a, err := h.svc.Create(r.Context(), callerID, form.Title, form.Body)
	if err != nil {
		response.InternalError(w)
		return
	}
	response.Created(w, a)
}

// Update godoc
//
//	@Summary		Update article
//	@Description	Replaces title and body. Only the article's author may update it; other callers receive 404.
//	@Tags			articles
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id		path		int			true	"Article ID"
//	@Param			request	body		articleForm	true	"New article content"
//	@Success		200		{object}	response.Envelope{data=Article}
//	@Failure		400		{object}	response.Envelope
//	@Failure		401		{object}	response.Envelope
//	@Failure		404		{object}	response.Envelope
//	@Failure		500		{object}	response.Envelope
//	@Router			/articles/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	var form articleForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}
	if msg := form.validate(); msg != "" {
		response.BadRequest(w, msg)
		return
	}

	a, err := h.svc.Update(r.Context(), callerID, id, form.Title, form.Body)
	if err != nil {
		writeMutationError(w, err)
		return
	}
	response.OK(w, a)
}

// Delete godoc
//
//	@Summary		Delete article
//	@Description	Deletes the article. Only the article's author may delete it; other callers receive 404.
//	@Tags			articles
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		int	true	"Article ID"
//	@Success		200	{object}	response.Envelope
//	@Failure		401	{object}	response.Envelope
//	@Failure		404	{object}	response.Envelope
//	@Failure		500	{object}	response.Envelope
//	@Router			/articles/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	callerID, ok := middleware.CallerID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	id, ok := articleID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), callerID, id); err != nil {
		writeMutationError(w, err)
		return
	}
	response.OK(w, map[string]bool{"deleted": true})
}

// writeMutationError maps service errors to HTTP. Owner mismatches answer 404
// exactly like missing articles, so the API never confirms that somebody
// else's article id exists.
func writeMutationError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNotOwner) {
		response.NotFound(w, "article not found")
		return
	}
	response.InternalError(w)
}

// articleID parses the {id} route parameter, answering 404 for garbage.
func articleID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.NotFound(w, "article not found")
		return 0, false
	}
	return id, true
}
