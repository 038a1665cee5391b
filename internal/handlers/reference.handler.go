package handlers

import (
	"context"

	"github.com/acolin/asso-ledger/internal/model"
	xhttp "github.com/acolin/asso-ledger/pkg/xhttp"
)

type ArtistService interface {
	Create(ctx context.Context, actor model.Actor, p model.ArtistCreateRequest) (*model.Artist, error)
	Update(ctx context.Context, actor model.Actor, id int64, p model.ArtistCreateRequest) (*model.Artist, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
	Get(ctx context.Context, id int64) (*model.Artist, error)
	List(ctx context.Context) ([]*model.Artist, error)
}

type ProjectService interface {
	Create(ctx context.Context, actor model.Actor, p model.ProjectCreateRequest) (*model.Project, error)
	Update(ctx context.Context, actor model.Actor, id int64, p model.ProjectCreateRequest) (*model.Project, error)
	Delete(ctx context.Context, actor model.Actor, id int64) error
	Get(ctx context.Context, id int64) (*model.Project, error)
	List(ctx context.Context) ([]*model.Project, error)
}

type ReferenceHandler struct {
	artists  ArtistService
	projects ProjectService
}

func NewReferenceHandler(artists ArtistService, projects ProjectService) *ReferenceHandler {
	return &ReferenceHandler{
		artists:  artists,
		projects: projects,
	}
}

func RegisterReferenceRoutes(e *xhttp.RouterGroup, h *ReferenceHandler, auth Authenticator, limiter WriteLimiter) {
	e.GET("/artists", RequireAuth(auth, h.ListArtists))
	e.GET("/artists/{id}", RequireAuth(auth, h.GetArtist))
	e.POST("/artists", RequireAuth(auth, RateLimitWrites(limiter, h.CreateArtist)))
	e.PUT("/artists/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.UpdateArtist)))
	e.DELETE("/artists/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.DeleteArtist)))

	e.GET("/projects", RequireAuth(auth, h.ListProjects))
	e.GET("/projects/{id}", RequireAuth(auth, h.GetProject))
	e.POST("/projects", RequireAuth(auth, RateLimitWrites(limiter, h.CreateProject)))
	e.PUT("/projects/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.UpdateProject)))
	e.DELETE("/projects/{id}", RequireAuth(auth, RateLimitWrites(limiter, h.DeleteProject)))
}

type artistRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type projectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *ReferenceHandler) CreateArtist(ctx *xhttp.RequestCtx) {
	var req artistRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	artist, err := h.artists.Create(ctx, actor(ctx), model.ArtistCreateRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, artist)
}

func (h *ReferenceHandler) UpdateArtist(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req artistRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	artist, err := h.artists.Update(ctx, actor(ctx), id, model.ArtistCreateRequest{Name: req.Name, Email: req.Email})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, artist)
}

func (h *ReferenceHandler) DeleteArtist(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.artists.Delete(ctx, actor(ctx), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(204)
}

func (h *ReferenceHandler) GetArtist(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	artist, err := h.artists.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, artist)
}

func (h *ReferenceHandler) ListArtists(ctx *xhttp.RequestCtx) {
	items, err := h.artists.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]any{"items": items})
}

func (h *ReferenceHandler) CreateProject(ctx *xhttp.RequestCtx) {
	var req projectRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	project, err := h.projects.Create(ctx, actor(ctx), model.ProjectCreateRequest{Name: req.Name, Description: req.Description})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 201, project)
}

func (h *ReferenceHandler) UpdateProject(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	var req projectRequest
	if err := readJSON(ctx, &req); err != nil {
		writeError(ctx, 400, "invalid JSON: "+err.Error())
		return
	}
	project, err := h.projects.Update(ctx, actor(ctx), id, model.ProjectCreateRequest{Name: req.Name, Description: req.Description})
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, project)
}

func (h *ReferenceHandler) DeleteProject(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	if err := h.projects.Delete(ctx, actor(ctx), id); err != nil {
		writeServiceError(ctx, err)
		return
	}
	ctx.Response.SetStatusCode(204)
}

func (h *ReferenceHandler) GetProject(ctx *xhttp.RequestCtx) {
	id, err := pathInt64(ctx, "id")
	if err != nil {
		writeError(ctx, 400, "invalid id")
		return
	}
	project, err := h.projects.Get(ctx, id)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, project)
}

func (h *ReferenceHandler) ListProjects(ctx *xhttp.RequestCtx) {
	items, err := h.projects.List(ctx)
	if err != nil {
		writeServiceError(ctx, err)
		return
	}
	writeJSON(ctx, 200, map[string]any{"items": items})
}
