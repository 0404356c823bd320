package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/weiawesome/wes-io-live/id-service/internal/generator"
	"github.com/weiawesome/wes-io-live/id-service/internal/service"
	"github.com/weiawesome/wes-io-live/pkg/log"
	"github.com/weiawesome/wes-io-live/pkg/response"
)

// GenerateRequest is the optional body of POST /api/v1/ids/:kind.
// A zero Count generates a single id.
type GenerateRequest struct {
	Type   *int   `json:"type"`
	Format string `json:"format"`
	Count  int    `json:"count"`
}

// IDRequest is the body of the parse and validate endpoints.
type IDRequest struct {
	ID string `json:"id" binding:"required"`
}

// GenerateResponse carries either a single id or a batch.
type GenerateResponse struct {
	Kind string   `json:"kind"`
	ID   string   `json:"id,omitempty"`
	IDs  []string `json:"ids,omitempty"`
}

// ValidateResponse is returned by the validate endpoint.
type ValidateResponse struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

// Handler handles HTTP requests for the id service.
type Handler struct {
	idService service.IDService
}

// NewHandler creates a new HTTP handler.
func NewHandler(idService service.IDService) *Handler {
	return &Handler{idService: idService}
}

// RegisterRoutes registers all routes.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	api := r.Group("/api/v1")
	{
		api.GET("/kinds", h.ListKinds)

		ids := api.Group("/ids")
		{
			ids.POST("/:kind", h.Generate)
			ids.POST("/:kind/parse", h.Parse)
			ids.POST("/:kind/validate", h.Validate)
		}
	}
}

// ListKinds returns the registered id kinds.
func (h *Handler) ListKinds(c *gin.Context) {
	response.Success(c, gin.H{"kinds": h.idService.Kinds()})
}

// Generate handles single and batch generation.
func (h *Handler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	l := log.Ctx(ctx)
	kind := c.Param("kind")

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		l.Warn().Err(err).Msg("invalid generate request")
		response.BadRequest(c, err.Error())
		return
	}
	opts := generator.Options{Type: req.Type, Format: req.Format}

	if req.Count == 0 {
		id, err := h.idService.Generate(ctx, kind, opts)
		if err != nil {
			h.fail(c, err, "failed to generate id")
			return
		}
		response.Created(c, GenerateResponse{Kind: kind, ID: id})
		return
	}

	ids, err := h.idService.GenerateBatch(ctx, kind, req.Count, opts)
	if err != nil {
		h.fail(c, err, "failed to generate ids")
		return
	}
	response.Created(c, GenerateResponse{Kind: kind, IDs: ids})
}

// Parse decodes an id into its fields.
func (h *Handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()
	var req IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.idService.Parse(ctx, c.Param("kind"), req.ID)
	if err != nil {
		h.fail(c, err, "failed to parse id")
		return
	}
	response.Success(c, result)
}

// Validate reports whether an id is well formed.
func (h *Handler) Validate(c *gin.Context) {
	ctx := c.Request.Context()
	var req IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	valid, reason, err := h.idService.Validate(ctx, c.Param("kind"), req.ID)
	if err != nil {
		h.fail(c, err, "failed to validate id")
		return
	}
	response.Success(c, ValidateResponse{Valid: valid, Reason: reason})
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	switch {
	case errors.Is(err, service.ErrUnknownKind):
		response.NotFound(c, err.Error())
	case service.IsInvalidArgument(err):
		response.InvalidArgument(c, err.Error())
	default:
		l := log.Ctx(c.Request.Context())
		l.Error().Err(err).Msg(msg)
		_ = c.Error(err)
		response.InternalError(c, msg)
	}
}
