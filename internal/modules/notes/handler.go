package notes

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shelfshare/notesum/internal/middleware"
	"github.com/shelfshare/notesum/internal/modules/inference"
	"github.com/shelfshare/notesum/internal/pkg/response"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

const (
	msgUpstreamPrefix    = "Failed to summarize text due to external API error: "
	msgMalformedResponse = "Summarization model response missing 'summary_text' attribute."
	msgEmptyTitle        = "Master title generation produced an empty result."
	msgBodyTooLarge      = "Request body is too large."
)

type Handler struct {
	svc    *Service
	logger *zap.Logger
}

func NewHandler(svc *Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/get_summarized_text", h.getSummarizedText)
	rg.POST("/get_master_title", h.getMasterTitle)
}

// POST /get_summarized_text
func (h *Handler) getSummarizedText(c *gin.Context) {
	notes, ok := h.readList(c, FieldNotesList)
	if !ok {
		return
	}
	summary, err := h.svc.Summarize(c.Request.Context(), notes)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, summaryResponse{Summary: summary})
}

// POST /get_master_title
func (h *Handler) getMasterTitle(c *gin.Context) {
	titles, ok := h.readList(c, FieldTitlesList)
	if !ok {
		return
	}
	title, err := h.svc.MasterTitle(c.Request.Context(), titles)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.OK(c, masterTitleResponse{MasterTitle: title})
}

func (h *Handler) readList(c *gin.Context, field string) ([]string, bool) {
	if !IsJSONContentType(c.GetHeader("Content-Type")) {
		response.BadRequest(c, (&ValidationError{Field: field, Err: ErrNotJSON}).Error())
		return nil, false
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(c, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return nil, false
		}
		h.writeError(c, err)
		return nil, false
	}

	list, err := ParseList(body, field)
	if err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}
	return list, true
}

// writeError maps a failure to its status: upstream faults are 502,
// anything unexpected is a generic 500.
func (h *Handler) writeError(c *gin.Context, err error) {
	fields := []zap.Field{
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.Error(err),
	}

	var te *inference.TransportError
	switch {
	case errors.As(err, &te):
		h.logger.Warn("inference provider request failed", fields...)
		response.BadGateway(c, msgUpstreamPrefix+te.Error())
	case errors.Is(err, inference.ErrMalformedResponse):
		h.logger.Warn("inference provider returned a malformed response", fields...)
		response.BadGateway(c, msgMalformedResponse)
	case errors.Is(err, ErrEmptyTitle):
		h.logger.Warn("master title is empty after refinement", fields...)
		response.BadGateway(c, msgEmptyTitle)
	default:
		h.logger.Error("unexpected error", fields...)
		response.InternalError(c)
	}
}
