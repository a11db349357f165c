package http

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/renaqiu/stylematch/internal/domain/closet"
	"github.com/renaqiu/stylematch/internal/domain/scan"
	apperrors "github.com/renaqiu/stylematch/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	scanSvc   scan.Service
	closetSvc closet.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(scanSvc scan.Service, closetSvc closet.Service, logger *slog.Logger) *Handler {
	return &Handler{
		scanSvc:   scanSvc,
		closetSvc: closetSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

// EvaluateScan runs the full scoring pipeline for one scanned item and
// returns the complete results-screen payload.
func (h *Handler) EvaluateScan(c *gin.Context) {
	var req scan.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.scanSvc.EvaluateScan(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "scan_failed"))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SaveScan persists a scan verdict so it survives leaving the results screen.
func (h *Handler) SaveScan(c *gin.Context) {
	scanID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req scan.SaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	req.ScanID = scanID

	if err := h.scanSvc.SaveScan(c.Request.Context(), req); err != nil {
		abortWithError(c, domainError(err, "scan_failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"scanId": scanID, "saved": true})
}

// UnsaveScan removes a saved verdict and reports the restored outcome.
func (h *Handler) UnsaveScan(c *gin.Context) {
	scanID, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	outcome, err := h.scanSvc.UnsaveScan(c.Request.Context(), scanID)
	if err != nil {
		abortWithError(c, domainError(err, "scan_failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"scanId": scanID, "saved": false, "restoredOutcome": outcome})
}

// TrendingStyles returns the most frequently scanned style tags.
func (h *Handler) TrendingStyles(c *gin.Context) {
	styles, err := h.scanSvc.TrendingStyles(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err, "scan_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"styles": styles})
}

// ListCloset returns the full wardrobe snapshot.
func (h *Handler) ListCloset(c *gin.Context) {
	items, err := h.closetSvc.Snapshot(c.Request.Context())
	if err != nil {
		abortWithError(c, domainError(err, "closet_failed"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type addItemPayload struct {
	Category    string              `json:"category"`
	Colors      []closet.Color      `json:"colors"`
	StyleTags   []string            `json:"styleTags"`
	Match       closet.MatchSignals `json:"matchSignals"`
	ColorVector []float32           `json:"colorVector"`
	Image       string              `json:"image"`
	ImageMime   string              `json:"imageMime"`
}

// AddClosetItem stores a new owned item, decoding the optional photo from
// its base64 transport form.
func (h *Handler) AddClosetItem(c *gin.Context) {
	var payload addItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	req := closet.AddItemRequest{
		Category:    payload.Category,
		Colors:      payload.Colors,
		StyleTags:   payload.StyleTags,
		Match:       payload.Match,
		ColorVector: payload.ColorVector,
		ImageMime:   payload.ImageMime,
	}
	if payload.Image != "" {
		data, err := base64.StdEncoding.DecodeString(payload.Image)
		if err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "image is not valid base64", err))
			return
		}
		req.ImageData = data
	}

	result, err := h.closetSvc.AddItem(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, domainError(err, "closet_failed"))
		return
	}

	c.JSON(http.StatusCreated, result)
}

// RemoveClosetItem deletes an owned item and its stored photo.
func (h *Handler) RemoveClosetItem(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.closetSvc.RemoveItem(c.Request.Context(), id); err != nil {
		abortWithError(c, domainError(err, "closet_failed"))
		return
	}

	c.Status(http.StatusNoContent)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "malformed id segment", err))
		return uuid.Nil, false
	}
	return id, true
}

// domainError translates service error codes into transport status codes.
func domainError(err error, fallbackCode string) *HTTPError {
	status := http.StatusInternalServerError
	code := fallbackCode
	switch {
	case apperrors.IsCode(err, "invalid_input"):
		status = http.StatusBadRequest
		code = "invalid_request"
	case apperrors.IsCode(err, "not_found"):
		status = http.StatusNotFound
		code = "not_found"
	}
	return NewHTTPError(status, code, errMessage(err), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
