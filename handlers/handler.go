package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"gogo-delivery/delivery"
	"gogo-delivery/models"
	"gogo-delivery/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Handler adapts HTTP requests to client calls. The acting user always comes
// from the verified token.
type Handler struct {
	client   *delivery.Client
	secret   []byte
	tokenTTL time.Duration
}

func New(client *delivery.Client, secret []byte, tokenTTL time.Duration) *Handler {
	return &Handler{client: client, secret: secret, tokenTTL: tokenTTL}
}

// respondError maps client errors onto HTTP statuses
func respondError(c *gin.Context, err error) {
	var rule *models.RuleError
	switch {
	case errors.As(err, &rule):
		c.JSON(ruleStatus(err), gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConsistency):
		_ = c.Error(err)
		c.JSON(http.StatusConflict, gin.H{"error": "Data changed while it was being read, please retry"})
	case errors.Is(err, store.ErrReference):
		c.JSON(http.StatusConflict, gin.H{"error": store.ErrReference.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": store.ErrDuplicate.Error()})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		_ = c.Error(err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Request cancelled"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func ruleStatus(err error) int {
	switch {
	case errors.Is(err, models.ErrAccessDenied),
		errors.Is(err, models.ErrSelfRoleChange),
		errors.Is(err, models.ErrForeignAddress),
		errors.Is(err, models.ErrFeedbackNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, models.ErrUsernameTaken),
		errors.Is(err, models.ErrAlreadyInCart),
		errors.Is(err, models.ErrAlreadyFavorite),
		errors.Is(err, models.ErrFeedbackExists):
		return http.StatusConflict
	case errors.Is(err, models.ErrPreviewTooLarge):
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusUnprocessableEntity
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// paramID parses a numeric path parameter, answering 400 when it is malformed.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

func sortOrder(c *gin.Context) (models.SortOrder, bool) {
	order, err := models.ParseSortOrder(c.Query("order"))
	if err != nil {
		badRequest(c, err)
		return "", false
	}
	return order, true
}

// bindWithPreview decodes the request payload and returns the optional preview
// upload. Multipart requests carry the payload as JSON in the "payload" field
// and the image in the "preview" file; anything else is a plain JSON body.
func bindWithPreview(c *gin.Context, dst any) (io.ReadCloser, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, c.ShouldBindJSON(dst)
	}
	if err := json.Unmarshal([]byte(c.PostForm("payload")), dst); err != nil {
		return nil, err
	}
	header, err := c.FormFile("preview")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return header.Open()
}

// message answers a boolean mutation result the way every mutation endpoint does.
func message(c *gin.Context, ok bool, done, missing string) {
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": missing})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": done})
}
