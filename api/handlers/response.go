package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// StatusForError maps an engine error kind to an HTTP status code
func StatusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrNotFound:
		return http.StatusNotFound
	case domain.ErrAlreadyExists, domain.ErrInvalidState:
		return http.StatusConflict
	case domain.ErrParse:
		return http.StatusUnprocessableEntity
	case domain.ErrNetwork:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error", "kind"} with the mapped status
func respondError(c *gin.Context, err error) {
	body := gin.H{"error": err.Error()}
	var e *domain.Error
	if errors.As(err, &e) {
		body["kind"] = e.Kind
	}
	c.JSON(StatusForError(err), body)
}

// queryInt reads a non-negative integer query parameter
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return n, true
}
