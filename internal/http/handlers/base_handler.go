// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"tripgen/internal/modules/planner"
	"tripgen/internal/modules/usage"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePlanError maps generation failures onto transport status codes.
// Internal details stay in the log; the client sees one generic message.
func writePlanError(c *gin.Context, err error) {
	var unparsable *planner.UnparsableResponseError
	switch {
	case errors.Is(err, planner.ErrInvalidRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, usage.ErrQuotaExhausted):
		writeError(c, http.StatusTooManyRequests, err.Error())
	case errors.As(err, &unparsable):
		log.Printf("plan generation failed: unparsable response: %.500s", unparsable.Raw)
		writeError(c, http.StatusBadGateway, "itinerary generation failed")
	default:
		log.Printf("plan generation failed: %v", err)
		writeError(c, http.StatusBadGateway, "itinerary generation failed")
	}
}
