package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseID reads the :id path parameter. Anything that is not a positive
// integer cannot name a stored row, so it is answered as not found.
func parseID(c *gin.Context, notFoundCode, notFoundMessage string) (uint, bool) {
	id, ok := parsePositiveID(c.Param("id"))
	if !ok {
		writeError(c, http.StatusNotFound, notFoundCode, notFoundMessage)
		return 0, false
	}
	return id, true
}

func parsePositiveID(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
