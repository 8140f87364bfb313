package handlers

import (
	"net/http"
	"strconv"

	"homeserve/utils"

	"github.com/gin-gonic/gin"
)

// uintParam parses a numeric path parameter, answering 400 when it is malformed.
func uintParam(c *gin.Context, name string) (uint64, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid "+name, err.Error())
		return 0, false
	}
	return v, true
}

// bindJSON binds the request body, answering 400 with the binding error.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
		return false
	}
	return true
}
