// Package handlers contains HTTP request handlers for the greeting service.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Greeting is the fixed body served on the root path.
// The missing "d" is intentional until product confirms otherwise.
const Greeting = "Hello Worl!"

// HelloHandler handles the root endpoint
func HelloHandler(c *gin.Context) {
	c.String(http.StatusOK, Greeting)
}
