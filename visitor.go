package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AlainJulien/portfolio/internal/theme"
)

const (
	visitorCookie = "visitor_id"
	visitorKey    = "visitorID"

	// Client hint carrying the browser's prefers-color-scheme media feature.
	colorSchemeHint = "Sec-CH-Prefers-Color-Scheme"
)

// visitorMiddleware gives every browser a stable anonymous ID. Preferences
// are stored against it, nothing else is.
func visitorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(visitorCookie)
		if err == nil {
			_, err = uuid.Parse(id)
		}
		if err != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(visitorCookie, id, 3600*24*365, "/", "", false, true)
		}
		c.Set(visitorKey, id)
		c.Next()
	}
}

func visitorID(c *gin.Context) string {
	return c.GetString(visitorKey)
}

// requestColorScheme asks the browser to send its color-scheme hint on
// subsequent requests, and on a retry of this one if it is missing.
func requestColorScheme(c *gin.Context) {
	c.Header("Accept-CH", colorSchemeHint)
	c.Header("Critical-CH", colorSchemeHint)
	c.Header("Vary", colorSchemeHint)
}

// applyColorSchemeHint feeds the hint into the visitor's OS signal. Without a
// hint the signal keeps whatever the browser last reported.
func applyColorSchemeHint(c *gin.Context, signal *theme.Signal) {
	switch strings.Trim(c.GetHeader(colorSchemeHint), `" `) {
	case "dark":
		signal.Set(true)
	case "light":
		signal.Set(false)
	}
}
