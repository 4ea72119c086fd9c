package main

import (
	"encoding/json"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlainJulien/portfolio/internal/store"
	"github.com/AlainJulien/portfolio/internal/theme"
)

const keepAliveInterval = 25 * time.Second

type app struct {
	cfg      Config
	db       *store.SQLite // nil when the database could not be opened
	sessions *sessions
	admin    *adminAuth
}

func newApp(cfg Config, db *store.SQLite) *app {
	stores := func(string) theme.Store { return theme.NewMemoryStore() }
	if db != nil {
		stores = db.ForVisitor
	}
	a := &app{
		cfg:      cfg,
		db:       db,
		sessions: newSessions(stores, cfg.SessionTTL),
	}
	if cfg.adminEnabled() {
		a.admin = newAdminAuth(cfg)
	}
	return a
}

type themeForm struct {
	Theme string `form:"theme" binding:"required,oneof=light dark system"`
}

type osForm struct {
	Dark *bool `form:"dark" binding:"required"`
}

type themeState struct {
	Theme  theme.Preference `json:"theme"`
	IsDark bool             `json:"isDark"`
}

func stateOf(ctrl *theme.Controller) themeState {
	return themeState{Theme: ctrl.Preference(), IsDark: ctrl.IsDark()}
}

func (a *app) router() (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}
	static, err := fs.Sub(assets, "static")
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(tmpl)
	r.StaticFS("/static", http.FS(static))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	site := r.Group("/")
	site.Use(visitorMiddleware())

	// Home page route
	site.GET("/", func(c *gin.Context) {
		sess := a.sessions.get(visitorID(c))
		requestColorScheme(c)
		applyColorSchemeHint(c, sess.signal)
		c.HTML(http.StatusOK, "index.html", pageData(stateOf(sess.ctrl)))
	})

	// Theme toggle: JSON for fetch, 204 + HX-Trigger for HTMX, redirect otherwise
	site.POST("/theme", func(c *gin.Context) {
		var form themeForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be light, dark or system"})
			return
		}
		sess := a.sessions.get(visitorID(c))
		// Binding already restricted the value to a valid tag.
		_ = sess.ctrl.SetPreference(theme.Preference(form.Theme))
		state := stateOf(sess.ctrl)

		switch {
		case c.GetHeader("HX-Request") == "true":
			trigger, _ := json.Marshal(gin.H{"themeChanged": state})
			c.Header("HX-Trigger", string(trigger))
			c.Status(http.StatusNoContent)
		case c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON:
			c.JSON(http.StatusOK, state)
		default:
			c.Redirect(http.StatusSeeOther, "/")
		}
	})

	// The page's matchMedia listener reports OS-level scheme changes here
	site.POST("/theme/os", func(c *gin.Context) {
		var form osForm
		if err := c.ShouldBind(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dark must be true or false"})
			return
		}
		sess := a.sessions.get(visitorID(c))
		sess.signal.Set(*form.Dark)
		c.Status(http.StatusNoContent)
	})

	site.GET("/theme/events", a.themeEvents)

	if a.admin != nil {
		a.setupAdminRoutes(r)
	}
	return r, nil
}

// themeEvents streams the visitor's resolved appearance as server-sent
// events until the client goes away.
func (a *app) themeEvents(c *gin.Context) {
	sess, release := a.sessions.stream(visitorID(c))
	defer release()

	changed := make(chan struct{}, 1)
	unsubscribe := sess.ctrl.OnChange(func(bool) {
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer unsubscribe()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	c.Header("Cache-Control", "no-cache")
	c.SSEvent("theme", stateOf(sess.ctrl))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case <-c.Request.Context().Done():
			return false
		case <-changed:
			c.SSEvent("theme", stateOf(sess.ctrl))
			return true
		case <-keepAlive.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}

func pageData(state themeState) gin.H {
	return gin.H{
		"theme":       state.Theme.String(),
		"isDark":      state.IsDark,
		"preferences": theme.Preferences,
		"profile":     Profile,
		"skills":      Skills,
		"projects":    Projects,
		"whatIDo":     WhatIDo,
		"pitch":       ContactPitch,
		"tips":        ContactTips,
		"year":        time.Now().Year(),
	}
}

func loadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(assets, "templates/*.html")
}
