// admin.go - privacy-conscious admin view of stored theme preferences
package main

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/AlainJulien/portfolio/internal/store"
)

const adminCookie = "admin_token"

type AdminStats struct {
	Storage        string        `json:"storage"`
	Preferences    *store.Counts `json:"preferences,omitempty"`
	ActiveSessions int           `json:"active_sessions"`
	GeneratedAt    time.Time     `json:"generated_at"`
}

type adminAuth struct {
	token        string
	salt         string
	username     string
	password     string
	passwordHash []byte
}

func newAdminAuth(cfg Config) *adminAuth {
	a := &adminAuth{
		token:        generateAdminToken(),
		salt:         generateAdminToken(), // Use for IP hashing
		username:     cfg.AdminUsername,
		password:     cfg.AdminPassword,
		passwordHash: []byte(cfg.AdminPasswordHash),
	}

	log.Printf("Admin access available at: /admin/login")
	if gin.Mode() == gin.DebugMode {
		log.Printf("Admin token (dev only): %s", a.token)
	}
	return a
}

func generateAdminToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		log.Fatal("Failed to generate admin token:", err)
	}
	return hex.EncodeToString(bytes)
}

// Hash IP address so logs never carry a raw address
func (a *adminAuth) hashIP(ip string) string {
	hash := sha256.New()
	hash.Write([]byte(ip + a.salt))
	return hex.EncodeToString(hash.Sum(nil))[:16]
}

func (a *adminAuth) checkCredentials(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	var passOK bool
	if len(a.passwordHash) > 0 {
		passOK = bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}
	return userOK && passOK
}

// Middleware to check admin authentication
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil || subtle.ConstantTimeCompare([]byte(token), []byte(a.token)) != 1 {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *app) adminStats(c *gin.Context) (*AdminStats, error) {
	stats := &AdminStats{
		Storage:        "memory",
		ActiveSessions: a.sessions.Len(),
		GeneratedAt:    time.Now().UTC(),
	}
	if a.db == nil {
		return stats, nil
	}

	counts, err := a.db.PreferenceCounts(c.Request.Context())
	if err != nil {
		return nil, err
	}
	stats.Storage = "sqlite"
	stats.Preferences = counts
	return stats, nil
}

// Setup all admin routes
func (a *app) setupAdminRoutes(r *gin.Engine) {
	auth := a.admin

	// Admin login page
	r.GET("/admin/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "admin-login.html", gin.H{
			"title": "Admin Login",
		})
	})

	// Admin login handler
	r.POST("/admin/login", func(c *gin.Context) {
		if auth.checkCredentials(c.PostForm("username"), c.PostForm("password")) {
			c.SetSameSite(http.SameSiteStrictMode)
			c.SetCookie(adminCookie, auth.token, 3600*24, "/admin", "", false, true)
			log.Printf("Admin login successful from %s", auth.hashIP(c.ClientIP()))
			c.Redirect(http.StatusFound, "/admin/dashboard")
			return
		}
		log.Printf("Failed admin login attempt from %s", auth.hashIP(c.ClientIP()))
		c.HTML(http.StatusUnauthorized, "admin-login.html", gin.H{
			"title": "Admin Login",
			"error": "Invalid credentials",
		})
	})

	// Admin logout
	r.GET("/admin/logout", func(c *gin.Context) {
		c.SetCookie(adminCookie, "", -1, "/admin", "", false, true)
		log.Printf("Admin logout from %s", auth.hashIP(c.ClientIP()))
		c.Redirect(http.StatusFound, "/admin/login")
	})

	// Protected admin routes group
	adminGroup := r.Group("/admin")
	adminGroup.Use(auth.middleware())

	adminGroup.GET("/dashboard", func(c *gin.Context) {
		stats, err := a.adminStats(c)
		if err != nil {
			log.Printf("Error loading admin stats: %v", err)
			c.HTML(http.StatusInternalServerError, "admin-error.html", gin.H{
				"error": "Failed to load statistics",
			})
			return
		}
		c.HTML(http.StatusOK, "admin-dashboard.html", gin.H{
			"stats": stats,
		})
	})

	adminGroup.GET("/api/stats", func(c *gin.Context) {
		stats, err := a.adminStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, stats)
	})

	// Statistics export (for backups or analysis)
	adminGroup.GET("/export/stats", func(c *gin.Context) {
		stats, err := a.adminStats(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", "attachment; filename=theme-stats.json")
		log.Printf("Admin stats exported by %s", auth.hashIP(c.ClientIP()))
		c.JSON(http.StatusOK, stats)
	})

	// Drop preferences nobody has touched within the retention window
	adminGroup.POST("/prune", func(c *gin.Context) {
		if a.db == nil {
			c.JSON(http.StatusOK, gin.H{"removed": 0})
			return
		}
		removed, err := a.db.Prune(c.Request.Context(), a.cfg.PreferenceRetention)
		if err != nil {
			log.Printf("Error pruning preferences: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to prune preferences"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": removed})
	})
}
