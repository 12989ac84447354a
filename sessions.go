package main

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session"
	csrfCookie    = "csrf"
	csrfFormField = "csrf_token"
	sessionTTL    = 30 * 24 * time.Hour
)

var secretKey []byte // loaded from config at startup

var errInvalidSession = errors.New("invalid session")

// createSession stores a session row with its own CSRF token and returns
// the signed cookie value (an HS256 JWT whose sid claim is the row id).
func createSession(userID uint) (string, error) {
	csrf := make([]byte, 32)
	if _, err := rand.Read(csrf); err != nil {
		return "", err
	}
	s := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		CSRFToken: hex.EncodeToString(csrf),
		ExpiresAt: time.Now().Add(sessionTTL),
	}
	if err := db.Create(&s).Error; err != nil {
		return "", err
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": s.ID,
		"uid": userID,
		"exp": s.ExpiresAt.Unix(),
	})
	return token.SignedString(secretKey)
}

// lookupSession verifies the cookie signature and loads the session row,
// rejecting revoked or expired sessions.
func lookupSession(raw string) (*models.Session, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidSession
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errInvalidSession
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return nil, errInvalidSession
	}
	var s models.Session
	if err := db.Where("id = ?", sid).First(&s).Error; err != nil {
		return nil, errInvalidSession
	}
	if s.Revoked || time.Now().After(s.ExpiresAt) {
		return nil, errInvalidSession
	}
	return &s, nil
}

func revokeSession(id string) {
	db.Model(&models.Session{}).Where("id = ?", id).Update("revoked", true)
}

// authRequired loads the session from the cookie and stashes the session
// and user in the context. Browsers get a redirect to /login, /api routes
// a 401.
func authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(sessionCookie)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		s, err := lookupSession(raw)
		if err != nil {
			abortUnauthenticated(c)
			return
		}
		var user models.User
		if err := db.First(&user, s.UserID).Error; err != nil {
			abortUnauthenticated(c)
			return
		}
		c.Set("session", s)
		c.Set("user", &user)
		c.Next()
	}
}

func abortUnauthenticated(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	} else {
		c.Redirect(http.StatusFound, "/login?next="+url.QueryEscape(c.Request.URL.RequestURI()))
	}
	c.Abort()
}

// csrfRequired rejects state-changing requests whose form token does not
// match the per-session token.
func csrfRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead {
			c.Next()
			return
		}
		s := currentSession(c)
		if s == nil || subtle.ConstantTimeCompare([]byte(c.PostForm(csrfFormField)), []byte(s.CSRFToken)) != 1 {
			renderError(c, http.StatusForbidden, "Invalid CSRF token.")
			return
		}
		c.Next()
	}
}

// ensureCSRFCookie returns the anonymous CSRF token, minting one on first
// use. Pre-login forms (register, login) use this double-submit cookie;
// authenticated forms use the session token instead.
func ensureCSRFCookie(c *gin.Context) string {
	if v, err := c.Cookie(csrfCookie); err == nil && v != "" {
		return v
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return ""
	}
	v := hex.EncodeToString(b)
	c.SetCookie(csrfCookie, v, 3600, "/", "", false, true)
	return v
}

func checkCSRFCookie(c *gin.Context) bool {
	v, err := c.Cookie(csrfCookie)
	if err != nil || v == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(v), []byte(c.PostForm(csrfFormField))) == 1
}

func currentUser(c *gin.Context) *models.User {
	v, _ := c.Get("user")
	u, _ := v.(*models.User)
	return u
}

func currentSession(c *gin.Context) *models.Session {
	v, _ := c.Get("session")
	s, _ := v.(*models.Session)
	return s
}
