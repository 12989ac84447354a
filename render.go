package main

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "flash"

// setFlash stores a one-shot notice shown on the next rendered page.
func setFlash(c *gin.Context, level, msg string) {
	c.SetCookie(flashCookie, url.QueryEscape(level+"|"+msg), 60, "/", "", false, true)
}

func takeFlash(c *gin.Context) (level, msg string) {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return "", ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	v, err := url.QueryUnescape(raw)
	if err != nil {
		return "", ""
	}
	if i := strings.IndexByte(v, '|'); i > 0 {
		return v[:i], v[i+1:]
	}
	return "info", v
}

// render injects the current user, CSRF token and any pending flash into
// the template data before writing the page.
func render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if u := currentUser(c); u != nil {
		data["User"] = u
	}
	if s := currentSession(c); s != nil {
		data["CSRFToken"] = s.CSRFToken
	}
	if lvl, msg := takeFlash(c); msg != "" {
		data["FlashLevel"] = lvl
		data["Flash"] = msg
	}
	c.HTML(code, name, data)
}

func renderError(c *gin.Context, code int, msg string) {
	render(c, code, "error.html", gin.H{"Code": code, "Message": msg})
	c.Abort()
}

// serverError hides internals behind a generic failure page; the detail
// goes to the log only.
func serverError(c *gin.Context, err error) {
	log.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
	renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again.")
}
