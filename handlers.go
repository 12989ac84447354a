package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

func setupRoutes(r *gin.Engine) {
	r.GET("/", indexHandler)
	r.GET("/register", registerFormHandler)
	r.POST("/register", registerHandler)
	r.GET("/login", loginFormHandler)
	r.POST("/login", loginHandler)

	auth := r.Group("")
	auth.Use(authRequired(), csrfRequired())
	auth.POST("/logout", logoutHandler)
	auth.GET("/dashboard", dashboardHandler)
	auth.GET("/transactions", listTransactionsHandler)
	auth.GET("/transactions/new", newTransactionFormHandler)
	auth.POST("/transactions/new", createTransactionHandler)
	auth.GET("/transactions/:id/edit", editTransactionFormHandler)
	auth.POST("/transactions/:id/edit", updateTransactionHandler)
	auth.POST("/transactions/:id/delete", deleteTransactionHandler)
	auth.GET("/categories", listCategoriesHandler)
	auth.GET("/categories/new", newCategoryFormHandler)
	auth.POST("/categories/new", createCategoryHandler)
	auth.GET("/categories/:id/edit", editCategoryFormHandler)
	auth.POST("/categories/:id/edit", updateCategoryHandler)
	auth.POST("/categories/:id/delete", deleteCategoryHandler)
	auth.GET("/export/csv", exportCSVHandler)
	auth.GET("/export/pdf", exportPDFHandler)
	auth.GET("/summary/chart.png", summaryChartHandler)
	auth.GET("/api/summary", apiSummaryHandler)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// notFoundOr500 renders ownership violations and missing rows identically
// so row existence never leaks to other users.
func notFoundOr500(c *gin.Context, err error) {
	if errors.Is(err, ErrNotFound) {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	serverError(c, err)
}

func indexHandler(c *gin.Context) {
	if raw, err := c.Cookie(sessionCookie); err == nil {
		if _, err := lookupSession(raw); err == nil {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}
	render(c, http.StatusOK, "index.html", nil)
}

func registerFormHandler(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{
		"CSRFToken": ensureCSRFCookie(c),
		"Form":      RegisterForm{},
	})
}

func registerHandler(c *gin.Context) {
	if !checkCSRFCookie(c) {
		renderError(c, http.StatusForbidden, "Invalid CSRF token.")
		return
	}
	form := bindRegisterForm(c)
	if errs := form.Validate(); errs.Has() {
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"CSRFToken": ensureCSRFCookie(c), "Form": form, "Errors": errs,
		})
		return
	}
	if _, err := Register(form.Username, form.Email, form.Password); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			render(c, http.StatusConflict, "register.html", gin.H{
				"CSRFToken": ensureCSRFCookie(c), "Form": form,
				"Errors": FieldErrors{{Field: "username", Message: "Username or email already exists."}},
			})
			return
		}
		serverError(c, err)
		return
	}
	setFlash(c, "success", "Account created. Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func loginFormHandler(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{
		"CSRFToken": ensureCSRFCookie(c),
		"Form":      LoginForm{},
		"Next":      safeNext(c.Query("next")),
	})
}

func loginHandler(c *gin.Context) {
	if !checkCSRFCookie(c) {
		renderError(c, http.StatusForbidden, "Invalid CSRF token.")
		return
	}
	form := bindLoginForm(c)
	loginData := gin.H{"CSRFToken": ensureCSRFCookie(c), "Form": form, "Next": safeNext(c.Query("next"))}
	if errs := form.Validate(); errs.Has() {
		loginData["Errors"] = errs
		render(c, http.StatusBadRequest, "login.html", loginData)
		return
	}
	user, err := Authenticate(form.Username, form.Password)
	if err != nil {
		loginData["Errors"] = FieldErrors{{Field: "username", Message: "Invalid username or password."}}
		render(c, http.StatusUnauthorized, "login.html", loginData)
		return
	}
	token, err := createSession(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	c.SetCookie(sessionCookie, token, int(sessionTTL/time.Second), "/", "", false, true)
	setFlash(c, "success", "Welcome back!")
	next := safeNext(c.Query("next"))
	if next == "" {
		next = "/dashboard"
	}
	c.Redirect(http.StatusFound, next)
}

// safeNext only allows same-site relative redirect targets.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return ""
}

func logoutHandler(c *gin.Context) {
	if s := currentSession(c); s != nil {
		revokeSession(s.ID)
	}
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
	setFlash(c, "info", "Logged out.")
	c.Redirect(http.StatusFound, "/")
}

func dashboardHandler(c *gin.Context) {
	user := currentUser(c)
	recent, err := recentTransactions(user.ID, 10)
	if err != nil {
		serverError(c, err)
		return
	}
	totals, err := accountTotals(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Recent": recent,
		"Totals": totals,
		"Year":   time.Now().Year(),
	})
}
