package main

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fintrack/models"

	"github.com/gin-gonic/gin"
)

func parseFilter(c *gin.Context) SearchFilter {
	f := SearchFilter{
		Query: strings.TrimSpace(c.Query("q")),
		Kind:  c.Query("type"),
	}
	if f.Kind != models.KindIncome && f.Kind != models.KindExpense {
		f.Kind = ""
	}
	if id, err := strconv.ParseUint(c.Query("category"), 10, 32); err == nil {
		f.CategoryID = uint(id)
	}
	return f
}

// filterQS rebuilds the filter as a query string for pagination and export
// links.
func filterQS(f SearchFilter) string {
	v := url.Values{}
	if f.Query != "" {
		v.Set("q", f.Query)
	}
	if f.CategoryID != 0 {
		v.Set("category", strconv.FormatUint(uint64(f.CategoryID), 10))
	}
	if f.Kind != "" {
		v.Set("type", f.Kind)
	}
	return v.Encode()
}

func listTransactionsHandler(c *gin.Context) {
	user := currentUser(c)
	f := parseFilter(c)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	page, pageSize = normalizePage(page, pageSize)

	items, total, err := searchTransactions(user.ID, f, page, pageSize)
	if err != nil {
		serverError(c, err)
		return
	}
	cats, err := listCategories(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	render(c, http.StatusOK, "transactions.html", gin.H{
		"Items":      items,
		"Total":      total,
		"Page":       page,
		"PageSize":   pageSize,
		"TotalPages": totalPages,
		"HasPrev":    page > 1,
		"HasNext":    page < totalPages,
		"PrevPage":   page - 1,
		"NextPage":   page + 1,
		"Filter":     f,
		"FilterQS":   filterQS(f),
		"Categories": cats,
	})
}

func transactionFormData(form TransactionForm, cats []models.Category, action, title string) gin.H {
	return gin.H{
		"Form":       form,
		"Categories": cats,
		"Action":     action,
		"Title":      title,
	}
}

func newTransactionFormHandler(c *gin.Context) {
	user := currentUser(c)
	cats, err := listCategories(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	form := TransactionForm{Kind: models.KindExpense, Date: time.Now().Format("2006-01-02")}
	render(c, http.StatusOK, "transaction_form.html",
		transactionFormData(form, cats, "/transactions/new", "Add transaction"))
}

func createTransactionHandler(c *gin.Context) {
	user := currentUser(c)
	cats, err := listCategories(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	form := bindTransactionForm(c)
	in, errs := form.Parse(cats)
	if errs.Has() {
		data := transactionFormData(form, cats, "/transactions/new", "Add transaction")
		data["Errors"] = errs
		render(c, http.StatusBadRequest, "transaction_form.html", data)
		return
	}
	if _, err := createTransaction(user.ID, in); err != nil {
		serverError(c, err)
		return
	}
	setFlash(c, "success", "Transaction added.")
	c.Redirect(http.StatusFound, "/transactions")
}

func editTransactionFormHandler(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	t, err := getTransaction(user.ID, id)
	if err != nil {
		notFoundOr500(c, err)
		return
	}
	cats, err := listCategories(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	form := TransactionForm{
		Amount:      t.Amount.StringFixed(2),
		Kind:        t.Kind,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
	}
	if t.CategoryID != nil {
		form.CategoryID = strconv.FormatUint(uint64(*t.CategoryID), 10)
	}
	action := fmt.Sprintf("/transactions/%d/edit", t.ID)
	render(c, http.StatusOK, "transaction_form.html",
		transactionFormData(form, cats, action, "Edit transaction"))
}

func updateTransactionHandler(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	cats, err := listCategories(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	form := bindTransactionForm(c)
	in, errs := form.Parse(cats)
	if errs.Has() {
		data := transactionFormData(form, cats, fmt.Sprintf("/transactions/%d/edit", id), "Edit transaction")
		data["Errors"] = errs
		render(c, http.StatusBadRequest, "transaction_form.html", data)
		return
	}
	if err := updateTransaction(user.ID, id, in); err != nil {
		notFoundOr500(c, err)
		return
	}
	setFlash(c, "success", "Transaction updated.")
	c.Redirect(http.StatusFound, "/transactions")
}

func deleteTransactionHandler(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	if err := deleteTransaction(user.ID, id); err != nil {
		notFoundOr500(c, err)
		return
	}
	setFlash(c, "info", "Transaction deleted.")
	c.Redirect(http.StatusFound, "/transactions")
}
