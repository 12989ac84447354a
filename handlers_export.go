package main

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fintrack/pkg/export"

	"github.com/gin-gonic/gin"
)

func exportCSVHandler(c *gin.Context) {
	user := currentUser(c)
	items, err := searchAll(user.ID, parseFilter(c))
	if err != nil {
		serverError(c, err)
		return
	}
	name := "transactions-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := export.WriteCSV(c.Writer, export.FromTransactions(items)); err != nil {
		log.WithError(err).Error("csv export failed")
	}
}

func exportPDFHandler(c *gin.Context) {
	user := currentUser(c)
	items, err := searchAll(user.ID, parseFilter(c))
	if err != nil {
		serverError(c, err)
		return
	}
	name := "transactions-" + time.Now().Format("20060102") + ".pdf"
	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	if err := export.WritePDF(c.Writer, "Transaction History", export.FromTransactions(items)); err != nil {
		log.WithError(err).Error("pdf export failed")
	}
}

func parseYear(c *gin.Context) int {
	if y, err := strconv.Atoi(c.Query("year")); err == nil && y >= 1970 && y <= 9999 {
		return y
	}
	return time.Now().Year()
}

// apiSummaryHandler returns per-month income and expense totals for one
// year as exact decimal strings, zero-filled for quiet months.
func apiSummaryHandler(c *gin.Context) {
	user := currentUser(c)
	year := parseYear(c)
	summary, err := monthlySummary(user.ID, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(summary))
	for _, m := range summary {
		out = append(out, gin.H{
			"period":  fmt.Sprintf("%d-%02d", year, int(m.Month)),
			"income":  m.Income.StringFixed(2),
			"expense": m.Expense.StringFixed(2),
		})
	}
	c.JSON(http.StatusOK, out)
}

func summaryChartHandler(c *gin.Context) {
	user := currentUser(c)
	year := parseYear(c)
	summary, err := monthlySummary(user.ID, year)
	if err != nil {
		serverError(c, err)
		return
	}
	points := make([]export.MonthPoint, 0, len(summary))
	for _, m := range summary {
		points = append(points, export.MonthPoint{
			Label:   m.Month.String()[:3],
			Income:  m.Income.InexactFloat64(),
			Expense: m.Expense.InexactFloat64(),
		})
	}
	c.Header("Content-Type", "image/png")
	if err := export.MonthlyChartPNG(c.Writer, year, points); err != nil {
		log.WithError(err).Error("chart render failed")
	}
}
