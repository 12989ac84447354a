package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

func listCategoriesHandler(c *gin.Context) {
	user := currentUser(c)
	cats, err := listCategories(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}
	render(c, http.StatusOK, "categories.html", gin.H{"Categories": cats})
}

func newCategoryFormHandler(c *gin.Context) {
	render(c, http.StatusOK, "category_form.html", gin.H{
		"Form": CategoryForm{}, "Action": "/categories/new", "Title": "Add category",
	})
}

func createCategoryHandler(c *gin.Context) {
	user := currentUser(c)
	form := bindCategoryForm(c)
	data := gin.H{"Form": form, "Action": "/categories/new", "Title": "Add category"}
	if errs := form.Validate(); errs.Has() {
		data["Errors"] = errs
		render(c, http.StatusBadRequest, "category_form.html", data)
		return
	}
	if _, err := createCategory(user.ID, form.Name, form.Kind); err != nil {
		if errors.Is(err, ErrDuplicateCategory) {
			data["Errors"] = FieldErrors{{Field: "name", Message: "You already have a category with this name."}}
			render(c, http.StatusConflict, "category_form.html", data)
			return
		}
		serverError(c, err)
		return
	}
	setFlash(c, "success", "Category added.")
	c.Redirect(http.StatusFound, "/categories")
}

func editCategoryFormHandler(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	cat, err := getCategory(user.ID, id)
	if err != nil {
		notFoundOr500(c, err)
		return
	}
	render(c, http.StatusOK, "category_form.html", gin.H{
		"Form":   CategoryForm{Name: cat.Name, Kind: cat.Kind},
		"Action": fmt.Sprintf("/categories/%d/edit", cat.ID),
		"Title":  "Edit category",
	})
}

func updateCategoryHandler(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	form := bindCategoryForm(c)
	data := gin.H{"Form": form, "Action": fmt.Sprintf("/categories/%d/edit", id), "Title": "Edit category"}
	if errs := form.Validate(); errs.Has() {
		data["Errors"] = errs
		render(c, http.StatusBadRequest, "category_form.html", data)
		return
	}
	if err := updateCategory(user.ID, id, form.Name, form.Kind); err != nil {
		if errors.Is(err, ErrDuplicateCategory) {
			data["Errors"] = FieldErrors{{Field: "name", Message: "You already have a category with this name."}}
			render(c, http.StatusConflict, "category_form.html", data)
			return
		}
		notFoundOr500(c, err)
		return
	}
	setFlash(c, "success", "Category updated.")
	c.Redirect(http.StatusFound, "/categories")
}

func deleteCategoryHandler(c *gin.Context) {
	user := currentUser(c)
	id, ok := paramID(c)
	if !ok {
		renderError(c, http.StatusNotFound, "Not found.")
		return
	}
	if err := deleteCategory(user.ID, id); err != nil {
		if errors.Is(err, ErrCategoryInUse) {
			setFlash(c, "danger", "This category still has transactions. Reassign or delete them first.")
			c.Redirect(http.StatusFound, "/categories")
			return
		}
		notFoundOr500(c, err)
		return
	}
	setFlash(c, "info", "Category deleted.")
	c.Redirect(http.StatusFound, "/categories")
}
