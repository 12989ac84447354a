package main

import (
	"html/template"
	"path/filepath"
	"time"

	"fintrack/web"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

var templateFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"date":  func(t time.Time) string { return t.Format("2006-01-02") },
}

// loadTemplates installs the embedded templates, or parses them from disk
// with hot reload when dir is set (development).
func loadTemplates(r *gin.Engine, dir string) error {
	if dir == "" {
		t, err := template.New("").Funcs(templateFuncs).ParseFS(web.TemplatesFS, "templates/*.html")
		if err != nil {
			return err
		}
		r.SetHTMLTemplate(t)
		return nil
	}
	if err := reloadTemplates(r, dir); err != nil {
		return err
	}
	go watchTemplates(r, dir)
	return nil
}

func reloadTemplates(r *gin.Engine, dir string) error {
	t, err := template.New("").Funcs(templateFuncs).ParseGlob(filepath.Join(dir, "*.html"))
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(t)
	return nil
}

// watchTemplates re-parses on change. SetHTMLTemplate is not safe under
// concurrent load, which is acceptable for a dev server.
func watchTemplates(r *gin.Engine, dir string) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warnf("template watcher unavailable: %v", err)
		return
	}
	defer w.Close()
	if err := w.Add(dir); err != nil {
		log.Warnf("cannot watch %s: %v", dir, err)
		return
	}
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				if err := reloadTemplates(r, dir); err != nil {
					log.Warnf("template reload failed: %v", err)
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Warnf("template watcher error: %v", err)
		}
	}
}
