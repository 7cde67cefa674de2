// Package webui serves the submission form and its results over HTTP.
package webui

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"basejumper/pkg/form"
	"basejumper/pkg/session"
	"basejumper/pkg/stats"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"hidden": func(visible bool) template.HTMLAttr {
		if visible {
			return ""
		}
		return ` style="display:none"`
	},
	// tables come from the local pipeline's statistics file
	"trusted": func(s string) template.HTML {
		return template.HTML(s)
	},
}

type Server struct {
	session *session.Session
	tmpl    *template.Template
}

func New(s *session.Session) *Server {
	return &Server{
		session: s,
		tmpl: template.Must(
			template.New("index.html").Funcs(templateFuncs).ParseFS(templateFS, "templates/index.html"),
		),
	}
}

func (srv *Server) Handler() http.Handler {
	var mux = http.NewServeMux()
	mux.HandleFunc("GET /{$}", srv.index)
	mux.HandleFunc("POST /form", srv.change)
	mux.HandleFunc("POST /run", srv.run)
	mux.HandleFunc("POST /clear", srv.clear)
	mux.HandleFunc("GET /results.xlsx", srv.download)
	return mux
}

func ListenAndServe(addr string, s *session.Session) error {
	slog.Info("Serve", "addr", "http://"+addr)
	return http.ListenAndServe(addr, New(s).Handler())
}

func (srv *Server) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := srv.tmpl.Execute(w, srv.session.Snapshot()); err != nil {
		slog.Error("Render index", "err", err)
	}
}

// posted returns the known form fields present in the request.
func posted(r *http.Request) (map[string]string, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	var values = make(map[string]string)
	for _, field := range form.FieldList {
		if _, ok := r.PostForm[field]; ok {
			values[field] = r.PostForm.Get(field)
		}
	}
	return values, nil
}

func (srv *Server) change(w http.ResponseWriter, r *http.Request) {
	values, err := posted(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	srv.session.Update(values)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (srv *Server) run(w http.ResponseWriter, r *http.Request) {
	values, err := posted(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	srv.session.Update(values)
	if _, ok := srv.session.Submit(); !ok {
		slog.Info("Run ignored", "reason", "submit disabled")
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (srv *Server) clear(w http.ResponseWriter, r *http.Request) {
	srv.session.Clear()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (srv *Server) download(w http.ResponseWriter, r *http.Request) {
	table, ok := srv.session.LastTable()
	if !ok {
		http.NotFound(w, r)
		return
	}
	xlsx, err := stats.Xlsx(table.Records)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer xlsx.Close()
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+stats.SheetName+`.xlsx"`)
	if _, err = xlsx.WriteTo(w); err != nil {
		slog.Error("Write xlsx", "err", err)
	}
}
