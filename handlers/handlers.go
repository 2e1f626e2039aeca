package handlers

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/icco/sunburst/handlers/templates"
	"github.com/icco/sunburst/lib/dataset"
	"github.com/icco/sunburst/lib/hierarchy"
	"github.com/icco/sunburst/lib/plays"
	"github.com/icco/sunburst/lib/sunburst"
	"github.com/icco/sunburst/lib/types"
	"github.com/icco/sunburst/lib/validation"
)

//go:embed static/*
var staticFS embed.FS

const siteTitle = "Seasonal Listening"

func parseTemplates(files ...string) (*template.Template, error) {
	return templates.ParseTemplates(files...)
}

type errorData struct {
	Title   string
	Message string
}

type pageData struct {
	Title  string
	Season string
	SVG    template.HTML
	Stats  *types.StatsData
}

func renderError(w http.ResponseWriter, message string, status int) {
	tmpl, err := parseTemplates("base.html", "error.html")
	if err != nil {
		slog.Error("Failed to parse error template", slog.Any("error", err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", errorData{Title: siteTitle, Message: message}); err != nil {
		slog.Error("Failed to execute error template", slog.Any("error", err))
	}
}

// Static serves the embedded stylesheet and tooltip script.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}

// HandleHome renders the full sunburst page.
func HandleHome(store *plays.Store, opts sunburst.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		records, err := store.Records(req.Context())
		if err != nil {
			slog.Error("Failed to load play counts", slog.Any("error", err))
			renderError(w, "We couldn't load the listening data. Please try again later.", http.StatusInternalServerError)
			return
		}
		renderChartPage(w, records, "", opts)
	}
}

// HandleSeason renders the sunburst for a single season.
func HandleSeason(store *plays.Store, opts sunburst.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		season, err := validation.ValidateSeason(chi.URLParam(req, "season"))
		if err != nil {
			renderError(w, "Unknown season. Please pick Winter, Spring, Summer or Fall.", http.StatusBadRequest)
			return
		}

		records, err := store.SeasonRecords(req.Context(), season)
		if err != nil {
			slog.Error("Failed to load season play counts", slog.String("season", string(season)), slog.Any("error", err))
			renderError(w, "We couldn't load the listening data. Please try again later.", http.StatusInternalServerError)
			return
		}
		if len(records) == 0 {
			renderError(w, "No plays were recorded for "+string(season)+".", http.StatusNotFound)
			return
		}
		renderChartPage(w, records, string(season), opts)
	}
}

func renderChartPage(w http.ResponseWriter, records []dataset.Record, season string, opts sunburst.Options) {
	chart, err := sunburst.Render(hierarchy.Build(dataset.Name, records), opts)
	if err != nil {
		if errors.Is(err, sunburst.ErrEmpty) {
			renderError(w, "There are no plays to chart yet.", http.StatusNotFound)
			return
		}
		slog.Error("Failed to render chart", slog.Any("error", err))
		renderError(w, "Something went wrong while drawing the chart.", http.StatusInternalServerError)
		return
	}

	svg, err := chart.SVG()
	if err != nil {
		slog.Error("Failed to render svg", slog.Any("error", err))
		renderError(w, "Something went wrong while drawing the chart.", http.StatusInternalServerError)
		return
	}

	// Parse and execute the template
	tmpl, err := parseTemplates("base.html", "home.html")
	if err != nil {
		slog.Error("Failed to parse template", slog.Any("error", err))
		renderError(w, "Something went wrong while loading the page.", http.StatusInternalServerError)
		return
	}

	title := siteTitle
	if season != "" {
		title = season + " · " + siteTitle
	}
	data := pageData{
		Title:  title,
		Season: season,
		SVG:    svg,
		Stats:  plays.Summarize(records),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		slog.Error("Failed to execute template", slog.Any("error", err))
	}
}

// HandleSVG serves the chart as a standalone SVG document.
func HandleSVG(store *plays.Store, opts sunburst.Options) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		records, err := store.Records(req.Context())
		if err != nil {
			slog.Error("Failed to load play counts", slog.Any("error", err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		chart, err := sunburst.Render(hierarchy.Build(dataset.Name, records), opts)
		if err != nil {
			if errors.Is(err, sunburst.ErrEmpty) {
				http.Error(w, "No plays to chart", http.StatusNotFound)
				return
			}
			slog.Error("Failed to render chart", slog.Any("error", err))
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/svg+xml")
		if err := chart.WriteSVG(w); err != nil {
			slog.Error("Failed to write svg", slog.Any("error", err))
		}
	}
}

// HandleTree returns the season/genre hierarchy as JSON.
func HandleTree(store *plays.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		records, err := store.Records(req.Context())
		if err != nil {
			slog.Error("Failed to load play counts", slog.Any("error", err))
			validation.WriteError(w, errors.New("failed to load play counts"), http.StatusInternalServerError)
			return
		}
		writeJSON(w, hierarchy.Build(dataset.Name, records))
	}
}

// HandleStats returns season and genre totals as JSON.
func HandleStats(store *plays.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		stats, err := store.Stats(req.Context())
		if err != nil {
			slog.Error("Failed to compute stats", slog.Any("error", err))
			validation.WriteError(w, errors.New("failed to compute stats"), http.StatusInternalServerError)
			return
		}
		writeJSON(w, stats)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", slog.Any("error", err))
	}
}
