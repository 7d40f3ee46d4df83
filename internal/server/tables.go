package server

import (
	"bytes"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Veraticus/reviewlens/internal/analysis"
	"github.com/Veraticus/reviewlens/internal/classification"
	"github.com/Veraticus/reviewlens/internal/common"
	"github.com/Veraticus/reviewlens/internal/report"
	"github.com/Veraticus/reviewlens/internal/table"
	"github.com/gorilla/mux"
)

// Upload schemas.
const (
	SchemaStatistics     = "statistics"
	SchemaClassification = "classification"
	SchemaRaw            = "raw"
)

const uploadField = "file"

var contentTypes = map[table.Format]string{
	table.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	table.FormatCSV:  "text/csv; charset=utf-8",
	table.FormatText: "text/plain; charset=utf-8",
}

func (s *Server) uploadTable(w http.ResponseWriter, r *http.Request) {
	schema := r.URL.Query().Get("schema")
	if schema == "" {
		schema = SchemaStatistics
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadMB<<20)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		writeError(w, fmt.Errorf("%w: missing %q upload: %v", errBadRequest, uploadField, err))
		return
	}
	defer func() { _ = file.Close() }()

	format, err := table.FormatFromPath(header.Filename)
	if err != nil {
		writeError(w, err)
		return
	}
	raw, err := table.Read(file, format)
	if err != nil {
		writeError(w, err)
		return
	}

	var t *table.Table
	switch schema {
	case SchemaStatistics:
		t, err = table.Decode(raw, table.StatisticsColumns)
	case SchemaClassification:
		t, err = table.Decode(raw, table.ClassificationColumns)
	case SchemaRaw:
		t, err = table.Preprocess(raw)
	default:
		err = fmt.Errorf("%w: unknown schema %q", errBadRequest, schema)
	}
	if err != nil {
		writeError(w, err)
		return
	}

	u := s.tables.Put(t, filepath.Base(header.Filename), schema)
	common.LogInfo("table uploaded", common.Fields{
		"id":     u.ID,
		"file":   u.Filename,
		"schema": schema,
		"rows":   u.Rows,
	})
	writeJSON(w, http.StatusCreated, u)
}

// upload resolves the {id} path variable, writing a 404 when it has expired.
func (s *Server) upload(w http.ResponseWriter, r *http.Request) (*Upload, bool) {
	id := mux.Vars(r)["id"]
	u, ok := s.tables.Get(id)
	if !ok {
		writeError(w, common.NewNotFound("table", id))
		return nil, false
	}
	return u, true
}

func (s *Server) getTable(w http.ResponseWriter, r *http.Request) {
	if u, ok := s.upload(w, r); ok {
		writeJSON(w, http.StatusOK, u)
	}
}

func (s *Server) deleteTable(w http.ResponseWriter, r *http.Request) {
	if u, ok := s.upload(w, r); ok {
		s.tables.Delete(u.ID)
		w.WriteHeader(http.StatusNoContent)
	}
}

// groupBy reads the "by" query parameter, defaulting to ByAsin.
func groupBy(r *http.Request) (analysis.GroupBy, error) {
	by := r.URL.Query().Get("by")
	if by == "" {
		return analysis.ByAsin, nil
	}
	return analysis.ParseGroupBy(by)
}

// trendOptions reads "trend_by" and the comma-separated "asins" filter. An
// absent trend_by yields the Overall series.
func trendOptions(r *http.Request) (analysis.TrendOptions, error) {
	var opts analysis.TrendOptions
	q := r.URL.Query()
	if by := q.Get("trend_by"); by != "" {
		g, err := analysis.ParseGroupBy(by)
		if err != nil {
			return opts, err
		}
		opts.By = g
	}
	for _, asin := range strings.Split(q.Get("asins"), ",") {
		if asin = strings.TrimSpace(asin); asin != "" {
			opts.Asins = append(opts.Asins, asin)
		}
	}
	return opts, nil
}

func dashboardOptions(r *http.Request) (report.Options, error) {
	by, err := groupBy(r)
	if err != nil {
		return report.Options{}, err
	}
	trend, err := trendOptions(r)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{By: by, Trend: trend}, nil
}

func (s *Server) overview(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	o, err := analysis.ComputeOverview(u.Table)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	sum, err := analysis.ReviewTypeSummary(u.Table)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) groups(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	by, err := groupBy(r)
	if err != nil {
		writeError(w, err)
		return
	}
	stats, err := analysis.GroupStatistics(u.Table, by)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) distribution(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	by, err := groupBy(r)
	if err != nil {
		writeError(w, err)
		return
	}
	d, err := analysis.RatingDistribution(u.Table, by)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) trend(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	opts, err := trendOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	t, err := analysis.RatingTrend(u.Table, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	opts, err := dashboardOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Build(u.Table, opts))
}

// classifyUpload runs every stored category over the upload.
func (s *Server) classifyUpload(u *Upload) (*classification.Result, error) {
	return classification.Classify(u.Table, s.store.List())
}

func (s *Server) classify(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}
	result, err := s.classifyUpload(u)
	if err != nil {
		writeError(w, err)
		return
	}

	if category := r.URL.Query().Get("category"); category != "" {
		rows, err := result.Filter(category)
		if err != nil {
			writeError(w, err)
			return
		}
		result = &classification.Result{
			Categories: result.Categories,
			Rows:       rows,
			Stats:      result.Stats,
		}
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) export(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}

	format := table.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = table.FormatXLSX
	}
	contentType, known := contentTypes[format]
	if !known {
		writeError(w, fmt.Errorf("%w: %q", common.ErrUnsupportedFormat, format))
		return
	}

	sheet := u.Table.Sheet()
	name := strings.TrimSuffix(u.Filename, filepath.Ext(u.Filename))
	if r.URL.Query().Get("classified") == "true" {
		result, err := s.classifyUpload(u)
		if err != nil {
			writeError(w, err)
			return
		}
		sheet = result.Sheet()
		name += "_classified"
	}

	var buf bytes.Buffer
	if err := table.Write(&buf, format, sheet); err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"."+string(format)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) chart(w http.ResponseWriter, r *http.Request) {
	u, ok := s.upload(w, r)
	if !ok {
		return
	}

	renderer, err := s.chartFor(mux.Vars(r)["kind"], u, r)
	if err != nil {
		writeError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf); err != nil {
		writeError(w, fmt.Errorf("failed to render chart: %w", err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) chartFor(kind string, u *Upload, r *http.Request) (report.Renderer, error) {
	switch kind {
	case "pie":
		sum, err := analysis.ReviewTypeSummary(u.Table)
		if err != nil {
			return nil, err
		}
		return report.PieChart(sum), nil
	case "heatmap":
		by, err := groupBy(r)
		if err != nil {
			return nil, err
		}
		d, err := analysis.RatingDistribution(u.Table, by)
		if err != nil {
			return nil, err
		}
		return report.HeatmapChart(d), nil
	case "trend":
		opts, err := trendOptions(r)
		if err != nil {
			return nil, err
		}
		t, err := analysis.RatingTrend(u.Table, opts)
		if err != nil {
			return nil, err
		}
		return report.TrendChart(t), nil
	case "categories":
		result, err := s.classifyUpload(u)
		if err != nil {
			return nil, err
		}
		return report.CategoryBarChart(result.Stats), nil
	case "dashboard":
		opts, err := dashboardOptions(r)
		if err != nil {
			return nil, err
		}
		return report.Page(report.Build(u.Table, opts)), nil
	default:
		return nil, common.NewNotFound("chart", kind)
	}
}
