package server

import (
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/classify"
	"github.com/gaurav-prasanna/qbformat/core/history"
	"github.com/gaurav-prasanna/qbformat/core/output"
	"github.com/gaurav-prasanna/qbformat/core/pipeline"
	"github.com/gaurav-prasanna/qbformat/core/render"
	"github.com/gaurav-prasanna/qbformat/core/reshape"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

type convertResponse struct {
	Records     []core.OutputRecord   `json:"records"`
	SourceLabel string                `json:"source_label"`
	Count       int                   `json:"count"`
	Diagnostics []reshape.Diagnostics `json:"diagnostics"`
	History     history.Entry         `json:"history"`
}

type taxonomyInfo struct {
	Mode     core.Taxonomy `json:"mode"`
	Label    string        `json:"label"`
	Chapters []string      `json:"chapters"`
	Fallback string        `json:"fallback"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleTaxonomies(c *gin.Context) {
	out := make([]taxonomyInfo, 0, len(core.Taxonomies))
	for _, t := range core.Taxonomies {
		out = append(out, taxonomyInfo{
			Mode:     t,
			Label:    t.Label(),
			Chapters: classify.Chapters(t),
			Fallback: classify.OtherChapter,
		})
	}
	c.PureJSON(http.StatusOK, out)
}

// handleConvert converts the raw request body. Only a successful
// conversion is recorded in history.
func (s *Server) handleConvert(c *gin.Context) {
	taxonomy := s.mode
	if m := c.Query("mode"); m != "" {
		t, err := core.ParseTaxonomy(m)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		taxonomy = t
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("reading body: %v", err)})
		return
	}

	payload, err := s.extractor.Extract(string(body))
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := pipeline.ConvertText(payload, taxonomy)
	if err != nil {
		kind := pipeline.KindOf(err)
		s.metrics.ObserveFailure(taxonomy, kind)
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Kind: string(kind)})
		return
	}

	unmatched := res.Unmatched()
	s.metrics.ObserveConversion(taxonomy, len(res.Records), len(unmatched))
	for _, d := range unmatched {
		s.log.Warn("chapter not in taxonomy, kept as-is",
			zap.Int("item", d.Index), zap.String("chapter", d.Chapter))
	}

	entry := s.history.Record(core.Batch{
		Records:     res.Records,
		SourceLabel: res.SourceLabel,
		Taxonomy:    taxonomy,
		ConvertedAt: s.now(),
	})

	diagnostics := make([]reshape.Diagnostics, 0)
	for _, d := range res.Diagnostics {
		if !d.Clean() {
			diagnostics = append(diagnostics, d)
		}
	}

	c.PureJSON(http.StatusOK, convertResponse{
		Records:     res.Records,
		SourceLabel: res.SourceLabel,
		Count:       len(res.Records),
		Diagnostics: diagnostics,
		History:     entry,
	})
}

func (s *Server) handleListHistory(c *gin.Context) {
	entries := s.history.List()
	c.PureJSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

func (s *Server) handleGetHistory(c *gin.Context) {
	entry, ok := s.history.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "history entry not found"})
		return
	}
	c.PureJSON(http.StatusOK, entry)
}

// exportRenderer maps the export format parameter to a renderer and content type.
func (s *Server) exportRenderer(format string) (core.Renderer, string, bool) {
	switch format {
	case "", "json":
		return render.NewJSONRenderer(), "application/json; charset=utf-8", true
	case "markdown", "md":
		return render.NewMarkdownRenderer(), "text/markdown; charset=utf-8", true
	case "pdf":
		return render.NewPDFRenderer(s.pdfFont), "application/pdf", true
	default:
		return nil, "", false
	}
}

func (s *Server) handleExportHistory(c *gin.Context) {
	entry, ok := s.history.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, errorResponse{Error: "history entry not found"})
		return
	}

	format := c.Query("format")
	renderer, contentType, ok := s.exportRenderer(format)
	if !ok {
		c.JSON(http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("unknown export format %q (want json, markdown or pdf)", format)})
		return
	}

	data, err := renderer.Render(entry.Batch())
	if err != nil {
		s.log.Error("export failed", zap.String("id", entry.ID), zap.String("format", format), zap.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "rendering export failed"})
		return
	}

	filename := output.Sanitize(entry.Label) + renderer.Extension()
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	c.Data(http.StatusOK, contentType, data)
}

func (s *Server) handleClearHistory(c *gin.Context) {
	s.history.Clear()
	c.Status(http.StatusNoContent)
}
