package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/qbformat/core"
	"github.com/gaurav-prasanna/qbformat/core/classify"
	"github.com/gaurav-prasanna/qbformat/core/history"
	"github.com/gaurav-prasanna/qbformat/core/render"
)

const ictExport = `{"questions":[{
	"chapter_name": "Chapter 3",
	"context": "<p>Hello &amp; bye</p>",
	"board": "Dhaka Board",
	"questions": [{"type": "a", "question": "Q1", "answer": "A1"}]
}]}`

func physicsExport(board string) string {
	return `[{"chapter": "Zzz topic", "board": "` + board + `", "questions": [
		{"type": "a", "question": "first", "answer": "1"},
		{"type": "A", "question": "second", "answer": "2"},
		{"type": "e", "question": "extra", "answer": "x"}
	]}]`
}

func newTestServer(t *testing.T, limit int) (*Server, http.Handler) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	clock := func() time.Time { return time.Date(2026, 3, 1, 14, 5, 0, 0, time.UTC) }
	s := New(Options{Mode: core.TaxonomyPhysics, HistoryLimit: limit, Logger: zap.NewNop(), Now: clock})
	return s, s.Router()
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type convertReply struct {
	Records     []core.OutputRecord `json:"records"`
	SourceLabel string              `json:"source_label"`
	Count       int                 `json:"count"`
	Diagnostics []struct {
		Index           int      `json:"index"`
		Chapter         string   `json:"chapter"`
		ChapterMatched  bool     `json:"chapter_matched"`
		IgnoredTags     []string `json:"ignored_tags"`
		OverwrittenTags []string `json:"overwritten_tags"`
	} `json:"diagnostics"`
	History history.Entry `json:"history"`
}

func convert(t *testing.T, h http.Handler, target, body string) convertReply {
	t.Helper()
	w := do(h, http.MethodPost, target, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var reply convertReply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
	return reply
}

func TestHealth(t *testing.T) {
	_, h := newTestServer(t, 0)
	w := do(h, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestConvert_ict(t *testing.T) {
	s, h := newTestServer(t, 0)

	reply := convert(t, h, "/api/convert?mode=ICT", ictExport)

	require.Len(t, reply.Records, 1)
	assert.Equal(t, core.OutputRecord{
		Chapter:  classify.Chapters(core.TaxonomyICT)[2],
		Stimulus: "Hello & bye",
		QA:       "Q1",
		AnsA:     "A1",
	}, reply.Records[0])
	assert.Equal(t, "Dhaka Board", reply.SourceLabel)
	assert.Equal(t, 1, reply.Count)
	assert.Empty(t, reply.Diagnostics)

	assert.NotEmpty(t, reply.History.ID)
	assert.Equal(t, "[ICT] Dhaka Board", reply.History.Label)
	assert.Equal(t, "14:05", reply.History.Timestamp)
	assert.Equal(t, 1, reply.History.Count)
	assert.Equal(t, 1, s.History().Len())
}

func TestConvert_diagnostics(t *testing.T) {
	_, h := newTestServer(t, 0)

	reply := convert(t, h, "/api/convert", physicsExport("Rajshahi Board"))

	require.Len(t, reply.Records, 1)
	rec := reply.Records[0]
	assert.Equal(t, "Zzz topic", rec.Chapter)
	assert.Equal(t, "second", rec.QA)
	assert.Equal(t, "2", rec.AnsA)

	require.Len(t, reply.Diagnostics, 1)
	d := reply.Diagnostics[0]
	assert.False(t, d.ChapterMatched)
	assert.Equal(t, []string{"a"}, d.OverwrittenTags)
	assert.Equal(t, []string{"e"}, d.IgnoredTags)
	assert.Equal(t, "[PHYSICS] Rajshahi Board", reply.History.Label)
}

func TestConvert_errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		kind   string
	}{
		{"malformed", "/api/convert", "{questions: [", "MalformedInput"},
		{"malformed with embedded markup", "/api/convert?mode=ict", "// export\n" +
			`{"questions":[{"chapter":"HTML","questions":[{"type":"a","question":"<code>[1]</code>"}]}]}`, "MalformedInput"},
		{"html page without payload", "/api/convert", `<html><body><pre>[1, 2</pre></body></html>`, "MalformedInput"},
		{"blank", "/api/convert", "   \n", "EmptyInput"},
		{"no items", "/api/convert", `{"questions": []}`, "EmptyInput"},
		{"unknown mode", "/api/convert?mode=chemistry", ictExport, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, h := newTestServer(t, 0)

			w := do(h, http.MethodPost, tt.target, tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var reply errorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reply))
			assert.NotEmpty(t, reply.Error)
			assert.Equal(t, tt.kind, reply.Kind)
			assert.Equal(t, 0, s.History().Len(), "failed conversions are not recorded")
		})
	}
}

func TestHistory(t *testing.T) {
	_, h := newTestServer(t, 2)

	first := convert(t, h, "/api/convert", physicsExport("Board One"))
	second := convert(t, h, "/api/convert", physicsExport("Board Two"))
	third := convert(t, h, "/api/convert", physicsExport("Board Three"))

	w := do(h, http.MethodGet, "/api/history", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Entries []history.Entry `json:"entries"`
		Count   int             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 2, list.Count)
	require.Len(t, list.Entries, 2)
	assert.Equal(t, third.History.ID, list.Entries[0].ID)
	assert.Equal(t, second.History.ID, list.Entries[1].ID)

	w = do(h, http.MethodGet, "/api/history/"+second.History.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got history.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "[PHYSICS] Board Two", got.Label)
	assert.Equal(t, second.Records, got.Data)

	w = do(h, http.MethodGet, "/api/history/"+first.History.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code, "oldest entry dropped past the limit")

	w = do(h, http.MethodDelete, "/api/history", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(h, http.MethodGet, "/api/history", "")
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Count)
	assert.Empty(t, list.Entries)
}

func TestHistoryExport(t *testing.T) {
	_, h := newTestServer(t, 0)
	reply := convert(t, h, "/api/convert", physicsExport("Dhaka Board"))
	base := "/api/history/" + reply.History.ID + "/export"

	w := do(h, http.MethodGet, base+"?format=json", "")
	require.Equal(t, http.StatusOK, w.Code)
	want, err := render.MarshalRecords(reply.Records)
	require.NoError(t, err)
	assert.Equal(t, string(want), w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "_PHYSICS__Dhaka_Board.json")

	w = do(h, http.MethodGet, base+"?format=markdown", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")
	assert.Contains(t, w.Body.String(), "Zzz topic")

	w = do(h, http.MethodGet, base+"?format=pdf", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(w.Body.String(), "%PDF-"))

	w = do(h, http.MethodGet, base+"?format=docx", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(h, http.MethodGet, "/api/history/missing/export", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaxonomies(t *testing.T) {
	_, h := newTestServer(t, 0)

	w := do(h, http.MethodGet, "/api/taxonomies", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []taxonomyInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, core.TaxonomyPhysics, got[0].Mode)
	assert.Equal(t, core.TaxonomyICT, got[1].Mode)
	assert.Equal(t, "ICT", got[1].Label)
	assert.Equal(t, classify.Chapters(core.TaxonomyICT), got[1].Chapters)
	assert.Equal(t, classify.OtherChapter, got[1].Fallback)
}

func TestMetrics(t *testing.T) {
	_, h := newTestServer(t, 0)
	convert(t, h, "/api/convert?mode=ict", ictExport)
	do(h, http.MethodPost, "/api/convert", "not json")

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `qbformat_conversions_total{mode="ict",result="ok"} 1`)
	assert.Contains(t, body, `qbformat_conversions_total{mode="physics",result="MalformedInput"} 1`)
	assert.Contains(t, body, `qbformat_records_converted_total{mode="ict"} 1`)
}
