// Package dashboard exposes the stored intel over a small JSON API: the
// read/search surface plus the manual correction tooling (add, edit,
// delete) and CSV export. It is a thin client of the store and never
// touches the classification pipeline.
package dashboard

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"CompetitionBot/internal/domain"
	"CompetitionBot/internal/ports"
)

// Server serves the dashboard API.
type Server struct {
	store  ports.IntelStore
	labels []string
	logger *slog.Logger
}

// New wires the store; labels is the closed category set used to
// validate manual entries.
func New(store ports.IntelStore, labels []string, logger *slog.Logger) *Server {
	return &Server{store: store, labels: labels, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	{
		api.GET("/entries", s.listEntries)
		api.POST("/entries", s.addEntry)
		api.PUT("/entries/:id", s.updateEntry)
		api.DELETE("/entries/:id", s.deleteEntry)
		api.GET("/stats", s.stats)
		api.GET("/categories", s.categories)
	}
	r.GET("/export.csv", s.exportCSV)

	return r
}

type filters struct {
	search     string
	competitor string
	category   string
	from       time.Time
	to         time.Time
}

func (s *Server) readFilters(c *gin.Context) filters {
	f := filters{
		search:     strings.ToLower(c.Query("search")),
		competitor: c.Query("competitor"),
		category:   c.Query("category"),
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse("2006-01-02", v); err == nil {
			f.to = t
		}
	}
	return f
}

func (f filters) match(e domain.IntelRecord) bool {
	if f.search != "" &&
		!strings.Contains(strings.ToLower(e.Competitor), f.search) &&
		!strings.Contains(strings.ToLower(e.URL), f.search) &&
		!strings.Contains(strings.ToLower(e.Summary), f.search) {
		return false
	}
	if f.competitor != "" && e.Competitor != f.competitor {
		return false
	}
	if f.category != "" && e.Category != f.category {
		return false
	}
	if !f.from.IsZero() && e.DateAdded.Before(f.from) {
		return false
	}
	if !f.to.IsZero() && e.DateAdded.After(f.to) {
		return false
	}
	return true
}

func (s *Server) filtered(c *gin.Context) ([]domain.IntelRecord, bool) {
	all, err := s.store.ListAll(c.Request.Context())
	if err != nil {
		s.logger.Error("list entries failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return nil, false
	}
	f := s.readFilters(c)
	out := make([]domain.IntelRecord, 0, len(all))
	for _, e := range all {
		if f.match(e) {
			out = append(out, e)
		}
	}
	return out, true
}

func (s *Server) listEntries(c *gin.Context) {
	entries, ok := s.filtered(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries, "count": len(entries)})
}

type entryInput struct {
	Competitor string `json:"competitor" binding:"required"`
	URL        string `json:"url" binding:"required"`
	Category   string `json:"category"`
	Summary    string `json:"summary"`
	DateAdded  string `json:"date_added"`
}

func (s *Server) addEntry(c *gin.Context) {
	var in entryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Category == "" {
		in.Category = s.labels[len(s.labels)-1]
	}
	if !s.validCategory(in.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + in.Category})
		return
	}

	when := time.Now()
	if in.DateAdded != "" {
		t, err := time.Parse("2006-01-02", in.DateAdded)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_added must be YYYY-MM-DD"})
			return
		}
		when = t
	}

	id, err := s.store.Insert(c.Request.Context(), domain.IntelRecord{
		Competitor: in.Competitor,
		URL:        in.URL,
		Category:   in.Category,
		Summary:    in.Summary,
		SharedBy:   "Manual Entry",
		DateAdded:  when,
	})
	if err != nil {
		s.logger.Error("manual insert failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type entryPatch struct {
	Competitor *string `json:"competitor"`
	Category   *string `json:"category"`
	URL        *string `json:"url"`
	Summary    *string `json:"summary"`
}

func (s *Server) updateEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	var in entryPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if in.Category != nil && !s.validCategory(*in.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category: " + *in.Category})
		return
	}

	update := domain.IntelUpdate{
		Competitor: in.Competitor,
		Category:   in.Category,
		URL:        in.URL,
		Summary:    in.Summary,
	}
	if err := s.store.Update(c.Request.Context(), id, update); err != nil {
		s.logger.Error("update failed", "id", id, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) deleteEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		s.logger.Error("delete failed", "id", id, "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) stats(c *gin.Context) {
	entries, ok := s.filtered(c)
	if !ok {
		return
	}

	competitors := map[string]struct{}{}
	byCategory := map[string]int{}
	thisMonth := 0
	now := time.Now()
	for _, e := range entries {
		competitors[e.Competitor] = struct{}{}
		byCategory[e.Category]++
		if e.DateAdded.Year() == now.Year() && e.DateAdded.Month() == now.Month() {
			thisMonth++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total":       len(entries),
		"competitors": len(competitors),
		"this_month":  thisMonth,
		"by_category": byCategory,
	})
}

func (s *Server) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": s.labels})
}

func (s *Server) exportCSV(c *gin.Context) {
	entries, ok := s.filtered(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="competitor_intel_`+time.Now().Format("20060102")+`.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"id", "competitor", "url", "category", "summary", "shared_by", "date_added", "slack_link"})
	for _, e := range entries {
		_ = w.Write([]string{
			strconv.FormatInt(e.ID, 10),
			e.Competitor,
			e.URL,
			e.Category,
			e.Summary,
			e.SharedBy,
			e.DateAdded.Format("2006-01-02"),
			e.SlackLink,
		})
	}
	w.Flush()
}

func (s *Server) validCategory(label string) bool {
	for _, l := range s.labels {
		if l == label {
			return true
		}
	}
	return false
}
