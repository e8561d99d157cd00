package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/DanielTheTeacher/ActivityHub/internal/catalog"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// handleListActivities decodes the query string into a Filters value, runs
// the predicate over the full set, and echoes back the canonical re-encoded
// query so clients can keep their address bar in sync.
func (s *Server) handleListActivities(c echo.Context) error {
	opts := s.Store.Options()
	filters := catalog.DecodeFilters(c.QueryParams(), &opts)
	matched := s.Store.List(filters)

	return c.JSON(http.StatusOK, map[string]any{
		"total":      s.Store.Count(),
		"matched":    len(matched),
		"filters":    filters,
		"query":      catalog.EncodeFilters(filters, &opts).Encode(),
		"activities": matched,
	})
}

func (s *Server) handleGetActivity(c echo.Context) error {
	id := c.Param("id")
	activity, ok := s.Store.Get(id)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found", "id": id})
	}
	return c.JSON(http.StatusOK, activity)
}

func (s *Server) handleFilterOptions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.Store.Options())
}

func (s *Server) handleExport(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="updated_activities.json"`)
	return c.JSONPretty(http.StatusOK, s.Store.Export(), "  ")
}

func (s *Server) handleUpdateActivity(c echo.Context) error {
	id := c.Param("id")

	var rec catalog.RawRecord
	if err := c.Bind(&rec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if rec.Title.String() == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}

	updated, ok := s.Store.Update(id, rec)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found", "id": id})
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) handleDeleteActivity(c echo.Context) error {
	id := c.Param("id")
	if !s.Store.Delete(id) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Not found", "id": id})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// handleReload re-fetches all sources in the background and swaps the store
// on success. Discards any in-memory edits, like a full page reload.
func (s *Server) handleReload(c echo.Context) error {
	s.jobMu.Lock()
	if s.runningJob != nil && s.runningJob.Status == "running" {
		job := s.runningJob
		s.jobMu.Unlock()
		return c.JSON(http.StatusConflict, map[string]any{
			"error":  "A reload job is already running",
			"job_id": job.ID,
		})
	}

	// The job must outlive the HTTP request, so detach from its context.
	jobCtx, jobCancel := context.WithTimeout(
		context.WithoutCancel(c.Request().Context()), 5*time.Minute,
	)

	jobID := uuid.New().String()[:8]
	job := &backgroundJob{
		ID:        jobID,
		Status:    "running",
		StartedAt: time.Now(),
	}
	s.runningJob = job
	s.jobMu.Unlock()

	go func() {
		defer jobCancel()

		activities, err := s.Loader.Load(jobCtx)
		if err != nil {
			s.jobMu.Lock()
			job.Status = "failed"
			job.Error = err.Error()
			job.EndedAt = time.Now()
			s.jobMu.Unlock()
			log.Printf("[reload-job %s] failed: %v", jobID, err)
			return
		}

		s.Store.Replace(activities)

		s.jobMu.Lock()
		job.Status = "completed"
		job.EndedAt = time.Now()
		job.Result = map[string]any{"activities": len(activities)}
		s.jobMu.Unlock()
		log.Printf("[reload-job %s] completed: %d activities", jobID, len(activities))
	}()

	return c.JSON(http.StatusAccepted, map[string]any{
		"message": "Reload job started",
		"job_id":  jobID,
		"poll":    fmt.Sprintf("/api/v1/admin/job/%s", jobID),
	})
}

func (s *Server) handleJobStatus(c echo.Context) error {
	queried := c.Param("id")
	s.jobMu.Lock()
	job := s.runningJob
	s.jobMu.Unlock()

	if job == nil || job.ID != queried {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "job not found"})
	}

	s.jobMu.Lock()
	resp := map[string]any{
		"id":         job.ID,
		"status":     job.Status,
		"started_at": job.StartedAt,
	}
	if !job.EndedAt.IsZero() {
		resp["ended_at"] = job.EndedAt
		resp["duration"] = job.EndedAt.Sub(job.StartedAt).String()
	}
	if job.Result != nil {
		resp["result"] = job.Result
	}
	if job.Error != "" {
		resp["error"] = job.Error
	}
	s.jobMu.Unlock()

	return c.JSON(http.StatusOK, resp)
}
