package server

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Aleph-Alpha/tagsearch/v1/pdf"
	"github.com/Aleph-Alpha/tagsearch/v1/search"
)

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleIngest accepts a multipart upload with owning_id and file, and
// replaces the indexed content of that document.
func (s *Server) handleIngest(c echo.Context) error {
	owningID, err := strconv.ParseInt(strings.TrimSpace(c.FormValue("owning_id")), 10, 64)
	if err != nil {
		return badRequest("owning_id must be an integer")
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest("file is required")
	}
	if fh.Size > s.cfg.MaxUploadBytes {
		return pdf.ErrTooLarge
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return pdf.ErrTooLarge
	}

	text, err := s.extractor.Extract(data)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	if s.archiver != nil {
		if _, err := s.archiver.ArchiveDocument(ctx, owningID, bytes.NewReader(data), int64(len(data))); err != nil {
			return fmt.Errorf("archive document: %w", err)
		}
	}

	summary, err := s.ingester.Ingest(ctx, text, owningID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, IngestResponse{
		Status:     "ok",
		OwningID:   summary.OwningID,
		ChunkCount: summary.ChunkCount,
	})
}

func (s *Server) handleSearch(c echo.Context) error {
	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if strings.TrimSpace(req.Query) == "" {
		return badRequest("query is required")
	}
	if req.TopK < 0 {
		return badRequest("top_k must not be negative")
	}
	if req.ActorID != nil && req.CandidateIDs != nil {
		return badRequest("actor_id and candidate_ids are mutually exclusive")
	}

	ctx := c.Request().Context()
	var ids []int64
	switch {
	case req.ActorID != nil:
		resolved, err := s.resolver.CandidateIDs(ctx, *req.ActorID)
		if err != nil {
			return err
		}
		ids = resolved
	case req.CandidateIDs != nil:
		ids = req.CandidateIDs
	default:
		return badRequest("actor_id or candidate_ids is required")
	}

	results, err := s.searcher.Search(ctx, req.Query, ids, req.TopK)
	if err != nil {
		return err
	}

	resp := SearchResponse{Results: results}
	if resp.Results == nil {
		resp.Results = []search.Result{}
	}
	if len(ids) == 0 {
		resp.Message = search.MessageNoCandidates
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handleCandidates(c echo.Context) error {
	actorID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return badRequest("actor id must be an integer")
	}
	ids, err := s.resolver.CandidateIDs(c.Request().Context(), actorID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, CandidatesResponse{ActorID: actorID, CandidateIDs: ids})
}
