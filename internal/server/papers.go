package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
	"github.com/zubbicodes/adsonsLab/internal/loadingpaper"
)

// maxIngestBytes caps the pasted manifest payload.
const maxIngestBytes = 8 << 20

type noteRequest struct {
	Value string `json:"value"`
}

func (s *Server) IngestLoadingPaper(c echo.Context) error {
	raw, err := io.ReadAll(io.LimitReader(c.Request().Body, maxIngestBytes))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "reading request body"))
	}
	doc, err := s.session.Ingest(raw)
	if err != nil {
		return httpError(err)
	}
	s.logger.Info("loading paper ingested", "dc_no", doc.Header.DCNo, "items", len(doc.Items))
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) GetSession(c echo.Context) error {
	doc, err := s.session.Current()
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) ResetSession(c echo.Context) error {
	s.session.Reset()
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) SetHeaderNote(c echo.Context) error {
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid note payload"))
	}
	doc, err := s.session.SetHeaderNote(req.Value)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) SetItemRemark(c echo.Context) error {
	sr, err := itemSerial(c)
	if err != nil {
		return httpError(err)
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid remark payload"))
	}
	doc, err := s.session.SetItemRemark(sr, req.Value)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) SetItemDisplayName(c echo.Context) error {
	sr, err := itemSerial(c)
	if err != nil {
		return httpError(err)
	}
	var req noteRequest
	if err := c.Bind(&req); err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid display name payload"))
	}
	doc, err := s.session.SetItemDisplayName(sr, req.Value)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) DeleteSessionItem(c echo.Context) error {
	sr, err := itemSerial(c)
	if err != nil {
		return httpError(err)
	}
	doc, err := s.session.DeleteItem(sr)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

func (s *Server) SaveSession(c echo.Context) error {
	doc, err := s.session.Current()
	if err != nil {
		return httpError(err)
	}
	id, err := s.papers.SaveDocument(c.Request().Context(), doc)
	if err != nil {
		return httpError(err)
	}
	s.logger.Info("loading paper saved", "id", id, "dc_no", doc.Header.DCNo)
	return c.JSON(http.StatusCreated, map[string]string{"id": id.String()})
}

func (s *Server) SessionPDF(c echo.Context) error {
	doc, err := s.session.Current()
	if err != nil {
		return httpError(err)
	}
	return s.servePaperPDF(c, doc)
}

func (s *Server) SessionXLSX(c echo.Context) error {
	doc, err := s.session.Current()
	if err != nil {
		return httpError(err)
	}
	data, err := s.xlsx.LoadingPaper(doc, columnMask(c))
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", paperFilename(doc, "xlsx")))
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Server) ListPapers(c echo.Context) error {
	papers, err := s.papers.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, papers)
}

func (s *Server) GetPaper(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid paper id"))
	}
	paper, doc, err := s.papers.GetDocument(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]any{"paper": paper, "document": doc})
}

func (s *Server) DeletePaper(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid paper id"))
	}
	if err := s.papers.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) PaperPDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid paper id"))
	}
	_, doc, err := s.papers.GetDocument(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return s.servePaperPDF(c, doc)
}

func (s *Server) servePaperPDF(c echo.Context, doc *entity.Document) error {
	data, err := s.pdf.LoadingPaper(doc, columnMask(c))
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", paperFilename(doc, "pdf")))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func itemSerial(c echo.Context) (int, error) {
	sr, err := strconv.Atoi(c.Param("sr"))
	if err != nil || sr < 1 {
		return 0, common.WrapError(common.ErrInvalidInput, "invalid item serial")
	}
	return sr, nil
}

// columnMask reads the optional "columns" query parameter, a JSON-encoded
// visibility mask. Absent or malformed masks fall back to all columns.
func columnMask(c echo.Context) loadingpaper.ColumnVisibility {
	raw := c.QueryParam("columns")
	if raw == "" {
		return loadingpaper.AllColumns()
	}
	var vis loadingpaper.ColumnVisibility
	if err := json.Unmarshal([]byte(raw), &vis); err != nil {
		return loadingpaper.AllColumns()
	}
	return vis
}

func paperFilename(doc *entity.Document, ext string) string {
	name := doc.Header.DCNo
	if name == "" {
		name = "loading-paper"
	}
	return "loading-paper-" + name + "." + ext
}
