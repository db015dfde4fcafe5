package server

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/reports"
)

func (s *Server) ListReports(c echo.Context) error {
	list, err := s.reports.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, list)
}

func (s *Server) GenerateReport(c echo.Context) error {
	var req reports.GenerateRequest
	if err := c.Bind(&req); err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid report payload"))
	}

	rep, err := s.reporter.Generate(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, rep)
}

func (s *Server) GetReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid report id"))
	}
	rep, err := s.reports.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, rep)
}

func (s *Server) DeleteReport(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid report id"))
	}
	if err := s.reports.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) ReportPDF(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid report id"))
	}
	rep, err := s.reports.Get(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	data, err := s.pdf.ShrinkageReport(rep)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", "shrinkage-"+rep.ProductCode+".pdf"))
	return c.Blob(http.StatusOK, "application/pdf", data)
}

func (s *Server) ReportsXLSX(c echo.Context) error {
	list, err := s.reports.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	data, err := s.xlsx.Reports(list)
	if err != nil {
		return httpError(err)
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		`attachment; filename="shrinkage-reports.xlsx"`)
	return c.Blob(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
