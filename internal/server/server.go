package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/export"
	"github.com/zubbicodes/adsonsLab/internal/loadingpaper"
	"github.com/zubbicodes/adsonsLab/internal/reports"
	"github.com/zubbicodes/adsonsLab/internal/repository"
)

// Server wires the dashboard API: product catalog, shrinkage reports, and the
// loading paper session plus its archive.
type Server struct {
	echo    *echo.Echo
	logger  *slog.Logger
	session *loadingpaper.Session

	products repository.ProductRepository
	papers   repository.PaperRepository
	reports  repository.ReportRepository
	reporter *reports.Service

	pdf  *export.PDFService
	xlsx *export.XLSXService
}

func New(
	logger *slog.Logger,
	products repository.ProductRepository,
	papers repository.PaperRepository,
	reportsRepo repository.ReportRepository,
	reporter *reports.Service,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover())

	s := &Server{
		echo:     e,
		logger:   logger,
		session:  loadingpaper.NewSession(),
		products: products,
		papers:   papers,
		reports:  reportsRepo,
		reporter: reporter,
		pdf:      export.NewPDFService(logger),
		xlsx:     export.NewXLSXService(logger),
	}

	e.Use(s.requestLogger)
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api/v1")

	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.GET("/reports", s.ListReports)
	api.POST("/reports", s.GenerateReport)
	api.GET("/reports/:id", s.GetReport)
	api.DELETE("/reports/:id", s.DeleteReport)
	api.GET("/reports/:id/pdf", s.ReportPDF)
	api.GET("/reports/xlsx", s.ReportsXLSX)

	api.POST("/loading-papers/ingest", s.IngestLoadingPaper)
	api.GET("/loading-papers/session", s.GetSession)
	api.DELETE("/loading-papers/session", s.ResetSession)
	api.PUT("/loading-papers/session/header-note", s.SetHeaderNote)
	api.PUT("/loading-papers/session/items/:sr/remark", s.SetItemRemark)
	api.PUT("/loading-papers/session/items/:sr/display-name", s.SetItemDisplayName)
	api.DELETE("/loading-papers/session/items/:sr", s.DeleteSessionItem)
	api.POST("/loading-papers/session/save", s.SaveSession)
	api.GET("/loading-papers/session/pdf", s.SessionPDF)
	api.GET("/loading-papers/session/xlsx", s.SessionXLSX)

	api.GET("/loading-papers", s.ListPapers)
	api.GET("/loading-papers/:id", s.GetPaper)
	api.DELETE("/loading-papers/:id", s.DeletePaper)
	api.GET("/loading-papers/:id/pdf", s.PaperPDF)

	s.echo.GET("/healthz", s.Health)
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Info("http server listening", "addr", addr)
	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		reqID := uuid.NewString()
		ctx := common.WithRequestID(c.Request().Context(), reqID)
		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)
		status := c.Response().Status
		if err != nil {
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			} else {
				status = http.StatusInternalServerError
			}
		}
		s.logger.Info("request",
			"request_id", reqID,
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", status)
		return err
	}
}

// httpError maps domain errors onto HTTP statuses. Parse and validation
// failures are client errors the dashboard shows inline; everything else is a
// gateway failure surfaced as a blocking notification.
func httpError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, loadingpaper.ErrBadSyntax),
		errors.Is(err, loadingpaper.ErrEmptyDataset),
		errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, loadingpaper.ErrNoDocument),
		errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
