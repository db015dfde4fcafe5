package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/zubbicodes/adsonsLab/constants"
	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
)

type productRequest struct {
	ProductCode string `json:"product_code"`
	Description string `json:"description"`
	Width       string `json:"width"`
	Color       string `json:"color"`
}

// validateProduct enforces the catalog form contract: code, width and color
// are required; only the description may be left blank.
func validateProduct(req *productRequest) error {
	v := common.NewValidator()
	v.Field("product_code", req.ProductCode, common.Required)
	v.Field("width", req.Width, common.Required)
	v.Field("color", req.Color, common.Required)
	return v.Error()
}

func (s *Server) ListProducts(c echo.Context) error {
	products, err := s.products.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, products)
}

func (s *Server) CreateProduct(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid product payload"))
	}
	if err := validateProduct(&req); err != nil {
		return httpError(err)
	}
	if strings.TrimSpace(req.Description) == "" {
		req.Description = constants.DefaultDescription
	}

	created, err := s.products.Create(c.Request().Context(), &entity.Product{
		ProductCode: req.ProductCode,
		Description: req.Description,
		Width:       req.Width,
		Color:       req.Color,
	})
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) UpdateProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid product id"))
	}

	var req productRequest
	if err := c.Bind(&req); err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid product payload"))
	}
	if err := validateProduct(&req); err != nil {
		return httpError(err)
	}

	p := &entity.Product{
		ID:          id,
		ProductCode: req.ProductCode,
		Description: req.Description,
		Width:       req.Width,
		Color:       req.Color,
	}
	if err := s.products.Update(c.Request().Context(), p); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) DeleteProduct(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return httpError(common.WrapError(common.ErrInvalidInput, "invalid product id"))
	}
	if err := s.products.Delete(c.Request().Context(), id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
