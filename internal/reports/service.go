package reports

import (
	"context"
	"log/slog"
	"time"

	"github.com/zubbicodes/adsonsLab/constants"
	"github.com/zubbicodes/adsonsLab/internal/common"
	"github.com/zubbicodes/adsonsLab/internal/entity"
	"github.com/zubbicodes/adsonsLab/internal/repository"
)

// GenerateRequest carries the control-panel form for a new test report.
// Product code and PO number are required; everything else falls back to the
// panel defaults.
type GenerateRequest struct {
	ProductCode          string `json:"product_code"`
	PONumber             string `json:"po_number"`
	Date                 string `json:"date"`
	ItemNumber           string `json:"item_number"`
	ShrinkageRequirement string `json:"shrinkage_requirement"`
	Temp                 string `json:"temp"`
	DimensionalChange    string `json:"dimensional_change"`
	PH                   string `json:"ph"`
	Result               string `json:"result"`
}

// Service turns control-panel submissions into persisted shrinkage reports.
type Service struct {
	products repository.ProductRepository
	reports  repository.ReportRepository
	logger   *slog.Logger
}

func NewService(products repository.ProductRepository, reports repository.ReportRepository, logger *slog.Logger) *Service {
	return &Service{products: products, reports: reports, logger: logger}
}

// Generate validates the form, resolves the product, applies defaults and
// persists the report. Validation failures never reach the store.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*entity.ShrinkageReport, error) {
	v := common.NewValidator()
	v.Field("product_code", req.ProductCode, common.Required)
	v.Field("po_number", req.PONumber, common.Required)
	if err := v.Error(); err != nil {
		return nil, err
	}

	product, err := s.products.GetByCode(ctx, req.ProductCode)
	if err != nil {
		return nil, common.WrapError(err, "resolve product")
	}

	rep := &entity.ShrinkageReport{
		ProductCode:          product.ProductCode,
		PONumber:             req.PONumber,
		Date:                 req.Date,
		ItemNumber:           req.ItemNumber,
		ProductDescription:   "Elastic " + product.Width,
		Color:                product.Color,
		ShrinkageRequirement: req.ShrinkageRequirement,
		Temp:                 req.Temp,
		DimensionalChange:    req.DimensionalChange,
		PH:                   req.PH,
		Result:               req.Result,
	}
	if rep.Date == "" {
		rep.Date = time.Now().Format("1/2/2006")
	}
	if rep.ItemNumber == "" {
		rep.ItemNumber = product.ProductCode
	}
	if rep.ShrinkageRequirement == "" {
		rep.ShrinkageRequirement = constants.RequirementASTCC
	}
	if rep.Temp == "" {
		rep.Temp = constants.DefaultTemp
	}
	if rep.Result == "" {
		rep.Result = string(constants.ResultPass)
	}

	saved, err := s.reports.Create(ctx, rep)
	if err != nil {
		return nil, err
	}
	s.logger.Info("shrinkage report generated",
		"report_id", saved.ID, "product_code", saved.ProductCode, "po_number", saved.PONumber)
	return saved, nil
}
