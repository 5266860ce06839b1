package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/unstopDD/sklad-sub000/internal/dto"
	"github.com/unstopDD/sklad-sub000/internal/infra"
	"github.com/unstopDD/sklad-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ReportService handles spreadsheet import and inventory export.
// Import rows reuse the ingredient upsert, so external_code matching, plan
// limits and history logging behave exactly like manual edits.
type ReportService interface {
	ImportIngredients(ctx context.Context, ownerID uuid.UUID, filename string, file io.Reader, mode string) (*dto.ImportResponse, error)
	ExportInventoryXLSX(ctx context.Context, ownerID uuid.UUID) ([]byte, error)
	ExportInventoryPDF(ctx context.Context, ownerID uuid.UUID) ([]byte, error)
}

type reportService struct {
	ingredients    IngredientService
	ingredientRepo repository.IngredientRepository
	productRepo    repository.ProductRepository
	profileRepo    repository.ProfileRepository
}

func NewReportService(
	ingredients IngredientService,
	ingredientRepo repository.IngredientRepository,
	productRepo repository.ProductRepository,
	profileRepo repository.ProfileRepository,
) ReportService {
	return &reportService{
		ingredients:    ingredients,
		ingredientRepo: ingredientRepo,
		productRepo:    productRepo,
		profileRepo:    profileRepo,
	}
}

// importRow is the column layout shared by .xlsx and .csv uploads:
// name, quantity, unit, min_stock, price_per_unit, external_code.
type importRow struct {
	name         string
	quantity     string
	unit         string
	minStock     string
	pricePerUnit string
	externalCode string
}

func (s *reportService) ImportIngredients(ctx context.Context, ownerID uuid.UUID, filename string, file io.Reader, mode string) (*dto.ImportResponse, error) {
	var rows []importRow
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = parseXLSX(file)
	case ".csv":
		rows, err = parseCSV(file)
	default:
		return nil, fmt.Errorf("%w: unsupported file type %q, expected .xlsx or .csv", ErrValidation, filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if mode == "" {
		mode = dto.MergeReplace
	}

	resp := &dto.ImportResponse{Rows: make([]dto.ImportRowResult, 0, len(rows))}
	for i, row := range rows {
		result := dto.ImportRowResult{Row: i + 2, Name: row.name} // +2: header row plus 1-based
		req, convErr := rowToRequest(row, mode)
		if convErr != nil {
			result.Status = "failed"
			result.Error = convErr.Error()
			resp.Failed++
			resp.Rows = append(resp.Rows, result)
			continue
		}

		// A row updates when it resolves by external_code or name, otherwise
		// it creates; detect which happened by checking for the record first.
		existedBefore := s.rowExists(ctx, ownerID, req)
		if _, err := s.ingredients.Upsert(ctx, ownerID, req); err != nil {
			result.Status = "failed"
			result.Error = err.Error()
			resp.Failed++
		} else if existedBefore {
			result.Status = "updated"
			resp.Updated++
		} else {
			result.Status = "created"
			resp.Created++
		}
		resp.Rows = append(resp.Rows, result)
	}
	return resp, nil
}

func (s *reportService) rowExists(ctx context.Context, ownerID uuid.UUID, req dto.UpsertIngredientRequest) bool {
	if req.ExternalCode != nil && *req.ExternalCode != "" {
		if _, err := s.ingredientRepo.FindByExternalCode(ctx, ownerID, *req.ExternalCode); err == nil {
			return true
		}
	}
	_, err := s.ingredientRepo.FindByNameFold(ctx, ownerID, req.Name)
	return err == nil
}

func rowToRequest(row importRow, mode string) (dto.UpsertIngredientRequest, error) {
	var req dto.UpsertIngredientRequest
	if strings.TrimSpace(row.name) == "" {
		return req, fmt.Errorf("empty name")
	}
	qty, err := decimal.NewFromString(strings.TrimSpace(row.quantity))
	if err != nil {
		return req, fmt.Errorf("invalid quantity %q", row.quantity)
	}
	minStock := decimal.Zero
	if strings.TrimSpace(row.minStock) != "" {
		minStock, err = decimal.NewFromString(strings.TrimSpace(row.minStock))
		if err != nil {
			return req, fmt.Errorf("invalid min_stock %q", row.minStock)
		}
	}
	req = dto.UpsertIngredientRequest{
		Name:     strings.TrimSpace(row.name),
		Quantity: qty,
		Unit:     strings.TrimSpace(row.unit),
		MinStock: minStock,
		Mode:     mode,
	}
	if strings.TrimSpace(row.pricePerUnit) != "" {
		price, err := decimal.NewFromString(strings.TrimSpace(row.pricePerUnit))
		if err != nil {
			return req, fmt.Errorf("invalid price_per_unit %q", row.pricePerUnit)
		}
		req.PricePerUnit = &price
	}
	if code := strings.TrimSpace(row.externalCode); code != "" {
		req.ExternalCode = &code
	}
	return req, nil
}

func parseXLSX(file io.Reader) ([]importRow, error) {
	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	cells, err := f.GetRows(sheet)
	if err != nil {
		return nil, err
	}
	if len(cells) < 2 {
		return nil, fmt.Errorf("sheet has no data rows")
	}
	return cellsToRows(cells[1:]), nil // skip header
}

func parseCSV(file io.Reader) ([]importRow, error) {
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return cellsToRows(records[1:]), nil
}

func cellsToRows(cells [][]string) []importRow {
	rows := make([]importRow, 0, len(cells))
	cell := func(line []string, i int) string {
		if i < len(line) {
			return line[i]
		}
		return ""
	}
	for _, line := range cells {
		rows = append(rows, importRow{
			name:         cell(line, 0),
			quantity:     cell(line, 1),
			unit:         cell(line, 2),
			minStock:     cell(line, 3),
			pricePerUnit: cell(line, 4),
			externalCode: cell(line, 5),
		})
	}
	return rows
}

// ── Exports ──────────────────────────────────────────────────────────────────

func (s *reportService) ExportInventoryXLSX(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	ingredients, err := s.ingredientRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	ingSheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(ingSheet, "Ingredients"); err != nil {
		return nil, err
	}
	header := []interface{}{"name", "quantity", "unit", "min_stock", "price_per_unit", "external_code"}
	if err := f.SetSheetRow("Ingredients", "A1", &header); err != nil {
		return nil, err
	}
	for i := range ingredients {
		ing := &ingredients[i]
		price, code := "", ""
		if ing.PricePerUnit != nil {
			price = ing.PricePerUnit.String()
		}
		if ing.ExternalCode != nil {
			code = *ing.ExternalCode
		}
		row := []interface{}{ing.Name, ing.Quantity.String(), ing.Unit, ing.MinStock.String(), price, code}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Ingredients", cellRef, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet("Products"); err != nil {
		return nil, err
	}
	prodHeader := []interface{}{"name", "quantity", "unit", "external_code", "recipe_lines"}
	if err := f.SetSheetRow("Products", "A1", &prodHeader); err != nil {
		return nil, err
	}
	for i := range products {
		p := &products[i]
		code := ""
		if p.ExternalCode != nil {
			code = *p.ExternalCode
		}
		row := []interface{}{p.Name, p.Quantity.String(), p.Unit, code, len(p.Recipe)}
		cellRef, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow("Products", cellRef, &row); err != nil {
			return nil, err
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *reportService) ExportInventoryPDF(ctx context.Context, ownerID uuid.UUID) ([]byte, error) {
	profile, err := s.profileRepo.FindByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ingredients, err := s.ingredientRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	products, err := s.productRepo.ListAll(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return infra.GenerateInventoryPDF(profile.Name, ingredients, products)
}
