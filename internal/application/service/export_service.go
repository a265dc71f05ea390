package service

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/utils"
)

const (
	salesSheet       = "Sales Report"
	productsSheet    = "Products"
	defaultMinStock  = 5
	xlsxDateLayout   = "2006-01-02"
	xlsxTimeLayout   = "15:04:05"
	backupDateLayout = "2006-01-02"
)

var salesColumns = []string{
	"Sale ID", "Sale Date", "Sale Time", "Product", "Barcode", "Category", "Unit Price", "Quantity", "Unit",
	"Discount Type", "Discount Percent", "Discount Amount", "Item Total", "Sale Discount", "Tax", "Sale Total",
	"Payment Method", "Cashier", "Cost Price", "Profit",
}

var productColumns = []string{
	"Barcode", "Product Name", "Category", "Cost Price", "Selling Price", "Stock", "Min Stock", "Unit", "Supplier",
}

// ExportService handles JSON backups and spreadsheet import/export.
type ExportService struct {
	backupRepo      repository.BackupRepository
	saleRepo        repository.SaleRepository
	productRepo     repository.ProductRepository
	transactor      repository.Transactor
	settingsService *SettingsService
	now             func() time.Time
}

// NewExportService creates a new export service
func NewExportService(
	backupRepo repository.BackupRepository,
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	transactor repository.Transactor,
	settingsService *SettingsService,
) *ExportService {
	return &ExportService{
		backupRepo:      backupRepo,
		saleRepo:        saleRepo,
		productRepo:     productRepo,
		transactor:      transactor,
		settingsService: settingsService,
		now:             time.Now,
	}
}

// Backup dumps every table and names the file after the export date.
func (s *ExportService) Backup(ctx context.Context) (*entity.Backup, string, error) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, "", err
	}
	backup, err := s.backupRepo.Snapshot(ctx)
	if err != nil {
		return nil, "", apperror.Persistence(err)
	}
	backup.ExportDate = s.now().UTC()
	name := utils.ExportFileName(settings.ExportFileName, backup.ExportDate.Format(backupDateLayout), "json")
	return backup, name, nil
}

// Restore replaces the whole store with backup. A backup without an admin
// account is refused so the till cannot lock itself out.
func (s *ExportService) Restore(ctx context.Context, backup *entity.Backup) error {
	if backup == nil {
		return apperror.Validation("backup", "Backup is empty")
	}
	hasAdmin := false
	for _, c := range backup.Cashiers {
		if c.Role == enum.RoleAdmin && c.PINHash != "" {
			hasAdmin = true
			break
		}
	}
	if !hasAdmin {
		return apperror.Validation("cashiers", "Backup must contain an admin account")
	}

	if err := s.backupRepo.Replace(ctx, backup); err != nil {
		return apperror.Persistence(err)
	}
	logger.Info().
		Int("products", len(backup.Products)).
		Int("sales", len(backup.Sales)).
		Time("export_date", backup.ExportDate).
		Msg("Backup imported")
	return nil
}

// SalesWorkbook writes one row per sold line in [start, end].
func (s *ExportService) SalesWorkbook(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	sales, err := s.saleRepo.ListSince(ctx, start)
	if err != nil {
		return nil, "", apperror.Persistence(err)
	}

	products := make(map[uint]entity.Product)
	var ids []uint
	for _, sale := range sales {
		for _, item := range sale.Items {
			if _, ok := products[item.ProductID]; !ok {
				products[item.ProductID] = entity.Product{}
				ids = append(ids, item.ProductID)
			}
		}
	}
	found, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, "", apperror.Persistence(err)
	}
	for _, p := range found {
		products[p.ID] = p
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), salesSheet); err != nil {
		return nil, "", err
	}
	if err := writeHeader(f, salesSheet, salesColumns); err != nil {
		return nil, "", err
	}

	row := 2
	for _, sale := range sales {
		if sale.Timestamp.After(end) {
			continue
		}
		local := sale.Timestamp.Local()
		for i := range sale.Items {
			item := &sale.Items[i]
			product := products[item.ProductID]
			category := product.Category
			if category == "" {
				category = "N/A"
			}
			unit := item.Unit
			if unit == "" {
				unit = "pc"
			}
			values := []interface{}{
				sale.ID,
				local.Format(xlsxDateLayout),
				local.Format(xlsxTimeLayout),
				item.Name,
				item.Barcode,
				category,
				item.Price,
				item.Quantity,
				unit,
				item.Discount.Type.String(),
				item.Discount.Percent(),
				item.Discount.Amount(),
				item.Total,
				sale.Discount,
				sale.Tax,
				sale.Total,
				sale.PaymentMethod.String(),
				sale.Cashier,
				product.CostPrice,
				item.Total - product.CostPrice*item.Quantity,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(salesSheet, cell, &values); err != nil {
				return nil, "", err
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	name := fmt.Sprintf("sales-report-%s.xlsx", s.now().Format(backupDateLayout))
	return buf.Bytes(), name, nil
}

// ProductTemplate is an empty import sheet with the expected headers and one example row.
func (s *ExportService) ProductTemplate() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), productsSheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, productsSheet, productColumns); err != nil {
		return nil, err
	}
	example := []interface{}{"1234567890", "Sample Product", "Pantry", 50.0, 75.0, 100, 10, "piece", "Sample Supplier"}
	if err := f.SetSheetRow(productsSheet, "A2", &example); err != nil {
		return nil, err
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ImportResult counts what a product import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Updated  int `json:"updated"`
}

// ImportProducts reads the first sheet of an xlsx workbook and upserts products
// by barcode. Every row is validated before anything is written; one bad row
// rejects the whole file.
func (s *ExportService) ImportProducts(ctx context.Context, r io.Reader) (*ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read spreadsheet: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Spreadsheet has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Could not read sheet: " + err.Error())
	}
	if len(rows) < 2 {
		return nil, apperror.NewBadRequestError("Spreadsheet has no product rows")
	}

	products, fieldErrors := parseProductRows(rows)
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	result := &ImportResult{}
	err = s.transactor.WithinTransaction(ctx, func(store repository.Store) error {
		for i := range products {
			in := &products[i]
			existing, err := store.Products().GetByBarcode(ctx, in.Barcode)
			if err != nil {
				return err
			}
			if existing != nil {
				in.apply(existing)
				if err := store.Products().Update(ctx, existing); err != nil {
					return err
				}
				result.Updated++
				continue
			}
			product := &entity.Product{}
			in.apply(product)
			if err := store.Products().Create(ctx, product); err != nil {
				return err
			}
			result.Imported++
		}
		return nil
	})
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	logger.Info().Int("imported", result.Imported).Int("updated", result.Updated).Msg("Products imported")
	return result, nil
}

func parseProductRows(rows [][]string) ([]ProductInput, []apperror.FieldError) {
	col := make(map[string]int)
	for i, name := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := col[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var (
		products    []ProductInput
		fieldErrors []apperror.FieldError
	)
	fail := func(rowNum int, msg string) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: fmt.Sprintf("row %d", rowNum), Message: msg})
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		if strings.TrimSpace(strings.Join(row, "")) == "" {
			continue
		}

		in := ProductInput{
			Barcode:  cell(row, "Barcode"),
			Name:     cell(row, "Product Name"),
			Category: cell(row, "Category"),
			Unit:     cell(row, "Unit"),
			Supplier: cell(row, "Supplier"),
		}
		if in.Barcode == "" {
			fail(rowNum, "Barcode is required")
			continue
		}
		if in.Name == "" {
			fail(rowNum, "Product Name is required")
			continue
		}
		if in.Unit == "" {
			fail(rowNum, "Unit is required")
			continue
		}

		ok := true
		numbers := []struct {
			name     string
			dest     *float64
			required bool
		}{
			{"Cost Price", &in.CostPrice, true},
			{"Selling Price", &in.SellingPrice, true},
			{"Stock", &in.Stock, true},
			{"Min Stock", &in.MinStock, false},
		}
		for _, n := range numbers {
			raw := cell(row, n.name)
			if raw == "" {
				if n.required {
					fail(rowNum, n.name+" is required")
					ok = false
				} else {
					*n.dest = defaultMinStock
				}
				continue
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
				fail(rowNum, n.name+" must be a valid non-negative number")
				ok = false
				continue
			}
			*n.dest = v
		}
		if ok {
			products = append(products, in)
		}
	}
	return products, fieldErrors
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.ColumnNumberToName(len(columns))
	if err := f.SetRowStyle(sheet, 1, 1, style); err != nil {
		return err
	}
	return f.SetColWidth(sheet, "A", last, 14)
}
