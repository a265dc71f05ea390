package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/logger"
	"github.com/sangkips/tillpoint/pkg/metrics"
	"github.com/sangkips/tillpoint/pkg/printer"
	"github.com/sangkips/tillpoint/pkg/utils"
)

// errPrintRace means another print of the same sale committed first.
var errPrintRace = errors.New("print count changed concurrently")

const printAttempts = 3

// ReceiptService renders receipts and records print provenance.
type ReceiptService struct {
	saleRepo        repository.SaleRepository
	transactor      repository.Transactor
	settingsService *SettingsService
	printer         printer.Printer
	printerType     string
	width           int
	metrics         *metrics.Recorder
	now             func() time.Time
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(
	saleRepo repository.SaleRepository,
	transactor repository.Transactor,
	settingsService *SettingsService,
	p printer.Printer,
	printerType string,
	width int,
	recorder *metrics.Recorder,
) *ReceiptService {
	return &ReceiptService{
		saleRepo:        saleRepo,
		transactor:      transactor,
		settingsService: settingsService,
		printer:         p,
		printerType:     printerType,
		width:           width,
		metrics:         recorder,
		now:             time.Now,
	}
}

// ReceiptOutput is a rendered receipt. Warning is set when provenance was
// recorded but the device did not take the job.
type ReceiptOutput struct {
	Receipt *entity.Receipt `json:"receipt"`
	Text    string          `json:"text"`
	Warning string          `json:"warning,omitempty"`
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// Status reports the configured printer and whether it is reachable.
func (s *ReceiptService) Status() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// Preview renders a sale's receipt without touching its print count.
func (s *ReceiptService) Preview(ctx context.Context, saleID uint) (*ReceiptOutput, error) {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}

	receipt := BuildReceipt(sale, settings)
	doc := FormatReceipt(receipt, s.width)
	return &ReceiptOutput{Receipt: receipt, Text: doc.String()}, nil
}

// Print records one print action on the sale, then renders the receipt and
// sends it to the printer. The count and history are committed before any
// output is produced.
func (s *ReceiptService) Print(ctx context.Context, saleID uint) (*ReceiptOutput, error) {
	settings, err := s.settingsService.Get(ctx)
	if err != nil {
		return nil, err
	}

	var sale *entity.Sale
	for attempt := 0; attempt < printAttempts; attempt++ {
		sale, err = s.recordPrint(ctx, saleID)
		if !errors.Is(err, errPrintRace) {
			break
		}
	}
	if errors.Is(err, errPrintRace) {
		return nil, apperror.NewConflictError("Receipt is being printed, try again")
	}
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	s.metrics.ReceiptPrinted()

	receipt := BuildReceipt(sale, settings)
	doc := FormatReceipt(receipt, s.width)
	out := &ReceiptOutput{Receipt: receipt, Text: doc.String()}

	if err := s.printer.Print(doc.Bytes()); err != nil {
		logger.Warn().Err(err).Uint("sale_id", saleID).Msg("Receipt recorded but printer failed")
		out.Warning = fmt.Sprintf("failed to print receipt: %v", err)
	}

	logger.Info().Uint("sale_id", saleID).Int("print_count", sale.PrintCount).Msg("Receipt printed")
	return out, nil
}

func (s *ReceiptService) recordPrint(ctx context.Context, saleID uint) (*entity.Sale, error) {
	var sale *entity.Sale
	err := s.transactor.WithinTransaction(ctx, func(store repository.Store) error {
		loaded, err := store.Sales().GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if loaded == nil {
			return apperror.NewNotFoundError("Sale")
		}

		stamp := s.now().UTC()
		// keep history strictly increasing even if the clock has not moved
		if n := len(loaded.PrintHistory); n > 0 && !stamp.After(loaded.PrintHistory[n-1]) {
			stamp = loaded.PrintHistory[n-1].Add(time.Microsecond)
		}
		history := make([]time.Time, 0, len(loaded.PrintHistory)+1)
		history = append(history, loaded.PrintHistory...)
		history = append(history, stamp)

		ok, err := store.Sales().RecordPrint(ctx, saleID, loaded.PrintCount, history)
		if err != nil {
			return err
		}
		if !ok {
			return errPrintRace
		}

		loaded.PrintCount++
		loaded.PrintHistory = history
		sale = loaded
		return nil
	})
	return sale, err
}

// BuildReceipt composes the receipt for a persisted sale. Totals are shown as
// stored, never recomputed.
func BuildReceipt(sale *entity.Sale, settings *entity.Settings) *entity.Receipt {
	r := &entity.Receipt{
		Header: entity.ReceiptHeader{
			StoreName: settings.StoreName,
			Address:   settings.StoreAddress,
			Phone:     settings.StorePhone,
			TaxID:     settings.TaxID,
			Message:   settings.ReceiptHeader,
		},
		SaleID:      sale.ID,
		InvoiceNo:   utils.ReceiptNumber(sale.ID),
		Date:        sale.Timestamp.Local().Format("2006-01-02 15:04"),
		Cashier:     sale.Cashier,
		Customer:    sale.CustomerName,
		Currency:    settings.Currency,
		PaymentType: sale.PaymentMethod.String(),
		SubTotal:    sale.Subtotal,
		Discount:    sale.Discount,
		Tax:         sale.Tax,
		Total:       sale.Total,
		Paid:        sale.AmountPaid,
		Change:      sale.Change,
		Footer:      settings.ReceiptFooter,
		PrintCount:  sale.PrintCount,
	}

	r.Items = make([]entity.ReceiptItem, 0, len(sale.Items))
	for i := range sale.Items {
		item := &sale.Items[i]
		qty, unit := DisplayQuantity(item.Quantity, item.Unit)
		r.Items = append(r.Items, entity.ReceiptItem{
			Name:      item.Name,
			Quantity:  qty,
			Unit:      unit,
			UnitPrice: item.Price,
			Discount:  item.DiscountValue(),
			Total:     item.Total,
		})
	}
	return r
}

// DisplayQuantity converts a stored quantity into what the receipt shows:
// under a kilo prints grams, under a litre prints millilitres, half a bottle
// prints "half bottle". The stored quantity is never changed.
func DisplayQuantity(qty float64, unit string) (string, string) {
	u := strings.ToLower(strings.TrimSpace(unit))
	switch {
	case u == "":
		return formatQuantity(qty), "pc"
	case strings.Contains(u, "kg") || strings.Contains(u, "kilogram"):
		if qty < 1 {
			return formatQuantity(qty * 1000), "g"
		}
		return formatQuantity(qty), "kg"
	case strings.Contains(u, "bottle"):
		if qty == 0.5 {
			return "half", "bottle"
		}
		return formatQuantity(qty), "bottle"
	case isMillilitre(u):
		return formatQuantity(qty), unit
	case isLitre(u):
		if qty < 1 {
			return formatQuantity(qty * 1000), "ml"
		}
		return formatQuantity(qty), "L"
	}
	return formatQuantity(qty), unit
}

func isMillilitre(u string) bool {
	return u == "ml" || strings.Contains(u, "millilit") || strings.HasSuffix(u, "ml")
}

// isLitre matches "l", "liter", "litre" and sized forms such as "1l".
func isLitre(u string) bool {
	if u == "l" || strings.Contains(u, "liter") || strings.Contains(u, "litre") {
		return true
	}
	n := len(u)
	return n > 1 && u[n-1] == 'l' && u[n-2] >= '0' && u[n-2] <= '9'
}

// formatQuantity drops trailing zeros and float noise past three decimals.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(math.Round(q*1000)/1000, 'f', -1, 64)
}

// formatMoney rounds half away from zero to two places for display.
func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

// FormatReceipt lays the receipt out for a printer width characters wide.
func FormatReceipt(r *entity.Receipt, width int) *printer.Document {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.TextF("Tax ID: %s", r.Header.TaxID)
	}
	if r.Header.Message != "" {
		doc.Text(r.Header.Message)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Receipt:", r.InvoiceNo).
		KeyValue("Date:", r.Date)
	if r.Cashier != "" {
		doc.KeyValue("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.KeyValue("Customer:", r.Customer)
	}
	if r.PrintCount > 1 {
		doc.KeyValue("Copy:", strconv.Itoa(r.PrintCount))
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Quantity+" "+item.Unit, item.Name, formatMoney(item.Total))
		if item.Quantity != "1" {
			doc.TextF("  @ %s", formatMoney(item.UnitPrice))
		}
		if item.Discount > 0 {
			doc.TextF("  Discount -%s", formatMoney(item.Discount))
		}
	}

	doc.Separator('-')

	doc.KeyValue("Subtotal:", formatMoney(r.SubTotal))
	if r.Discount > 0 {
		doc.KeyValue("Discount:", "-"+formatMoney(r.Discount))
	}
	doc.KeyValue("Tax:", formatMoney(r.Tax))
	doc.SetBold(true).
		KeyValue("TOTAL:", strings.TrimSpace(r.Currency+" "+formatMoney(r.Total))).
		SetBold(false)

	doc.KeyValue("Payment:", strings.ToUpper(r.PaymentType))
	doc.KeyValue("Paid:", formatMoney(r.Paid))
	if r.Change > 0 {
		doc.KeyValue("Change:", formatMoney(r.Change))
	}

	doc.Separator('-')

	if r.Footer != "" {
		doc.SetAlign(printer.AlignCenter).
			Text(r.Footer).
			SetAlign(printer.AlignLeft)
	}

	doc.FeedLines(3).
		PartialCut()

	return doc
}
