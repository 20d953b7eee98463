package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"

	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/domain/models"
	"github.com/Abhisheklodhi2001/Austria-Express/internal/utils"
)

// FareSheetService renders the priced fare table of a route as a PDF.
type FareSheetService struct {
	log         *zap.Logger
	ticketTypes *TicketTypeService
}

func NewFareSheetService(log *zap.Logger, ticketTypes *TicketTypeService) *FareSheetService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FareSheetService{log: log, ticketTypes: ticketTypes}
}

// Generate returns the PDF bytes and a file name for routeID on date.
func (s *FareSheetService) Generate(ctx context.Context, routeID domain.ID, date time.Time) ([]byte, string, error) {
	res, err := s.ticketTypes.ByRoute(ctx, TicketTypeQuery{RouteID: routeID, Date: date})
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.log, utils.RequestIDFrom(ctx), "fare_sheet", "generate", "fare sheet rendered",
		zap.Int64("route_id", int64(routeID)),
		zap.Int("rows", len(res.TicketTypes)),
	)
	return buildFareSheetPDF(res)
}

func buildFareSheetPDF(res TicketTypeResult) ([]byte, string, error) {
	orientation := "P"
	if len(res.Columns) > 3 {
		orientation = "L"
	}
	pdf := gofpdf.New(orientation, "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Fare sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr("FARE SHEET"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	lines := []string{
		fmt.Sprintf("Route         : #%d %s", res.Route.ID, safe(res.Route.Title, "-")),
		fmt.Sprintf("Travel date   : %s", safe(res.Date, "-")),
		fmt.Sprintf("Exchange rate : %s", res.ExchangeRate.String()),
		fmt.Sprintf("Discount      : %s", describeDiscount(res)),
	}
	for _, l := range lines {
		pdf.Cell(0, 6, tr(l))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	cityW := 40.0
	priceW := 30.0
	if n := len(res.Columns); n > 0 {
		priceW = (pageW - left - right - 2*cityW) / float64(n)
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(cityW, 7, "From", "1", 0, "L", false, 0, "")
	pdf.CellFormat(cityW, 7, "To", "1", 0, "L", false, 0, "")
	for _, col := range res.Columns {
		pdf.CellFormat(priceW, 7, tr(col), "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, row := range res.TicketTypes {
		pdf.CellFormat(cityW, 6, tr(safe(row.StartCityName, fmt.Sprintf("#%d", row.StartCityID))), "1", 0, "L", false, 0, "")
		pdf.CellFormat(cityW, 6, tr(safe(row.EndCityName, fmt.Sprintf("#%d", row.EndCityID))), "1", 0, "L", false, 0, "")
		for _, col := range res.Columns {
			base := utils.FormatPrice(row.BasePrice[col])
			updated := utils.FormatPrice(row.UpdatedBasePrice[col])
			cell := updated
			if base != updated {
				cell = base + " / " + updated
			}
			pdf.CellFormat(priceW, 6, cell, "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(res.TicketTypes) == 0 {
		pdf.Ln(2)
		pdf.Cell(0, 6, "No fares defined for this route.")
		pdf.Ln(6)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.MultiCell(0, 5, "Prices show converted / discounted values where a discount applies.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("FARES_%d_%s.pdf", res.Route.ID, safeFilenamePart(res.Date))
	return buf.Bytes(), filename, nil
}

func describeDiscount(res TicketTypeResult) string {
	d := res.Discount
	if d == nil {
		return "none"
	}
	value := utils.FormatPrice(d.Value)
	switch d.Type {
	case models.DiscountDecrease:
		return fmt.Sprintf("-%s%% (#%d)", value, d.ID)
	case models.DiscountIncrease:
		return fmt.Sprintf("+%s%% (#%d)", value, d.ID)
	default:
		return fmt.Sprintf("%s %s (#%d)", string(d.Type), value, d.ID)
	}
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
