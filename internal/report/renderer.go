// Package report renders an activity group as a paginated F4 document with the
// office letterhead, a five column table and a signature block.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/i18n"
)

const logoImageName = "letterhead-logo"

// Options configures a Renderer. Zero values fall back to defaults.
type Options struct {
	Locale          string
	InstitutionLine string
	Now             func() time.Time
	Location        *time.Location
	Logger          *slog.Logger
}

// Renderer turns domain records into documents. It never mutates its inputs.
type Renderer struct {
	labels      i18n.Translator
	institution string
	now         func() time.Time
	loc         *time.Location
	logger      *slog.Logger
}

// NewRenderer constructs a Renderer.
func NewRenderer(opts Options) *Renderer {
	r := &Renderer{
		labels:      i18n.New(opts.Locale),
		institution: strings.TrimSpace(opts.InstitutionLine),
		now:         opts.Now,
		loc:         opts.Location,
		logger:      opts.Logger,
	}
	if r.institution == "" {
		r.institution = DefaultInstitutionLine
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.loc == nil {
		r.loc = time.Local
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	return r
}

// Page describes what was placed on one page of a document.
type Page struct {
	Number       int
	Letterhead   bool
	ColumnHeader bool
	Signature    bool
	// SignatureNIP is the NIP line printed under the signer's name, empty
	// when the signer has none.
	SignatureNIP string
	// Rows lists the indexes of table rows drawn on the page. A row split
	// across a page break appears on both pages.
	Rows []int
}

// Document is a rendered report.
type Document struct {
	Title        string
	Subtitle     string
	DateFallback bool
	GeneratedAt  time.Time
	Rows         []Row
	Pages        []Page
	LogoDrawn    bool

	content []byte
}

// PageCount returns the number of pages.
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Bytes returns a copy of the encoded PDF.
func (d *Document) Bytes() []byte {
	return bytes.Clone(d.content)
}

// WriteTo writes the encoded PDF to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(d.content)
	return int64(n), err
}

// Render produces the report for group. Items are drawn in the given order;
// callers filter them to the group beforehand.
func (r *Renderer) Render(group domain.ActivityGroup, items []domain.ActivityItem, letterhead domain.Letterhead, author domain.Identity, persons []domain.Person) (*Document, error) {
	generatedAt := r.now().In(r.loc)
	doc := &Document{
		Title:       r.labels.Text(i18n.ReportTitle),
		GeneratedAt: generatedAt,
		Rows:        BuildRows(items, persons, author, r.institution, r.labels),
	}

	day, err := group.Day(r.loc)
	var parseErr *domain.ParseError
	switch {
	case err == nil:
		doc.Subtitle = r.labels.LongDate(day)
	case errors.As(err, &parseErr):
		doc.Subtitle = group.Date
		doc.DateFallback = true
		r.logger.Warn("group date not parsable, printing it verbatim", "group_id", group.ID, "date", group.Date)
	default:
		return nil, fmt.Errorf("report: resolve group date: %w", err)
	}

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: PageWidth, Ht: PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(marginX, headerTop, marginX)
	pdf.SetCreationDate(generatedAt)
	pdf.SetTitle(doc.Title+" "+doc.Subtitle, true)
	pdf.SetAuthor(author.Name, true)

	w := &pageWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), doc: doc}
	doc.LogoDrawn = r.registerLogo(pdf, letterhead.LogoData)

	w.addPage(true, true)
	w.letterhead(letterhead, doc.LogoDrawn)
	w.titleBlock(doc.Title, doc.Subtitle)

	headers := [columnCount]string{
		r.labels.Text(i18n.ColumnTime),
		r.labels.Text(i18n.ColumnPlace),
		r.labels.Text(i18n.ColumnActivity),
		r.labels.Text(i18n.ColumnNotes),
		r.labels.Text(i18n.ColumnResponsible),
	}
	w.y = tableTop
	w.columnHeader(headers)
	for index, row := range doc.Rows {
		w.tableRow(index, row, headers)
	}

	w.signature(letterhead.SigningCity+", "+r.labels.LongDate(generatedAt), r.institution, author)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("report: layout: %w", err)
	}
	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("report: encode pdf: %w", err)
	}
	doc.content = out.Bytes()
	return doc, nil
}

// registerLogo prepares the letterhead logo. Any failure is logged and the
// header is drawn without it.
func (r *Renderer) registerLogo(pdf *fpdf.Fpdf, data string) bool {
	img, err := DecodeLogo(data)
	if errors.Is(err, ErrNoLogo) {
		return false
	}
	if err != nil {
		r.logger.Warn("skipping letterhead logo", "error", err)
		return false
	}
	encoded, err := PrepareLogo(img, logoPixels)
	if err != nil {
		r.logger.Warn("skipping letterhead logo", "error", err)
		return false
	}
	pdf.RegisterImageOptionsReader(logoImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(encoded))
	if err := pdf.Error(); err != nil {
		pdf.ClearError()
		r.logger.Warn("skipping letterhead logo", "error", err)
		return false
	}
	return true
}

const tableTop = 72.0

type pageWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	doc *Document
	y   float64
}

func (w *pageWriter) addPage(letterhead, columnHeader bool) {
	w.pdf.AddPage()
	w.doc.Pages = append(w.doc.Pages, Page{
		Number:       len(w.doc.Pages) + 1,
		Letterhead:   letterhead,
		ColumnHeader: columnHeader,
	})
}

func (w *pageWriter) page() *Page {
	return &w.doc.Pages[len(w.doc.Pages)-1]
}

func (w *pageWriter) text(x, y float64, s string) {
	w.pdf.Text(x, y, w.tr(s))
}

func (w *pageWriter) centered(cx, y float64, s string) {
	s = w.tr(s)
	w.pdf.Text(cx-w.pdf.GetStringWidth(s)/2, y, s)
}

func (w *pageWriter) measure(s string) float64 {
	return w.pdf.GetStringWidth(w.tr(s))
}

func (w *pageWriter) letterhead(head domain.Letterhead, withLogo bool) {
	if withLogo {
		w.pdf.ImageOptions(logoImageName, marginX, headerTop-2, logoSize, logoSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	lines := letterheadLines(head)
	cx := headerTextCenter()
	w.pdf.SetFont("Times", "B", 14)
	w.centered(cx, headerTop+6, lines[0])
	w.pdf.SetFont("Times", "B", 16)
	w.centered(cx, headerTop+14, lines[1])
	w.pdf.SetFont("Times", "", 10)
	w.centered(cx, headerTop+21, lines[2])
	w.centered(cx, headerTop+26, lines[3])

	w.pdf.SetLineWidth(1)
	w.pdf.Line(marginX, 47, PageWidth-marginX, 47)
	w.pdf.SetLineWidth(0.5)
	w.pdf.Line(marginX, 48, PageWidth-marginX, 48)
}

// letterheadLines returns the four letterhead lines as printed. Both
// institution lines are set in capitals.
func letterheadLines(head domain.Letterhead) [4]string {
	return [4]string{
		strings.ToUpper(head.InstitutionLine1),
		strings.ToUpper(head.InstitutionLine2),
		head.Address,
		head.Contact,
	}
}

func (w *pageWriter) titleBlock(title, subtitle string) {
	w.pdf.SetFont("Times", "B", 14)
	w.centered(PageWidth/2, 57, title)
	w.pdf.SetFont("Times", "B", 12)
	w.centered(PageWidth/2, 63, subtitle)
}

func (w *pageWriter) columnHeader(headers [columnCount]string) {
	widths := tableColumnWidths()
	height := rowHeight(1)
	w.pdf.SetFont("Times", "B", tableFontSize)
	w.pdf.SetLineWidth(tableLineWidth)
	w.pdf.SetFillColor(columnHeaderFill[0], columnHeaderFill[1], columnHeaderFill[2])
	x := marginX
	for i, label := range headers {
		w.pdf.Rect(x, w.y, widths[i], height, "FD")
		w.centered(x+widths[i]/2, w.y+cellPadding+baselineOffset(), label)
		x += widths[i]
	}
	w.y += height
}

// continuationCapacity is the number of text lines a row can hold on a fresh
// continuation page below the repeated column header.
func continuationCapacity() int {
	return linesFitting(continuationTop + rowHeight(1))
}

func linesFitting(y float64) int {
	room := tableBottom - y - 2*cellPadding
	if room <= 0 {
		return 0
	}
	return int(room / tableLineHeight())
}

// tableRow draws one row. A row that does not fit moves whole to a new page
// when it fits there; taller rows are split across pages.
func (w *pageWriter) tableRow(index int, row Row, headers [columnCount]string) {
	widths := tableColumnWidths()
	w.pdf.SetFont("Times", "", tableFontSize)

	var lines [columnCount][]string
	total := 1
	for i, cell := range row.cells() {
		lines[i] = wrapText(cell, widths[i]-2*cellPadding, w.measure)
		total = max(total, len(lines[i]))
	}

	for offset := 0; offset < total; {
		remaining := total - offset
		fit := linesFitting(w.y)
		if fit < remaining && (fit < 1 || (offset == 0 && remaining <= continuationCapacity())) {
			w.continuationPage(headers)
			continue
		}
		n := min(fit, remaining)
		w.rowSegment(lines, offset, n)
		w.notePageRow(index)
		offset += n
	}
}

func (w *pageWriter) continuationPage(headers [columnCount]string) {
	w.addPage(false, true)
	w.y = continuationTop
	w.columnHeader(headers)
	w.pdf.SetFont("Times", "", tableFontSize)
}

func (w *pageWriter) rowSegment(lines [columnCount][]string, offset, n int) {
	widths := tableColumnWidths()
	height := rowHeight(n)
	lineHeight := tableLineHeight()
	w.pdf.SetLineWidth(tableLineWidth)

	x := marginX
	for i := range lines {
		w.pdf.Rect(x, w.y, widths[i], height, "D")
		for j := 0; j < n && offset+j < len(lines[i]); j++ {
			w.text(x+cellPadding, w.y+cellPadding+float64(j)*lineHeight+baselineOffset(), lines[i][offset+j])
		}
		x += widths[i]
	}
	w.y += height
}

func (w *pageWriter) notePageRow(index int) {
	page := w.page()
	if n := len(page.Rows); n > 0 && page.Rows[n-1] == index {
		return
	}
	page.Rows = append(page.Rows, index)
}

func (w *pageWriter) signature(dateLine, institution string, author domain.Identity) {
	y := w.y + signatureOffset
	if y > signatureLimit {
		w.addPage(false, false)
		y = continuationTop
	}
	w.page().Signature = true

	x := PageWidth - marginX - signatureWidth
	w.pdf.SetFont("Times", "", 12)
	w.text(x, y, strings.TrimPrefix(dateLine, ", "))
	w.text(x, y+5, institution)

	nameY, nipY := signatureBaselines(y)
	w.pdf.SetFont("Times", "B", 12)
	w.text(x, nameY, author.Name)
	w.pdf.SetLineWidth(0.3)
	w.pdf.Line(x, nameY+1, x+underlineWidth, nameY+1)

	if domain.HasNIP(author.NIP) {
		line := "NIP. " + strings.TrimSpace(author.NIP)
		w.pdf.SetFont("Times", "", 12)
		w.text(x, nipY, line)
		w.page().SignatureNIP = line
	}
}
