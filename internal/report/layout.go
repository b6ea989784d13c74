package report

// Page geometry in millimetres. F4 (folio) portrait.
const (
	PageWidth  = 215.0
	PageHeight = 330.0

	marginX      = 20.0
	headerTop    = 15.0
	contentWidth = PageWidth - 2*marginX

	logoSize   = 22.0
	logoPixels = 264

	// Continuation pages and a relocated signature start here.
	continuationTop = 20.0
	// Table rows never extend below this line.
	tableBottom = PageHeight - 20.0

	signatureOffset = 10.0
	// A signature anchored below this line moves to a fresh page.
	signatureLimit = 280.0
	signatureWidth = 60.0
	signatureGap   = 25.0
	underlineWidth = 50.0

	cellPadding    = 3.0
	tableFontSize  = 10.0
	tableLineWidth = 0.1
	lineHeightRate = 1.15
	pointToMM      = 25.4 / 72
)

// columnHeaderFill is the background of the column header cells.
var columnHeaderFill = [3]int{255, 255, 255}

// signatureBaselines returns the name and NIP baselines for a signature
// block whose date line sits at top.
func signatureBaselines(top float64) (name, nip float64) {
	name = top + signatureGap
	return name, name + 6
}

// columnWidths holds the fixed widths; the notes column (index 3) takes what is left.
var columnWidths = [columnCount]float64{30, 35, 40, 0, 35}

const (
	columnCount = 5
	notesColumn = 3
)

func tableColumnWidths() [columnCount]float64 {
	widths := columnWidths
	fixed := 0.0
	for i, w := range widths {
		if i != notesColumn {
			fixed += w
		}
	}
	widths[notesColumn] = contentWidth - fixed
	return widths
}

func tableLineHeight() float64 {
	return tableFontSize * pointToMM * lineHeightRate
}

// baselineOffset places a text baseline inside a line box of the table font.
func baselineOffset() float64 {
	font := tableFontSize * pointToMM
	return (tableLineHeight()-font)/2 + 0.8*font
}

func rowHeight(lines int) float64 {
	if lines < 1 {
		lines = 1
	}
	return float64(lines)*tableLineHeight() + 2*cellPadding
}

// headerTextCenter is the horizontal centre of the letterhead text block, the
// middle of the space right of the logo.
func headerTextCenter() float64 {
	return marginX + logoSize + (PageWidth-2*marginX-logoSize)/2
}
