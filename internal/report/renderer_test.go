package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/example/office-agenda/internal/domain"
)

var (
	generated = time.Date(2026, time.January, 5, 9, 30, 0, 0, time.UTC)
	author    = domain.Identity{ID: "u3", Name: "Budi", NIP: "-", Role: domain.RoleUser}
	roster    = []domain.Person{{ID: "p1", Name: "Budi", Position: "Staf"}}
	kop       = domain.Letterhead{
		InstitutionLine1: "Pemerintah Kabupaten Musi Banyuasin",
		InstitutionLine2: "DINAS PEMBERDAYAAN MASYARAKAT DAN DESA",
		Address:          "Jalan Kolonel Wahid Udin No. 234, Sekayu",
		Contact:          "Email: dpmd@mubakab.go.id",
		SigningCity:      "Sekayu",
	}
)

func newTestRenderer(locale string) *Renderer {
	return NewRenderer(Options{
		Locale:          locale,
		InstitutionLine: "PMD",
		Now:             func() time.Time { return generated },
		Location:        time.UTC,
	})
}

func shortItems(n int) []domain.ActivityItem {
	items := make([]domain.ActivityItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, domain.ActivityItem{
			ID:      fmt.Sprintf("i%d", i),
			GroupID: "g1",
			Time:    "08:00",
			Place:   "Aula",
			Title:   "Rapat",
		})
	}
	return items
}

func TestRenderSingleItem(t *testing.T) {
	t.Parallel()

	group := domain.ActivityGroup{ID: "g1", Date: "2026-01-02", CreatorID: "u3"}
	items := []domain.ActivityItem{{ID: "i1", GroupID: "g1", Time: "08:00", Place: "Aula", Title: "Rapat", AttendeeIDs: []string{"p1"}}}

	doc, err := newTestRenderer("id").Render(group, items, kop, author, roster)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.Title != "AGENDA KEGIATAN" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if doc.Subtitle != "2 Januari 2026" || doc.DateFallback {
		t.Fatalf("unexpected subtitle %q (fallback %v)", doc.Subtitle, doc.DateFallback)
	}
	if len(doc.Rows) != 1 || doc.Rows[0].Notes != "Hadir:\n- Budi (Staf)" {
		t.Fatalf("unexpected rows %+v", doc.Rows)
	}
	if doc.Rows[0].Responsible != "Budi\nPMD" {
		t.Fatalf("unexpected responsible cell %q", doc.Rows[0].Responsible)
	}
	if doc.PageCount() != 1 {
		t.Fatalf("expected one page, got %d", doc.PageCount())
	}
	page := doc.Pages[0]
	if !page.Letterhead || !page.ColumnHeader || !page.Signature {
		t.Fatalf("first page should carry letterhead, header and signature: %+v", page)
	}
	if !doc.GeneratedAt.Equal(generated) {
		t.Fatalf("generated at %v, want %v", doc.GeneratedAt, generated)
	}
	if !bytes.HasPrefix(doc.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}

	var out bytes.Buffer
	n, err := doc.WriteTo(&out)
	if err != nil || n != int64(len(doc.Bytes())) {
		t.Fatalf("WriteTo wrote %d bytes, err %v", n, err)
	}
}

func TestRenderEnglishLabels(t *testing.T) {
	t.Parallel()

	group := domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}
	items := []domain.ActivityItem{{ID: "i1", GroupID: "g1", AttendeeIDs: []string{"p1"}}}

	doc, err := newTestRenderer("en").Render(group, items, kop, author, roster)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.Subtitle != "2 January 2026" {
		t.Fatalf("unexpected subtitle %q", doc.Subtitle)
	}
	if doc.Rows[0].Notes != "Present:\n- Budi (Staf)" {
		t.Fatalf("unexpected notes %q", doc.Rows[0].Notes)
	}
}

func TestRenderWithoutItems(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer("id").Render(domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}, nil, kop, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.PageCount() != 1 || len(doc.Rows) != 0 || !doc.Pages[0].Signature {
		t.Fatalf("unexpected empty document: %+v", doc.Pages)
	}
}

func TestRenderFallsBackToRawDate(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer("id").Render(domain.ActivityGroup{ID: "g1", Date: "besok pagi"}, shortItems(1), kop, author, nil)
	if err != nil {
		t.Fatalf("Render should degrade instead of failing: %v", err)
	}
	if doc.Subtitle != "besok pagi" || !doc.DateFallback {
		t.Fatalf("expected raw date fallback, got %q (fallback %v)", doc.Subtitle, doc.DateFallback)
	}
}

func TestRenderLogo(t *testing.T) {
	t.Parallel()

	group := domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}

	withLogo := kop
	withLogo.LogoData = "data:image/png;base64," + base64.StdEncoding.EncodeToString(solidPNG(t, 40, 40, color.RGBA{G: 128, A: 255}))
	doc, err := newTestRenderer("id").Render(group, shortItems(1), withLogo, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !doc.LogoDrawn {
		t.Fatalf("expected logo to be drawn")
	}

	corrupt := kop
	corrupt.LogoData = "data:image/png;base64,AAAA"
	doc, err = newTestRenderer("id").Render(group, shortItems(1), corrupt, author, nil)
	if err != nil {
		t.Fatalf("corrupt logo should be skipped, got %v", err)
	}
	if doc.LogoDrawn {
		t.Fatalf("corrupt logo should not be drawn")
	}
}

func TestRenderPaginatesWithRepeatedHeader(t *testing.T) {
	t.Parallel()

	const count = 60
	doc, err := newTestRenderer("id").Render(domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}, shortItems(count), kop, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.PageCount() < 2 {
		t.Fatalf("expected overflow onto several pages, got %d", doc.PageCount())
	}

	seen := make(map[int]int)
	for i, page := range doc.Pages {
		if page.Number != i+1 {
			t.Fatalf("page %d numbered %d", i+1, page.Number)
		}
		if i == 0 {
			continue
		}
		if page.Letterhead {
			t.Fatalf("letterhead repeated on page %d", page.Number)
		}
		if len(page.Rows) > 0 && !page.ColumnHeader {
			t.Fatalf("continuation page %d lacks the column header", page.Number)
		}
		for _, row := range page.Rows {
			seen[row]++
		}
	}
	for _, row := range doc.Pages[0].Rows {
		seen[row]++
	}
	for i := 0; i < count; i++ {
		if seen[i] != 1 {
			t.Fatalf("row %d drawn on %d pages, want exactly one", i, seen[i])
		}
	}
	if !doc.Pages[len(doc.Pages)-1].Signature {
		t.Fatalf("signature should close the last page")
	}
}

func TestRenderSplitsRowTallerThanPage(t *testing.T) {
	t.Parallel()

	lines := make([]string, 150)
	for i := range lines {
		lines[i] = fmt.Sprintf("baris %d", i)
	}
	items := shortItems(1)
	items[0].Notes = strings.Join(lines, "\n")

	doc, err := newTestRenderer("id").Render(domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}, items, kop, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.PageCount() < 3 {
		t.Fatalf("expected the tall row to span pages, got %d pages", doc.PageCount())
	}
	for _, page := range doc.Pages[:2] {
		if len(page.Rows) != 1 || page.Rows[0] != 0 {
			t.Fatalf("page %d should carry part of row 0, got %v", page.Number, page.Rows)
		}
	}
}

func TestRenderMovesSignatureBelowThreshold(t *testing.T) {
	t.Parallel()

	group := domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}

	doc, err := newTestRenderer("id").Render(group, shortItems(13), kop, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.PageCount() != 1 || !doc.Pages[0].Signature {
		t.Fatalf("13 rows should leave room for the signature on page one: %+v", doc.Pages)
	}

	doc, err = newTestRenderer("id").Render(group, shortItems(14), kop, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if doc.PageCount() != 2 {
		t.Fatalf("expected the signature on its own page, got %d pages", doc.PageCount())
	}
	last := doc.Pages[1]
	if !last.Signature || last.ColumnHeader || last.Letterhead || len(last.Rows) != 0 {
		t.Fatalf("unexpected signature page %+v", last)
	}
	if doc.Pages[0].Signature {
		t.Fatalf("signature drawn twice")
	}
}

func TestInspectMatchesDocument(t *testing.T) {
	t.Parallel()

	doc, err := newTestRenderer("id").Render(domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}, shortItems(40), kop, author, nil)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	info, err := Inspect(bytes.NewReader(doc.Bytes()))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if info.PageCount != doc.PageCount() {
		t.Fatalf("pdf has %d pages, document reports %d", info.PageCount, doc.PageCount())
	}
	for _, size := range info.Pages {
		if math.Abs(size.Width-PageWidth) > 0.5 || math.Abs(size.Height-PageHeight) > 0.5 {
			t.Fatalf("unexpected page size %+v", size)
		}
	}
}

func TestLetterheadLinesCapitaliseInstitution(t *testing.T) {
	t.Parallel()

	lines := letterheadLines(domain.Letterhead{
		InstitutionLine1: "Pemerintah Kabupaten Musi Banyuasin",
		InstitutionLine2: "Dinas Pemberdayaan Masyarakat dan Desa",
		Address:          "Jalan Kolonel Wahid Udin, Sekayu",
		Contact:          "Email: dpmd@mubakab.go.id",
	})
	want := [4]string{
		"PEMERINTAH KABUPATEN MUSI BANYUASIN",
		"DINAS PEMBERDAYAAN MASYARAKAT DAN DESA",
		"Jalan Kolonel Wahid Udin, Sekayu",
		"Email: dpmd@mubakab.go.id",
	}
	if lines != want {
		t.Fatalf("letterheadLines = %q, want %q", lines, want)
	}
}

func TestSignatureBaselines(t *testing.T) {
	t.Parallel()

	name, nip := signatureBaselines(100)
	if name != 125 || nip != 131 {
		t.Fatalf("signatureBaselines(100) = (%v, %v), want (125, 131)", name, nip)
	}
}

func TestColumnHeaderIsWhite(t *testing.T) {
	t.Parallel()

	if columnHeaderFill != [3]int{255, 255, 255} {
		t.Fatalf("column header fill %v, want white", columnHeaderFill)
	}
}

func TestRenderSignatureNIPLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		nip  string
		want string
	}{
		{name: "placeholder", nip: "-", want: ""},
		{name: "empty", nip: "", want: ""},
		{name: "set", nip: " 198001012005011001 ", want: "NIP. 198001012005011001"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			signer := domain.Identity{ID: "u1", Name: "Kepala Dinas", NIP: tc.nip, Role: domain.RoleAdmin}
			doc, err := newTestRenderer("id").Render(domain.ActivityGroup{ID: "g1", Date: "2026-01-02"}, shortItems(1), kop, signer, nil)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			last := doc.Pages[len(doc.Pages)-1]
			if !last.Signature || last.SignatureNIP != tc.want {
				t.Fatalf("signature NIP line %q, want %q", last.SignatureNIP, tc.want)
			}
		})
	}
}
