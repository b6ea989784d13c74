package report

import (
	"reflect"
	"testing"
)

func byteWidth(s string) float64 {
	return float64(len(s))
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width float64
		want  []string
	}{
		{name: "empty", text: "", width: 10, want: []string{""}},
		{name: "fits", text: "rapat pagi", width: 10, want: []string{"rapat pagi"}},
		{name: "greedy", text: "aaa bbb ccc", width: 7, want: []string{"aaa bbb", "ccc"}},
		{name: "keeps blank lines", text: "catatan\n\nHadir:", width: 20, want: []string{"catatan", "", "Hadir:"}},
		{name: "splits long word", text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "long word after short", text: "ab abcdefgh", width: 4, want: []string{"ab", "abcd", "efgh"}},
		{name: "collapses spaces", text: "  a   b  ", width: 10, want: []string{"a b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := wrapText(tt.text, tt.width, byteWidth)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("wrapText(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestRowHeightGrowsWithLines(t *testing.T) {
	t.Parallel()

	if rowHeight(0) != rowHeight(1) {
		t.Fatalf("rowHeight(0) = %v, want the single line height %v", rowHeight(0), rowHeight(1))
	}
	if rowHeight(3) <= rowHeight(2) {
		t.Fatalf("rowHeight should grow with line count")
	}
	widths := tableColumnWidths()
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	if sum != contentWidth {
		t.Fatalf("column widths sum to %v, want %v", sum, contentWidth)
	}
	if widths[notesColumn] != 35 {
		t.Fatalf("notes column width = %v, want 35", widths[notesColumn])
	}
}
