package report

import (
	"fmt"
	"strings"

	"github.com/example/office-agenda/internal/agenda"
	"github.com/example/office-agenda/internal/domain"
	"github.com/example/office-agenda/internal/i18n"
)

// DefaultInstitutionLine is printed under the author in the responsible column
// and under the signing city in the signature block.
const DefaultInstitutionLine = "Dinas PMD Kab. Muba"

// Row holds the text of one table row before wrapping.
type Row struct {
	Time        string
	Place       string
	Title       string
	Notes       string
	Responsible string
}

func (r Row) cells() [columnCount]string {
	return [columnCount]string{r.Time, r.Place, r.Title, r.Notes, r.Responsible}
}

// NotesCell composes the notes column: the manual note, a blank line, then the
// present header with one line per resolved attendee. Each part is omitted
// when empty.
func NotesCell(item domain.ActivityItem, persons []domain.Person, labels i18n.Translator) string {
	var b strings.Builder
	if item.Notes != "" {
		b.WriteString(item.Notes)
		b.WriteString("\n\n")
	}
	if attendees := agenda.AttendeesOf(item, persons); len(attendees) > 0 {
		b.WriteString(labels.Text(i18n.Present))
		b.WriteString("\n")
		for _, person := range attendees {
			fmt.Fprintf(&b, "- %s (%s)\n", person.Name, person.Position)
		}
	}
	return strings.TrimSpace(b.String())
}

// ResponsibleCell is identical for every row of a document.
func ResponsibleCell(author domain.Identity, institutionLine string) string {
	return author.Name + "\n" + institutionLine
}

// BuildRows maps items to table rows in the given order.
func BuildRows(items []domain.ActivityItem, persons []domain.Person, author domain.Identity, institutionLine string, labels i18n.Translator) []Row {
	responsible := ResponsibleCell(author, institutionLine)
	rows := make([]Row, 0, len(items))
	for _, item := range items {
		rows = append(rows, Row{
			Time:        item.Time,
			Place:       item.Place,
			Title:       item.Title,
			Notes:       NotesCell(item, persons, labels),
			Responsible: responsible,
		})
	}
	return rows
}
