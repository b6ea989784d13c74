// Package i18n resolves report and CLI labels for the supported locales.
// Message keys are the English texts; the catalog carries every key for both
// locales so lookups never fall through to the key itself.
package i18n

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys.
const (
	ReportTitle       = "AGENDA OF ACTIVITIES"
	ColumnTime        = "Time"
	ColumnPlace       = "Place"
	ColumnActivity    = "Activity"
	ColumnNotes       = "Notes"
	ColumnResponsible = "Responsible"
	Present           = "Present:"
	Scheduled         = "Scheduled agenda"
	Empty             = "No activities"
	ActivityCount     = "%d activities"
)

// DefaultLocale is used when no locale or an unsupported one is requested.
var DefaultLocale = language.Indonesian

var supported = []language.Tag{language.Indonesian, language.English}

var matcher = language.NewMatcher(supported)

var indonesian = map[string]string{
	ReportTitle:       "AGENDA KEGIATAN",
	ColumnTime:        "Waktu",
	ColumnPlace:       "Tempat",
	ColumnActivity:    "Acara",
	ColumnNotes:       "Keterangan",
	ColumnResponsible: "Pengampu",
	Present:           "Hadir:",
	Scheduled:         "Agenda Terjadwal",
	Empty:             "Tidak Ada Kegiatan",
	ActivityCount:     "%d Kegiatan",

	"January":   "Januari",
	"February":  "Februari",
	"March":     "Maret",
	"April":     "April",
	"May":       "Mei",
	"June":      "Juni",
	"July":      "Juli",
	"August":    "Agustus",
	"September": "September",
	"October":   "Oktober",
	"November":  "November",
	"December":  "Desember",

	"Monday":    "Senin",
	"Tuesday":   "Selasa",
	"Wednesday": "Rabu",
	"Thursday":  "Kamis",
	"Friday":    "Jumat",
	"Saturday":  "Sabtu",
	"Sunday":    "Minggu",
}

var labels = mustBuildCatalog()

func mustBuildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(DefaultLocale))
	for key, value := range indonesian {
		if err := builder.SetString(language.Indonesian, key, value); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
		if err := builder.SetString(language.English, key, key); err != nil {
			panic(fmt.Sprintf("i18n: register %q: %v", key, err))
		}
	}
	return builder
}

// Translator formats labels and dates for one locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for the best supported match of locale.
func New(locale string) Translator {
	tag := DefaultLocale
	if trimmed := strings.TrimSpace(locale); trimmed != "" {
		if requested, err := language.Parse(trimmed); err == nil {
			_, index, confidence := matcher.Match(requested)
			if confidence != language.No {
				tag = supported[index]
			}
		}
	}
	return Translator{tag: tag, printer: message.NewPrinter(tag, message.Catalog(labels))}
}

// Supported reports whether locale resolves to one of the catalog languages.
func Supported(locale string) bool {
	requested, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return false
	}
	_, _, confidence := matcher.Match(requested)
	return confidence != language.No
}

// Tag returns the resolved language.
func (t Translator) Tag() language.Tag {
	return t.tag
}

// Text returns the translation of key, formatting args into it when given.
func (t Translator) Text(key string, args ...any) string {
	if t.printer == nil {
		t = New("")
	}
	return t.printer.Sprintf(key, args...)
}

// LongDate renders day, full month name and year, e.g. "2 Januari 2026".
func (t Translator) LongDate(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), t.Text(d.Month().String()), d.Year())
}

// ShortDate renders day and abbreviated month name, e.g. "29 Des".
func (t Translator) ShortDate(d time.Time) string {
	month := []rune(t.Text(d.Month().String()))
	if len(month) > 3 {
		month = month[:3]
	}
	return fmt.Sprintf("%d %s", d.Day(), string(month))
}

// Weekday returns the localized weekday name.
func (t Translator) Weekday(d time.Time) string {
	return t.Text(d.Weekday().String())
}
