package history

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

// Header is the first CSV row.
type Header [4]string

var (
	HeaderEnglish = Header{"Date", "Work(min)", "Break(min)", "Cycles"}
	HeaderSpanish = Header{"Fecha", "Trabajo (min)", "Descanso (min)", "Ciclos"}
)

// HeaderFor picks the header row for a locale; anything but "es" is English.
func HeaderFor(locale string) Header {
	if locale == "es" {
		return HeaderSpanish
	}
	return HeaderEnglish
}

// ExportCSV renders entries as CSV, one row per entry, minutes rounded.
func ExportCSV(entries []Entry, header Header) (string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header[:]); err != nil {
		return "", err
	}
	for _, e := range entries {
		row := []string{
			e.Date,
			strconv.Itoa(e.WorkMinutes()),
			strconv.Itoa(e.BreakMinutes()),
			strconv.Itoa(e.Cycles),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return buf.String(), nil
}
