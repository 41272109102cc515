package weather

import (
	"strconv"
	"strings"
	"time"
)

// csvHeader is the fixed first line of every export.
const csvHeader = "Location,Start Date,End Date,Latitude,Longitude,Temperature Data,Created At,Updated At"

// ExportCSV renders records as CSV, one line per record after the fixed
// header. The Temperature Data column is a double-quoted list of
// "<yyyy-MM-dd HH:mm>:<temp>°C" entries joined by "; ".
//
// Output is deterministic: floats go through strconv with the shortest
// round-trip representation and timestamps use fixed layouts, so identical
// input always yields byte-identical output. Known limitation kept from the
// original exporter: the location field is written as-is, with no escaping
// of embedded commas or quotes.
func ExportCSV(records []SearchRecord) string {
	var b strings.Builder
	b.WriteString(csvHeader)
	b.WriteString("\n")

	for _, r := range records {
		b.WriteString(r.Location)
		b.WriteString(",")
		b.WriteString(r.StartDate)
		b.WriteString(",")
		b.WriteString(r.EndDate)
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(r.Latitude, 'f', -1, 64))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(r.Longitude, 'f', -1, 64))
		b.WriteString(",")
		b.WriteString("\"")
		for i, s := range r.Snapshot {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(s.Time().Format("2006-01-02 15:04"))
			b.WriteString(":")
			b.WriteString(strconv.FormatFloat(s.Main.Temp, 'f', -1, 64))
			b.WriteString("°C")
		}
		b.WriteString("\"")
		b.WriteString(",")
		b.WriteString(r.CreatedAt.UTC().Format(time.DateTime))
		b.WriteString(",")
		b.WriteString(r.UpdatedAt.UTC().Format(time.DateTime))
		b.WriteString("\n")
	}

	return b.String()
}

// ExportFilename returns the download name for an export taken at ts,
// e.g. weather_records_20240601_153045.csv.
func ExportFilename(ts time.Time) string {
	return "weather_records_" + ts.UTC().Format("20060102_150405") + ".csv"
}
