package types

import (
	"fmt"
	"strconv"
)

// MinArchiveYear is the earliest year the host database can represent.
// Archive years must be strictly greater than this value.
const MinArchiveYear = 1753

// ArchiveDate represents a year or year/month archive listing.
// Month is zero when the archive covers the whole year.
type ArchiveDate struct {
	Year  int
	Month int // 1-12, 0 = whole year
}

// ValidArchiveYear reports whether year is usable as an archive year.
func ValidArchiveYear(year int) bool {
	return year > MinArchiveYear && year <= 9999
}

// ValidArchiveMonth reports whether month is a calendar month.
func ValidArchiveMonth(month int) bool {
	return month >= 1 && month <= 12
}

// ParseArchiveDate converts raw year and month tokens into an ArchiveDate.
// An empty month yields a whole-year archive. Out of range values are
// rejected rather than clamped.
func ParseArchiveDate(rawYear, rawMonth string) (ArchiveDate, bool) {
	year, err := strconv.Atoi(rawYear)
	if err != nil || !ValidArchiveYear(year) {
		return ArchiveDate{}, false
	}
	if rawMonth == "" {
		return ArchiveDate{Year: year}, true
	}
	month, err := strconv.Atoi(rawMonth)
	if err != nil || !ValidArchiveMonth(month) {
		return ArchiveDate{}, false
	}
	return ArchiveDate{Year: year, Month: month}, true
}

// HasMonth returns true if the archive is restricted to a single month.
func (d ArchiveDate) HasMonth() bool {
	return d.Month != 0
}

// Fragment renders the friendly path form: "2023" or "2023/07".
func (d ArchiveDate) Fragment() string {
	if d.HasMonth() {
		return fmt.Sprintf("%04d/%02d", d.Year, d.Month)
	}
	return fmt.Sprintf("%04d", d.Year)
}
