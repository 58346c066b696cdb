package export

import (
	"strings"

	"congregate/internal/domain/models"
)

// RenderCSV produces the export byte stream: one header row from the column
// labels, then one row per member, comma-joined. Fields are written as plain
// text with no quoting or escaping, matching the established export format
// consumed downstream. Dates render as YYYY-MM-DD; absent optional fields
// render empty.
func RenderCSV(cols []Column, members []models.Member) []byte {
	var b strings.Builder

	for i, col := range cols {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(col.Label)
	}
	b.WriteByte('\n')

	for _, m := range members {
		for i, col := range cols {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(fieldValue(col.Field, m))
		}
		b.WriteByte('\n')
	}

	return []byte(b.String())
}

func fieldValue(field string, m models.Member) string {
	switch field {
	case "id":
		return m.ID
	case "full_name":
		return m.FullName
	case "barcode":
		return m.Barcode
	case "department":
		return m.Department
	case "assembly":
		return m.Assembly
	case "entry_type":
		return m.EntryType
	case "entry_year":
		return m.EntryYear
	case "date_of_birth":
		if m.DateOfBirth == nil {
			return ""
		}
		return m.DateOfBirth.Format("2006-01-02")
	case "category":
		return string(m.Category)
	default:
		return ""
	}
}
