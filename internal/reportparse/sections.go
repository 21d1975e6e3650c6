package reportparse

// sectionBoundary records the first "Total for X" row found in a sheet.
// Instructor sections are discovered from their trailing total row, so a
// boundary at sheet k closes the section that began after the previous
// boundary.
type sectionBoundary struct {
	sheetIndex int
	instructor string
}

// detectSectionBoundaries scans sheets in order and returns at most one
// boundary per sheet: the first total-marker row that yields a name.
func detectSectionBoundaries(sheets [][][]string) []sectionBoundary {
	var boundaries []sectionBoundary
	for sheetIndex, rows := range sheets {
		for _, row := range rows {
			if !isTotalRow(row) {
				continue
			}
			if name := InstructorFromTotal(row); name != "" {
				boundaries = append(boundaries, sectionBoundary{
					sheetIndex: sheetIndex,
					instructor: name,
				})
				break
			}
		}
	}
	return boundaries
}

// buildSectionMap converts boundaries into a dense sheet-index to
// instructor assignment. Each boundary back-assigns its name to every sheet
// since the previous boundary, inclusive of its own sheet; trailing sheets
// without a closing total row inherit the last-seen instructor.
func buildSectionMap(boundaries []sectionBoundary, sheetCount int) map[int]string {
	sections := make(map[int]string)
	sectionStart := 0
	lastInstructor := ""

	for _, b := range boundaries {
		for i := sectionStart; i <= b.sheetIndex && i < sheetCount; i++ {
			sections[i] = b.instructor
		}
		lastInstructor = b.instructor
		sectionStart = b.sheetIndex + 1
	}

	if sectionStart < sheetCount && lastInstructor != "" {
		for i := sectionStart; i < sheetCount; i++ {
			sections[i] = lastInstructor
		}
	}

	return sections
}

// ResolveSections assigns an owning instructor to every sheet of a
// workbook. A workbook with no total-marker rows produces an empty map;
// callers fall back to a synthetic per-sheet name.
func ResolveSections(sheets [][][]string) map[int]string {
	return buildSectionMap(detectSectionBoundaries(sheets), len(sheets))
}
