// Package reportparse turns semi-structured studio spreadsheet exports into
// normalized records.
//
// Two report shapes are supported. The payroll/attendance workbook has no
// fixed layout: instructor sections span sheets and end at "Total for X"
// rows, header rows appear mid-sheet, and cell encodings mix Excel serials,
// time fractions and currency strings. The first-visit report is plain
// tabular, one row per client.
//
// All heuristics below the two Parse entry points are total functions:
// malformed cells degrade to safe defaults and stray rows are dropped, never
// raised. Only a structurally broken file or a file that yields zero records
// fails the parse.
package reportparse
