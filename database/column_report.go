package database

import (
	"fmt"
	"io"
	"sort"

	"github.com/rpupo63/portfolio-site-backend/models"
	"gorm.io/gorm"
)

// TableReport lists the columns of one table that no model field maps to
type TableReport struct {
	Table     string
	Exists    bool
	Unmapped  []string
	Unapplied []string
}

// ColumnReport compares every model against the live schema. Unmapped
// columns exist in the database only; Unapplied fields exist in the model
// only and need a migration.
func (d Database) ColumnReport() ([]TableReport, error) {
	var reports []TableReport
	for _, model := range models.All() {
		report, err := tableReport(d.db, model)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

func tableReport(db *gorm.DB, model any) (TableReport, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return TableReport{}, fmt.Errorf("parse model %T: %w", model, err)
	}

	report := TableReport{Table: stmt.Schema.Table}
	if !db.Migrator().HasTable(model) {
		return report, nil
	}
	report.Exists = true

	columnTypes, err := db.Migrator().ColumnTypes(model)
	if err != nil {
		return report, fmt.Errorf("read columns of %s: %w", report.Table, err)
	}

	inModel := map[string]bool{}
	for _, name := range stmt.Schema.DBNames {
		inModel[name] = true
	}

	inTable := map[string]bool{}
	for _, column := range columnTypes {
		inTable[column.Name()] = true
		if !inModel[column.Name()] {
			report.Unmapped = append(report.Unmapped, column.Name())
		}
	}
	for _, name := range stmt.Schema.DBNames {
		if !inTable[name] {
			report.Unapplied = append(report.Unapplied, name)
		}
	}

	sort.Strings(report.Unmapped)
	sort.Strings(report.Unapplied)
	return report, nil
}

// WriteColumnReport prints reports in the column-report command format
func WriteColumnReport(w io.Writer, reports []TableReport) {
	fmt.Fprintln(w, "=== COLUMN MISMATCH REPORT ===")

	total := 0
	for _, report := range reports {
		fmt.Fprintf(w, "\n--- Table: %s ---\n", report.Table)
		if !report.Exists {
			fmt.Fprintln(w, "Table does not exist yet (run migrate)")
			continue
		}
		if len(report.Unmapped) == 0 && len(report.Unapplied) == 0 {
			fmt.Fprintln(w, "All columns are accounted for in the model.")
			continue
		}
		if len(report.Unmapped) > 0 {
			fmt.Fprintf(w, "Found %d columns not accounted for in model:\n", len(report.Unmapped))
			for _, column := range report.Unmapped {
				fmt.Fprintf(w, "  - %s\n", column)
			}
		}
		if len(report.Unapplied) > 0 {
			fmt.Fprintf(w, "Found %d model fields missing from the table:\n", len(report.Unapplied))
			for _, column := range report.Unapplied {
				fmt.Fprintf(w, "  - %s\n", column)
			}
		}
		total += len(report.Unmapped) + len(report.Unapplied)
	}

	fmt.Fprintf(w, "\n=== SUMMARY ===\n")
	fmt.Fprintf(w, "Total mismatched columns across all tables: %d\n", total)
}
