// Command seedrules converts a compliance rule catalog Excel file into a SQL
// seed file. Expects a Rules sheet with columns: country, company type, name,
// description, frequency, verification, CA type, CS type.
// Usage: go run ./cmd/seedrules <rules.xlsx>
// Output: db/seeds/compliance_rules.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"complyhub/internal/compliance"
	"complyhub/internal/domain"
)

const batchSize = 200

type ruleRow struct {
	countryCode          string
	companyType          string
	name                 string
	description          string
	frequency            string
	verificationRequired string
	caType               string
	csType               string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 2 {
		return fmt.Errorf("usage: seedrules <rules.xlsx>")
	}
	xlsxPath := os.Args[1]
	outPath := "db/seeds/compliance_rules.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return fmt.Errorf("read sheet: %w", err)
	}

	seen := make(map[string]bool)
	var entries []ruleRow
	skipped := 0

	// Row 0 is the header.
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		entry, ok := parseRow(row)
		if !ok {
			skipped++
			continue
		}
		key := entry.countryCode + "|" + entry.companyType + "|" + entry.name
		if seen[key] {
			skipped++
			continue
		}
		seen[key] = true
		entries = append(entries, entry)
	}
	log.Printf("parsed %d rules (%d rows skipped)", len(entries), skipped)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	header := fmt.Sprintf("-- Compliance rule seed data generated from %s.\n-- %d rules in batches of %d.\nBEGIN;\n\n", xlsxPath, len(entries), batchSize)
	if _, err := out.WriteString(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < len(entries); i += batchSize {
		end := i + batchSize
		if end > len(entries) {
			end = len(entries)
		}
		if err := writeBatch(out, entries[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	if _, err := out.WriteString("\nCOMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}

	log.Printf("Generated %d rules in %s", len(entries), outPath)
	return nil
}

// parseRow validates one sheet row. Country names are mapped to ISO codes;
// unknown countries and invalid enum values drop the row.
func parseRow(row []string) (ruleRow, bool) {
	country := strings.TrimSpace(cellVal(row, 0))
	code := strings.ToUpper(country)
	if !compliance.IsCountryCode(code) {
		mapped, ok := compliance.CountryCode(country)
		if !ok {
			return ruleRow{}, false
		}
		code = mapped
	}

	freq := domain.Frequency(strings.ToLower(strings.TrimSpace(cellVal(row, 4))))
	if !freq.Valid() {
		return ruleRow{}, false
	}
	verif := domain.VerificationRequired(strings.ToLower(strings.TrimSpace(cellVal(row, 5))))
	if !verif.Valid() {
		return ruleRow{}, false
	}

	entry := ruleRow{
		countryCode:          code,
		companyType:          strings.TrimSpace(cellVal(row, 1)),
		name:                 strings.TrimSpace(cellVal(row, 2)),
		description:          strings.TrimSpace(cellVal(row, 3)),
		frequency:            string(freq),
		verificationRequired: string(verif),
		caType:               strings.TrimSpace(cellVal(row, 6)),
		csType:               strings.TrimSpace(cellVal(row, 7)),
	}
	if entry.companyType == "" || entry.name == "" {
		return ruleRow{}, false
	}
	return entry, true
}

func writeBatch(out *os.File, batch []ruleRow) error {
	if len(batch) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("INSERT INTO compliance_rules (country_code, company_type, name, description, frequency, verification_required, ca_type, cs_type, is_active) VALUES\n")

	for i := range batch {
		e := &batch[i]
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', true)",
			escapeSQL(e.countryCode), escapeSQL(e.companyType), escapeSQL(e.name),
			escapeSQL(e.description), e.frequency, e.verificationRequired,
			escapeSQL(e.caType), escapeSQL(e.csType))
	}

	b.WriteString("\nON CONFLICT (country_code, company_type, name) DO NOTHING;\n")

	_, err := out.WriteString(b.String())
	return err
}

func cellVal(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
