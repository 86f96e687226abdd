package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"chiroportaal/internal/domain"
)

// MemberWriter is the slice of the member service the importer needs.
type MemberWriter interface {
	Create(ctx context.Context, in domain.CreateMemberInput) (*domain.Member, error)
}

// CSVImporter reads member exports from the old administration spreadsheet
// and registers them one by one.
type CSVImporter struct {
	reader  *csv.Reader
	members MemberWriter
}

func NewCSVImporter(r io.Reader, members MemberWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // exported rows may have trailing commas
	return &CSVImporter{reader: csvr, members: members}
}

// Run parses the rows and registers each member. It stops on the first bad
// row so a half-imported file can be fixed and re-run from that point.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		in, skip, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if skip {
			continue
		}

		if _, err := i.members.Create(ctx, in); err != nil {
			return imported, fmt.Errorf("line %d (%s %s): %w", line, in.FirstName, in.LastName, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (domain.CreateMemberInput, bool, error) {
	firstName := pick(record, index, "voornaam")
	lastName := pick(record, index, "achternaam")
	if firstName == "" && lastName == "" {
		return domain.CreateMemberInput{}, true, nil
	}

	born := pick(record, index, "geboortedatum")
	dateOfBirth, err := time.Parse("2006-01-02", born)
	if err != nil {
		return domain.CreateMemberInput{}, false, fmt.Errorf("bad geboortedatum %q: want YYYY-MM-DD", born)
	}

	gender, err := parseGender(pick(record, index, "geslacht"))
	if err != nil {
		return domain.CreateMemberInput{}, false, err
	}

	in := domain.CreateMemberInput{
		FirstName:   firstName,
		LastName:    lastName,
		DateOfBirth: dateOfBirth,
		Gender:      gender,
	}
	if phone := pick(record, index, "telefoon"); phone != "" {
		in.PhoneNumber = &phone
	}
	if email := pick(record, index, "email"); email != "" {
		in.Email = &email
	}
	return in, false, nil
}

func parseGender(raw string) (domain.Gender, error) {
	switch strings.ToUpper(raw) {
	case "M", "JONGEN":
		return domain.GenderM, nil
	case "F", "V", "MEISJE":
		return domain.GenderF, nil
	case "X", "":
		return domain.GenderX, nil
	default:
		return "", fmt.Errorf("bad geslacht %q: want M, F or X", raw)
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
