// Package parser turns user input into task fields: due dates written in
// several formats and transcribed voice commands.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/markusmobius/go-dateparser"

	"github.com/manav03panchal/smarttask/internal/model"
)

// relativeRegex matches relative day expressions like "+3d" or "+2w".
var relativeRegex = regexp.MustCompile(`^\+(\d+)([dw])$`)

// numericRegex matches input that is written as digits only or as a
// numeric date. Such input is never handed to the natural language parser.
var numericRegex = regexp.MustCompile(`^(\d+|\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4})$`)

// Languages are the languages natural language dates are read in.
var Languages = []string{"en", "es"}

// ParseDueDate parses a due date relative to now. The result is midnight
// of the resolved day in now's location. Supported forms:
//   - "2025-12-15" (ISO)
//   - "15/12/2025", "15.12.2025" (day first)
//   - "+3d", "+2w" (relative)
//   - "tomorrow", "next friday", "quince de diciembre" (English or Spanish)
func ParseDueDate(input string, now time.Time) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, NewDueDateError(input, "date is empty")
	}
	loc := now.Location()

	for _, layout := range []string{model.DateLayout, "2006-1-2", "02/01/2006", "2/1/2006", "2.1.2006"} {
		if t, err := time.ParseInLocation(layout, input, loc); err == nil {
			return t, nil
		}
	}

	if match := relativeRegex.FindStringSubmatch(input); match != nil {
		n, err := strconv.Atoi(match[1])
		if err != nil || n <= 0 {
			return time.Time{}, NewDueDateError(input, "offset must be a positive number")
		}
		if match[2] == "w" {
			n *= 7
		}
		return startOfDay(now).AddDate(0, 0, n), nil
	}

	if numericRegex.MatchString(input) {
		return time.Time{}, NewDueDateError(input, "not a valid calendar date")
	}

	cfg := &dateparser.Configuration{
		CurrentTime:         now,
		Languages:           Languages,
		PreferredDateSource: dateparser.Future,
	}
	result, err := dateparser.Parse(cfg, normalizeSpokenNumbers(strings.ToLower(input)))
	if err != nil || result.Time.IsZero() {
		return time.Time{}, NewDueDateError(input, "could not understand the date")
	}
	return startOfDay(result.Time.In(loc)), nil
}

// FormatDueDate renders a parsed due date in the storage layout.
func FormatDueDate(t time.Time) string {
	return t.Format(model.DateLayout)
}

// ResolveDueDate parses input and returns the storage form, or "" for
// empty input.
func ResolveDueDate(input string, now time.Time) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	t, err := ParseDueDate(input, now)
	if err != nil {
		return "", err
	}
	return FormatDueDate(t), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// spokenNumbers maps Spanish number words, as produced by speech
// recognition, to digits. Longer phrases come first.
var spokenNumbers = []struct{ word, digits string }{
	{"treinta y uno", "31"},
	{"veintiuno", "21"}, {"veintidós", "22"}, {"veintidos", "22"}, {"veintitrés", "23"}, {"veintitres", "23"},
	{"veinticuatro", "24"}, {"veinticinco", "25"}, {"veintiséis", "26"}, {"veintiseis", "26"},
	{"veintisiete", "27"}, {"veintiocho", "28"}, {"veintinueve", "29"},
	{"dieciséis", "16"}, {"dieciseis", "16"}, {"diecisiete", "17"}, {"dieciocho", "18"}, {"diecinueve", "19"},
	{"treinta", "30"}, {"veinte", "20"}, {"quince", "15"}, {"catorce", "14"}, {"trece", "13"},
	{"doce", "12"}, {"once", "11"}, {"diez", "10"}, {"nueve", "9"}, {"ocho", "8"}, {"siete", "7"},
	{"seis", "6"}, {"cinco", "5"}, {"cuatro", "4"}, {"tres", "3"}, {"dos", "2"}, {"uno", "1"},
	{"primero", "1"},
}

// normalizeSpokenNumbers replaces whole-word Spanish numbers with digits so
// "quince de diciembre" reads as "15 de diciembre".
func normalizeSpokenNumbers(s string) string {
	padded := " " + s + " "
	for _, n := range spokenNumbers {
		padded = strings.ReplaceAll(padded, " "+n.word+" ", " "+n.digits+" ")
	}
	return strings.TrimSpace(padded)
}
