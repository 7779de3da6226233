// Package forms holds the data-entry form models. Each form keeps string
// field state the way a controlled input would, applies the derived-field
// rules on change, and produces a typed record on submit. Forms never talk to
// the backend; the caller hands the record to a mutation.
package forms

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Mutombe/propdesk/internal/domain"
)

const dateLayout = "2006-01-02"

var validate = validator.New(validator.WithRequiredStructEnabled())

// parseInt converts a field value to an int, falling back to 0 for empty or
// invalid input.
func parseInt(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// parseFloat converts a field value to a float64, falling back to 0 for empty
// or invalid input.
func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// formatAmount renders a monetary amount with 2 decimal places.
func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// addYear returns the date one year after d, or "" if d does not parse.
func addYear(d string) string {
	t, err := time.Parse(dateLayout, d)
	if err != nil {
		return ""
	}
	return t.AddDate(1, 0, 0).Format(dateLayout)
}

// checkRecord runs struct-tag validation and maps failures onto the
// validation sentinel with a field-level message.
func checkRecord(rec any) error {
	err := validate.Struct(rec)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Errorf("%w: %s failed on %s", domain.ErrValidation, fe.Field(), fe.Tag())
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}
