package excel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"credit-approval-backend/internal/usecase/ingest"

	"github.com/xuri/excelize/v2"
)

var ErrEmptySheet = errors.New("sheet has no header row")

// column aliases, keyed by normalized header text
var (
	customerColumns = map[string]string{
		"customer_id":    "customer_id",
		"first_name":     "first_name",
		"last_name":      "last_name",
		"age":            "age",
		"phone_number":   "phone_number",
		"monthly_salary": "monthly_salary",
		"monthly_income": "monthly_salary",
	}
	customerRequired = []string{"customer_id", "first_name", "last_name", "phone_number", "monthly_salary"}

	loanColumns = map[string]string{
		"customer_id":       "customer_id",
		"loan_id":           "loan_id",
		"loan_amount":       "loan_amount",
		"tenure":            "tenure",
		"interest_rate":     "interest_rate",
		"monthly_repayment": "monthly_repayment",
		"monthly_payment":   "monthly_repayment",
		"emis_paid_on_time": "emis_paid_on_time",
		"start_date":        "start_date",
		"date_of_approval":  "start_date",
		"end_date":          "end_date",
	}
	loanRequired = []string{"customer_id", "loan_id", "loan_amount", "tenure", "interest_rate", "emis_paid_on_time", "start_date"}
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"1/2/2006",
	"01-02-06",
	"1/2/06",
	"02-Jan-2006",
}

// Reader reads the first sheet of a workbook with excelize.
type Reader struct{}

func NewReader() *Reader { return &Reader{} }

var _ ingest.Reader = (*Reader)(nil)

func (r *Reader) ReadCustomers(path string) ([]ingest.CustomerRow, []ingest.RowError, error) {
	tbl, err := readTable(path, customerColumns, customerRequired)
	if err != nil {
		return nil, nil, err
	}
	var rows []ingest.CustomerRow
	var rowErrs []ingest.RowError
	for _, rec := range tbl.records {
		row, err := parseCustomer(rec)
		if err != nil {
			rowErrs = append(rowErrs, ingest.RowError{Line: rec.line, Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

func (r *Reader) ReadLoans(path string) ([]ingest.LoanRow, []ingest.RowError, error) {
	tbl, err := readTable(path, loanColumns, loanRequired)
	if err != nil {
		return nil, nil, err
	}
	var rows []ingest.LoanRow
	var rowErrs []ingest.RowError
	for _, rec := range tbl.records {
		row, err := parseLoan(rec)
		if err != nil {
			rowErrs = append(rowErrs, ingest.RowError{Line: rec.line, Err: err})
			continue
		}
		rows = append(rows, row)
	}
	return rows, rowErrs, nil
}

type record struct {
	line   int
	values map[string]string
}

func (r record) get(col string) string { return r.values[col] }

type table struct{ records []record }

func readTable(path string, columns map[string]string, required []string) (*table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, ErrEmptySheet
	}

	index := map[int]string{}
	seen := map[string]bool{}
	for i, h := range raw[0] {
		if col, ok := columns[normalizeHeader(h)]; ok && !seen[col] {
			index[i] = col
			seen[col] = true
		}
	}
	var missing []string
	for _, col := range required {
		if !seen[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	tbl := &table{}
	for n, cells := range raw[1:] {
		rec := record{line: n + 2, values: map[string]string{}}
		blank := true
		for i, v := range cells {
			v = strings.TrimSpace(v)
			if v != "" {
				blank = false
			}
			if col, ok := index[i]; ok {
				rec.values[col] = v
			}
		}
		if !blank {
			tbl.records = append(tbl.records, rec)
		}
	}
	return tbl, nil
}

func parseCustomer(rec record) (ingest.CustomerRow, error) {
	row := ingest.CustomerRow{
		Line:      rec.line,
		FirstName: rec.get("first_name"),
		LastName:  rec.get("last_name"),
	}
	var err error
	if row.ExternalID, err = parseInt64(rec, "customer_id"); err != nil {
		return row, err
	}
	if row.PhoneNumber, err = parseInt64(rec, "phone_number"); err != nil {
		return row, err
	}
	if row.MonthlySalary, err = parseFloat(rec, "monthly_salary"); err != nil {
		return row, err
	}
	if rec.get("age") != "" {
		age, err := parseInt64(rec, "age")
		if err != nil {
			return row, err
		}
		row.Age = int(age)
	}
	return row, nil
}

func parseLoan(rec record) (ingest.LoanRow, error) {
	row := ingest.LoanRow{Line: rec.line, LegacyLoanID: normalizeID(rec.get("loan_id"))}
	var err error
	if row.CustomerExternalID, err = parseInt64(rec, "customer_id"); err != nil {
		return row, err
	}
	if row.LoanAmount, err = parseFloat(rec, "loan_amount"); err != nil {
		return row, err
	}
	tenure, err := parseInt64(rec, "tenure")
	if err != nil {
		return row, err
	}
	row.Tenure = int(tenure)
	if row.InterestRate, err = parseFloat(rec, "interest_rate"); err != nil {
		return row, err
	}
	paid, err := parseInt64(rec, "emis_paid_on_time")
	if err != nil {
		return row, err
	}
	row.EMIsPaidOnTime = int(paid)
	if rec.get("monthly_repayment") != "" {
		if row.MonthlyRepayment, err = parseFloat(rec, "monthly_repayment"); err != nil {
			return row, err
		}
	}
	if row.StartDate, err = parseDate(rec, "start_date"); err != nil {
		return row, err
	}
	if rec.get("end_date") != "" {
		end, err := parseDate(rec, "end_date")
		if err != nil {
			return row, err
		}
		row.EndDate = &end
	}
	return row, nil
}

func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Join(strings.Fields(h), "_")
}

// normalizeID turns numeric ids such as "7798.0" into "7798".
func normalizeID(s string) string {
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

func parseFloat(rec record, col string) (float64, error) {
	s := strings.ReplaceAll(rec.get(col), ",", "")
	if s == "" {
		return 0, fmt.Errorf("%s: empty", col)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", col, s)
	}
	return f, nil
}

func parseInt64(rec record, col string) (int64, error) {
	f, err := parseFloat(rec, col)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("%s: %v is not a whole number", col, f)
	}
	return int64(f), nil
}

// parseDate accepts an Excel serial date or one of dateLayouts.
func parseDate(rec record, col string) (time.Time, error) {
	s := rec.get(col)
	if s == "" {
		return time.Time{}, fmt.Errorf("%s: empty", col)
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("%s: %w", col, err)
		}
		return truncDay(t), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: unrecognized date %q", col, s)
}

func truncDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
