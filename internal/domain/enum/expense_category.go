package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// ExpenseCategory represents the spending category of an expense
type ExpenseCategory int

const (
	ExpenseCategoryGeneral   ExpenseCategory = 0
	ExpenseCategoryRent      ExpenseCategory = 1
	ExpenseCategoryUtilities ExpenseCategory = 2
	ExpenseCategorySalary    ExpenseCategory = 3
	ExpenseCategorySupplies  ExpenseCategory = 4
	ExpenseCategoryTravel    ExpenseCategory = 5
)

func (c ExpenseCategory) String() string {
	return [...]string{"General", "Rent", "Utilities", "Salary", "Supplies", "Travel"}[c]
}

// IsValid reports whether the value is one of the defined categories
func (c ExpenseCategory) IsValid() bool {
	return c >= ExpenseCategoryGeneral && c <= ExpenseCategoryTravel
}

func (c ExpenseCategory) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ExpenseCategory) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*c = ExpenseCategory(i)
		return nil
	}
	switch str {
	case "General":
		*c = ExpenseCategoryGeneral
	case "Rent":
		*c = ExpenseCategoryRent
	case "Utilities":
		*c = ExpenseCategoryUtilities
	case "Salary":
		*c = ExpenseCategorySalary
	case "Supplies":
		*c = ExpenseCategorySupplies
	case "Travel":
		*c = ExpenseCategoryTravel
	}
	return nil
}

func (c ExpenseCategory) Value() (driver.Value, error) {
	return int64(c), nil
}

func (c *ExpenseCategory) Scan(value interface{}) error {
	if value == nil {
		*c = ExpenseCategoryGeneral
		return nil
	}
	switch v := value.(type) {
	case int64:
		*c = ExpenseCategory(v)
	case int:
		*c = ExpenseCategory(v)
	}
	return nil
}
