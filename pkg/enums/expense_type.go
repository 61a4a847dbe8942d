package enums

import "fmt"

// ExpenseType maps to the expense_type enum in Postgres.
type ExpenseType string

const (
	ExpenseTypeSalary      ExpenseType = "salary"
	ExpenseTypeMaintenance ExpenseType = "maintenance"
	ExpenseTypeFuel        ExpenseType = "fuel"
	ExpenseTypeFine        ExpenseType = "fine"
	ExpenseTypeOther       ExpenseType = "other"
)

var validExpenseTypes = []ExpenseType{
	ExpenseTypeSalary,
	ExpenseTypeMaintenance,
	ExpenseTypeFuel,
	ExpenseTypeFine,
	ExpenseTypeOther,
}

func (e ExpenseType) IsValid() bool {
	for _, candidate := range validExpenseTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseExpenseType converts raw strings into ExpenseType.
func ParseExpenseType(value string) (ExpenseType, error) {
	for _, candidate := range validExpenseTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid expense type %q", value)
}
