package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestAddExpenseValidation(t *testing.T) {
	f := newFixture(t)
	account := uuid.New()

	tests := []struct {
		name  string
		input AddExpenseInput
	}{
		{"missing name", AddExpenseInput{Amount: money("10")}},
		{"missing amount", AddExpenseInput{Name: "Gas"}},
		{"negative amount", AddExpenseInput{Name: "Gas", Amount: money("-10")}},
		{"too precise", AddExpenseInput{Name: "Gas", Amount: money("10.123")}},
		{"too large", AddExpenseInput{Name: "Gas", Amount: money("10000000000")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.AccountID = account
			_, err := f.expenses.AddExpense(context.Background(), &in)
			wantValidation(t, err)
		})
	}
}

func TestExpensesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	account := uuid.New()
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	for i, name := range []string{"Milk", "Gas", "Rent"} {
		f.expenses.now = fixedClock(base.Add(time.Duration(i) * time.Hour))
		if _, err := f.expenses.AddExpense(ctx, &AddExpenseInput{AccountID: account, Name: name, Amount: money("100")}); err != nil {
			t.Fatalf("AddExpense(%s) error = %v", name, err)
		}
	}

	list, err := f.expenses.ListExpenses(ctx, account, nil)
	if err != nil {
		t.Fatalf("ListExpenses() error = %v", err)
	}
	if len(list) != 3 || list[0].Name != "Rent" || list[2].Name != "Milk" {
		t.Errorf("ListExpenses() = %+v, want Rent, Gas, Milk", list)
	}

	wantNotFound(t, f.expenses.DeleteExpense(ctx, uuid.New(), list[0].ID))
	if err := f.expenses.DeleteExpense(ctx, account, list[0].ID); err != nil {
		t.Fatalf("DeleteExpense() error = %v", err)
	}
}
