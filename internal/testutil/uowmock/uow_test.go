package uowmock

import (
	"context"
	"errors"
	"testing"

	"credit-approval-backend/internal/domain/customer"
	"credit-approval-backend/internal/domain/uow"
	"credit-approval-backend/internal/testutil/creditscoremock"
	"credit-approval-backend/internal/testutil/customermock"
	"credit-approval-backend/internal/testutil/loanmock"
)

func TestUoW_WithinTx_Happy(t *testing.T) {
	ctx := context.Background()

	loans := &loanmock.Repo{}
	custs := &customermock.Repo{}
	repos := uow.Repos{Customers: custs, Loans: loans, CreditScores: &creditscoremock.Repo{}}

	innerCalled := false
	m := &UoW{
		WithinTxFn: func(gotCtx context.Context, fn func(r uow.Repos) error) error {
			if gotCtx != ctx {
				t.Fatalf("WithinTx: ctx mismatch")
			}
			if fn == nil {
				t.Fatalf("WithinTx: fn is nil")
			}
			// simulate transaction body
			return fn(repos)
		},
	}

	err := m.WithinTx(ctx, func(r uow.Repos) error {
		innerCalled = true
		if r.Loans != loans || r.Customers != custs {
			t.Fatalf("WithinTx: repos not forwarded correctly")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx: unexpected err: %v", err)
	}
	if !innerCalled {
		t.Fatalf("WithinTx: inner fn not called")
	}
}

func TestUoW_WithinTx_PropagatesError(t *testing.T) {
	ctx := context.Background()
	sentinel := errors.New("boom")

	m := &UoW{
		WithinTxFn: func(context.Context, func(uow.Repos) error) error {
			return sentinel
		},
	}
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, sentinel) {
		t.Fatalf("WithinTx: want %v, got %v", sentinel, err)
	}
}

func TestUoW_Default_Unimplemented(t *testing.T) {
	ctx := context.Background()
	m := &UoW{} // no funcs set
	if err := m.WithinTx(ctx, func(uow.Repos) error { return nil }); !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinTx default: want errUnimplemented, got %v", err)
	}
	err := m.WithinCustomerTx(ctx, 1, func(uow.Repos, *customer.Customer) error { return nil })
	if !errors.Is(err, errUnimplemented) {
		t.Fatalf("WithinCustomerTx default: want errUnimplemented, got %v", err)
	}
}

func TestUoW_WithRepos_LoadsCustomer(t *testing.T) {
	ctx := context.Background()
	want := &customer.Customer{ID: 7, FirstName: "Asha"}
	custs := &customermock.Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*customer.Customer, error) {
			if id != 7 {
				return nil, customer.ErrNotFound
			}
			return want, nil
		},
	}
	m := New().WithRepos(uow.Repos{Customers: custs, Loans: &loanmock.Repo{}})

	var got *customer.Customer
	if err := m.WithinCustomerTx(ctx, 7, func(_ uow.Repos, c *customer.Customer) error {
		got = c
		return nil
	}); err != nil {
		t.Fatalf("WithinCustomerTx: %v", err)
	}
	if got != want {
		t.Fatalf("customer not forwarded: %+v", got)
	}

	err := m.WithinCustomerTx(ctx, 8, func(uow.Repos, *customer.Customer) error {
		t.Fatalf("callback must not run for a missing customer")
		return nil
	})
	if !errors.Is(err, customer.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestUoW_FluentSetters_And_Reset(t *testing.T) {
	m := New()
	if m.WithinTxFn != nil || m.WithinCustomerTxFn != nil {
		t.Fatalf("New should start with nil funcs")
	}

	m.WithWithinTx(func(context.Context, func(uow.Repos) error) error { return nil }).
		WithWithinCustomerTx(func(context.Context, uint64, func(uow.Repos, *customer.Customer) error) error { return nil })

	if m.WithinTxFn == nil || m.WithinCustomerTxFn == nil {
		t.Fatalf("fluent setters didn't assign funcs")
	}

	// reset clears funcs
	m.Reset()
	if m.WithinTxFn != nil || m.WithinCustomerTxFn != nil {
		t.Fatalf("Reset should clear function fields")
	}
}
