package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"credit-approval-backend/internal/domain/credit"
	domain "credit-approval-backend/internal/domain/customer"

	"github.com/sirupsen/logrus"
)

var ErrInvalidInput = errors.New("invalid input")

type Usecase struct{ repo domain.Repository }

func NewUsecase(r domain.Repository) *Usecase { return &Usecase{repo: r} }

// Register creates a customer with approved_limit derived from income.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*CustomerDTO, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	if in.FirstName == "" || in.LastName == "" || in.MonthlyIncome <= 0 || in.Age < 18 {
		return nil, ErrInvalidInput
	}

	// Checked up-front for a clean error; the unique index still guards races.
	_, err := u.repo.GetByPhone(ctx, in.PhoneNumber)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicatePhone
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("lookup phone: %w", err)
	}

	c := &domain.Customer{
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Age:           in.Age,
		PhoneNumber:   in.PhoneNumber,
		MonthlyIncome: credit.Round2(in.MonthlyIncome),
		ApprovedLimit: credit.ApprovedLimit(in.MonthlyIncome),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"customer_id":    c.ID,
		"approved_limit": c.ApprovedLimit,
	}).Info("customer registered")

	return toDTO(c), nil
}

func toDTO(c *domain.Customer) *CustomerDTO {
	return &CustomerDTO{
		CustomerID:    c.ID,
		Name:          c.FullName(),
		Age:           c.Age,
		MonthlyIncome: c.MonthlyIncome,
		ApprovedLimit: c.ApprovedLimit,
		PhoneNumber:   c.PhoneNumber,
	}
}
