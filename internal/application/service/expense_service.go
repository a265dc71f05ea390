package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/sangkips/tillpoint/internal/domain/entity"
	"github.com/sangkips/tillpoint/internal/domain/enum"
	"github.com/sangkips/tillpoint/internal/domain/repository"
	"github.com/sangkips/tillpoint/pkg/apperror"
	"github.com/sangkips/tillpoint/pkg/pagination"
)

// ExpenseService records money paid out of the till
type ExpenseService struct {
	expenseRepo repository.ExpenseRepository
	now         func() time.Time
}

// NewExpenseService creates a new expense service
func NewExpenseService(expenseRepo repository.ExpenseRepository) *ExpenseService {
	return &ExpenseService{expenseRepo: expenseRepo, now: time.Now}
}

// CreateExpenseInput represents the create expense input
type CreateExpenseInput struct {
	Category      string
	Description   string
	Amount        float64
	Date          *time.Time
	PaymentMethod enum.PaymentMethod
	Receipt       string
}

// CreateExpense records an expense against the session's cashier. A missing
// date means now.
func (s *ExpenseService) CreateExpense(ctx context.Context, session entity.Session, input *CreateExpenseInput) (*entity.Expense, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.Category) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "category", Message: "Category is required"})
	}
	if input.Amount <= 0 || math.IsNaN(input.Amount) || math.IsInf(input.Amount, 0) {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "amount", Message: "Amount must be greater than zero"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	date := s.now()
	if input.Date != nil {
		date = *input.Date
	}

	expense := &entity.Expense{
		Category:      strings.TrimSpace(input.Category),
		Description:   input.Description,
		Amount:        input.Amount,
		Date:          date,
		PaymentMethod: input.PaymentMethod,
		Receipt:       input.Receipt,
		CreatedBy:     session.CashierName,
	}
	if err := s.expenseRepo.Create(ctx, expense); err != nil {
		return nil, apperror.Persistence(err)
	}
	return expense, nil
}

// ListExpenses lists expenses newest first
func (s *ExpenseService) ListExpenses(ctx context.Context, params *repository.ExpenseFilterParams) (*pagination.PaginatedResult[entity.Expense], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	expenses, total, err := s.expenseRepo.List(ctx, params)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	p := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(expenses, p), nil
}
