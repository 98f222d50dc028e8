package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/infrastructure/metrics"
)

// CustomerUseCase handles customer business logic.
type CustomerUseCase struct {
	customerRepo CustomerRepository
	idGen        IDGenerator
	metrics      *metrics.Metrics
}

// NewCustomerUseCase creates a new CustomerUseCase.
func NewCustomerUseCase(customerRepo CustomerRepository, idGen IDGenerator, metrics *metrics.Metrics) *CustomerUseCase {
	return &CustomerUseCase{
		customerRepo: customerRepo,
		idGen:        idGen,
		metrics:      metrics,
	}
}

// CreateCustomerInput represents input for creating a customer.
type CreateCustomerInput struct {
	DocumentNumber string
	FirstNames     string
	LastNames      string
}

// CreateCustomer creates a new customer.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, input CreateCustomerInput) (*domain.Customer, error) {
	if err := domain.ValidateDocumentNumber(input.DocumentNumber); err != nil {
		return nil, err
	}

	if err := domain.ValidateCustomerName(input.FirstNames); err != nil {
		return nil, err
	}

	if err := domain.ValidateCustomerName(input.LastNames); err != nil {
		return nil, err
	}

	customer := &domain.Customer{
		ID:             uc.idGen.Generate(),
		DocumentNumber: strings.TrimSpace(input.DocumentNumber),
		FirstNames:     strings.TrimSpace(input.FirstNames),
		LastNames:      strings.TrimSpace(input.LastNames),
		CreatedAt:      time.Now().UTC(),
	}

	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.CustomersCreated.Inc()
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID.
func (uc *CustomerUseCase) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	return uc.customerRepo.GetByID(ctx, id)
}

// GetCustomerByDocument retrieves a customer by document number.
func (uc *CustomerUseCase) GetCustomerByDocument(ctx context.Context, documentNumber string) (*domain.Customer, error) {
	return uc.customerRepo.GetByDocument(ctx, documentNumber)
}

// ListCustomersInput represents input for listing customers.
type ListCustomersInput struct {
	Limit  int
	Offset int
}

// ListCustomers lists customers with pagination.
func (uc *CustomerUseCase) ListCustomers(ctx context.Context, input ListCustomersInput) ([]*domain.Customer, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	return uc.customerRepo.List(ctx, input.Limit, input.Offset)
}
