package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/crediflow/cobranza/internal/domain"
	"github.com/crediflow/cobranza/internal/usecase"
	"github.com/crediflow/cobranza/internal/usecase/mocks"
)

func newCustomerUseCase() (*usecase.CustomerUseCase, *mocks.MockCustomerRepository) {
	repo := mocks.NewMockCustomerRepository()
	return usecase.NewCustomerUseCase(repo, mocks.NewMockIDGenerator(), nil), repo
}

func TestCustomerUseCase_CreateCustomer(t *testing.T) {
	uc, _ := newCustomerUseCase()

	customer, err := uc.CreateCustomer(context.Background(), usecase.CreateCustomerInput{
		DocumentNumber: "12345678",
		FirstNames:     "  Maria Jose ",
		LastNames:      "Gomez",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if customer.ID == "" {
		t.Error("expected generated ID")
	}

	if customer.FirstNames != "Maria Jose" {
		t.Errorf("expected trimmed names, got %q", customer.FirstNames)
	}

	if customer.FullName() != "Maria Jose Gomez" {
		t.Errorf("unexpected full name %q", customer.FullName())
	}
}

func TestCustomerUseCase_CreateCustomer_Validation(t *testing.T) {
	tests := []struct {
		name  string
		input usecase.CreateCustomerInput
	}{
		{
			name: "empty document",
			input: usecase.CreateCustomerInput{
				DocumentNumber: "",
				FirstNames:     "Maria",
				LastNames:      "Gomez",
			},
		},
		{
			name: "document with letters",
			input: usecase.CreateCustomerInput{
				DocumentNumber: "12ab5678",
				FirstNames:     "Maria",
				LastNames:      "Gomez",
			},
		},
		{
			name: "document too short",
			input: usecase.CreateCustomerInput{
				DocumentNumber: "1234",
				FirstNames:     "Maria",
				LastNames:      "Gomez",
			},
		},
		{
			name: "empty first names",
			input: usecase.CreateCustomerInput{
				DocumentNumber: "12345678",
				FirstNames:     "   ",
				LastNames:      "Gomez",
			},
		},
		{
			name: "empty last names",
			input: usecase.CreateCustomerInput{
				DocumentNumber: "12345678",
				FirstNames:     "Maria",
				LastNames:      "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, repo := newCustomerUseCase()

			if _, err := uc.CreateCustomer(context.Background(), tt.input); err == nil {
				t.Fatal("expected validation error, got nil")
			}

			customers, _ := repo.List(context.Background(), 10, 0)
			if len(customers) != 0 {
				t.Errorf("expected no persisted customers, got %d", len(customers))
			}
		})
	}
}

func TestCustomerUseCase_GetCustomerByDocument(t *testing.T) {
	uc, _ := newCustomerUseCase()

	created, err := uc.CreateCustomer(context.Background(), usecase.CreateCustomerInput{
		DocumentNumber: "87654321",
		FirstNames:     "Juan",
		LastNames:      "Perez",
	})
	if err != nil {
		t.Fatalf("create customer: %v", err)
	}

	found, err := uc.GetCustomerByDocument(context.Background(), "87654321")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if found.ID != created.ID {
		t.Errorf("expected customer %s, got %s", created.ID, found.ID)
	}

	if _, err := uc.GetCustomerByDocument(context.Background(), "00000000"); !errors.Is(err, domain.ErrCustomerNotFound) {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}
