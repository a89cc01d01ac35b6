package services

import (
	"context"
	"errors"
	"log/slog"

	"storefront/internal/dto"
	"storefront/internal/repositories"
)

// CustomerService handles business logic related to customers, including
// the global uniqueness of customer emails.
type CustomerService struct {
	repo   repositories.CustomerRepository
	events *Notifier
	log    *slog.Logger
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(repo repositories.CustomerRepository, events *Notifier, log *slog.Logger) *CustomerService {
	return &CustomerService{repo: repo, events: events, log: log}
}

// GetAllCustomers retrieves all customers.
func (s *CustomerService) GetAllCustomers(ctx context.Context) ([]dto.CustomerDto, error) {
	customers, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromCustomers(customers), nil
}

// GetCustomerByID retrieves a single customer by ID.
func (s *CustomerService) GetCustomerByID(ctx context.Context, id uint) (*dto.CustomerDto, error) {
	customer, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	out := dto.FromCustomer(*customer)
	return &out, nil
}

// CreateCustomer registers a customer. An email already owned by another
// customer is rejected with ErrDuplicateEmail and nothing is persisted.
func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerDto, error) {
	if err := s.ensureEmailAvailable(ctx, req.Email, 0); err != nil {
		return nil, err
	}

	customer := req.ToModel()
	if err := s.repo.Create(ctx, &customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	out := dto.FromCustomer(customer)
	s.events.Notify(ctx, "customer.created", out)
	return &out, nil
}

// UpdateCustomer replaces the mutable fields of an existing customer.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uint, req dto.CreateCustomerRequest) (*dto.CustomerDto, error) {
	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if req.Email != existing.Email {
		if err := s.ensureEmailAvailable(ctx, req.Email, id); err != nil {
			return nil, err
		}
	}

	existing.FirstName = req.FirstName
	existing.LastName = req.LastName
	existing.Email = req.Email
	existing.PhoneNumber = req.PhoneNumber

	if err := s.repo.Update(ctx, existing); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, repositories.ErrDuplicateKey):
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	out := dto.FromCustomer(*existing)
	s.events.Notify(ctx, "customer.updated", out)
	return &out, nil
}

// DeleteCustomer deletes a customer by ID and reports whether it existed.
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uint) (bool, error) {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.events.Notify(ctx, "customer.deleted", deletedEvent{ID: id})
	}
	return deleted, nil
}

// ensureEmailAvailable rejects email when a customer other than owner uses it.
func (s *CustomerService) ensureEmailAvailable(ctx context.Context, email string, owner uint) error {
	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != owner {
		s.log.InfoContext(ctx, "customer rejected: duplicate email", "email", email)
		return ErrDuplicateEmail
	}
	return nil
}
