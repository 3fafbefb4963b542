package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/LofoWalker/upkeep/internal/company/domain"
	"github.com/LofoWalker/upkeep/internal/company/notify"
	"github.com/LofoWalker/upkeep/internal/company/store"
	"github.com/LofoWalker/upkeep/pkg/slogx"
)

// CustomerService records customers authenticated by the upstream identity
// provider. The customer id is the subject the provider issued.
type CustomerService struct {
	Store    store.Store
	Notifier notify.Notifier
}

func (s *CustomerService) notifier() notify.Notifier {
	if s.Notifier == nil {
		return notify.Nop{}
	}
	return s.Notifier
}

// Register creates the customer and sends a welcome email. It fails with a
// conflict when the id or email is already registered.
func (s *CustomerService) Register(ctx context.Context, id domain.CustomerID, email string) (domain.Customer, error) {
	log := slogx.FromContext(ctx)

	addr, err := domain.ParseEmail(email)
	if err != nil {
		log.Warn("registration rejected: invalid email", slog.String("customer_id", id.String()))
		return domain.Customer{}, err
	}

	customer := domain.Customer{
		ID:        id,
		Email:     addr,
		CreatedAt: time.Now().UTC(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		taken, err := tx.Customers().ExistsByEmail(ctx, addr)
		if err != nil {
			return fmt.Errorf("check email: %w", err)
		}
		if taken {
			return domain.ErrEmailTaken
		}

		if _, err := tx.Customers().FindByID(ctx, id); err == nil {
			return domain.ErrCustomerExists
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("find customer: %w", err)
		}

		if err := tx.Customers().Save(ctx, customer); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return domain.ErrCustomerExists
			}
			return fmt.Errorf("save customer: %w", err)
		}
		return nil
	})
	if err != nil {
		logFailure(log, "registration failed", err, slog.String("customer_id", id.String()))
		return domain.Customer{}, err
	}

	s.notifier().SendWelcomeEmail(ctx, addr)

	log.Info("customer registered", slog.String("customer_id", id.String()))
	return customer, nil
}

// EnsureCustomer returns the customer with the given id, registering it
// first when it does not exist yet. created reports which path was taken.
func (s *CustomerService) EnsureCustomer(
	ctx context.Context,
	id domain.CustomerID,
	email string,
) (customer domain.Customer, created bool, err error) {
	existing, err := s.Store.Customers().FindByID(ctx, id)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		slogx.FromContext(ctx).Error("failed to fetch customer", slog.Any("error", err))
		return domain.Customer{}, false, fmt.Errorf("find customer: %w", err)
	}

	customer, err = s.Register(ctx, id, email)
	if err != nil {
		return domain.Customer{}, false, err
	}
	return customer, true, nil
}
