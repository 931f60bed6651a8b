package unitofwork

import (
	"context"

	"stayops-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	PropertyRepository() contract.PropertyRepository
	DepartmentRepository() contract.DepartmentRepository
	ContactRepository() contract.ContactRepository
	RequestRepository() contract.RequestRepository
	RequestNoteRepository() contract.RequestNoteRepository
	BillingRepository() contract.BillingRepository
}
