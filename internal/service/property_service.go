package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/dto"
	"stayops-be/internal/entity"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
)

type IPropertyService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error)
	List(ctx context.Context, userId uuid.UUID) ([]dto.PropertyResponse, error)
	Show(ctx context.Context, userId, propertyId uuid.UUID) (*dto.PropertyResponse, error)
	Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error)
	Delete(ctx context.Context, userId, propertyId uuid.UUID) error

	ListContacts(ctx context.Context, propertyId uuid.UUID) ([]dto.ContactResponse, error)
	CreateContact(ctx context.Context, propertyId uuid.UUID, req *dto.ContactRequest) (*dto.ContactResponse, error)
	DeleteContact(ctx context.Context, propertyId, contactId uuid.UUID) error

	ListDepartments(ctx context.Context, propertyId uuid.UUID) ([]dto.DepartmentResponse, error)
	CreateDepartment(ctx context.Context, propertyId uuid.UUID, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, propertyId, departmentId uuid.UUID, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, propertyId, departmentId uuid.UUID) error

	// SlaTargets maps department name to acknowledgement target minutes for
	// departments that have one configured.
	SlaTargets(ctx context.Context, propertyId uuid.UUID) (map[string]int, error)

	// UserOwnsProperty implements the access check behind property-scoped
	// routes and websocket rooms.
	UserOwnsProperty(ctx context.Context, userId, propertyId uuid.UUID) (bool, error)
}

type propertyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewPropertyService(uowFactory unitofwork.RepositoryFactory) IPropertyService {
	return &propertyService{uowFactory: uowFactory}
}

// Departments every new property starts with. Owners adjust them in
// settings afterwards.
var defaultDepartments = []struct {
	Name             string
	AckTargetMinutes int
}{
	{"Front Desk", 10},
	{"Housekeeping", 30},
	{"Maintenance", 60},
	{"Room Service", 20},
}

func (s *propertyService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreatePropertyRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Property count is capped by the subscription; one property without
	// an active plan.
	count, err := uow.PropertyRepository().Count(ctx, specification.OwnedByUser{UserID: userId})
	if err != nil {
		return nil, err
	}
	maxProperties := 1
	if sub, err := uow.BillingRepository().FindSubscriptionByUser(ctx, userId); err == nil && sub != nil && sub.Status == entity.SubscriptionStatusActive {
		if plan, err := uow.BillingRepository().FindOnePlan(ctx, specification.ByID{ID: sub.PlanId}); err == nil && plan != nil {
			maxProperties = plan.MaxProperties
		}
	}
	if int(count) >= maxProperties {
		return nil, errors.New("property limit reached for current plan")
	}

	timezone := req.Timezone
	if timezone == "" {
		timezone = "UTC"
	}

	property := &entity.Property{
		Id:        uuid.New(),
		OwnerId:   userId,
		Name:      req.Name,
		Type:      entity.PropertyType(req.Type),
		Timezone:  timezone,
		CreatedAt: time.Now(),
	}
	if req.Phone != "" {
		property.Phone = &req.Phone
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.PropertyRepository().Create(ctx, property); err != nil {
		return nil, err
	}

	for i, d := range defaultDepartments {
		target := d.AckTargetMinutes
		if err := uow.DepartmentRepository().Create(ctx, &entity.DepartmentSetting{
			Id:               uuid.New(),
			PropertyId:       property.Id,
			Name:             d.Name,
			AckTargetMinutes: &target,
			SortOrder:        i,
			CreatedAt:        time.Now(),
		}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	res := toPropertyResponse(property)
	return &res, nil
}

func (s *propertyService) List(ctx context.Context, userId uuid.UUID) ([]dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	properties, err := uow.PropertyRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.PropertyResponse, 0, len(properties))
	for _, p := range properties {
		out = append(out, toPropertyResponse(p))
	}
	return out, nil
}

func (s *propertyService) Show(ctx context.Context, userId, propertyId uuid.UUID) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: propertyId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property not found")
	}

	res := toPropertyResponse(property)
	return &res, nil
}

func (s *propertyService) Update(ctx context.Context, userId uuid.UUID, req *dto.UpdatePropertyRequest) (*dto.PropertyResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, errors.New("property not found")
	}

	property.Name = req.Name
	property.Type = entity.PropertyType(req.Type)
	if req.Timezone != "" {
		property.Timezone = req.Timezone
	}
	if req.Phone != "" {
		property.Phone = &req.Phone
	}

	if err := uow.PropertyRepository().Update(ctx, property); err != nil {
		return nil, err
	}

	res := toPropertyResponse(property)
	return &res, nil
}

func (s *propertyService) Delete(ctx context.Context, userId, propertyId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	property, err := uow.PropertyRepository().FindOne(ctx,
		specification.ByID{ID: propertyId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return err
	}
	if property == nil {
		return errors.New("property not found")
	}

	return uow.PropertyRepository().Delete(ctx, propertyId)
}

func (s *propertyService) ListDepartments(ctx context.Context, propertyId uuid.UUID) ([]dto.DepartmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.DepartmentRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
		specification.OrderBy{Field: "sort_order"},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.DepartmentResponse, 0, len(settings))
	for _, d := range settings {
		out = append(out, toDepartmentResponse(d))
	}
	return out, nil
}

func (s *propertyService) CreateDepartment(ctx context.Context, propertyId uuid.UUID, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Department names are a controlled vocabulary, matched exactly.
	existing, err := uow.DepartmentRepository().FindOne(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
		specification.ByDepartmentName{Name: req.Name},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("department already exists")
	}

	setting := &entity.DepartmentSetting{
		Id:               uuid.New(),
		PropertyId:       propertyId,
		Name:             req.Name,
		AckTargetMinutes: req.AckTargetMinutes,
		SortOrder:        req.SortOrder,
		CreatedAt:        time.Now(),
	}
	if err := uow.DepartmentRepository().Create(ctx, setting); err != nil {
		return nil, err
	}

	res := toDepartmentResponse(setting)
	return &res, nil
}

func (s *propertyService) UpdateDepartment(ctx context.Context, propertyId, departmentId uuid.UUID, req *dto.DepartmentRequest) (*dto.DepartmentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	setting, err := uow.DepartmentRepository().FindOne(ctx,
		specification.ByID{ID: departmentId},
		specification.ByPropertyID{PropertyID: propertyId},
	)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, errors.New("department not found")
	}

	setting.Name = req.Name
	setting.AckTargetMinutes = req.AckTargetMinutes
	setting.SortOrder = req.SortOrder

	if err := uow.DepartmentRepository().Update(ctx, setting); err != nil {
		return nil, err
	}

	res := toDepartmentResponse(setting)
	return &res, nil
}

func (s *propertyService) DeleteDepartment(ctx context.Context, propertyId, departmentId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	setting, err := uow.DepartmentRepository().FindOne(ctx,
		specification.ByID{ID: departmentId},
		specification.ByPropertyID{PropertyID: propertyId},
	)
	if err != nil {
		return err
	}
	if setting == nil {
		return errors.New("department not found")
	}

	return uow.DepartmentRepository().Delete(ctx, departmentId)
}

func (s *propertyService) ListContacts(ctx context.Context, propertyId uuid.UUID) ([]dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contacts, err := uow.ContactRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
	)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ContactResponse, 0, len(contacts))
	for _, c := range contacts {
		out = append(out, toContactResponse(c))
	}
	return out, nil
}

func (s *propertyService) CreateContact(ctx context.Context, propertyId uuid.UUID, req *dto.ContactRequest) (*dto.ContactResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// One directory entry per number; the flags live on that entry.
	existing, err := uow.ContactRepository().FindOne(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
		specification.ByPhone{Phone: req.Phone},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.New("contact already exists")
	}

	contact := &entity.GuestContact{
		Id:         uuid.New(),
		PropertyId: propertyId,
		Phone:      req.Phone,
		Name:       req.Name,
		IsVip:      req.IsVip,
		IsStaff:    req.IsStaff,
		CreatedAt:  time.Now(),
	}
	if err := uow.ContactRepository().Create(ctx, contact); err != nil {
		return nil, err
	}

	res := toContactResponse(contact)
	return &res, nil
}

func (s *propertyService) DeleteContact(ctx context.Context, propertyId, contactId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	contact, err := uow.ContactRepository().FindOne(ctx,
		specification.ByID{ID: contactId},
		specification.ByPropertyID{PropertyID: propertyId},
	)
	if err != nil {
		return err
	}
	if contact == nil {
		return errors.New("contact not found")
	}

	return uow.ContactRepository().Delete(ctx, contactId)
}

func (s *propertyService) SlaTargets(ctx context.Context, propertyId uuid.UUID) (map[string]int, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	settings, err := uow.DepartmentRepository().FindAll(ctx,
		specification.ByPropertyID{PropertyID: propertyId},
	)
	if err != nil {
		return nil, err
	}

	targets := make(map[string]int)
	for _, d := range settings {
		if d.AckTargetMinutes != nil {
			targets[d.Name] = *d.AckTargetMinutes
		}
	}
	return targets, nil
}

func (s *propertyService) UserOwnsProperty(ctx context.Context, userId, propertyId uuid.UUID) (bool, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.PropertyRepository().Count(ctx,
		specification.ByID{ID: propertyId},
		specification.OwnedByUser{UserID: userId},
	)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func toPropertyResponse(p *entity.Property) dto.PropertyResponse {
	res := dto.PropertyResponse{
		Id:        p.Id,
		Name:      p.Name,
		Type:      string(p.Type),
		Timezone:  p.Timezone,
		CreatedAt: p.CreatedAt,
	}
	if p.Phone != nil {
		res.Phone = *p.Phone
	}
	return res
}

func toContactResponse(c *entity.GuestContact) dto.ContactResponse {
	return dto.ContactResponse{
		Id:      c.Id,
		Phone:   c.Phone,
		Name:    c.Name,
		IsVip:   c.IsVip,
		IsStaff: c.IsStaff,
	}
}

func toDepartmentResponse(d *entity.DepartmentSetting) dto.DepartmentResponse {
	return dto.DepartmentResponse{
		Id:               d.Id,
		Name:             d.Name,
		AckTargetMinutes: d.AckTargetMinutes,
		SortOrder:        d.SortOrder,
	}
}
