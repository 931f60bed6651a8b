package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"stayops-be/internal/entity"
	"stayops-be/internal/repository/specification"
	"stayops-be/internal/repository/unitofwork"
	"stayops-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.UserRepository())
	assert.NotNil(t, uow.PropertyRepository())
	assert.NotNil(t, uow.RequestRepository())
	assert.NotNil(t, uow.BillingRepository())

	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)

	t.Run("Check User Repository", func(t *testing.T) {
		count, err := uow.UserRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("User count: %d", count)
	})

	t.Run("Guest directory lookup by property and phone", func(t *testing.T) {
		ctx := context.Background()

		ownerId := uuid.New()
		owner := &entity.User{
			Id:       ownerId,
			Email:    "test-directory-" + uuid.New().String() + "@example.com",
			FullName: "Directory Test Owner",
			Role:     entity.UserRoleOwner,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, owner)
		assert.NoError(t, err)

		phone := "+1556" + uuid.New().String()[:7]
		property := &entity.Property{
			Id:       uuid.New(),
			OwnerId:  ownerId,
			Name:     "Directory Test Hotel",
			Type:     entity.PropertyTypeHotel,
			Timezone: "UTC",
			Phone:    &phone,
		}
		err = uow.PropertyRepository().Create(ctx, property)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		guestPhone := "+1557" + uuid.New().String()[:7]
		contact := &entity.GuestContact{
			Id:         uuid.New(),
			PropertyId: property.Id,
			Phone:      guestPhone,
			Name:       "Returning Guest",
			IsVip:      true,
		}
		err = uow.ContactRepository().Create(ctx, contact)
		assert.NoError(t, err)

		// The ingest consumer resolves flags with exactly this query.
		found, err := uow.ContactRepository().FindOne(ctx,
			specification.ByPropertyID{PropertyID: property.Id},
			specification.ByPhone{Phone: guestPhone},
		)
		assert.NoError(t, err)
		if assert.NotNil(t, found) {
			assert.True(t, found.IsVip)
			assert.False(t, found.IsStaff)
		}

		// An unknown number is a miss, not an error.
		missing, err := uow.ContactRepository().FindOne(ctx,
			specification.ByPropertyID{PropertyID: property.Id},
			specification.ByPhone{Phone: "+15570000000"},
		)
		assert.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("Request lifecycle inside a transaction", func(t *testing.T) {
		ctx := context.Background()

		ownerId := uuid.New()
		owner := &entity.User{
			Id:       ownerId,
			Email:    "test-integration-" + uuid.New().String() + "@example.com",
			FullName: "Integration Test Owner",
			Role:     entity.UserRoleOwner,
			Status:   entity.UserStatusActive,
		}
		err := uow.UserRepository().Create(ctx, owner)
		assert.NoError(t, err)

		phone := "+1555" + uuid.New().String()[:7]
		property := &entity.Property{
			Id:       uuid.New(),
			OwnerId:  ownerId,
			Name:     "Integration Test Hotel",
			Type:     entity.PropertyTypeHotel,
			Timezone: "America/Chicago",
			Phone:    &phone,
		}
		err = uow.PropertyRepository().Create(ctx, property)
		assert.NoError(t, err)

		err = uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		request := &entity.Request{
			Id:         uuid.New(),
			PropertyId: property.Id,
			FromPhone:  "+15550009999",
			RoomNumber: "204",
			Message:    "Extra towels please",
			Department: "Housekeeping",
			Priority:   entity.PriorityNormal,
		}
		err = uow.RequestRepository().Create(ctx, request, []byte(`{"source":"integration"}`))
		assert.NoError(t, err)

		// First acknowledgement sticks.
		firstAck := time.Now().Add(-5 * time.Minute)
		err = uow.RequestRepository().MarkAcknowledged(ctx, request.Id, firstAck)
		assert.NoError(t, err)

		// A second acknowledgement must not move the timestamp.
		err = uow.RequestRepository().MarkAcknowledged(ctx, request.Id, time.Now())
		assert.NoError(t, err)

		stored, err := uow.RequestRepository().FindOne(ctx, specification.ByID{ID: request.Id})
		assert.NoError(t, err)
		if assert.NotNil(t, stored) {
			assert.True(t, stored.Acknowledged)
			if assert.NotNil(t, stored.AcknowledgedAt) {
				assert.WithinDuration(t, firstAck, *stored.AcknowledgedAt, 2*time.Second)
			}
		}
	})
}
