package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/lodgera/internal/clock"
	"github.com/smallbiznis/lodgera/internal/customer/domain"
	"github.com/smallbiznis/lodgera/internal/customer/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var customerTestTime = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

func newCustomerTestEnv(t *testing.T) (*gorm.DB, *snowflake.Node, domain.Service) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Customer{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(customerTestTime),
		Repo:  repository.Provide(),
	})
	return db, node, svc
}

func TestResolveGuestCreatesAndReuses(t *testing.T) {
	db, _, svc := newCustomerTestEnv(t)

	created, err := svc.ResolveGuest(context.Background(), "Alex Morgan", "Alex@Example.com ")
	require.NoError(t, err)
	assert.Equal(t, "alex@example.com", created.Email)
	assert.Equal(t, domain.KindCustomer, created.Kind)
	assert.True(t, created.CreatedAt.Equal(customerTestTime))

	// Same email resolves to the same record, name differences ignored.
	again, err := svc.ResolveGuest(context.Background(), "A. Morgan", "alex@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "Alex Morgan", again.Name)

	var count int64
	require.NoError(t, db.Model(&domain.Customer{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResolveGuestRejectsOtherKinds(t *testing.T) {
	db, node, svc := newCustomerTestEnv(t)

	staff := domain.Customer{
		ID:    node.Generate(),
		Kind:  domain.KindStaff,
		Name:  "Front Desk",
		Email: "desk@example.com",
	}
	require.NoError(t, db.Create(&staff).Error)

	_, err := svc.ResolveGuest(context.Background(), "Someone", "desk@example.com")
	assert.ErrorIs(t, err, domain.ErrKindMismatch)
}

func TestResolveGuestValidatesEmail(t *testing.T) {
	_, _, svc := newCustomerTestEnv(t)

	_, err := svc.ResolveGuest(context.Background(), "Alex Morgan", "")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)

	_, err = svc.ResolveGuest(context.Background(), "Alex Morgan", "not-an-email")
	assert.ErrorIs(t, err, domain.ErrInvalidEmail)
}

func TestGetByID(t *testing.T) {
	_, node, svc := newCustomerTestEnv(t)

	created, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Name:  "Alex Morgan",
		Email: "alex@example.com",
	})
	require.NoError(t, err)

	found, err := svc.GetByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByID(context.Background(), "garbage")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByID(context.Background(), node.Generate().String())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
