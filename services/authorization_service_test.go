package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanManageHub_GovernorRole(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `roles`").
		WithArgs(uint(1), uint(7), "owner", "committee_member").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	allowed, err := svc.CanManageHub(7, 1)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanManageHub_NoGoverningRole(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `roles`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	allowed, err := svc.CanManageHub(7, 1)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanManageHub_ZeroIDsDeniedWithoutQuery(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	allowed, err := svc.CanManageHub(0, 1)
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = svc.CanManageHub(7, 0)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanManageApartment_OwnerAllowed(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	mock.ExpectQuery("SELECT (.+) FROM `apartments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "building_id", "user_id", "name", "floor"}).
			AddRow(3, 2, 7, "A-301", 3))

	allowed, err := svc.CanManageApartment(7, 3)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanManageApartment_HubGovernorAllowed(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	// 非业主，沿公寓→楼栋→Hub链路检查治理角色
	mock.ExpectQuery("SELECT (.+) FROM `apartments`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "building_id", "user_id", "name", "floor"}).
			AddRow(3, 2, 99, "A-301", 3))
	mock.ExpectQuery("SELECT (.+) FROM `buildings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "house_hub_id", "name", "floors_count"}).
			AddRow(2, 1, "Block A", 8))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `roles`").
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	allowed, err := svc.CanManageApartment(7, 3)
	require.NoError(t, err)
	assert.True(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanManageApartment_MissingApartmentDenied(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	mock.ExpectQuery("SELECT (.+) FROM `apartments`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	allowed, err := svc.CanManageApartment(7, 404)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCanManageBuilding_BrokenChainDenied(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAuthorizationService(db, testConfig())

	mock.ExpectQuery("SELECT (.+) FROM `buildings`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "house_hub_id", "name", "floors_count"}).
			AddRow(2, 0, "Orphan", 8))

	allowed, err := svc.CanManageBuilding(7, 2)
	require.NoError(t, err)
	assert.False(t, allowed)
	assert.NoError(t, mock.ExpectationsWereMet())
}
