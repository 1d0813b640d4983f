package services

import (
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hadirida46/house-hub-api/internal/error/code"
)

func TestCreateAnnouncement_HubNotFound(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAnnouncementService(db, testConfig(), &fakeAuthService{allowHub: true}, &fakeNotifier{})

	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.CreateAnnouncement(7, 404, "Title", "Body")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrHouseHubNotFound, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAnnouncement_Unauthorized(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	notifier := &fakeNotifier{}
	svc := NewAnnouncementService(db, testConfig(), &fakeAuthService{allowHub: false}, notifier)

	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").WillReturnRows(hubRow(1, "Sunrise Hub"))

	_, err := svc.CreateAnnouncement(7, 1, "Title", "Body")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrUnauthorizedAction, se.Code)
	assert.Equal(t, "You are not authorized to create announcements for this HouseHub.", se.Message)
	assert.Empty(t, notifier.published)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAnnouncement_TitleRequired(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAnnouncementService(db, testConfig(), &fakeAuthService{allowHub: true}, &fakeNotifier{})

	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").WillReturnRows(hubRow(1, "Sunrise Hub"))

	_, err := svc.CreateAnnouncement(7, 1, "   ", "Body")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrValidation, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAnnouncement_TitleLimitCountsCharactersNotBytes(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAnnouncementService(db, testConfig(), &fakeAuthService{allowHub: true}, &fakeNotifier{})

	// 255个多字节字符（765字节）仍在上限内
	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").WillReturnRows(hubRow(1, "Sunrise Hub"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `announcements`").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	_, err := svc.CreateAnnouncement(7, 1, strings.Repeat("水", 255), "Body")
	require.NoError(t, err)

	// 256个字符越界
	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").WillReturnRows(hubRow(1, "Sunrise Hub"))

	_, err = svc.CreateAnnouncement(7, 1, strings.Repeat("a", 256), "Body")
	se := AsServiceError(err)
	require.NotNil(t, se)
	assert.Equal(t, code.ErrValidation, se.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAnnouncement_PersistsAndPublishes(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	notifier := &fakeNotifier{}
	svc := NewAnnouncementService(db, testConfig(), &fakeAuthService{allowHub: true}, notifier)

	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").WillReturnRows(hubRow(1, "Sunrise Hub"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `announcements`").
		WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	announcement, err := svc.CreateAnnouncement(7, 1, "  Water outage  ", "Saturday 09:00-13:00")
	require.NoError(t, err)
	assert.Equal(t, uint(1), announcement.HouseHubID)
	assert.Equal(t, uint(7), announcement.UserID)
	assert.Equal(t, "Water outage", announcement.Title)

	require.Len(t, notifier.published, 1)
	assert.Equal(t, announcement.ID, notifier.published[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetHubAnnouncements_NewestFirstWithAuthorProjection(t *testing.T) {
	db, mock, sqlDB := setupMockDB(t)
	defer sqlDB.Close()

	svc := NewAnnouncementService(db, testConfig(), &fakeAuthService{allowHub: true}, &fakeNotifier{})

	older := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM `house_hubs`").WillReturnRows(hubRow(1, "Sunrise Hub"))
	mock.ExpectQuery("SELECT (.+) FROM `announcements`(.+)ORDER BY created_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"id", "house_hub_id", "user_id", "title", "body", "created_at"}).
			AddRow(2, 1, 7, "Newer", "b2", newer).
			AddRow(1, 1, 7, "Older", "b1", older))
	// Preload作者
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(7, "alice", "alice@example.com"))

	views, err := svc.GetHubAnnouncements(1)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.Equal(t, "Newer", views[0].Title)
	assert.Equal(t, "Older", views[1].Title)
	assert.Equal(t, newer.Format(time.RFC3339), views[0].CreatedAt)

	// 作者仅投影id与name
	assert.Equal(t, uint(7), views[0].User.ID)
	assert.Equal(t, "alice", views[0].User.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
