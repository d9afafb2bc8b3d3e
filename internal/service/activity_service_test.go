package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edupoint-labs/exam-portal-api/internal/dto"
	"github.com/edupoint-labs/exam-portal-api/internal/models"
	"github.com/edupoint-labs/exam-portal-api/internal/repository"
)

func newActivityService(t *testing.T) ActivityService {
	t.Helper()

	db := setupServiceDB(t)
	return NewActivityService(repository.NewActivityLogRepository(db), testValidator(), testLogger())
}

func TestActivityRecordNormalisesAndPersists(t *testing.T) {
	svc := newActivityService(t)

	entityID := uint(7)
	err := svc.Record(context.Background(), ActivityEntry{
		ActorName:  "teacher1",
		ActorRole:  models.RoleTeacher,
		Action:     " Evaluate ",
		EntityType: "Submission",
		EntityID:   &entityID,
		Metadata:   map[string]interface{}{"total_marks": 12},
	})
	require.NoError(t, err)

	response, err := svc.List(context.Background(), dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), response.Total)
	require.Equal(t, "evaluate", response.Items[0].Action)
	require.Equal(t, "submission", response.Items[0].EntityType)
	require.Equal(t, "teacher1", response.Items[0].ActorName)
	require.Equal(t, entityID, *response.Items[0].EntityID)
}

func TestActivityRecordRequiresActionAndEntity(t *testing.T) {
	svc := newActivityService(t)

	require.Error(t, svc.Record(context.Background(), ActivityEntry{EntityType: "exam"}))
	require.Error(t, svc.Record(context.Background(), ActivityEntry{Action: "create"}))
}

func TestActivityRecordAnonymousActor(t *testing.T) {
	svc := newActivityService(t)

	err := svc.Record(context.Background(), ActivityEntry{
		Action:     "submit",
		EntityType: "submission",
	})
	require.NoError(t, err)

	response, err := svc.List(context.Background(), dto.ActivityListRequest{})
	require.NoError(t, err)
	require.Equal(t, "anonymous", response.Items[0].ActorName)
}

func TestActivityListFilters(t *testing.T) {
	svc := newActivityService(t)

	entries := []ActivityEntry{
		{ActorName: "teacher1", ActorRole: models.RoleTeacher, Action: "create", EntityType: "exam"},
		{ActorName: "teacher1", ActorRole: models.RoleTeacher, Action: "delete", EntityType: "exam"},
		{ActorName: "root", ActorRole: models.RoleAdmin, Action: "delete", EntityType: "quiz"},
	}
	for _, entry := range entries {
		require.NoError(t, svc.Record(context.Background(), entry))
	}

	deletes, err := svc.List(context.Background(), dto.ActivityListRequest{Action: "delete"})
	require.NoError(t, err)
	require.Equal(t, int64(2), deletes.Total)

	quizOnly, err := svc.List(context.Background(), dto.ActivityListRequest{Action: "delete", EntityType: "quiz"})
	require.NoError(t, err)
	require.Equal(t, int64(1), quizOnly.Total)
	require.Equal(t, "root", quizOnly.Items[0].ActorName)

	paged, err := svc.List(context.Background(), dto.ActivityListRequest{Page: 1, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), paged.Total)
	require.Len(t, paged.Items, 2)
}
