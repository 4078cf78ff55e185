package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmarquez/taskflow-be/internal/services"
)

func TestCreateTask(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewTaskService(db)

	task, err := svc.CreateTask("T", "D", "open", "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, "T", task.Title)
	assert.Equal(t, "D", task.Description)
	assert.Equal(t, "open", task.Status)
	assert.Equal(t, "user-1", task.AssigneeID)
	assert.True(t, task.CreatedAt.Equal(task.UpdatedAt))
}

func TestGetTask(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewTaskService(db)

	created, err := svc.CreateTask("T", "D", "open", "user-1")
	require.NoError(t, err)

	got, err := svc.GetTask(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "T", got.Title)
	assert.Equal(t, "user-1", got.AssigneeID)

	// Absent task is found|not-found, not an error.
	missing, err := svc.GetTask("no-such-id")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateTask(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewTaskService(db)

	created, err := svc.CreateTask("T", "D", "open", "user-1")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	require.NoError(t, svc.UpdateTask(created.ID, "T2", "D2", "done"))

	got, err := svc.GetTask(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "D2", got.Description)
	assert.Equal(t, "done", got.Status)
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))
	// The assignee is immutable after creation.
	assert.Equal(t, "user-1", got.AssigneeID)
}

func TestDeleteTask(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewTaskService(db)

	created, err := svc.CreateTask("T", "D", "open", "user-1")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(created.ID))

	got, err := svc.GetTask(created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Unconditional delete: a second call is still not an error.
	assert.NoError(t, svc.DeleteTask(created.ID))
}

func TestListTasks(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewTaskService(db)

	_, err := svc.CreateTask("T1", "D1", "open", "user-1")
	require.NoError(t, err)
	_, err = svc.CreateTask("T2", "D2", "done", "user-2")
	require.NoError(t, err)

	tasks, err := svc.ListTasks()
	require.NoError(t, err)
	assert.Len(t, tasks, 2)
}

func TestListTasksByAssignee(t *testing.T) {
	db := newTestDB(t)
	userSvc := services.NewUserService(db)
	taskSvc := services.NewTaskService(db)

	alice, err := userSvc.Register("Alice", "alice", "pw1", false)
	require.NoError(t, err)
	bob, err := userSvc.Register("Bob", "bob", "pw2", false)
	require.NoError(t, err)

	_, err = taskSvc.CreateTask("For Alice", "D", "open", alice.ID)
	require.NoError(t, err)
	_, err = taskSvc.CreateTask("For Bob", "D", "open", bob.ID)
	require.NoError(t, err)

	tasks, err := taskSvc.ListTasksByAssignee(alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	assert.Equal(t, "For Alice", tasks[0].Title)
	assert.Equal(t, alice.ID, tasks[0].AssigneeID)
	assert.Equal(t, "Alice", tasks[0].AssigneeName)
	assert.Equal(t, "alice", tasks[0].AssigneeUsername)
	assert.False(t, tasks[0].AssigneeIsAdmin)
}
