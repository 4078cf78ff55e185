package services

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/dmarquez/taskflow-be/internal/models"
)

// TaskServiceProvider defines the interface for task services.
type TaskServiceProvider interface {
	CreateTask(title, description, status, assigneeID string) (models.Task, error)
	ListTasks() ([]models.Task, error)
	GetTask(id string) (*models.Task, error)
	UpdateTask(id, title, description, status string) error
	DeleteTask(id string) error
	ListTasksByAssignee(userID string) ([]models.UserTask, error)
}

// TaskService provides business logic for task management.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

// CreateTask inserts a new task. The caller resolves the assignee id
// (defaulting to its own) before calling; created_at and updated_at start
// equal.
func (s *TaskService) CreateTask(title, description, status, assigneeID string) (models.Task, error) {
	now := time.Now().UTC()
	task := models.Task{
		ID:          uuid.New().String(),
		Title:       title,
		Description: description,
		Status:      status,
		AssigneeID:  assigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stmt, err := s.db.Prepare("INSERT INTO tasks(id, title, description, status, assignee_id, created_at, updated_at) VALUES(?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return models.Task{}, err
	}
	defer stmt.Close()

	_, err = stmt.Exec(task.ID, task.Title, task.Description, task.Status, task.AssigneeID, task.CreatedAt, task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// ListTasks retrieves every task, unfiltered.
func (s *TaskService) ListTasks() ([]models.Task, error) {
	rows, err := s.db.Query("SELECT id, title, description, status, assignee_id, created_at, updated_at FROM tasks")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a single task by id. A missing task is (nil, nil), not
// an error, so callers can distinguish found from not-found.
func (s *TaskService) GetTask(id string) (*models.Task, error) {
	var t models.Task
	row := s.db.QueryRow("SELECT id, title, description, status, assignee_id, created_at, updated_at FROM tasks WHERE id = ?", id)
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// UpdateTask overwrites a task's title, description, and status and
// refreshes updated_at. The assignee is left untouched. No existence check:
// updating a missing id is a no-op.
func (s *TaskService) UpdateTask(id, title, description, status string) error {
	stmt, err := s.db.Prepare("UPDATE tasks SET title = ?, description = ?, status = ?, updated_at = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	_, err = stmt.Exec(title, description, status, time.Now().UTC(), id)
	return err
}

// DeleteTask removes a task unconditionally. Delete-if-present semantics.
func (s *TaskService) DeleteTask(id string) error {
	_, err := s.db.Exec("DELETE FROM tasks WHERE id = ?", id)
	return err
}

// ListTasksByAssignee joins tasks to users on the assignee reference and
// returns the tasks assigned to the given user.
func (s *TaskService) ListTasksByAssignee(userID string) ([]models.UserTask, error) {
	rows, err := s.db.Query(`
		SELECT tasks.id, tasks.title, tasks.description, tasks.status, tasks.assignee_id,
		       tasks.created_at, tasks.updated_at, users.name, users.username, users.is_admin
		FROM users INNER JOIN tasks ON users.id = tasks.assignee_id
		WHERE users.id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []models.UserTask
	for rows.Next() {
		var t models.UserTask
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.AssigneeID,
			&t.CreatedAt, &t.UpdatedAt, &t.AssigneeName, &t.AssigneeUsername, &t.AssigneeIsAdmin); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
