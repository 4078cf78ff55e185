package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/rs/zerolog/log"

	"github.com/dmarquez/taskflow-be/internal/auth"
	"github.com/dmarquez/taskflow-be/internal/services"
)

// TaskHandler handles HTTP requests for task management. Every route it
// serves sits behind the bearer-token middleware; no ownership checks are
// applied beyond authentication.
type TaskHandler struct {
	tasks services.TaskServiceProvider
	users services.UserServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks services.TaskServiceProvider, users services.UserServiceProvider) *TaskHandler {
	return &TaskHandler{tasks: tasks, users: users}
}

// CreateTaskPayload defines the structure for task creation requests.
// AssigneeID is optional; when omitted the task is assigned to the caller.
type CreateTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	AssigneeID  string `json:"assigneeId"`
}

// Validate runs validation rules on the task creation payload.
func (p CreateTaskPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Status, validation.Required, validation.Length(1, 50)),
	)
}

// UpdateTaskPayload defines the structure for task update requests. The
// assignee cannot be changed after creation, so it is not accepted here.
type UpdateTaskPayload struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// Validate runs validation rules on the task update payload.
func (p UpdateTaskPayload) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Title, validation.Required, validation.Length(1, 200)),
		validation.Field(&p.Description, validation.Required),
		validation.Field(&p.Status, validation.Required, validation.Length(1, 50)),
	)
}

// resolveCaller looks up the full user record behind the request's verified
// claims.
func (h *TaskHandler) resolveCaller(r *http.Request) (string, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", services.ErrUserNotFound
	}
	caller, err := h.users.GetUserByUsername(claims.Username)
	if err != nil {
		return "", err
	}
	return caller.ID, nil
}

// Create handles task creation. Any authenticated user may create a task
// for any assignee; without an explicit assignee the task is self-assigned.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var payload CreateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	assigneeID := payload.AssigneeID
	if assigneeID == "" {
		callerID, err := h.resolveCaller(r)
		if err != nil {
			log.Error().Err(err).Msg("Failed to resolve task creator")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		assigneeID = callerID
	}

	if _, err := h.tasks.CreateTask(payload.Title, payload.Description, payload.Status, assigneeID); err != nil {
		log.Error().Err(err).Msg("Failed to create task")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"message": "Task Created Successfully"})
}

// GetAll returns every task, unfiltered.
func (h *TaskHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list tasks")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}

// Get returns a single task by id, or JSON null when no task has that id.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	task, err := h.tasks.GetTask(id)
	if err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("Failed to get task")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(task)
}

// Update overwrites a task's title, description, and status. Updating a
// missing task is a silent no-op.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	var payload UpdateTaskPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := payload.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	if err := h.tasks.UpdateTask(id, payload.Title, payload.Description, payload.Status); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("Failed to update task")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Task Updated"})
}

// Delete removes a task by id for any authenticated caller.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.tasks.DeleteTask(id); err != nil {
		log.Error().Err(err).Str("task_id", id).Msg("Failed to delete task")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"message": "Successfully Deleted"})
}

// GetMine returns the caller's own tasks, joined with the assignee record.
func (h *TaskHandler) GetMine(w http.ResponseWriter, r *http.Request) {
	callerID, err := h.resolveCaller(r)
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve caller for task listing")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	tasks, err := h.tasks.ListTasksByAssignee(callerID)
	if err != nil {
		log.Error().Err(err).Str("user_id", callerID).Msg("Failed to list user tasks")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(tasks)
}
