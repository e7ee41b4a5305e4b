package request_models

type CreateTaskRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	DueDate     *int64 `json:"due_date"` // unix seconds
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"` // "pending" | "done"
	DueDate     *int64  `json:"due_date"`
}

type ShareTaskRequest struct {
	Email string `json:"email" binding:"required,email"`
}
