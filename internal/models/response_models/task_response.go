package response_models

type TaskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	DueDate     *int64   `json:"due_date,omitempty"`
	OwnerID     string   `json:"owner_id"`
	SharedWith  []string `json:"shared_with,omitempty"`
	CreatedAt   int64    `json:"created_at"`
	UpdatedAt   int64    `json:"updated_at"`
}
