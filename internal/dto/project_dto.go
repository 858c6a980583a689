package dto

// ProjectCreateDTO creates a project, optionally assigning its leader.
type ProjectCreateDTO struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	LeaderID    *uint  `json:"leader_id"`
}
