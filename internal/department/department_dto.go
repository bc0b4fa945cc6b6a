package department

type CreateDepartmentRequest struct {
	Name string `json:"name" binding:"required"`
}

type AssignHeadRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type DepartmentResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	HeadIDs []string `json:"head_ids,omitempty"`
}
