package employee

type CreateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Email          string  `json:"email" binding:"required,email"`
	Position       string  `json:"position"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	TotalLeaveDays *int    `json:"total_leave_days" binding:"omitempty,min=0"`
}

type UpdateEmployeeRequest struct {
	FullName       string  `json:"full_name" binding:"required"`
	Position       string  `json:"position"`
	DepartmentID   *string `json:"department_id" binding:"omitempty,uuid"`
	TotalLeaveDays *int    `json:"total_leave_days" binding:"omitempty,min=0"`
}

type EmployeeResponse struct {
	ID             string  `json:"id"`
	UserID         *string `json:"user_id,omitempty"`
	DepartmentID   *string `json:"department_id,omitempty"`
	FullName       string  `json:"full_name"`
	Email          string  `json:"email"`
	Position       string  `json:"position,omitempty"`
	TotalLeaveDays int     `json:"total_leave_days"`
	UsedLeaveDays  int     `json:"used_leave_days"`
}
