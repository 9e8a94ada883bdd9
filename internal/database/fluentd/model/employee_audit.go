package model

// EmployeeAudit 員工建立 / 修改 / 刪除的稽核紀錄
type EmployeeAudit struct {
	Action        string `json:"action"` // create / update / delete
	EmployeeID    int64  `json:"employee_id"`
	Actor         string `json:"actor,omitempty"`
	Role          string `json:"role,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
	PositionID    int64  `json:"position_id,omitempty"`
	WorkplaceKind string `json:"workplace_kind,omitempty"`
	WorkplaceID   int64  `json:"workplace_id,omitempty"`
	ManagerID     int64  `json:"manager_id,omitempty"`
	Version       string `json:"version"`
	LoggedAt      string `json:"logged_at"`
}
