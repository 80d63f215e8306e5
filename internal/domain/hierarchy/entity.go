package hierarchy

import "time"

// Branch is one company branch with its departments.
type Branch struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	ManagerID   string       `json:"manager_id,omitempty"`
	ManagerName string       `json:"manager_name,omitempty"`
	Departments []Department `json:"departments"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type Department struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	SupervisorID   string   `json:"supervisor_id,omitempty"`
	SupervisorName string   `json:"supervisor_name,omitempty"`
	Positions      []string `json:"positions"`
}

// Department returns the index of the department with id, or -1.
func (b *Branch) Department(id string) int {
	for i, d := range b.Departments {
		if d.ID == id {
			return i
		}
	}
	return -1
}
