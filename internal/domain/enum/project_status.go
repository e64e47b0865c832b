package enum

import "database/sql/driver"

// ProjectStatus represents where a project is in its lifecycle
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "Planning"
	ProjectStatusInProgress ProjectStatus = "In Progress"
	ProjectStatusCompleted  ProjectStatus = "Completed"
	ProjectStatusOnHold     ProjectStatus = "On Hold"
	ProjectStatusCancelled  ProjectStatus = "Cancelled"
)

var projectStatuses = []ProjectStatus{
	ProjectStatusPlanning,
	ProjectStatusInProgress,
	ProjectStatusCompleted,
	ProjectStatusOnHold,
	ProjectStatusCancelled,
}

// ProjectStatuses returns every project status in display order
func ProjectStatuses() []ProjectStatus {
	return append([]ProjectStatus(nil), projectStatuses...)
}

// ProjectStatusNames returns the accepted status labels
func ProjectStatusNames() []string {
	return names(projectStatuses)
}

// ParseProjectStatus matches a status label ignoring case
func ParseProjectStatus(s string) (ProjectStatus, bool) {
	return parse(s, projectStatuses)
}

func (s ProjectStatus) String() string {
	return string(s)
}

func (s ProjectStatus) IsValid() bool {
	_, ok := ParseProjectStatus(string(s))
	return ok
}

func (s ProjectStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *ProjectStatus) Scan(value interface{}) error {
	if value == nil {
		*s = ProjectStatusPlanning
		return nil
	}
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = ProjectStatus(str)
	return nil
}

// Priority represents how urgently a project should be scheduled
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

var priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// PriorityNames returns the accepted priority labels
func PriorityNames() []string {
	return names(priorities)
}

// ParsePriority matches a priority label ignoring case
func ParsePriority(s string) (Priority, bool) {
	return parse(s, priorities)
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) Value() (driver.Value, error) {
	return string(p), nil
}

func (p *Priority) Scan(value interface{}) error {
	if value == nil {
		*p = PriorityMedium
		return nil
	}
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*p = Priority(str)
	return nil
}
