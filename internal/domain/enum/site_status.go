package enum

import "database/sql/driver"

// SiteStatus represents the state of work at a construction site
type SiteStatus string

const (
	SiteStatusPlanning   SiteStatus = "Planning"
	SiteStatusInProgress SiteStatus = "In Progress"
	SiteStatusCompleted  SiteStatus = "Completed"
	SiteStatusOnHold     SiteStatus = "On Hold"
)

var siteStatuses = []SiteStatus{
	SiteStatusPlanning,
	SiteStatusInProgress,
	SiteStatusCompleted,
	SiteStatusOnHold,
}

// SiteStatusNames returns the accepted site status labels
func SiteStatusNames() []string {
	return names(siteStatuses)
}

// ParseSiteStatus matches a site status label ignoring case
func ParseSiteStatus(s string) (SiteStatus, bool) {
	return parse(s, siteStatuses)
}

func (s SiteStatus) String() string {
	return string(s)
}

func (s SiteStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *SiteStatus) Scan(value interface{}) error {
	if value == nil {
		*s = SiteStatusPlanning
		return nil
	}
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = SiteStatus(str)
	return nil
}

// EmployeeStatus marks whether a staff member is currently assignable
type EmployeeStatus string

const (
	EmployeeStatusActive   EmployeeStatus = "Active"
	EmployeeStatusInactive EmployeeStatus = "Inactive"
)

var employeeStatuses = []EmployeeStatus{EmployeeStatusActive, EmployeeStatusInactive}

// EmployeeStatusNames returns the labels in display order
func EmployeeStatusNames() []string {
	return names(employeeStatuses)
}

// ParseEmployeeStatus matches an employee status label ignoring case
func ParseEmployeeStatus(s string) (EmployeeStatus, bool) {
	return parse(s, employeeStatuses)
}

func (s EmployeeStatus) String() string {
	return string(s)
}

func (s EmployeeStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *EmployeeStatus) Scan(value interface{}) error {
	if value == nil {
		*s = EmployeeStatusActive
		return nil
	}
	str, err := scanString(value)
	if err != nil {
		return err
	}
	*s = EmployeeStatus(str)
	return nil
}
