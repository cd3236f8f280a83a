package monitor

import "time"

// ServiceStatus is the last observed state of one dependency.
type ServiceStatus struct {
	Online   bool   `json:"online"`
	Critical bool   `json:"critical"`
	Error    string `json:"error,omitempty"`
}

// Status is a snapshot of every registered dependency.
type Status struct {
	Services  map[string]ServiceStatus `json:"services"`
	LastCheck time.Time                `json:"last_check"`
}

// Healthy reports whether every critical dependency is online.
func (s Status) Healthy() bool {
	for _, svc := range s.Services {
		if svc.Critical && !svc.Online {
			return false
		}
	}
	return true
}
