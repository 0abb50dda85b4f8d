package orderstatus

import (
	"strings"
)

type Status struct {
	Name string
}

func (s Status) Code() string {
	return s.Name
}

func (s Status) Label() string {
	parts := strings.Split(s.Name, "-")
	for i := range parts {
		if len(parts[i]) > 0 {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, " ")
}

type Enum struct {
	Incoming  Status
	Preparing Status
	Ready     Status
	Completed Status
	Cancelled Status
}

var Statuses = Enum{
	Incoming:  Status{Name: "incoming"},
	Preparing: Status{Name: "preparing"},
	Ready:     Status{Name: "ready"},
	Completed: Status{Name: "completed"},
	Cancelled: Status{Name: "cancelled"},
}

var All = []Status{
	Statuses.Incoming,
	Statuses.Preparing,
	Statuses.Ready,
	Statuses.Completed,
	Statuses.Cancelled,
}

// Deleted is a soft-delete marker, not a regular status: orders carrying it
// are excluded from every read and aggregation but stay in the store until
// the TTL index drops them.
var Deleted = Status{Name: "deleted"}

// ByName returns the status for a given name, or nil if not found.
// Deleted is not a member of the regular set and is not returned here.
func ByName(name string) *Status {
	for _, s := range All {
		if s.Name == name {
			return &s
		}
	}
	return nil
}
