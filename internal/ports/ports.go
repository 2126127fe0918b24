package ports

import (
	"fmt"
	"strconv"
	"strings"
)

// Status is the health of a listening port.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusWarning  Status = "warning"
	StatusError    Status = "error"
)

// StatusAll disables status filtering.
const StatusAll Status = "all"

// FilterStatuses lists the status filters in toolbar order.
var FilterStatuses = []Status{StatusAll, StatusActive, StatusWarning, StatusError}

// Symbol returns a one-rune status marker for table cells.
func (s Status) Symbol() string {
	switch s {
	case StatusActive:
		return "●"
	case StatusInactive:
		return "○"
	case StatusWarning:
		return "▲"
	case StatusError:
		return "✗"
	}
	return "?"
}

func (s Status) String() string {
	return string(s)
}

// Protocol is the application protocol served on a port.
type Protocol string

const (
	ProtocolTCP       Protocol = "tcp"
	ProtocolUDP       Protocol = "udp"
	ProtocolHTTP      Protocol = "http"
	ProtocolHTTPS     Protocol = "https"
	ProtocolWebSocket Protocol = "websocket"
)

// SecurityLevel rates the exposure of a port.
type SecurityLevel string

const (
	SecurityLow    SecurityLevel = "low"
	SecurityMedium SecurityLevel = "medium"
	SecurityHigh   SecurityLevel = "high"
)

// Port describes one listening port and the process behind it.
type Port struct {
	ID            string
	Number        int
	Name          string
	Description   string
	Status        Status
	Protocol      Protocol
	ProcessName   string
	PID           int
	User          string
	MemoryUsage   string
	CPUUsage      string
	Connections   int
	LastActivity  string
	Uptime        string
	LocalAddress  string
	RemoteAddress string
	Security      SecurityLevel
	System        bool
	Tags          []string
}

// Process returns the process name, or the port name when unknown.
func (p Port) Process() string {
	if p.ProcessName != "" {
		return p.ProcessName
	}
	return p.Name
}

// PIDString formats the PID for display.
func (p Port) PIDString() string {
	if p.PID == 0 {
		return "N/A"
	}
	return strconv.Itoa(p.PID)
}

// URL returns the address a browser could open, or "" for non-web ports.
func (p Port) URL() string {
	switch p.Protocol {
	case ProtocolHTTP, ProtocolHTTPS:
		return fmt.Sprintf("%s://localhost:%d", p.Protocol, p.Number)
	}
	return ""
}

// Filter selects ports by search query, status and system flag.
type Filter struct {
	// Query matches the port number, name, description or any tag,
	// case-insensitively. Empty matches everything.
	Query string

	// Status restricts results to one status. Empty or StatusAll matches
	// everything.
	Status Status

	// HideSystem drops ports flagged as system ports.
	HideSystem bool
}

// Match reports whether p passes the filter.
func (f Filter) Match(p Port) bool {
	if f.Status != "" && f.Status != StatusAll && p.Status != f.Status {
		return false
	}
	if f.HideSystem && p.System {
		return false
	}
	return matchesQuery(p, f.Query)
}

// Apply returns the ports that pass the filter, in input order.
func (f Filter) Apply(list []Port) []Port {
	out := make([]Port, 0, len(list))
	for _, p := range list {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	return out
}

func matchesQuery(p Port, query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strconv.Itoa(p.Number), query) {
		return true
	}
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Find returns the port with the given ID.
func Find(list []Port, id string) (Port, bool) {
	for _, p := range list {
		if p.ID == id {
			return p, true
		}
	}
	return Port{}, false
}

// Summary counts ports per status.
type Summary struct {
	Total    int
	Active   int
	Inactive int
	Warning  int
	Error    int
}

// Summarize counts list by status.
func Summarize(list []Port) Summary {
	s := Summary{Total: len(list)}
	for _, p := range list {
		switch p.Status {
		case StatusActive:
			s.Active++
		case StatusInactive:
			s.Inactive++
		case StatusWarning:
			s.Warning++
		case StatusError:
			s.Error++
		}
	}
	return s
}
