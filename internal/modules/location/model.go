// README: Requester position acquisition results.
package location

import (
	"time"

	"rentalpromo/internal/modules/geo"
)

// Source names the link of the fallback chain that produced a position.
type Source string

const (
	SourceRequest   Source = "request"
	SourceLive      Source = "live"
	SourceLastKnown Source = "last_known"
	SourceDefault   Source = "default"
	SourceTimeout   Source = "timeout"
	SourceUnknown   Source = "unknown"
)

// Fix is a device position reported by an agent.
type Fix struct {
	Point      geo.Point `json:"point"`
	RecordedAt time.Time `json:"recorded_at"`
}

type Acquired struct {
	Position geo.Position `json:"position"`
	Source   Source       `json:"source"`
}

// lastKnownFields hold a stored position on the agent's own record, tried
// before the generic record position fields.
var lastKnownFields = []string{"lastKnownLocation", "lastLocation", "lastPosition"}
