package model

// RoomType is the canonical room classification. Locale-specific labels
// (e.g. "Behandlungszimmer", "Anmeldung") are mapped onto these values
// before scoring.
type RoomType string

const (
	RoomReception     RoomType = "reception"
	RoomWaiting       RoomType = "waiting"
	RoomExam          RoomType = "exam"
	RoomLab           RoomType = "lab"
	RoomOffice        RoomType = "office"
	RoomSterilization RoomType = "sterilization"
	RoomStorage       RoomType = "storage"
	RoomToilet        RoomType = "toilet"
	RoomKitchen       RoomType = "kitchen"
	RoomChanging      RoomType = "changing"
	RoomXRay          RoomType = "xray"
)

// RoomSpec describes one room of the practice. Position and dimensions are
// in normalized length units; Floor is an integer level index. Rooms are
// created and edited by the facility editor, the analyzer only reads them.
type RoomSpec struct {
	ID     string   `json:"id"`
	Type   RoomType `json:"canonical_type"`
	Name   string   `json:"name,omitempty"`
	X      float64  `json:"x"`
	Y      float64  `json:"y"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Floor  int      `json:"floor"`
}

// CenterX returns the x coordinate of the room's geometric center.
func (r RoomSpec) CenterX() float64 { return r.X + r.Width/2 }

// CenterY returns the y coordinate of the room's geometric center.
func (r RoomSpec) CenterY() float64 { return r.Y + r.Height/2 }

// HasValidGeometry reports whether the room can take part in sizing and
// distance scoring. Rooms with zero or negative dimensions are excluded
// from those sub-scores instead of failing the run.
func (r RoomSpec) HasValidGeometry() bool { return r.Width > 0 && r.Height > 0 }
