package world

import "math"

// Vec3 is a position or displacement in world space. Y is up.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns the vector multiplied by a scalar.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Length returns the Euclidean length of the vector.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Transform is a placement in world space: a position and a heading around
// the vertical axis. Yaw 0 faces +Z; the forward vector for a yaw is
// (sin yaw, 0, cos yaw).
type Transform struct {
	Position Vec3    `json:"position"`
	Yaw      float64 `json:"yaw"`
}

// WallSegment is one wall of the maze: an axis-aligned box described by its
// center, its heading and its extents. Yaw 0 runs the segment's length along
// the X axis; yaw pi/2 along Z.
type WallSegment struct {
	Center    Vec3    `json:"center"`
	Yaw       float64 `json:"yaw"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Height    float64 `json:"height"`
}

// Panel is a square floor or ceiling tile centered on a cell.
type Panel struct {
	Center Vec3    `json:"center"`
	Size   float64 `json:"size"`
}

// GoalMarker is the goal trigger volume: a sphere of the configured radius
// centered in the goal cell at player height.
type GoalMarker struct {
	Center Vec3    `json:"center"`
	Radius float64 `json:"radius"`
}

// Geometry is the disposable 3D layout derived from one maze: every wall
// segment, floor and ceiling panel, the spawn transform and the goal marker.
// Regenerated wholesale each time a new maze is requested.
type Geometry struct {
	Walls    []WallSegment `json:"walls"`
	Floors   []Panel       `json:"floors"`
	Ceilings []Panel       `json:"ceilings"`
	Spawn    Transform     `json:"spawn"`
	Goal     GoalMarker    `json:"goal"`
}
