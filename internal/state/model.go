package state

import (
	"InkBoard/internal/geom"

	"github.com/google/uuid"
)

// ShapeID is the handle of a rendered shape. It is what the history log
// stores and what peers use to refer to each other's shapes.
type ShapeID = uuid.UUID

// Shape is one entry of the board's shape table.
type Shape struct {
	ID       ShapeID
	Owner    string
	Color    string
	Geometry geom.Shape
	Visible  bool
	Lamport  uint64
}

type OpType string

const (
	OpInsertShape   OpType = "insert_shape"
	OpSetVisibility OpType = "set_visibility"
)

// Op is a change to the board as sent between peers. Inserts carry the
// samples and the author's radius scale rather than the outline, so every
// peer rebuilds the geometry the author drew.
type Op struct {
	ID      string       `json:"id"`
	Type    OpType       `json:"type"`
	Site    string       `json:"site"`
	Lamport uint64       `json:"lamport"`
	Shape   ShapeID      `json:"shape"`
	Color   string       `json:"color,omitempty"`
	Scale   float64      `json:"scale,omitempty"`
	Prev    *geom.Sample `json:"prev,omitempty"`
	Curr    geom.Sample  `json:"curr"`
	Hide    []ShapeID    `json:"hide,omitempty"`
	Show    []ShapeID    `json:"show,omitempty"`
}
