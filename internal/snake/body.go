// Package snake implements the snake body as a delay line: each node
// remembers a fixed-size history of its predecessor's past positions, so
// rotating the head produces the familiar lagged "follow the leader"
// motion without every node needing its own physics state.
package snake

import (
	"sphereslither.io/internal/config"
	"sphereslither.io/internal/mathx"
)

// Node is one segment of a snake's body.
type Node struct {
	Pos      mathx.Point
	PosQueue []*mathx.Point // fixed-capacity ring, front = most recent
}

// NewHeadNode creates the single head node of a freshly spawned snake at
// pos, with an empty history queue.
func NewHeadNode(pos mathx.Point) Node {
	return Node{Pos: pos, PosQueue: make([]*mathx.Point, 0, config.NodeQueueSize)}
}

// Body is an ordered sequence of nodes, head first.
type Body []Node

// NewBody creates a straight starting body of length n, head at headPos,
// extending backward along -dir.
func NewBody(headPos, dir mathx.Point, n int) Body {
	body := make(Body, 0, n)
	body = append(body, NewHeadNode(headPos))
	axis := headPos.Cross(dir)
	if axis.Length() < 1e-9 {
		axis = mathx.FallbackTangent(headPos)
	} else {
		axis = axis.Normalize()
	}
	pos := headPos
	for i := 1; i < n; i++ {
		pos = mathx.RotateAroundAxis(pos, axis, -config.NodeAngle)
		body = append(body, NewHeadNode(pos))
	}
	return body
}

// AddNode appends a new tail node at the current tail position, extending
// the snake by one segment. axis is the snake's current rotation axis,
// used to place the new node slightly behind the old tail so it doesn't
// start exactly coincident with it.
func AddNode(body Body, axis mathx.Point) Body {
	if len(body) == 0 {
		return body
	}
	tail := body[len(body)-1]
	newPos := mathx.RotateAroundAxis(tail.Pos, axis, -config.NodeAngle)
	return append(body, Node{Pos: newPos, PosQueue: make([]*mathx.Point, 0, config.NodeQueueSize)})
}

// ApplyRotationStep advances the head to newHeadPos and propagates the
// delay-line shift through the rest of the body: the old head position is
// pushed into the front of the second node's queue, and the queue's back
// is popped out to become that node's new position (once the queue holds
// more than NodeQueueSize entries), with the node's pre-step position in
// turn pushed to the next node's queue, and so on down the body.
func ApplyRotationStep(body Body, newHeadPos mathx.Point) Body {
	if len(body) == 0 {
		return body
	}
	carry := body[0].Pos
	body[0].Pos = newHeadPos

	for i := 1; i < len(body); i++ {
		node := &body[i]
		node.PosQueue = append([]*mathx.Point{{X: carry.X, Y: carry.Y, Z: carry.Z}}, node.PosQueue...)
		oldPos := node.Pos
		if len(node.PosQueue) > config.NodeQueueSize {
			popped := node.PosQueue[len(node.PosQueue)-1]
			node.PosQueue = node.PosQueue[:len(node.PosQueue)-1]
			node.Pos = *popped
		}
		carry = oldPos
	}
	return body
}

// HeadAxis returns the rotation axis of the head's motion (head x
// direction, as NewBody uses it), derived from the head and the second
// node, for use when extending the tail with AddNode.
func HeadAxis(body Body) mathx.Point {
	if len(body) < 2 {
		return mathx.FallbackTangent(mathx.Point{})
	}
	axis := body[1].Pos.Cross(body[0].Pos)
	if axis.Length() < 1e-9 {
		return mathx.FallbackTangent(body[0].Pos)
	}
	return axis.Normalize()
}
