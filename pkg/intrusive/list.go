// Copyright 2026 National Technology & Engineering Solutions of Sandia, LLC (NTESS).
// Under the terms of Contract DE-NA0003525 with NTESS, the U.S. Government retains certain
// rights in this software.

// Package intrusive implements the doubly-linked node used to chain
// caller-allocated participants (consumers, output sinks) without any
// allocation on the hot path. Lists are not circular; the owning structure
// keeps a distinguished first pointer.
package intrusive

import (
	"github.com/sandia-minimega/minilogd/pkg/logerr"
)

// Node is embedded in any structure that participates in a list. The owner
// reference points back at the embedding structure so that traversals can
// recover it.
type Node struct {
	prev, next *Node
	owner      interface{}
}

// SetOwner records the embedding structure. Constructors call this once.
func (n *Node) SetOwner(v interface{}) {
	n.owner = v
}

// Owner returns the embedding structure, or nil if SetOwner was never called.
func (n *Node) Owner() interface{} {
	return n.owner
}

func (n *Node) HasPrev() bool {
	return n != nil && n.prev != nil
}

func (n *Node) HasNext() bool {
	return n != nil && n.next != nil
}

func (n *Node) Prev() *Node {
	if n == nil {
		return nil
	}
	return n.prev
}

func (n *Node) Next() *Node {
	if n == nil {
		return nil
	}
	return n.next
}

// Linked reports whether the node is spliced into any list.
func (n *Node) Linked() bool {
	return n.HasPrev() || n.HasNext()
}

// Insert splices node between current and current's successor. Inserting a
// node after itself is a no-op.
func Insert(current, node *Node) error {
	if current == nil || node == nil {
		return logerr.ErrInvalidParameter
	}

	if current == node {
		return nil
	}

	next := current.next
	if next != nil {
		next.prev = node
	}

	current.next = node

	node.prev = current
	node.next = next

	return nil
}

// Erase unlinks node from its list and returns its successor, or nil if it
// was the tail. The erased node's links are reset.
func Erase(node *Node) *Node {
	if node == nil {
		return nil
	}

	prev := node.prev
	next := node.next

	if prev != nil {
		prev.next = next
	}
	if next != nil {
		next.prev = prev
	}

	node.prev = nil
	node.next = nil

	return next
}

// First walks backwards from any node to the head of its list.
func First(from *Node) *Node {
	if from == nil {
		return nil
	}

	for from.prev != nil {
		from = from.prev
	}
	return from
}

// Last walks forwards from any node to the tail of its list.
func Last(from *Node) *Node {
	if from == nil {
		return nil
	}

	for from.next != nil {
		from = from.next
	}
	return from
}

// IsInside walks forward from from and reports whether node is reachable.
func IsInside(from, node *Node) bool {
	if from == nil || node == nil {
		return false
	}

	for n := from; n != nil; n = n.next {
		if n == node {
			return true
		}
	}
	return false
}
