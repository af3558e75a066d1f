// Package lineindex provides an order-statistics red-black tree. Nodes
// are addressed by rank (1-based position in in-order traversal) and a
// node's rank is computed from subtree sizes, so inserting or deleting
// a node implicitly renumbers every node after it.
package lineindex

import (
	"fmt"
)

type color bool

const (
	red   color = false
	black color = true
)

// Node holds one value. A *Node stays valid, and keeps holding the
// same value, until it is deleted from its tree.
type Node[T any] struct {
	Value T

	left, right, parent *Node[T]
	color               color
	size                int
}

// Tree is an ordered sequence of values with O(log n) access by rank.
// The zero value is not usable; call New.
type Tree[T any] struct {
	root     *Node[T]
	sentinel *Node[T]
}

// New returns an empty tree.
func New[T any]() *Tree[T] {
	s := &Node[T]{color: black}
	return &Tree[T]{root: s, sentinel: s}
}

// Len returns the number of nodes in t.
func (t *Tree[T]) Len() int {
	return t.root.size
}

// Get returns the node of the given rank or nil when rank is not in
// [1, Len()].
func (t *Tree[T]) Get(rank int) *Node[T] {
	if rank < 1 || rank > t.root.size {
		return nil
	}
	x := t.root
	for x != t.sentinel {
		ls := x.left.size
		switch {
		case rank <= ls:
			x = x.left
		case rank == ls+1:
			return x
		default:
			rank -= ls + 1
			x = x.right
		}
	}
	return nil
}

// Rank returns the 1-based position of n in its tree.
func (n *Node[T]) Rank() int {
	r := n.left.size + 1
	for x := n; x.parent != nil; x = x.parent {
		if x == x.parent.right {
			r += x.parent.left.size + 1
		}
	}
	return r
}

// First returns the node of rank 1 or nil.
func (t *Tree[T]) First() *Node[T] {
	if t.root == t.sentinel {
		return nil
	}
	return t.min(t.root)
}

// Last returns the node of rank Len() or nil.
func (t *Tree[T]) Last() *Node[T] {
	if t.root == t.sentinel {
		return nil
	}
	return t.max(t.root)
}

func (t *Tree[T]) min(x *Node[T]) *Node[T] {
	for x.left != t.sentinel {
		x = x.left
	}
	return x
}

func (t *Tree[T]) max(x *Node[T]) *Node[T] {
	for x.right != t.sentinel {
		x = x.right
	}
	return x
}

// Next returns the node following n or nil.
func (t *Tree[T]) Next(n *Node[T]) *Node[T] {
	if n.right != t.sentinel {
		return t.min(n.right)
	}
	x := n
	for x.parent != nil && x == x.parent.right {
		x = x.parent
	}
	return x.parent
}

// Prev returns the node preceding n or nil.
func (t *Tree[T]) Prev(n *Node[T]) *Node[T] {
	if n.left != t.sentinel {
		return t.max(n.left)
	}
	x := n
	for x.parent != nil && x == x.parent.left {
		x = x.parent
	}
	return x.parent
}

// Insert adds v so that it has the given rank. Ranks outside
// [1, Len()+1] are clamped.
func (t *Tree[T]) Insert(rank int, v T) *Node[T] {
	if rank < 1 {
		rank = 1
	}
	if rank > t.root.size+1 {
		rank = t.root.size + 1
	}

	z := &Node[T]{Value: v, left: t.sentinel, right: t.sentinel, color: red, size: 1}
	var y *Node[T]
	x := t.root
	left := false
	for x != t.sentinel {
		y = x
		x.size++
		if rank <= x.left.size+1 {
			x = x.left
			left = true
		} else {
			rank -= x.left.size + 1
			x = x.right
			left = false
		}
	}
	z.parent = y
	switch {
	case y == nil:
		t.root = z
	case left:
		y.left = z
	default:
		y.right = z
	}
	t.insertFixup(z)
	return z
}

func (t *Tree[T]) insertFixup(z *Node[T]) {
	for z.parent != nil && z.parent.color == red {
		gp := z.parent.parent
		if z.parent == gp.left {
			y := gp.right
			if y.color == red {
				z.parent.color = black
				y.color = black
				gp.color = red
				z = gp
				continue
			}
			if z == z.parent.right {
				z = z.parent
				t.rotateLeft(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			t.rotateRight(z.parent.parent)
		} else {
			y := gp.left
			if y.color == red {
				z.parent.color = black
				y.color = black
				gp.color = red
				z = gp
				continue
			}
			if z == z.parent.left {
				z = z.parent
				t.rotateRight(z)
			}
			z.parent.color = black
			z.parent.parent.color = red
			t.rotateLeft(z.parent.parent)
		}
	}
	t.root.color = black
}

func (t *Tree[T]) rotateLeft(x *Node[T]) {
	y := x.right
	x.right = y.left
	if y.left != t.sentinel {
		y.left.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.left:
		x.parent.left = y
	default:
		x.parent.right = y
	}
	y.left = x
	x.parent = y

	y.size = x.size
	x.size = x.left.size + x.right.size + 1
}

func (t *Tree[T]) rotateRight(x *Node[T]) {
	y := x.left
	x.left = y.right
	if y.right != t.sentinel {
		y.right.parent = x
	}
	y.parent = x.parent
	switch {
	case x.parent == nil:
		t.root = y
	case x == x.parent.right:
		x.parent.right = y
	default:
		x.parent.left = y
	}
	y.right = x
	x.parent = y

	y.size = x.size
	x.size = x.left.size + x.right.size + 1
}

// transplant replaces the subtree at u with the one at v.
func (t *Tree[T]) transplant(u, v *Node[T]) {
	switch {
	case u.parent == nil:
		t.root = v
	case u == u.parent.left:
		u.parent.left = v
	default:
		u.parent.right = v
	}
	v.parent = u.parent
}

// Delete removes z from t. Nodes are relinked, never copied, so every
// other *Node keeps its value.
func (t *Tree[T]) Delete(z *Node[T]) {
	y := z
	ycolor := y.color
	var x *Node[T]

	switch {
	case z.left == t.sentinel:
		x = z.right
		t.transplant(z, z.right)
	case z.right == t.sentinel:
		x = z.left
		t.transplant(z, z.left)
	default:
		y = t.min(z.right)
		ycolor = y.color
		x = y.right
		if y.parent == z {
			x.parent = y
		} else {
			t.transplant(y, y.right)
			y.right = z.right
			y.right.parent = y
		}
		t.transplant(z, y)
		y.left = z.left
		y.left.parent = y
		y.color = z.color
	}

	// Every size that changed is on the path from x to the root.
	for p := x.parent; p != nil; p = p.parent {
		p.size = p.left.size + p.right.size + 1
	}

	if ycolor == black {
		t.deleteFixup(x)
	}
	t.sentinel.parent = nil
	z.left, z.right, z.parent = nil, nil, nil
}

// DeleteAt removes the node of the given rank and returns its value.
func (t *Tree[T]) DeleteAt(rank int) (T, bool) {
	n := t.Get(rank)
	if n == nil {
		var zero T
		return zero, false
	}
	t.Delete(n)
	return n.Value, true
}

func (t *Tree[T]) deleteFixup(x *Node[T]) {
	for x != t.root && x.color == black {
		if x == x.parent.left {
			w := x.parent.right
			if w.color == red {
				w.color = black
				x.parent.color = red
				t.rotateLeft(x.parent)
				w = x.parent.right
			}
			if w.left.color == black && w.right.color == black {
				w.color = red
				x = x.parent
				continue
			}
			if w.right.color == black {
				w.left.color = black
				w.color = red
				t.rotateRight(w)
				w = x.parent.right
			}
			w.color = x.parent.color
			x.parent.color = black
			w.right.color = black
			t.rotateLeft(x.parent)
			x = t.root
		} else {
			w := x.parent.left
			if w.color == red {
				w.color = black
				x.parent.color = red
				t.rotateRight(x.parent)
				w = x.parent.left
			}
			if w.right.color == black && w.left.color == black {
				w.color = red
				x = x.parent
				continue
			}
			if w.left.color == black {
				w.right.color = black
				w.color = red
				t.rotateLeft(w)
				w = x.parent.left
			}
			w.color = x.parent.color
			x.parent.color = black
			w.left.color = black
			t.rotateRight(x.parent)
			x = t.root
		}
	}
	x.color = black
}

// Walk calls fn for every node from rank from to rank to inclusive,
// stopping early when fn returns false.
func (t *Tree[T]) Walk(from, to int, fn func(rank int, n *Node[T]) bool) {
	if from < 1 {
		from = 1
	}
	if to > t.root.size {
		to = t.root.size
	}
	n := t.Get(from)
	for r := from; n != nil && r <= to; r++ {
		if !fn(r, n) {
			return
		}
		n = t.Next(n)
	}
}

// Validate checks the red-black and size invariants of t.
func (t *Tree[T]) Validate() error {
	if t.root.color != black {
		return fmt.Errorf("root is red")
	}
	if t.root != t.sentinel && t.root.parent != nil {
		return fmt.Errorf("root has a parent")
	}
	if t.sentinel.size != 0 || t.sentinel.color != black {
		return fmt.Errorf("sentinel modified: size %d", t.sentinel.size)
	}
	_, err := t.check(t.root)
	return err
}

// check returns the black height of the subtree at x.
func (t *Tree[T]) check(x *Node[T]) (int, error) {
	if x == t.sentinel {
		return 1, nil
	}
	if x.color == red && (x.left.color == red || x.right.color == red) {
		return 0, fmt.Errorf("red node at rank %d has a red child", x.Rank())
	}
	if x.left != t.sentinel && x.left.parent != x {
		return 0, fmt.Errorf("bad parent link left of rank %d", x.Rank())
	}
	if x.right != t.sentinel && x.right.parent != x {
		return 0, fmt.Errorf("bad parent link right of rank %d", x.Rank())
	}
	if x.size != x.left.size+x.right.size+1 {
		return 0, fmt.Errorf("size %d at rank %d, children sum to %d", x.size, x.Rank(), x.left.size+x.right.size)
	}
	lh, err := t.check(x.left)
	if err != nil {
		return 0, err
	}
	rh, err := t.check(x.right)
	if err != nil {
		return 0, err
	}
	if lh != rh {
		return 0, fmt.Errorf("black height differs below rank %d: %d != %d", x.Rank(), lh, rh)
	}
	if x.color == black {
		lh++
	}
	return lh, nil
}
