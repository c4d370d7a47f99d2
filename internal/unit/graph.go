package unit

import "github.com/pkg/errors"

// Visit states for the iterative depth-first walk.
const (
	unvisited = iota
	active    // on the current path
	done
)

type frame struct {
	unit *Unit
	next int // index of the next forward connection to follow
}

// Walk visits every unit reachable from roots through forward connections,
// each exactly once, in depth-first pre-order. It uses an explicit stack, so
// deep graphs do not grow the goroutine stack.
//
// Reaching a unit that is still on the current path means the graph has a
// cycle; Walk stops and returns ErrCycle.
func Walk(roots []*Unit, visit func(*Unit)) error {
	_, err := walk(roots, visit)
	return err
}

// TopologicalOrder returns every unit reachable from roots ordered so that
// each unit comes after all of its reachable producers.
func TopologicalOrder(roots []*Unit) ([]*Unit, error) {
	post, err := walk(roots, nil)
	if err != nil {
		return nil, err
	}
	order := make([]*Unit, len(post))
	for i, u := range post {
		order[len(post)-1-i] = u
	}
	return order, nil
}

// walk runs the depth-first traversal and returns units in post-order.
func walk(roots []*Unit, visit func(*Unit)) ([]*Unit, error) {
	state := make(map[*Unit]int)
	var post []*Unit
	var stack []frame

	for _, root := range roots {
		if state[root] != unvisited {
			continue
		}
		state[root] = active
		if visit != nil {
			visit(root)
		}
		stack = append(stack, frame{unit: root})

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			if top.next == len(top.unit.forward) {
				state[top.unit] = done
				post = append(post, top.unit)
				stack = stack[:len(stack)-1]
				continue
			}

			child := top.unit.forward[top.next].dest
			top.next++

			switch state[child] {
			case active:
				return nil, errors.Wrapf(ErrCycle, "%s -> %s", top.unit, child)
			case done:
				continue
			}
			state[child] = active
			if visit != nil {
				visit(child)
			}
			stack = append(stack, frame{unit: child})
		}
	}
	return post, nil
}

// reaches reports whether to is reachable from from via forward connections.
func reaches(from, to *Unit) bool {
	seen := map[*Unit]bool{from: true}
	queue := []*Unit{from}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == to {
			return true
		}
		for _, c := range u.forward {
			if !seen[c.dest] {
				seen[c.dest] = true
				queue = append(queue, c.dest)
			}
		}
	}
	return false
}

// CheckLinks verifies that every connection of u is registered exactly once
// on both of its endpoints and that its endpoints agree with the list it was
// found in.
func CheckLinks(u *Unit) error {
	for _, c := range u.forward {
		if c.source != u || count(c.dest.rear, c) != 1 || count(u.forward, c) != 1 {
			return errors.Wrapf(ErrConnectionMismatch, "forward connection %s of %s", c, u)
		}
	}
	for _, c := range u.rear {
		if c.dest != u || count(c.source.forward, c) != 1 || count(u.rear, c) != 1 {
			return errors.Wrapf(ErrConnectionMismatch, "rear connection %s of %s", c, u)
		}
	}
	return nil
}

func count(list []*Connection, c *Connection) int {
	n := 0
	for _, x := range list {
		if x == c {
			n++
		}
	}
	return n
}
