package task

// Descendants returns every node reachable from root by following child
// edges one or more times, in breadth-first order. root itself is never
// included, and a node reachable along several paths appears once.
func (g *Graph) Descendants(root *Node) []*Node {
	if !g.Owns(root) {
		return nil
	}
	visited := map[ID]bool{root.id: true}
	queue := []*Node{root}
	var out []*Node

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		for _, cid := range curr.children {
			if visited[cid] {
				continue
			}
			visited[cid] = true
			child, ok := g.nodes[cid]
			if !ok {
				continue
			}
			out = append(out, child)
			queue = append(queue, child)
		}
	}
	return out
}

// Subtree returns root followed by its descendants.
func (g *Graph) Subtree(root *Node) []*Node {
	if !g.Owns(root) {
		return nil
	}
	return append([]*Node{root}, g.Descendants(root)...)
}

// IsDescendant reports whether target is reachable from root through one
// or more child edges.
func (g *Graph) IsDescendant(root, target *Node) bool {
	if target == nil {
		return false
	}
	for _, n := range g.Descendants(root) {
		if n == target {
			return true
		}
	}
	return false
}

// PostOrder returns root's subtree with every node after all of its
// descendants that are visited beneath it, root last. Shared descendants
// appear once, at their first finishing position.
func (g *Graph) PostOrder(root *Node) []*Node {
	if !g.Owns(root) {
		return nil
	}
	type frame struct {
		node *Node
		next int
	}
	visited := map[ID]bool{root.id: true}
	stack := []frame{{node: root}}
	var out []*Node

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next < len(top.node.children) {
			cid := top.node.children[top.next]
			top.next++
			if visited[cid] {
				continue
			}
			visited[cid] = true
			if child, ok := g.nodes[cid]; ok {
				stack = append(stack, frame{node: child})
			}
			continue
		}
		out = append(out, top.node)
		stack = stack[:len(stack)-1]
	}
	return out
}
