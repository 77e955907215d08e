package gff

import "iter"

// DFS returns a lazy, restartable depth-first sequence of the struct's
// field cells. A Struct or List field is yielded and then recursed into;
// every other field is a leaf. The sequence walks the live tree: a cell
// mutated through another handle mid-iteration is observed with its new
// value.
func (s *Struct) DFS() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		s.dfs(yield)
	}
}

func (s *Struct) dfs(yield func(*Cell) bool) bool {
	for _, c := range s.fields {
		if !yield(c) {
			return false
		}
		f := c.Field()
		switch f.Kind() {
		case KindStruct:
			if sub, _ := f.Struct(); sub != nil && !sub.dfs(yield) {
				return false
			}
		case KindList:
			list, _ := f.List()
			for _, sub := range list {
				if !sub.dfs(yield) {
					return false
				}
			}
		}
	}
	return true
}

// BFS returns a lazy, restartable breadth-first sequence of the struct's
// field cells, with the same recursion and liveness behavior as [Struct.DFS].
func (s *Struct) BFS() iter.Seq[*Cell] {
	return func(yield func(*Cell) bool) {
		queue := s.Fields()
		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			if !yield(c) {
				return
			}
			f := c.Field()
			switch f.Kind() {
			case KindStruct:
				if sub, _ := f.Struct(); sub != nil {
					queue = append(queue, sub.fields...)
				}
			case KindList:
				list, _ := f.List()
				for _, sub := range list {
					queue = append(queue, sub.fields...)
				}
			}
		}
	}
}

// FindByLabel returns the first cell in breadth-first order whose label
// matches, or nil when no field carries the label anywhere in the tree.
func (s *Struct) FindByLabel(label string) *Cell {
	for c := range s.BFS() {
		if c.HasLabel(label) {
			return c
		}
	}
	return nil
}
