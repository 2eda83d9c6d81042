package models

// BuildLessonTree assembles a flat module lesson list into a forest of
// root lessons with their sub-lessons attached recursively.
func BuildLessonTree(lessons []Lesson) []Lesson {
	byParent := make(map[uint][]Lesson)
	var roots []Lesson

	for _, l := range lessons {
		if l.ParentID == nil {
			roots = append(roots, l)
		} else {
			byParent[*l.ParentID] = append(byParent[*l.ParentID], l)
		}
	}

	var attach func(node *Lesson)
	attach = func(node *Lesson) {
		node.Children = byParent[node.ID]
		for i := range node.Children {
			attach(&node.Children[i])
		}
	}

	for i := range roots {
		attach(&roots[i])
	}
	return roots
}

// FindLesson walks a lesson forest and returns the node with the given
// id, or nil if it is not present.
func FindLesson(tree []Lesson, id uint) *Lesson {
	for i := range tree {
		if tree[i].ID == id {
			return &tree[i]
		}
		if found := FindLesson(tree[i].Children, id); found != nil {
			return found
		}
	}
	return nil
}

// SubtreeIDs returns the ids of a lesson and all its descendants within
// the given flat lesson list. Used to cascade deletes without leaving
// orphan sub-lessons.
func SubtreeIDs(lessons []Lesson, rootID uint) []uint {
	byParent := make(map[uint][]uint)
	for _, l := range lessons {
		if l.ParentID != nil {
			byParent[*l.ParentID] = append(byParent[*l.ParentID], l.ID)
		}
	}

	ids := []uint{rootID}
	for i := 0; i < len(ids); i++ {
		ids = append(ids, byParent[ids[i]]...)
	}
	return ids
}
