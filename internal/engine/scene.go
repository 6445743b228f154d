package engine

// Scene owns the committed content of the drawing surface. Append order is
// z-order: later entries draw on top. Selection is held as an id into the
// shape collection, never a second owning reference.
type Scene struct {
	strokes []*Stroke
	shapes  []*ShapeObject
	byID    map[string]*ShapeObject

	selectedID string
}

func NewScene() *Scene {
	return &Scene{
		byID: make(map[string]*ShapeObject),
	}
}

// Strokes returns the committed strokes in z-order.
func (s *Scene) Strokes() []*Stroke { return s.strokes }

// Shapes returns the committed shapes in z-order.
func (s *Scene) Shapes() []*ShapeObject { return s.shapes }

// AddStroke commits a stroke on top of existing ink.
func (s *Scene) AddStroke(st *Stroke) {
	s.strokes = append(s.strokes, st)
}

// AddShape commits a shape on top of existing shapes.
func (s *Scene) AddShape(sh *ShapeObject) {
	s.shapes = append(s.shapes, sh)
	s.byID[sh.ID] = sh
}

// RemoveShape deletes a shape by id. Removing an absent id is a no-op.
// Deleting the selected shape clears the selection.
func (s *Scene) RemoveShape(id string) {
	if _, ok := s.byID[id]; !ok {
		return
	}
	delete(s.byID, id)
	for i, sh := range s.shapes {
		if sh.ID == id {
			s.shapes = append(s.shapes[:i], s.shapes[i+1:]...)
			break
		}
	}
	if s.selectedID == id {
		s.selectedID = ""
	}
}

// ShapeByID looks up a shape, or nil.
func (s *Scene) ShapeByID(id string) *ShapeObject {
	return s.byID[id]
}

// Select replaces the current selection. An empty id clears it; an unknown id
// behaves like clearing.
func (s *Scene) Select(id string) {
	if id != "" && s.byID[id] == nil {
		id = ""
	}
	s.selectedID = id
}

// Selected returns the selected shape, or nil.
func (s *Scene) Selected() *ShapeObject {
	if s.selectedID == "" {
		return nil
	}
	return s.byID[s.selectedID]
}

// ReplaceStrokes swaps the whole stroke collection, used by the eraser after
// splitting strokes into surviving runs.
func (s *Scene) ReplaceStrokes(strokes []*Stroke) {
	s.strokes = strokes
}

// RemoveLastStroke drops the most recently committed stroke, if any.
func (s *Scene) RemoveLastStroke() {
	if len(s.strokes) == 0 {
		return
	}
	s.strokes = s.strokes[:len(s.strokes)-1]
}

// Clear drops all strokes, shapes, and the selection.
func (s *Scene) Clear() {
	s.strokes = nil
	s.shapes = nil
	s.byID = make(map[string]*ShapeObject)
	s.selectedID = ""
}
