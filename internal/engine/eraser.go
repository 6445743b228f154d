package engine

// eraseStrokes applies one eraser gesture to the whole stroke collection.
// trace is the ordered sequence of recorded eraser-circle centers; radius is
// the eraser radius. Each stroke is either kept as-is, removed, or split into
// surviving runs. The returned slice is the replacement collection.
func eraseStrokes(strokes []*Stroke, trace []Point, radius float64) []*Stroke {
	if len(trace) == 0 {
		return strokes
	}

	result := make([]*Stroke, 0, len(strokes))
	for _, s := range strokes {
		result = append(result, eraseStroke(s, trace, radius)...)
	}
	return result
}

// eraseStroke erases one stroke against the trace, returning zero, one, or
// multiple replacement strokes. An untouched stroke passes through as itself.
func eraseStroke(s *Stroke, trace []Point, radius float64) []*Stroke {
	// The eraser circle touches ink whose centerline is within the stroke's
	// own half-width of the circle edge.
	reach := radius + s.Style.Width/2

	// Degenerate single-point stroke: erased entirely if any trace point is
	// within reach, otherwise kept.
	if len(s.Points) < 2 {
		for _, t := range trace {
			if t.Distance(s.Points[0]) <= reach {
				return nil
			}
		}
		return []*Stroke{s}
	}

	removed := make([]bool, len(s.Points)-1)
	anyRemoved := false
	for i := 0; i < len(s.Points)-1; i++ {
		for _, t := range trace {
			if pointSegmentDistance(t, s.Points[i], s.Points[i+1]) <= reach {
				removed[i] = true
				anyRemoved = true
				break
			}
		}
	}

	if !anyRemoved {
		return []*Stroke{s}
	}

	// Walk the points once, accumulating runs of surviving segments. A run is
	// emitted as a new stroke when it ends, if it still has >= 2 points.
	var out []*Stroke
	run := []Point{s.Points[0]}
	for i, gone := range removed {
		if gone {
			if len(run) >= 2 {
				out = append(out, s.derive(run))
			}
			run = []Point{s.Points[i+1]}
		} else {
			run = append(run, s.Points[i+1])
		}
	}
	if len(run) >= 2 {
		out = append(out, s.derive(run))
	}
	return out
}
