package mesh

// Mate returns the other halfedge of h's edge, or -1 if h is on a
// border edge.
func (m *Mesh) Mate(h int) int {
	e := m.H[h][hEdge]
	if m.E[e][0] == h {
		return m.E[e][1]
	}
	return m.E[e][0]
}

// Next returns the next halfedge around h's triangle.
func (m *Mesh) Next(h int) int { return m.H[h][hNext] }

// Previous returns the previous halfedge around h's triangle (two
// Next calls, since every triangle has exactly three halfedges).
func (m *Mesh) Previous(h int) int { return m.H[m.H[h][hNext]][hNext] }

// HIsBorder reports whether h's edge is on the border.
func (m *Mesh) HIsBorder(h int) bool { return m.E[m.H[h][hEdge]][1] == -1 }

// EIsBorder reports whether edge e is on the border.
func (m *Mesh) EIsBorder(e int) bool { return m.E[e][1] == -1 }

// AdjVH collects the halfedges outgoing from v. When v is an interior
// vertex the ring closes and walking stops at the start; on a border
// fan it walks forward through interior mates, then sweeps backward
// from the start to pick up the far side of the fan.
func (m *Mesh) AdjVH(v int) []int {
	var l []int
	h0 := m.V[v]
	he := h0
	if he == -1 {
		return l
	}
	for {
		l = append(l, he)
		he = m.Mate(he)
		if he == -1 {
			break
		}
		he = m.Next(he)
		if he == h0 {
			return l
		}
	}
	he = m.Mate(m.Previous(h0))
	for he != -1 {
		l = append([]int{he}, l...)
		he = m.Mate(m.Previous(he))
	}
	return l
}

// BorderH returns a border halfedge incident to v, or -1 if v is
// isolated or has no border edge.
func (m *Mesh) BorderH(v int) int {
	h0 := m.V[v]
	he := h0
	if he == -1 {
		return -1
	}
	for !m.HIsBorder(he) {
		he = m.Next(m.Mate(he))
		if he == h0 {
			return -1
		}
	}
	return he
}

// HNextBorder returns the next halfedge on the border polygon.
func (m *Mesh) HNextBorder(h int) int {
	h = m.Next(h)
	for !m.HIsBorder(h) {
		h = m.Next(m.Mate(h))
	}
	return h
}

// HPrevBorder returns the previous halfedge on the border polygon.
func (m *Mesh) HPrevBorder(h int) int {
	h = m.Previous(h)
	for !m.HIsBorder(h) {
		h = m.Previous(m.Mate(h))
	}
	return h
}

// FindVV returns the halfedge from v to vi, or -1 if v has no
// outgoing halfedge to vi.
func (m *Mesh) FindVV(v, vi int) int {
	for _, he := range m.AdjVH(v) {
		if m.H[m.Next(he)][hOrigin] == vi {
			return he
		}
	}
	return -1
}

// TGetInc returns the three vertex indices of triangle t, in halfedge
// order.
func (m *Mesh) TGetInc(t int) [3]int {
	h0 := m.T[t]
	h1 := m.Next(h0)
	h2 := m.Next(h1)
	return [3]int{m.H[h0][hOrigin], m.H[h1][hOrigin], m.H[h2][hOrigin]}
}

// GetIncidenceTable returns the vertex incidence of every triangle.
func (m *Mesh) GetIncidenceTable() [][3]int {
	out := make([][3]int, len(m.T))
	for t := range m.T {
		out[t] = m.TGetInc(t)
	}
	return out
}
