package graphics

// QuadIndices returns the shared index pattern for quads four vertices
// apart: {0,1,2, 0,2,3}, then the same offset by 4 for each following quad.
func QuadIndices(quads int) []uint32 {
	indices := make([]uint32, quads*6)
	for i := 0; i < quads; i++ {
		base := uint32(i * 4)
		idx := i * 6
		indices[idx+0] = base + 0
		indices[idx+1] = base + 1
		indices[idx+2] = base + 2
		indices[idx+3] = base + 0
		indices[idx+4] = base + 2
		indices[idx+5] = base + 3
	}
	return indices
}

// growQuadCapacity doubles have until it covers need.
func growQuadCapacity(have, need int) int {
	if have < 1 {
		have = 1
	}
	for have < need {
		have *= 2
	}
	return have
}
