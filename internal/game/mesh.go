package game

// tileRect is a run of same-kind cells in tile coordinates.
type tileRect struct {
	col, row int
	w, h     int
}

// greedyMesh merges every cell of kind k into axis-aligned rectangles.
// Cells are scanned row-major; each unvisited seed grows right as far as the
// run continues, then down while the whole span of the next row matches.
func greedyMesh(tg *TileGrid, k TileKind) []tileRect {
	visited := make([]bool, len(tg.Tiles))
	open := func(col, row int) bool {
		i := row*tg.Cols + col
		return tg.Tiles[i] == k && !visited[i]
	}

	var rects []tileRect
	for row := 0; row < tg.Rows; row++ {
		for col := 0; col < tg.Cols; col++ {
			if !open(col, row) {
				continue
			}
			w := 1
			for col+w < tg.Cols && open(col+w, row) {
				w++
			}
			h := 1
		grow:
			for row+h < tg.Rows {
				for x := 0; x < w; x++ {
					if !open(col+x, row+h) {
						break grow
					}
				}
				h++
			}
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					visited[(row+y)*tg.Cols+col+x] = true
				}
			}
			rects = append(rects, tileRect{col: col, row: row, w: w, h: h})
		}
	}
	return rects
}
