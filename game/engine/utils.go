package engine

// FreeSquares returns every board square no committed region claims, in reading order
func FreeSquares[L any](g *Game[L]) []Coordinate {
	var free []Coordinate
	for _, c := range g.Board().All() {
		if g.IsSquareFree(c) {
			free = append(free, c)
		}
	}
	return free
}

// OwnerGrid maps each board square to the index of the committed region that
// claims it, in Regions order, or -1 when the square is free.
func OwnerGrid[L any](g *Game[L]) [][]int {
	b := g.Board()
	grid := make([][]int, b.Height())
	for y := range grid {
		grid[y] = make([]int, b.Width())
		for x := range grid[y] {
			grid[y][x] = -1
		}
	}

	i := 0
	for region := range g.Regions() {
		for c := range region.Squares() {
			if b.Contains(c) {
				grid[c.Y][c.X] = i
			}
		}
		i++
	}

	return grid
}

// CountWords returns how many dictionary words of the allowed sizes exist.
// Used for puzzle summaries.
func CountWords(r *Ruleset) int {
	count := 0
	for w := range r.Dictionary {
		n := len([]rune(w))
		if n >= r.MinLength && n <= r.MaxLength {
			count++
		}
	}
	return count
}
