// Command layout-map prints an ASCII preview of a planned corridor run.
// Useful for eyeballing seeds and planner tuning without the game.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/lixenwraith/corridor/core"
	"github.com/lixenwraith/corridor/layout"
)

func main() {
	seed := flag.Int64("seed", 0, "layout seed, 0 derives from time")
	rooms := flag.Int("rooms", 0, "room count, 0 uses the default")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	cfg := layout.DefaultConfig(*seed)
	if *rooms > 0 {
		cfg.RoomCount = *rooms
	}

	start := time.Now()
	result := layout.NewPlanner(cfg).Plan()
	dur := time.Since(start)

	fmt.Printf("seed %d: %d rooms in %v\n", *seed, len(result.Plans), dur)
	if !result.Complete {
		fmt.Printf("partial run: placement attempts exhausted after %d rooms\n", len(result.Plans))
	}
	if len(result.Plans) == 0 {
		os.Exit(1)
	}

	draw(result.Plans)

	for _, p := range result.Plans {
		fmt.Printf("  room %2d  origin %4d,%4d  size %dx%d  entry %v  exit %v\n",
			p.ID, p.Origin.X, p.Origin.Y, p.Size.X, p.Size.Y, p.Entry, p.Exit)
	}
}

// draw renders footprints with per-room digits and door markers
func draw(plans []layout.RoomPlan) {
	minX, minY := plans[0].Origin.X, plans[0].Origin.Y
	maxX, maxY := minX, minY
	for _, p := range plans {
		r := p.Rect()
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.X+r.W)
		maxY = max(maxY, r.Y+r.H)
	}

	w, h := maxX-minX, maxY-minY
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = make([]rune, w)
		for j := range grid[i] {
			grid[i][j] = ' '
		}
	}

	for _, p := range plans {
		digit := rune('0' + p.ID%10)
		for x := 0; x < p.Size.X; x++ {
			for z := 0; z < p.Size.Y; z++ {
				gx, gy := p.Origin.X+x-minX, p.Origin.Y+z-minY
				edge := x == 0 || x == p.Size.X-1 || z == 0 || z == p.Size.Y-1
				if edge {
					grid[gy][gx] = '#'
				} else {
					grid[gy][gx] = digit
				}
			}
		}
		markDoor(grid, p, p.Entry, 'e', minX, minY)
		markDoor(grid, p, p.Exit, 'x', minX, minY)
	}

	for _, row := range grid {
		fmt.Println(string(row))
	}
}

// markDoor overwrites the wall cells a doorway spans
func markDoor(grid [][]rune, p layout.RoomPlan, d layout.DoorRect, glyph rune, minX, minY int) {
	for i := 0; i < d.Width; i++ {
		var gx, gy int
		switch d.Side {
		case core.SideNorth:
			gx, gy = p.Origin.X+d.Offset+i, p.Origin.Y
		case core.SideSouth:
			gx, gy = p.Origin.X+d.Offset+i, p.Origin.Y+p.Size.Y-1
		case core.SideWest:
			gx, gy = p.Origin.X, p.Origin.Y+d.Offset+i
		case core.SideEast:
			gx, gy = p.Origin.X+p.Size.X-1, p.Origin.Y+d.Offset+i
		}
		grid[gy-minY][gx-minX] = glyph
	}
}
