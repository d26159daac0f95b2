// Package sudoku implements the embedded mini-game: a 9x9 puzzle generator
// and solver built on plain backtracking.
package sudoku

import (
	"fmt"
	"math/rand"
)

// Board is a 9x9 grid; 0 marks an empty cell.
type Board [9][9]int

// Difficulty names and how many cells each removes from a solved grid.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

var removalsPerDifficulty = map[string]int{
	DifficultyEasy:   35,
	DifficultyMedium: 45,
	DifficultyHard:   54,
}

// AllowedDifficulties guards the difficulty enum at the boundary.
var AllowedDifficulties = map[string]bool{
	DifficultyEasy:   true,
	DifficultyMedium: true,
	DifficultyHard:   true,
}

// CanPlace reports whether digit d may go at (row, col): d must not already
// appear in the row, the column or the 3x3 box.
func (b *Board) CanPlace(row, col, d int) bool {
	for i := 0; i < 9; i++ {
		if b[row][i] == d || b[i][col] == d {
			return false
		}
	}
	boxRow, boxCol := (row/3)*3, (col/3)*3
	for r := boxRow; r < boxRow+3; r++ {
		for c := boxCol; c < boxCol+3; c++ {
			if b[r][c] == d {
				return false
			}
		}
	}
	return true
}

func (b *Board) findEmpty() (int, int, bool) {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b[r][c] == 0 {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// Solve fills the board in place by backtracking and reports whether a
// solution exists. Given (non-zero) cells are never modified.
func Solve(b *Board) bool {
	row, col, found := b.findEmpty()
	if !found {
		return true
	}
	for d := 1; d <= 9; d++ {
		if b.CanPlace(row, col, d) {
			b[row][col] = d
			if Solve(b) {
				return true
			}
			b[row][col] = 0
		}
	}
	return false
}

// fill populates an empty board into a full valid grid, shuffling the
// candidate digits per cell so every call produces a different solution.
func fill(b *Board, rng *rand.Rand) bool {
	row, col, found := b.findEmpty()
	if !found {
		return true
	}
	digits := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}
	rng.Shuffle(len(digits), func(i, j int) { digits[i], digits[j] = digits[j], digits[i] })
	for _, d := range digits {
		if b.CanPlace(row, col, d) {
			b[row][col] = d
			if fill(b, rng) {
				return true
			}
			b[row][col] = 0
		}
	}
	return false
}

// Generate builds a puzzle for the given difficulty and also returns the
// solved grid it was carved from. Cells are removed one at a time; a removal
// is kept when the board remains solvable. Uniqueness of the solution is not
// checked, so a generated puzzle may admit more than one solution.
func Generate(difficulty string, rng *rand.Rand) (puzzle, solution Board, err error) {
	removals, ok := removalsPerDifficulty[difficulty]
	if !ok {
		return Board{}, Board{}, fmt.Errorf("unknown difficulty %q", difficulty)
	}

	var b Board
	if !fill(&b, rng) {
		return Board{}, Board{}, fmt.Errorf("failed to generate a solved grid")
	}
	solution = b

	positions := rng.Perm(81)
	removed := 0
	for _, p := range positions {
		if removed == removals {
			break
		}
		row, col := p/9, p%9
		keep := b[row][col]
		b[row][col] = 0

		probe := b
		if Solve(&probe) {
			removed++
		} else {
			b[row][col] = keep
		}
	}

	return b, solution, nil
}

// Hint solves a copy of the current board and reveals the first empty cell.
type Hint struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

// GetHint returns the solver's digit for one currently-empty cell. It fails
// when the board has no empty cells or cannot be solved.
func GetHint(b Board) (Hint, error) {
	row, col, found := b.findEmpty()
	if !found {
		return Hint{}, fmt.Errorf("board is already complete")
	}

	probe := b
	if !Solve(&probe) {
		return Hint{}, fmt.Errorf("board is not solvable")
	}
	return Hint{Row: row, Col: col, Value: probe[row][col]}, nil
}

// Conflict marks a cell that clashes with another in its row, column or box.
type Conflict struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CheckResult reports the state of a board in play.
type CheckResult struct {
	Valid     bool       `json:"valid"`
	Complete  bool       `json:"complete"`
	Solved    bool       `json:"solved"`
	Conflicts []Conflict `json:"conflicts,omitempty"`
}

// Check scans the board for duplicate digits and completeness.
func Check(b Board) CheckResult {
	result := CheckResult{Valid: true, Complete: true}
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			d := b[r][c]
			if d == 0 {
				result.Complete = false
				continue
			}
			// Temporarily clear the cell so the placement scan only sees
			// the other 26 peers.
			b[r][c] = 0
			if !b.CanPlace(r, c, d) {
				result.Valid = false
				result.Conflicts = append(result.Conflicts, Conflict{Row: r, Col: c})
			}
			b[r][c] = d
		}
	}
	result.Solved = result.Valid && result.Complete
	return result
}

// Validate rejects boards with out-of-range digits before they reach the
// solver.
func Validate(b Board) error {
	for r := 0; r < 9; r++ {
		for c := 0; c < 9; c++ {
			if b[r][c] < 0 || b[r][c] > 9 {
				return fmt.Errorf("cell (%d,%d) holds %d, want 0-9", r, c, b[r][c])
			}
		}
	}
	return nil
}
