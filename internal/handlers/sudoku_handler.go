package handlers

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"onegoal/internal/sudoku"
	"onegoal/pkg/apperrors"
)

// SudokuHandler serves the built-in sudoku mini-game. It is stateless; boards
// travel in the request and response bodies.
type SudokuHandler struct{}

// NewSudokuHandler creates a new instance of SudokuHandler.
func NewSudokuHandler() *SudokuHandler {
	return &SudokuHandler{}
}

type sudokuBoardRequest struct {
	Board sudoku.Board `json:"board"`
}

// POST /sudoku/new
func (h *SudokuHandler) NewPuzzleHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req struct {
		Difficulty string `json:"difficulty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	if req.Difficulty == "" {
		req.Difficulty = sudoku.DifficultyMedium
	}
	if !sudoku.AllowedDifficulties[req.Difficulty] {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "unknown difficulty %q", req.Difficulty))
		return
	}

	// rand.Rand is not safe for concurrent use, so each request gets its own.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	puzzle, _, err := sudoku.Generate(req.Difficulty, rng)
	if err != nil {
		logrus.WithError(err).Error("Failed to generate sudoku puzzle")
		respondError(w, apperrors.Wrap(apperrors.CodeOperationFailed, err, "failed to generate puzzle"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"difficulty": req.Difficulty,
		"puzzle":     puzzle,
	})
}

// POST /sudoku/solve
func (h *SudokuHandler) SolveHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req sudokuBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	if err := sudoku.Validate(req.Board); err != nil {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "%s", err.Error()))
		return
	}
	if check := sudoku.Check(req.Board); !check.Valid {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "board has conflicting digits"))
		return
	}

	board := req.Board
	if !sudoku.Solve(&board) {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "board is not solvable"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"solution": board})
}

// POST /sudoku/hint
func (h *SudokuHandler) HintHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req sudokuBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	if err := sudoku.Validate(req.Board); err != nil {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "%s", err.Error()))
		return
	}
	if check := sudoku.Check(req.Board); !check.Valid {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "board has conflicting digits"))
		return
	}

	hint, err := sudoku.GetHint(req.Board)
	if err != nil {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "%s", err.Error()))
		return
	}

	respondJSON(w, http.StatusOK, hint)
}

// POST /sudoku/check
func (h *SudokuHandler) CheckHandler(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUser(w, r); !ok {
		return
	}

	var req sudokuBoardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadPayload(w)
		return
	}
	defer r.Body.Close()

	if err := sudoku.Validate(req.Board); err != nil {
		respondError(w, apperrors.New(apperrors.CodeValidationFailed, "%s", err.Error()))
		return
	}

	respondJSON(w, http.StatusOK, sudoku.Check(req.Board))
}
