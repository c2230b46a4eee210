package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-cli/internal/mines"
	"github.com/vancomm/minesweeper-cli/internal/records"
)

var Log = logrus.New()

// MaxSize keeps new grids printable on a terminal.
const MaxSize = 99

var menuOptions = []string{
	"Start a new game",
	"Load an existing game",
	"Leaderboard",
	"Quit",
}

const (
	optionNew = iota
	optionLoad
	optionLeaderboard
	optionQuit
)

// GridFactory builds a fresh grid; size and mineCount are already clamped.
type GridFactory func(size, mineCount int) (*mines.Grid, error)

func RandomGrids(r *rand.Rand) GridFactory {
	return func(size, mineCount int) (*mines.Grid, error) {
		return mines.New(size, mineCount, r)
	}
}

// errQuit unwinds to Run when the player leaves the program.
var errQuit = errors.New("quit")

// Controller drives the interactive menu and game loop over a record store.
type Controller struct {
	store   *records.Store
	in      *input
	out     io.Writer
	newGrid GridFactory
}

func NewController(
	store *records.Store, in io.Reader, out io.Writer, newGrid GridFactory,
) *Controller {
	return &Controller{
		store:   store,
		in:      newInput(in),
		out:     out,
		newGrid: newGrid,
	}
}

func (c *Controller) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Controller) readInt(ctx context.Context) (int, error) {
	return c.in.readInt(ctx, c.out)
}

// Run shows the main menu until the player quits or input ends. Running out
// of input is a normal exit; a cancelled ctx is returned as its error.
func (c *Controller) Run(ctx context.Context) error {
	err := c.menu(ctx)
	switch {
	case errors.Is(err, errQuit), errors.Is(err, io.EOF):
		c.printf("Quitting game\nThanks for playing!\n")
		return nil
	default:
		return err
	}
}

func (c *Controller) menu(ctx context.Context) error {
	for {
		// in-memory grids may have been played without saving
		if err := c.store.Load(ctx); err != nil {
			Log.WithError(err).Warn("unable to load saved data")
		}

		c.printf("Welcome to Minesweeper!\nPlease choose a number below to start:\n")
		for i, o := range menuOptions {
			c.printf("%d. %s\n", i, o)
		}
		c.printf("Your option: ")
		option, err := c.readInt(ctx)
		if err != nil {
			return err
		}

		switch option {
		case optionNew:
			err = c.create(ctx)
		case optionLoad:
			err = c.chooseRecord(ctx)
		case optionLeaderboard:
			err = c.printLeaderboard(ctx)
		case optionQuit:
			return errQuit
		}
		if err != nil {
			return err
		}
	}
}

func (c *Controller) create(ctx context.Context) error {
	c.printf("Please enter field size (minimum 2, -1 to go back to menu): ")
	size, err := c.readInt(ctx)
	if err != nil || size < 0 {
		return err
	}
	size = min(max(size, 2), MaxSize)

	maxMines := size*size - 1
	c.printf("Please enter the amount of mines (minimum 1, maximum %d, -1 to go back to menu): ", maxMines)
	mineCount, err := c.readInt(ctx)
	if err != nil || mineCount < 0 {
		return err
	}
	mineCount = min(max(mineCount, 1), maxMines)

	g, err := c.newGrid(size, mineCount)
	if err != nil {
		c.printf("Unable to create a game: %v\n", err)
		return nil
	}
	Log.WithFields(logrus.Fields{
		"id":        g.ID().String(),
		"size":      size,
		"mineCount": mineCount,
	}).Debug("new game")
	return c.play(ctx, g)
}

func (c *Controller) chooseRecord(ctx context.Context) error {
	for {
		grids := c.store.List()
		for i, g := range grids {
			c.printf("%d. %s | Field size: %d, Mines: %d\n",
				i, g.CreatedAt().Format(TimeLayout), g.Size(), g.MineCount())
		}
		if len(grids) == 0 {
			c.printf("NO RECORDS SAVED\n")
		}
		c.printf("\nChoose a game from your saved records, -1 to go back: ")
		selection, err := c.readInt(ctx)
		if err != nil || selection < 0 {
			return err
		}
		if selection < len(grids) {
			return c.play(ctx, grids[selection])
		}
	}
}

func (c *Controller) printLeaderboard(ctx context.Context) error {
	PrintLeaderboard(c.out, c.store.Leaderboard())
	c.printf("Input anything to go back to home screen...")
	_, err := c.in.token(ctx)
	return err
}

func (c *Controller) play(ctx context.Context, g *mines.Grid) error {
turn:
	for g.Outcome() == mines.Playing {
		Render(c.out, g)
		c.printf("Input row, column position of a block (from 0 to %d) and a flagged number (0 to open, 1 to flag), -1 to exit: ", g.Size()-1)

		var move [3]int
		for i := range move {
			n, err := c.readInt(ctx)
			if err != nil {
				return err
			}
			if n < 0 {
				resume, err := c.quitGame(ctx, g)
				if err != nil || !resume {
					return err
				}
				continue turn
			}
			move[i] = n
		}

		_, err := g.Reveal(move[0], move[1], move[2] != 0)
		if errors.Is(err, mines.ErrInvalidCoordinate) {
			c.printf("Position %d, %d is outside the field\n", move[0], move[1])
			continue
		}
		if err != nil {
			return err
		}
	}
	return c.endGame(ctx, g)
}

// quitGame asks whether to keep g before leaving the program. resume is true
// when the player cancels.
func (c *Controller) quitGame(ctx context.Context, g *mines.Grid) (resume bool, err error) {
	c.printf("Save this game? (-1: Cancel, 0: No, 1: Yes): ")
	answer, err := c.readInt(ctx)
	if err != nil {
		return false, err
	}
	switch {
	case answer < 0:
		return true, nil
	case answer == 0:
		err = c.store.Remove(ctx, g.ID())
	default:
		err = c.store.Save(ctx, g)
	}
	if err != nil {
		c.printf("Unable to update saved games: %v\n", err)
	}
	return false, errQuit
}

func (c *Controller) endGame(ctx context.Context, g *mines.Grid) error {
	won := g.Outcome() == mines.Won
	if !won {
		g.RevealAllMines()
	}
	Render(c.out, g)

	if err := c.store.Remove(ctx, g.ID()); err != nil {
		c.printf("Unable to update saved games: %v\n", err)
	}

	if won {
		c.printf("You win!\n")
	} else {
		c.printf("Oops! You dug deeper and caught a mine! Too bad!\n")
	}
	c.printf("Times played: %d\n", g.Sessions())

	if won {
		if err := c.offerHighscore(ctx, mines.Score(g)); err != nil {
			return err
		}
	}

	c.printf("Type anything to go back to menu, 0 to quit: ")
	t, err := c.in.token(ctx)
	if err != nil {
		return err
	}
	if t == "0" {
		return errQuit
	}
	return nil
}

func (c *Controller) offerHighscore(ctx context.Context, score int) error {
	c.printf("Score: %d\n", score)
	if score <= 0 || !c.store.Qualifies(score) {
		return nil
	}
	c.printf("Looks like you got a high score! Please enter your name: ")
	name, err := c.in.readLine(ctx)
	if err != nil {
		return err
	}
	if _, err := c.store.Submit(ctx, name, score); err != nil {
		c.printf("Unable to save the leaderboard: %v\n", err)
		return nil
	}
	c.printf("Highscore saved!\n")
	return nil
}
