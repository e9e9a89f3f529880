// Package terminal plays tic-tac-toe on a text console.
package terminal

import (
    "bufio"
    "context"
    "errors"
    "fmt"
    "io"
    "strconv"
    "strings"

    "github.com/willvelida/tic-tac-toe/internal/ai"
    "github.com/willvelida/tic-tac-toe/internal/domain"
)

// ErrQuit is returned when the player leaves or input runs out.
var ErrQuit = errors.New("player quit")

const rule = "=============================="

// UI reads choices from in and writes everything to out.
type UI struct {
    in  *bufio.Scanner
    out io.Writer
    rng ai.Rand
}

// New returns a console UI. rng drives the "random symbol" choice.
func New(in io.Reader, out io.Writer, rng ai.Rand) *UI {
    if rng == nil {
        rng = ai.NewRand(0)
    }
    return &UI{in: bufio.NewScanner(in), out: out, rng: rng}
}

func (u *UI) printf(format string, args ...any) { _, _ = fmt.Fprintf(u.out, format, args...) }

func (u *UI) readLine(prompt string) (string, error) {
    u.printf("%s", prompt)
    if !u.in.Scan() {
        if err := u.in.Err(); err != nil {
            return "", err
        }
        u.printf("\n")
        return "", ErrQuit
    }
    return strings.TrimSpace(u.in.Text()), nil
}

func (u *UI) header(title string) {
    u.printf("\n%s\n%s\n%s\n", rule, title, rule)
}

// Message prints an informational line.
func (u *UI) Message(msg string) { u.printf("> %s\n", msg) }

// Error prints a complaint about the last input.
func (u *UI) Error(msg string) { u.printf("! %s\n", msg) }

// AIStatus prints progress reported by an automated mover.
func (u *UI) AIStatus(msg string) { u.printf("[ai] %s\n", msg) }

func (u *UI) Welcome() {
    u.header("WELCOME TO TIC-TAC-TOE")
    u.printf("Enter positions 1-9 to make moves:\n")
    u.printf("   1 │ 2 │ 3\n  ───┼───┼───\n   4 │ 5 │ 6\n  ───┼───┼───\n   7 │ 8 │ 9\n")
    u.printf("Play Human vs Human with a friend, or challenge the AI.\n")
}

// ShowBoard draws b with empty cells labelled by their position.
func (u *UI) ShowBoard(b domain.Board) {
    u.header("TIC-TAC-TOE")
    for row := 0; row < 3; row++ {
        if row > 0 {
            u.printf("  ───┼───┼───\n")
        }
        p := row*3 + 1
        u.printf("   %s │ %s │ %s \n",
            domain.DisplayValue(b, p), domain.DisplayValue(b, p+1), domain.DisplayValue(b, p+2))
    }
    u.printf("\n")
}

func (u *UI) TurnInfo(side domain.Cell, automated bool) {
    kind := "Human"
    if automated {
        kind = "AI"
    }
    u.printf("\n%s Player %s's turn\n", kind, side)
}

// Position asks side for a move until it names an open cell of b.
func (u *UI) Position(ctx context.Context, side domain.Cell, b domain.Board) (int, error) {
    for {
        if err := ctx.Err(); err != nil {
            return 0, err
        }
        line, err := u.readLine(fmt.Sprintf("Player %s, enter position (%d-%d): ", side, domain.MinPosition, domain.MaxPosition))
        if err != nil {
            return 0, err
        }
        if line == "" {
            u.Error("Please enter a position")
            continue
        }
        pos, err := strconv.Atoi(line)
        if err != nil {
            u.Error("Please enter a valid number between 1 and 9")
            continue
        }
        if !domain.InRange(pos) {
            u.Error("Position must be between 1 and 9")
            continue
        }
        if !domain.IsLegal(b, pos) {
            u.Error(fmt.Sprintf("Position %d is already taken!", pos))
            continue
        }
        return pos, nil
    }
}

// Mode asks for a game mode; choosing quit returns ErrQuit.
func (u *UI) Mode() (domain.Mode, error) {
    for {
        u.header("GAME MODE")
        u.printf("1. Human vs Human\n2. Human vs AI\n3. Quit Game\n\n")
        choice, err := u.readLine("Select game mode (1-3): ")
        if err != nil {
            return domain.PeerVsPeer, err
        }
        switch choice {
        case "1":
            return domain.PeerVsPeer, nil
        case "2":
            return domain.PeerVsAutomated, nil
        case "3":
            return domain.PeerVsPeer, ErrQuit
        }
        u.Error("Invalid choice. Please enter 1, 2, or 3.")
    }
}

// Symbol asks which side the human takes. Empty means back to the main menu.
func (u *UI) Symbol() (domain.Cell, error) {
    for {
        u.header("CHOOSE YOUR SYMBOL")
        u.printf("1. Play as X (goes first)\n2. Play as O (goes second)\n3. Random choice\n4. Back to main menu\n\n")
        choice, err := u.readLine("Enter your choice (1-4): ")
        if err != nil {
            return domain.Empty, err
        }
        switch choice {
        case "1":
            return domain.X, nil
        case "2":
            return domain.O, nil
        case "3":
            side := domain.X
            if u.rng.Intn(2) == 1 {
                side = domain.O
            }
            u.Message(fmt.Sprintf("Random choice: You are player %s", side))
            return side, nil
        case "4":
            return domain.Empty, nil
        }
        u.Error("Invalid choice. Please enter 1, 2, 3, or 4.")
    }
}

func (u *UI) Difficulty() (ai.Tier, error) {
    for {
        u.header("AI DIFFICULTY")
        u.printf("1. Easy   - AI makes mistakes\n2. Medium - AI plays well most of the time\n3. Hard   - AI plays perfectly\n\n")
        choice, err := u.readLine("Select difficulty (1-3): ")
        if err != nil {
            return ai.Easy, err
        }
        switch choice {
        case "1", "2", "3":
            return ai.ParseTier(choice)
        }
        u.Error("Invalid choice. Please enter 1, 2, or 3.")
    }
}

// Result announces how the game ended.
func (u *UI) Result(st domain.Status) {
    u.header("GAME OVER!")
    switch st.Outcome {
    case domain.Won:
        u.printf("Player %s wins!\nCongratulations to the %s player!\n", st.Winner, st.Winner)
    case domain.Drawn:
        u.printf("It's a draw!\nGreat game - you both played well!\n")
    default:
        u.printf("Game ended unexpectedly.\n")
    }
    u.printf("%s\n", rule)
}

// PlayAgain reports whether another game was requested.
func (u *UI) PlayAgain() (bool, error) {
    for {
        u.header("PLAY AGAIN?")
        u.printf("1. Play another game\n2. Exit\n\n")
        choice, err := u.readLine("Enter your choice (1-2): ")
        if err != nil {
            return false, err
        }
        switch choice {
        case "1":
            return true, nil
        case "2":
            return false, nil
        }
        u.Error("Invalid choice. Please enter 1 or 2.")
    }
}
