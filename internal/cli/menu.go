package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vvka-141/relload/internal/tui"
	"github.com/vvka-141/relload/internal/tui/components"
	"github.com/vvka-141/relload/pkg/relload"
)

// menuText is the numeric menu printed on non-interactive runs. The
// wording and numbering match the historical launcher verbatim.
const menuText = `1) Import all datasets (org → per → raw-feed-per)
2) Import organizations
3) Import persons
4) Import raw feed persons
5) Exit`

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick an import from the numeric menu",
	Long: `Menu presents the numeric import menu:

` + menuText + `

In a terminal the menu renders as an interactive selector; with piped
input (or RELLOAD_NO_TUI/CI set) it reads one line from stdin. Option 5
exits immediately; any input outside 1-5 is an error. One shot, no
re-prompt loop.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
	registerImportFlags(menuCmd, relload.VariantOrg)
}

// menuAction is the result of a menu selection.
type menuAction int

const (
	actionNone menuAction = iota
	actionExit
	actionImportAll
	actionImportOrg
	actionImportPer
	actionImportRawFeedPer
)

// dispatchSelection maps a raw menu entry to an action. Raw input is
// parsed exactly once, here; everything downstream works on the action.
func dispatchSelection(input string) (menuAction, error) {
	switch strings.TrimSpace(input) {
	case "1":
		return actionImportAll, nil
	case "2":
		return actionImportOrg, nil
	case "3":
		return actionImportPer, nil
	case "4":
		return actionImportRawFeedPer, nil
	case "5":
		return actionExit, nil
	default:
		return actionNone, fmt.Errorf("invalid selection %q (expected 1-5): %w",
			strings.TrimSpace(input), relload.ErrInvalidSelection)
	}
}

// actionVariant returns the import variant an action dispatches to, if any.
func actionVariant(action menuAction) (relload.Variant, bool) {
	switch action {
	case actionImportOrg:
		return relload.VariantOrg, true
	case actionImportPer:
		return relload.VariantPer, true
	case actionImportRawFeedPer:
		return relload.VariantRawFeedPer, true
	default:
		return 0, false
	}
}

func runMenu(cmd *cobra.Command, args []string) error {
	choice, err := readMenuChoice()
	if err != nil {
		return err
	}

	action, err := dispatchSelection(choice)
	if err != nil {
		return err
	}

	switch action {
	case actionExit:
		return nil
	case actionImportAll:
		return runImportAll(cmd, nil)
	default:
		variant, ok := actionVariant(action)
		if !ok {
			return fmt.Errorf("no action for selection %q: %w", choice, relload.ErrInvalidSelection)
		}
		return runImportVariant(cmd, variant)
	}
}

// readMenuChoice obtains one selection: an interactive selector in a
// terminal, one line from stdin otherwise. Cancelling the selector is
// treated as choosing Exit.
func readMenuChoice() (string, error) {
	if tui.IsInteractive() {
		selector := components.NewSelector("Select an import to run", menuOptions())
		final, err := tui.RunSelector(selector)
		if err != nil {
			return "", err
		}
		if final.Cancelled() || !final.Submitted() {
			return "5", nil
		}
		return final.Value(), nil
	}

	fmt.Println(menuText)
	fmt.Print("Select an option [1-5]: ")
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line), nil
}

// menuOptions builds the selector entries for the interactive menu.
func menuOptions() []components.Option {
	return []components.Option{
		{Label: "Import all datasets", Description: "org, per and raw feed persons, sequentially", Value: "1"},
		{Label: "Import organizations", Description: "drops and recreates the org table", Value: "2"},
		{Label: "Import persons", Description: "appends; already-imported files are skipped", Value: "3"},
		{Label: "Import raw feed persons", Description: "drops and recreates the raw feed table", Value: "4"},
		{Label: "Exit", Value: "5"},
	}
}
