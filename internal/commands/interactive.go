package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bankview/bankview/internal/display"
	"github.com/bankview/bankview/internal/loader"
	"github.com/bankview/bankview/internal/model"
	"github.com/bankview/bankview/internal/query"
)

var sourceChoices = map[string]string{"1": "json", "2": "csv", "3": "xlsx"}

var answers = map[string]bool{
	"да": true, "д": true, "yes": true, "y": true,
	"нет": false, "н": false, "no": false, "n": false,
}

func newInteractiveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "interactive",
		Aliases: []string{"i"},
		Short:   "Walk through loading, filtering and reporting step by step",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := &prompter{in: bufio.NewScanner(cmd.InOrStdin()), out: cmd.OutOrStdout()}
			err := a.runInteractive(cmd, p)
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(p.out, "\nGoodbye!")
				return nil
			}
			return err
		},
	}
}

func (a *app) runInteractive(cmd *cobra.Command, p *prompter) error {
	out := p.out

	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "BANK TRANSACTIONS")
	fmt.Fprintln(out, strings.Repeat("=", 60))
	fmt.Fprintln(out, "\nChoose a data source:\n1. JSON file\n2. CSV file\n3. Excel file\n4. Exit")

	choice, err := p.choose("Enter a number (1-4):", []string{"1", "2", "3", "4"}, strings.TrimSpace)
	if err != nil {
		return err
	}
	if choice == "4" {
		fmt.Fprintln(out, "\nGoodbye!")
		return nil
	}

	format := sourceChoices[choice]
	txns, err := a.loadTransactions(cmd.Context(), source{format: format})
	if err != nil {
		fmt.Fprintf(out, "\nCould not load %s data: %v\n", strings.ToUpper(format), err)
		a.printAvailableFiles(out)
		return nil
	}
	if len(txns) == 0 {
		fmt.Fprintln(out, "\nThe file contains no transactions.")
		return nil
	}
	fmt.Fprintf(out, "Loaded %d transactions\n", len(txns))

	states := make([]string, len(model.States))
	for i, s := range model.States {
		states[i] = string(s)
	}
	state, err := p.choose("\nEnter the operation state ("+strings.Join(states, ", ")+"):", states, strings.ToUpper)
	if err != nil {
		return err
	}
	if txns, err = query.FilterByState(txns, state); err != nil {
		return err
	}
	fmt.Fprintf(out, "Found %d operations with state %s\n", len(txns), state)
	if len(txns) == 0 {
		fmt.Fprintln(out, "\nNo operations with the selected state.")
		return nil
	}

	if ok, err := p.confirm("\nSort operations by date? (yes/no)"); err != nil {
		return err
	} else if ok {
		order, err := p.choose("Ascending or descending? (asc/desc)",
			[]string{"asc", "desc", "по возрастанию", "по убыванию", "возрастанию", "убыванию"}, strings.ToLower)
		if err != nil {
			return err
		}
		descending, _ := parseSortOrder(order)
		if txns, err = query.SortByDate(txns, descending); err != nil {
			return err
		}
	}

	if ok, err := p.confirm("\nShow only rouble transactions? (yes/no)"); err != nil {
		return err
	} else if ok {
		txns = slices.Collect(query.FilterByCurrency(slices.Values(txns), model.CurrencyRUB))
		fmt.Fprintf(out, "Kept %d rouble transactions\n", len(txns))
	}

	if ok, err := p.confirm("\nSearch descriptions for a word? (yes/no)"); err != nil {
		return err
	} else if ok {
		word, err := p.line("Enter a word to search for:")
		if err != nil {
			return err
		}
		if word != "" {
			txns = query.FilterByDescription(txns, word)
			fmt.Fprintf(out, "Found %d transactions matching %q\n", len(txns), word)
		}
	}

	fmt.Fprintln(out)
	if err := display.Transactions(out, txns, display.Options{Limit: a.cfg.Display.Limit}); err != nil {
		return err
	}

	if ok, err := p.confirm("\nShow category statistics? (yes/no)"); err != nil {
		return err
	} else if ok && len(txns) > 0 {
		categories := a.categories(txns, nil)
		if len(categories) == 0 {
			fmt.Fprintln(out, "Could not detect any categories")
		} else if err := display.Categories(out, query.CountByCategory(txns, categories)); err != nil {
			return err
		}
	}

	fmt.Fprintln(out, "\nDone.")
	return nil
}

func (a *app) printAvailableFiles(w io.Writer) {
	files, err := loader.Scan(a.cfg.Data.Dir)
	if err != nil || len(files) == 0 {
		fmt.Fprintf(w, "No data files in %s\n", a.cfg.Data.Dir)
		return
	}
	fmt.Fprintf(w, "Files in %s:\n", a.cfg.Data.Dir)
	for _, f := range files {
		fmt.Fprintf(w, "  - %s\n", f.Name)
	}
}

// prompter reads answers line by line. All methods return io.EOF once input
// runs out.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprintf(p.out, "%s\n> ", prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// choose asks until the canonicalized answer is one of valid.
func (p *prompter) choose(prompt string, valid []string, canon func(string) string) (string, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return "", err
		}
		answer = canon(answer)
		if slices.Contains(valid, answer) {
			return answer, nil
		}
		fmt.Fprintf(p.out, "Invalid choice. Valid values: %s\n", strings.Join(valid, ", "))
	}
}

func (p *prompter) confirm(prompt string) (bool, error) {
	for {
		answer, err := p.line(prompt)
		if err != nil {
			return false, err
		}
		if yes, ok := answers[strings.ToLower(answer)]; ok {
			return yes, nil
		}
		fmt.Fprintln(p.out, "Please answer yes or no (да/нет).")
	}
}
