package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/piwi3910/timbercalc/internal/engine"
	"github.com/piwi3910/timbercalc/internal/export"
	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/report"
)

var (
	errQuit          = errors.New("quit")
	errFormCancelled = errors.New("form cancelled")
)

// Session is an interactive terminal session over one workspace.
type Session struct {
	ws       *engine.Workspace
	cfg      model.AppConfig
	exporter *export.Exporter
	in       *bufio.Reader
	out      io.Writer

	customer string
	form     model.Fields // Defaults for the next new entry

	// OnExport is called with the path of every document saved to disk.
	OnExport func(path string)
	// Now returns the document date; defaults to time.Now.
	Now func() time.Time
}

// NewSession creates a session reading commands from in and writing to out.
func NewSession(ws *engine.Workspace, cfg model.AppConfig, exporter *export.Exporter, in io.Reader, out io.Writer) *Session {
	return &Session{
		ws:       ws,
		cfg:      cfg,
		exporter: exporter,
		in:       bufio.NewReader(in),
		out:      out,
		form:     ws.BlankForm(),
		Now:      time.Now,
	}
}

// Customer returns the customer or product name printed on documents.
func (s *Session) Customer() string { return s.customer }

// SetCustomer sets the customer or product name printed on documents.
func (s *Session) SetCustomer(name string) { s.customer = strings.TrimSpace(name) }

// Run reads and dispatches commands until /quit, end of input or ctx is done.
func (s *Session) Run(ctx context.Context) error {
	module := s.ws.Module()
	fmt.Fprintf(s.out, "TimberCalc: %s (%s)\n", module, module.Unit())
	fmt.Fprintln(s.out, "Enter key=value pairs to add an entry, or /help for commands.")
	fmt.Fprintln(s.out, strings.Repeat("-", rule))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, s.prompt())
		line, readErr := s.in.ReadString('\n')
		line = strings.TrimSpace(line)
		if line != "" {
			err := s.Dispatch(ctx, line)
			if errors.Is(err, errQuit) {
				return nil
			}
			if err != nil {
				fmt.Fprintf(s.out, "Error: %v\n", err)
			}
		}
		if readErr == io.EOF {
			fmt.Fprintln(s.out)
			return nil
		}
		if readErr != nil {
			return readErr
		}
	}
}

func (s *Session) prompt() string {
	if st := s.ws.State(); st.Editing {
		return fmt.Sprintf("[editing #%d]> ", st.EntryID)
	}
	return "> "
}

// Dispatch runs a single command line. Lines without a command word but with
// key=value pairs add an entry.
func (s *Session) Dispatch(ctx context.Context, line string) error {
	tokens := SplitArgs(strings.TrimPrefix(strings.TrimSpace(line), "/"))
	if len(tokens) == 0 {
		return nil
	}
	cmd := strings.ToLower(tokens[0])
	args := tokens[1:]
	if strings.Contains(cmd, "=") {
		cmd, args = "add", tokens
	}

	switch cmd {
	case "add", "a":
		return s.add(args)

	case "edit", "e":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /edit <id> [key=value ...]")
			return nil
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		return s.edit(id, args[1:])

	case "cancel":
		s.form = s.ws.Cancel()
		fmt.Fprintln(s.out, "Edit cancelled.")

	case "rm", "del", "delete":
		if len(args) < 1 {
			fmt.Fprintln(s.out, "Usage: /rm <id>")
			return nil
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry id %q", args[0])
		}
		if s.ws.Remove(id) {
			fmt.Fprintf(s.out, "Removed entry #%d.\n", id)
			printTotals(s.out, s.ws.Module(), s.ws.Totals())
		} else {
			fmt.Fprintf(s.out, "No entry #%d.\n", id)
		}

	case "list", "ls":
		printEntries(s.out, s.ws.Module(), s.ws.Entries())
		printTotals(s.out, s.ws.Module(), s.ws.Totals())

	case "totals", "t":
		printTotals(s.out, s.ws.Module(), s.ws.Totals())

	case "rates":
		printRates(s.out, s.ws.Rates())

	case "undo":
		label, ok := s.ws.Undo()
		if !ok {
			fmt.Fprintln(s.out, "Nothing to undo.")
			return nil
		}
		s.form = s.ws.BlankForm()
		fmt.Fprintf(s.out, "Undid: %s\n", label)
		printTotals(s.out, s.ws.Module(), s.ws.Totals())

	case "redo":
		label, ok := s.ws.Redo()
		if !ok {
			fmt.Fprintln(s.out, "Nothing to redo.")
			return nil
		}
		s.form = s.ws.BlankForm()
		fmt.Fprintf(s.out, "Redid: %s\n", label)
		printTotals(s.out, s.ws.Module(), s.ws.Totals())

	case "clear":
		s.ws.Clear()
		s.form = s.ws.BlankForm()
		fmt.Fprintln(s.out, "All entries cleared. /undo restores them.")

	case "customer", "product":
		s.SetCustomer(strings.Join(args, " "))
		if s.customer == "" {
			fmt.Fprintln(s.out, "Customer cleared.")
		} else {
			fmt.Fprintf(s.out, "Customer: %s\n", s.customer)
		}

	case "summary":
		fmt.Fprintln(s.out, report.SummaryText(s.Document()))

	case "export":
		return s.export(args)

	case "share":
		return s.share(ctx)

	case "help", "?":
		s.printHelp()

	case "quit", "exit", "q":
		return errQuit

	default:
		fmt.Fprintf(s.out, "Unknown command %q. Type /help for commands.\n", cmd)
	}
	return nil
}

func (s *Session) add(args []string) error {
	if st := s.ws.State(); st.Editing {
		fmt.Fprintf(s.out, "Finish the edit of #%d with /edit or /cancel it first.\n", st.EntryID)
		return nil
	}

	var (
		fields model.Fields
		err    error
	)
	if len(args) == 0 {
		fields, err = s.promptForm(s.form, true)
		if errors.Is(err, errFormCancelled) {
			fmt.Fprintln(s.out, "Entry discarded.")
			return nil
		}
	} else {
		var rateSet bool
		fields, rateSet, err = ParseAssignments(s.ws.Module(), s.form, args)
		if err == nil && !rateSet && s.ws.Module() == model.ModuleBeading {
			fields.Rate = s.ws.BlankFormFor(fields.SizeLabel, fields.Grade).Rate
		}
	}
	if err != nil {
		return err
	}
	return s.submit(fields)
}

func (s *Session) edit(id int64, args []string) error {
	existing, err := s.ws.BeginEdit(id)
	if err != nil {
		return err
	}

	var fields model.Fields
	if len(args) == 0 {
		fields, err = s.promptForm(existing, false)
		if errors.Is(err, errFormCancelled) {
			s.form = s.ws.Cancel()
			fmt.Fprintln(s.out, "Edit cancelled.")
			return nil
		}
	} else {
		fields, _, err = ParseAssignments(s.ws.Module(), existing, args)
	}
	if err != nil {
		return err
	}
	return s.submit(fields)
}

func (s *Session) submit(fields model.Fields) error {
	res, err := s.ws.Submit(fields)
	if err != nil {
		if st := s.ws.State(); st.Editing {
			return fmt.Errorf("%w (still editing #%d, /cancel to abort)", err, st.EntryID)
		}
		return err
	}
	s.form = res.NextForm

	verb := "Added"
	if res.Updated {
		verb = "Updated"
	}
	e := res.Entry
	unit := s.ws.Module().Unit()
	fmt.Fprintf(s.out, "%s #%d: %s, %s %s, amount %s\n",
		verb, e.ID, e.Dimensions(), e.TotalMeasure.StringFixed(2), unit, amountText(e))
	printTotals(s.out, s.ws.Module(), res.Totals)
	printForm(s.out, s.ws.Module(), res.NextForm)
	return nil
}

// promptForm asks for every field of the module, offering the values in
// base as defaults. An empty answer keeps the default; "cancel" aborts.
// For new beading entries the rate default follows the size and grade.
func (s *Session) promptForm(base model.Fields, recallRate bool) (model.Fields, error) {
	module := s.ws.Module()
	fields := base
	for _, f := range formFields(module) {
		if f.key == fieldRate.key && recallRate && module == model.ModuleBeading {
			fields.Rate = s.ws.BlankFormFor(fields.SizeLabel, fields.Grade).Rate
		}
		for {
			def := current(f, fields)
			if def != "" {
				fmt.Fprintf(s.out, "  %s [%s]: ", f.prompt, def)
			} else {
				fmt.Fprintf(s.out, "  %s: ", f.prompt)
			}
			raw, err := s.in.ReadString('\n')
			raw = strings.TrimSpace(raw)
			if err != nil && raw == "" {
				return model.Fields{}, errFormCancelled
			}
			if strings.EqualFold(raw, "cancel") {
				return model.Fields{}, errFormCancelled
			}
			if raw == "" {
				break
			}
			if err := set(&fields, f, raw); err != nil {
				fmt.Fprintf(s.out, "  %v\n", err)
				continue
			}
			break
		}
	}
	return fields, nil
}

// Document builds the summary document for the current entries.
func (s *Session) Document() report.Document {
	opts := report.OptionsFromConfig(s.cfg)
	opts.ID = report.NewID()
	opts.CustomerName = s.customer
	opts.Date = s.Now()
	return report.Build(s.ws.Module(), s.ws.Entries(), opts)
}

func (s *Session) export(args []string) error {
	exp := *s.exporter
	if len(args) > 0 {
		format, err := export.ParseFormat(args[0])
		if err != nil {
			return err
		}
		exp.Format = format
	}
	path, err := exp.SaveLocal(s.Document())
	if err != nil {
		return err
	}
	s.saved(path)
	return nil
}

func (s *Session) share(ctx context.Context) error {
	doc := s.Document()
	err := s.exporter.Share(ctx, doc)
	if err == nil {
		fmt.Fprintf(s.out, "Shared %q.\n", doc.Title)
		return nil
	}
	fmt.Fprintf(s.out, "Share failed: %v. Saving locally instead.\n", err)
	path, err := s.exporter.SaveLocal(doc)
	if err != nil {
		return err
	}
	s.saved(path)
	return nil
}

func (s *Session) saved(path string) {
	fmt.Fprintf(s.out, "Saved %s\n", path)
	if s.OnExport != nil {
		s.OnExport(path)
	}
}

func (s *Session) printHelp() {
	var keys []string
	for _, f := range formFields(s.ws.Module()) {
		keys = append(keys, f.key)
	}
	fmt.Fprintln(s.out, "Commands:")
	fmt.Fprintf(s.out, "  key=value ...           add an entry (%s)\n", strings.Join(keys, ", "))
	fmt.Fprintln(s.out, "  /add                    add an entry using the form")
	fmt.Fprintln(s.out, "  /edit <id> [key=value]  change an entry")
	fmt.Fprintln(s.out, "  /cancel                 abandon the current edit")
	fmt.Fprintln(s.out, "  /rm <id>                remove an entry")
	fmt.Fprintln(s.out, "  /list, /totals, /rates  show entries, totals or remembered rates")
	fmt.Fprintln(s.out, "  /undo, /redo, /clear    history and reset")
	fmt.Fprintln(s.out, "  /customer <name>        name printed on documents")
	fmt.Fprintln(s.out, "  /summary                one-line summary")
	fmt.Fprintln(s.out, "  /export [pdf|xlsx]      save a document to the output directory")
	fmt.Fprintln(s.out, "  /share                  share a document, saving locally on failure")
	fmt.Fprintln(s.out, "  /quit")
}
