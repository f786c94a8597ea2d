package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/n2code/favcurator"
	"github.com/n2code/favcurator/cmd/favcurator/flags"
	"github.com/n2code/favcurator/internal/browse"
	"github.com/n2code/favcurator/internal/config"
	"github.com/n2code/favcurator/internal/output"
)

type CliRequest struct {
	verbose     bool
	quiet       bool
	plain       bool
	action      string
	actionFlags map[string]interface{}
	actionArgs  []string
}

func parseFlags(args []string, out io.Writer, errOut io.Writer) (request *CliRequest, exitCode int) {
	flagSet := flag.NewFlagSet("", flag.ExitOnError)
	flagSet.SetOutput(out)
	flagSet.Usage = func() {
		flagSet.Output().Write([]byte(`
Usage:
   favcurator [-v|-q] [-p] [-h] <ACTION> [FLAG] [TARGET]

 ACTIONs:  init  add  remove  move  open  list  page  search  prune  browse

`))
		flagSet.PrintDefaults()
		flagSet.Output().Write([]byte(`
 FLAG(s) and TARGET(s) are action-specific.
 You can read the help on any action:
    favcurator <ACTION> -h

`))
	}

	request = &CliRequest{}
	var generalHelpRequested bool
	flagSet.BoolVar(&request.verbose, flags.Verbose, false, "Output more details on what is done (verbose mode)")
	flagSet.BoolVar(&request.quiet, flags.Quiet, false, "Output as little as possible, i.e. only requested information (quiet mode)")
	flagSet.BoolVar(&request.plain, flags.Plain, false, "Plain output, i.e. no colors or other terminal escape sequences")
	flagSet.BoolVar(&generalHelpRequested, flags.Help, false, "Display general usage help")

	var err error
	defer func() {
		if err != nil {
			fmt.Fprintf(errOut, "%s\nUsage help: favcurator -h\n", err)
			exitCode = 2
			request = nil
		}
	}()

	flagSet.Parse(args) //exits on error

	if generalHelpRequested {
		flagSet.Usage()
		exitCode = 0
		request = nil
		return
	}
	if flagSet.NArg() == 0 {
		err = errors.New("No arguments given!")
		return
	}
	if request.verbose && request.quiet {
		err = errors.New("Quiet mode and verbose mode are mutually exclusive!")
		return
	}

	request.action = flagSet.Arg(0)
	request.actionFlags = make(map[string]interface{})
	request.actionArgs = flagSet.Args()[1:]
	actionDescriptionIndent := "  "
	actionDescription := actionDescriptionIndent
	flagSpecification := ""
	argumentSpecification := ""

	actionParams := flag.NewFlagSet(request.action+" action", flag.ExitOnError)
	actionParams.SetOutput(out)
	actionParams.Usage = func() {
		fmt.Fprintf(actionParams.Output(), `
Usage of %s action:
   favcurator [MODE] %s%s%s

%s
`, request.action, request.action, flagSpecification, argumentSpecification, actionDescription)
		if len(flagSpecification) > 0 {
			fmt.Fprint(actionParams.Output(), `
 Available flags:
`)
		}
		actionParams.PrintDefaults()
		fmt.Fprintf(actionParams.Output(), `
 Global MODE documentation can be shown by:
    favcurator -h

`)
	}

	pageFlag := func() {
		request.actionFlags[flags.Page] = actionParams.Int(flags.Page, 0, "work on the page with the given number instead of the first page")
	}
	expectArgs := func(least int, most int) {
		if actionParams.NArg() < least || (most >= 0 && actionParams.NArg() > most) {
			err = fmt.Errorf("bad number of arguments (%d given)", actionParams.NArg())
		}
	}

	switch request.action {
	case "init":
		flagSpecification = " [-sqlite]"
		argumentSpecification = " DIRECTORY"
		actionDescription += "Initialize a new favorites board for the project rooted in DIRECTORY.\n" +
			actionDescriptionIndent + "Favorites can be added from anywhere inside the project."
		request.actionFlags[flags.InitWithSqlite] = actionParams.Bool(flags.InitWithSqlite, false, "store the board in an SQLite database (overrides configured backend)")
		actionParams.Parse(request.actionArgs)
		expectArgs(1, 1)
	case "add":
		flagSpecification = " [-page N]"
		argumentSpecification = " PATH..."
		actionDescription += "Add the files or folders at the given PATHs to a page. Favorites\n" +
			actionDescriptionIndent + "already on the page are skipped."
		pageFlag()
		actionParams.Parse(request.actionArgs)
		expectArgs(1, -1)
	case "remove":
		flagSpecification = " [-page N]"
		argumentSpecification = " INDEX"
		actionDescription += "Remove the favorite with the given number from a page."
		pageFlag()
		actionParams.Parse(request.actionArgs)
		expectArgs(1, 1)
	case "move":
		flagSpecification = " [-page N]"
		argumentSpecification = " FROM TO"
		actionDescription += "Move the favorite with number FROM so that it ends up at number TO."
		pageFlag()
		actionParams.Parse(request.actionArgs)
		expectArgs(2, 2)
	case "open":
		flagSpecification = " [-page N] [-print]"
		argumentSpecification = " INDEX"
		actionDescription += "Open the favorite with the given number: folders are opened in the\n" +
			actionDescriptionIndent + "file manager, files are revealed in their folder."
		pageFlag()
		request.actionFlags[flags.OpenPrintOnly] = actionParams.Bool(flags.OpenPrintOnly, false, "only print the path, do not launch the file manager")
		actionParams.Parse(request.actionArgs)
		expectArgs(1, 1)
	case "list":
		flagSpecification = " [-page N] [-all]"
		actionDescription += "List the favorites of a page, or the whole board as a tree."
		pageFlag()
		request.actionFlags[flags.ListAll] = actionParams.Bool(flags.ListAll, false, "show all pages and their favorites as a tree")
		actionParams.Parse(request.actionArgs)
		expectArgs(0, 0)
	case "page":
		flagSpecification = " [-page N]"
		argumentSpecification = " next|prev|delete|rename [NAME]"
		actionDescription += "Navigate between pages (next creates a page after the last one),\n" +
			actionDescriptionIndent + "delete a page, or rename it (no NAME resets the name)."
		pageFlag()
		actionParams.Parse(request.actionArgs)
		expectArgs(1, 2)
		if err == nil {
			switch actionParams.Arg(0) {
			case "next", "prev", "delete":
				expectArgs(1, 1)
			case "rename":
			default:
				err = fmt.Errorf(`unknown page operation "%s"`, actionParams.Arg(0))
			}
		}
	case "search":
		argumentSpecification = " TERM"
		actionDescription += "Search all pages for favorites whose name resembles TERM or whose\n" +
			actionDescriptionIndent + "document ID contains it."
		actionParams.Parse(request.actionArgs)
		expectArgs(1, 1)
	case "prune":
		flagSpecification = " [-page N] [-no-confirm]"
		actionDescription += "Remove favorites whose files or folders do not exist anymore."
		pageFlag()
		request.actionFlags[flags.PruneWithoutConfirmation] = actionParams.Bool(flags.PruneWithoutConfirmation, false, "remove without asking")
		actionParams.Parse(request.actionArgs)
		expectArgs(0, 0)
	case "browse":
		actionDescription += "Browse and edit the board interactively. Changes are saved on quit."
		actionParams.Parse(request.actionArgs)
		expectArgs(0, 0)
	default:
		err = fmt.Errorf(`unknown action "%s"`, request.action)
		return
	}
	request.actionArgs = actionParams.Args()
	return
}

// parseIndex converts a 1-based number as given on the command line.
func parseIndex(text string) (int, error) {
	number, err := strconv.Atoi(text)
	if err != nil || number < 1 {
		return 0, fmt.Errorf(`bad number "%s", expected 1 or higher`, text)
	}
	return number - 1, nil
}

func (rq *CliRequest) createConfig(cfg config.Config) (favcurator.CreateConfig, error) {
	var createConfig favcurator.CreateConfig
	if rq.verbose {
		createConfig.Verbosity = favcurator.VerboseMode
	}
	if rq.quiet {
		createConfig.Verbosity = favcurator.QuietMode
	}
	createConfig.EscapeSequences = cfg.UI.EscapeSequences && !rq.plain && isTerminal(os.Stdout)
	logger, err := output.NewLogger(os.Stderr, cfg.Log.Level, cfg.UI.EscapeSequences && !rq.plain && isTerminal(os.Stderr))
	if err != nil {
		return createConfig, err
	}
	createConfig.Logger = logger
	return createConfig, nil
}

func (rq *CliRequest) execute(cfg config.Config, workingDir string) (execErr error) {
	createConfig, err := rq.createConfig(cfg)
	if err != nil {
		return err
	}

	if rq.action == "init" {
		root := rq.actionArgs[0]
		useSqlite := *(rq.actionFlags[flags.InitWithSqlite].(*bool)) || cfg.Storage.Backend == config.BackendSqlite
		api, err := favcurator.New(root, filepath.Join(root, cfg.Storage.Filename), useSqlite, createConfig)
		if err != nil {
			return err
		}
		return api.Close()
	}

	api, err := favcurator.Open(workingDir, createConfig)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := api.Close(); closeErr != nil && execErr == nil {
			execErr = closeErr
		}
	}()

	if pageFlag, hasPage := rq.actionFlags[flags.Page]; hasPage {
		if number := *(pageFlag.(*int)); number != 0 {
			if err := api.HandleGoToPage(number - 1); err != nil {
				return fmt.Errorf("page %d does not exist (%d %s in total)", number, api.PageCount(), output.Plural(api.PageCount(), "page", "pages"))
			}
		}
	}

	switch rq.action {
	case "add":
		added, err := api.DropPaths(rq.actionArgs)
		if !rq.quiet {
			fmt.Fprintf(os.Stdout, "%d %s added to %s\n", added, output.Plural(added, "favorite", "favorites"), api.CurrentPage().Title)
		}
		return err
	case "remove":
		index, err := parseIndex(rq.actionArgs[0])
		if err != nil {
			return err
		}
		removed, err := api.HandleRemoveRequest(index)
		if err != nil {
			return err
		}
		if !rq.quiet {
			fmt.Fprintf(os.Stdout, "Removed %s from %s\n", removed, api.CurrentPage().Title)
		}
	case "move":
		from, err := parseIndex(rq.actionArgs[0])
		if err != nil {
			return err
		}
		to, err := parseIndex(rq.actionArgs[1])
		if err != nil {
			return err
		}
		if err := api.HandleReorder(from, to); err != nil {
			return err
		}
		api.PrintPage()
	case "open":
		index, err := parseIndex(rq.actionArgs[0])
		if err != nil {
			return err
		}
		activation, err := api.HandleActivate(index)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, activation.Path)
		if !*(rq.actionFlags[flags.OpenPrintOnly].(*bool)) {
			return RevealInFileManager(activation)
		}
	case "list":
		if *(rq.actionFlags[flags.ListAll].(*bool)) {
			api.PrintBoard(true)
		} else {
			api.PrintPage()
		}
	case "page":
		switch rq.actionArgs[0] {
		case "next":
			api.HandlePageNav(favcurator.Next)
		case "prev":
			api.HandlePageNav(favcurator.Previous)
		case "delete":
			if err := api.HandleDeletePage(); err != nil {
				return err
			}
		case "rename":
			name := ""
			if len(rq.actionArgs) > 1 {
				name = rq.actionArgs[1]
			}
			api.HandleRenamePage(name)
		}
		api.PrintBoard(false)
	case "search":
		results := api.Search(rq.actionArgs[0])
		if len(results) == 0 && !rq.quiet {
			return fmt.Errorf("no favorites found for: %s", rq.actionArgs[0])
		}
		for _, result := range results {
			fmt.Fprintf(os.Stdout, "%s #%d: %s\n", result.PageTitle, result.Index+1, result.Entry.Ref)
		}
		if !rq.quiet {
			fmt.Fprintf(os.Stdout, "\n%d %s found\n", len(results), output.Plural(len(results), "match", "matches"))
		}
	case "prune":
		choice := PromptUser(!rq.plain)
		if *(rq.actionFlags[flags.PruneWithoutConfirmation].(*bool)) || !isTerminal(os.Stdin) {
			choice = AutoChooseDefaultOption(rq.quiet)
		}
		if _, cancelled := api.InteractivePrune(choice); cancelled {
			return errors.New("prune cancelled, nothing removed")
		}
	case "browse":
		return browse.Run(api, RevealInFileManager)
	default:
		panic("bad action")
	}
	return nil
}

func main() {
	rq, rc := parseFlags(os.Args[1:], os.Stdout, os.Stderr)
	if rc != 0 || rq == nil {
		os.Exit(rc)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	workingDir, _ := os.Getwd()
	if err := rq.execute(cfg, workingDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(0)
}
