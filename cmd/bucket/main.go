package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/wasm-bucket/bucket"
	"github.com/wippyai/wasm-bucket/inspect"
	"github.com/wippyai/wasm-bucket/manifest"
	"github.com/wippyai/wasm-bucket/watch"
)

func main() {
	var (
		root         = flag.String("root", "bucket", "Path to the bucket directory")
		list         = flag.Bool("list", false, "List modules and exit")
		check        = flag.Bool("check", false, "Validate the bucket layout (non-zero exit on issues)")
		inspectName  = flag.String("inspect", "", "Inspect a module's compiled binary")
		compileCheck = flag.Bool("compile-check", false, "Also compile binaries with wazero during -check or -inspect")
		status       = flag.Bool("status", false, "Show sync status against the manifest")
		snapshot     = flag.Bool("snapshot", false, "Record current digests into the manifest")
		createName   = flag.String("create", "", "Create a new module directory")
		removeName   = flag.String("remove", "", "Remove a module directory")
		watchMode    = flag.Bool("watch", false, "Watch the bucket and print change events")
		interactive  = flag.Bool("i", false, "Interactive mode with TUI")
		verbose      = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		bucket.SetLogger(logger)
		watch.SetLogger(logger)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*root); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	app := &app{
		root:         *root,
		compileCheck: *compileCheck,
	}

	var err error
	switch {
	case *createName != "":
		err = app.create(*createName)
	case *removeName != "":
		err = app.remove(*removeName)
	case *list:
		err = app.list()
	case *check:
		err = app.check()
	case *inspectName != "":
		err = app.inspect(*inspectName)
	case *snapshot:
		err = app.snapshot()
	case *status:
		err = app.status()
	case *watchMode:
		err = app.watch()
	default:
		fmt.Fprintln(os.Stderr, "Usage: bucket -root <dir> [-list | -check | -inspect <name> | -status | -snapshot | -create <name> | -remove <name> | -watch | -i]")
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	root         string
	compileCheck bool
}

func (a *app) open() (*bucket.Bucket, *bucket.Inventory, error) {
	b, err := bucket.Open(a.root)
	if err != nil {
		return nil, nil, err
	}
	inv, err := b.Scan(context.Background())
	if err != nil {
		return nil, nil, err
	}
	return b, inv, nil
}

func (a *app) list() error {
	_, inv, err := a.open()
	if err != nil {
		return err
	}

	for _, mod := range inv.Modules {
		state := "ok"
		switch {
		case !mod.Complete():
			state = "incomplete"
		case mod.HasMeta():
			state = "ok, wit"
		}
		fmt.Printf("%-24s %s\n", mod.Name, state)
	}
	fmt.Printf("\n%d module(s), %d issue(s)\n", len(inv.Modules), len(inv.Issues))
	return nil
}

func (a *app) check() error {
	_, inv, err := a.open()
	if err != nil {
		return err
	}

	for _, issue := range inv.Issues {
		fmt.Println(issue)
	}

	if a.compileCheck {
		ctx := context.Background()
		for _, mod := range inv.Modules {
			if !mod.Binary.Exists() {
				continue
			}
			data, err := os.ReadFile(mod.Binary.Path)
			if err != nil {
				return err
			}
			if err := inspect.CompileCheck(ctx, data); err != nil {
				fmt.Printf("compile %s: %v\n", mod.Name, err)
				return fmt.Errorf("%d layout issue(s), compile check failed", len(inv.Issues))
			}
		}
	}

	if !inv.Clean() {
		return fmt.Errorf("%d layout issue(s)", len(inv.Issues))
	}
	fmt.Println("bucket layout ok")
	return nil
}

func (a *app) inspect(name string) error {
	_, inv, err := a.open()
	if err != nil {
		return err
	}

	mod, ok := inv.Module(name)
	if !ok {
		return fmt.Errorf("module %q not found", name)
	}
	if !mod.Binary.Exists() {
		return fmt.Errorf("module %q has no compiled binary", name)
	}

	data, err := os.ReadFile(mod.Binary.Path)
	if err != nil {
		return err
	}
	report, err := inspect.Inspect(data)
	if err != nil {
		return err
	}

	fmt.Printf("Module: %s\n", mod.Name)
	fmt.Printf("Binary: %s (%d bytes)\n", mod.Binary.Path, mod.Binary.Size)
	fmt.Printf("Profile: %s\n", report.Profile())
	if report.Component {
		return nil
	}

	fmt.Printf("\nSections:\n")
	for _, s := range report.Sections {
		fmt.Printf("  %-12s %6d bytes\n", s.Name, s.Size)
	}
	if len(report.Imports) > 0 {
		fmt.Printf("\nImports:\n")
		for _, imp := range report.Imports {
			fmt.Printf("  %s %s.%s\n", imp.Kind, imp.Module, imp.Name)
		}
	}
	if len(report.Exports) > 0 {
		fmt.Printf("\nExports:\n")
		for _, exp := range report.Exports {
			fmt.Printf("  %s %s\n", exp.Kind, exp.Name)
		}
	}

	if mod.HasMeta() {
		if missing, err := checkSidecar(mod.Meta.Path, report); err != nil {
			fmt.Printf("\nWIT sidecar: %v\n", err)
		} else if len(missing) > 0 {
			fmt.Printf("\nDeclared but not exported: %v\n", missing)
		} else {
			fmt.Printf("\nWIT sidecar: all declared functions exported\n")
		}
	}

	if a.compileCheck {
		if err := inspect.CompileCheck(context.Background(), data); err != nil {
			return err
		}
		fmt.Printf("\ncompile check ok\n")
	}
	return nil
}

func checkSidecar(path string, report *inspect.Report) ([]string, error) {
	witText, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decls, err := inspect.ParseDeclarations(string(witText))
	if err != nil {
		return nil, err
	}
	return inspect.CheckDeclared(report, decls), nil
}

func (a *app) snapshot() error {
	b, inv, err := a.open()
	if err != nil {
		return err
	}
	m, err := manifest.Snapshot(context.Background(), inv)
	if err != nil {
		return err
	}
	if err := manifest.Save(b.Root(), m); err != nil {
		return err
	}
	fmt.Printf("recorded %d module(s)\n", len(m.Modules))
	return nil
}

func (a *app) status() error {
	b, inv, err := a.open()
	if err != nil {
		return err
	}
	m, err := manifest.Load(b.Root())
	if err != nil {
		return err
	}
	changes, err := m.Diff(context.Background(), inv)
	if err != nil {
		return err
	}

	drift := 0
	for _, c := range changes {
		if c.Status != manifest.StatusInSync {
			drift++
		}
		fmt.Printf("%-24s %s\n", c.Name, c.Status)
	}
	fmt.Printf("\n%d module(s), %d drifted\n", len(changes), drift)
	return nil
}

func (a *app) create(name string) error {
	b, err := bucket.Open(a.root)
	if err != nil {
		return err
	}
	mod, err := bucket.Create(b, name)
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", mod.Dir)
	return nil
}

func (a *app) remove(name string) error {
	b, err := bucket.Open(a.root)
	if err != nil {
		return err
	}
	if err := bucket.Remove(b, name); err != nil {
		return err
	}
	fmt.Printf("removed %s\n", name)
	return nil
}

func (a *app) watch() error {
	b, err := bucket.Open(a.root)
	if err != nil {
		return err
	}
	w, err := watch.New(b)
	if err != nil {
		return err
	}
	defer w.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go w.Run(ctx)

	fmt.Printf("watching %s\n", b.Root())
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			fmt.Printf("%s %s\n", ev.Op, ev.Module)
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		}
	}
}
