// Package interactive provides the interactive command-line interface
// for scl-shell.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/sclkit/sclkit-go/pkg/adapter"
	"github.com/sclkit/sclkit-go/pkg/fixture"
	"github.com/sclkit/sclkit-go/pkg/inspect"
	"github.com/sclkit/sclkit-go/pkg/scl"
)

// Shell handles interactive inspection and editing of one document.
type Shell struct {
	root      *adapter.Root
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
	out       io.Writer
}

// New creates a shell reading commands from the terminal.
func New(root *adapter.Root) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "scl> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s := NewWithWriter(root, rl.Stdout())
	s.rl = rl
	return s, nil
}

// NewWithWriter creates a shell without a terminal. Commands are passed
// to Exec and their output is written to w.
func NewWithWriter(root *adapter.Root, w io.Writer) *Shell {
	return &Shell{
		root:      root,
		inspector: inspect.NewInspector(root),
		formatter: inspect.NewFormatter(),
		out:       w,
	}
}

func completer() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem("help"),
		readline.PcItem("ieds"),
		readline.PcItem("inspect"),
		readline.PcItem("dai"),
		readline.PcItem("set"),
		readline.PcItem("extrefs"),
		readline.PcItem("binders"),
		readline.PcItem("bind"),
		readline.PcItem("save"),
		readline.PcItem("quit"),
	)
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.out
}

// Stderr returns a writer that properly coordinates with the readline input.
func (s *Shell) Stderr() io.Writer {
	if s.rl != nil {
		return s.rl.Stderr()
	}
	return s.out
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends, or ctx is done.
func (s *Shell) Run(ctx context.Context) {
	if s.rl == nil {
		return
	}
	defer s.rl.Close()
	stop := context.AfterFunc(ctx, func() { s.rl.Close() })
	defer stop()

	s.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.out, "Exiting...")
			return
		}
		if s.Exec(line) {
			return
		}
	}
}

// Exec runs one command line. It reports whether the shell should exit.
func (s *Shell) Exec(line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()

	case "ieds":
		s.cmdIEDs()

	case "inspect", "i":
		s.cmdInspect(args)

	case "dai", "d":
		s.cmdDAI(args)

	case "set":
		s.cmdSet(args)

	case "extrefs", "x":
		s.cmdExtRefs(args)

	case "binders", "b":
		s.cmdBinders(args)

	case "bind":
		s.cmdBind(args)

	case "save":
		s.cmdSave(args)

	case "quit", "exit", "q":
		fmt.Fprintln(s.out, "Exiting...")
		return true

	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `
SCL Shell Commands:
  Inspection:
    ieds                             - List IEDs with their access points
    inspect [path]                   - Show the device tree (or one IED, LD or LN)
    dai <ln> [do] [da]               - Show data attribute instances of a logical node
    extrefs <ln>                     - Show external references with their index

  Editing:
    set <ln> <do> <da> <value> [sg]  - Write a value (sg: setting group)
    binders <pDO> [pDA] [pLN] [svc]  - List producers of a signal ("-" skips an argument)
    bind <ln> <idx> <producer-ln>    - Bind external reference idx of ln to a producer
    save <file>                      - Write the document as a YAML fixture

  Other:
    help                             - Show this help
    quit                             - Exit

  Paths: IED[/LDinst[/[prefix:]Class[.inst]]], e.g. IED1/LD1/LLN0, IED2/LD1/Op:PTOC.1`)
}

func (s *Shell) errorf(format string, args ...any) {
	fmt.Fprintf(s.out, "Error: "+format+"\n", args...)
}

func (s *Shell) cmdIEDs() {
	n := 0
	for ied := range s.root.IEDs() {
		n++
		aps := make(map[string]int)
		var order []string
		for ld := range ied.LDevices() {
			if _, ok := aps[ld.AccessPointName()]; !ok {
				order = append(order, ld.AccessPointName())
			}
			aps[ld.AccessPointName()]++
		}
		fmt.Fprintf(s.out, "  %s", ied.Name())
		for _, ap := range order {
			fmt.Fprintf(s.out, " %s(%d LD)", ap, aps[ap])
		}
		fmt.Fprintln(s.out)
	}
	if n == 0 {
		fmt.Fprintln(s.out, "  (no IEDs)")
	}
}

func (s *Shell) cmdInspect(args []string) {
	if len(args) == 0 {
		fmt.Fprint(s.out, s.formatter.FormatTree(s.inspector.InspectDocument()))
		return
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	tree, err := s.inspector.Inspect(path)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprint(s.out, s.formatter.FormatTree(tree))
}

func (s *Shell) cmdDAI(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: dai <ln> [do] [da]")
		return
	}
	ln, err := s.inspector.LN(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	var filter adapter.DAIFilter
	if len(args) > 1 {
		filter.DO = args[1]
	}
	if len(args) > 2 {
		filter.DA = args[2]
	}
	dais, err := s.inspector.ReadDAIs(ln, filter)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.out, "%s [%s]\n", inspect.PathOf(ln), ln.Type())
	fmt.Fprint(s.out, s.formatter.FormatDAIs(dais))
}

func (s *Shell) cmdSet(args []string) {
	if len(args) < 4 {
		fmt.Fprintln(s.out, "Usage: set <ln> <do> <da> <value> [sgroup]")
		return
	}
	ln, err := s.inspector.LN(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	var sgroup uint32
	if len(args) > 4 {
		v, err := strconv.ParseUint(args[4], 10, 32)
		if err != nil {
			s.errorf("invalid setting group %q", args[4])
			return
		}
		sgroup = uint32(v)
	}
	if err := s.inspector.WriteDAI(ln, args[1], args[2], args[3], sgroup); err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.out, "OK: %s %s.%s = %q\n", inspect.PathOf(ln), args[1], args[2], args[3])
}

func (s *Shell) cmdExtRefs(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: extrefs <ln>")
		return
	}
	ln, err := s.inspector.LN(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprint(s.out, s.formatter.FormatExtRefs(ln.ExtRefs()))
}

func (s *Shell) cmdBinders(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: binders <pDO> [pDA] [pLN] [pServT]")
		return
	}
	arg := func(i int) string {
		if i < len(args) && args[i] != "-" {
			return args[i]
		}
		return ""
	}
	sig := adapter.ExtRefSignalInfo{
		PDO:    arg(0),
		PDA:    arg(1),
		PLN:    arg(2),
		PServT: scl.ServiceType(arg(3)),
	}
	binders, err := s.inspector.Binders(sig)
	if err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprint(s.out, s.formatter.FormatBinders(binders))
}

func (s *Shell) cmdBind(args []string) {
	if len(args) < 3 {
		fmt.Fprintln(s.out, "Usage: bind <ln> <idx> <producer-ln>")
		return
	}
	ln, err := s.inspector.LN(args[0])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	idx, err := strconv.Atoi(args[1])
	if err != nil {
		s.errorf("invalid index %q", args[1])
		return
	}
	producer, err := s.inspector.LN(args[2])
	if err != nil {
		s.errorf("%v", err)
		return
	}
	if err := s.inspector.Bind(ln, idx, producer); err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.out, "OK: %s [%d] bound to %s\n", inspect.PathOf(ln), idx, inspect.PathOf(producer))
}

func (s *Shell) cmdSave(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.out, "Usage: save <file>")
		return
	}
	if err := fixture.Save(args[0], s.root.Document()); err != nil {
		s.errorf("%v", err)
		return
	}
	fmt.Fprintf(s.out, "Saved to %s\n", args[0])
}
