package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/tilewm/internal/config"
	"github.com/1broseidon/tilewm/internal/daemon"
	"github.com/1broseidon/tilewm/internal/ipc"
	"github.com/1broseidon/tilewm/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		if len(os.Args) > 2 && (os.Args[2] == "help" || os.Args[2] == "-h" || os.Args[2] == "--help") {
			fmt.Fprintln(os.Stdout, "Usage: tilewm daemon")
			os.Exit(0)
		}
		if len(os.Args) > 2 {
			fmt.Fprintln(os.Stderr, "daemon takes no arguments")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Usage: tilewm daemon")
			os.Exit(2)
		}
		runDaemon()
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "screens":
		os.Exit(runScreens(os.Args[2:]))
	case "workspaces":
		os.Exit(runWorkspaces(os.Args[2:]))
	case "windows":
		os.Exit(runWindows(os.Args[2:]))
	case "focus":
		os.Exit(runFocus(os.Args[2:]))
	case "swap":
		os.Exit(runSwap(os.Args[2:]))
	case "resize":
		os.Exit(runResize(os.Args[2:]))
	case "switch":
		os.Exit(runSwitch(os.Args[2:]))
	case "send":
		os.Exit(runSend(os.Args[2:]))
	case "send-screen":
		os.Exit(runSendScreen(os.Args[2:]))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "balance":
		os.Exit(runBalance(os.Args[2:]))
	case "preset":
		os.Exit(runPreset(os.Args[2:]))
	case "reload":
		os.Exit(runReload(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: tilewm <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the tiling daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  screens             List connected screens")
	fmt.Fprintln(w, "  workspaces          List workspaces")
	fmt.Fprintln(w, "  windows             List managed windows")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  focus <direction>   Focus window: left, right, up, down, next, previous")
	fmt.Fprintln(w, "  swap <direction>    Swap focused window with a neighbor")
	fmt.Fprintln(w, "  resize <dim> <px>   Resize focused window (width/height, signed pixels)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  switch <workspace>  Switch to a workspace")
	fmt.Fprintln(w, "  send <workspace>    Send focused window to a workspace")
	fmt.Fprintln(w, "  send-screen <scr>   Send focused window to a screen")
	fmt.Fprintln(w, "  layout <mode>       Set workspace layout mode")
	fmt.Fprintln(w, "  balance             Reset workspace split ratios to even shares")
	fmt.Fprintln(w, "  preset <name>       Apply a floating preset to the focused window")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  reload              Reload daemon configuration")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print effective configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'tilewm <command> --help' for command-specific options.")
}

func runDaemon() {
	level := slog.LevelInfo
	if os.Getenv("TILEWM_DEBUG") != "" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if !cfg.Enabled {
		logger.Warn("tiling is disabled in the configuration; running anyway")
	}

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Fatalf("Failed to connect to display: %v", err)
	}
	defer backend.Disconnect()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := daemon.New(cfg, backend, logger)
	if err := d.Run(ctx); err != nil {
		log.Fatalf("Daemon error: %v", err)
	}
}

// noArgCommand parses a flag set that takes no arguments and runs fn.
func noArgCommand(name, description string, args []string, fn func(*ipc.Client) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tilewm %s\n\n%s\n", name, description)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	if err := fn(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runStatus(args []string) int {
	return noArgCommand("status", "Show daemon status via IPC.", args, func(client *ipc.Client) error {
		status, err := client.GetStatus()
		if err != nil {
			return err
		}
		fmt.Printf("daemon_running:    %v\n", status.DaemonRunning)
		fmt.Printf("screens:           %d\n", status.Screens)
		fmt.Printf("workspaces:        %d\n", status.Workspaces)
		fmt.Printf("windows:           %d\n", status.Windows)
		fmt.Printf("focused_workspace: %s\n", status.FocusedWorkspace)
		fmt.Printf("uptime_seconds:    %d\n", status.UptimeSeconds)
		return nil
	})
}

func runScreens(args []string) int {
	return noArgCommand("screens", "List connected screens.", args, func(client *ipc.Client) error {
		data, err := client.GetScreens()
		if err != nil {
			return err
		}
		fmt.Println(renderScreensTable(data.Screens))
		return nil
	})
}

func runWorkspaces(args []string) int {
	return noArgCommand("workspaces", "List workspaces.", args, func(client *ipc.Client) error {
		data, err := client.GetWorkspaces()
		if err != nil {
			return err
		}
		fmt.Println(renderWorkspacesTable(data.Workspaces))
		return nil
	})
}

func runWindows(args []string) int {
	return noArgCommand("windows", "List managed windows.", args, func(client *ipc.Client) error {
		data, err := client.GetWindows()
		if err != nil {
			return err
		}
		fmt.Println(renderWindowsTable(data.Windows))
		return nil
	})
}

// directionCommand handles focus and swap, which share a shape.
func directionCommand(name, description string, args []string, fn func(*ipc.Client, string) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: tilewm %s <left|right|up|down|next|previous>\n\n%s\n", name, description)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := fn(ipc.NewClient(), fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runFocus(args []string) int {
	return directionCommand("focus", "Move focus to another window.", args, (*ipc.Client).Focus)
}

func runSwap(args []string) int {
	return directionCommand("swap", "Swap the focused window with a neighbor.", args, (*ipc.Client).Swap)
}

func runResize(args []string) int {
	fs := flag.NewFlagSet("resize", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm resize <width|height> <delta>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Resize the focused window by a signed pixel delta, e.g.:")
		fmt.Fprintln(os.Stderr, "  tilewm resize width 100")
		fmt.Fprintln(os.Stderr, "  tilewm resize height -50")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}

	delta, err := strconv.Atoi(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid delta %q: must be an integer\n", fs.Arg(1))
		return 2
	}

	if err := ipc.NewClient().Resize(fs.Arg(0), delta); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSwitch(args []string) int {
	fs := flag.NewFlagSet("switch", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm switch <workspace>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().SwitchWorkspace(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSend(args []string) int {
	fs := flag.NewFlagSet("send", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	follow := fs.Bool("follow", false, "switch to the target workspace and keep the window focused")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm send [-follow] <workspace>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Send the focused window to a workspace.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().SendToWorkspace(fs.Arg(0), *follow); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runSendScreen(args []string) int {
	fs := flag.NewFlagSet("send-screen", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm send-screen <main|secondary|screen-name>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().SendToScreen(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runLayout(args []string) int {
	fs := flag.NewFlagSet("layout", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	workspace := fs.String("workspace", "", "workspace to change (default: focused workspace)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm layout [-workspace <name>] <mode>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Modes: tiling, monocle, split, split-vertical, split-horizontal,")
		fmt.Fprintln(os.Stderr, "       master, floating, scrolling")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().SetLayout(*workspace, fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runBalance(args []string) int {
	fs := flag.NewFlagSet("balance", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	workspace := fs.String("workspace", "", "workspace to balance (default: focused workspace)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm balance [-workspace <name>]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Reset the workspace's split ratios so windows share space evenly.")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().Balance(*workspace); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runPreset(args []string) int {
	fs := flag.NewFlagSet("preset", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: tilewm preset <name>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Apply a configured floating preset to the focused window.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	if err := ipc.NewClient().ApplyPreset(fs.Arg(0)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runReload(args []string) int {
	return noArgCommand("reload", "Reload the daemon configuration from disk.", args, func(client *ipc.Client) error {
		if err := client.Reload(); err != nil {
			return err
		}
		fmt.Println("Configuration reloaded")
		return nil
	})
}

func runConfig(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: tilewm config <validate|print>")
		return 2
	}

	switch args[0] {
	case "validate":
		path, err := config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		cfg, err := config.LoadFromPath(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
			return 1
		}
		warnings, _ := cfg.Validate()
		for _, w := range warnings {
			fmt.Printf("warning: %s\n", w)
		}
		fmt.Printf("%s: OK\n", path)
		return 0
	case "print":
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		os.Stdout.Write(out)
		return 0
	case "help", "-h", "--help":
		fmt.Fprintln(os.Stdout, "Usage: tilewm config <validate|print>")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}
