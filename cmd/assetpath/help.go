package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetpath <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Render every page and write the asset manifest")
	fmt.Fprintln(w, "  check       Resolve every asset reference without writing output")
	fmt.Fprintln(w, "  serve       Serve pages and their assets for development")
	fmt.Fprintln(w, "  init        Write a starter config file")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'assetpath help <command>' for details on a specific command.")
}

// printCommonUsage prints the flags every site command accepts.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path (default: assetpath)")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show resolution details and timing")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetpath build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render every configured page into the output directory and write a JSON")
	fmt.Fprintln(w, "manifest mapping each referenced asset destination to its source.")
	fmt.Fprintln(w, "Assets are not copied.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: public)")
	fmt.Fprintln(w, "  -p, --prefix <s>          Deployment path; assets render as PREFIX/LOCATION, e.g. /repo")
	fmt.Fprintln(w, "  -m, --manifest <file>     Manifest file under the output directory (\"-\" = none)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel page builders (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manifest date (site.generated, ASSETPATH_GENERATED):")
	fmt.Fprintln(w, "  \"auto\", \"auto:FORMAT\", \"auto:PRESET\", \"none\", or a literal")
	fmt.Fprintln(w, "  Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm, ss")
	fmt.Fprintln(w, "  Presets: iso, datetime, compact, long")
	fmt.Fprintln(w, "  Use [text] to escape literals: [Built] YYYY-MM-DD")
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetpath check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Resolve and render every page without writing output.")
	fmt.Fprintln(w, "Stops at the first page that fails.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default: public)")
	fmt.Fprintln(w, "  -p, --prefix <s>          Deployment path; assets render as PREFIX/LOCATION")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel page checks (0 = auto)")
	fmt.Fprintln(w, "      --json                Machine-readable output")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetpath serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve pages rendered on each request, and the assets they reference")
	fmt.Fprintln(w, "at their destinations. The site prefix is not applied.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default: 127.0.0.1:8080)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printInitUsage prints usage for the init command.
func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: assetpath init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a starter config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <file>       File to write (default: assetpath.yaml)")
	fmt.Fprintln(w, "  -f, --force               Overwrite an existing file")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "init":
		printInitUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: assetpath version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: assetpath help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
