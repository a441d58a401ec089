// Package display renders search output for the terminal.
//
// Results go to stdout, one per match:
//
//	/abs/path/notes.txt:2 - beta     (line numbers on)
//	/abs/path/notes.txt - beta       (line numbers off)
//
// In window mode the matched text spans several lines and is printed as is.
// A run without matches prints nothing.
//
// # Color
//
// ColorEnabled resolves the --color mode (auto, always, never). In auto mode
// color is used only when the stream is a terminal and NO_COLOR is unset:
//
//	useColor := display.ColorEnabled(cfg.Color, os.Stdout)
//	reporter := display.NewReporter(os.Stdout, display.ReporterOptions{
//	    LineNumbers: true,
//	    Color:       useColor,
//	    Highlight:   m.Highlight,
//	})
//
// Paths are magenta, line numbers green and pattern occurrences bold red.
//
// # Warnings
//
// Warning prints a user-facing notice to stderr:
//
//	display.WarnContextIgnored(before, after).Display(os.Stderr, useColor)
package display
