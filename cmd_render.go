package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"posterpad/internal/export"
	"posterpad/internal/watcher"
)

var renderCmd = &cobra.Command{
	Use:   "render <document.json>",
	Short: "Render an exported document to PNG, SVG or PDF",
	Long:  "Render a document written by the editor's JSON export. The output format is taken from the -o extension.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringP("output", "o", "", "output file (.png, .svg, .pdf or .json)")
	f.BoolP("watch", "w", false, "re-render whenever the document changes")
	renderCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(renderCmd)
}

// renderFile reads the document at in and writes it to out.
func renderFile(in, out string) error {
	format, err := export.FormatFromPath(out)
	if err != nil {
		return err
	}

	src, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("failed to open document: %w", err)
	}
	defer src.Close()

	doc, err := export.Decode(src)
	if err != nil {
		return err
	}

	dst, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	if err := export.Write(doc, format, dst); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func runRender(cmd *cobra.Command, args []string) error {
	in := args[0]
	out, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))

	if err := renderFile(in, out); err != nil {
		if !watch {
			return err
		}
		logger.Error("render failed", "err", err)
	} else {
		logger.Info("rendered", "in", in, "out", out)
	}
	if !watch {
		return nil
	}

	fw, err := watcher.NewFileWatcher(watcher.DefaultDebounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch([]string{in}, func(path string) {
		if err := renderFile(path, out); err != nil {
			logger.Error("render failed", "err", err)
			return
		}
		logger.Info("rendered", "in", path, "out", out)
	}); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching for changes", "file", in)
	fw.Run(ctx, func(err error) {
		logger.Warn("watcher error", "err", err)
	})
	return nil
}
