package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/mockid/internal/core"
)

const (
	modulePrefix = "const mockData = "
	moduleSuffix = ";\n\nmodule.exports = mockData;"
)

// Reduce reads the snapshot at inPath, keeps a uniform random subset of
// target records and writes it to outPath, reporting progress to w.
// The output replaces outPath atomically.
func Reduce(w io.Writer, inPath, outPath string, target int, jsModule bool) error {
	heading(w, "🔧 Creating Reduced Mock Data", "=============================")

	fmt.Fprintln(w, "📖 Reading source dataset...")
	records, err := core.LoadFile(inPath)
	if err != nil {
		return err
	}
	printer.Fprintf(w, "Source records: %d\n", len(records))
	printer.Fprintf(w, "Target records: %d\n", target)

	kept := core.Reduce(records, target, nil)

	fmt.Fprintln(w, "💾 Writing reduced dataset...")
	size, err := writeSnapshot(outPath, kept, jsModule)
	if err != nil {
		return err
	}

	WriteReduceSummary(w, core.Summarize(len(records), kept), target, size)
	return nil
}

// writeSnapshot writes records to a temporary file next to path and renames
// it into place. Returns the final size in bytes.
func writeSnapshot(path string, records []core.Record, jsModule bool) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".reduce-*")
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("chmod output: %w", err)
	}

	bw := bufio.NewWriter(tmp)
	if jsModule {
		bw.WriteString(modulePrefix)
	}
	if err := core.WriteDataset(bw, records); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write output: %w", err)
	}
	if jsModule {
		bw.WriteString(moduleSuffix)
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close output: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, fmt.Errorf("rename output: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
