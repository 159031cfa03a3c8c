// Command datacore-dump opens a DataCore archive, walks its main
// records, and prints each one, resolved through internal/gen's
// fixture dispatch table; it stops with an error at the first record
// that fails to resolve. Argument parsing and a real output façade
// are out of scope; this exists to demonstrate the graph walk end to
// end, not as a production CLI.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/rawbytedev/datacore/internal/container"
	"github.com/rawbytedev/datacore/internal/gen"
	"github.com/rawbytedev/datacore/pkg/database"
	"github.com/rawbytedev/datacore/pkg/typed"
)

func main() {
	verbose := flag.Bool("v", false, "log recoverable conditions (cycles, dangling references) to stderr")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "usage: datacore-dump [-v] <archive-file>")
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *verbose); err != nil {
		fmt.Fprintln(os.Stderr, "datacore-dump:", err)
		os.Exit(1)
	}
}

func run(path string, verbose bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	buf, err := container.Unwrap(raw)
	if err != nil {
		// Not every archive on disk is framed; fall back to treating
		// the file as a bare DataCore archive.
		buf = raw
	}

	db, err := database.Open(buf)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}

	opts := []typed.Option{}
	if verbose {
		opts = append(opts, typed.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
	}
	rt := typed.NewRuntime(db, gen.Dispatch, opts...)
	if err := rt.ValidateSchema(gen.StructCount, gen.EnumCount, gen.StructFingerprint, gen.EnumFingerprint); err != nil {
		return fmt.Errorf("schema check: %w", err)
	}

	if db.MainRecordCount() == 0 {
		fmt.Println("archive has no main records")
		return nil
	}

	for i := 0; i < db.MainRecordCount(); i++ {
		main, err := db.GetRecordByIndex(int32(i))
		if err != nil {
			return fmt.Errorf("main record %d: %w", i, err)
		}
		rec, err := rt.GetFromMainRecord(main)
		if err != nil {
			return fmt.Errorf("resolve main record %d (%s): %w", i, hex.EncodeToString(main.ID[:]), err)
		}
		fmt.Printf("%s  %-12s %-30s %+v\n", hex.EncodeToString(rec.ID[:]), rec.Name, rec.FileName, rec.Data)
	}
	return nil
}
