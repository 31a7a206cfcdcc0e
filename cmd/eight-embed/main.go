// Command eight-embed demonstrates driving the dispatcher in-process,
// without a network gateway: it runs one query script against a
// filesystem-backed store and prints the results.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	logging "github.com/ipfs/go-log"
	"github.com/meppu/eight/internal/command"
	"github.com/meppu/eight/perm"
	"github.com/meppu/eight/proto"
	"github.com/meppu/eight/server"
	"github.com/meppu/eight/storage"
)

var log = logging.Logger("eight/embed")

type settings struct {
	directory  string
	permission int
	query      string
}

func (s *settings) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&s.directory, "directory", "", "path to create storage (required)")
	fs.IntVar(&s.permission, "permission", int(perm.Owner), "server permission tier: guest (0), admin (1), owner (2)")
	fs.StringVar(&s.query, "query", "", "query script to run; reads stdin if omitted")
}

func main() {
	cmd := command.MakeCommand[settings](
		"eight-embed",
		"Run a query script against an embedded, filesystem-backed key-value store.",
		run,
	)

	if err := cmd.Execute(context.Background(), os.Args[1:]...); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, s *settings) error {
	if s.directory == "" {
		return fmt.Errorf("-directory is required")
	}

	permission, ok := perm.Parse(s.permission)
	if !ok {
		return fmt.Errorf("invalid permission value %d; must be 0, 1, or 2", s.permission)
	}

	store := storage.NewFilesystem(s.directory)
	srv := server.New(store)
	srv.SetPermission(permission)
	srv.Start()

	query := s.query
	if query == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading query from stdin: %w", err)
		}
		query = string(raw)
	}

	results, err := srv.Query(query, nil)
	if err != nil {
		log.Debugf("query failed: %v", err)
		return err
	}

	rendered := make([]json.RawMessage, len(results))
	for i, result := range results {
		raw, err := proto.MarshalResponse(result)
		if err != nil {
			return err
		}
		rendered[i] = raw
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rendered)
}
