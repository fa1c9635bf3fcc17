// Command ordmap is a small CLI front end exercising both the in-memory
// and persistent B-tree variants. Grounded on the teacher's cmd/main.go
// (config.Load, leveled logger, flat command dispatch), extended with a
// "persist" family of subcommands that route through ordstore.
package main

import (
	"fmt"
	"os"

	"github.com/guap-codes/ordmap/ordstore"
	"github.com/guap-codes/ordmap/ordtree"
	"github.com/guap-codes/ordmap/pkg/config"
	"github.com/guap-codes/ordmap/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, os.Stderr)

	if len(os.Args) < 2 {
		printUsage(log)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "insert", "delete", "search", "print", "validate":
		runMemory(cfg, log, os.Args[1])
	case "persist-insert", "persist-search":
		runPersistent(cfg, log, os.Args[1])
	default:
		log.Errorf("Unknown command: %s", os.Args[1])
		printUsage(log)
		os.Exit(1)
	}
}

func printUsage(log *logger.Logger) {
	log.Infof("Usage: ordmap <command> [arguments]")
	log.Infof("Commands:")
	log.Infof("  insert <key> <value>   - insert a key/value pair into an in-memory session tree")
	log.Infof("  delete <key>           - delete a key")
	log.Infof("  search <key>           - look up a key")
	log.Infof("  print                  - print the tree structure")
	log.Infof("  validate               - check B-tree invariants")
	log.Infof("  persist-insert <k> <v> - insert through the persistent (Storage-backed) variant")
	log.Infof("  persist-search <k>     - look up through the persistent variant")
}

// runMemory exercises the in-memory ordtree.Tree variant. Each invocation
// starts from an empty tree — there is no cross-invocation session state,
// matching the fact that ordtree carries no persistence contract of its
// own (that's ordstore's job).
func runMemory(cfg *config.Config, log *logger.Logger, command string) {
	t := ordtree.WithDegree[string, string](cfg.TreeDegree)
	t.SetLogger(log)

	switch command {
	case "insert":
		if len(os.Args) < 4 {
			log.Errorf("insert requires a key and a value")
			os.Exit(1)
		}
		old, existed := t.Insert(os.Args[2], os.Args[3])
		if existed {
			log.Infof("Replaced key %q (was %q)", os.Args[2], old)
		} else {
			log.Infof("Inserted key %q", os.Args[2])
		}
	case "delete":
		if len(os.Args) < 3 {
			log.Errorf("delete requires a key")
			os.Exit(1)
		}
		if v, ok := t.Remove(os.Args[2]); ok {
			log.Infof("Deleted key %q (was %q)", os.Args[2], v)
		} else {
			log.Infof("Key %q not found", os.Args[2])
		}
	case "search":
		if len(os.Args) < 3 {
			log.Errorf("search requires a key")
			os.Exit(1)
		}
		if v, ok := t.Get(os.Args[2]); ok {
			log.Infof("Found key %q: %q", os.Args[2], v)
		} else {
			log.Infof("Key %q not found", os.Args[2])
		}
	case "print":
		fmt.Print(t.String())
	case "validate":
		if t.Validate() {
			log.Infof("Tree validation successful")
		} else {
			log.Errorf("Tree validation failed")
			os.Exit(1)
		}
	}
}

// runPersistent exercises the ordstore.Tree variant against the backend
// named by STORAGE_BACKEND.
func runPersistent(cfg *config.Config, log *logger.Logger, command string) {
	var storage ordstore.Storage
	switch cfg.StorageBackend {
	case config.BackendFile:
		fs, err := ordstore.NewFileStorage(cfg.StorageDir)
		if err != nil {
			log.Errorf("failed to open file storage: %v", err)
			os.Exit(1)
		}
		storage = fs
	default:
		storage = ordstore.NewMemStorage()
	}

	t, err := ordstore.OpenWithDegree[string, string](storage, cfg.TreeDegree)
	if err != nil {
		log.Errorf("failed to open persistent tree: %v", err)
		os.Exit(1)
	}

	switch command {
	case "persist-insert":
		if len(os.Args) < 4 {
			log.Errorf("persist-insert requires a key and a value")
			os.Exit(1)
		}
		old, existed, err := t.Insert(os.Args[2], os.Args[3])
		if err != nil {
			log.Errorf("insert failed: %v", err)
			os.Exit(1)
		}
		if existed {
			log.Infof("Replaced key %q (was %q)", os.Args[2], old)
		} else {
			log.Infof("Inserted key %q", os.Args[2])
		}
	case "persist-search":
		if len(os.Args) < 3 {
			log.Errorf("persist-search requires a key")
			os.Exit(1)
		}
		v, ok, err := t.Get(os.Args[2])
		if err != nil {
			log.Errorf("search failed: %v", err)
			os.Exit(1)
		}
		if ok {
			log.Infof("Found key %q: %q", os.Args[2], v)
		} else {
			log.Infof("Key %q not found", os.Args[2])
		}
	}
}
