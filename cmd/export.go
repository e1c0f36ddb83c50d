package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/frahmantamala/hrconsole/internal/store"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Print the stored document as JSON",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		deps, err := initializeDependencies(ctx)
		if err != nil {
			log.Fatalf("failed to init dependencies: %v", err)
		}
		defer deps.Close()

		loaded := deps.Store.Load(ctx)
		if loaded.Warning != nil {
			deps.Logger.Warn("stored document unusable, exporting defaults", "error", loaded.Warning)
		}

		raw, err := store.Encode(loaded.Document)
		if err != nil {
			log.Fatalf("failed to encode document: %v", err)
		}
		var out bytes.Buffer
		if err := json.Indent(&out, raw, "", "  "); err != nil {
			log.Fatalf("failed to format document: %v", err)
		}
		fmt.Println(out.String())
	},
}
