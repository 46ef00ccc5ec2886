package cmd

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aldas/go-canframe"
	"github.com/aldas/go-canframe/pgns"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().Bool(flagStdin, false, "read `<canid-hex> <payload-hex>` lines from stdin instead of arguments")
}

var decodeCmd = &cobra.Command{
	Use:   "decode <canid-hex> [payload-hex]",
	Short: "decode CAN identifier and optionally its 8 byte payload",
	Args:  cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := loadRegistry(cmd)
		if err != nil {
			return err
		}
		asJSON, err := cmd.Flags().GetBool(flagJSON)
		if err != nil {
			return err
		}
		fromStdin, err := cmd.Flags().GetBool(flagStdin)
		if err != nil {
			return err
		}
		decoder := pgns.NewDecoder(registry)

		if !fromStdin {
			if len(args) == 0 {
				return fmt.Errorf("missing canid argument")
			}
			payload := ""
			if len(args) == 2 {
				payload = args[1]
			}
			return decodeOne(registry, decoder, asJSON, args[0], payload)
		}

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			parts := strings.Fields(line)
			payload := ""
			if len(parts) > 1 {
				payload = parts[1]
			}
			// identifier decode failure suppresses payload decode but not the stream
			if err := decodeOne(registry, decoder, asJSON, parts[0], payload); err != nil {
				color.Red("# %v", err)
			}
		}
		return scanner.Err()
	},
}

type output struct {
	Header canframe.Identifier `json:"header"`
	Name   string              `json:"name,omitempty"`
	Fields pgns.FieldValues    `json:"fields,omitempty"`
}

func decodeOne(registry *pgns.Registry, decoder *pgns.Decoder, asJSON bool, rawID string, rawPayload string) error {
	id, err := canframe.DecodeIdentifier(rawID)
	if err != nil {
		return err
	}

	out := output{Header: id}
	if def, ok := registry.Find(id.PGN); ok {
		out.Name = def.Name
	}

	unknownPGN := false
	if rawPayload != "" {
		fields, err := decoder.Decode(id.PGN, rawPayload)
		if errors.Is(err, pgns.ErrUnknownPGN) {
			unknownPGN = true // identifier itself is still valid
		} else if err != nil {
			return err
		}
		out.Fields = fields
	}

	if asJSON {
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", b)
		return nil
	}

	name := out.Name
	if name == "" {
		name = "-"
	}
	color.Cyan("PGN: %v (%v) %v priority: %v src: %v dst: %v",
		id.PGN, name, id.Format, id.Priority, id.Source, id.Destination)
	if unknownPGN {
		color.Yellow("  no definition registered for PGN %v, payload left undecoded", id.PGN)
	}
	for _, f := range out.Fields {
		fmt.Printf("  %v: %v\n", f.Name, f.Value)
	}
	return nil
}
