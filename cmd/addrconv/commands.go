package main

import (
	"encoding/json"
	"fmt"

	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/addrconv/internal/db"
	"github.com/addrconv/internal/french"
	"github.com/addrconv/internal/libpostal"
	"github.com/addrconv/internal/normalize"
	"github.com/addrconv/internal/service"
	"github.com/addrconv/internal/web"
)

// createRootCmd builds the addrconv command tree.
func createRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "addrconv",
		Short: "French and ISO 20022 postal address converter",
		Long: `Convert postal addresses between the French NF Z10-011 line format and
the ISO 20022 structured postal address, and store them by id.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.configure(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("storage", "", "storage backend: file, memory, postgres or redis (default $ADDRCONV_STORAGE or file)")
	flags.String("storage-dir", "", "directory for the file backend (default $STORAGE_DIR or ./json_storage)")
	flags.String("log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	flags.Bool("normalize", false, "collapse whitespace in input lines before parsing (default $ADDRCONV_NORMALIZE or false)")

	rootCmd.AddCommand(createSaveCmd(a))
	rootCmd.AddCommand(createUpdateCmd(a))
	rootCmd.AddCommand(createDeleteCmd(a))
	rootCmd.AddCommand(createFetchCmd(a))
	rootCmd.AddCommand(createConvertCmd(a))
	rootCmd.AddCommand(createServeCmd(a))
	rootCmd.AddCommand(createMigrateCmd(a))
	rootCmd.AddCommand(createInspectCmd(a))

	return rootCmd
}

func createSaveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Convert an address to the canonical model and store it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := formatFlag(cmd, "from-format")
			if err != nil {
				return err
			}
			input, err := readAddress(cmd)
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			id, err := svc.Save(cmd.Context(), input, from)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved address with ID: %s\n", id)
			return nil
		},
	}
	cmd.Flags().String("address", "", "address JSON, or - to read stdin")
	cmd.Flags().String("from-format", "", "input format: french or iso20022")
	cmd.MarkFlagRequired("address")
	cmd.MarkFlagRequired("from-format")
	return cmd
}

func createUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [id]",
		Short: "Replace a stored address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := formatFlag(cmd, "from-format")
			if err != nil {
				return err
			}
			input, err := readAddress(cmd)
			if err != nil {
				return err
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			if err := svc.Update(cmd.Context(), args[0], input, from); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated address with ID: %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().String("address", "", "address JSON, or - to read stdin")
	cmd.Flags().String("from-format", "", "input format: french or iso20022")
	cmd.MarkFlagRequired("address")
	cmd.MarkFlagRequired("from-format")
	return cmd
}

func createDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete a stored address",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted address with ID: %s\n", args[0])
			return nil
		},
	}
}

func createFetchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch [id]",
		Short: "Print a stored address in the requested format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := formatFlag(cmd, "format")
			if err != nil {
				return err
			}
			asXML, _ := cmd.Flags().GetBool("xml")
			if asXML && to != service.ISO20022 {
				return fmt.Errorf("--xml requires --format iso20022")
			}
			asLines, _ := cmd.Flags().GetBool("lines")
			if asLines && to != service.French {
				return fmt.Errorf("--lines requires --format french")
			}
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.FetchFormat(cmd.Context(), args[0], to)
			if err != nil {
				return err
			}
			if asXML {
				data, err := result.XML()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			if asLines {
				lines, err := result.Lines()
				if err != nil {
					return err
				}
				for _, line := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), line)
				}
				return nil
			}
			return printJSON(cmd, result)
		},
	}
	cmd.Flags().String("format", "", "output format: french or iso20022")
	cmd.Flags().Bool("xml", false, "render iso20022 output as a <Pty> XML element")
	cmd.Flags().Bool("lines", false, "print french output as envelope lines")
	cmd.MarkFlagRequired("format")
	return cmd
}

func createConvertCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert an address without storing it",
		Long: `Convert an address given as {"french_address": {...}} or
{"iso_address": {...}} to the target format. With --save the canonical
address is also stored once the conversion has succeeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := formatFlag(cmd, "to")
			if err != nil {
				return err
			}
			input, err := readAddress(cmd)
			if err != nil {
				return err
			}
			save, _ := cmd.Flags().GetBool("save")
			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}

			result, err := svc.Convert(cmd.Context(), input, to, save)
			if err != nil {
				return err
			}
			if err := printJSON(cmd, result); err != nil {
				return err
			}
			if save {
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved address with ID: %s\n", result.ID)
			}
			return nil
		},
	}
	cmd.Flags().String("address", "", "request JSON, or - to read stdin")
	cmd.Flags().String("to", "", "target format: french or iso20022")
	cmd.Flags().Bool("save", false, "store the canonical address after converting")
	cmd.MarkFlagRequired("address")
	cmd.MarkFlagRequired("to")
	return cmd
}

func createServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			webConfig := web.DefaultConfig()
			if path, _ := cmd.Flags().GetString("config"); path != "" {
				loaded, err := web.LoadConfig(path)
				if err != nil {
					return fmt.Errorf("failed to load web config: %w", err)
				}
				webConfig = loaded
			}
			if cmd.Flags().Changed("port") {
				webConfig.Server.Port, _ = cmd.Flags().GetInt("port")
			}

			svc, err := a.service(cmd.Context())
			if err != nil {
				return err
			}
			a.registry.MustRegister(
				collectors.NewGoCollector(),
				collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			)

			a.log.Info().
				Str("storage", a.cfg.Storage.Backend).
				Bool("auth", webConfig.Auth.Enabled).
				Msg("HTTP API configured")
			return web.NewServer(webConfig, svc, a.registry, a.log).Start(cmd.Context())
		},
	}
	cmd.Flags().String("config", "", "JSON web config file")
	cmd.Flags().Int("port", 8080, "listen port, overriding the config file")
	return cmd
}

func createMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the PostgreSQL address schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.NewConnection(cmd.Context(), a.cfg.Storage)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(cmd.Context(), conn.DB); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
			return nil
		},
	}
}

func createInspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [line]",
		Short: "Show how a French address line is parsed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			line := args[0]
			if a.cfg.Normalize {
				line = normalize.Line(line)
			}
			fmt.Fprintf(out, "line:          %q\n", line)

			if street, err := french.ParseStreet(line); err != nil {
				fmt.Fprintf(out, "street:        %v\n", err)
			} else {
				number := "-"
				if street.Number != nil {
					number = *street.Number
				}
				fmt.Fprintf(out, "street:        number=%s name=%q\n", number, street.Name)
			}

			if postal, err := french.ParsePostal(line); err != nil {
				fmt.Fprintf(out, "postal:        %v\n", err)
			} else {
				fmt.Fprintf(out, "postal:        postcode=%s town=%q\n", postal.Postcode, postal.Town)
			}

			postbox, _ := french.ParsePostbox(line)
			location, _ := french.ParseTownLocation(line)
			fmt.Fprintf(out, "postbox:       %s\n", orDash(postbox))
			fmt.Fprintf(out, "town location: %s\n", orDash(location))

			components, err := libpostal.Parse(line)
			if err != nil {
				a.log.Debug().Err(err).Msg("libpostal skipped")
				return nil
			}
			for _, c := range components {
				fmt.Fprintf(out, "libpostal:     %s=%q\n", c.Label, c.Value)
			}
			return nil
		},
	}
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func orDash(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}
