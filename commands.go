package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Hunter19823/Minecraft-Schema-Gen/integrations/publish"
	"github.com/Hunter19823/Minecraft-Schema-Gen/render"
	"github.com/Hunter19823/Minecraft-Schema-Gen/server"
	"github.com/Hunter19823/Minecraft-Schema-Gen/source"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newRootCmd(cfg config) *cobra.Command {
	root := &cobra.Command{
		Use:           "schemagen",
		Short:         "Infer OpenAPI schemas from a tree of JSON documents",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	fs := root.PersistentFlags()
	fs.StringVar(&cfg.Title, "title", cfg.Title, "document title")
	fs.StringVar(&cfg.Description, "description", cfg.Description, "document description")
	fs.StringVar(&cfg.Version, "doc-version", cfg.Version, "document version")
	fs.IntVar(&cfg.MaxEnum, "max-enum", cfg.MaxEnum, "omit enums longer than this, 0 keeps every literal")

	root.AddCommand(newBuildCmd(&cfg), newServeCmd(&cfg))
	return root
}

func newBuildCmd(cfg *config) *cobra.Command {
	var out, format string

	cmd := &cobra.Command{
		Use:   "build <dir>",
		Short: "Build one document from every JSON file under dir",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}

			dir, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			log := slog.With("batch", uuid.NewString(), "dir", dir)
			docs, err := source.Load(cmd.Context(), os.DirFS(dir), filepath.Base(dir), cfg.ReadLimit)
			if err != nil {
				return err
			}
			if len(docs) == 0 {
				log.Warn("no json documents found")
			}

			b := cfg.builder()
			b.Logger = log
			doc, err := b.Build(docs)
			if err != nil {
				return err
			}
			log.Info("built document", "documents", len(docs), "paths", len(doc.Paths))

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				file, err := os.Create(out)
				if err != nil {
					return err
				}
				defer file.Close()
				w = file
			}
			if err := render.Write(w, doc, f); err != nil {
				return fmt.Errorf("write document: %w", err)
			}

			if cfg.PublishURL == "" {
				return nil
			}
			client, err := publish.NewClient(cfg.APIKey, cfg.PublishURL)
			if err != nil {
				return err
			}
			if err := client.Publish(cmd.Context(), doc); err != nil {
				return fmt.Errorf("publish: %w", err)
			}
			log.Info("published document", "url", cfg.PublishURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	cmd.Flags().StringVar(&cfg.PublishURL, "publish", cfg.PublishURL, "POST the document to this url")
	cmd.Flags().IntVar(&cfg.ReadLimit, "read-limit", cfg.ReadLimit, "files read at once")
	return cmd
}

func newServeCmd(cfg *config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := server.New(*cfg.builder(), slog.Default())
			slog.Info("listening", "addr", cfg.Addr)
			return s.ListenAndServe(cmd.Context(), cfg.Addr)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "address to listen on")
	return cmd
}
