// Cinematch - Movie Similarity Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package main

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinematch/internal/artifact"
	"github.com/tomtom215/cinematch/internal/config"
	"github.com/tomtom215/cinematch/internal/models"
	"github.com/tomtom215/cinematch/internal/recommend"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	dir  string
	name string
}

// catalogConfig resolves the catalog settings, falling back to the server
// configuration for anything not given on the command line.
func (o *globalOptions) catalogConfig() (config.CatalogConfig, error) {
	var cc config.CatalogConfig
	if o.dir == "" || o.name == "" {
		if err := config.LoadDotEnv(); err != nil {
			return cc, err
		}
		cfg, err := config.Load()
		if err != nil {
			return cc, err
		}
		cc = cfg.Catalog
	}
	if o.dir != "" {
		cc.BundleDir = o.dir
	}
	if o.name != "" {
		cc.BundleName = o.name
	}
	return cc, nil
}

func (o *globalOptions) repository() (*artifact.Repository, string, error) {
	cc, err := o.catalogConfig()
	if err != nil {
		return nil, "", err
	}
	repo, err := artifact.NewRepository(cc.BundleDir)
	if err != nil {
		return nil, "", err
	}
	return repo, cc.BundleName, nil
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:          "cinematch",
		Short:        "Movie similarity bundles and recommendations",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Bundle directory (default: BUNDLE_DIR)")
	rootCmd.PersistentFlags().StringVar(&opts.name, "name", "", "Bundle name (default: BUNDLE_NAME)")

	rootCmd.AddCommand(newBundleCmd(opts), newFetchCmd(opts), newRecommendCmd(opts))
	return rootCmd
}

func newBundleCmd(opts *globalOptions) *cobra.Command {
	bundleCmd := &cobra.Command{
		Use:   "bundle",
		Short: "Build and manage catalog bundles",
	}

	var (
		moviesPath     string
		similarityPath string
		buildVersion   int
	)
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build a bundle from movies and similarity CSV files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, name, err := opts.repository()
			if err != nil {
				return err
			}
			imp, err := artifact.NewImporter()
			if err != nil {
				return err
			}
			defer func() { _ = imp.Close() }()

			ctx := cmd.Context()
			b, err := imp.Import(ctx, moviesPath, similarityPath)
			if err != nil {
				return err
			}
			meta, err := repo.Save(ctx, name, buildVersion, b, artifact.Metadata{
				BuiltAt: time.Now().UTC(),
				Source:  moviesPath + "+" + similarityPath,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s v%d: %d movies, %d bytes, sha256 %s\n",
				meta.Name, meta.Version, meta.MovieCount, meta.SizeBytes, meta.Checksum)
			return nil
		},
	}
	buildCmd.Flags().StringVar(&moviesPath, "movies", "", "Path to movies CSV (movie_id,title,tags)")
	buildCmd.Flags().StringVar(&similarityPath, "similarity", "", "Path to N x N similarity CSV")
	buildCmd.Flags().IntVar(&buildVersion, "version", 0, "Version to write (0 = next)")
	_ = buildCmd.MarkFlagRequired("movies")
	_ = buildCmd.MarkFlagRequired("similarity")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored bundles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, _, err := opts.repository()
			if err != nil {
				return err
			}
			list, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No bundles in %s\n", repo.Dir())
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVERSION\tMOVIES\tSIZE\tSAVED")
			for _, m := range list {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%s\n", m.Name, m.Version, m.MovieCount, m.SizeBytes, m.SavedAt.Format(time.RFC3339))
			}
			return tw.Flush()
		},
	}

	var inspectVersion int
	inspectCmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show bundle metadata",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, name, err := opts.repository()
			if err != nil {
				return err
			}
			meta, err := repo.Inspect(cmd.Context(), name, inspectVersion)
			if err != nil {
				return err
			}
			printMetadata(cmd, meta)
			return nil
		},
	}
	inspectCmd.Flags().IntVar(&inspectVersion, "version", 0, "Version to inspect (0 = latest)")

	var keep int
	pruneCmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete old bundle versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, name, err := opts.repository()
			if err != nil {
				return err
			}
			removed, err := repo.Prune(cmd.Context(), name, keep)
			if err != nil {
				return err
			}
			if len(removed) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Nothing to prune for %s\n", name)
				return nil
			}
			versions := make([]string, len(removed))
			for i, v := range removed {
				versions[i] = fmt.Sprintf("v%d", v)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s %s\n", name, strings.Join(versions, ", "))
			return nil
		},
	}
	pruneCmd.Flags().IntVar(&keep, "keep", 3, "Number of newest versions to keep")

	var deleteVersion int
	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete one bundle version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if deleteVersion <= 0 {
				return errors.New("--version must be positive")
			}
			repo, name, err := opts.repository()
			if err != nil {
				return err
			}
			if err := repo.Delete(cmd.Context(), name, deleteVersion); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s v%d\n", name, deleteVersion)
			return nil
		},
	}
	deleteCmd.Flags().IntVar(&deleteVersion, "version", 0, "Version to delete")
	_ = deleteCmd.MarkFlagRequired("version")

	bundleCmd.AddCommand(buildCmd, listCmd, inspectCmd, pruneCmd, deleteCmd)
	return bundleCmd
}

func newFetchCmd(opts *globalOptions) *cobra.Command {
	var (
		url     string
		version int
		timeout time.Duration
	)
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a bundle into the bundle directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cc, err := opts.catalogConfig()
			if err != nil {
				return err
			}
			cc.RemoteURL = url
			cc.BundleVersion = version
			if timeout > 0 {
				cc.DownloadTimeout = timeout
			}

			loader, _, err := artifact.NewLoaderFromConfig(cc)
			if err != nil {
				return err
			}
			meta, err := loader.Download(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Installed %s v%d (%d movies) from %s\n", meta.Name, meta.Version, meta.MovieCount, url)
			return nil
		},
	}
	fetchCmd.Flags().StringVar(&url, "url", "", "Bundle URL")
	fetchCmd.Flags().IntVar(&version, "version", 0, "Version to install as (0 = from file)")
	fetchCmd.Flags().DurationVar(&timeout, "timeout", 0, "Download timeout (default: BUNDLE_DOWNLOAD_TIMEOUT)")
	_ = fetchCmd.MarkFlagRequired("url")
	return fetchCmd
}

func newRecommendCmd(opts *globalOptions) *cobra.Command {
	var version int
	recommendCmd := &cobra.Command{
		Use:   "recommend <title>",
		Short: "Print the five movies most similar to title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := args[0]
			if title == "" {
				return errors.New(models.MsgSelectMovie)
			}

			cc, err := opts.catalogConfig()
			if err != nil {
				return err
			}
			cc.BundleVersion = version

			loader, _, err := artifact.NewLoaderFromConfig(cc)
			if err != nil {
				return err
			}
			store, _, err := loader.Load(cmd.Context())
			if err != nil {
				return err
			}
			rec, err := recommend.New(store)
			if err != nil {
				return err
			}

			res, err := rec.Recommend(title)
			if errors.Is(err, recommend.ErrNotFound) {
				return errors.New(models.MsgMovieNotFound)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, models.RecommendationsHeading)
			for _, item := range res.Items {
				fmt.Fprintf(out, "%d. %s (%.4f)\n", item.Rank, item.Movie.Title, item.Score)
			}
			return nil
		},
	}
	recommendCmd.Flags().IntVar(&version, "version", 0, "Bundle version (0 = latest)")
	return recommendCmd
}

func printMetadata(cmd *cobra.Command, m *artifact.Metadata) {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", m.Name)
	fmt.Fprintf(tw, "Version:\t%d\n", m.Version)
	fmt.Fprintf(tw, "Movies:\t%d\n", m.MovieCount)
	fmt.Fprintf(tw, "Built:\t%s\n", m.BuiltAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Saved:\t%s\n", m.SavedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Size:\t%d bytes\n", m.SizeBytes)
	fmt.Fprintf(tw, "Checksum:\t%s\n", m.Checksum)
	if m.Source != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", m.Source)
	}
	_ = tw.Flush()
}
