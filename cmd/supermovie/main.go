// Super Movie - Movie Info Aggregation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/supermovie

// Command supermovie is a terminal client for a Super Movie server.
//
// Usage:
//
//	supermovie lookup [-favorite] [title]   look a movie up (random example when title is empty)
//	supermovie favorites                    list saved favorites
//	supermovie unfavorite <title>           remove a saved favorite
//
// The server URL, favorites location, and request timeout come from the
// client section of the configuration (SUPERMOVIE_SERVER_URL, FAVORITES_PATH,
// CLIENT_TIMEOUT). Favorites are kept in a local BadgerDB directory.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/tomtom215/supermovie/internal/client"
	"github.com/tomtom215/supermovie/internal/config"
	"github.com/tomtom215/supermovie/internal/favorites"
	"github.com/tomtom215/supermovie/internal/logging"
	"github.com/tomtom215/supermovie/internal/models"
)

const usage = `usage:
  supermovie lookup [-favorite] [title]
  supermovie favorites
  supermovie unfavorite <title>
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cfg, err := config.LoadWithKoanf()
	if err != nil {
		fmt.Fprintf(stderr, "config: %v\n", err)
		return 1
	}
	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: "console",
		Caller: cfg.Logging.Caller,
		Output: stderr,
	})

	app := &cli{
		client: client.New(cfg.Client.ServerURL, client.WithTimeout(cfg.Client.Timeout)),
		openStore: func() (favorites.Store, error) {
			if err := os.MkdirAll(cfg.Client.FavoritesPath, 0o750); err != nil {
				return nil, fmt.Errorf("create favorites dir: %w", err)
			}
			return favorites.Open(cfg.Client.FavoritesPath)
		},
		stdout: stdout,
		stderr: stderr,
	}
	return app.dispatch(ctx, args)
}

// cli holds the collaborators of one invocation.
type cli struct {
	client    lookupClient
	openStore func() (favorites.Store, error)
	stdout    io.Writer
	stderr    io.Writer
}

type lookupClient interface {
	Lookup(ctx context.Context, title string) (*models.AggregatedResponse, error)
}

func (c *cli) dispatch(ctx context.Context, args []string) int {
	var err error
	switch args[0] {
	case "lookup":
		err = c.lookup(ctx, args[1:])
	case "favorites":
		err = c.listFavorites(ctx)
	case "unfavorite":
		err = c.unfavorite(ctx, args[1:])
	case "help", "-h", "--help":
		fmt.Fprint(c.stdout, usage)
		return 0
	default:
		fmt.Fprintf(c.stderr, "unknown command %q\n%s", args[0], usage)
		return 2
	}

	if err != nil {
		fmt.Fprintln(c.stderr, userMessage(err))
		return 1
	}
	return 0
}

func (c *cli) lookup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lookup", flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	favorite := fs.Bool("favorite", false, "toggle the result in the favorites list")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	resp, err := c.client.Lookup(ctx, strings.Join(fs.Args(), " "))
	if err != nil {
		return err
	}
	printMovie(c.stdout, resp)

	if !*favorite {
		return nil
	}
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	added, err := store.Toggle(ctx, resp.MovieRecord)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintf(c.stdout, "\nAdded %q to favorites.\n", resp.Title)
	} else {
		fmt.Fprintf(c.stdout, "\nRemoved %q from favorites.\n", resp.Title)
	}
	return nil
}

func (c *cli) listFavorites(ctx context.Context) error {
	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	items, err := store.List(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintln(c.stdout, "No favorites yet.")
		return nil
	}
	for _, m := range items {
		fmt.Fprintf(c.stdout, "%s (%s) - %s\n", m.Title, m.Year, m.Director)
	}
	return nil
}

func (c *cli) unfavorite(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return errors.New("unfavorite needs a title")
	}

	store, err := c.openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Remove(ctx, title)
	if err != nil {
		return err
	}
	if !removed {
		fmt.Fprintf(c.stdout, "%q is not a favorite.\n", title)
		return nil
	}
	fmt.Fprintf(c.stdout, "Removed %q from favorites.\n", title)
	return nil
}

func printMovie(w io.Writer, m *models.AggregatedResponse) {
	fmt.Fprintf(w, "%s (%s)\n", m.Title, m.Year)
	fmt.Fprintf(w, "Director: %s\n", m.Director)
	fmt.Fprintf(w, "Actors:   %s\n", strings.Join(m.Actors, ", "))
	fmt.Fprintf(w, "Rating:   %s\n", m.Rating)
	fmt.Fprintf(w, "Poster:   %s\n", m.Poster)
	fmt.Fprintf(w, "Image:    %s\n\n", m.RandomMovieImage)
	fmt.Fprintf(w, "%s\n\n", m.Plot)
	fmt.Fprintf(w, "Fun fact: %s\n\n", m.FunFact)

	word := m.WordOfTheDay
	fmt.Fprintf(w, "Word of the day: %s\n", word.Word)
	if word.Meaning != "" {
		fmt.Fprintf(w, "  %s\n", word.Meaning)
	}
	fmt.Fprintf(w, "  e.g. %s\n", word.Example)
}

// userMessage mirrors what the browser page shows for each failure.
func userMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrRateLimited):
		return err.Error()
	case errors.As(err, &apiErr):
		return apiErr.Message
	default:
		return "Error: " + err.Error()
	}
}
