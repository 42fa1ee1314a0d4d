package main

import (
	"errors"
	"fmt"

	"github.com/ErlanBelekov/blog-api/config"
	"github.com/ErlanBelekov/blog-api/internal/domain"
	"github.com/ErlanBelekov/blog-api/internal/usecase"
	"github.com/spf13/cobra"
)

const seedPassword = "password123"

var seedUsers = []usecase.SignupInput{
	{FirstName: "John", LastName: "Doe", Email: "john@example.com"},
	{FirstName: "Jane", LastName: "Smith", Email: "jane@example.com"},
	{FirstName: "Alex", LastName: "Johnson", Email: "alex@example.com"},
}

type seedPost struct {
	title       string
	description string
	body        string
	tags        []string
}

var seedPosts = []seedPost{
	{
		title:       "Building RESTful APIs in Go",
		description: "Routing, validation and error envelopes with gin",
		body:        "Go's standard library gets you far, but a router with binding and middleware keeps handlers short. This post walks through request validation, consistent error envelopes and graceful shutdown.",
		tags:        []string{"Go", "Backend", "REST API"},
	},
	{
		title:       "Postgres Indexes You Actually Need",
		description: "A practical look at btree and GIN indexes",
		body:        "Most slow queries come down to a missing index. We cover composite btree indexes for sorted listings and GIN indexes for array membership such as tags.",
		tags:        []string{"Postgres", "Databases", "Performance"},
	},
	{
		title:       "Structured Logging with slog",
		description: "Request-scoped attributes without global state",
		body:        "slog ships with the standard library and composes well. Wrap a handler to add request and user ids from the context and every log line becomes searchable.",
		tags:        []string{"Go", "Observability"},
	},
	{
		title:       "Password Storage Done Right",
		description: "Why bcrypt cost matters",
		body:        "Never store a password you can read back. A salted adaptive hash such as bcrypt makes offline guessing expensive, and the cost factor lets you keep pace with hardware.",
		tags:        []string{"Security", "Backend"},
	},
	{
		title:       "Draft Ideas on Caching",
		description: "Notes that are not ready yet",
		body:        "Cache invalidation remains hard. These notes collect patterns worth trying before publishing.",
		tags:        []string{"Caching"},
	},
	{
		title:       "Testing HTTP Handlers with httptest",
		description: "Fast handler tests without a network",
		body:        "httptest.NewRecorder lets a test call a handler directly and inspect the response. Combine it with fakes at the usecase boundary and the suite stays fast.",
		tags:        []string{"Go", "Testing"},
	},
}

var errSeedMemoryStore = errors.New("seed needs STORE=postgres: the memory store is discarded when the command exits")

func checkSeedStore(cfg *config.Config) error {
	if cfg.Store == config.StoreMemory {
		return errSeedMemoryStore
	}
	return nil
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create demo users and posts; existing ones are kept",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if err := checkSeedStore(cfg); err != nil {
			return err
		}
		logger := newLogger(cfg.Env, cfg.SlogLevel())
		ctx := cmd.Context()

		st, err := openStores(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer st.close()

		authUsecase, postUsecase := newUsecases(cfg, st, logger)

		var authorIDs []string
		for _, in := range seedUsers {
			in.Password = seedPassword
			user, err := authUsecase.Signup(ctx, in)
			if errors.Is(err, domain.ErrDuplicateEmail) {
				user, err = st.users.FindByEmail(ctx, in.Email)
			}
			if err != nil {
				return fmt.Errorf("seed user %s: %w", in.Email, err)
			}
			authorIDs = append(authorIDs, user.ID)
		}

		created := 0
		for i, p := range seedPosts {
			state := domain.StatePublished
			if i%3 == 1 {
				state = domain.StateDraft
			}
			_, err := postUsecase.Create(ctx, usecase.CreatePostInput{
				AuthorID:    authorIDs[i%len(authorIDs)],
				Title:       p.title,
				Description: p.description,
				Body:        p.body,
				Tags:        p.tags,
				State:       state,
			})
			if errors.Is(err, domain.ErrDuplicateTitle) {
				continue
			}
			if err != nil {
				return fmt.Errorf("seed post %q: %w", p.title, err)
			}
			created++
		}

		logger.Info("seed complete", "users", len(authorIDs), "posts_created", created)
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d users, %d new posts (password %q)\n", len(authorIDs), created, seedPassword)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
