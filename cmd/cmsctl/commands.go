package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Sternrassler/strapi-client/pkg/cache"
	"github.com/Sternrassler/strapi-client/pkg/content"
	"github.com/Sternrassler/strapi-client/pkg/datamanager"
	"github.com/Sternrassler/strapi-client/pkg/logging"
	"github.com/Sternrassler/strapi-client/pkg/pagination"
	"github.com/Sternrassler/strapi-client/pkg/strapi"
	"github.com/urfave/cli/v3"
)

const userAgent = "cmsctl/0.1.0"

// record is an entity whose attributes are left untyped.
type record = content.Entity[map[string]any]

func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:                      "cmsctl",
		Usage:                     "query a Strapi CMS",
		Writer:                    out,
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "url",
				Usage:   "CMS root URL, without /api",
				Value:   strapi.DefaultBaseURL,
				Sources: cli.NewValueSourceChain(cli.EnvVar("STRAPI_URL")),
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "API token sent as a bearer token",
				Sources: cli.NewValueSourceChain(cli.EnvVar("STRAPI_API_TOKEN")),
			},
			&cli.StringFlag{
				Name:    "schema",
				Usage:   "response shape: v4, v5 or auto",
				Value:   string(content.SchemaV5),
				Sources: cli.NewValueSourceChain(cli.EnvVar("STRAPI_SCHEMA")),
				Validator: func(v string) error {
					_, err := content.ParseSchema(v)
					return err
				},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug, info, warn or error",
				Value:   string(logging.LevelWarn),
				Sources: cli.NewValueSourceChain(cli.EnvVar("CMSCTL_LOG_LEVEL")),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := logging.ParseLevel(cmd.String("log-level"))
			if err != nil {
				return ctx, err
			}
			cfg := logging.DefaultConfig()
			cfg.Level = level
			logging.Setup(cfg)
			return ctx, nil
		},
		Commands: []*cli.Command{
			sharedCommand(),
			getCommand(),
			queryCommand(),
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "field:op:value, repeatable (nested fields use dots, $in values use commas)",
		},
		&cli.StringFlag{
			Name:    "populate",
			Aliases: []string{"p"},
			Usage:   "'*' or a comma-separated list of relations",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of field:asc|desc",
		},
		&cli.IntFlag{
			Name:  "page",
			Usage: "page number",
		},
		&cli.IntFlag{
			Name:  "page-size",
			Usage: "entries per page",
		},
	}
}

func sharedCommand() *cli.Command {
	return &cli.Command{
		Name:  "shared",
		Usage: "print the active header and hero",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			dm := datamanager.New(client, cache.NewMemoryStore(), datamanager.Config{})
			return printJSON(cmd, dm.GetSharedData(ctx))
		},
	}
}

func getCommand() *cli.Command {
	return &cli.Command{
		Name:      "get",
		Usage:     "fetch a collection",
		ArgsUsage: "<collection>",
		Flags: append(queryFlags(),
			&cli.BoolFlag{
				Name:  "all",
				Usage: "fetch every page in parallel",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Usage: "parallel page fetches with --all",
				Value: pagination.DefaultConfig().MaxConcurrency,
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			collection, err := collectionArg(cmd)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			if cmd.Bool("all") {
				cfg := pagination.DefaultConfig()
				cfg.MaxConcurrency = cmd.Int("concurrency")
				// a partial result is printed before the error is reported
				all, fetchErr := strapi.FindAll[map[string]any](ctx, client, collection, opts, cfg)
				if all != nil {
					if err := printJSON(cmd, content.Response[[]record]{Data: all}); err != nil {
						return err
					}
				}
				return fetchErr
			}

			resp, err := strapi.Find[map[string]any](ctx, client, collection, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd, resp)
		},
	}
}

func queryCommand() *cli.Command {
	return &cli.Command{
		Name:      "query",
		Usage:     "print the request URL without sending it",
		ArgsUsage: "<collection>",
		Flags:     queryFlags(),
		Action: func(_ context.Context, cmd *cli.Command) error {
			collection, err := collectionArg(cmd)
			if err != nil {
				return err
			}
			opts, err := buildOptions(cmd)
			if err != nil {
				return err
			}
			client, err := newClient(cmd)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, client.URL(collection, opts))
			return err
		},
	}
}

func newClient(cmd *cli.Command) (*strapi.Client, error) {
	schema, err := content.ParseSchema(cmd.String("schema"))
	if err != nil {
		return nil, err
	}
	return strapi.New(strapi.Config{
		BaseURL:   cmd.String("url"),
		Token:     cmd.String("token"),
		Schema:    schema,
		UserAgent: userAgent,
	})
}

func collectionArg(cmd *cli.Command) (string, error) {
	if cmd.Args().Len() != 1 {
		return "", fmt.Errorf("expected exactly one collection, got %d arguments", cmd.Args().Len())
	}
	return strings.Trim(cmd.Args().First(), "/"), nil
}

func buildOptions(cmd *cli.Command) (strapi.Options, error) {
	var opts strapi.Options

	switch p := strings.TrimSpace(cmd.String("populate")); p {
	case "":
	case strapi.PopulateAll:
		opts.Populate = strapi.PopulateAll
	default:
		opts.Populate = splitList(p)
	}

	if s := cmd.String("sort"); s != "" {
		opts.Sort = splitList(s)
	}

	filters, err := parseFilters(cmd.StringSlice("filter"))
	if err != nil {
		return opts, err
	}
	opts.Filters = filters

	page, size := cmd.Int("page"), cmd.Int("page-size")
	if page < 0 || size < 0 {
		return opts, fmt.Errorf("--page and --page-size must not be negative")
	}
	if page > 0 || size > 0 {
		opts.Pagination = &strapi.PageRequest{Page: page, PageSize: size}
	}
	return opts, nil
}

// parseFilters turns field:op:value expressions into a filter tree.
// "category.slug:eq:roofs" becomes {"category": {"slug": {"$eq": "roofs"}}}.
func parseFilters(exprs []string) (strapi.Filters, error) {
	if len(exprs) == 0 {
		return nil, nil
	}

	root := strapi.Filters{}
	for _, expr := range exprs {
		parts := strings.SplitN(expr, ":", 3)
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid filter %q: want field:op:value", expr)
		}
		field, op, value := parts[0], parts[1], parts[2]
		if !strings.HasPrefix(op, "$") {
			op = "$" + op
		}

		node := root
		for _, name := range strings.Split(field, ".") {
			if name == "" {
				return nil, fmt.Errorf("invalid filter %q: empty field name", expr)
			}
			child, ok := node[name].(strapi.Filters)
			if !ok {
				if _, taken := node[name]; taken {
					return nil, fmt.Errorf("invalid filter %q: %s is already a value", expr, name)
				}
				child = strapi.Filters{}
				node[name] = child
			}
			node = child
		}

		switch op {
		case "$in", "$notIn":
			node[op] = splitList(value)
		default:
			node[op] = value
		}
	}
	return root, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func printJSON(cmd *cli.Command, v any) error {
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
