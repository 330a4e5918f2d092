package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/codeowner-tools/whose/internal/app"
	"github.com/codeowner-tools/whose/internal/git"
)

func main() {
	var (
		root    string
		ref     string
		remote  string
		token   string
		verbose bool
	)

	commonFlags := []cli.Flag{
		&cli.StringFlag{
			Name:        "root",
			Aliases:     []string{"r", "repo"},
			Value:       "./",
			Usage:       "Path to local Git repo",
			Destination: &root,
		},
		&cli.StringFlag{
			Name:        "ref",
			Usage:       "Git ref to read the CODEOWNERS file from (default HEAD)",
			Destination: &ref,
		},
		&cli.StringFlag{
			Name:        "remote",
			Usage:       "Resolve against a remote GitHub repo (owner/name) instead of a local one",
			Destination: &remote,
		},
		&cli.StringFlag{
			Name:        "token",
			Usage:       "GitHub authentication token for --remote",
			EnvVars:     []string{"GITHUB_TOKEN"},
			Destination: &token,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Usage:       "Verbose output",
			Destination: &verbose,
		},
	}

	newApp := func(ctx *cli.Context) (*app.App, error) {
		repoDir := root
		if remote == "" {
			// git show paths are relative to the repo root, not the cwd
			top, err := git.RepoRoot(root)
			if err != nil {
				return nil, err
			}
			repoDir = top
		}
		a, err := app.New(app.Config{
			RepoDir:       repoDir,
			Ref:           ref,
			Remote:        remote,
			Token:         token,
			Verbose:       verbose,
			InfoBuffer:    os.Stderr,
			WarningBuffer: os.Stderr,
		})
		if err != nil {
			return nil, err
		}
		if err := a.Load(ctx.Context); err != nil {
			return nil, err
		}
		return a, nil
	}

	cliApp := &cli.App{
		Name:        "whose",
		Usage:       "Find GitHub CODEOWNERS for paths",
		Version:     "v0.2.0",
		Description: "Resolves the owners responsible for repository paths from the CODEOWNERS rule file.",
		Commands: []*cli.Command{
			{
				Name:        "owners",
				Aliases:     []string{"o"},
				Usage:       "Get the owners of one or more paths",
				UsageText:   "whose owners [options] [path1] [path2]...",
				Description: "Resolve the owners of the given paths. Directory paths are expanded to the files under them. Paths can also be piped on stdin, one per line.",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "",
						Usage:   "Output format. Allowed values are: default, one-line, and json",
					},
					&cli.BoolFlag{
						Name:    "summary",
						Aliases: []string{"s"},
						Usage:   "Print the unique owner list instead of per-path answers",
					},
				}, commonFlags...),
				Action: func(cCtx *cli.Context) error {
					targets, err := gatherTargets(cCtx)
					if err != nil {
						return err
					}
					a, err := newApp(cCtx)
					if err != nil {
						return err
					}
					format, err := app.ValidateFormat(pickFormat(cCtx.String("format"), a.Conf.Format))
					if err != nil {
						return err
					}
					results, err := a.ResolveOwners(targets)
					if err != nil {
						return err
					}
					if cCtx.Bool("summary") {
						return app.RenderUnowned(os.Stdout, app.AllOwners(results))
					}
					return app.RenderResolutions(os.Stdout, results, format)
				},
			},
			{
				Name:        "explain",
				Aliases:     []string{"e"},
				Usage:       "Show every rule matching the given paths",
				UsageText:   "whose explain [options] <path1> [path2]...",
				Description: "Print the full match trace for each path, one TOML record per matching rule, marking the effective rule.",
				Flags:       commonFlags,
				Action: func(cCtx *cli.Context) error {
					targets, err := gatherTargets(cCtx)
					if err != nil {
						return err
					}
					if len(targets) == 0 {
						return fmt.Errorf("at least one target path is required")
					}
					a, err := newApp(cCtx)
					if err != nil {
						return err
					}
					explanations, err := a.ExplainOwners(targets)
					if err != nil {
						return err
					}
					return app.RenderExplanations(os.Stdout, explanations)
				},
			},
			{
				Name:        "unowned",
				Aliases:     []string{"u"},
				Usage:       "List files no CODEOWNERS rule matches",
				UsageText:   "whose unowned [options] [target-dir]",
				Description: "Walk the repository and list unowned files. If target-dir is specified, only check files under that directory.",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:    "depth",
						Aliases: []string{"d"},
						Value:   0,
						Usage:   "Directory depth to check (from target)",
					},
					&cli.BoolFlag{
						Name:    "dirs_only",
						Aliases: []string{"do"},
						Value:   false,
						Usage:   "Only list directories",
					},
				}, commonFlags...),
				Action: func(cCtx *cli.Context) error {
					target := ""
					if cCtx.NArg() > 0 {
						target = cCtx.Args().First()
						if cwdRelativeTargets(cCtx) {
							anchored, err := anchorTargets([]string{target})
							if err != nil {
								return err
							}
							target = anchored[0]
						}
					}
					a, err := newApp(cCtx)
					if err != nil {
						return err
					}
					unowned, err := a.Unowned(target, cCtx.Int("depth"), cCtx.Bool("dirs_only"))
					if err != nil {
						return err
					}
					return app.RenderUnowned(os.Stdout, unowned)
				},
			},
			{
				Name:        "diff",
				Aliases:     []string{"d"},
				Usage:       "Get the owners of files changed between two refs",
				UsageText:   "whose diff [options] --base <ref>",
				Description: "Resolve owners for every file changed between base and head, as reported by git diff base...head.",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:     "base",
						Aliases:  []string{"b"},
						Usage:    "Base ref of the comparison",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "head",
						Aliases: []string{"H"},
						Value:   "HEAD",
						Usage:   "Head ref of the comparison",
					},
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Value:   "",
						Usage:   "Output format. Allowed values are: default, one-line, and json",
					},
				}, commonFlags...),
				Action: func(cCtx *cli.Context) error {
					a, err := newApp(cCtx)
					if err != nil {
						return err
					}
					format, err := app.ValidateFormat(pickFormat(cCtx.String("format"), a.Conf.Format))
					if err != nil {
						return err
					}
					results, err := a.ResolveDiff(cCtx.String("base"), cCtx.String("head"))
					if err != nil {
						return err
					}
					return app.RenderResolutions(os.Stdout, results, format)
				},
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// pickFormat prefers the flag over the whose.toml default.
func pickFormat(flag string, conf string) string {
	if flag != "" {
		return flag
	}
	if conf != "" {
		return conf
	}
	return "default"
}
