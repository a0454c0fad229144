package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/cli/config"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/usecase"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
	"github.com/secmon-lab/preparedness/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var catalogCfg config.Catalog
	var repoCfg config.Repository

	var flags []cli.Flag
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the catalog file or the catalog stored in the repository",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: the catalog file, when given, must parse
			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "catalog file validation failed")
			}

			// Step 2: without a file, read the catalog back from the repository
			if catalog == nil {
				repo, err := repoCfg.Configure(ctx, catalog)
				if err != nil {
					return goerr.Wrap(err, "failed to configure repository")
				}
				defer safe.Close(ctx, repo)

				catalog, err = usecase.New(repo).LoadCatalog(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to load catalog from repository")
				}
			}

			logCatalogSummary(catalog)

			// Step 3: semantic checks
			result := usecase.ValidateCatalog(catalog)
			if result.HasIssues() {
				for _, issue := range result.Issues {
					logger.Warn("Catalog issue found",
						"target", issue.Target,
						"id", issue.ID,
						"field", issue.Field,
						"message", issue.Message,
						"expected", issue.Expected,
						"actual", issue.Actual,
					)
				}
				return fmt.Errorf("catalog validation found %d issue(s)", len(result.Issues))
			}

			logger.Info("Catalog validation passed")
			return nil
		},
	}
}

func logCatalogSummary(catalog *model.Catalog) {
	logging.Default().Info("Catalog loaded",
		"locations", len(catalog.Locations),
		"business_types", len(catalog.BusinessTypes),
		"multipliers", len(catalog.Multipliers),
		"strategies", len(catalog.Strategies),
	)
}
