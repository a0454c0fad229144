package cli

import (
	"bytes"
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/cli/config"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
	"github.com/secmon-lab/preparedness/pkg/usecase"
	"github.com/secmon-lab/preparedness/pkg/utils/errutil"
	"github.com/secmon-lab/preparedness/pkg/utils/logging"
	"github.com/secmon-lab/preparedness/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdRecommend() *cli.Command {
	var (
		adminUnitID    string
		businessTypeID string
		answerArgs     []string
		recommendedCap int
		coverageTopN   int
		format         string
		output         string
		catalogCfg     config.Catalog
		repoCfg        config.Repository
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "admin-unit",
			Aliases:     []string{"a"},
			Usage:       "Administrative unit (parish) ID",
			Required:    true,
			Destination: &adminUnitID,
		},
		&cli.StringFlag{
			Name:        "business-type",
			Aliases:     []string{"b"},
			Usage:       "Business type ID",
			Required:    true,
			Destination: &businessTypeID,
		},
		&cli.StringSliceFlag{
			Name:        "answer",
			Usage:       "Wizard answer as characteristic_type=value (can be specified multiple times)",
			Destination: &answerArgs,
		},
		&cli.IntFlag{
			Name:        "recommended-cap",
			Usage:       "Maximum number of recommended and optional strategies (essential strategies are always included)",
			Value:       usecase.DefaultRecommendedCap,
			Sources:     cli.EnvVars("PREPAREDNESS_RECOMMENDED_CAP"),
			Destination: &recommendedCap,
		},
		&cli.IntFlag{
			Name:        "coverage-top",
			Usage:       "Check strategy coverage only for the top N ranked hazards (0 checks all)",
			Sources:     cli.EnvVars("PREPAREDNESS_COVERAGE_TOP"),
			Destination: &coverageTopN,
		},
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Output format [json|text]",
			Value:       "text",
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output destination: '-' for stdout, a file path, or gs://bucket/object",
			Value:       "-",
			Destination: &output,
		},
	}
	flags = append(flags, catalogCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "recommend",
		Aliases: []string{"r"},
		Usage:   "Compute ranked hazard risks and a mitigation action plan for a business",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			answers, err := parseAnswers(answerArgs)
			if err != nil {
				return err
			}

			render, err := rendererFor(format)
			if err != nil {
				return err
			}

			catalog, err := catalogCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load catalog")
			}
			repo, err := repoCfg.Configure(ctx, catalog)
			if err != nil {
				return goerr.Wrap(err, "failed to configure repository")
			}
			defer safe.Close(ctx, repo)

			uc := usecase.New(repo)
			plan, err := uc.Recommendation.ComputeRecommendation(ctx, adminUnitID, businessTypeID, answers,
				usecase.RecommendationOptions{
					RecommendedCap: &recommendedCap,
					CoverageTopN:   coverageTopN,
				})
			if err != nil {
				return errutil.Handle(ctx, err, "failed to compute recommendation")
			}

			var buf bytes.Buffer
			if err := render(&buf, plan); err != nil {
				return goerr.Wrap(err, "failed to render plan")
			}
			if err := writeOutput(ctx, output, format, buf.Bytes()); err != nil {
				return errutil.Handle(ctx, err, "failed to write plan")
			}

			logger.Info("Recommendation written",
				"plan_id", plan.ID,
				"output", output,
				"warnings", plan.HasWarnings(),
			)
			return nil
		},
	}
}

// parseAnswers converts "type=value" arguments into wizard answers. A later
// argument for the same characteristic type overrides an earlier one.
func parseAnswers(args []string) (model.WizardAnswers, error) {
	answers := make(model.WizardAnswers, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, goerr.New("answer must be in characteristic_type=value form", goerr.V("answer", arg))
		}
		ct := types.CharacteristicType(key)
		if err := ct.Validate(); err != nil {
			return nil, goerr.Wrap(err, "invalid characteristic type in answer", goerr.V("answer", arg))
		}
		answers[ct] = strings.TrimSpace(value)
	}
	return answers, nil
}
