package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/preparedness/pkg/domain/model"
	"github.com/secmon-lab/preparedness/pkg/domain/types"
)

type planRenderer func(w io.Writer, plan *model.RecommendationPlan) error

func rendererFor(format string) (planRenderer, error) {
	switch format {
	case "json":
		return renderJSON, nil
	case "text":
		return renderText, nil
	default:
		return nil, goerr.New("unsupported output format", goerr.V("format", format))
	}
}

type planView struct {
	ID                 string           `json:"id"`
	AdminUnitID        string           `json:"admin_unit_id"`
	BusinessTypeID     string           `json:"business_type_id"`
	GeneratedAt        time.Time        `json:"generated_at"`
	RankedRisks        []riskView       `json:"ranked_risks"`
	ExcludedHazards    []string         `json:"excluded_hazards"`
	AppliedMultipliers []multiplierView `json:"applied_multipliers"`
	SelectedStrategies []strategyView   `json:"selected_strategies"`
	ActionPlan         []planEntryView  `json:"action_plan"`
	Notices            []noticeView     `json:"notices"`
}

type riskView struct {
	Rank           int     `json:"rank"`
	Hazard         string  `json:"hazard"`
	CombinedScore  float64 `json:"combined_score"`
	Band           string  `json:"band"`
	LocationRisk   int     `json:"location_risk"`
	Vulnerability  int     `json:"vulnerability"`
	ImpactSeverity int     `json:"impact_severity"`
	ImpactWeight   float64 `json:"impact_weight"`
	Multiplier     float64 `json:"multiplier"`
}

type multiplierView struct {
	CharacteristicType string   `json:"characteristic_type"`
	MultiplierID       string   `json:"multiplier_id"`
	Answer             string   `json:"answer"`
	Factor             float64  `json:"factor"`
	Hazards            []string `json:"hazards"`
}

type strategyView struct {
	Rank           int               `json:"rank"`
	ID             string            `json:"id"`
	SelectionTier  string            `json:"selection_tier"`
	Priority       string            `json:"priority"`
	MatchedHazards []string          `json:"matched_hazards"`
	MaxScore       float64           `json:"max_score"`
	Title          map[string]string `json:"title,omitempty"`
}

type planEntryView struct {
	Phase        string            `json:"phase"`
	SourcePhase  string            `json:"source_phase"`
	StrategyID   string            `json:"strategy_id"`
	StrategyRank int               `json:"strategy_rank"`
	StepID       string            `json:"step_id"`
	SortOrder    int               `json:"sort_order"`
	Title        map[string]string `json:"title,omitempty"`
	Description  map[string]string `json:"description,omitempty"`
}

type noticeView struct {
	Kind    string         `json:"kind"`
	Warning bool           `json:"warning"`
	Subject string         `json:"subject,omitempty"`
	Message string         `json:"message"`
	Values  map[string]any `json:"values,omitempty"`
}

func hazardStrings(hazards []types.Hazard) []string {
	out := make([]string, len(hazards))
	for i, h := range hazards {
		out[i] = h.String()
	}
	return out
}

func newPlanView(plan *model.RecommendationPlan) *planView {
	v := &planView{
		ID:                 string(plan.ID),
		AdminUnitID:        plan.AdminUnitID,
		BusinessTypeID:     plan.BusinessTypeID,
		GeneratedAt:        plan.GeneratedAt,
		RankedRisks:        make([]riskView, len(plan.RankedRisks)),
		ExcludedHazards:    hazardStrings(plan.ExcludedHazards),
		AppliedMultipliers: make([]multiplierView, len(plan.AppliedMultipliers)),
		SelectedStrategies: make([]strategyView, len(plan.SelectedStrategies)),
		ActionPlan:         make([]planEntryView, len(plan.ActionPlan)),
		Notices:            make([]noticeView, len(plan.Notices)),
	}

	for i, r := range plan.RankedRisks {
		v.RankedRisks[i] = riskView{
			Rank:           r.Rank,
			Hazard:         r.Hazard.String(),
			CombinedScore:  r.CombinedScore,
			Band:           r.Band.String(),
			LocationRisk:   r.LocationRisk,
			Vulnerability:  r.Vulnerability,
			ImpactSeverity: r.ImpactSeverity,
			ImpactWeight:   r.ImpactWeight,
			Multiplier:     r.Multiplier,
		}
	}
	for i, m := range plan.AppliedMultipliers {
		v.AppliedMultipliers[i] = multiplierView{
			CharacteristicType: m.CharacteristicType.String(),
			MultiplierID:       m.MultiplierID,
			Answer:             m.Answer,
			Factor:             m.Factor,
			Hazards:            hazardStrings(m.Hazards),
		}
	}
	for i, s := range plan.SelectedStrategies {
		v.SelectedStrategies[i] = strategyView{
			Rank:           s.Rank,
			ID:             s.Strategy.ID.String(),
			SelectionTier:  s.Strategy.SelectionTier.String(),
			Priority:       s.Strategy.Priority.String(),
			MatchedHazards: hazardStrings(s.MatchedHazards),
			MaxScore:       s.MaxScore,
			Title:          s.Strategy.Title,
		}
	}
	for i, e := range plan.ActionPlan {
		v.ActionPlan[i] = planEntryView{
			Phase:        e.Phase.String(),
			SourcePhase:  e.SourcePhase.String(),
			StrategyID:   e.StrategyID.String(),
			StrategyRank: e.StrategyRank,
			StepID:       e.Step.ID,
			SortOrder:    e.Step.SortOrder,
			Title:        e.Step.Title,
			Description:  e.Step.Description,
		}
	}
	for i, n := range plan.Notices {
		v.Notices[i] = noticeView{
			Kind:    n.Kind.String(),
			Warning: n.Kind.IsWarning(),
			Subject: n.Subject,
			Message: n.Message,
			Values:  n.Values,
		}
	}

	return v
}

func renderJSON(w io.Writer, plan *model.RecommendationPlan) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(newPlanView(plan)); err != nil {
		return goerr.Wrap(err, "failed to encode plan")
	}
	return nil
}

var bandColors = map[types.RiskBand]*color.Color{
	types.RiskBandCritical: color.New(color.FgRed, color.Bold),
	types.RiskBandHigh:     color.New(color.FgRed),
	types.RiskBandMedium:   color.New(color.FgYellow),
	types.RiskBandLow:      color.New(color.FgGreen),
}

var (
	headingColor = color.New(color.FgHiWhite, color.Bold)
	phaseColor   = color.New(color.FgCyan, color.Bold)
	warnColor    = color.New(color.FgYellow)
	faintColor   = color.New(color.Faint)
)

// title picks English text, falling back to the alphabetically first language
func title(text model.LocalizedText, fallback string) string {
	if s, ok := text["en"]; ok && s != "" {
		return s
	}
	langs := make([]string, 0, len(text))
	for lang := range text {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if text[lang] != "" {
			return text[lang]
		}
	}
	return fallback
}

func renderText(w io.Writer, plan *model.RecommendationPlan) error {
	var err error
	printf := func(c *color.Color, format string, args ...any) {
		if err != nil {
			return
		}
		if c == nil {
			_, err = fmt.Fprintf(w, format, args...)
			return
		}
		_, err = c.Fprintf(w, format, args...)
	}

	printf(headingColor, "Recommendation for %s in %s\n", plan.BusinessTypeID, plan.AdminUnitID)
	printf(faintColor, "plan %s generated %s\n\n", plan.ID, plan.GeneratedAt.Format(time.RFC3339))

	printf(headingColor, "Ranked risks\n")
	if len(plan.RankedRisks) == 0 {
		printf(faintColor, "  (none)\n")
	}
	for _, r := range plan.RankedRisks {
		printf(nil, "  %2d. %-20s ", r.Rank, r.Hazard)
		printf(bandColors[r.Band], "%6.2f %-8s", r.CombinedScore, r.Band)
		printf(faintColor, " location=%d vulnerability=%d impact=%d multiplier=%.2f\n",
			r.LocationRisk, r.Vulnerability, r.ImpactSeverity, r.Multiplier)
	}
	if len(plan.ExcludedHazards) > 0 {
		printf(faintColor, "  excluded: %v\n", plan.ExcludedHazards)
	}

	printf(headingColor, "\nStrategies\n")
	if len(plan.SelectedStrategies) == 0 {
		printf(faintColor, "  (none)\n")
	}
	for _, s := range plan.SelectedStrategies {
		printf(nil, "  %2d. [%s/%s] %s", s.Rank, s.Strategy.SelectionTier, s.Strategy.Priority, title(s.Strategy.Title, s.Strategy.ID.String()))
		printf(faintColor, " covers %v\n", s.MatchedHazards)
	}

	printf(headingColor, "\nAction plan\n")
	if len(plan.ActionPlan) == 0 {
		printf(faintColor, "  (none)\n")
	}
	var current types.CanonicalPhase
	for _, e := range plan.ActionPlan {
		if e.Phase != current {
			current = e.Phase
			printf(phaseColor, "  %s\n", current)
		}
		printf(nil, "    - %s", title(e.Step.Title, e.Step.ID))
		printf(faintColor, " (%s)\n", e.StrategyID)
	}

	if len(plan.Notices) > 0 {
		printf(headingColor, "\nNotices\n")
		for _, n := range plan.Notices {
			c := faintColor
			if n.Kind.IsWarning() {
				c = warnColor
			}
			printf(c, "  [%s] %s: %s\n", n.Kind, n.Subject, n.Message)
		}
	}

	if err != nil {
		return goerr.Wrap(err, "failed to write text plan")
	}
	return nil
}
