// Package kb - HCL overlay loader.
// Knowledge base releases ship as builtin tables; deployments can layer
// additional rules, limits, and synonyms from .hcl files.
package kb

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"stacksafe/core/types"
	"stacksafe/internal/errors"
)

// Dose amounts in overlay files are strings, not HCL numbers, so that upper
// limits survive deserialization with full fidelity.
type overlayFile struct {
	Rules    []ruleBlock    `hcl:"rule,block"`
	Limits   []limitBlock   `hcl:"limit,block"`
	Synonyms []synonymBlock `hcl:"synonym,block"`
}

type ruleBlock struct {
	ID          string        `hcl:"id,label"`
	Supplements []string      `hcl:"supplements,optional"`
	Medications []string      `hcl:"medications,optional"`
	Severity    string        `hcl:"severity"`
	Mechanism   string        `hcl:"mechanism"`
	Evidence    string        `hcl:"evidence,optional"`
	Management  string        `hcl:"management,optional"`
	Category    string        `hcl:"category,optional"`
	Sources     []sourceBlock `hcl:"source,block"`
}

type sourceBlock struct {
	Title string `hcl:"title"`
	URL   string `hcl:"url,optional"`
}

type limitBlock struct {
	Nutrient        string   `hcl:"nutrient,label"`
	RDI             string   `hcl:"rdi,optional"`
	UpperLimit      string   `hcl:"upper_limit"`
	Unit            string   `hcl:"unit"`
	RiskDescription string   `hcl:"risk,optional"`
	AtRisk          []string `hcl:"at_risk,optional"`
	EvidenceLevel   string   `hcl:"evidence_level,optional"`
	Ingredients     []string `hcl:"ingredients,optional"`
}

type synonymBlock struct {
	Alias string `hcl:"alias,label"`
	Key   string `hcl:"key"`
}

// LoadOverlay parses every .hcl file in dir and registers its contents on
// the builder. Validation still happens at Build; parse and enum errors are
// reported here so the failing file is named.
func LoadOverlay(b *Builder, dir string) error {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".hcl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return errors.KnowledgeBase("failed to walk overlay directory", err)
	}

	parser := hclparse.NewParser()
	for _, file := range files {
		if err := loadOverlayFile(b, parser, file); err != nil {
			return err
		}
	}
	return nil
}

func loadOverlayFile(b *Builder, parser *hclparse.Parser, path string) error {
	hclFile, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return errors.KnowledgeBase("failed to parse "+path, diags)
	}

	var overlay overlayFile
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &overlay); diags.HasErrors() {
		return errors.KnowledgeBase("failed to decode "+path, diags)
	}

	for _, block := range overlay.Rules {
		rule, err := block.toRule()
		if err != nil {
			return errors.Wrapf(errors.TypeKnowledgeBase, err, "%s: rule %q", path, block.ID)
		}
		b.AddRule(rule)
	}

	for _, block := range overlay.Limits {
		limit, ingredients, err := block.toLimit()
		if err != nil {
			return errors.Wrapf(errors.TypeKnowledgeBase, err, "%s: limit %q", path, block.Nutrient)
		}
		b.AddLimit(limit)
		b.AddNutrientSource(types.IngredientKey(limit.Nutrient), limit.Nutrient)
		for _, ingredient := range ingredients {
			b.AddNutrientSource(ingredient, limit.Nutrient)
		}
	}

	for _, block := range overlay.Synonyms {
		b.AddSynonym(block.Alias, types.IngredientKey(block.Key))
	}

	return nil
}

func (r ruleBlock) toRule() (InteractionRule, error) {
	severity, err := types.ParseSeverity(r.Severity)
	if err != nil {
		return InteractionRule{}, err
	}

	rule := InteractionRule{
		ID:         r.ID,
		Severity:   severity,
		Mechanism:  r.Mechanism,
		Evidence:   r.Evidence,
		Management: r.Management,
		Category:   r.Category,
	}
	for _, key := range r.Supplements {
		rule.Supplements = append(rule.Supplements, types.IngredientKey(key))
	}
	for _, key := range r.Medications {
		rule.Medications = append(rule.Medications, types.IngredientKey(key))
	}
	for _, source := range r.Sources {
		rule.Sources = append(rule.Sources, types.SourceRef{Title: source.Title, URL: source.URL})
	}
	return rule, nil
}

func (l limitBlock) toLimit() (NutrientLimit, []types.IngredientKey, error) {
	upperLimit, err := decimal.NewFromString(l.UpperLimit)
	if err != nil {
		return NutrientLimit{}, nil, err
	}

	unit, err := types.ParseUnit(l.Unit)
	if err != nil {
		return NutrientLimit{}, nil, err
	}

	evidenceLevel := types.EvidenceC
	if l.EvidenceLevel != "" {
		evidenceLevel, err = types.ParseEvidenceLevel(l.EvidenceLevel)
		if err != nil {
			return NutrientLimit{}, nil, err
		}
	}

	limit := NutrientLimit{
		Nutrient:          types.NutrientKey(l.Nutrient),
		UpperLimit:        upperLimit,
		Unit:              unit,
		RiskDescription:   l.RiskDescription,
		AtRiskPopulations: l.AtRisk,
		EvidenceLevel:     evidenceLevel,
	}

	if l.RDI != "" {
		rdi, err := decimal.NewFromString(l.RDI)
		if err != nil {
			return NutrientLimit{}, nil, err
		}
		limit.RDI = &rdi
	}

	var ingredients []types.IngredientKey
	for _, key := range l.Ingredients {
		ingredients = append(ingredients, types.IngredientKey(key))
	}
	return limit, ingredients, nil
}
