// Package kb - builtin interaction rule table.
// This is the source of truth for interaction coverage. Adding a rule here
// (or in an overlay file) never requires touching matching logic.
package kb

import (
	"stacksafe/core/types"
)

func registerBuiltinRules(b *Builder) {
	// ============================================
	// ANTICOAGULANT / BLEEDING RISK
	// ============================================

	b.AddRule(InteractionRule{
		ID:          "warfarin_vitamin_e",
		Supplements: []types.IngredientKey{"vitamin_e"},
		Medications: []types.IngredientKey{"warfarin"},
		Severity:    types.SeverityHigh,
		Mechanism:   "High-dose vitamin E inhibits platelet aggregation and may potentiate the anticoagulant effect of warfarin, raising bleeding risk.",
		Evidence:    "Controlled trials show increased INR and bleeding events at vitamin E doses above 400 IU/day.",
		Management:  "Avoid vitamin E doses above 400 IU/day while on warfarin; monitor INR closely if combined.",
		Sources: []types.SourceRef{
			{Title: "NIH ODS Vitamin E Fact Sheet", URL: "https://ods.od.nih.gov/factsheets/VitaminE-HealthProfessional/"},
		},
		Category: "anticoagulant",
	})

	b.AddRule(InteractionRule{
		ID:          "warfarin_vitamin_k",
		Supplements: []types.IngredientKey{"vitamin_k"},
		Medications: []types.IngredientKey{"warfarin"},
		Severity:    types.SeverityModerate,
		Mechanism:   "Vitamin K directly antagonizes warfarin's mechanism of action, reducing its anticoagulant effect.",
		Evidence:    "Well established; INR reduction is dose-dependent and clinically significant.",
		Management:  "Keep vitamin K intake consistent day to day rather than eliminating it; inform the prescriber of any supplement change.",
		Sources: []types.SourceRef{
			{Title: "American Heart Association: Warfarin and Vitamin K"},
		},
		Category: "anticoagulant",
	})

	b.AddRule(InteractionRule{
		ID:          "warfarin_fish_oil",
		Supplements: []types.IngredientKey{"fish_oil"},
		Medications: []types.IngredientKey{"warfarin"},
		Severity:    types.SeverityModerate,
		Mechanism:   "Omega-3 fatty acids reduce platelet aggregation and may add to warfarin's anticoagulant effect at high doses.",
		Evidence:    "Case reports of elevated INR; trials at moderate doses show small effect.",
		Management:  "Limit fish oil to 3 g/day or less while on warfarin and watch for unusual bruising or bleeding.",
		Sources: []types.SourceRef{
			{Title: "Natural Medicines Database: Fish Oil"},
		},
		Category: "anticoagulant",
	})

	b.AddRule(InteractionRule{
		ID:          "ginkgo_anticoagulant",
		Supplements: []types.IngredientKey{"ginkgo_biloba"},
		Medications: []types.IngredientKey{"warfarin", "aspirin", "clopidogrel"},
		Severity:    types.SeverityHigh,
		Mechanism:   "Ginkgo inhibits platelet-activating factor and adds to the bleeding risk of anticoagulant and antiplatelet drugs.",
		Evidence:    "Case reports of spontaneous bleeding, including intracranial hemorrhage.",
		Management:  "Avoid combining ginkgo with anticoagulants or antiplatelets; stop ginkgo at least two weeks before surgery.",
		Sources: []types.SourceRef{
			{Title: "NCCIH Ginkgo Overview", URL: "https://www.nccih.nih.gov/health/ginkgo"},
		},
		Category: "anticoagulant",
	})

	b.AddRule(InteractionRule{
		ID:          "garlic_anticoagulant",
		Supplements: []types.IngredientKey{"garlic_extract"},
		Medications: []types.IngredientKey{"warfarin", "clopidogrel"},
		Severity:    types.SeverityModerate,
		Mechanism:   "Concentrated garlic extract has antiplatelet activity that can add to anticoagulant effect.",
		Evidence:    "Small trials and case reports; effect strongest with aged garlic extract.",
		Management:  "Dietary garlic is fine; avoid high-dose extracts while anticoagulated.",
		Category:    "anticoagulant",
	})

	// ============================================
	// SEROTONERGIC
	// ============================================

	b.AddRule(InteractionRule{
		ID:          "st_johns_wort_ssri",
		Supplements: []types.IngredientKey{"st_johns_wort"},
		Medications: []types.IngredientKey{"ssri"},
		Severity:    types.SeverityCritical,
		Mechanism:   "St. John's Wort inhibits serotonin reuptake; combined with an SSRI it can precipitate serotonin syndrome.",
		Evidence:    "Documented cases of serotonin syndrome; contraindicated in product labeling.",
		Management:  "Do not combine. Taper one agent under medical supervision before starting the other.",
		Sources: []types.SourceRef{
			{Title: "FDA Drug Safety: St. John's Wort Interactions"},
		},
		Category: "serotonergic",
	})

	b.AddRule(InteractionRule{
		ID:          "five_htp_ssri",
		Supplements: []types.IngredientKey{"five_htp"},
		Medications: []types.IngredientKey{"ssri"},
		Severity:    types.SeverityCritical,
		Mechanism:   "5-HTP is a direct serotonin precursor; stacking it on an SSRI risks serotonin syndrome.",
		Evidence:    "Mechanistically certain; case reports with tryptophan-class precursors.",
		Management:  "Do not combine without prescriber oversight.",
		Category:    "serotonergic",
	})

	b.AddRule(InteractionRule{
		ID:          "same_ssri",
		Supplements: []types.IngredientKey{"sam_e"},
		Medications: []types.IngredientKey{"ssri"},
		Severity:    types.SeverityHigh,
		Mechanism:   "SAM-e raises serotonin turnover and adds to SSRI serotonergic load.",
		Evidence:    "Case reports of serotonin syndrome in elderly patients.",
		Management:  "Combine only under medical supervision at low SAM-e doses.",
		Category:    "serotonergic",
	})

	// ============================================
	// CYP / ABSORPTION
	// ============================================

	b.AddRule(InteractionRule{
		ID:          "st_johns_wort_oral_contraceptive",
		Supplements: []types.IngredientKey{"st_johns_wort"},
		Medications: []types.IngredientKey{"oral_contraceptive"},
		Severity:    types.SeverityHigh,
		Mechanism:   "St. John's Wort induces CYP3A4 and accelerates metabolism of contraceptive hormones, reducing their effectiveness.",
		Evidence:    "Pharmacokinetic studies show reduced hormone levels; breakthrough pregnancies reported.",
		Management:  "Use a backup contraceptive method or avoid St. John's Wort entirely.",
		Category:    "cyp_induction",
	})

	b.AddRule(InteractionRule{
		ID:          "grapefruit_statin",
		Supplements: []types.IngredientKey{"grapefruit_extract"},
		Medications: []types.IngredientKey{"statin"},
		Severity:    types.SeverityHigh,
		Mechanism:   "Grapefruit furanocoumarins inhibit intestinal CYP3A4, raising statin blood levels and myopathy risk.",
		Evidence:    "Well-characterized pharmacokinetic interaction for simvastatin and atorvastatin.",
		Management:  "Avoid grapefruit-derived supplements with CYP3A4-metabolized statins.",
		Category:    "cyp_inhibition",
	})

	b.AddRule(InteractionRule{
		ID:          "mineral_levothyroxine",
		Supplements: []types.IngredientKey{"calcium", "iron", "magnesium"},
		Medications: []types.IngredientKey{"levothyroxine"},
		Severity:    types.SeverityModerate,
		Mechanism:   "Divalent minerals chelate levothyroxine in the gut and reduce its absorption.",
		Evidence:    "Absorption studies show clinically relevant TSH changes with co-administration.",
		Management:  "Separate mineral supplements from levothyroxine by at least four hours.",
		Sources: []types.SourceRef{
			{Title: "American Thyroid Association: Levothyroxine Absorption"},
		},
		Category: "absorption",
	})

	b.AddRule(InteractionRule{
		ID:          "potassium_ace_inhibitor",
		Supplements: []types.IngredientKey{"potassium"},
		Medications: []types.IngredientKey{"ace_inhibitor"},
		Severity:    types.SeverityCritical,
		Mechanism:   "ACE inhibitors reduce renal potassium excretion; supplemental potassium can cause dangerous hyperkalemia.",
		Evidence:    "Established; hyperkalemia is a leading cause of ACE-inhibitor hospitalization.",
		Management:  "Do not supplement potassium on an ACE inhibitor without laboratory monitoring.",
		Category:    "electrolyte",
	})

	// ============================================
	// CNS DEPRESSION
	// ============================================

	b.AddRule(InteractionRule{
		ID:          "kava_benzodiazepine",
		Supplements: []types.IngredientKey{"kava"},
		Medications: []types.IngredientKey{"benzodiazepine"},
		Severity:    types.SeverityHigh,
		Mechanism:   "Kava acts on GABA receptors and compounds benzodiazepine sedation.",
		Evidence:    "Case report of semicomatose state; additive sedation is consistent across reports.",
		Management:  "Avoid the combination; do not drive if both have been taken.",
		Category:    "cns_depression",
	})

	b.AddRule(InteractionRule{
		ID:          "melatonin_benzodiazepine",
		Supplements: []types.IngredientKey{"melatonin"},
		Medications: []types.IngredientKey{"benzodiazepine"},
		Severity:    types.SeverityModerate,
		Mechanism:   "Melatonin adds to benzodiazepine sedation and next-day drowsiness.",
		Evidence:    "Additive effect shown in sleep studies.",
		Management:  "If combined, use the lowest melatonin dose and avoid activities requiring alertness.",
		Category:    "cns_depression",
	})

	// ============================================
	// SUPPLEMENT-SUPPLEMENT CONFLICTS
	// ============================================

	b.AddRule(InteractionRule{
		ID:          "calcium_iron_absorption",
		Supplements: []types.IngredientKey{"calcium", "iron"},
		Severity:    types.SeverityLow,
		Mechanism:   "Calcium competes with iron for intestinal absorption when taken together.",
		Evidence:    "Absorption studies show 30-50% reduction in non-heme iron uptake.",
		Management:  "Take calcium and iron at different times of day.",
		Category:    "absorption",
	})

	b.AddRule(InteractionRule{
		ID:          "zinc_copper_depletion",
		Supplements: []types.IngredientKey{"zinc", "copper"},
		Severity:    types.SeverityLow,
		Mechanism:   "High-dose zinc induces metallothionein and blocks copper absorption; supplementing both together is self-defeating.",
		Evidence:    "Chronic zinc above 40 mg/day produces measurable copper deficiency.",
		Management:  "Separate dosing, or use a balanced zinc-copper formulation.",
		Category:    "absorption",
	})

	b.AddRule(InteractionRule{
		ID:          "vitamin_e_fish_oil_bleeding",
		Supplements: []types.IngredientKey{"vitamin_e", "fish_oil"},
		Severity:    types.SeverityLow,
		Mechanism:   "Both reduce platelet aggregation; combined high doses have an additive effect on bleeding time.",
		Evidence:    "Additive antiplatelet effect shown in healthy volunteers.",
		Management:  "Keep both at moderate doses, especially before surgery or dental work.",
		Category:    "anticoagulant",
	})
}
