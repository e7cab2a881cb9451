// Package kb - builtin synonym table.
// Aliases cover brand names, chemical names, and common spellings. Matching
// is exact after folding; fuzzy resolution is deliberately out of scope.
package kb

func registerBuiltinSynonyms(b *Builder) {
	// Vitamins and minerals
	b.AddSynonym("vit d", "vitamin_d")
	b.AddSynonym("vitamin d3", "vitamin_d")
	b.AddSynonym("cholecalciferol", "vitamin_d")
	b.AddSynonym("ergocalciferol", "vitamin_d")
	b.AddSynonym("retinol", "vitamin_a")
	b.AddSynonym("tocopherol", "vitamin_e")
	b.AddSynonym("alpha tocopherol", "vitamin_e")
	b.AddSynonym("ascorbic acid", "vitamin_c")
	b.AddSynonym("pyridoxine", "vitamin_b6")
	b.AddSynonym("nicotinic acid", "niacin")
	b.AddSynonym("folic acid", "folate")
	b.AddSynonym("ferrous sulfate", "iron")
	b.AddSynonym("ferrous gluconate", "iron")
	b.AddSynonym("zinc picolinate", "zinc")
	b.AddSynonym("zinc gluconate", "zinc")
	b.AddSynonym("calcium carbonate", "calcium")
	b.AddSynonym("calcium citrate", "calcium")
	b.AddSynonym("magnesium glycinate", "magnesium")
	b.AddSynonym("magnesium citrate", "magnesium")
	b.AddSynonym("magnesium oxide", "magnesium")
	b.AddSynonym("phytomenadione", "vitamin_k")
	b.AddSynonym("vitamin k2", "vitamin_k")
	b.AddSynonym("menaquinone", "vitamin_k")

	// Herbs and other supplements
	b.AddSynonym("st johns wort", "st_johns_wort")
	b.AddSynonym("st. john's wort", "st_johns_wort")
	b.AddSynonym("hypericum perforatum", "st_johns_wort")
	b.AddSynonym("ginkgo", "ginkgo_biloba")
	b.AddSynonym("ginko", "ginkgo_biloba")
	b.AddSynonym("omega 3", "fish_oil")
	b.AddSynonym("epa dha", "fish_oil")
	b.AddSynonym("5 htp", "five_htp")
	b.AddSynonym("oxitriptan", "five_htp")
	b.AddSynonym("sam e", "sam_e")
	b.AddSynonym("s-adenosylmethionine", "sam_e")
	b.AddSynonym("kava kava", "kava")
	b.AddSynonym("piper methysticum", "kava")
	b.AddSynonym("aged garlic extract", "garlic_extract")

	// Medications (brand and generic names resolve to drug-class keys)
	b.AddSynonym("coumadin", "warfarin")
	b.AddSynonym("jantoven", "warfarin")
	b.AddSynonym("asa", "aspirin")
	b.AddSynonym("plavix", "clopidogrel")
	b.AddSynonym("fluoxetine", "ssri")
	b.AddSynonym("prozac", "ssri")
	b.AddSynonym("sertraline", "ssri")
	b.AddSynonym("zoloft", "ssri")
	b.AddSynonym("escitalopram", "ssri")
	b.AddSynonym("lexapro", "ssri")
	b.AddSynonym("atorvastatin", "statin")
	b.AddSynonym("lipitor", "statin")
	b.AddSynonym("simvastatin", "statin")
	b.AddSynonym("zocor", "statin")
	b.AddSynonym("rosuvastatin", "statin")
	b.AddSynonym("lisinopril", "ace_inhibitor")
	b.AddSynonym("enalapril", "ace_inhibitor")
	b.AddSynonym("ramipril", "ace_inhibitor")
	b.AddSynonym("synthroid", "levothyroxine")
	b.AddSynonym("levoxyl", "levothyroxine")
	b.AddSynonym("diazepam", "benzodiazepine")
	b.AddSynonym("valium", "benzodiazepine")
	b.AddSynonym("alprazolam", "benzodiazepine")
	b.AddSynonym("xanax", "benzodiazepine")
	b.AddSynonym("lorazepam", "benzodiazepine")
	b.AddSynonym("the pill", "oral_contraceptive")
	b.AddSynonym("birth control pill", "oral_contraceptive")
}
