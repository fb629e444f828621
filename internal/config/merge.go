package config

// MergeRules applies repository overrides over the configured rule set.
// Nil override fields keep the base value. The returned set needs its
// patterns recompiled before use.
func MergeRules(base RuleSet, o *RuleOverrides) RuleSet {
	merged := base
	merged.compiled = nil
	if o == nil {
		return merged
	}

	if o.Rules.MinDescriptionLength != nil {
		merged.MinDescriptionLength = *o.Rules.MinDescriptionLength
	}
	if o.Rules.MaxFileSizeKB != nil {
		merged.MaxFileSizeKB = *o.Rules.MaxFileSizeKB
	}
	if o.Rules.RequiredLabels != nil {
		merged.RequiredLabels = o.Rules.RequiredLabels
	}
	if o.Rules.ForbiddenPatterns != nil {
		merged.ForbiddenPatterns = o.Rules.ForbiddenPatterns
	}

	return merged
}
