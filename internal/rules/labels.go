package rules

type requiredLabels struct {
	required []string
}

func (e requiredLabels) Name() string { return "required labels" }

// Evaluate reports each required label absent from the pull request.
// With no labels configured the check is a no-op, known labels or not.
func (e requiredLabels) Evaluate(pr *PullRequest) Result {
	if len(e.required) == 0 {
		return Result{}
	}
	if !pr.LabelsKnown {
		return skip("required labels")
	}

	present := make(map[string]bool, len(pr.Labels))
	for _, l := range pr.Labels {
		present[l] = true
	}

	var findings []Finding
	for _, label := range e.required {
		if !present[label] {
			findings = append(findings, failure("Required label '%s' is missing", label))
		}
	}
	return Result{Findings: findings}
}
